package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Profile associates an authenticated principal with a role and, for
// brand_admins, the set of brands they own.
type Profile struct {
	ID          string    `db:"id"`
	Provider    string    `db:"provider"`
	Subject     string    `db:"subject"`
	Email       string    `db:"email"`
	DisplayName string    `db:"display_name"`
	Role        string    `db:"role"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type ProfileStore struct {
	db *sqlx.DB
}

func NewProfileStore(db *sqlx.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *ProfileStore) q(query string) string { return s.db.Rebind(query) }

// Upsert creates or updates a profile record on OIDC login. New profiles start
// with role "user"; the role of a returning profile is never touched here;
// role changes happen only through UpdateRole/SetOwnedBrands.
func (s *ProfileStore) Upsert(ctx context.Context, provider, subject, email, displayName string) (*Profile, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO profiles (id, provider, subject, email, display_name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 'user', ?, ?)
		ON CONFLICT (provider, subject) DO UPDATE SET
			email = excluded.email,
			display_name = excluded.display_name,
			updated_at = excluded.updated_at
	`), id, provider, subject, email, displayName, now, now)
	if err != nil {
		return nil, err
	}

	var p Profile
	err = s.db.GetContext(ctx, &p, s.q(`SELECT * FROM profiles WHERE provider = ? AND subject = ?`), provider, subject)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID returns the profile with the given id, or ErrNotFound.
func (s *ProfileStore) GetByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := s.db.GetContext(ctx, &p, s.q(`SELECT * FROM profiles WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByEmail returns the profile matching email, or ErrNotFound.
func (s *ProfileStore) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	err := s.db.GetContext(ctx, &p, s.q(`SELECT * FROM profiles WHERE email = ?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// OwnedBrands returns the brand ids owned by the given profile, sorted.
func (s *ProfileStore) OwnedBrands(ctx context.Context, profileID string) ([]string, error) {
	var brands []string
	err := s.db.SelectContext(ctx, &brands, s.q(`
		SELECT brand_id FROM profile_brands WHERE profile_id = ? ORDER BY brand_id ASC
	`), profileID)
	if err != nil {
		return nil, err
	}
	return brands, nil
}

// ListAll returns all profiles ordered by email.
func (s *ProfileStore) ListAll(ctx context.Context) ([]*Profile, error) {
	var profiles []*Profile
	err := s.db.SelectContext(ctx, &profiles, `SELECT * FROM profiles ORDER BY email ASC`)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateRole sets the role and replaces the owned-brand set for a profile in a
// single transaction, so a concurrent reader never observes a half-updated
// role/owned_brands pair. ownedBrands is ignored unless role is "brand_admin";
// any other role clears the set. Returns ErrNotFound if the profile does not exist.
func (s *ProfileStore) UpdateRole(ctx context.Context, id, role string, ownedBrands []string) (*Profile, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, s.q(`UPDATE profiles SET role = ?, updated_at = ? WHERE id = ?`),
		role, time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM profile_brands WHERE profile_id = ?`), id); err != nil {
		return nil, err
	}
	if role == "brand_admin" {
		for _, brandID := range ownedBrands {
			if _, err := tx.ExecContext(ctx, s.q(`
				INSERT INTO profile_brands (profile_id, brand_id) VALUES (?, ?)
			`), id, brandID); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}
