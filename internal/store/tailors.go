package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Tailor is a made-to-measure service offered under a brand. Specialties are
// stored as a comma-joined list; SpecialtyList splits them for API responses.
type Tailor struct {
	ID          string    `db:"id"`
	BrandID     string    `db:"brand_id"`
	Title       string    `db:"title"`
	Specialties string    `db:"specialties"`
	PriceRange  string    `db:"price_range"`
	Image       string    `db:"image"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// SpecialtyList returns the specialties as a slice, dropping empty entries.
func (t *Tailor) SpecialtyList() []string {
	parts := strings.Split(t.Specialties, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type TailorStore struct {
	db *sqlx.DB
}

func NewTailorStore(db *sqlx.DB) *TailorStore {
	return &TailorStore{db: db}
}

func (s *TailorStore) q(query string) string { return s.db.Rebind(query) }

func (s *TailorStore) Create(ctx context.Context, brandID, title string, specialties []string, priceRange, image string) (*Tailor, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO tailors (id, brand_id, title, specialties, price_range, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), id, brandID, title, strings.Join(specialties, ","), priceRange, image, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *TailorStore) GetByID(ctx context.Context, id string) (*Tailor, error) {
	var t Tailor
	err := s.db.GetContext(ctx, &t, s.q(`SELECT * FROM tailors WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// BrandID resolves the owning brand of a tailor, or ErrNotFound.
func (s *TailorStore) BrandID(ctx context.Context, id string) (string, error) {
	var brandID string
	err := s.db.GetContext(ctx, &brandID, s.q(`SELECT brand_id FROM tailors WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return brandID, nil
}

func (s *TailorStore) ListByBrand(ctx context.Context, brandID string) ([]*Tailor, error) {
	var tailors []*Tailor
	err := s.db.SelectContext(ctx, &tailors, s.q(`
		SELECT * FROM tailors WHERE brand_id = ? ORDER BY title ASC
	`), brandID)
	if err != nil {
		return nil, err
	}
	return tailors, nil
}

func (s *TailorStore) ListAll(ctx context.Context) ([]*Tailor, error) {
	var tailors []*Tailor
	err := s.db.SelectContext(ctx, &tailors, `SELECT * FROM tailors ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	return tailors, nil
}

func (s *TailorStore) Update(ctx context.Context, id, title string, specialties []string, priceRange, image string) (*Tailor, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE tailors SET title = ?, specialties = ?, price_range = ?, image = ?, updated_at = ?
		WHERE id = ?
	`), title, strings.Join(specialties, ","), priceRange, image, time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *TailorStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM tailors WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}
