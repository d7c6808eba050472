package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Collection is a seasonal grouping of a brand's work (lookbook).
type Collection struct {
	ID          string    `db:"id"`
	BrandID     string    `db:"brand_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Image       string    `db:"image"`
	Season      string    `db:"season"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type CollectionStore struct {
	db *sqlx.DB
}

func NewCollectionStore(db *sqlx.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

func (s *CollectionStore) q(query string) string { return s.db.Rebind(query) }

func (s *CollectionStore) Create(ctx context.Context, brandID, title, description, image, season string) (*Collection, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO collections (id, brand_id, title, description, image, season, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), id, brandID, title, description, image, season, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *CollectionStore) GetByID(ctx context.Context, id string) (*Collection, error) {
	var c Collection
	err := s.db.GetContext(ctx, &c, s.q(`SELECT * FROM collections WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// BrandID resolves the owning brand of a collection, or ErrNotFound.
func (s *CollectionStore) BrandID(ctx context.Context, id string) (string, error) {
	var brandID string
	err := s.db.GetContext(ctx, &brandID, s.q(`SELECT brand_id FROM collections WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return brandID, nil
}

func (s *CollectionStore) ListByBrand(ctx context.Context, brandID string) ([]*Collection, error) {
	var collections []*Collection
	err := s.db.SelectContext(ctx, &collections, s.q(`
		SELECT * FROM collections WHERE brand_id = ? ORDER BY created_at DESC
	`), brandID)
	if err != nil {
		return nil, err
	}
	return collections, nil
}

func (s *CollectionStore) ListAll(ctx context.Context) ([]*Collection, error) {
	var collections []*Collection
	err := s.db.SelectContext(ctx, &collections, `SELECT * FROM collections ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collections, nil
}

func (s *CollectionStore) Update(ctx context.Context, id, title, description, image, season string) (*Collection, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE collections SET title = ?, description = ?, image = ?, season = ?, updated_at = ?
		WHERE id = ?
	`), title, description, image, season, time.Now().UTC(), id)
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

func (s *CollectionStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM collections WHERE id = ?`), id)
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
