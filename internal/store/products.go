package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Product is a purchasable item listed under a brand.
type Product struct {
	ID          string          `db:"id"`
	BrandID     string          `db:"brand_id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Price       float64         `db:"price"`
	SalePrice   sql.NullFloat64 `db:"sale_price"`
	Image       string          `db:"image"`
	Category    string          `db:"category"`
	InStock     bool            `db:"in_stock"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type ProductStore struct {
	db *sqlx.DB
}

func NewProductStore(db *sqlx.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts a new product under the given brand.
func (s *ProductStore) Create(ctx context.Context, brandID, title, description string, price float64, salePrice *float64, image, category string, inStock bool) (*Product, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	var sale sql.NullFloat64
	if salePrice != nil {
		sale = sql.NullFloat64{Float64: *salePrice, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO products (id, brand_id, title, description, price, sale_price, image, category, in_stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), id, brandID, title, description, price, sale, image, category, inStock, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// GetByID returns the product with the given id, or ErrNotFound.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := s.db.GetContext(ctx, &p, s.q(`SELECT * FROM products WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// BrandID resolves the owning brand of a product without loading the full
// row. Returns ErrNotFound if the product does not exist.
func (s *ProductStore) BrandID(ctx context.Context, id string) (string, error) {
	var brandID string
	err := s.db.GetContext(ctx, &brandID, s.q(`SELECT brand_id FROM products WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return brandID, nil
}

// ListByBrand returns all products for a brand, newest first.
func (s *ProductStore) ListByBrand(ctx context.Context, brandID string) ([]*Product, error) {
	var products []*Product
	err := s.db.SelectContext(ctx, &products, s.q(`
		SELECT * FROM products WHERE brand_id = ? ORDER BY created_at DESC
	`), brandID)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListAll returns every product, newest first.
func (s *ProductStore) ListAll(ctx context.Context) ([]*Product, error) {
	var products []*Product
	err := s.db.SelectContext(ctx, &products, `SELECT * FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Update modifies a product. Returns ErrNotFound if the product does not exist.
func (s *ProductStore) Update(ctx context.Context, id, title, description string, price float64, salePrice *float64, image, category string, inStock bool) (*Product, error) {
	var sale sql.NullFloat64
	if salePrice != nil {
		sale = sql.NullFloat64{Float64: *salePrice, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE products SET title = ?, description = ?, price = ?, sale_price = ?,
			image = ?, category = ?, in_stock = ?, updated_at = ?
		WHERE id = ?
	`), title, description, price, sale, image, category, inStock, time.Now().UTC(), id)
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

// Delete removes a product. Returns ErrNotFound if the product does not exist.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM products WHERE id = ?`), id)
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
