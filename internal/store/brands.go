package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrBrandIDInvalid is returned when a brand id does not match the required pattern.
	ErrBrandIDInvalid = errors.New("brand id must match [a-z0-9][a-z0-9-]*[a-z0-9]")

	// ErrUnknownCurrency is returned when a currency code has no display symbol.
	ErrUnknownCurrency = errors.New("unsupported currency code")

	brandIDRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9\-]*[a-z0-9])?$`)

	// currencySymbols maps supported ISO currency codes to the display symbol
	// used in price ranges.
	currencySymbols = map[string]string{
		"USD": "$",
		"EUR": "€",
		"GBP": "£",
		"NGN": "₦",
		"GHS": "₵",
		"KES": "KSh ",
		"ZAR": "R ",
		"XOF": "CFA ",
	}
)

// ValidateBrandID checks that id conforms to the slug format brands are keyed
// by. It does NOT check uniqueness; that is handled by the primary key.
func ValidateBrandID(id string) error {
	if !brandIDRe.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrBrandIDInvalid, id)
	}
	return nil
}

// Brand is a designer label on the platform. The id doubles as the public
// URL slug (e.g. "ehbs-couture").
type Brand struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Location    string    `db:"location"`
	Currency    string    `db:"currency"`
	PriceRange  string    `db:"price_range"`
	Rating      float64   `db:"rating"`
	IsVerified  bool      `db:"is_verified"`
	IsPublic    bool      `db:"is_public"`
	Image       string    `db:"image"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type BrandStore struct {
	db *sqlx.DB
}

func NewBrandStore(db *sqlx.DB) *BrandStore {
	return &BrandStore{db: db}
}

func (s *BrandStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts a new brand. Returns ErrBrandIDTaken if the id already exists.
func (s *BrandStore) Create(ctx context.Context, b *Brand) (*Brand, error) {
	if err := ValidateBrandID(b.ID); err != nil {
		return nil, err
	}
	if b.Currency == "" {
		b.Currency = "USD"
	}
	if _, ok := currencySymbols[b.Currency]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, b.Currency)
	}
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO brands (id, name, description, category, location, currency, price_range,
			rating, is_verified, is_public, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), b.ID, b.Name, b.Description, b.Category, b.Location, b.Currency, b.PriceRange,
		b.Rating, b.IsVerified, b.IsPublic, b.Image, now, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrBrandIDTaken
		}
		return nil, err
	}
	return s.GetByID(ctx, b.ID)
}

// GetByID returns the brand with the given id, or ErrNotFound.
func (s *BrandStore) GetByID(ctx context.Context, id string) (*Brand, error) {
	var b Brand
	err := s.db.GetContext(ctx, &b, s.q(`SELECT * FROM brands WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListPublic returns all publicly visible brands ordered by name.
func (s *BrandStore) ListPublic(ctx context.Context) ([]*Brand, error) {
	var brands []*Brand
	err := s.db.SelectContext(ctx, &brands, s.q(`
		SELECT * FROM brands WHERE is_public = ? ORDER BY name ASC
	`), true)
	if err != nil {
		return nil, err
	}
	return brands, nil
}

// ListAll returns every brand regardless of visibility, ordered by name.
func (s *BrandStore) ListAll(ctx context.Context) ([]*Brand, error) {
	var brands []*Brand
	err := s.db.SelectContext(ctx, &brands, `SELECT * FROM brands ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return brands, nil
}

// Update modifies the mutable fields of a brand. Visibility and currency have
// their own operations. Returns ErrNotFound if the brand does not exist.
func (s *BrandStore) Update(ctx context.Context, id, name, description, category, location, priceRange, image string, isVerified bool) (*Brand, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE brands SET name = ?, description = ?, category = ?, location = ?,
			price_range = ?, image = ?, is_verified = ?, updated_at = ?
		WHERE id = ?
	`), name, description, category, location, priceRange, image, isVerified, time.Now().UTC(), id)
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

// SetVisibility toggles whether a brand appears in public listings.
func (s *BrandStore) SetVisibility(ctx context.Context, id string, isPublic bool) (*Brand, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE brands SET is_public = ?, updated_at = ? WHERE id = ?
	`), isPublic, time.Now().UTC(), id)
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

// UpdateCurrency changes a brand's currency and rewrites the display symbol in
// the brand's own price range and in every tailor listed under it, all in one
// transaction so listings never show mixed currencies.
func (s *BrandStore) UpdateCurrency(ctx context.Context, id, currency string) (*Brand, error) {
	newSym, ok := currencySymbols[currency]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, currency)
	}

	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSym := currencySymbols[b.Currency]

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	newRange := swapCurrencySymbol(b.PriceRange, oldSym, newSym)
	if _, err := tx.ExecContext(ctx, s.q(`
		UPDATE brands SET currency = ?, price_range = ?, updated_at = ? WHERE id = ?
	`), currency, newRange, now, id); err != nil {
		return nil, err
	}

	var tailors []Tailor
	if err := tx.SelectContext(ctx, &tailors, s.q(`SELECT * FROM tailors WHERE brand_id = ?`), id); err != nil {
		return nil, err
	}
	for _, t := range tailors {
		if _, err := tx.ExecContext(ctx, s.q(`
			UPDATE tailors SET price_range = ?, updated_at = ? WHERE id = ?
		`), swapCurrencySymbol(t.PriceRange, oldSym, newSym), now, t.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes a brand and everything scoped to it. Returns ErrNotFound if
// the brand does not exist.
func (s *BrandStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"products", "collections", "tailors", "inquiries", "profile_brands"} {
		if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM `+table+` WHERE brand_id = ?`), id); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx, s.q(`DELETE FROM brands WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// swapCurrencySymbol replaces occurrences of the old currency symbol in a
// display price range with the new one. A range carrying no recognizable
// symbol gets the new symbol prefixed to each amount.
func swapCurrencySymbol(priceRange, oldSym, newSym string) string {
	if priceRange == "" || oldSym == newSym {
		return priceRange
	}
	if oldSym != "" && strings.Contains(priceRange, strings.TrimSpace(oldSym)) {
		return strings.ReplaceAll(priceRange, strings.TrimSpace(oldSym), strings.TrimSpace(newSym))
	}
	return priceRangeNumRe.ReplaceAllStringFunc(priceRange, func(m string) string {
		return strings.TrimSpace(newSym) + m
	})
}
