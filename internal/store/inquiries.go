package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrInvalidInquiryType is returned when an inquiry type is not recognized.
	ErrInvalidInquiryType = errors.New("inquiry type must be one of: general, custom_order, wholesale, collaboration")

	// ErrInvalidInquiryStatus is returned when an inquiry status is not recognized.
	ErrInvalidInquiryStatus = errors.New("status must be one of: new, in_progress, resolved, closed")
)

// pipelineMultipliers weights the estimated value of a lead by inquiry type.
// Custom orders and wholesale requests historically convert at a multiple of
// the brand's typical ticket; general questions convert near it.
var pipelineMultipliers = map[string]float64{
	"general":       1.0,
	"custom_order":  1.5,
	"wholesale":     3.0,
	"collaboration": 2.0,
}

// categoryBaseValues is the fallback ticket size per brand category, used when
// a brand has no parseable price range.
var categoryBaseValues = map[string]float64{
	"bridal":        1200,
	"couture":       900,
	"ready-to-wear": 250,
	"accessories":   120,
	"tailoring":     400,
}

const defaultBaseValue = 200

// Inquiry is a customer lead raised against a brand.
type Inquiry struct {
	ID             string    `db:"id"`
	BrandID        string    `db:"brand_id"`
	CustomerName   string    `db:"customer_name"`
	CustomerEmail  string    `db:"customer_email"`
	Subject        string    `db:"subject"`
	Message        string    `db:"message"`
	InquiryType    string    `db:"inquiry_type"`
	Status         string    `db:"status"`
	EstimatedValue float64   `db:"estimated_value"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ValidateInquiryType checks that t is a recognized inquiry type.
func ValidateInquiryType(t string) error {
	if _, ok := pipelineMultipliers[t]; !ok {
		return ErrInvalidInquiryType
	}
	return nil
}

// ValidateInquiryStatus checks that s is a recognized inquiry status.
func ValidateInquiryStatus(s string) error {
	switch s {
	case "new", "in_progress", "resolved", "closed":
		return nil
	default:
		return ErrInvalidInquiryStatus
	}
}

// EstimatePipelineValue computes the expected value of a lead from the brand's
// typical ticket size and the inquiry type. The base is the midpoint of the
// brand's price range, falling back to a per-category figure when the range
// cannot be parsed.
func EstimatePipelineValue(brand *Brand, inquiryType string) float64 {
	base := PriceRangeMidpoint(brand.PriceRange)
	if base == 0 {
		base = categoryBaseValues[brand.Category]
	}
	if base == 0 {
		base = defaultBaseValue
	}
	mult, ok := pipelineMultipliers[inquiryType]
	if !ok {
		mult = 1.0
	}
	return base * mult
}

type InquiryStore struct {
	db     *sqlx.DB
	brands *BrandStore
}

func NewInquiryStore(db *sqlx.DB, brands *BrandStore) *InquiryStore {
	return &InquiryStore{db: db, brands: brands}
}

func (s *InquiryStore) q(query string) string { return s.db.Rebind(query) }

// Create records a new lead with status "new" and a pipeline value estimated
// from the target brand. Returns ErrNotFound if the brand does not exist.
func (s *InquiryStore) Create(ctx context.Context, brandID, customerName, customerEmail, subject, message, inquiryType string) (*Inquiry, error) {
	if err := ValidateInquiryType(inquiryType); err != nil {
		return nil, err
	}
	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	estimated := EstimatePipelineValue(brand, inquiryType)

	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO inquiries (id, brand_id, customer_name, customer_email, subject, message,
			inquiry_type, status, estimated_value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'new', ?, ?, ?)
	`), id, brandID, customerName, customerEmail, subject, message, inquiryType, estimated, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *InquiryStore) GetByID(ctx context.Context, id string) (*Inquiry, error) {
	var inq Inquiry
	err := s.db.GetContext(ctx, &inq, s.q(`SELECT * FROM inquiries WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inq, nil
}

// BrandID resolves the brand an inquiry was raised against, or ErrNotFound.
func (s *InquiryStore) BrandID(ctx context.Context, id string) (string, error) {
	var brandID string
	err := s.db.GetContext(ctx, &brandID, s.q(`SELECT brand_id FROM inquiries WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return brandID, nil
}

// ListByBrands returns all inquiries against any of the given brands, newest
// first. An empty brand list returns no rows.
func (s *InquiryStore) ListByBrands(ctx context.Context, brandIDs []string) ([]*Inquiry, error) {
	if len(brandIDs) == 0 {
		return []*Inquiry{}, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM inquiries WHERE brand_id IN (?) ORDER BY created_at DESC`, brandIDs)
	if err != nil {
		return nil, err
	}
	var inquiries []*Inquiry
	if err := s.db.SelectContext(ctx, &inquiries, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (s *InquiryStore) ListAll(ctx context.Context) ([]*Inquiry, error) {
	var inquiries []*Inquiry
	err := s.db.SelectContext(ctx, &inquiries, `SELECT * FROM inquiries ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return inquiries, nil
}

// UpdateStatus moves an inquiry through the lead pipeline.
func (s *InquiryStore) UpdateStatus(ctx context.Context, id, status string) (*Inquiry, error) {
	if err := ValidateInquiryStatus(status); err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE inquiries SET status = ?, updated_at = ? WHERE id = ?
	`), status, time.Now().UTC(), id)
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

func (s *InquiryStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM inquiries WHERE id = ?`), id)
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
