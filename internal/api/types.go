package api

import (
	"time"

	"github.com/elokaagu/omahub/internal/store"
)

// ErrorResponse is the standard error body for all API failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type BrandResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Currency    string    `json:"currency"`
	PriceRange  string    `json:"price_range"`
	Rating      float64   `json:"rating"`
	IsVerified  bool      `json:"is_verified"`
	IsPublic    bool      `json:"is_public"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BrandListResponse struct {
	Brands []*BrandResponse `json:"brands"`
}

type CreateBrandRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Currency    string   `json:"currency"`
	PriceRange  string   `json:"price_range"`
	Image       string   `json:"image"`
	Gallery     []string `json:"gallery,omitempty"`
	Rating      float64  `json:"rating"`
}

type UpdateBrandRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	PriceRange  string   `json:"price_range"`
	Image       string   `json:"image"`
	Gallery     []string `json:"gallery,omitempty"`
	IsVerified  bool     `json:"is_verified"`
}

type UpdateVisibilityRequest struct {
	IsPublic bool `json:"is_public"`
}

type UpdateCurrencyRequest struct {
	Currency string `json:"currency"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	BrandID     string    `json:"brand_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	SalePrice   *float64  `json:"sale_price,omitempty"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductListResponse struct {
	Products []*ProductResponse `json:"products"`
}

type CreateProductRequest struct {
	BrandID     string   `json:"brand_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	SalePrice   *float64 `json:"sale_price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	InStock     bool     `json:"in_stock"`
}

type UpdateProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	SalePrice   *float64 `json:"sale_price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	InStock     bool     `json:"in_stock"`
}

type CollectionResponse struct {
	ID          string    `json:"id"`
	BrandID     string    `json:"brand_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Season      string    `json:"season"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CollectionListResponse struct {
	Collections []*CollectionResponse `json:"collections"`
}

type CreateCollectionRequest struct {
	BrandID     string `json:"brand_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Season      string `json:"season"`
}

type UpdateCollectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Season      string `json:"season"`
}

type TailorResponse struct {
	ID          string    `json:"id"`
	BrandID     string    `json:"brand_id"`
	Title       string    `json:"title"`
	Specialties []string  `json:"specialties"`
	PriceRange  string    `json:"price_range"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TailorListResponse struct {
	Tailors []*TailorResponse `json:"tailors"`
}

type CreateTailorRequest struct {
	BrandID     string   `json:"brand_id"`
	Title       string   `json:"title"`
	Specialties []string `json:"specialties"`
	PriceRange  string   `json:"price_range"`
	Image       string   `json:"image"`
}

type UpdateTailorRequest struct {
	Title       string   `json:"title"`
	Specialties []string `json:"specialties"`
	PriceRange  string   `json:"price_range"`
	Image       string   `json:"image"`
}

type InquiryResponse struct {
	ID             string    `json:"id"`
	BrandID        string    `json:"brand_id"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	Subject        string    `json:"subject"`
	Message        string    `json:"message"`
	InquiryType    string    `json:"inquiry_type"`
	Status         string    `json:"status"`
	EstimatedValue float64   `json:"estimated_value"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type InquiryListResponse struct {
	Inquiries []*InquiryResponse `json:"inquiries"`
}

type CreateInquiryRequest struct {
	BrandID       string `json:"brand_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	InquiryType   string `json:"inquiry_type"`
}

type UpdateInquiryStatusRequest struct {
	Status string `json:"status"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

type SubscriberResponse struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
	Active       bool      `json:"active"`
}

type SubscriberListResponse struct {
	Subscribers []*SubscriberResponse `json:"subscribers"`
}

type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SettingListResponse struct {
	Settings []*SettingResponse `json:"settings"`
}

type UpdateSettingRequest struct {
	Value string `json:"value"`
}

type ProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	OwnedBrands []string  `json:"owned_brands"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProfileListResponse struct {
	Profiles []*ProfileResponse `json:"profiles"`
}

type UpdateProfileRoleRequest struct {
	Role        string   `json:"role"`
	OwnedBrands []string `json:"owned_brands"`
}

type TokenResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type TokenListResponse struct {
	Tokens []*TokenResponse `json:"tokens"`
}

func toBrandResponse(b *store.Brand) *BrandResponse {
	return &BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Category:    b.Category,
		Location:    b.Location,
		Currency:    b.Currency,
		PriceRange:  b.PriceRange,
		Rating:      b.Rating,
		IsVerified:  b.IsVerified,
		IsPublic:    b.IsPublic,
		Image:       b.Image,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toProductResponse(p *store.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:          p.ID,
		BrandID:     p.BrandID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.SalePrice.Valid {
		sale := p.SalePrice.Float64
		resp.SalePrice = &sale
	}
	return resp
}

func toCollectionResponse(c *store.Collection) *CollectionResponse {
	return &CollectionResponse{
		ID:          c.ID,
		BrandID:     c.BrandID,
		Title:       c.Title,
		Description: c.Description,
		Image:       c.Image,
		Season:      c.Season,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toTailorResponse(t *store.Tailor) *TailorResponse {
	return &TailorResponse{
		ID:          t.ID,
		BrandID:     t.BrandID,
		Title:       t.Title,
		Specialties: t.SpecialtyList(),
		PriceRange:  t.PriceRange,
		Image:       t.Image,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toInquiryResponse(i *store.Inquiry) *InquiryResponse {
	return &InquiryResponse{
		ID:             i.ID,
		BrandID:        i.BrandID,
		CustomerName:   i.CustomerName,
		CustomerEmail:  i.CustomerEmail,
		Subject:        i.Subject,
		Message:        i.Message,
		InquiryType:    i.InquiryType,
		Status:         i.Status,
		EstimatedValue: i.EstimatedValue,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func toSubscriberResponse(s *store.Subscriber) *SubscriberResponse {
	return &SubscriberResponse{
		Email:        s.Email,
		SubscribedAt: s.SubscribedAt,
		Active:       s.Active(),
	}
}

func toSettingResponse(s *store.Setting) *SettingResponse {
	return &SettingResponse{Key: s.Name, Value: s.Value, UpdatedAt: s.UpdatedAt}
}
