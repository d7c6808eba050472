package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elokaagu/omahub/internal/images"
	"github.com/elokaagu/omahub/internal/metrics"
	"github.com/elokaagu/omahub/internal/store"
)

// storefrontHandler serves the public, unauthenticated catalog surface.
type storefrontHandler struct {
	brands      *store.BrandStore
	products    *store.ProductStore
	collections *store.CollectionStore
	tailors     *store.TailorStore
	inquiries   *store.InquiryStore
	subscribers *store.SubscriberStore
	settings    *store.SettingStore
}

func registerStorefrontRoutes(r chi.Router, deps Deps) {
	h := &storefrontHandler{
		brands:      deps.Brands,
		products:    deps.Products,
		collections: deps.Collections,
		tailors:     deps.Tailors,
		inquiries:   deps.Inquiries,
		subscribers: deps.Subscribers,
		settings:    deps.Settings,
	}

	r.Get("/brands", h.ListBrands)
	r.Get("/brands/{id}", h.GetBrand)
	r.Get("/brands/{id}/products", h.ListBrandProducts)
	r.Get("/brands/{id}/collections", h.ListBrandCollections)
	r.Get("/brands/{id}/tailors", h.ListBrandTailors)
	r.Post("/inquiries", h.CreateInquiry)
	r.Post("/newsletter/subscribe", h.Subscribe)
	r.Post("/newsletter/unsubscribe", h.Unsubscribe)
	r.Get("/settings", h.ListSettings)
	r.Get("/settings/{name}", h.GetSetting)
}

// ListBrands returns all publicly visible brands.
// GET /api/v1/brands
//
// @Summary      List public brands
// @Tags         Storefront
// @Produce      json
// @Success      200  {object}  BrandListResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /brands [get]
func (h *storefrontHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brands.ListPublic(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	resp := &BrandListResponse{Brands: make([]*BrandResponse, 0, len(brands))}
	for _, b := range brands {
		resp.Brands = append(resp.Brands, toBrandResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetBrand returns a single public brand. Hidden brands read as missing so the
// storefront cannot distinguish "private" from "nonexistent".
// GET /api/v1/brands/{id}
//
// @Summary      Get a public brand
// @Tags         Storefront
// @Produce      json
// @Param        id   path      string  true  "Brand ID"
// @Success      200  {object}  BrandResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /brands/{id} [get]
func (h *storefrontHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	brand, ok := h.publicBrand(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toBrandResponse(brand))
}

// ListBrandProducts returns the products of a public brand.
// GET /api/v1/brands/{id}/products
//
// @Summary      List a brand's products
// @Tags         Storefront
// @Produce      json
// @Param        id   path      string  true  "Brand ID"
// @Success      200  {object}  ProductListResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /brands/{id}/products [get]
func (h *storefrontHandler) ListBrandProducts(w http.ResponseWriter, r *http.Request) {
	brand, ok := h.publicBrand(w, r)
	if !ok {
		return
	}
	products, err := h.products.ListByBrand(r.Context(), brand.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	resp := &ProductListResponse{Products: make([]*ProductResponse, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListBrandCollections returns the collections of a public brand.
// GET /api/v1/brands/{id}/collections
//
// @Summary      List a brand's collections
// @Tags         Storefront
// @Produce      json
// @Param        id   path      string  true  "Brand ID"
// @Success      200  {object}  CollectionListResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /brands/{id}/collections [get]
func (h *storefrontHandler) ListBrandCollections(w http.ResponseWriter, r *http.Request) {
	brand, ok := h.publicBrand(w, r)
	if !ok {
		return
	}
	collections, err := h.collections.ListByBrand(r.Context(), brand.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	resp := &CollectionListResponse{Collections: make([]*CollectionResponse, 0, len(collections))}
	for _, c := range collections {
		resp.Collections = append(resp.Collections, toCollectionResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListBrandTailors returns the tailoring services of a public brand.
// GET /api/v1/brands/{id}/tailors
//
// @Summary      List a brand's tailors
// @Tags         Storefront
// @Produce      json
// @Param        id   path      string  true  "Brand ID"
// @Success      200  {object}  TailorListResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /brands/{id}/tailors [get]
func (h *storefrontHandler) ListBrandTailors(w http.ResponseWriter, r *http.Request) {
	brand, ok := h.publicBrand(w, r)
	if !ok {
		return
	}
	tailors, err := h.tailors.ListByBrand(r.Context(), brand.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	resp := &TailorListResponse{Tailors: make([]*TailorResponse, 0, len(tailors))}
	for _, t := range tailors {
		resp.Tailors = append(resp.Tailors, toTailorResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateInquiry records a customer lead against a brand.
// POST /api/v1/inquiries
//
// @Summary      Submit an inquiry
// @Tags         Storefront
// @Accept       json
// @Produce      json
// @Param        body  body      CreateInquiryRequest  true  "Inquiry"
// @Success      201   {object}  InquiryResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /inquiries [post]
func (h *storefrontHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.BrandID == "" || req.CustomerName == "" || req.CustomerEmail == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "brand_id, customer_name, customer_email, and message are required", "BAD_REQUEST")
		return
	}

	// Hidden brands read as missing, same as GetBrand.
	if _, ok := h.publicBrandByID(w, r, req.BrandID); !ok {
		return
	}

	inq, err := h.inquiries.Create(r.Context(), req.BrandID, req.CustomerName, req.CustomerEmail, req.Subject, req.Message, req.InquiryType)
	if err != nil {
		if errors.Is(err, store.ErrInvalidInquiryType) {
			writeError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "brand not found", "NOT_FOUND")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	metrics.InquiriesReceivedTotal.WithLabelValues(inq.InquiryType).Inc()
	writeJSON(w, http.StatusCreated, toInquiryResponse(inq))
}

// Subscribe adds an email to the newsletter.
// POST /api/v1/newsletter/subscribe
//
// @Summary      Subscribe to the newsletter
// @Tags         Storefront
// @Accept       json
// @Produce      json
// @Param        body  body      SubscribeRequest  true  "Email"
// @Success      201   {object}  SubscriberResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /newsletter/subscribe [post]
func (h *storefrontHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	sub, err := h.subscribers.Subscribe(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrInvalidEmail) {
			writeError(w, http.StatusBadRequest, "invalid email address", "BAD_REQUEST")
			return
		}
		if errors.Is(err, store.ErrAlreadySubscribed) {
			writeError(w, http.StatusConflict, "email is already subscribed", "CONFLICT")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	if count, err := h.subscribers.CountActive(r.Context()); err == nil {
		metrics.SubscribersTotal.Set(float64(count))
	}
	writeJSON(w, http.StatusCreated, toSubscriberResponse(sub))
}

// Unsubscribe removes an email from the newsletter.
// POST /api/v1/newsletter/unsubscribe
//
// @Summary      Unsubscribe from the newsletter
// @Tags         Storefront
// @Accept       json
// @Produce      json
// @Param        body  body      SubscribeRequest  true  "Email"
// @Success      204   "No Content"
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /newsletter/unsubscribe [post]
func (h *storefrontHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	err := h.subscribers.Unsubscribe(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "email is not subscribed", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	if count, err := h.subscribers.CountActive(r.Context()); err == nil {
		metrics.SubscribersTotal.Set(float64(count))
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSettings returns all platform settings.
// GET /api/v1/settings
//
// @Summary      List platform settings
// @Tags         Storefront
// @Produce      json
// @Success      200  {object}  SettingListResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /settings [get]
func (h *storefrontHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	resp := &SettingListResponse{Settings: make([]*SettingResponse, 0, len(settings))}
	for _, s := range settings {
		resp.Settings = append(resp.Settings, toSettingResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetSetting returns a single platform setting.
// GET /api/v1/settings/{name}
//
// @Summary      Get a platform setting
// @Tags         Storefront
// @Produce      json
// @Param        name  path      string  true  "Setting name"
// @Success      200   {object}  SettingResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /settings/{name} [get]
func (h *storefrontHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settings.Get(r.Context(), chi.URLParam(r, "name"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "setting not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toSettingResponse(setting))
}

// publicBrand loads the brand from the {id} URL param, writing a 404 for
// missing or hidden brands.
func (h *storefrontHandler) publicBrand(w http.ResponseWriter, r *http.Request) (*store.Brand, bool) {
	return h.publicBrandByID(w, r, chi.URLParam(r, "id"))
}

func (h *storefrontHandler) publicBrandByID(w http.ResponseWriter, r *http.Request, id string) (*store.Brand, bool) {
	brand, err := h.brands.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "brand not found", "NOT_FOUND")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return nil, false
	}
	if !brand.IsPublic {
		writeError(w, http.StatusNotFound, "brand not found", "NOT_FOUND")
		return nil, false
	}
	return brand, true
}

// normalizeImage is shared by the admin write paths; declared here so the
// storefront file owns the images import alongside its read paths.
func normalizeImage(raw string) string { return images.Normalize(raw) }

// brandImage resolves the display image for a brand write: an explicit image
// wins, otherwise the first usable gallery entry.
func brandImage(image string, gallery []string) string {
	if img := normalizeImage(image); img != "" {
		return img
	}
	return images.LeadImage(gallery)
}
