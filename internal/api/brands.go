package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elokaagu/omahub/internal/authz"
	"github.com/elokaagu/omahub/internal/metrics"
	"github.com/elokaagu/omahub/internal/store"
)

type brandAdminHandler struct {
	guard  *guard
	brands *store.BrandStore
}

func registerBrandAdminRoutes(r chi.Router, g *guard, deps Deps) {
	h := &brandAdminHandler{guard: g, brands: deps.Brands}

	r.Get("/admin/brands", h.List)
	r.Post("/admin/brands", h.Create)
	r.Get("/admin/brands/{id}", h.Get)
	r.Put("/admin/brands/{id}", h.Update)
	r.Delete("/admin/brands/{id}", h.Delete)
	r.Put("/admin/brands/{id}/visibility", h.SetVisibility)
	r.Put("/admin/brands/{id}/currency", h.UpdateCurrency)
}

// List returns the brands visible to the caller: admins see every brand,
// brand admins see only the brands they own.
// GET /api/v1/admin/brands
//
// @Summary      List brands (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Success      200  {object}  BrandListResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/brands [get]
func (h *brandAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	role, ownedBrands, ok := h.guard.resolveScope(w, r)
	if !ok {
		return
	}

	var (
		brands []*store.Brand
		err    error
	)
	switch role {
	case authz.RoleAdmin, authz.RoleSuperAdmin:
		brands, err = h.brands.ListAll(r.Context())
	case authz.RoleBrandAdmin:
		for _, id := range ownedBrands {
			b, berr := h.brands.GetByID(r.Context(), id)
			if errors.Is(berr, store.ErrNotFound) {
				continue
			}
			if berr != nil {
				err = berr
				break
			}
			brands = append(brands, b)
		}
	default:
		writeError(w, http.StatusForbidden, "forbidden", "INSUFFICIENT_ROLE")
		return
	}
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

// Create registers a new brand. Platform admins only.
// POST /api/v1/admin/brands
//
// @Summary      Create a brand
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerToken
// @Param        body  body      CreateBrandRequest  true  "Brand"
// @Success      201   {object}  BrandResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /admin/brands [post]
func (h *brandAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.guard.allow(w, r, authz.Resource{}) {
		return
	}

	var req CreateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", "BAD_REQUEST")
		return
	}

	brand, err := h.brands.Create(r.Context(), &store.Brand{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Currency:    req.Currency,
		PriceRange:  req.PriceRange,
		Rating:      req.Rating,
		Image:       brandImage(req.Image, req.Gallery),
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrBrandIDTaken):
			writeError(w, http.StatusConflict, "brand id is already taken", "CONFLICT")
		case errors.Is(err, store.ErrBrandIDInvalid), errors.Is(err, store.ErrUnknownCurrency):
			writeError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
		default:
			writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		}
		return
	}

	if brands, err := h.brands.ListAll(r.Context()); err == nil {
		metrics.BrandsTotal.Set(float64(len(brands)))
	}
	writeJSON(w, http.StatusCreated, toBrandResponse(brand))
}

// Get returns a single brand, hidden or not, for its owner or an admin.
// GET /api/v1/admin/brands/{id}
//
// @Summary      Get a brand (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Param        id   path      string  true  "Brand ID"
// @Success      200  {object}  BrandResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/brands/{id} [get]
func (h *brandAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	brand, ok := h.loadGuarded(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toBrandResponse(brand))
}

// Update modifies a brand's catalog fields. Owners and admins.
// PUT /api/v1/admin/brands/{id}
//
// @Summary      Update a brand
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerToken
// @Param        id    path      string              true  "Brand ID"
// @Param        body  body      UpdateBrandRequest  true  "Brand"
// @Success      200   {object}  BrandResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /admin/brands/{id} [put]
func (h *brandAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.loadGuarded(w, r, id); !ok {
		return
	}

	var req UpdateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	brand, err := h.brands.Update(r.Context(), id, req.Name, req.Description, req.Category,
		req.Location, req.PriceRange, brandImage(req.Image, req.Gallery), req.IsVerified)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "brand not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toBrandResponse(brand))
}

// Delete removes a brand and all records scoped to it. Platform admins only;
// owning a brand does not grant the right to delete it.
// DELETE /api/v1/admin/brands/{id}
//
// @Summary      Delete a brand
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Param        id   path  string  true  "Brand ID"
// @Success      204  "No Content"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/brands/{id} [delete]
func (h *brandAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.guard.allow(w, r, authz.Resource{}) {
		return
	}

	err := h.brands.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "brand not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	if brands, err := h.brands.ListAll(r.Context()); err == nil {
		metrics.BrandsTotal.Set(float64(len(brands)))
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetVisibility toggles whether a brand appears on the storefront. Reserved to
// super admins.
// PUT /api/v1/admin/brands/{id}/visibility
//
// @Summary      Set brand visibility
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerToken
// @Param        id    path      string                   true  "Brand ID"
// @Param        body  body      UpdateVisibilityRequest  true  "Visibility"
// @Success      200   {object}  BrandResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /admin/brands/{id}/visibility [put]
func (h *brandAdminHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Existence first so a missing brand is a 404, then the super-admin gate.
	if _, err := h.brands.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "brand not found", "NOT_FOUND")
		} else {
			writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		}
		return
	}
	if !h.guard.allow(w, r, authz.Resource{OwnerBrandID: id, SuperAdminOnly: true}) {
		return
	}

	var req UpdateVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	brand, err := h.brands.SetVisibility(r.Context(), id, req.IsPublic)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "brand not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toBrandResponse(brand))
}

// UpdateCurrency changes a brand's currency, rewriting the displayed price
// ranges on the brand and its tailors in one transaction.
// PUT /api/v1/admin/brands/{id}/currency
//
// @Summary      Update brand currency
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerToken
// @Param        id    path      string                 true  "Brand ID"
// @Param        body  body      UpdateCurrencyRequest  true  "Currency"
// @Success      200   {object}  BrandResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /admin/brands/{id}/currency [put]
func (h *brandAdminHandler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.loadGuarded(w, r, id); !ok {
		return
	}

	var req UpdateCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	brand, err := h.brands.UpdateCurrency(r.Context(), id, req.Currency)
	if errors.Is(err, store.ErrUnknownCurrency) {
		writeError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "brand not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toBrandResponse(brand))
}

// loadGuarded checks the brand exists (404 before any ownership verdict) and
// that the caller may act on it, returning the loaded row.
func (h *brandAdminHandler) loadGuarded(w http.ResponseWriter, r *http.Request, id string) (*store.Brand, bool) {
	brand, err := h.brands.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "brand not found", "NOT_FOUND")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return nil, false
	}
	if !h.guard.allow(w, r, authz.Resource{OwnerBrandID: brand.ID}) {
		return nil, false
	}
	return brand, true
}
