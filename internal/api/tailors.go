package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elokaagu/omahub/internal/authz"
	"github.com/elokaagu/omahub/internal/store"
)

type tailorAdminHandler struct {
	guard   *guard
	tailors *store.TailorStore
	brands  *store.BrandStore
}

func registerTailorAdminRoutes(r chi.Router, g *guard, deps Deps) {
	h := &tailorAdminHandler{guard: g, tailors: deps.Tailors, brands: deps.Brands}

	r.Get("/admin/tailors", h.List)
	r.Post("/admin/tailors", h.Create)
	r.Get("/admin/tailors/{id}", h.Get)
	r.Put("/admin/tailors/{id}", h.Update)
	r.Delete("/admin/tailors/{id}", h.Delete)
}

// List returns the tailoring services visible to the caller.
// GET /api/v1/admin/tailors
//
// @Summary      List tailors (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Success      200  {object}  TailorListResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/tailors [get]
func (h *tailorAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	role, ownedBrands, ok := h.guard.resolveScope(w, r)
	if !ok {
		return
	}

	var (
		tailors []*store.Tailor
		err     error
	)
	switch role {
	case authz.RoleAdmin, authz.RoleSuperAdmin:
		tailors, err = h.tailors.ListAll(r.Context())
	case authz.RoleBrandAdmin:
		for _, brandID := range ownedBrands {
			batch, berr := h.tailors.ListByBrand(r.Context(), brandID)
			if berr != nil {
				err = berr
				break
			}
			tailors = append(tailors, batch...)
		}
	default:
		writeError(w, http.StatusForbidden, "forbidden", "INSUFFICIENT_ROLE")
		return
	}
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

// Create adds a tailoring service under a brand.
// POST /api/v1/admin/tailors
//
// @Summary      Create a tailor
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerToken
// @Param        body  body      CreateTailorRequest  true  "Tailor"
// @Success      201   {object}  TailorResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /admin/tailors [post]
func (h *tailorAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTailorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.BrandID == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "brand_id and title are required", "BAD_REQUEST")
		return
	}

	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		b, err := h.brands.GetByID(ctx, req.BrandID)
		if err != nil {
			return "", err
		}
		return b.ID, nil
	}) {
		return
	}

	tailor, err := h.tailors.Create(r.Context(), req.BrandID, req.Title, req.Specialties,
		req.PriceRange, normalizeImage(req.Image))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusCreated, toTailorResponse(tailor))
}

// Get returns a single tailoring service.
// GET /api/v1/admin/tailors/{id}
//
// @Summary      Get a tailor (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Param        id   path      string  true  "Tailor ID"
// @Success      200  {object}  TailorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/tailors/{id} [get]
func (h *tailorAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		return h.tailors.BrandID(ctx, id)
	}) {
		return
	}

	tailor, err := h.tailors.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "tailor not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toTailorResponse(tailor))
}

// Update modifies a tailoring service.
// PUT /api/v1/admin/tailors/{id}
//
// @Summary      Update a tailor
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerToken
// @Param        id    path      string               true  "Tailor ID"
// @Param        body  body      UpdateTailorRequest  true  "Tailor"
// @Success      200   {object}  TailorResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /admin/tailors/{id} [put]
func (h *tailorAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		return h.tailors.BrandID(ctx, id)
	}) {
		return
	}

	var req UpdateTailorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	tailor, err := h.tailors.Update(r.Context(), id, req.Title, req.Specialties,
		req.PriceRange, normalizeImage(req.Image))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "tailor not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toTailorResponse(tailor))
}

// Delete removes a tailoring service.
// DELETE /api/v1/admin/tailors/{id}
//
// @Summary      Delete a tailor
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Param        id   path  string  true  "Tailor ID"
// @Success      204  "No Content"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/tailors/{id} [delete]
func (h *tailorAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		return h.tailors.BrandID(ctx, id)
	}) {
		return
	}

	err := h.tailors.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "tailor not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
