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

type collectionAdminHandler struct {
	guard       *guard
	collections *store.CollectionStore
	brands      *store.BrandStore
}

func registerCollectionAdminRoutes(r chi.Router, g *guard, deps Deps) {
	h := &collectionAdminHandler{guard: g, collections: deps.Collections, brands: deps.Brands}

	r.Get("/admin/collections", h.List)
	r.Post("/admin/collections", h.Create)
	r.Get("/admin/collections/{id}", h.Get)
	r.Put("/admin/collections/{id}", h.Update)
	r.Delete("/admin/collections/{id}", h.Delete)
}

// List returns the collections visible to the caller.
// GET /api/v1/admin/collections
//
// @Summary      List collections (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Success      200  {object}  CollectionListResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/collections [get]
func (h *collectionAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	role, ownedBrands, ok := h.guard.resolveScope(w, r)
	if !ok {
		return
	}

	var (
		collections []*store.Collection
		err         error
	)
	switch role {
	case authz.RoleAdmin, authz.RoleSuperAdmin:
		collections, err = h.collections.ListAll(r.Context())
	case authz.RoleBrandAdmin:
		for _, brandID := range ownedBrands {
			batch, berr := h.collections.ListByBrand(r.Context(), brandID)
			if berr != nil {
				err = berr
				break
			}
			collections = append(collections, batch...)
		}
	default:
		writeError(w, http.StatusForbidden, "forbidden", "INSUFFICIENT_ROLE")
		return
	}
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

// Create adds a new collection under a brand.
// POST /api/v1/admin/collections
//
// @Summary      Create a collection
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerToken
// @Param        body  body      CreateCollectionRequest  true  "Collection"
// @Success      201   {object}  CollectionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /admin/collections [post]
func (h *collectionAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
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

	collection, err := h.collections.Create(r.Context(), req.BrandID, req.Title,
		req.Description, normalizeImage(req.Image), req.Season)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusCreated, toCollectionResponse(collection))
}

// Get returns a single collection.
// GET /api/v1/admin/collections/{id}
//
// @Summary      Get a collection (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Param        id   path      string  true  "Collection ID"
// @Success      200  {object}  CollectionResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/collections/{id} [get]
func (h *collectionAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		return h.collections.BrandID(ctx, id)
	}) {
		return
	}

	collection, err := h.collections.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "collection not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toCollectionResponse(collection))
}

// Update modifies a collection.
// PUT /api/v1/admin/collections/{id}
//
// @Summary      Update a collection
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerToken
// @Param        id    path      string                   true  "Collection ID"
// @Param        body  body      UpdateCollectionRequest  true  "Collection"
// @Success      200   {object}  CollectionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /admin/collections/{id} [put]
func (h *collectionAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		return h.collections.BrandID(ctx, id)
	}) {
		return
	}

	var req UpdateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	collection, err := h.collections.Update(r.Context(), id, req.Title, req.Description,
		normalizeImage(req.Image), req.Season)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "collection not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toCollectionResponse(collection))
}

// Delete removes a collection.
// DELETE /api/v1/admin/collections/{id}
//
// @Summary      Delete a collection
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Param        id   path  string  true  "Collection ID"
// @Success      204  "No Content"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/collections/{id} [delete]
func (h *collectionAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		return h.collections.BrandID(ctx, id)
	}) {
		return
	}

	err := h.collections.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "collection not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
