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

type productAdminHandler struct {
	guard    *guard
	products *store.ProductStore
	brands   *store.BrandStore
}

func registerProductAdminRoutes(r chi.Router, g *guard, deps Deps) {
	h := &productAdminHandler{guard: g, products: deps.Products, brands: deps.Brands}

	r.Get("/admin/products", h.List)
	r.Post("/admin/products", h.Create)
	r.Get("/admin/products/{id}", h.Get)
	r.Put("/admin/products/{id}", h.Update)
	r.Delete("/admin/products/{id}", h.Delete)
}

// List returns the products visible to the caller: every product for admins,
// only owned brands' products for brand admins.
// GET /api/v1/admin/products
//
// @Summary      List products (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Success      200  {object}  ProductListResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/products [get]
func (h *productAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	role, ownedBrands, ok := h.guard.resolveScope(w, r)
	if !ok {
		return
	}

	var (
		products []*store.Product
		err      error
	)
	switch role {
	case authz.RoleAdmin, authz.RoleSuperAdmin:
		products, err = h.products.ListAll(r.Context())
	case authz.RoleBrandAdmin:
		for _, brandID := range ownedBrands {
			batch, berr := h.products.ListByBrand(r.Context(), brandID)
			if berr != nil {
				err = berr
				break
			}
			products = append(products, batch...)
		}
	default:
		writeError(w, http.StatusForbidden, "forbidden", "INSUFFICIENT_ROLE")
		return
	}
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

// Create lists a new product under a brand. The caller must own the target
// brand or hold a platform role.
// POST /api/v1/admin/products
//
// @Summary      Create a product
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerToken
// @Param        body  body      CreateProductRequest  true  "Product"
// @Success      201   {object}  ProductResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /admin/products [post]
func (h *productAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.BrandID == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "brand_id and title are required", "BAD_REQUEST")
		return
	}

	// The target brand must exist before any ownership verdict.
	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		b, err := h.brands.GetByID(ctx, req.BrandID)
		if err != nil {
			return "", err
		}
		return b.ID, nil
	}) {
		return
	}

	product, err := h.products.Create(r.Context(), req.BrandID, req.Title, req.Description,
		req.Price, req.SalePrice, normalizeImage(req.Image), req.Category, req.InStock)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

// Get returns a single product for its brand's owner or an admin.
// GET /api/v1/admin/products/{id}
//
// @Summary      Get a product (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  ProductResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/products/{id} [get]
func (h *productAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		return h.products.BrandID(ctx, id)
	}) {
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Update modifies a product.
// PUT /api/v1/admin/products/{id}
//
// @Summary      Update a product
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerToken
// @Param        id    path      string                true  "Product ID"
// @Param        body  body      UpdateProductRequest  true  "Product"
// @Success      200   {object}  ProductResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /admin/products/{id} [put]
func (h *productAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		return h.products.BrandID(ctx, id)
	}) {
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	product, err := h.products.Update(r.Context(), id, req.Title, req.Description,
		req.Price, req.SalePrice, normalizeImage(req.Image), req.Category, req.InStock)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Delete removes a product.
// DELETE /api/v1/admin/products/{id}
//
// @Summary      Delete a product
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Param        id   path  string  true  "Product ID"
// @Success      204  "No Content"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/products/{id} [delete]
func (h *productAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		return h.products.BrandID(ctx, id)
	}) {
		return
	}

	err := h.products.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
