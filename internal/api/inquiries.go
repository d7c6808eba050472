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

type inquiryAdminHandler struct {
	guard     *guard
	inquiries *store.InquiryStore
}

func registerInquiryAdminRoutes(r chi.Router, g *guard, deps Deps) {
	h := &inquiryAdminHandler{guard: g, inquiries: deps.Inquiries}

	r.Get("/admin/inquiries", h.List)
	r.Get("/admin/inquiries/{id}", h.Get)
	r.Put("/admin/inquiries/{id}/status", h.UpdateStatus)
	r.Delete("/admin/inquiries/{id}", h.Delete)
}

// List returns the leads visible to the caller: every inquiry for admins, only
// owned brands' inquiries for brand admins.
// GET /api/v1/admin/inquiries
//
// @Summary      List inquiries (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Success      200  {object}  InquiryListResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/inquiries [get]
func (h *inquiryAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	role, ownedBrands, ok := h.guard.resolveScope(w, r)
	if !ok {
		return
	}

	var (
		inquiries []*store.Inquiry
		err       error
	)
	switch role {
	case authz.RoleAdmin, authz.RoleSuperAdmin:
		inquiries, err = h.inquiries.ListAll(r.Context())
	case authz.RoleBrandAdmin:
		inquiries, err = h.inquiries.ListByBrands(r.Context(), ownedBrands)
	default:
		writeError(w, http.StatusForbidden, "forbidden", "INSUFFICIENT_ROLE")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	resp := &InquiryListResponse{Inquiries: make([]*InquiryResponse, 0, len(inquiries))}
	for _, inq := range inquiries {
		resp.Inquiries = append(resp.Inquiries, toInquiryResponse(inq))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single inquiry for its brand's owner or an admin.
// GET /api/v1/admin/inquiries/{id}
//
// @Summary      Get an inquiry (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Param        id   path      string  true  "Inquiry ID"
// @Success      200  {object}  InquiryResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/inquiries/{id} [get]
func (h *inquiryAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		return h.inquiries.BrandID(ctx, id)
	}) {
		return
	}

	inq, err := h.inquiries.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "inquiry not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toInquiryResponse(inq))
}

// UpdateStatus moves an inquiry through the lead pipeline.
// PUT /api/v1/admin/inquiries/{id}/status
//
// @Summary      Update inquiry status
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerToken
// @Param        id    path      string                      true  "Inquiry ID"
// @Param        body  body      UpdateInquiryStatusRequest  true  "Status"
// @Success      200   {object}  InquiryResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /admin/inquiries/{id}/status [put]
func (h *inquiryAdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		return h.inquiries.BrandID(ctx, id)
	}) {
		return
	}

	var req UpdateInquiryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	inq, err := h.inquiries.UpdateStatus(r.Context(), id, req.Status)
	if errors.Is(err, store.ErrInvalidInquiryStatus) {
		writeError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "inquiry not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toInquiryResponse(inq))
}

// Delete removes an inquiry.
// DELETE /api/v1/admin/inquiries/{id}
//
// @Summary      Delete an inquiry
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Param        id   path  string  true  "Inquiry ID"
// @Success      204  "No Content"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/inquiries/{id} [delete]
func (h *inquiryAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.guard.allowBrandResource(w, r, func(ctx context.Context) (string, error) {
		return h.inquiries.BrandID(ctx, id)
	}) {
		return
	}

	err := h.inquiries.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "inquiry not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
