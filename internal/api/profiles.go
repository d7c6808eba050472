package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elokaagu/omahub/internal/authz"
	"github.com/elokaagu/omahub/internal/store"
)

type profileAdminHandler struct {
	guard    *guard
	profiles *store.ProfileStore
}

func registerProfileAdminRoutes(r chi.Router, g *guard, deps Deps) {
	h := &profileAdminHandler{guard: g, profiles: deps.Profiles}

	r.Get("/admin/profiles", h.List)
	r.Get("/admin/profiles/{id}", h.Get)
	r.Put("/admin/profiles/{id}/role", h.UpdateRole)
}

// List returns every profile with its role and owned brands. Platform admins only.
// GET /api/v1/admin/profiles
//
// @Summary      List profiles
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Success      200  {object}  ProfileListResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/profiles [get]
func (h *profileAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.guard.allow(w, r, authz.Resource{}) {
		return
	}

	profiles, err := h.profiles.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	resp := &ProfileListResponse{Profiles: make([]*ProfileResponse, 0, len(profiles))}
	for _, p := range profiles {
		pr, err := h.toResponse(r, p)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
			return
		}
		resp.Profiles = append(resp.Profiles, pr)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single profile. Platform admins only.
// GET /api/v1/admin/profiles/{id}
//
// @Summary      Get a profile
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Param        id   path      string  true  "Profile ID"
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/profiles/{id} [get]
func (h *profileAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !h.guard.allow(w, r, authz.Resource{}) {
		return
	}

	profile, err := h.profiles.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "profile not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	pr, err := h.toResponse(r, profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, pr)
}

// UpdateRole changes a profile's role and, for brand admins, the set of owned
// brands. Granting super_admin is itself reserved to super admins. The change
// takes effect on the target's next request; nothing is cached.
// PUT /api/v1/admin/profiles/{id}/role
//
// @Summary      Update a profile's role
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerToken
// @Param        id    path      string                    true  "Profile ID"
// @Param        body  body      UpdateProfileRoleRequest  true  "Role"
// @Success      200   {object}  ProfileResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /admin/profiles/{id}/role [put]
func (h *profileAdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if !authz.Role(req.Role).IsValid() {
		writeError(w, http.StatusBadRequest, "role must be one of: user, brand_admin, admin, super_admin", "BAD_REQUEST")
		return
	}

	resource := authz.Resource{}
	if req.Role == string(authz.RoleSuperAdmin) {
		resource.SuperAdminOnly = true
	}
	if !h.guard.allow(w, r, resource) {
		return
	}

	profile, err := h.profiles.UpdateRole(r.Context(), chi.URLParam(r, "id"), req.Role, req.OwnedBrands)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "profile not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	pr, err := h.toResponse(r, profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, pr)
}

func (h *profileAdminHandler) toResponse(r *http.Request, p *store.Profile) (*ProfileResponse, error) {
	brands, err := h.profiles.OwnedBrands(r.Context(), p.ID)
	if err != nil {
		return nil, err
	}
	if brands == nil {
		brands = []string{}
	}
	return &ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Role:        p.Role,
		OwnedBrands: brands,
		CreatedAt:   p.CreatedAt,
	}, nil
}
