package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elokaagu/omahub/internal/authz"
	"github.com/elokaagu/omahub/internal/store"
)

type settingAdminHandler struct {
	guard    *guard
	settings *store.SettingStore
}

func registerSettingAdminRoutes(r chi.Router, g *guard, deps Deps) {
	h := &settingAdminHandler{guard: g, settings: deps.Settings}

	r.Put("/admin/settings/{name}", h.Set)
}

// Set creates or replaces a platform setting. Reserved to super admins.
// PUT /api/v1/admin/settings/{name}
//
// @Summary      Set a platform setting
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerToken
// @Param        name  path      string                true  "Setting name"
// @Param        body  body      UpdateSettingRequest  true  "Value"
// @Success      200   {object}  SettingResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /admin/settings/{name} [put]
func (h *settingAdminHandler) Set(w http.ResponseWriter, r *http.Request) {
	if !h.guard.allow(w, r, authz.Resource{SuperAdminOnly: true}) {
		return
	}

	var req UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	setting, err := h.settings.Set(r.Context(), chi.URLParam(r, "name"), req.Value)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toSettingResponse(setting))
}
