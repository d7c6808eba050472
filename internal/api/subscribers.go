package api

import (
	"encoding/csv"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elokaagu/omahub/internal/authz"
	"github.com/elokaagu/omahub/internal/store"
)

type subscriberAdminHandler struct {
	guard       *guard
	subscribers *store.SubscriberStore
}

func registerSubscriberAdminRoutes(r chi.Router, g *guard, deps Deps) {
	h := &subscriberAdminHandler{guard: g, subscribers: deps.Subscribers}

	r.Get("/admin/subscribers", h.List)
	r.Get("/admin/subscribers/export", h.ExportCSV)
}

// List returns all active newsletter subscribers. Platform admins only.
// GET /api/v1/admin/subscribers
//
// @Summary      List subscribers
// @Tags         Admin
// @Produce      json
// @Security     BearerToken
// @Success      200  {object}  SubscriberListResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/subscribers [get]
func (h *subscriberAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.guard.allow(w, r, authz.Resource{}) {
		return
	}

	subs, err := h.subscribers.ListActive(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	resp := &SubscriberListResponse{Subscribers: make([]*SubscriberResponse, 0, len(subs))}
	for _, s := range subs {
		resp.Subscribers = append(resp.Subscribers, toSubscriberResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ExportCSV streams the active subscriber list as CSV for mailing tools.
// GET /api/v1/admin/subscribers/export
//
// @Summary      Export subscribers as CSV
// @Tags         Admin
// @Produce      text/csv
// @Security     BearerToken
// @Success      200  {string}  string  "CSV payload"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/subscribers/export [get]
func (h *subscriberAdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if !h.guard.allow(w, r, authz.Resource{}) {
		return
	}

	subs, err := h.subscribers.ListActive(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="subscribers.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"email", "subscribed_at"})
	for _, s := range subs {
		_ = cw.Write([]string{s.Email, s.SubscribedAt.Format("2006-01-02T15:04:05Z07:00")})
	}
	cw.Flush()
}
