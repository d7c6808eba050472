package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elokaagu/omahub/internal/auth"
	"github.com/elokaagu/omahub/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	BearerAuth  *auth.BearerTokenMiddleware
	Profiles    *store.ProfileStore
	Brands      *store.BrandStore
	Products    *store.ProductStore
	Collections *store.CollectionStore
	Tailors     *store.TailorStore
	Inquiries   *store.InquiryStore
	Subscribers *store.SubscriberStore
	Settings    *store.SettingStore
	Tokens      auth.TokenStore

	// LegacySuperAdmins feeds the authorization layer's override list.
	LegacySuperAdmins []string
}

// NewAPIRouter creates a chi sub-router for /api/v1. Storefront routes are
// public; everything else requires Bearer token authentication and goes
// through the authorization layer per handler.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	// All API responses are JSON.
	r.Use(jsonContentType)

	g := newGuard(deps.Profiles, deps.LegacySuperAdmins)

	// Public storefront routes (no credentials).
	registerStorefrontRoutes(r, deps)

	// Administrative routes: bearer token establishes the principal, the
	// guard decides per operation.
	r.Group(func(r chi.Router) {
		r.Use(deps.BearerAuth.Authenticate)

		registerBrandAdminRoutes(r, g, deps)
		registerProductAdminRoutes(r, g, deps)
		registerCollectionAdminRoutes(r, g, deps)
		registerTailorAdminRoutes(r, g, deps)
		registerInquiryAdminRoutes(r, g, deps)
		registerSubscriberAdminRoutes(r, g, deps)
		registerSettingAdminRoutes(r, g, deps)
		registerProfileAdminRoutes(r, g, deps)
		registerTokenRoutes(r, deps.Tokens)
	})

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
