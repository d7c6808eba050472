package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/elokaagu/omahub/docs/swagger"
	"github.com/elokaagu/omahub/internal/api"
	"github.com/elokaagu/omahub/internal/auth"
	"github.com/elokaagu/omahub/internal/store"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	SessionManager *scs.SessionManager
	AuthHandlers   *auth.Handlers
	AuthMiddleware *auth.Middleware

	ProfileStore    *store.ProfileStore
	BrandStore      *store.BrandStore
	ProductStore    *store.ProductStore
	CollectionStore *store.CollectionStore
	TailorStore     *store.TailorStore
	InquiryStore    *store.InquiryStore
	SubscriberStore *store.SubscriberStore
	SettingStore    *store.SettingStore
	TokenStore      auth.TokenStore

	LegacySuperAdmins []string
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(deps.SessionManager.LoadAndSave)

	// Auth routes (no auth required)
	r.Get("/auth/login", deps.AuthHandlers.Login)
	r.Get("/auth/callback", deps.AuthHandlers.Callback)
	r.Post("/auth/logout", deps.AuthHandlers.Logout)

	// Studio: the session-authenticated surface where signed-in users inspect
	// their identity and mint API tokens.
	studio := NewStudioHandler(deps.ProfileStore, deps.TokenStore)
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequireAuth)

		r.Get("/studio", studio.Show)
		r.Get("/studio/tokens", studio.ListTokens)
		r.Post("/studio/tokens", studio.CreateToken)
		r.Delete("/studio/tokens/{id}", studio.RevokeToken)
	})

	// Swagger UI, no auth required.
	r.Get("/api/docs/*", httpSwagger.WrapHandler)

	// API sub-router at /api/v1.
	bearerMiddleware := auth.NewBearerTokenMiddleware(deps.TokenStore)
	apiRouter := api.NewAPIRouter(api.Deps{
		BearerAuth:        bearerMiddleware,
		Profiles:          deps.ProfileStore,
		Brands:            deps.BrandStore,
		Products:          deps.ProductStore,
		Collections:       deps.CollectionStore,
		Tailors:           deps.TailorStore,
		Inquiries:         deps.InquiryStore,
		Subscribers:       deps.SubscriberStore,
		Settings:          deps.SettingStore,
		Tokens:            deps.TokenStore,
		LegacySuperAdmins: deps.LegacySuperAdmins,
	})
	r.Mount("/api/v1", apiRouter)

	// Prometheus metrics.
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
