package auth

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/elokaagu/omahub/internal/store"
)

type contextKey string

const ProfileContextKey contextKey = "profile"

// Middleware provides HTTP middleware for session-based authentication.
type Middleware struct {
	sessions *scs.SessionManager
	profiles *store.ProfileStore
}

// NewMiddleware creates a new auth Middleware.
func NewMiddleware(sm *scs.SessionManager, ps *store.ProfileStore) *Middleware {
	return &Middleware{sessions: sm, profiles: ps}
}

// RequireAuth redirects to /auth/login if no valid session exists.
// On success, sets the *store.Profile on the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profileID := m.sessions.GetString(r.Context(), SessionProfileIDKey)
		if profileID == "" {
			http.Redirect(w, r, "/auth/login?redirect="+r.URL.RequestURI(), http.StatusFound)
			return
		}

		profile, err := m.profiles.GetByID(r.Context(), profileID)
		if err != nil {
			// Session references a deleted profile, so destroy and redirect
			_ = m.sessions.Destroy(r.Context())
			http.Redirect(w, r, "/auth/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), ProfileContextKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ProfileFromContext retrieves the authenticated profile from the context.
func ProfileFromContext(ctx context.Context) *store.Profile {
	p, _ := ctx.Value(ProfileContextKey).(*store.Profile)
	return p
}
