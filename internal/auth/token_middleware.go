package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/elokaagu/omahub/internal/authz"
)

const PrincipalContextKey contextKey = "principal"

// BearerTokenMiddleware authenticates API requests via Bearer token.
// It establishes WHO is calling; whether they MAY do anything is decided per
// handler by the authorization layer, which performs its own profile lookup.
type BearerTokenMiddleware struct {
	tokens TokenStore
}

// NewBearerTokenMiddleware creates a new BearerTokenMiddleware.
func NewBearerTokenMiddleware(ts TokenStore) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{tokens: ts}
}

// Authenticate is an http.Handler middleware that extracts and validates a Bearer token.
// WHEN valid: injects an *authz.Principal into context and fires an async last_used_at update.
// WHEN invalid/missing/expired/revoked: returns 401 with {"error": "unauthorized"}.
func (m *BearerTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract Bearer token from Authorization header.
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			writeUnauthorized(w)
			return
		}
		plaintext := strings.TrimPrefix(authHeader, "Bearer ")
		if plaintext == "" {
			writeUnauthorized(w)
			return
		}

		// Hash the plaintext token and look it up.
		hash := HashToken(plaintext)
		rec, err := m.tokens.GetByHash(r.Context(), hash)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		// Reject revoked tokens.
		if rec.RevokedAt.Valid {
			writeUnauthorized(w)
			return
		}

		// Reject expired tokens.
		if rec.ExpiresAt.Valid && rec.ExpiresAt.Time.Before(time.Now()) {
			writeUnauthorized(w)
			return
		}

		// Update last_used_at asynchronously to avoid write overhead on every read.
		go m.tokens.UpdateLastUsed(context.Background(), rec.ID)

		principal := &authz.Principal{ID: rec.ProfileID, Email: rec.Email}
		ctx := context.WithValue(r.Context(), PrincipalContextKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PrincipalFromContext retrieves the authenticated principal from the context,
// or nil when the request carries no credentials.
func PrincipalFromContext(ctx context.Context) *authz.Principal {
	p, _ := ctx.Value(PrincipalContextKey).(*authz.Principal)
	return p
}

// writeUnauthorized writes a 401 JSON response with {"error": "unauthorized"}.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
