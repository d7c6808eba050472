package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/elokaagu/omahub/internal/auth"
	"github.com/elokaagu/omahub/internal/store"
)

// StudioHandler serves the session-authenticated studio surface. It mirrors a
// subset of the token API for users who sign in through the browser and have
// no API token yet.
type StudioHandler struct {
	profiles *store.ProfileStore
	tokens   auth.TokenStore
}

func NewStudioHandler(profiles *store.ProfileStore, tokens auth.TokenStore) *StudioHandler {
	return &StudioHandler{profiles: profiles, tokens: tokens}
}

type studioIdentity struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	Role        string   `json:"role"`
	OwnedBrands []string `json:"owned_brands"`
}

type studioToken struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type studioCreateTokenRequest struct {
	Name      string     `json:"name"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Show returns the signed-in user's identity.
func (h *StudioHandler) Show(w http.ResponseWriter, r *http.Request) {
	profile := auth.ProfileFromContext(r.Context())
	if profile == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	brands, err := h.profiles.OwnedBrands(r.Context(), profile.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if brands == nil {
		brands = []string{}
	}

	writeStudioJSON(w, http.StatusOK, &studioIdentity{
		ID:          profile.ID,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		Role:        profile.Role,
		OwnedBrands: brands,
	})
}

// ListTokens returns the signed-in user's active API tokens.
func (h *StudioHandler) ListTokens(w http.ResponseWriter, r *http.Request) {
	profile := auth.ProfileFromContext(r.Context())
	if profile == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	records, err := h.tokens.ListByProfile(r.Context(), profile.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]*studioToken, 0, len(records))
	for _, rec := range records {
		if rec.RevokedAt.Valid {
			continue
		}
		out = append(out, toStudioToken(rec))
	}
	writeStudioJSON(w, http.StatusOK, map[string][]*studioToken{"tokens": out})
}

// CreateToken mints an API token for the signed-in user. The plaintext is
// returned once and never stored.
func (h *StudioHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	profile := auth.ProfileFromContext(r.Context())
	if profile == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req studioCreateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	rec, err := h.tokens.Create(r.Context(), profile.ID, profile.Email, req.Name, hash, req.ExpiresAt)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeStudioJSON(w, http.StatusCreated, map[string]any{
		"token":   plaintext,
		"details": toStudioToken(rec),
	})
}

// RevokeToken invalidates one of the signed-in user's tokens.
func (h *StudioHandler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	profile := auth.ProfileFromContext(r.Context())
	if profile == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	err := h.tokens.Revoke(r.Context(), chi.URLParam(r, "id"), profile.ID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "token not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toStudioToken(rec *auth.TokenRecord) *studioToken {
	t := &studioToken{ID: rec.ID, Name: rec.Name, CreatedAt: rec.CreatedAt}
	if rec.LastUsedAt.Valid {
		v := rec.LastUsedAt.Time
		t.LastUsedAt = &v
	}
	if rec.ExpiresAt.Valid {
		v := rec.ExpiresAt.Time
		t.ExpiresAt = &v
	}
	return t
}

func writeStudioJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
