package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/elokaagu/omahub/internal/auth"
	"github.com/elokaagu/omahub/internal/authz"
	"github.com/elokaagu/omahub/internal/metrics"
	"github.com/elokaagu/omahub/internal/store"
)

// profileDirectory adapts the profile store to the authorization layer's
// lookup contract.
type profileDirectory struct {
	profiles *store.ProfileStore
}

func (d *profileDirectory) ProfileByID(ctx context.Context, id string) (*authz.Profile, error) {
	p, err := d.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	brands, err := d.profiles.OwnedBrands(ctx, id)
	if err != nil {
		return nil, err
	}
	return &authz.Profile{Role: authz.Role(p.Role), OwnedBrands: brands}, nil
}

// guard maps authorization verdicts onto HTTP responses. Denials become 401 or
// 403 with the denial reason as the error code; a failed profile lookup is a
// 500, never a denial.
type guard struct {
	authorizer *authz.Authorizer
}

func newGuard(profiles *store.ProfileStore, legacySuperAdmins []string) *guard {
	return &guard{authorizer: authz.New(&profileDirectory{profiles: profiles}, legacySuperAdmins)}
}

// allow evaluates the caller against resource and writes the error response on
// denial. Returns true when the request may proceed.
func (g *guard) allow(w http.ResponseWriter, r *http.Request, resource authz.Resource) bool {
	principal := auth.PrincipalFromContext(r.Context())
	verdict, err := g.authorizer.Decide(r.Context(), principal, resource)
	if err != nil {
		metrics.AuthzLookupErrorsTotal.Inc()
		metrics.AuthzDecisionsTotal.WithLabelValues("error", string(verdict.Reason)).Inc()
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return false
	}
	if !verdict.Allow {
		metrics.AuthzDecisionsTotal.WithLabelValues("deny", string(verdict.Reason)).Inc()
		if verdict.Reason == authz.ReasonUnauthenticated {
			writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		} else {
			writeError(w, http.StatusForbidden, "forbidden", strings.ToUpper(string(verdict.Reason)))
		}
		return false
	}
	metrics.AuthzDecisionsTotal.WithLabelValues("allow", "").Inc()
	return true
}

// allowBrandResource resolves the owning brand of a resource via lookup and
// evaluates the caller against it. Existence is checked before ownership so a
// missing resource is always a 404, not a denial. lookup returns
// store.ErrNotFound when the resource does not exist.
func (g *guard) allowBrandResource(w http.ResponseWriter, r *http.Request, lookup func(context.Context) (string, error)) bool {
	brandID, err := lookup(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
		return false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return false
	}
	return g.allow(w, r, authz.Resource{OwnerBrandID: brandID})
}

// resolveScope returns the caller's effective role and owned brands for
// scoping list queries. On failure the error response is already written and
// ok is false.
func (g *guard) resolveScope(w http.ResponseWriter, r *http.Request) (role authz.Role, ownedBrands []string, ok bool) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return "", nil, false
	}
	role, ownedBrands, err := g.authorizer.Resolve(r.Context(), principal)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusForbidden, "forbidden", strings.ToUpper(string(authz.ReasonProfileNotFound)))
		return "", nil, false
	}
	if err != nil {
		metrics.AuthzLookupErrorsTotal.Inc()
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return "", nil, false
	}
	return role, ownedBrands, true
}
