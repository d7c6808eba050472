package authz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/elokaagu/omahub/internal/authz"
	"github.com/elokaagu/omahub/internal/store"
)

// fakeDirectory serves profiles from a map and can be forced to fail.
type fakeDirectory struct {
	profiles map[string]*authz.Profile
	err      error
}

func (d *fakeDirectory) ProfileByID(_ context.Context, id string) (*authz.Profile, error) {
	if d.err != nil {
		return nil, d.err
	}
	p, ok := d.profiles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p, nil
}

func newAuthorizer(dir *fakeDirectory) *authz.Authorizer {
	return authz.New(dir, []string{"eloka.agu@icloud.com", "legacy.admin@omahub.com"})
}

func TestDecide(t *testing.T) {
	dir := &fakeDirectory{profiles: map[string]*authz.Profile{
		"u-super": {Role: authz.RoleSuperAdmin},
		"u-admin": {Role: authz.RoleAdmin},
		"u-brand": {Role: authz.RoleBrandAdmin, OwnedBrands: []string{"ehbs-couture", "adire-lagos"}},
		"u-plain": {Role: authz.RoleUser},
		"u-weird": {Role: authz.Role("moderator")},
	}}
	a := newAuthorizer(dir)
	ctx := context.Background()

	tests := []struct {
		name       string
		principal  *authz.Principal
		resource   authz.Resource
		wantAllow  bool
		wantReason authz.Reason
	}{
		{
			name:       "nil principal denies",
			principal:  nil,
			resource:   authz.Resource{},
			wantReason: authz.ReasonUnauthenticated,
		},
		{
			name:      "super admin allows platform-wide resource",
			principal: &authz.Principal{ID: "u-super", Email: "s@x.com"},
			resource:  authz.Resource{SuperAdminOnly: true},
			wantAllow: true,
		},
		{
			name:      "super admin allows brand-scoped resource it does not own",
			principal: &authz.Principal{ID: "u-super", Email: "s@x.com"},
			resource:  authz.Resource{OwnerBrandID: "other-brand"},
			wantAllow: true,
		},
		{
			name:      "admin allows ordinary admin resource",
			principal: &authz.Principal{ID: "u-admin", Email: "a@x.com"},
			resource:  authz.Resource{OwnerBrandID: "ehbs-couture"},
			wantAllow: true,
		},
		{
			name:       "admin denied super-admin-only resource",
			principal:  &authz.Principal{ID: "u-admin", Email: "a@x.com"},
			resource:   authz.Resource{SuperAdminOnly: true},
			wantReason: authz.ReasonInsufficientRole,
		},
		{
			name:      "brand admin allows owned brand",
			principal: &authz.Principal{ID: "u-brand", Email: "b@x.com"},
			resource:  authz.Resource{OwnerBrandID: "ehbs-couture"},
			wantAllow: true,
		},
		{
			name:       "brand admin denied other brand",
			principal:  &authz.Principal{ID: "u-brand", Email: "b@x.com"},
			resource:   authz.Resource{OwnerBrandID: "other-brand"},
			wantReason: authz.ReasonNotBrandOwner,
		},
		{
			name:       "brand admin denied platform-wide resource",
			principal:  &authz.Principal{ID: "u-brand", Email: "b@x.com"},
			resource:   authz.Resource{},
			wantReason: authz.ReasonInsufficientRole,
		},
		{
			name:       "brand admin denied super-admin-only resource",
			principal:  &authz.Principal{ID: "u-brand", Email: "b@x.com"},
			resource:   authz.Resource{OwnerBrandID: "ehbs-couture", SuperAdminOnly: true},
			wantReason: authz.ReasonInsufficientRole,
		},
		{
			name:       "plain user denied",
			principal:  &authz.Principal{ID: "u-plain", Email: "p@x.com"},
			resource:   authz.Resource{OwnerBrandID: "ehbs-couture"},
			wantReason: authz.ReasonInsufficientRole,
		},
		{
			name:       "unrecognized stored role denied",
			principal:  &authz.Principal{ID: "u-weird", Email: "w@x.com"},
			resource:   authz.Resource{},
			wantReason: authz.ReasonInsufficientRole,
		},
		{
			name:       "no profile and not on legacy list denied",
			principal:  &authz.Principal{ID: "u-ghost", Email: "ghost@x.com"},
			resource:   authz.Resource{},
			wantReason: authz.ReasonProfileNotFound,
		},
		{
			name:      "legacy override grants super admin without a profile row",
			principal: &authz.Principal{ID: "u-ghost", Email: "eloka.agu@icloud.com"},
			resource:  authz.Resource{SuperAdminOnly: true},
			wantAllow: true,
		},
		{
			name:      "legacy override matches case-insensitively",
			principal: &authz.Principal{ID: "u-ghost", Email: "Eloka.Agu@iCloud.com"},
			resource:  authz.Resource{OwnerBrandID: "any-brand"},
			wantAllow: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := a.Decide(ctx, tt.principal, tt.resource)
			if err != nil {
				t.Fatalf("Decide: %v", err)
			}
			if v.Allow != tt.wantAllow {
				t.Errorf("allow = %v, want %v (reason %q)", v.Allow, tt.wantAllow, v.Reason)
			}
			if !tt.wantAllow && v.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", v.Reason, tt.wantReason)
			}
		})
	}
}

func TestDecide_LookupFailure(t *testing.T) {
	boom := errors.New("connection refused")
	a := newAuthorizer(&fakeDirectory{err: boom})

	v, err := a.Decide(context.Background(), &authz.Principal{ID: "u-1", Email: "x@x.com"}, authz.Resource{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if v.Allow {
		t.Error("lookup failure must not allow")
	}
	if v.Reason != authz.ReasonLookupFailed {
		t.Errorf("reason = %q, want %q", v.Reason, authz.ReasonLookupFailed)
	}
}

// A lookup failure must not fall back to the legacy override: the caller
// cannot tell a missing profile from an unreachable profile store.
func TestDecide_LookupFailureDoesNotTriggerLegacyOverride(t *testing.T) {
	a := newAuthorizer(&fakeDirectory{err: errors.New("db down")})

	v, err := a.Decide(context.Background(), &authz.Principal{ID: "u-1", Email: "eloka.agu@icloud.com"}, authz.Resource{})
	if err == nil {
		t.Fatal("expected error")
	}
	if v.Allow {
		t.Error("legacy override must not apply on lookup failure")
	}
	if v.Reason != authz.ReasonLookupFailed {
		t.Errorf("reason = %q, want %q", v.Reason, authz.ReasonLookupFailed)
	}
}

func TestDecide_Idempotent(t *testing.T) {
	dir := &fakeDirectory{profiles: map[string]*authz.Profile{
		"u-brand": {Role: authz.RoleBrandAdmin, OwnedBrands: []string{"ehbs-couture"}},
	}}
	a := newAuthorizer(dir)
	ctx := context.Background()
	principal := &authz.Principal{ID: "u-brand", Email: "b@x.com"}
	resource := authz.Resource{OwnerBrandID: "ehbs-couture"}

	first, err := a.Decide(ctx, principal, resource)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	second, err := a.Decide(ctx, principal, resource)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if first != second {
		t.Errorf("verdicts differ: %+v vs %+v", first, second)
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range []authz.Role{authz.RoleUser, authz.RoleBrandAdmin, authz.RoleAdmin, authz.RoleSuperAdmin} {
		if !role.IsValid() {
			t.Errorf("%q should be valid", role)
		}
	}
	for _, role := range []authz.Role{"", "moderator", "ADMIN", "Super_Admin"} {
		if role.IsValid() {
			t.Errorf("%q should be invalid", role)
		}
	}
}
