// Package authz implements the role and brand-ownership checks that gate every
// administrative operation. It is a pure decision layer: the only I/O is the
// profile lookup, which is injected via ProfileDirectory.
package authz

import (
	"context"
	"errors"
	"strings"

	"github.com/elokaagu/omahub/internal/store"
)

// Role is the closed set of platform roles. Anything outside the four known
// values denies administrative access.
type Role string

const (
	RoleUser       Role = "user"
	RoleBrandAdmin Role = "brand_admin"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleBrandAdmin, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// Reason enumerates why a request was denied or could not be decided.
type Reason string

const (
	// ReasonUnauthenticated: no principal on the request.
	ReasonUnauthenticated Reason = "unauthenticated"
	// ReasonProfileNotFound: the principal has no stored profile and is not
	// on the legacy override list.
	ReasonProfileNotFound Reason = "profile_not_found"
	// ReasonInsufficientRole: the resolved role does not cover the operation.
	ReasonInsufficientRole Reason = "insufficient_role"
	// ReasonNotBrandOwner: a brand_admin acting outside their owned brands.
	ReasonNotBrandOwner Reason = "not_brand_owner"
	// ReasonLookupFailed: the profile lookup itself failed. This is an
	// infrastructure fault, not a denial, and callers must surface it as one.
	ReasonLookupFailed Reason = "lookup_failed"
)

// Principal is the authenticated caller. A nil *Principal means the request
// carries no credentials.
type Principal struct {
	ID    string
	Email string
}

// Resource describes the target of an operation for authorization purposes.
// The zero value is an admin-wide resource: no owning brand, not reserved to
// super admins.
type Resource struct {
	// OwnerBrandID is the brand the resource belongs to. Empty for
	// platform-wide resources.
	OwnerBrandID string

	// SuperAdminOnly marks operations reserved to super_admin, such as
	// toggling a brand's public visibility. Plain admins are denied.
	SuperAdminOnly bool
}

// Verdict is the transient outcome of an authorization check. It is computed
// per request and never cached: a role change takes effect on the next request.
type Verdict struct {
	Allow  bool
	Reason Reason

	// Role is the role the decision resolved for the principal, when one was
	// resolved. Informational, for logging and metrics.
	Role Role
}

// Profile is the stored authorization state of a principal.
type Profile struct {
	Role        Role
	OwnedBrands []string
}

// ProfileDirectory resolves a principal id to its stored profile. A missing
// profile is reported as store.ErrNotFound; any other error is treated as an
// infrastructure failure.
type ProfileDirectory interface {
	ProfileByID(ctx context.Context, id string) (*Profile, error)
}

// Authorizer combines the profile directory with the legacy override list to
// produce allow/deny verdicts.
type Authorizer struct {
	directory    ProfileDirectory
	legacyAdmins map[string]struct{}
}

// New creates an Authorizer. legacyAdmins are emails granted super_admin when
// no profile row exists, kept for accounts predating the profiles table. The
// list is copied and never mutated afterwards.
func New(directory ProfileDirectory, legacyAdmins []string) *Authorizer {
	set := make(map[string]struct{}, len(legacyAdmins))
	for _, email := range legacyAdmins {
		set[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}
	return &Authorizer{directory: directory, legacyAdmins: set}
}

// Decide evaluates whether principal may perform an operation on resource.
//
// Ordinary denials come back as a Verdict with Allow=false and a nil error.
// Only a failed profile lookup returns a non-nil error, alongside a
// lookup_failed verdict, so callers can surface a server fault instead of
// masking it as a denial.
func (a *Authorizer) Decide(ctx context.Context, principal *Principal, resource Resource) (Verdict, error) {
	if principal == nil {
		return Verdict{Reason: ReasonUnauthenticated}, nil
	}

	role, ownedBrands, err := a.resolve(ctx, principal)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Verdict{Reason: ReasonProfileNotFound}, nil
		}
		return Verdict{Reason: ReasonLookupFailed}, err
	}

	switch role {
	case RoleSuperAdmin:
		return Verdict{Allow: true, Role: role}, nil

	case RoleAdmin:
		if resource.SuperAdminOnly {
			return Verdict{Reason: ReasonInsufficientRole, Role: role}, nil
		}
		return Verdict{Allow: true, Role: role}, nil

	case RoleBrandAdmin:
		if resource.SuperAdminOnly {
			return Verdict{Reason: ReasonInsufficientRole, Role: role}, nil
		}
		if resource.OwnerBrandID == "" {
			// Brand admins hold no platform-wide rights.
			return Verdict{Reason: ReasonInsufficientRole, Role: role}, nil
		}
		for _, owned := range ownedBrands {
			if owned == resource.OwnerBrandID {
				return Verdict{Allow: true, Role: role}, nil
			}
		}
		return Verdict{Reason: ReasonNotBrandOwner, Role: role}, nil

	case RoleUser:
		return Verdict{Reason: ReasonInsufficientRole, Role: role}, nil

	default:
		// Unrecognized role values stored in the database deny rather than
		// falling through to any grant.
		return Verdict{Reason: ReasonInsufficientRole, Role: role}, nil
	}
}

// Resolve returns the effective role and owned brands for a principal,
// applying the same lookup and legacy override Decide uses. Handlers use it to
// scope list queries after a Decide has already allowed the request. A missing
// profile surfaces as store.ErrNotFound.
func (a *Authorizer) Resolve(ctx context.Context, principal *Principal) (Role, []string, error) {
	if principal == nil {
		return "", nil, store.ErrNotFound
	}
	return a.resolve(ctx, principal)
}

// resolve looks up the principal's profile, applying the legacy override when
// no profile exists. The override is evaluated per request and never writes a
// profile row.
func (a *Authorizer) resolve(ctx context.Context, principal *Principal) (Role, []string, error) {
	profile, err := a.directory.ProfileByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) && a.isLegacyAdmin(principal.Email) {
			return RoleSuperAdmin, nil, nil
		}
		return "", nil, err
	}
	return profile.Role, profile.OwnedBrands, nil
}

func (a *Authorizer) isLegacyAdmin(email string) bool {
	_, ok := a.legacyAdmins[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
