package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/elokaagu/omahub/internal/store"
	"github.com/elokaagu/omahub/internal/testutil"
)

func TestProfileUpsert_PreservesRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	profiles := store.NewProfileStore(db)
	ctx := context.Background()

	p, err := profiles.Upsert(ctx, "test", "sub-1", "alice@example.com", "Alice")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if p.Role != "user" {
		t.Fatalf("new profile role = %q, want user", p.Role)
	}

	if _, err := profiles.UpdateRole(ctx, p.ID, "admin", nil); err != nil {
		t.Fatalf("update role: %v", err)
	}

	// A later login must not reset the granted role.
	p2, err := profiles.Upsert(ctx, "test", "sub-1", "alice@new.example.com", "Alice B")
	if err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	if p2.Role != "admin" {
		t.Errorf("role after re-login = %q, want admin", p2.Role)
	}
	if p2.Email != "alice@new.example.com" {
		t.Errorf("email = %q, want refreshed address", p2.Email)
	}
	if p2.ID != p.ID {
		t.Errorf("id changed across logins: %q != %q", p2.ID, p.ID)
	}
}

func TestProfileUpdateRole_ReplacesOwnedBrands(t *testing.T) {
	db := testutil.NewTestDB(t)
	profiles := store.NewProfileStore(db)
	brands := store.NewBrandStore(db)
	ctx := context.Background()

	for _, id := range []string{"brand-a", "brand-b", "brand-c"} {
		if _, err := brands.Create(ctx, &store.Brand{ID: id, Name: id}); err != nil {
			t.Fatalf("seed brand %s: %v", id, err)
		}
	}
	p, err := profiles.Upsert(ctx, "test", "sub-1", "owner@example.com", "Owner")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := profiles.UpdateRole(ctx, p.ID, "brand_admin", []string{"brand-a", "brand-b"}); err != nil {
		t.Fatalf("grant: %v", err)
	}
	owned, err := profiles.OwnedBrands(ctx, p.ID)
	if err != nil {
		t.Fatalf("owned brands: %v", err)
	}
	if len(owned) != 2 || owned[0] != "brand-a" || owned[1] != "brand-b" {
		t.Fatalf("owned = %v, want [brand-a brand-b]", owned)
	}

	// Reassigning replaces, not appends.
	if _, err := profiles.UpdateRole(ctx, p.ID, "brand_admin", []string{"brand-c"}); err != nil {
		t.Fatalf("reassign: %v", err)
	}
	owned, err = profiles.OwnedBrands(ctx, p.ID)
	if err != nil {
		t.Fatalf("owned brands: %v", err)
	}
	if len(owned) != 1 || owned[0] != "brand-c" {
		t.Fatalf("owned = %v, want [brand-c]", owned)
	}

	// Demotion clears the set entirely.
	if _, err := profiles.UpdateRole(ctx, p.ID, "user", []string{"brand-c"}); err != nil {
		t.Fatalf("demote: %v", err)
	}
	owned, err = profiles.OwnedBrands(ctx, p.ID)
	if err != nil {
		t.Fatalf("owned brands: %v", err)
	}
	if len(owned) != 0 {
		t.Errorf("owned after demotion = %v, want empty", owned)
	}
}

func TestProfileUpdateRole_UnknownProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	profiles := store.NewProfileStore(db)

	_, err := profiles.UpdateRole(context.Background(), "no-such-id", "admin", nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
