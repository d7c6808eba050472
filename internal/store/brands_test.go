package store_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/elokaagu/omahub/internal/store"
	"github.com/elokaagu/omahub/internal/testutil"
)

func TestBrandCreate_DuplicateID(t *testing.T) {
	db := testutil.NewTestDB(t)
	brands := store.NewBrandStore(db)
	ctx := context.Background()

	if _, err := brands.Create(ctx, &store.Brand{ID: "ehbs-couture", Name: "Ehbs"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := brands.Create(ctx, &store.Brand{ID: "ehbs-couture", Name: "Imposter"})
	if !errors.Is(err, store.ErrBrandIDTaken) {
		t.Errorf("err = %v, want ErrBrandIDTaken", err)
	}
}

func TestBrandCreate_RejectsBadInput(t *testing.T) {
	db := testutil.NewTestDB(t)
	brands := store.NewBrandStore(db)
	ctx := context.Background()

	if _, err := brands.Create(ctx, &store.Brand{ID: "Bad ID", Name: "x"}); !errors.Is(err, store.ErrBrandIDInvalid) {
		t.Errorf("bad id err = %v, want ErrBrandIDInvalid", err)
	}
	if _, err := brands.Create(ctx, &store.Brand{ID: "ok-brand", Name: "x", Currency: "BTC"}); !errors.Is(err, store.ErrUnknownCurrency) {
		t.Errorf("bad currency err = %v, want ErrUnknownCurrency", err)
	}
}

func TestBrandUpdateCurrency_SyncsTailors(t *testing.T) {
	db := testutil.NewTestDB(t)
	brands := store.NewBrandStore(db)
	tailors := store.NewTailorStore(db)
	ctx := context.Background()

	if _, err := brands.Create(ctx, &store.Brand{ID: "ehbs-couture", Name: "Ehbs", PriceRange: "$100 - $500"}); err != nil {
		t.Fatalf("create brand: %v", err)
	}
	if _, err := tailors.Create(ctx, "ehbs-couture", "Bespoke Suits", []string{"suits"}, "$300 - $800", ""); err != nil {
		t.Fatalf("create tailor: %v", err)
	}
	if _, err := tailors.Create(ctx, "ehbs-couture", "Alterations", []string{"fitting"}, "$20 - $60", ""); err != nil {
		t.Fatalf("create tailor: %v", err)
	}

	b, err := brands.UpdateCurrency(ctx, "ehbs-couture", "GHS")
	if err != nil {
		t.Fatalf("update currency: %v", err)
	}
	if b.Currency != "GHS" {
		t.Errorf("currency = %q, want GHS", b.Currency)
	}
	if !strings.Contains(b.PriceRange, "₵") || strings.Contains(b.PriceRange, "$") {
		t.Errorf("brand price_range = %q, want cedi symbols only", b.PriceRange)
	}

	list, err := tailors.ListByBrand(ctx, "ehbs-couture")
	if err != nil {
		t.Fatalf("list tailors: %v", err)
	}
	for _, tl := range list {
		if !strings.Contains(tl.PriceRange, "₵") || strings.Contains(tl.PriceRange, "$") {
			t.Errorf("tailor %q price_range = %q, want cedi symbols only", tl.Title, tl.PriceRange)
		}
	}
}

func TestBrandDelete_Cascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	brands := store.NewBrandStore(db)
	products := store.NewProductStore(db)
	inquiries := store.NewInquiryStore(db, brands)
	ctx := context.Background()

	if _, err := brands.Create(ctx, &store.Brand{ID: "ehbs-couture", Name: "Ehbs", PriceRange: "$100 - $500"}); err != nil {
		t.Fatalf("create brand: %v", err)
	}
	p, err := products.Create(ctx, "ehbs-couture", "Gown", "", 350, nil, "", "dresses", true)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	inq, err := inquiries.Create(ctx, "ehbs-couture", "Ada", "ada@example.com", "", "hello", "general")
	if err != nil {
		t.Fatalf("create inquiry: %v", err)
	}

	if err := brands.Delete(ctx, "ehbs-couture"); err != nil {
		t.Fatalf("delete brand: %v", err)
	}

	if _, err := brands.GetByID(ctx, "ehbs-couture"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("brand err = %v, want ErrNotFound", err)
	}
	if _, err := products.GetByID(ctx, p.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("product err = %v, want ErrNotFound", err)
	}
	if _, err := inquiries.GetByID(ctx, inq.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("inquiry err = %v, want ErrNotFound", err)
	}
}

func TestSubscriberLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	subs := store.NewSubscriberStore(db)
	ctx := context.Background()

	if _, err := subs.Subscribe(ctx, "not-an-email"); !errors.Is(err, store.ErrInvalidEmail) {
		t.Errorf("invalid email err = %v, want ErrInvalidEmail", err)
	}

	s, err := subs.Subscribe(ctx, "  Reader@Example.COM ")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if s.Email != "reader@example.com" {
		t.Errorf("email = %q, want normalized", s.Email)
	}

	if _, err := subs.Subscribe(ctx, "reader@example.com"); !errors.Is(err, store.ErrAlreadySubscribed) {
		t.Errorf("duplicate err = %v, want ErrAlreadySubscribed", err)
	}

	if err := subs.Unsubscribe(ctx, "reader@example.com"); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if err := subs.Unsubscribe(ctx, "reader@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("double unsubscribe err = %v, want ErrNotFound", err)
	}

	// Resubscribing reactivates the same row.
	s2, err := subs.Subscribe(ctx, "reader@example.com")
	if err != nil {
		t.Fatalf("resubscribe: %v", err)
	}
	if s2.ID != s.ID {
		t.Errorf("resubscribe created a new row: %q != %q", s2.ID, s.ID)
	}
	if !s2.Active() {
		t.Error("resubscribed address not active")
	}

	count, err := subs.CountActive(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("active count = %d, want 1", count)
	}
}
