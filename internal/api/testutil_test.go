package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/elokaagu/omahub/internal/api"
	"github.com/elokaagu/omahub/internal/auth"
	"github.com/elokaagu/omahub/internal/store"
	"github.com/elokaagu/omahub/internal/testutil"
)

// testEnv holds all stores and helpers needed for API integration tests.
type testEnv struct {
	Router      http.Handler
	Profiles    *store.ProfileStore
	Brands      *store.BrandStore
	Products    *store.ProductStore
	Collections *store.CollectionStore
	Tailors     *store.TailorStore
	Inquiries   *store.InquiryStore
	Subscribers *store.SubscriberStore
	Settings    *store.SettingStore
	Tokens      *auth.SQLTokenStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with real stores.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	profiles := store.NewProfileStore(db)
	brands := store.NewBrandStore(db)
	products := store.NewProductStore(db)
	collections := store.NewCollectionStore(db)
	tailors := store.NewTailorStore(db)
	inquiries := store.NewInquiryStore(db, brands)
	subscribers := store.NewSubscriberStore(db)
	settings := store.NewSettingStore(db)
	tokens := auth.NewSQLTokenStore(db)

	router := api.NewAPIRouter(api.Deps{
		BearerAuth:        auth.NewBearerTokenMiddleware(tokens),
		Profiles:          profiles,
		Brands:            brands,
		Products:          products,
		Collections:       collections,
		Tailors:           tailors,
		Inquiries:         inquiries,
		Subscribers:       subscribers,
		Settings:          settings,
		Tokens:            tokens,
		LegacySuperAdmins: []string{"eloka.agu@icloud.com"},
	})

	return &testEnv{
		Router:      router,
		Profiles:    profiles,
		Brands:      brands,
		Products:    products,
		Collections: collections,
		Tailors:     tailors,
		Inquiries:   inquiries,
		Subscribers: subscribers,
		Settings:    settings,
		Tokens:      tokens,
	}
}

// seedProfile creates a profile with the given role and owned brands.
func seedProfile(t *testing.T, env *testEnv, email, role string, ownedBrands ...string) *store.Profile {
	t.Helper()
	ctx := context.Background()
	p, err := env.Profiles.Upsert(ctx, "test", "sub-"+email, email, "Test User")
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	if role != "user" || len(ownedBrands) > 0 {
		p, err = env.Profiles.UpdateRole(ctx, p.ID, role, ownedBrands)
		if err != nil {
			t.Fatalf("update role: %v", err)
		}
	}
	return p
}

// seedBrand creates a public brand keyed by id.
func seedBrand(t *testing.T, env *testEnv, id string) *store.Brand {
	t.Helper()
	b, err := env.Brands.Create(context.Background(), &store.Brand{
		ID:         id,
		Name:       "Brand " + id,
		Category:   "couture",
		Location:   "Lagos, Nigeria",
		PriceRange: "$100 - $500",
		IsPublic:   true,
	})
	if err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	return b
}

// seedToken creates a real API token bound to a profile id and email, and
// returns the plaintext Bearer value. The profile row may or may not exist;
// token auth never consults it.
func seedToken(t *testing.T, env *testEnv, profileID, email string) string {
	t.Helper()
	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	_, err = env.Tokens.Create(context.Background(), profileID, email, "test-token", hash, nil)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return plaintext
}

// authRequest adds a Bearer token to the request.
func authRequest(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}
