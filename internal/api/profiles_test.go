package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elokaagu/omahub/internal/api"
)

func TestAdminProfiles_List_Forbidden_BrandAdmin(t *testing.T) {
	env := newTestEnv(t)
	seedBrand(t, env, "ehbs-couture")
	p := seedProfile(t, env, "owner@example.com", "brand_admin", "ehbs-couture")
	token := seedToken(t, env, p.ID, p.Email)

	req := httptest.NewRequest("GET", "/admin/profiles", nil)
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d; body: %s", rec.Code, http.StatusForbidden, rec.Body.String())
	}
}

func TestAdminProfiles_UpdateRole_BrandAdminWithBrands(t *testing.T) {
	env := newTestEnv(t)
	seedBrand(t, env, "ehbs-couture")
	admin := seedProfile(t, env, "admin@example.com", "admin")
	token := seedToken(t, env, admin.ID, admin.Email)
	target := seedProfile(t, env, "target@example.com", "user")

	body := `{"role":"brand_admin","owned_brands":["ehbs-couture"]}`
	req := httptest.NewRequest("PUT", "/admin/profiles/"+target.ID+"/role", bytes.NewBufferString(body))
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp api.ProfileResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Role != "brand_admin" {
		t.Errorf("role = %q, want brand_admin", resp.Role)
	}
	if len(resp.OwnedBrands) != 1 || resp.OwnedBrands[0] != "ehbs-couture" {
		t.Errorf("owned_brands = %v, want [ehbs-couture]", resp.OwnedBrands)
	}
}

func TestAdminProfiles_UpdateRole_TakesEffectNextRequest(t *testing.T) {
	env := newTestEnv(t)
	seedBrand(t, env, "ehbs-couture")
	admin := seedProfile(t, env, "admin@example.com", "admin")
	adminToken := seedToken(t, env, admin.ID, admin.Email)

	target := seedProfile(t, env, "target@example.com", "user")
	targetToken := seedToken(t, env, target.ID, target.Email)

	// Denied before the grant.
	req := httptest.NewRequest("GET", "/admin/brands", nil)
	authRequest(req, targetToken)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("pre-grant status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	// Grant admin.
	body := `{"role":"admin"}`
	req = httptest.NewRequest("PUT", "/admin/profiles/"+target.ID+"/role", bytes.NewBufferString(body))
	authRequest(req, adminToken)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("grant status = %d; body: %s", rec.Code, rec.Body.String())
	}

	// The same token is allowed on its next request; nothing is cached.
	req = httptest.NewRequest("GET", "/admin/brands", nil)
	authRequest(req, targetToken)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("post-grant status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestAdminProfiles_GrantSuperAdmin_Forbidden_Admin(t *testing.T) {
	env := newTestEnv(t)
	admin := seedProfile(t, env, "admin@example.com", "admin")
	token := seedToken(t, env, admin.ID, admin.Email)
	target := seedProfile(t, env, "target@example.com", "user")

	body := `{"role":"super_admin"}`
	req := httptest.NewRequest("PUT", "/admin/profiles/"+target.ID+"/role", bytes.NewBufferString(body))
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	// Only super admins may mint super admins.
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusForbidden, rec.Body.String())
	}
	if code := decodeError(t, rec).Code; code != "INSUFFICIENT_ROLE" {
		t.Errorf("code = %q, want INSUFFICIENT_ROLE", code)
	}
}

func TestAdminProfiles_UpdateRole_InvalidRole(t *testing.T) {
	env := newTestEnv(t)
	admin := seedProfile(t, env, "admin@example.com", "admin")
	token := seedToken(t, env, admin.ID, admin.Email)
	target := seedProfile(t, env, "target@example.com", "user")

	body := `{"role":"superadmin"}`
	req := httptest.NewRequest("PUT", "/admin/profiles/"+target.ID+"/role", bytes.NewBufferString(body))
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d; body: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestAdminProfiles_DemotionClearsOwnedBrands(t *testing.T) {
	env := newTestEnv(t)
	seedBrand(t, env, "ehbs-couture")
	admin := seedProfile(t, env, "admin@example.com", "admin")
	token := seedToken(t, env, admin.ID, admin.Email)
	target := seedProfile(t, env, "owner@example.com", "brand_admin", "ehbs-couture")

	body := `{"role":"user"}`
	req := httptest.NewRequest("PUT", "/admin/profiles/"+target.ID+"/role", bytes.NewBufferString(body))
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var resp api.ProfileResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.OwnedBrands) != 0 {
		t.Errorf("owned_brands = %v, want empty after demotion", resp.OwnedBrands)
	}
}
