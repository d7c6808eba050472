package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elokaagu/omahub/internal/api"
)

func TestAdminProducts_Create_OK_Owner(t *testing.T) {
	env := newTestEnv(t)
	seedBrand(t, env, "ehbs-couture")
	p := seedProfile(t, env, "owner@example.com", "brand_admin", "ehbs-couture")
	token := seedToken(t, env, p.ID, p.Email)

	body := `{"brand_id":"ehbs-couture","title":"Aso Oke Gown","price":350,"in_stock":true,"image":"http://omahub-images.s3.amazonaws.com/products/gown.jpg"}`
	req := httptest.NewRequest("POST", "/admin/products", bytes.NewBufferString(body))
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var resp api.ProductResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Legacy bucket URLs are rewritten to the storage host over https.
	if resp.Image != "https://storage.omahub.com/products/gown.jpg" {
		t.Errorf("image = %q, want normalized storage URL", resp.Image)
	}
	if resp.SalePrice != nil {
		t.Errorf("sale_price = %v, want nil", *resp.SalePrice)
	}
}

func TestAdminProducts_Create_Forbidden_NotOwner(t *testing.T) {
	env := newTestEnv(t)
	seedBrand(t, env, "ehbs-couture")
	seedBrand(t, env, "other-brand")
	p := seedProfile(t, env, "owner@example.com", "brand_admin", "ehbs-couture")
	token := seedToken(t, env, p.ID, p.Email)

	body := `{"brand_id":"other-brand","title":"Sneaky Listing","price":10}`
	req := httptest.NewRequest("POST", "/admin/products", bytes.NewBufferString(body))
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusForbidden, rec.Body.String())
	}
	if code := decodeError(t, rec).Code; code != "NOT_BRAND_OWNER" {
		t.Errorf("code = %q, want NOT_BRAND_OWNER", code)
	}
}

func TestAdminProducts_Create_UnknownBrand(t *testing.T) {
	env := newTestEnv(t)
	p := seedProfile(t, env, "admin@example.com", "admin")
	token := seedToken(t, env, p.ID, p.Email)

	body := `{"brand_id":"no-such-brand","title":"Ghost","price":1}`
	req := httptest.NewRequest("POST", "/admin/products", bytes.NewBufferString(body))
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d; body: %s", rec.Code, http.StatusNotFound, rec.Body.String())
	}
}

func TestAdminProducts_UpdateDelete_CrossBrandDenied(t *testing.T) {
	env := newTestEnv(t)
	seedBrand(t, env, "ehbs-couture")
	seedBrand(t, env, "other-brand")

	admin := seedProfile(t, env, "admin@example.com", "admin")
	adminToken := seedToken(t, env, admin.ID, admin.Email)

	// Seed a product on other-brand via the admin.
	body := `{"brand_id":"other-brand","title":"Kente Scarf","price":45,"in_stock":true}`
	req := httptest.NewRequest("POST", "/admin/products", bytes.NewBufferString(body))
	authRequest(req, adminToken)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed product status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var product api.ProductResponse
	if err := json.NewDecoder(rec.Body).Decode(&product); err != nil {
		t.Fatalf("decode: %v", err)
	}

	owner := seedProfile(t, env, "owner@example.com", "brand_admin", "ehbs-couture")
	ownerToken := seedToken(t, env, owner.ID, owner.Email)

	req = httptest.NewRequest("DELETE", "/admin/products/"+product.ID, nil)
	authRequest(req, ownerToken)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("delete status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	// The admin can delete it.
	req = httptest.NewRequest("DELETE", "/admin/products/"+product.ID, nil)
	authRequest(req, adminToken)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("admin delete status = %d, want %d; body: %s", rec.Code, http.StatusNoContent, rec.Body.String())
	}
}
