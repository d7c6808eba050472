package api_test

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminSubscribers_Forbidden_BrandAdmin(t *testing.T) {
	env := newTestEnv(t)
	seedBrand(t, env, "ehbs-couture")
	p := seedProfile(t, env, "owner@example.com", "brand_admin", "ehbs-couture")
	token := seedToken(t, env, p.ID, p.Email)

	req := httptest.NewRequest("GET", "/admin/subscribers", nil)
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d; body: %s", rec.Code, http.StatusForbidden, rec.Body.String())
	}
}

func TestAdminSubscribers_ExportCSV(t *testing.T) {
	env := newTestEnv(t)
	p := seedProfile(t, env, "admin@example.com", "admin")
	token := seedToken(t, env, p.ID, p.Email)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		req := httptest.NewRequest("POST", "/newsletter/subscribe", bytes.NewBufferString(`{"email":"`+email+`"}`))
		rec := httptest.NewRecorder()
		env.Router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("subscribe %s status = %d", email, rec.Code)
		}
	}

	req := httptest.NewRequest("GET", "/admin/subscribers/export", nil)
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content-type = %q, want text/csv", ct)
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// Header plus one row per subscriber.
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if rows[0][0] != "email" {
		t.Errorf("header = %v, want email first", rows[0])
	}
	if rows[1][0] != "a@example.com" || rows[2][0] != "b@example.com" {
		t.Errorf("rows = %v, want subscribers in signup order", rows[1:])
	}
}
