package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elokaagu/omahub/internal/api"
)

func TestTokens_CreateListRevoke(t *testing.T) {
	env := newTestEnv(t)
	p := seedProfile(t, env, "alice@example.com", "user")
	token := seedToken(t, env, p.ID, p.Email)

	// Mint a second token.
	body := `{"name":"ci"}`
	req := httptest.NewRequest("POST", "/tokens", bytes.NewBufferString(body))
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var created api.TokenCreatedResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(created.Token, "oh_") {
		t.Errorf("token = %q, want oh_ prefix", created.Token)
	}

	// Both tokens list.
	req = httptest.NewRequest("GET", "/tokens", nil)
	authRequest(req, token)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var list api.TokenListResponse
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Tokens) != 2 {
		t.Fatalf("len(tokens) = %d, want 2", len(list.Tokens))
	}

	// Revoke the new one; it disappears from the list.
	req = httptest.NewRequest("DELETE", "/tokens/"+created.ID, nil)
	authRequest(req, token)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("revoke status = %d; body: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/tokens", nil)
	authRequest(req, token)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	list = api.TokenListResponse{}
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Tokens) != 1 {
		t.Errorf("len(tokens) after revoke = %d, want 1", len(list.Tokens))
	}
}

func TestTokens_RevokedTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	p := seedProfile(t, env, "alice@example.com", "user")
	token := seedToken(t, env, p.ID, p.Email)

	// Mint and then revoke a token; using it afterwards must 401.
	req := httptest.NewRequest("POST", "/tokens", bytes.NewBufferString(`{"name":"doomed"}`))
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	var created api.TokenCreatedResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req = httptest.NewRequest("DELETE", "/tokens/"+created.ID, nil)
	authRequest(req, token)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("revoke status = %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/tokens", nil)
	authRequest(req, created.Token)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status with revoked token = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestTokens_RevokeSomeoneElses_NotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := seedProfile(t, env, "owner@example.com", "user")
	ownerToken := seedToken(t, env, owner.ID, owner.Email)

	intruder := seedProfile(t, env, "intruder@example.com", "user")
	intruderToken := seedToken(t, env, intruder.ID, intruder.Email)

	req := httptest.NewRequest("POST", "/tokens", bytes.NewBufferString(`{"name":"private"}`))
	authRequest(req, ownerToken)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	var created api.TokenCreatedResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req = httptest.NewRequest("DELETE", "/tokens/"+created.ID, nil)
	authRequest(req, intruderToken)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
