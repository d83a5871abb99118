package server

import (
	"net/http"
	"testing"

	"scribe/internal/models"
)

func TestSignupAndLoginFlow(t *testing.T) {
	_, app, _ := newTestServer(t)

	var signup AuthResponse
	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", SignupRequest{
		Username: "newwriter",
		Email:    "NewWriter@Example.com",
		Password: "Sufficiently-Strong-1",
	}, "", &signup)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", resp.StatusCode)
	}
	if signup.Token == "" {
		t.Fatal("signup: expected a token")
	}
	if signup.User == nil || signup.User.Email != "newwriter@example.com" {
		t.Fatalf("signup: expected normalized email, got %+v", signup.User)
	}

	var login AuthResponse
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "newwriter@example.com",
		Password: "Sufficiently-Strong-1",
	}, "", &login)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	if login.Token == "" {
		t.Fatal("login: expected a token")
	}
}

func TestSignupValidationErrors(t *testing.T) {
	_, app, _ := newTestServer(t)

	var errResp models.ErrorResponse
	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", SignupRequest{
		Username: "x",
		Email:    "not-an-email",
		Password: "weak",
	}, "", &errResp)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	for _, field := range []string{"username", "email", "password"} {
		if len(errResp.Fields[field]) == 0 {
			t.Errorf("expected a field error for %s, got %+v", field, errResp.Fields)
		}
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	_, app, db := newTestServer(t)

	createUserWithPassword(t, db, "taken", "Irrelevant-Pass-1")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", SignupRequest{
		Username: "someoneelse",
		Email:    "taken@example.com",
		Password: "Sufficiently-Strong-1",
	}, "", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	_, app, db := newTestServer(t)

	createUserWithPassword(t, db, "victim", "Actual-Password-1")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "victim@example.com",
		Password: "Wrong-Password-1",
	}, "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	// Unknown email gets the same answer.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "Wrong-Password-1",
	}, "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %d", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/posts/", map[string]string{"text": "hi"}, "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/feed", nil, "garbage-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", resp.StatusCode)
	}
}
