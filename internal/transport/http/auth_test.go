package http

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	var tokens []string
	for _, path := range []string{"/api/login", "/api/auth/login"} {
		rec := env.do(t, http.MethodPost, path, `{"email":"a@b.com","password":"x"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", path, rec.Code)
		}
		var resp authResponse
		decodeBody(t, rec, &resp)
		if !resp.Success || resp.User.Email != "a@b.com" || resp.Token == "" {
			t.Fatalf("unexpected response %+v", resp)
		}
		tokens = append(tokens, resp.Token)
		env.clock.Advance(time.Second)
	}

	prefix := tokens[0][:strings.Index(tokens[0], ".")+1]
	if !strings.HasPrefix(tokens[1], prefix) {
		t.Fatalf("expected shared token prefix %q, got %q", prefix, tokens[1])
	}
	if tokens[0] == tokens[1] {
		t.Fatalf("expected tokens to differ over time")
	}

	for _, body := range []string{`{"email":"a@b.com"}`, `{"password":"x"}`, `{"email":"","password":""}`} {
		rec := env.do(t, http.MethodPost, "/api/login", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: expected status 401, got %d", body, rec.Code)
		}
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/api/register", `{"email":"ana@example.com","password":"secret","name":"Ana"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/auth/login", `{"email":"ana@example.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for wrong password, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/register", `{"email":"ana@example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	var apiErr apiErrorResponse
	decodeBody(t, rec, &apiErr)
	if apiErr.Field != "password" {
		t.Fatalf("expected field password, got %+v", apiErr)
	}
}

func TestRegister_AcceptsAnyNonEmptyFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	tests := []struct {
		name     string
		path     string
		body     string
		wantName string
		message  string
	}{
		{"plain string email", "/api/auth/register", `{"email":"juan","password":"x"}`, "juan", ""},
		{"without name", "/api/auth/register", `{"email":"luis@example.com","password":"x"}`, "luis", ""},
		{"legacy first and last name", "/api/register", `{"firstName":"Juan","lastName":"P","email":"jp@example.com","phone":"+56 9 1234","password":"x"}`, "Juan P", legacyRegisterMessage},
		{"legacy with name", "/api/register", `{"name":"Ana","email":"ana2@example.com","password":"x"}`, "Ana", legacyRegisterMessage},
	}
	for _, tc := range tests {
		rec := env.do(t, http.MethodPost, tc.path, tc.body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("%s: expected status 201, got %d: %s", tc.name, rec.Code, rec.Body.String())
		}
		var resp authResponse
		decodeBody(t, rec, &resp)
		if !resp.Success || resp.Token == "" || resp.User.Name != tc.wantName || resp.Message != tc.message {
			t.Fatalf("%s: unexpected response %+v", tc.name, resp)
		}
	}

	rec := env.do(t, http.MethodPost, "/api/register", `{"firstName":"Juan","password":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for legacy body without email, got %d", rec.Code)
	}
}

func TestPasswordReset_AlwaysOK(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	for _, body := range []string{`{"email":"nobody@example.com"}`, `{}`, `garbage`} {
		rec := env.do(t, http.MethodPost, "/api/password-reset", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("body %s: expected status 200, got %d", body, rec.Code)
		}
	}
}
