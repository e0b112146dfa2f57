package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"home_dashboard/internal/repository"
	"home_dashboard/internal/service"
)

func postAuth(t *testing.T, auth *mockAuth, path, body string) (int, map[string]any) {
	t.Helper()
	r := newTestRouter(&service.Service{Authorization: auth})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

const credentials = `{"username":"salon","password":"contraseña-1"}`

func TestSignUp(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		body     string
		wantCode int
	}{
		{"created", nil, credentials, http.StatusOK},
		{"bad body", nil, `{"username":1}`, http.StatusBadRequest},
		{"weak password", service.ErrWeakPassword, credentials, http.StatusBadRequest},
		{"taken", fmt.Errorf("%w: %q", repository.ErrOperatorExists, "salon"), credentials, http.StatusConflict},
		{"store down", errors.New("database is locked"), credentials, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{signUpID: 42, signUpErr: tc.err}
			code, out := postAuth(t, auth, "/auth/sign-up", tc.body)
			if code != tc.wantCode {
				t.Fatalf("status = %d, want %d (%v)", code, tc.wantCode, out)
			}
			if code == http.StatusOK {
				if out["id"] != float64(42) {
					t.Fatalf("id = %v", out["id"])
				}
				if auth.lastSignUpUsername != "salon" || auth.lastSignUpPassword != "contraseña-1" {
					t.Fatalf("credentials not forwarded: %q/%q", auth.lastSignUpUsername, auth.lastSignUpPassword)
				}
			}
		})
	}
}

func TestSignIn(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"token issued", nil, http.StatusOK},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"store down", errors.New("database is locked"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{genTokenToken: "tok123", genTokenErr: tc.err}
			code, out := postAuth(t, auth, "/auth/sign-in", credentials)
			if code != tc.wantCode {
				t.Fatalf("status = %d, want %d (%v)", code, tc.wantCode, out)
			}
			if code == http.StatusOK && out["token"] != "tok123" {
				t.Fatalf("token = %v", out["token"])
			}
			if auth.lastGenPassword != "contraseña-1" {
				t.Fatalf("password not forwarded, got %q", auth.lastGenPassword)
			}
		})
	}
}
