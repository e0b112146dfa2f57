package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"home_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"", "", errMissingAuthHeader},
		{"Token abc", "", errBadAuthHeader},
		{"Bearer", "", errBadAuthHeader},
		{"Bearer    ", "", errBadAuthHeader},
		{"Bearer abc", "abc", nil},
		{"bearer  abc ", "abc", nil},
	}
	for _, tc := range cases {
		got, err := bearerToken(tc.header)
		if !errors.Is(err, tc.wantErr) || got != tc.want {
			t.Fatalf("bearerToken(%q) = (%q, %v), want (%q, %v)", tc.header, got, err, tc.want, tc.wantErr)
		}
	}
}

func serveSecure(t *testing.T, auth *mockAuth, header string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(&service.Service{Authorization: auth}, nil)

	r := gin.New()
	r.GET("/secure", h.operatorMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"operatorId": c.GetInt(operatorCtxKey)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestOperatorMiddleware_Rejects(t *testing.T) {
	cases := map[string]struct {
		header  string
		auth    *mockAuth
		wantMsg string
	}{
		"no header":     {"", &mockAuth{}, errMissingAuthHeader.Error()},
		"basic scheme":  {"Basic c2Fsb24=", &mockAuth{}, errBadAuthHeader.Error()},
		"token refused": {"Bearer caducado", &mockAuth{parseErr: service.ErrInvalidToken}, errTokenRejected},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := serveSecure(t, tc.auth, tc.header)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			var out map[string]string
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out["error"] != tc.wantMsg {
				t.Fatalf("error = %q, want %q", out["error"], tc.wantMsg)
			}
		})
	}
}

func TestOperatorMiddleware_StoresOperatorID(t *testing.T) {
	auth := &mockAuth{parseID: 123}
	w := serveSecure(t, auth, "Bearer buen-token")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	var out map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["operatorId"] != 123 {
		t.Fatalf("operatorId = %d, want 123", out["operatorId"])
	}
	if auth.lastParseToken != "buen-token" {
		t.Fatalf("ParseToken got %q", auth.lastParseToken)
	}
}
