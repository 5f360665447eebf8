package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"wavesflow-backend/internal/config"
	"wavesflow-backend/internal/handler"
	"wavesflow-backend/internal/server/authctx"
)

const secret = "test-secret"

func signed(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func accessClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":        "admin",
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
}

func TestAuthMiddleware(t *testing.T) {
	expired := accessClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	refresh := accessClaims()
	refresh["token_type"] = "refresh"
	noSub := accessClaims()
	delete(noSub, "sub")

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"wrong key", "Bearer " + signed(t, accessClaims(), "other"), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, expired, secret), http.StatusUnauthorized},
		{"wrong token type", "Bearer " + signed(t, refresh, secret), http.StatusUnauthorized},
		{"no subject", "Bearer " + signed(t, noSub, secret), http.StatusUnauthorized},
		{"valid", "Bearer " + signed(t, accessClaims(), secret), http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen *authctx.CurrentUser
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = authctx.FromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			AuthMiddleware(secret)(next).ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.status == http.StatusNoContent && (seen == nil || seen.Username != "admin") {
				t.Fatalf("current user = %+v", seen)
			}
		})
	}
}

type okHealth struct{}

func (okHealth) Health(context.Context) error { return nil }

func TestRouter_PublicAndProtectedRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRouter(config.Config{JWTSecret: secret}, logger,
		handler.HealthHandler{DB: okHealth{}},
		handler.DocsHandler{},
		handler.AuthHandler{},
		handler.StaffHandler{},
		handler.CatalogHandler{},
		handler.SaleHandler{},
		handler.ExpenseHandler{},
		handler.AttendanceHandler{},
		handler.ReportHandler{},
	)
	cases := []struct {
		target string
		auth   bool
		status int
	}{
		{"/health", false, http.StatusOK},
		{"/metrics", false, http.StatusOK},
		{"/openapi.yaml", false, http.StatusOK},
		{"/docs", false, http.StatusOK},
		{"/sales", false, http.StatusUnauthorized},
		{"/reports/dashboard", false, http.StatusUnauthorized},
		{"/auth/me", true, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.target, nil)
		if tc.auth {
			req.Header.Set("Authorization", "Bearer "+signed(t, accessClaims(), secret))
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("%s status = %d, want %d", tc.target, rec.Code, tc.status)
		}
	}
}
