package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"wavesflow-backend/internal/config"
)

func testAuthService(t *testing.T) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return AuthService{Config: config.Config{
		JWTSecret:         "test-secret",
		AccessTokenTTL:    time.Hour,
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	}}
}

func TestLogin_IssuesSignedAccessToken(t *testing.T) {
	svc := testAuthService(t)
	res, err := svc.Login(LoginInput{Username: "admin", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	token, err := jwt.Parse(res.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != "admin" || claims["token_type"] != "access" {
		t.Fatalf("unexpected claims %v", claims)
	}
	if !res.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry in the past: %v", res.ExpiresAt)
	}
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	svc := testAuthService(t)
	cases := []LoginInput{
		{Username: "admin", Password: "wrong"},
		{Username: "root", Password: "s3cret"},
		{},
	}
	for _, in := range cases {
		if _, err := svc.Login(in); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("login(%+v) err = %v, want ErrInvalidCredentials", in, err)
		}
	}
}
