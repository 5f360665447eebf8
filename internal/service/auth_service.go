package service

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"wavesflow-backend/internal/config"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService checks the single admin credential and issues access tokens.
type AuthService struct {
	Config config.Config
	Logger *slog.Logger
}

type AuthResult struct {
	AccessToken string
	Username    string
	ExpiresAt   time.Time
}

type LoginInput struct {
	Username string
	Password string
}

func (s AuthService) Login(in LoginInput) (*AuthResult, error) {
	if subtle.ConstantTimeCompare([]byte(in.Username), []byte(s.Config.AdminUsername)) != 1 {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.Config.AdminPasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(in.Username)
}

func (s AuthService) issueToken(username string) (*AuthResult, error) {
	now := time.Now()
	exp := now.Add(s.Config.AccessTokenTTL)

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        username,
		"token_type": "access",
		"exp":        exp.Unix(),
		"iat":        now.Unix(),
	}).SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("admin login", "user", username)
	}
	return &AuthResult{AccessToken: access, Username: username, ExpiresAt: exp}, nil
}
