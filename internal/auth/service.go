package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"coordinator-portal-backend/internal/config"
	apperrors "coordinator-portal-backend/internal/errors"
	"coordinator-portal-backend/internal/logger"
)

// CoordinatorDirectory resolves the set of emails currently assigned to at
// least one tool.
type CoordinatorDirectory interface {
	Coordinators(ctx context.Context) (map[string]bool, error)
}

// AuthService issues and validates session tokens for coordinators. There
// is no user store: an email is a valid login exactly while the assignment
// data names it as an owner.
type AuthService struct {
	cfg       *config.Config
	directory CoordinatorDirectory
}

// SessionClaims represents the session token claims
type SessionClaims struct {
	Email string `json:"email" example:"coordinator@example.org"`
	jwt.RegisteredClaims
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email string `json:"email" binding:"required,email" example:"coordinator@example.org"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"43200"`
	Email       string `json:"email"`
}

// LogoutResponse represents the logout response
type LogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, directory CoordinatorDirectory) *AuthService {
	return &AuthService{cfg: cfg, directory: directory}
}

// Login checks the email against the current coordinator set and issues a
// session token. The comparison is case-insensitive on both sides.
func (s *AuthService) Login(ctx context.Context, email string) (*LoginResponse, error) {
	log := logger.WithContext(ctx).WithField("email", email)

	coordinators, err := s.directory.Coordinators(ctx)
	if err != nil {
		log.Errorf("Failed to load coordinator set: %v", err)
		return nil, err
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	found := false
	for candidate := range coordinators {
		if strings.ToLower(strings.TrimSpace(candidate)) == normalized {
			email = candidate
			found = true
			break
		}
	}
	if !found {
		log.Warnf("Login rejected: email is not a coordinator")
		return nil, apperrors.ErrEmailNotCoordinator
	}

	token, expiresIn, err := s.issueToken(email)
	if err != nil {
		log.Errorf("Failed to issue session token: %v", err)
		return nil, err
	}

	log.Infof("Coordinator logged in")
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
		Email:       email,
	}, nil
}

func (s *AuthService) issueToken(email string) (string, int64, error) {
	ttl := time.Duration(s.cfg.SessionTTLHours) * time.Hour
	now := time.Now()

	claims := &SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "coordinator-portal-backend",
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, int64(ttl.Seconds()), nil
}

// ValidateToken parses and verifies a session token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidSessionToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.Email == "" {
		return nil, apperrors.ErrInvalidSessionToken
	}
	return claims, nil
}
