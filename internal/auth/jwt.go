package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

// ErrInvalidToken is returned when a token fails parsing or validation
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the identity embedded in access and refresh tokens
type Claims struct {
	UserID  int64  `json:"user_id"`
	LoginID string `json:"login_id"`
	Name    string `json:"name"`
	Team    string `json:"team"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Config holds token manager configuration
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenManager issues and parses HS256 access and refresh tokens
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager creates a new TokenManager
func NewTokenManager(cfg Config) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}
}

// IssueAccess signs a short-lived access token for the user
func (m *TokenManager) IssueAccess(user *entity.User) (string, error) {
	return m.issue(user, m.accessSecret, m.accessTTL)
}

// IssueRefresh signs a refresh token and returns its expiry
func (m *TokenManager) IssueRefresh(user *entity.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(m.refreshTTL)
	token, err := m.issue(user, m.refreshSecret, m.refreshTTL)
	return token, expiresAt, err
}

func (m *TokenManager) issue(user *entity.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  user.ID,
		LoginID: user.LoginID,
		Name:    user.Name,
		Team:    user.Team,
		Role:    user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseAccess validates an access token and returns its claims
func (m *TokenManager) ParseAccess(tokenString string) (*Claims, error) {
	return m.parse(tokenString, m.accessSecret)
}

// ParseRefresh validates a refresh token and returns its claims
func (m *TokenManager) ParseRefresh(tokenString string) (*Claims, error) {
	return m.parse(tokenString, m.refreshSecret)
}

func (m *TokenManager) parse(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %s", ErrInvalidToken, t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
