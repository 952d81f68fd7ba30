package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	models "student-records-api/app/models/postgresql"
)

const tokenIssuer = "student-records-api"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenMaker signs and verifies HS256 access and refresh tokens.
type TokenMaker struct {
	secret        []byte
	refreshSecret []byte
	ttl           time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenMaker(secret, refreshSecret string, ttl, refreshTTL time.Duration) *TokenMaker {
	if refreshSecret == "" {
		refreshSecret = secret // fallback
	}
	return &TokenMaker{
		secret:        []byte(secret),
		refreshSecret: []byte(refreshSecret),
		ttl:           ttl,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// GenerateToken creates an access token for user and returns its expiry.
func (m *TokenMaker) GenerateToken(user *models.User) (string, time.Time, error) {
	expiresAt := m.now().Add(m.ttl)

	claims := &models.JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(m.now()),
			Issuer:    tokenIssuer,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	return token, expiresAt, err
}

// ValidateToken verifies an access token. Expired tokens yield ErrTokenExpired,
// anything else that fails verification yields ErrTokenInvalid.
func (m *TokenMaker) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	if err := m.parse(tokenString, claims, m.secret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *TokenMaker) GenerateRefreshToken(user *models.User) (string, error) {
	claims := &models.RefreshClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(m.now().Add(m.refreshTTL)),
			Issuer:    tokenIssuer,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
}

func (m *TokenMaker) ValidateRefreshToken(tokenString string) (*models.RefreshClaims, error) {
	claims := &models.RefreshClaims{}
	if err := m.parse(tokenString, claims, m.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *TokenMaker) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	if err != nil || !token.Valid {
		return ErrTokenInvalid
	}
	return nil
}
