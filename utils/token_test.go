package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "student-records-api/app/models/postgresql"
)

func TestTokenRoundTrip(t *testing.T) {
	maker := NewTokenMaker("secret", "", time.Hour, 24*time.Hour)
	user := &models.User{ID: 42, Username: "admin"}

	token, expiresAt, err := maker.GenerateToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := maker.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	user := &models.User{ID: 1, Username: "admin"}

	t.Run("Error: expired", func(t *testing.T) {
		maker := NewTokenMaker("secret", "", time.Minute, time.Hour)
		maker.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := maker.GenerateToken(user)
		require.NoError(t, err)

		maker.now = time.Now
		_, err = maker.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("Error: wrong secret", func(t *testing.T) {
		token, _, err := NewTokenMaker("secret", "", time.Hour, time.Hour).GenerateToken(user)
		require.NoError(t, err)

		_, err = NewTokenMaker("other", "", time.Hour, time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Error: garbage", func(t *testing.T) {
		_, err := NewTokenMaker("secret", "", time.Hour, time.Hour).ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Error: unsigned token", func(t *testing.T) {
		claims := &models.JWTClaims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = NewTokenMaker("secret", "", time.Hour, time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Error: refresh token is not an access token", func(t *testing.T) {
		maker := NewTokenMaker("secret", "refresh", time.Hour, time.Hour)
		refresh, err := maker.GenerateRefreshToken(user)
		require.NoError(t, err)

		_, err = maker.ValidateToken(refresh)
		assert.ErrorIs(t, err, ErrTokenInvalid)

		claims, err := maker.ValidateRefreshToken(refresh)
		require.NoError(t, err)
		assert.Equal(t, int64(1), claims.UserID)
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("admin123", hash))
	assert.False(t, CheckPasswordHash("admin124", hash))
}
