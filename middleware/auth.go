package middleware

import (
	"errors"
	"strings"
	"time"

	models "student-records-api/app/models/postgresql"
	"student-records-api/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
)

const bearerPrefix = "Bearer "

// TokenCache keeps verified access-token claims so repeated requests skip
// signature checks.
type TokenCache struct {
	entries *cache.Cache
	ttl     time.Duration
}

// NewTokenCache returns nil when ttl is not positive, which disables caching.
func NewTokenCache(ttl time.Duration) *TokenCache {
	if ttl <= 0 {
		return nil
	}
	return &TokenCache{
		entries: cache.New(ttl, 10*time.Minute),
		ttl:     ttl,
	}
}

func (tc *TokenCache) get(token string) (*models.JWTClaims, bool) {
	if tc == nil {
		return nil, false
	}
	cached, found := tc.entries.Get(token)
	if !found {
		return nil, false
	}
	return cached.(*models.JWTClaims), true
}

// set never lets an entry outlive the token itself.
func (tc *TokenCache) set(token string, claims *models.JWTClaims) {
	if tc == nil {
		return
	}
	ttl := tc.ttl
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining < ttl {
			ttl = remaining
		}
	}
	if ttl <= 0 {
		return
	}
	tc.entries.Set(token, claims, ttl)
}

func (tc *TokenCache) delete(token string) {
	if tc != nil {
		tc.entries.Delete(token)
	}
}

// AuthRequired checks the bearer token and stores the caller's id and
// username in c.Locals. tokenCache may be nil.
func AuthRequired(tokens *utils.TokenMaker, tokenCache *TokenCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing or malformed token")
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if tokenString == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing or malformed token")
		}

		// Check cache first
		if claims, found := tokenCache.get(tokenString); found {
			if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
				tokenCache.delete(tokenString)
				return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Token expired")
			}
			return authenticated(c, claims)
		}

		claims, err := tokens.ValidateToken(tokenString)
		if errors.Is(err, utils.ErrTokenExpired) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Token expired")
		}
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token")
		}

		tokenCache.set(tokenString, claims)
		return authenticated(c, claims)
	}
}

func authenticated(c *fiber.Ctx, claims *models.JWTClaims) error {
	c.Locals("user_id", claims.UserID)
	c.Locals("username", claims.Username)
	return c.Next()
}
