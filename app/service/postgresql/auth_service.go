package service

import (
	"database/sql"
	"errors"

	models "student-records-api/app/models/postgresql"
	repository "student-records-api/app/repository/postgresql"
	"student-records-api/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *utils.TokenMaker
}

func NewAuthService(userRepo repository.UserRepository, tokens *utils.TokenMaker) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Login exchanges a username and password for an access and a refresh token.
func (s *AuthService) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if blank(req.Username) || req.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "username and password are required")
	}

	user, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid username or password")
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Database error")
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid username or password")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token")
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate refresh token")
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"message":       "Login successful",
		"token":         token,
		"refresh_token": refreshToken,
		"expires_at":    expiresAt,
		"user":          user,
	})
}

// Refresh issues a new access token from a valid refresh token.
func (s *AuthService) Refresh(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil || blank(req.RefreshToken) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "refresh_token is required")
	}

	claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired refresh token")
	}

	// the account may have been removed since the refresh token was issued
	user, err := s.userRepo.GetByID(c.Context(), claims.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User no longer exists")
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Database error")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Profile returns the authenticated user.
func (s *AuthService) Profile(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, err.Error())
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Database error")
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}
