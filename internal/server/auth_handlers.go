package server

import (
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Register handles POST /api/v1/auth/register. Registration ships enabled
// and can be switched off per deployment via the open_registration flag.
func (s *Server) Register(c *fiber.Ctx) error {
	if !s.featureFlags.Enabled("open_registration", 0, true) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Registration is currently closed"))
	}

	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.authService.Register(c.Context(), req); err != nil {
		return respondServiceError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, models.Envelope{
		Message: "Account created successfully",
	})
}

// Login handles POST /api/v1/auth/login. The username field carries the
// account email, kept for wire compatibility with existing clients.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	access, refresh, err := s.generateTokenPair(user.ID)
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}

	return models.Respond(c, fiber.StatusOK, models.Envelope{
		Message: "Login successful",
		Data: fiber.Map{
			"user": user.Summary(),
			"token": fiber.Map{
				"access":  access,
				"refresh": refresh,
			},
		},
	})
}

// generateTokenPair issues the access/refresh token pair for a user. The
// type claim is what keeps a refresh token from being replayed against
// protected routes.
func (s *Server) generateTokenPair(userID uint) (access, refresh string, err error) {
	if s.config.JWTSecret == "" {
		return "", "", fmt.Errorf("JWT secret not configured")
	}

	access, err = s.signToken(userID, "access", accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.signToken(userID, "refresh", refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *Server) signToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"type": tokenType,
		"iss":  "inkwell-api",
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
