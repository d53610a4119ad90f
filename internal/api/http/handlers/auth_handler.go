package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/znapfile/edge-gateway/internal/api/dto"
	"github.com/znapfile/edge-gateway/internal/auth"
	"github.com/znapfile/edge-gateway/internal/domain"
	"github.com/znapfile/edge-gateway/internal/service"
	apperrors "github.com/znapfile/edge-gateway/pkg/util/errorutil"
)

// AuthHandler exposes the mock auth endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMalformedRequest(err)
	}

	account, pair, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return apperrors.NewUnauthorized("Invalid credentials")
	}

	return c.JSON(loginResponse(account, pair))
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMalformedRequest(err)
	}

	account, pair, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return apperrors.NewUnauthorized("Invalid refresh token")
	}

	return c.JSON(loginResponse(account, pair))
}

// Me handles GET /api/v1/auth/me behind the auth middleware.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing principal")
	}
	return c.JSON(dto.UserResponse{User: userPayload(principal.Account)})
}

func loginResponse(account *domain.Account, pair service.TokenPair) dto.LoginResponse {
	return dto.LoginResponse{
		User:         userPayload(account),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}

func userPayload(account *domain.Account) dto.UserPayload {
	return dto.UserPayload{
		ID:       account.ID,
		Email:    account.Email,
		Username: account.Username,
		Plan:     account.Plan,
	}
}
