package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reklik/reklik-server/internal/auth"
)

// AuthHandler exposes the three authentication endpoints over HTTP. All
// decisions live in the auth service; this layer only binds JSON and maps
// error kinds to status codes.
type AuthHandler struct {
	Auth *auth.Service
}

func NewAuthHandler(a *auth.Service) *AuthHandler {
	return &AuthHandler{Auth: a}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type googleLoginReq struct {
	IDToken string `json:"id_token"`
}
type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	session, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// GoogleLogin handles POST /v1/auth/google.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	session, err := h.Auth.GoogleLogin(ctx, req.IDToken)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	session, err := h.Auth.Register(ctx, auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusCreated, session)
}

// authError maps auth error kinds to HTTP responses. Credential and
// external failures stay uniform on purpose.
func authError(c echo.Context, err error) error {
	if ve, ok := auth.IsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":      "validation failed",
			"violations": ve.Violations,
		})
	}
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.ErrInvalidCredentials.Error()})
	case errors.Is(err, auth.ErrExternalAuth):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.ErrExternalAuth.Error()})
	case errors.Is(err, auth.ErrDuplicateEmail):
		return c.JSON(http.StatusConflict, echo.Map{"error": auth.ErrDuplicateEmail.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
