package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"loanguard-backend/internal/auth"
	userDomain "loanguard-backend/internal/domain/user"
)

type AuthHandler struct {
	users  userDomain.Repository
	tokens *auth.Tokens
}

func NewAuthHandler(users userDomain.Repository, tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type userPayload struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

type tokenPayload struct {
	User    userPayload `json:"user"`
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	ctx := c.Request().Context()
	if _, err := h.users.GetByUsername(ctx, req.Username); err == nil {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "username already taken"})
	} else if !errors.Is(err, userDomain.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to register"})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to register"})
	}
	u := &userDomain.User{Username: req.Username, Email: req.Email, PasswordHash: hash}
	if err := h.users.Create(ctx, u); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to register"})
	}

	access, refresh, err := h.tokens.IssuePair(u.ID, u.IsAdmin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to issue tokens"})
	}
	return c.JSON(http.StatusCreated, tokenPayload{
		User:    userPayload{ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin},
		Access:  access,
		Refresh: refresh,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	u, err := h.users.GetByUsername(c.Request().Context(), req.Username)
	if err != nil {
		// Same response for unknown user and bad password
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	}
	if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	}

	access, refresh, err := h.tokens.IssuePair(u.ID, u.IsAdmin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to issue tokens"})
	}
	return c.JSON(http.StatusOK, tokenPayload{
		User:    userPayload{ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin},
		Access:  access,
		Refresh: refresh,
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	claims, err := h.tokens.ParseType(req.Refresh, auth.TokenTypeRefresh)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid refresh token"})
	}
	access, err := h.tokens.Issue(claims.UserID, claims.IsAdmin, auth.TokenTypeAccess)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to issue tokens"})
	}
	return c.JSON(http.StatusOK, map[string]string{"access": access})
}

// Logout is stateless: tokens simply expire. The endpoint exists so clients
// have a uniform place to end a session.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
