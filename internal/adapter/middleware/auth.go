package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"loanguard-backend/internal/auth"
	userDomain "loanguard-backend/internal/domain/user"
)

const actorContextKey = "actor"

// ActorFromContext returns the authenticated actor set by JWTAuth.
func ActorFromContext(c echo.Context) (userDomain.Actor, bool) {
	a, ok := c.Get(actorContextKey).(userDomain.Actor)
	return a, ok
}

// JWTAuth verifies the Bearer access token and attaches the actor identity
// to the request context.
func JWTAuth(tokens *auth.Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			claims, err := tokens.ParseType(raw, auth.TokenTypeAccess)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			c.Set(actorContextKey, userDomain.Actor{UserID: claims.UserID, IsAdmin: claims.IsAdmin})
			return next(c)
		}
	}
}

// AdminOnly rejects non-admin actors. Must run after JWTAuth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			if !actor.IsAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "admin privileges required"})
			}
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
