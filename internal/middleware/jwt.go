package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reklik/reklik-server/internal/auth"
)

// Context keys under which JWTAuth stores the validated claims.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
)

// JWTAuth returns an Echo middleware that validates a Bearer session token
// and injects the subject id, role and email claims into the request
// context. Validation (signature, issuer, audience, expiry) is delegated to
// the same TokenIssuer that signs tokens, so the two can never drift apart.
// Handlers behind this middleware read the identity via c.Get(CtxUserID)
// and c.Get(CtxRole) and pass it on explicitly; nothing downstream reaches
// back into the raw token.
func JWTAuth(tokens *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := tokens.Parse(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			uid, err := claims.UserID()
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(CtxUserID, uid)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxEmail, claims.Email)
			return next(c)
		}
	}
}
