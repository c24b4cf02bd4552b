package handler // handler defines http handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/reklik/reklik-server/internal/middleware"
)

// getUserID extracts the authenticated subject id stored by the JWT
// middleware. Handlers pass it on explicitly; nothing below this layer
// reads ambient request state.
func getUserID(c echo.Context) (uint64, error) {
	if uid, ok := c.Get(middleware.CtxUserID).(uint64); ok {
		return uid, nil
	}
	return 0, errors.New("no user_id in context")
}

// getRole extracts the validated role claim stored by the JWT middleware.
func getRole(c echo.Context) string {
	role, _ := c.Get(middleware.CtxRole).(string)
	return role
}
