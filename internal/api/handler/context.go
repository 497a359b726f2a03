package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expenseops/ticketing-system/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: both claims must be present, which
// proves the middleware ran on this route.
func ctxIdentity(c echo.Context) (id, role string, err error) {
	id, _ = c.Get(middleware.CtxUserID).(string)
	role, _ = c.Get(middleware.CtxRole).(string)
	if id == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, role, nil
}
