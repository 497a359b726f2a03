package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/expenseops/ticketing-system/internal/core/credentials"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Auth verifies the bearer token on every request and injects the caller
// identity into the echo context. A missing credential is rejected with
// 403 before any downstream code runs; a present but undecodable or
// expired one with 400. There is no session store: each request is
// verified independently.
func Auth(signer *credentials.TokenSigner) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusForbidden, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid token")
			}

			claims, err := signer.Decode(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid token")
			}

			c.Set(CtxUserID, claims.ID)
			c.Set(CtxRole, claims.Role)

			return next(c)
		}
	}
}
