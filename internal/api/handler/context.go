package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvs/product-catalog/internal/api/middleware"
)

// ctxIdentity extracts the identity attached by the authentication gate.
// Handlers behind a role guard can assume it is present; the empty check is a
// fast-fail for miswired routes.
func ctxIdentity(c echo.Context) (username, role string, err error) {
	username, _ = c.Get(middleware.ContextKeyUsername).(string)
	role, _ = c.Get(middleware.ContextKeyRole).(string)
	if username == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, role, nil
}
