package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zerowaste/connect-share/internal/api/middleware"
	"github.com/zerowaste/connect-share/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fails fast before any service call:
//   - user id and role must be present (presence proves the middleware ran).
//   - the display name may be empty for old tokens; attribution then uses the id.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, _ := c.Get(middleware.KeyUserID).(string)
	role, _ := c.Get(middleware.KeyRole).(domain.Role)
	if id == "" || role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	name, _ := c.Get(middleware.KeyUserName).(string)
	if name == "" {
		name = id
	}
	return domain.Identity{ID: id, Name: name, Role: role}, nil
}
