package rbac

import (
	"net/http"

	jwtmiddleware "github.com/feedchain/backend/middleware/jwt"
	"github.com/feedchain/backend/models"
	"github.com/labstack/echo/v4"
)

const DefaultForbiddenMessage = "Insufficient permissions"

// RequireRole admits callers whose role is one of roles. It must run after
// jwtmiddleware.RequireJWT.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return RequireRoleWithMessage(DefaultForbiddenMessage, roles...)
}

// RequireRoleWithMessage is RequireRole with a route-specific 403 detail.
func RequireRoleWithMessage(forbidden string, roles ...models.Role) echo.MiddlewareFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := jwtmiddleware.GetPrincipal(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			if _, ok := allowed[principal.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, forbidden)
			}
			return next(c)
		}
	}
}
