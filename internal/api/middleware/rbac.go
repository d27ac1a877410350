package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lamsaclean/site-api/internal/core/domain"
	"github.com/lamsaclean/site-api/internal/core/ports"
)

// RBAC enforces role-based access control on API routes. Runs after
// RequireSession; a valid session with a role outside allowedRoles gets
// 403, not 401.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequirePermission enforces a module/action grant on API routes.
// Administrators always pass; other roles need an explicit permission
// entry for the module covering the action.
func RequirePermission(auth ports.AuthService, module, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(CtxUser).(*domain.User)
			if !auth.HasPermission(user, module, action) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
