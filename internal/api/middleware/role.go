package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ForbiddenPath is where navigation lands when the role check fails.
const ForbiddenPath = "/403"

// RoleGate enforces a fixed role allow-list on top of SessionGate. A
// missing user or a role outside the allow-list redirects to the
// forbidden screen. Compose inside SessionGate, so an unauthenticated
// request is sent to login before any role is consulted.
func RoleGate(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := CurrentSession(c)
			if session == nil || session.User == nil {
				return c.Redirect(http.StatusFound, ForbiddenPath)
			}
			if _, ok := allowed[session.User.Role]; !ok {
				return c.Redirect(http.StatusFound, ForbiddenPath)
			}
			return next(c)
		}
	}
}
