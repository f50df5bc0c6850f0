package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MsgAccessDenied is returned by RequireRole for every admin-only route.
const MsgAccessDenied = "Access denied. You are not authorized to delete this post."

// RequireRole returns a middleware that lets the request through only when
// the authenticated identity carries one of roles.  It must run after
// JWTAuth; a request without an identity is refused the same way.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok || !allowed[id.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"message": MsgAccessDenied})
			}
			return next(c)
		}
	}
}
