package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-blog-api/internal/utils"
)

// MsgAuthFailed is the body of every 401.  A missing header, an empty token
// and a token that fails verification all look the same to the caller.
const MsgAuthFailed = "Authentication failed"

// JWTAuth returns an Echo middleware that validates a Bearer token and
// stores the decoded identity {id, email, role} on the context, where
// handlers read it with IdentityFrom.  The secret must match the one used
// by utils.IssueToken.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearer(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": MsgAuthFailed})
			}
			id, err := utils.VerifyToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": MsgAuthFailed})
			}
			SetIdentity(c, id)
			return next(c)
		}
	}
}
