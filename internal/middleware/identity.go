package middleware

// identity.go holds the helpers that store and read the authenticated
// identity on the Echo context.  JWTAuth writes it; handlers and the rate
// limiter read it.

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-blog-api/internal/model"
	"github.com/iliyamo/recipe-blog-api/internal/utils"
)

const identityKey = "identity"

// SetIdentity attaches id to the request context.
func SetIdentity(c echo.Context, id model.Identity) { c.Set(identityKey, id) }

// IdentityFrom returns the identity stored by JWTAuth.  ok is false on
// routes that are not behind the authentication gate.
func IdentityFrom(c echo.Context) (model.Identity, bool) {
	id, ok := c.Get(identityKey).(model.Identity)
	return id, ok
}

// subject names the caller for rate limiting.  On public routes the bearer
// token, if any, is verified on the spot; callers without a valid token are
// "guest".
func subject(c echo.Context, secret string) string {
	if id, ok := IdentityFrom(c); ok {
		return id.ID
	}
	if secret == "" {
		return "guest"
	}
	raw, ok := bearer(c)
	if !ok {
		return "guest"
	}
	id, err := utils.VerifyToken(secret, raw)
	if err != nil {
		return "guest"
	}
	return id.ID
}

// bearer extracts the token from an "Authorization: Bearer <token>" header.
func bearer(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return raw, raw != ""
}
