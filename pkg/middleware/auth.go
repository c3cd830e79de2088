package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/auth/token"
)

const (
	ctxUID      = "uid"
	ctxIdentity = "identity"
)

// Accounts resolves the token subject. A deleted account must not keep
// acting through a token issued before the deletion.
type Accounts interface {
	FindByID(ctx context.Context, id string) (*entities.User, error)
}

// Auth requires a valid bearer token whose user still exists. The websocket
// stream cannot set headers from a browser, so a "token" query parameter is
// accepted when allowQuery is true. A nil accounts skips the lookup.
func Auth(maker token.Maker, accounts Accounts, allowQuery bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" && allowQuery {
				raw = c.QueryParam("token")
			}
			if raw == "" {
				return apperr.Unauthorized("no token, authorization denied")
			}
			p, err := maker.VerifyToken(raw)
			if err != nil {
				return apperr.Unauthorized("token is not valid")
			}
			if accounts != nil {
				if _, err := accounts.FindByID(c.Request().Context(), p.UserID); err != nil {
					if apperr.Is(err, apperr.KindNotFound) {
						return apperr.Unauthorized("token is not valid")
					}
					return err
				}
			}
			c.Set(ctxUID, p.UserID)
			c.Set(ctxIdentity, p)
			return next(c)
		}
	}
}

// RequireRole must run after Auth.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Identity(c)
			if p == nil {
				return apperr.Unauthorized("no token, authorization denied")
			}
			if p.Role != role {
				return apperr.Forbidden("insufficient role")
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated caller id, or "" outside Auth.
func UserID(c echo.Context) string {
	uid, _ := c.Get(ctxUID).(string)
	return uid
}

func Identity(c echo.Context) *token.Payload {
	p, _ := c.Get(ctxIdentity).(*token.Payload)
	return p
}

func bearer(h string) string {
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
