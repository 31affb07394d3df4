package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/quickconvert/entitlement-system/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

const sessionEmailKey = "session_email"

// Session resolves the session cookie and injects the authenticated email
// into the request context. It never fails the request: a missing, malformed
// or expired token simply leaves the request unauthenticated.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err == nil && cookie.Value != "" {
				if email, ok := auth.WhoAmI(cookie.Value); ok {
					c.Set(sessionEmailKey, email)
				}
			}
			return next(c)
		}
	}
}

// SessionEmail returns the authenticated email injected by Session, or the
// empty string for an unauthenticated request.
func SessionEmail(c echo.Context) string {
	email, _ := c.Get(sessionEmailKey).(string)
	return email
}
