package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Admin gates administrative routes behind the static admin secret. The
// credential may arrive as an Authorization Bearer header or as an
// adminToken field in the JSON body. An empty configured secret rejects
// every request.
//
// The comparison is plain equality rather than a timing-safe compare; the
// admin path is a low-volume internal surface.
func Admin(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get("Authorization"))
			if token == "" {
				token = bodyAdminToken(c)
			}
			if secret == "" || token != secret {
				return c.JSON(http.StatusUnauthorized, map[string]any{"ok": false, "error": "unauthorized"})
			}
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// bodyAdminToken peeks the adminToken field out of the JSON body and restores
// the body so the handler's own bind still sees it.
func bodyAdminToken(c echo.Context) string {
	req := c.Request()
	if req.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return ""
	}
	var probe struct {
		AdminToken string `json:"adminToken"`
	}
	if json.Unmarshal(raw, &probe) != nil {
		return ""
	}
	return probe.AdminToken
}
