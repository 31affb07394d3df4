package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func adminRequest(body string, header map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/grant", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func passThrough(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAdmin_BearerHeader(t *testing.T) {
	c, rec := adminRequest(`{}`, map[string]string{"Authorization": "Bearer hunter2"})

	if err := Admin("hunter2")(passThrough)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAdmin_BodyToken(t *testing.T) {
	c, rec := adminRequest(`{"email":"a@x.com","adminToken":"hunter2"}`, nil)

	called := false
	next := func(c echo.Context) error {
		called = true
		// The handler's own bind must still see the full body.
		raw, err := io.ReadAll(c.Request().Body)
		if err != nil {
			t.Fatalf("read restored body: %v", err)
		}
		if !strings.Contains(string(raw), `"email":"a@x.com"`) {
			t.Fatalf("body not restored: %q", raw)
		}
		return c.NoContent(http.StatusOK)
	}

	if err := Admin("hunter2")(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAdmin_WrongToken(t *testing.T) {
	c, rec := adminRequest(`{"adminToken":"guess"}`, map[string]string{"Authorization": "Bearer also-wrong"})

	if err := Admin("hunter2")(passThrough)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAdmin_MissingToken(t *testing.T) {
	c, rec := adminRequest(`{}`, nil)

	if err := Admin("hunter2")(passThrough)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAdmin_EmptySecretRejectsEverything(t *testing.T) {
	c, rec := adminRequest(`{"adminToken":""}`, nil)

	if err := Admin("")(passThrough)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	// An unset secret must not turn into an open admin surface.
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}
