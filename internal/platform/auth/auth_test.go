package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"timebox/internal/platform/auth"
	"timebox/internal/platform/config"
	apperrors "timebox/internal/platform/errors"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()
	hash, err := auth.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	a := auth.NewAuthenticator([]config.User{{Username: "ana", PasswordHash: hash}, {Username: "", PasswordHash: hash}})
	if !a.Verify("ana", "hunter2") {
		t.Fatalf("expected valid credentials")
	}
	if a.Verify("ana", "wrong") || a.Verify("bob", "hunter2") {
		t.Fatalf("expected invalid credentials to fail")
	}
	if _, err := auth.HashPassword(""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestMiddlewareSetsPrincipal(t *testing.T) {
	t.Parallel()
	hash, err := auth.HashPassword("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	a := auth.NewAuthenticator([]config.User{{Username: "ana", PasswordHash: hash}})

	e := echo.New()
	g := e.Group("/api", a.Middleware())
	g.GET("/whoami", func(c echo.Context) error {
		owner, err := auth.Principal(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, owner)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.SetBasicAuth("ana", "pw")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "ana" {
		t.Fatalf("expected 200 ana, got %d %q", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.SetBasicAuth("ana", "nope")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPrincipalMissing(t *testing.T) {
	t.Parallel()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, err := auth.Principal(c); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
