package auth

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"timebox/internal/platform/config"
	apperrors "timebox/internal/platform/errors"
)

const principalKey = "timebox.principal"

// Authenticator checks basic-auth credentials against configured bcrypt hashes.
type Authenticator struct {
	users map[string][]byte
}

func NewAuthenticator(users []config.User) *Authenticator {
	table := make(map[string][]byte, len(users))
	for _, u := range users {
		name := strings.TrimSpace(u.Username)
		if name == "" || u.PasswordHash == "" {
			continue
		}
		table[name] = []byte(u.PasswordHash)
	}
	return &Authenticator{users: table}
}

func (a *Authenticator) Verify(username, password string) bool {
	hash, ok := a.users[username]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// Middleware guards a route group with HTTP basic auth and records the
// username as the request principal.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm: "timebox",
		Validator: func(username, password string, c echo.Context) (bool, error) {
			if !a.Verify(username, password) {
				return false, nil
			}
			c.Set(principalKey, username)
			return true, nil
		},
	})
}

// Principal returns the authenticated username of the request.
func Principal(c echo.Context) (string, error) {
	owner, ok := c.Get(principalKey).(string)
	if !ok || owner == "" {
		return "", apperrors.ErrUnauthorized
	}
	return owner, nil
}

// WithPrincipal is used by handler tests that skip the middleware.
func WithPrincipal(c echo.Context, owner string) {
	c.Set(principalKey, owner)
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is empty", apperrors.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
