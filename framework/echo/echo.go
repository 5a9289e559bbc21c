// Package echofireauth adapts the fireauth gate to Echo's middleware
// chain. Denials are serialized exactly as the net/http wrappers write
// them, so clients see identical bodies regardless of framework.
package echofireauth

import (
	"github.com/labstack/echo/v4"

	fireauth "github.com/Hussamalsh/fireauth"
	"github.com/Hussamalsh/fireauth/validator"
)

// DefaultIdentityKey is the Echo context key the verified identity is
// stored under.
const DefaultIdentityKey = "fireauth/identity"

type middlewareConfig struct {
	identityKey string
}

// RequireAuth returns an Echo middleware that admits only authenticated
// requests. The verified identity is stored in the Echo context under the
// configured key and in the request context for IdentityFromContext.
func RequireAuth(g *fireauth.Gate, opts ...Option) echo.MiddlewareFunc {
	config := newConfig(opts)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, denial := g.RequireAuth(c.Request())
			if denial != nil {
				return c.JSON(denial.Status, denial.Body)
			}
			admit(c, config, identity)
			return next(c)
		}
	}
}

// RequireAdmin returns an Echo middleware that admits only identities the
// gate's admin policy accepts.
func RequireAdmin(g *fireauth.Gate, opts ...Option) echo.MiddlewareFunc {
	config := newConfig(opts)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, denial := g.RequireAdmin(c.Request())
			if denial != nil {
				return c.JSON(denial.Status, denial.Body)
			}
			admit(c, config, identity)
			return next(c)
		}
	}
}

// GetIdentity extracts the verified identity from the Echo context. An
// empty contextKey falls back to DefaultIdentityKey.
func GetIdentity(c echo.Context, contextKey string) (*validator.Identity, bool) {
	if contextKey == "" {
		contextKey = DefaultIdentityKey
	}
	identity, ok := c.Get(contextKey).(*validator.Identity)
	return identity, ok
}

func newConfig(opts []Option) *middlewareConfig {
	config := &middlewareConfig{identityKey: DefaultIdentityKey}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

func admit(c echo.Context, config *middlewareConfig, identity *validator.Identity) {
	c.Set(config.identityKey, identity)
	c.SetRequest(c.Request().WithContext(
		fireauth.ContextWithIdentity(c.Request().Context(), identity)))
}
