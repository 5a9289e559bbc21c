// Package ginfireauth adapts the fireauth gate to Gin handler chains.
// Denials are serialized exactly as the net/http wrappers write them, so
// clients see identical bodies regardless of framework.
package ginfireauth

import (
	"errors"

	"github.com/gin-gonic/gin"

	fireauth "github.com/Hussamalsh/fireauth"
	"github.com/Hussamalsh/fireauth/validator"
)

// DefaultIdentityKey is the Gin context key the verified identity is
// stored under.
const DefaultIdentityKey = "fireauth/identity"

var (
	ErrMissingIdentity = errors.New("no verified identity found in context")
	ErrInvalidIdentity = errors.New("invalid identity type in context")
)

type middlewareConfig struct {
	identityKey string
}

// RequireAuth returns a Gin middleware that admits only authenticated
// requests.
func RequireAuth(g *fireauth.Gate, opts ...Option) gin.HandlerFunc {
	config := newConfig(opts)

	return func(c *gin.Context) {
		identity, denial := g.RequireAuth(c.Request)
		if denial != nil {
			c.AbortWithStatusJSON(denial.Status, denial.Body)
			return
		}
		admit(c, config, identity)
		c.Next()
	}
}

// RequireAdmin returns a Gin middleware that admits only identities the
// gate's admin policy accepts.
func RequireAdmin(g *fireauth.Gate, opts ...Option) gin.HandlerFunc {
	config := newConfig(opts)

	return func(c *gin.Context) {
		identity, denial := g.RequireAdmin(c.Request)
		if denial != nil {
			c.AbortWithStatusJSON(denial.Status, denial.Body)
			return
		}
		admit(c, config, identity)
		c.Next()
	}
}

// GetIdentity extracts the verified identity from the Gin context. An
// empty contextKey falls back to DefaultIdentityKey.
func GetIdentity(c *gin.Context, contextKey string) (*validator.Identity, error) {
	if contextKey == "" {
		contextKey = DefaultIdentityKey
	}
	value, exists := c.Get(contextKey)
	if !exists {
		return nil, ErrMissingIdentity
	}
	identity, ok := value.(*validator.Identity)
	if !ok {
		return nil, ErrInvalidIdentity
	}
	return identity, nil
}

func newConfig(opts []Option) *middlewareConfig {
	config := &middlewareConfig{identityKey: DefaultIdentityKey}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

func admit(c *gin.Context, config *middlewareConfig, identity *validator.Identity) {
	c.Set(config.identityKey, identity)
	c.Request = c.Request.WithContext(
		fireauth.ContextWithIdentity(c.Request.Context(), identity))
}
