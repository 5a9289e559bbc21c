package ginfireauth

// Option configures the Gin middleware.
type Option func(*middlewareConfig)

// WithIdentityKey overrides the Gin context key the verified identity is
// stored under.
func WithIdentityKey(key string) Option {
	return func(c *middlewareConfig) {
		if key != "" {
			c.identityKey = key
		}
	}
}
