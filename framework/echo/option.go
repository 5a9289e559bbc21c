package echofireauth

// Option configures the Echo middleware.
type Option func(*middlewareConfig)

// WithIdentityKey overrides the Echo context key the verified identity is
// stored under.
func WithIdentityKey(key string) Option {
	return func(c *middlewareConfig) {
		if key != "" {
			c.identityKey = key
		}
	}
}
