package jwks

import (
	"errors"
	"net/http"
	"net/url"
	"time"
)

// Option configures a CachingProvider.
// Options return errors to enable validation during construction.
type Option func(*CachingProvider) error

// WithEndpoint overrides the JWKS endpoint. Intended for tests and for
// self-hosted emulators; production deployments verify against
// GoogleSecureTokenCertsURL.
func WithEndpoint(endpoint string) Option {
	return func(p *CachingProvider) error {
		if endpoint == "" {
			return errors.New("endpoint cannot be empty")
		}
		if _, err := url.Parse(endpoint); err != nil {
			return errors.New("endpoint must be a valid URL")
		}
		p.endpoint = endpoint
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for key fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(p *CachingProvider) error {
		if client == nil {
			return errors.New("http client cannot be nil")
		}
		p.client = client
		return nil
	}
}

// WithCooldown sets the minimum interval between outbound key fetches.
//
// Default: DefaultCooldown.
func WithCooldown(d time.Duration) Option {
	return func(p *CachingProvider) error {
		if d < 0 {
			return errors.New("cooldown cannot be negative")
		}
		p.cooldown = d
		return nil
	}
}

// WithFetchTimeout bounds a single key fetch.
//
// Default: DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(p *CachingProvider) error {
		if d <= 0 {
			return errors.New("fetch timeout must be positive")
		}
		p.fetchTimeout = d
		return nil
	}
}
