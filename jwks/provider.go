package jwks

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"golang.org/x/sync/singleflight"
)

// GoogleSecureTokenCertsURL is the public key distribution endpoint for the
// Firebase securetoken signing service. Key material at this endpoint
// rotates on the order of hours.
const GoogleSecureTokenCertsURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

const (
	// DefaultCooldown is the minimum interval between outbound key fetches.
	DefaultCooldown = 30 * time.Second

	// DefaultFetchTimeout bounds a single key fetch.
	DefaultFetchTimeout = 10 * time.Second
)

// CachingProvider fetches and caches the JWK set used to verify ID token
// signatures. Fetches are never issued closer together than the configured
// cooldown, even under concurrent callers; within the cooldown window the
// cached set is served as-is. A failed fetch leaves the cache unrefreshed
// and the next call after the cooldown retries.
//
// CachingProvider is safe for concurrent use. Construct one per process and
// share it; see Default for a lazily-built shared instance.
type CachingProvider struct {
	endpoint     string
	client       *http.Client
	cooldown     time.Duration
	fetchTimeout time.Duration

	group singleflight.Group

	mu          sync.RWMutex
	keys        jwk.Set
	lastAttempt time.Time
	lastErr     error
}

// NewCachingProvider builds and returns a new *CachingProvider.
//
// With no options the provider fetches from GoogleSecureTokenCertsURL with
// a 30 second cooldown and a 10 second fetch timeout.
func NewCachingProvider(opts ...Option) (*CachingProvider, error) {
	p := &CachingProvider{
		endpoint:     GoogleSecureTokenCertsURL,
		cooldown:     DefaultCooldown,
		fetchTimeout: DefaultFetchTimeout,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if p.client == nil {
		p.client = &http.Client{Timeout: p.fetchTimeout}
	}

	return p, nil
}

// KeyFunc returns the current signing key set, fetching it from the
// endpoint when the cooldown allows. It adheres to the keyFunc signature
// that the validator requires.
func (p *CachingProvider) KeyFunc(ctx context.Context) (jwk.Set, error) {
	p.mu.RLock()
	keys := p.keys
	lastAttempt := p.lastAttempt
	lastErr := p.lastErr
	p.mu.RUnlock()

	if time.Since(lastAttempt) < p.cooldown {
		if keys != nil {
			return keys, nil
		}
		// A fetch already failed inside the cooldown window. Retrying now
		// would break the minimum fetch interval, so the failure stands
		// until the window passes.
		return nil, fmt.Errorf("signing keys unavailable until cooldown passes: %w", lastErr)
	}

	v, err, _ := p.group.Do(p.endpoint, func() (any, error) {
		return p.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}

	return v.(jwk.Set), nil
}

// refresh performs one bounded fetch and records the attempt. Concurrent
// callers are collapsed into a single flight by KeyFunc, so refresh never
// runs more than once at a time for the same endpoint.
func (p *CachingProvider) refresh(ctx context.Context) (jwk.Set, error) {
	// Re-check under the lock: a flight that completed between the caller's
	// cooldown check and this one already did the work.
	p.mu.RLock()
	if p.keys != nil && time.Since(p.lastAttempt) < p.cooldown {
		keys := p.keys
		p.mu.RUnlock()
		return keys, nil
	}
	p.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	set, err := jwk.Fetch(ctx, p.endpoint, jwk.WithHTTPClient(p.client))

	p.mu.Lock()
	p.lastAttempt = time.Now()
	if err != nil {
		p.lastErr = err
		p.mu.Unlock()
		return nil, fmt.Errorf("could not fetch JWKS: %w", err)
	}
	p.keys = set
	p.lastErr = nil
	p.mu.Unlock()

	return set, nil
}
