package jwks

import "sync"

var (
	defaultOnce     sync.Once
	defaultProvider *CachingProvider
)

// Default returns a process-wide CachingProvider for the Firebase
// securetoken endpoint, constructed on first use. Concurrent first callers
// share the single construction, so a cold start cannot amplify load on
// the key endpoint.
//
// Deployments that need a custom endpoint or timings should construct and
// inject their own provider with NewCachingProvider instead.
func Default() *CachingProvider {
	defaultOnce.Do(func() {
		// No options, so construction cannot fail.
		defaultProvider, _ = NewCachingProvider()
	})
	return defaultProvider
}
