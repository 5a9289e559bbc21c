// Package jwks retrieves and caches the public signing keys used to verify
// Firebase ID tokens.
//
// The securetoken signing keys rotate rarely, so the provider enforces a
// minimum interval between fetches (the cooldown) and serves the cached set
// within that window. This trades a bounded amount of staleness for not
// hammering the key endpoint, which rate-limits aggressive clients.
package jwks
