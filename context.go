package fireauth

import (
	"context"

	"github.com/Hussamalsh/fireauth/validator"
)

// contextKey is an unexported type for context keys to prevent collisions
// with keys from other packages.
type contextKey int

const (
	identityKey contextKey = iota
	runtimeEnvKey
)

// ContextWithIdentity stores a verified identity in the context. The
// middleware wrappers call this after a successful RequireAuth.
func ContextWithIdentity(ctx context.Context, identity *validator.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext retrieves the verified identity stored by the
// middleware wrappers.
func IdentityFromContext(ctx context.Context) (*validator.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*validator.Identity)
	return identity, ok
}

// WithRuntimeEnv attaches a request-scoped environment map to the context.
// Platform runtimes that carry per-deployment configuration (preview vs
// production bindings) populate this before the gate runs; the default
// tenant source consults it ahead of the process environment.
func WithRuntimeEnv(ctx context.Context, env map[string]string) context.Context {
	return context.WithValue(ctx, runtimeEnvKey, env)
}

func runtimeEnv(ctx context.Context) map[string]string {
	env, _ := ctx.Value(runtimeEnvKey).(map[string]string)
	return env
}
