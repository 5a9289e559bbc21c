package fireauth

import (
	"context"
	"net/http"

	"github.com/Hussamalsh/fireauth/internal/envcfg"
	"github.com/Hussamalsh/fireauth/validator"
)

// TenantProjectEnvKey is the environment variable the default tenant
// source reads the Firebase project ID from.
const TenantProjectEnvKey = "FIREBASE_PROJECT_ID"

// TenantSource resolves the tenant binding for a request. It runs fresh on
// every verification because the tenant may legitimately differ between
// deployment environments served by one process. The resolved value is
// untrusted input: an empty project ID makes verification fail closed.
type TenantSource func(r *http.Request) validator.Tenant

// DefaultTenantSource resolves the project ID from the request-scoped
// runtime environment (see WithRuntimeEnv) first, falling back to the
// process environment.
func DefaultTenantSource(r *http.Request) validator.Tenant {
	return TenantFromContext(r.Context())
}

// TenantFromContext resolves the tenant binding from a bare context, for
// transports that do not carry an *http.Request (such as gRPC). It applies
// the same layering as DefaultTenantSource.
func TenantFromContext(ctx context.Context) validator.Tenant {
	resolver := envcfg.Resolver{
		envcfg.Map(runtimeEnv(ctx)),
		envcfg.OS{},
	}
	return validator.Tenant{ProjectID: resolver.Resolve(TenantProjectEnvKey)}
}

// StaticTenant returns a TenantSource bound to a fixed project ID, for
// deployments that compile the tenant in rather than configuring it.
func StaticTenant(projectID string) TenantSource {
	return func(*http.Request) validator.Tenant {
		return validator.Tenant{ProjectID: projectID}
	}
}
