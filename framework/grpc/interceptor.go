// Package grpcfireauth adapts bearer-token verification to gRPC server
// interceptors. Rejections carry the same client-facing messages as the
// HTTP gate: codes.Unauthenticated with the generic authentication
// message, codes.PermissionDenied with the generic admin message. The
// operator-facing failure detail goes to the logger only.
package grpcfireauth

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	fireauth "github.com/Hussamalsh/fireauth"
	"github.com/Hussamalsh/fireauth/validator"
)

// TenantFunc resolves the tenant binding for an incoming RPC.
type TenantFunc func(ctx context.Context) validator.Tenant

// MethodMatcher reports whether a full method name (as in
// grpc.UnaryServerInfo.FullMethod) is subject to a rule.
type MethodMatcher func(fullMethod string) bool

// Interceptor authenticates incoming RPCs against a token verifier.
type Interceptor struct {
	verifier    fireauth.TokenVerifier
	tenant      TenantFunc
	adminPolicy fireauth.AdminPolicy
	extractor   TokenExtractor
	logger      fireauth.Logger
	metrics     fireauth.Metrics
	skip        MethodMatcher
	adminOnly   MethodMatcher
}

// New constructs an Interceptor. The verifier is required.
func New(verifier fireauth.TokenVerifier, opts ...Option) (*Interceptor, error) {
	if verifier == nil {
		return nil, fireauth.ErrVerifierNil
	}

	i := &Interceptor{
		verifier:  verifier,
		tenant:    fireauth.TenantFromContext,
		extractor: MetadataTokenExtractor,
		logger:    &fireauth.DefaultLogger{},
		metrics:   &fireauth.NoopMetrics{},
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	return i, nil
}

// authenticate verifies the RPC's credential and returns a context holding
// the identity. Every verification failure maps to the same
// Unauthenticated status; admin denials map to PermissionDenied.
func (i *Interceptor) authenticate(ctx context.Context, fullMethod string) (context.Context, error) {
	if i.skip != nil && i.skip(fullMethod) {
		return ctx, nil
	}

	identity, err := i.verifier.Verify(ctx, i.extractor(ctx), i.tenant(ctx))
	if err != nil {
		kind := validator.KindOf(err)
		i.logger.Debugf("rpc %s rejected (%s): %v", fullMethod, kind, err)
		i.metrics.IncCounter("fireauth_grpc_rejections_total", map[string]string{"kind": kind.String()})
		return nil, status.Error(codes.Unauthenticated, fireauth.MessageAuthRequired)
	}

	if i.adminOnly != nil && i.adminOnly(fullMethod) {
		if err := i.requireAdmin(ctx, identity, fullMethod); err != nil {
			return nil, err
		}
	}

	i.metrics.IncCounter("fireauth_grpc_verifications_total", map[string]string{"outcome": "ok"})
	return fireauth.ContextWithIdentity(ctx, identity), nil
}

func (i *Interceptor) requireAdmin(ctx context.Context, identity *validator.Identity, fullMethod string) error {
	if i.adminPolicy == nil {
		i.logger.Errorf("rpc %s requires admin but no admin policy is configured", fullMethod)
		return status.Error(codes.PermissionDenied, fireauth.MessageAdminRequired)
	}
	ok, err := i.adminPolicy.IsAdmin(ctx, identity)
	if err != nil {
		i.logger.Errorf("admin policy failed for %q on %s: %v", identity.Subject, fullMethod, err)
		return status.Error(codes.PermissionDenied, fireauth.MessageAdminRequired)
	}
	if !ok {
		i.logger.Infof("admin access denied for %q on %s", identity.Subject, fullMethod)
		return status.Error(codes.PermissionDenied, fireauth.MessageAdminRequired)
	}
	return nil
}

// UnaryServerInterceptor returns a unary interceptor enforcing
// authentication on every method the skip matcher does not exempt.
func (i *Interceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		authCtx, err := i.authenticate(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(authCtx, req)
	}
}

// StreamServerInterceptor returns a stream interceptor enforcing
// authentication on every method the skip matcher does not exempt.
func (i *Interceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		authCtx, err := i.authenticate(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: authCtx})
	}
}

// wrappedServerStream overrides the stream context with the authenticated
// one.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
