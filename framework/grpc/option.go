package grpcfireauth

import (
	fireauth "github.com/Hussamalsh/fireauth"
)

// Option configures the Interceptor. Options return errors so invalid
// configuration surfaces at construction.
type Option func(*Interceptor) error

// WithTenantFunc sets how the tenant binding is resolved per RPC.
//
// Default: fireauth.TenantFromContext.
func WithTenantFunc(f TenantFunc) Option {
	return func(i *Interceptor) error {
		if f == nil {
			return fireauth.ErrTenantSourceNil
		}
		i.tenant = f
		return nil
	}
}

// WithAdminPolicy sets the policy consulted for methods matched by
// WithAdminMethods. Without one, admin-only methods deny every identity.
func WithAdminPolicy(p fireauth.AdminPolicy) Option {
	return func(i *Interceptor) error {
		if p == nil {
			return fireauth.ErrAdminPolicyNil
		}
		i.adminPolicy = p
		return nil
	}
}

// WithTokenExtractor sets how the authorization value is read from the
// RPC.
//
// Default: MetadataTokenExtractor.
func WithTokenExtractor(e TokenExtractor) Option {
	return func(i *Interceptor) error {
		if e == nil {
			return fireauth.ErrExtractorNil
		}
		i.extractor = e
		return nil
	}
}

// WithLogger sets the logger used for rejection reporting.
func WithLogger(l fireauth.Logger) Option {
	return func(i *Interceptor) error {
		if l == nil {
			return fireauth.ErrLoggerNil
		}
		i.logger = l
		return nil
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m fireauth.Metrics) Option {
	return func(i *Interceptor) error {
		if m == nil {
			return fireauth.ErrMetricsNil
		}
		i.metrics = m
		return nil
	}
}

// WithSkipMethods exempts matched methods from authentication entirely,
// for health checks and reflection.
func WithSkipMethods(m MethodMatcher) Option {
	return func(i *Interceptor) error {
		i.skip = m
		return nil
	}
}

// WithAdminMethods marks matched methods as admin-only. Matched methods
// consult the admin policy after authentication.
func WithAdminMethods(m MethodMatcher) Option {
	return func(i *Interceptor) error {
		i.adminOnly = m
		return nil
	}
}

// MethodSet builds a MethodMatcher from an explicit list of full method
// names.
func MethodSet(fullMethods ...string) MethodMatcher {
	set := make(map[string]struct{}, len(fullMethods))
	for _, m := range fullMethods {
		set[m] = struct{}{}
	}
	return func(fullMethod string) bool {
		_, ok := set[fullMethod]
		return ok
	}
}
