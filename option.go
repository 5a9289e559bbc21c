package fireauth

import "errors"

// Option configures the Gate.
// Options return errors to enable validation during construction.
type Option func(*Gate) error

// Sentinel errors for configuration validation.
var (
	ErrVerifierNil     = errors.New("verifier cannot be nil (use WithVerifier)")
	ErrTenantSourceNil = errors.New("tenant source cannot be nil")
	ErrAdminPolicyNil  = errors.New("admin policy cannot be nil")
	ErrExtractorNil    = errors.New("extractor cannot be nil")
	ErrLoggerNil       = errors.New("logger cannot be nil")
	ErrMetricsNil      = errors.New("metrics cannot be nil")
	ErrTracerNil       = errors.New("tracer cannot be nil")
)

// WithVerifier sets the token verifier (REQUIRED).
//
// Example:
//
//	v, err := validator.New(validator.WithKeyFunc(jwks.Default().KeyFunc))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gate, err := fireauth.New(fireauth.WithVerifier(v))
func WithVerifier(v TokenVerifier) Option {
	return func(g *Gate) error {
		if v == nil {
			return ErrVerifierNil
		}
		g.verifier = v
		return nil
	}
}

// WithTenantSource sets how the tenant binding is resolved per request.
//
// Default: DefaultTenantSource.
func WithTenantSource(s TenantSource) Option {
	return func(g *Gate) error {
		if s == nil {
			return ErrTenantSourceNil
		}
		g.tenant = s
		return nil
	}
}

// WithAdminPolicy sets the policy consulted by RequireAdmin. Without one,
// RequireAdmin denies every identity.
func WithAdminPolicy(p AdminPolicy) Option {
	return func(g *Gate) error {
		if p == nil {
			return ErrAdminPolicyNil
		}
		g.adminPolicy = p
		return nil
	}
}

// WithExtractor sets how the bearer value is pulled from the request.
//
// Default: AuthorizationHeaderExtractor.
func WithExtractor(e Extractor) Option {
	return func(g *Gate) error {
		if e == nil {
			return ErrExtractorNil
		}
		g.extractor = e
		return nil
	}
}

// WithLogger sets the logger used for rejection reporting.
//
// Default: DefaultLogger.
func WithLogger(l Logger) Option {
	return func(g *Gate) error {
		if l == nil {
			return ErrLoggerNil
		}
		g.logger = l
		return nil
	}
}

// WithMetrics sets the metrics sink.
//
// Default: NoopMetrics.
func WithMetrics(m Metrics) Option {
	return func(g *Gate) error {
		if m == nil {
			return ErrMetricsNil
		}
		g.metrics = m
		return nil
	}
}

// WithTracer sets the tracer.
//
// Default: NoopTracer.
func WithTracer(t Tracer) Option {
	return func(g *Gate) error {
		if t == nil {
			return ErrTracerNil
		}
		g.tracer = t
		return nil
	}
}
