package fireauth

import (
	"context"
	"net/http"
	"time"

	"github.com/Hussamalsh/fireauth/validator"
)

// TokenVerifier is the verification authority the gate delegates to.
// *validator.Validator satisfies this interface.
type TokenVerifier interface {
	Verify(ctx context.Context, authorization string, tenant validator.Tenant) (*validator.Identity, error)
}

// Gate is the request-facing authorization contract used by every
// protected entry point. It is stateless and safe for concurrent use.
type Gate struct {
	verifier    TokenVerifier
	tenant      TenantSource
	adminPolicy AdminPolicy
	extractor   Extractor
	logger      Logger
	metrics     Metrics
	tracer      Tracer
}

// New constructs a Gate. WithVerifier is required.
func New(opts ...Option) (*Gate, error) {
	g := &Gate{
		tenant:    DefaultTenantSource,
		extractor: AuthorizationHeaderExtractor,
		logger:    &DefaultLogger{},
		metrics:   &NoopMetrics{},
		tracer:    &NoopTracer{},
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	if g.verifier == nil {
		return nil, ErrVerifierNil
	}

	return g, nil
}

// RequireAuth verifies the request's bearer credential. It returns the
// verified identity, or a Denial the handler must write back. Exactly one
// of the two results is non-nil.
func (g *Gate) RequireAuth(r *http.Request) (*validator.Identity, *Denial) {
	ctx, span := g.tracer.StartSpan(r.Context(), "fireauth.RequireAuth")
	defer span.Finish()

	start := time.Now()
	identity, err := g.verifier.Verify(ctx, g.extractor(r), g.tenant(r))
	g.metrics.ObserveHistogram("fireauth_verify_duration_seconds", time.Since(start).Seconds(), nil)

	if err != nil {
		kind := validator.KindOf(err)
		g.logRejection(kind, err, r)
		g.metrics.IncCounter("fireauth_rejections_total", map[string]string{"kind": kind.String()})
		span.SetTag("outcome", "rejected")
		return nil, Unauthorized()
	}

	g.metrics.IncCounter("fireauth_verifications_total", map[string]string{"outcome": "ok"})
	span.SetTag("outcome", "ok")
	return identity, nil
}

// RequireAdmin verifies the request's bearer credential and then consults
// the configured AdminPolicy. Unauthenticated requests are denied with
// 401; authenticated identities the policy does not admit are denied with
// 403. With no policy configured every identity is denied.
func (g *Gate) RequireAdmin(r *http.Request) (*validator.Identity, *Denial) {
	identity, denial := g.RequireAuth(r)
	if denial != nil {
		return nil, denial
	}

	if g.adminPolicy == nil {
		g.logger.Errorf("admin access denied for %q: no admin policy configured", identity.Subject)
		g.metrics.IncCounter("fireauth_admin_denials_total", map[string]string{"reason": "no_policy"})
		return nil, Forbidden()
	}

	ok, err := g.adminPolicy.IsAdmin(r.Context(), identity)
	if err != nil {
		g.logger.Errorf("admin policy failed for %q: %v", identity.Subject, err)
		g.metrics.IncCounter("fireauth_admin_denials_total", map[string]string{"reason": "policy_error"})
		return nil, Forbidden()
	}
	if !ok {
		g.logger.Infof("admin access denied for %q", identity.Subject)
		g.metrics.IncCounter("fireauth_admin_denials_total", map[string]string{"reason": "not_admin"})
		return nil, Forbidden()
	}

	return identity, nil
}

// RequireAuthHandler wraps next so it only runs for authenticated
// requests. The verified identity is available to next through
// IdentityFromContext.
func (g *Gate) RequireAuthHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, denial := g.RequireAuth(r)
		if denial != nil {
			denial.Write(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
	})
}

// RequireAdminHandler wraps next so it only runs for admitted admin
// identities.
func (g *Gate) RequireAdminHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, denial := g.RequireAdmin(r)
		if denial != nil {
			denial.Write(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
	})
}

// logRejection maps the verification taxonomy onto log severities. A
// misconfigured tenant is an operator fault; claim and signature failures
// are worth watching; expiry and absent credentials are routine.
func (g *Gate) logRejection(kind validator.Kind, err error, r *http.Request) {
	switch kind {
	case validator.KindTenantMisconfigured:
		g.logger.Errorf("server misconfiguration, rejecting %s %s: %v", r.Method, r.URL.Path, err)
	case validator.KindSignatureInvalid:
		g.logger.Warnf("token signature verification failed, possible tampered token: %v", err)
	case validator.KindClaimInvalid:
		g.logger.Warnf("token claim validation failed: %v", err)
	case validator.KindExpired:
		g.logger.Debugf("token expired")
	default:
		g.logger.Debugf("token verification failed: %v", err)
	}
}
