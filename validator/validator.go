package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// IssuerPrefix is the issuer domain for Firebase ID tokens. The expected
// issuer for a tenant is IssuerPrefix + project ID.
const IssuerPrefix = "https://securetoken.google.com/"

// bearerScheme is matched case-sensitively. Firebase clients send the
// literal "Bearer " prefix; anything else is treated as no credential.
const bearerScheme = "Bearer "

// DefaultIssuedAtLeeway is how far in the future an iat claim may be
// before the token is rejected. Allows minor clock drift between issuers
// and verifiers; the boundary is inclusive.
const DefaultIssuedAtLeeway = 5 * time.Second

// KeyFunc supplies the key set used to verify token signatures.
// jwks.CachingProvider.KeyFunc satisfies this signature.
type KeyFunc func(context.Context) (jwk.Set, error)

// Clock tells the validator the current time. Injectable for tests.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// Validator is the single authority for deciding whether a bearer token
// represents a currently-valid, correctly-scoped, temporally-sound
// credential. It is stateless apart from the injected key source and safe
// for concurrent use.
type Validator struct {
	keyFunc        KeyFunc
	clock          Clock
	issuedAtLeeway time.Duration
}

// New sets up a new Validator. WithKeyFunc is required.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		clock:          ClockFunc(time.Now),
		issuedAtLeeway: DefaultIssuedAtLeeway,
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if v.keyFunc == nil {
		return nil, fmt.Errorf("keyFunc is required (use WithKeyFunc)")
	}

	return v, nil
}

// Verify checks the Authorization header value against the tenant binding
// and returns the verified identity, or an *Error classifying the failure.
//
// The check order is fail-closed: credential presence, then tenant
// configuration, and only then any cryptographic work. A missing or
// malformed header never reaches the network.
func (v *Validator) Verify(ctx context.Context, authorization string, tenant Tenant) (*Identity, error) {
	raw, ok := strings.CutPrefix(authorization, bearerScheme)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil, newError(KindNoCredential, "no bearer credential presented")
	}

	project := strings.TrimSpace(tenant.ProjectID)
	if project == "" {
		// An unconfigured tenant must never mean "accept any token".
		return nil, newError(KindTenantMisconfigured, "tenant project ID resolved empty")
	}

	keys, err := v.keyFunc(ctx)
	if err != nil {
		return nil, wrapError(KindOther, "could not resolve signing keys", err)
	}

	payload := []byte(raw)

	msg, err := jws.Parse(payload)
	if err != nil {
		return nil, wrapError(KindOther, "token is not a valid compact serialization", err)
	}
	sigs := msg.Signatures()
	if len(sigs) == 0 {
		return nil, newError(KindOther, "token carries no signature")
	}
	if alg := sigs[0].ProtectedHeaders().Algorithm(); alg != jwa.RS256 {
		return nil, newError(KindSignatureInvalid, fmt.Sprintf("expected %q signing algorithm but token specified %q", jwa.RS256, alg))
	}

	if _, err := jws.Verify(payload, jws.WithKeySet(keys, jws.WithInferAlgorithmFromKey(true), jws.WithRequireKid(false))); err != nil {
		return nil, wrapError(KindSignatureInvalid, "signature verification failed", err)
	}

	token, err := jwt.Parse(payload, jwt.WithVerify(false), jwt.WithValidate(false))
	if err != nil {
		return nil, wrapError(KindOther, "could not parse token claims", err)
	}

	return v.validateClaims(token, project)
}

// validateClaims runs the post-signature checks: temporal soundness,
// issuer/audience binding, and the Firebase-specific required claims.
func (v *Validator) validateClaims(token jwt.Token, project string) (*Identity, error) {
	now := v.clock.Now()

	if exp := token.Expiration(); !exp.IsZero() && now.After(exp) {
		return nil, newError(KindExpired, "token is expired")
	}
	if nbf := token.NotBefore(); !nbf.IsZero() && now.Before(nbf) {
		return nil, newError(KindClaimInvalid, "token is not valid yet")
	}

	if iss := token.Issuer(); iss != IssuerPrefix+project {
		return nil, newError(KindClaimInvalid, "issuer does not match the expected tenant")
	}
	if !containsAudience(token.Audience(), project) {
		return nil, newError(KindClaimInvalid, "audience does not match the expected tenant")
	}

	subject := token.Subject()
	if subject == "" {
		// Signature checked out but the payload lacks its principal; this
		// is a malformed-token signal distinct from ordinary bad signatures.
		return nil, newError(KindClaimInvalid, "token is missing the sub claim")
	}

	authTime, ok := numericClaim(token, "auth_time")
	if !ok {
		return nil, newError(KindClaimInvalid, "token is missing a numeric auth_time claim")
	}
	if authTime > now.Unix() {
		return nil, newError(KindClaimInvalid, "auth_time is in the future")
	}

	if iat := token.IssuedAt(); !iat.IsZero() && iat.After(now.Add(v.issuedAtLeeway)) {
		return nil, newError(KindClaimInvalid, "iat is too far in the future")
	}

	identity := &Identity{
		Subject: subject,
		Claims:  token.PrivateClaims(),
	}
	identity.Email, _ = stringClaim(token, "email")
	identity.Name, _ = stringClaim(token, "name")
	identity.Picture, _ = stringClaim(token, "picture")
	if verified, ok := token.Get("email_verified"); ok {
		if b, ok := verified.(bool); ok {
			identity.EmailVerified = b
		}
	}

	return identity, nil
}

func containsAudience(audience []string, expected string) bool {
	for _, aud := range audience {
		if aud == expected {
			return true
		}
	}
	return false
}

func stringClaim(token jwt.Token, name string) (string, bool) {
	raw, ok := token.Get(name)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

// numericClaim reads a claim as Unix seconds, accepting the decodings a
// JSON number can arrive as.
func numericClaim(token jwt.Token, name string) (int64, bool) {
	raw, ok := token.Get(name)
	if !ok {
		return 0, false
	}

	switch n := raw.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
