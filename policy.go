package fireauth

import (
	"context"
	"strings"

	"github.com/Hussamalsh/fireauth/validator"
)

// AdminPolicy decides whether a verified identity holds elevated access.
// The rule itself is deployment configuration, not something this package
// can know; the gate only guarantees the check runs after successful
// identity verification and never before.
//
// Policies run on already-authenticated identities, so a false return is
// answered with 403, not 401.
type AdminPolicy interface {
	IsAdmin(ctx context.Context, identity *validator.Identity) (bool, error)
}

// EmailAllowlistPolicy grants admin access to a fixed set of email
// addresses. The match is case-insensitive and requires the token's
// email_verified claim, since an unverified email is attacker-chosen.
type EmailAllowlistPolicy struct {
	emails map[string]struct{}
}

// NewEmailAllowlistPolicy builds a policy from the given addresses.
func NewEmailAllowlistPolicy(emails ...string) *EmailAllowlistPolicy {
	p := &EmailAllowlistPolicy{emails: make(map[string]struct{}, len(emails))}
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			p.emails[email] = struct{}{}
		}
	}
	return p
}

// IsAdmin implements AdminPolicy.
func (p *EmailAllowlistPolicy) IsAdmin(_ context.Context, identity *validator.Identity) (bool, error) {
	if identity.Email == "" || !identity.EmailVerified {
		return false, nil
	}
	_, ok := p.emails[strings.ToLower(identity.Email)]
	return ok, nil
}

// BoolClaimPolicy grants admin access when the named private claim is the
// boolean true. Use with a custom claim set by the identity provider's
// admin tooling (for example "admin").
type BoolClaimPolicy struct {
	claim string
}

// NewBoolClaimPolicy builds a policy keyed on the named claim.
func NewBoolClaimPolicy(claim string) *BoolClaimPolicy {
	return &BoolClaimPolicy{claim: claim}
}

// IsAdmin implements AdminPolicy.
func (p *BoolClaimPolicy) IsAdmin(_ context.Context, identity *validator.Identity) (bool, error) {
	v, ok := identity.Claims[p.claim].(bool)
	return ok && v, nil
}
