package validator

// Identity is the result of successful token verification.
//
// Subject is always present and non-empty. Every other field is a
// best-effort claim copied verbatim from the token payload; they identify
// the principal but must not drive authorization decisions on their own.
type Identity struct {
	// Subject is the principal's stable unique identifier (the sub claim).
	Subject string

	Email         string
	Name          string
	Picture       string
	EmailVerified bool

	// Claims holds the token's private claims verbatim. Carried so that
	// authorization policies can inspect custom claims; not part of the
	// identity contract.
	Claims map[string]any
}

// Tenant binds verification to an identity-provider project. Tokens must
// carry issuer "https://securetoken.google.com/<ProjectID>" and audience
// ProjectID.
//
// Tenant values are resolved fresh for every verification because the
// project may differ between deployment environments within one process.
type Tenant struct {
	ProjectID string
}
