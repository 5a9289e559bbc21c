package validator

import (
	"errors"
	"fmt"
)

// Kind classifies a verification failure. The set is closed: callers switch
// on it for logging and monitoring, and every failure maps to exactly one
// kind. Kinds are operator-facing only and must never alter the
// client-visible rejection.
type Kind int

const (
	// KindOther covers failures with no more specific classification,
	// including malformed token serializations and key resolution errors.
	KindOther Kind = iota

	// KindNoCredential means no usable bearer credential was presented:
	// the header was absent, used a different scheme, or carried an empty
	// token.
	KindNoCredential

	// KindTenantMisconfigured means the expected project ID resolved
	// empty. This is a server-side configuration error, not a client
	// fault; verification fails closed.
	KindTenantMisconfigured

	// KindExpired means the token's exp claim is in the past.
	KindExpired

	// KindClaimInvalid means the signature checked out but a claim did
	// not: issuer or audience mismatch, missing sub, bad temporal claims.
	KindClaimInvalid

	// KindSignatureInvalid means signature verification failed. This is
	// the strongest signal of a tampered or forged token and should be
	// monitored distinctly from routine expiry.
	KindSignatureInvalid
)

// String returns a stable name for the kind, suitable for log fields and
// metric labels.
func (k Kind) String() string {
	switch k {
	case KindNoCredential:
		return "no_credential"
	case KindTenantMisconfigured:
		return "tenant_misconfigured"
	case KindExpired:
		return "expired"
	case KindClaimInvalid:
		return "claim_invalid"
	case KindSignatureInvalid:
		return "signature_invalid"
	default:
		return "other"
	}
}

// Error is the failure type returned by Validator.Verify. It carries the
// taxonomy kind plus an operator-facing message; the HTTP-facing layer is
// expected to discard both and answer with a generic rejection.
type Error struct {
	Kind Kind

	msg string
	err error
}

// NewKindError returns a verification error of the given kind. Custom
// verifier implementations can use it to participate in the same taxonomy
// the gate switches on.
func NewKindError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

func wrapError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, msg: msg, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.err)
	}
	return e.msg
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.err
}

// KindOf extracts the taxonomy kind from a verification error. Errors that
// did not originate from this package classify as KindOther.
func KindOf(err error) Kind {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Kind
	}
	return KindOther
}
