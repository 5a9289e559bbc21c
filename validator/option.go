package validator

import (
	"errors"
	"time"
)

// Option is how options for the Validator are set up.
// Options return errors to enable validation during construction.
type Option func(*Validator) error

// WithKeyFunc sets the function that provides the key set for signature
// verification. This is a required option.
//
// For production use pass jwks.Default().KeyFunc or the KeyFunc of an
// injected jwks.CachingProvider.
func WithKeyFunc(keyFunc KeyFunc) Option {
	return func(v *Validator) error {
		if keyFunc == nil {
			return errors.New("keyFunc cannot be nil")
		}
		v.keyFunc = keyFunc
		return nil
	}
}

// WithClock sets the clock used for temporal claim checks.
//
// Default: the system clock.
func WithClock(clock Clock) Option {
	return func(v *Validator) error {
		if clock == nil {
			return errors.New("clock cannot be nil")
		}
		v.clock = clock
		return nil
	}
}

// WithIssuedAtLeeway sets how far in the future an iat claim may be before
// the token is rejected. The boundary is inclusive: a token issued exactly
// at now+leeway passes.
//
// Default: DefaultIssuedAtLeeway.
func WithIssuedAtLeeway(leeway time.Duration) Option {
	return func(v *Validator) error {
		if leeway < 0 {
			return errors.New("leeway cannot be negative")
		}
		v.issuedAtLeeway = leeway
		return nil
	}
}
