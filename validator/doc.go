// Package validator verifies Firebase ID tokens presented as bearer
// credentials.
//
// Verification binds a token to a tenant: the issuer must be
// "https://securetoken.google.com/<project>" and the audience must contain
// the project ID. On top of the signature check the validator enforces the
// Firebase-specific claim rules: a non-empty sub, an auth_time no later
// than the verifier's clock, and an iat no more than five seconds ahead of
// it.
//
// Failures are reported as *Error values carrying a closed Kind taxonomy
// for operator logging. The taxonomy is internal: transports answering
// clients must collapse every kind into the same generic rejection so that
// rejection reasons cannot be probed.
package validator
