// Package fireauth gates HTTP requests on verified Firebase identities.
//
// A Gate wraps a token verifier behind two request-facing operations:
// RequireAuth, which admits any authenticated user, and RequireAdmin,
// which additionally consults an AdminPolicy. Both return either the
// verified identity or a fixed-shape denial the handler writes back, so
// protected routes short-circuit with a single early return:
//
//	identity, denial := gate.RequireAuth(r)
//	if denial != nil {
//	    denial.Write(w)
//	    return
//	}
//	// identity.Subject is the authenticated principal.
//
// Every rejection, whatever its internal cause, produces the same
// client-visible 401 body; the failure taxonomy is surfaced only through
// logs and metrics so rejection reasons cannot be probed from outside.
package fireauth
