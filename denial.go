package fireauth

import (
	"encoding/json"
	"net/http"
)

// Rejection messages. Deliberately generic: the body never varies with the
// reason a credential was rejected.
const (
	MessageAuthRequired  = "Authentication required. Please sign in to use this feature."
	MessageAdminRequired = "Admin access required. You do not have permission to use this feature."
)

// DenialBody is the machine-readable rejection payload.
type DenialBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Denial is the response-shaped half of the gate's dual result: a fixed
// status and body a handler writes back verbatim.
type Denial struct {
	Status int
	Body   DenialBody
}

// Unauthorized returns the 401 denial used for every authentication
// failure.
func Unauthorized() *Denial {
	return &Denial{
		Status: http.StatusUnauthorized,
		Body:   DenialBody{Error: true, Message: MessageAuthRequired},
	}
}

// Forbidden returns the 403 denial used when an authenticated identity is
// not authorized.
func Forbidden() *Denial {
	return &Denial{
		Status: http.StatusForbidden,
		Body:   DenialBody{Error: true, Message: MessageAdminRequired},
	}
}

// Write sends the denial to the client.
func (d *Denial) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(d.Status)
	_ = json.NewEncoder(w).Encode(d.Body)
}
