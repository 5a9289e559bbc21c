package fireauth

import "net/http"

// Extractor pulls the raw Authorization value from a request. It returns
// the header value as-is; scheme parsing is the verifier's job, and a
// malformed value is treated identically to an absent one, so extractors
// never report errors.
type Extractor func(r *http.Request) string

// AuthorizationHeaderExtractor reads the standard Authorization header.
// This is the default extractor.
func AuthorizationHeaderExtractor(r *http.Request) string {
	return r.Header.Get("Authorization")
}

// CookieExtractor builds an Extractor that reads a bearer value from the
// named cookie, for browser clients that cannot set headers on navigation
// requests. The cookie value must include the "Bearer " scheme prefix.
func CookieExtractor(name string) Extractor {
	return func(r *http.Request) string {
		cookie, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}

// MultiExtractor runs extractors in order and returns the first non-empty
// value.
func MultiExtractor(extractors ...Extractor) Extractor {
	return func(r *http.Request) string {
		for _, ex := range extractors {
			if v := ex(r); v != "" {
				return v
			}
		}
		return ""
	}
}
