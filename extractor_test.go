package fireauth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Extractors(t *testing.T) {
	t.Run("AuthorizationHeaderExtractor returns the raw header value", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer abc")
		assert.Equal(t, "Bearer abc", AuthorizationHeaderExtractor(r))
	})

	t.Run("AuthorizationHeaderExtractor returns empty for a bare request", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, AuthorizationHeaderExtractor(r))
	})

	t.Run("CookieExtractor reads the named cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session_token", Value: "Bearer abc"})
		assert.Equal(t, "Bearer abc", CookieExtractor("session_token")(r))
		assert.Empty(t, CookieExtractor("other")(r))
	})

	t.Run("MultiExtractor returns the first non-empty value", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session_token", Value: "Bearer from-cookie"})

		ex := MultiExtractor(AuthorizationHeaderExtractor, CookieExtractor("session_token"))
		assert.Equal(t, "Bearer from-cookie", ex(r))

		r.Header.Set("Authorization", "Bearer from-header")
		assert.Equal(t, "Bearer from-header", ex(r))
	})
}
