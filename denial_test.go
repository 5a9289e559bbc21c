package fireauth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Denial(t *testing.T) {
	t.Run("Unauthorized writes the fixed 401 response", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Unauthorized().Write(rec)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t,
			`{"error":true,"message":"Authentication required. Please sign in to use this feature."}`,
			rec.Body.String())
	})

	t.Run("Forbidden writes the fixed 403 response", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Forbidden().Write(rec)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t,
			`{"error":true,"message":"Admin access required. You do not have permission to use this feature."}`,
			rec.Body.String())
	})
}
