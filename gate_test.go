package fireauth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hussamalsh/fireauth/jwks"
	"github.com/Hussamalsh/fireauth/validator"
)

type fakeVerifier struct {
	identity *validator.Identity
	err      error
	calls    int
}

func (f *fakeVerifier) Verify(context.Context, string, validator.Tenant) (*validator.Identity, error) {
	f.calls++
	return f.identity, f.err
}

type allowPolicy struct{ admit bool }

func (p allowPolicy) IsAdmin(context.Context, *validator.Identity) (bool, error) {
	return p.admit, nil
}

type failingPolicy struct{}

func (failingPolicy) IsAdmin(context.Context, *validator.Identity) (bool, error) {
	return false, fmt.Errorf("policy store unreachable")
}

type capturingLogger struct {
	debug, info, warn, errors []string
}

func (l *capturingLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}
func (l *capturingLogger) Infof(format string, args ...any) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}
func (l *capturingLogger) Warnf(format string, args ...any) {
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}
func (l *capturingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func testIdentity() *validator.Identity {
	return &validator.Identity{
		Subject:       "user-123",
		Email:         "jane@example.com",
		Name:          "Jane Doe",
		EmailVerified: true,
		Claims:        map[string]any{"email_verified": true},
	}
}

func newGateRequest() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/api/protected", nil)
}

func assertDenialBody(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	assert.Equal(t, status, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body DenialBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Error)
	assert.Equal(t, message, body.Message)
}

func Test_RequireAuth(t *testing.T) {
	t.Run("It returns the identity for a verified request", func(t *testing.T) {
		g, err := New(WithVerifier(&fakeVerifier{identity: testIdentity()}))
		require.NoError(t, err)

		identity, denial := g.RequireAuth(newGateRequest())
		require.Nil(t, denial)
		assert.Equal(t, "user-123", identity.Subject)
	})

	t.Run("It answers every rejection with the same 401 body", func(t *testing.T) {
		g, err := New(WithVerifier(&fakeVerifier{err: fmt.Errorf("anything")}))
		require.NoError(t, err)

		identity, denial := g.RequireAuth(newGateRequest())
		require.Nil(t, identity)
		require.NotNil(t, denial)

		rec := httptest.NewRecorder()
		denial.Write(rec)
		assertDenialBody(t, rec, http.StatusUnauthorized, MessageAuthRequired)
		assert.JSONEq(t,
			`{"error":true,"message":"Authentication required. Please sign in to use this feature."}`,
			rec.Body.String())
	})

	t.Run("It logs rejection kinds at their designated severities", func(t *testing.T) {
		cases := []struct {
			err      error
			severity func(*capturingLogger) []string
		}{
			{validator.NewKindError(validator.KindTenantMisconfigured, "tenant empty"), func(l *capturingLogger) []string { return l.errors }},
			{validator.NewKindError(validator.KindSignatureInvalid, "bad signature"), func(l *capturingLogger) []string { return l.warn }},
			{validator.NewKindError(validator.KindClaimInvalid, "bad claim"), func(l *capturingLogger) []string { return l.warn }},
			{validator.NewKindError(validator.KindExpired, "expired"), func(l *capturingLogger) []string { return l.debug }},
			{fmt.Errorf("network down"), func(l *capturingLogger) []string { return l.debug }},
		}

		for _, tc := range cases {
			logger := &capturingLogger{}
			g, err := New(
				WithVerifier(&fakeVerifier{err: tc.err}),
				WithLogger(logger),
			)
			require.NoError(t, err)

			_, denial := g.RequireAuth(newGateRequest())
			require.NotNil(t, denial)
			assert.NotEmpty(t, tc.severity(logger), "error %v", tc.err)
		}
	})
}

func Test_RequireAdmin(t *testing.T) {
	t.Run("It returns 401 for unauthenticated requests", func(t *testing.T) {
		g, err := New(
			WithVerifier(&fakeVerifier{err: fmt.Errorf("nope")}),
			WithAdminPolicy(allowPolicy{admit: true}),
		)
		require.NoError(t, err)

		identity, denial := g.RequireAdmin(newGateRequest())
		require.Nil(t, identity)
		require.NotNil(t, denial)
		assert.Equal(t, http.StatusUnauthorized, denial.Status)
	})

	t.Run("It returns 403 for an authenticated non-admin", func(t *testing.T) {
		g, err := New(
			WithVerifier(&fakeVerifier{identity: testIdentity()}),
			WithAdminPolicy(allowPolicy{admit: false}),
		)
		require.NoError(t, err)

		identity, denial := g.RequireAdmin(newGateRequest())
		require.Nil(t, identity)
		require.NotNil(t, denial)
		assert.Equal(t, http.StatusForbidden, denial.Status)
		assert.Equal(t, MessageAdminRequired, denial.Body.Message)
	})

	t.Run("It returns the identity for an admitted admin", func(t *testing.T) {
		g, err := New(
			WithVerifier(&fakeVerifier{identity: testIdentity()}),
			WithAdminPolicy(allowPolicy{admit: true}),
		)
		require.NoError(t, err)

		identity, denial := g.RequireAdmin(newGateRequest())
		require.Nil(t, denial)
		assert.Equal(t, "user-123", identity.Subject)
	})

	t.Run("It denies every identity when no policy is configured", func(t *testing.T) {
		g, err := New(WithVerifier(&fakeVerifier{identity: testIdentity()}))
		require.NoError(t, err)

		_, denial := g.RequireAdmin(newGateRequest())
		require.NotNil(t, denial)
		assert.Equal(t, http.StatusForbidden, denial.Status)
	})

	t.Run("It fails closed when the policy itself fails", func(t *testing.T) {
		g, err := New(
			WithVerifier(&fakeVerifier{identity: testIdentity()}),
			WithAdminPolicy(failingPolicy{}),
		)
		require.NoError(t, err)

		_, denial := g.RequireAdmin(newGateRequest())
		require.NotNil(t, denial)
		assert.Equal(t, http.StatusForbidden, denial.Status)
	})
}

func Test_Handlers(t *testing.T) {
	t.Run("RequireAuthHandler writes the denial and stops the chain", func(t *testing.T) {
		g, err := New(WithVerifier(&fakeVerifier{err: fmt.Errorf("nope")}))
		require.NoError(t, err)

		nextCalled := false
		handler := g.RequireAuthHandler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			nextCalled = true
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newGateRequest())

		assert.False(t, nextCalled)
		assertDenialBody(t, rec, http.StatusUnauthorized, MessageAuthRequired)
	})

	t.Run("RequireAuthHandler exposes the identity to the next handler", func(t *testing.T) {
		g, err := New(WithVerifier(&fakeVerifier{identity: testIdentity()}))
		require.NoError(t, err)

		handler := g.RequireAuthHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, "user-123", identity.Subject)
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newGateRequest())
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("RequireAdminHandler denies non-admins with 403", func(t *testing.T) {
		g, err := New(
			WithVerifier(&fakeVerifier{identity: testIdentity()}),
			WithAdminPolicy(allowPolicy{admit: false}),
		)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		g.RequireAdminHandler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("next handler must not run")
		})).ServeHTTP(rec, newGateRequest())

		assertDenialBody(t, rec, http.StatusForbidden, MessageAdminRequired)
	})
}

func Test_New_Options(t *testing.T) {
	t.Run("It requires a verifier", func(t *testing.T) {
		_, err := New()
		require.ErrorIs(t, err, ErrVerifierNil)
	})

	t.Run("It rejects nil collaborators", func(t *testing.T) {
		for _, opt := range []Option{
			WithVerifier(nil),
			WithTenantSource(nil),
			WithAdminPolicy(nil),
			WithExtractor(nil),
			WithLogger(nil),
			WithMetrics(nil),
			WithTracer(nil),
		} {
			_, err := New(opt)
			require.Error(t, err)
		}
	})
}

// Test_EndToEnd wires the real validator and key provider against a local
// JWKS server and exercises the gate the way a route handler does.
func Test_EndToEnd(t *testing.T) {
	const project = "e2e-project"

	rawKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	private, err := jwk.FromRaw(rawKey)
	require.NoError(t, err)
	require.NoError(t, private.Set(jwk.KeyIDKey, "e2e-kid"))

	public, err := jwk.FromRaw(rawKey.Public())
	require.NoError(t, err)
	require.NoError(t, public.Set(jwk.KeyIDKey, "e2e-kid"))
	require.NoError(t, public.Set(jwk.AlgorithmKey, jwa.RS256))

	set := jwk.NewSet()
	require.NoError(t, set.AddKey(public))

	certsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(set))
	}))
	defer certsServer.Close()

	provider, err := jwks.NewCachingProvider(jwks.WithEndpoint(certsServer.URL))
	require.NoError(t, err)

	v, err := validator.New(validator.WithKeyFunc(provider.KeyFunc))
	require.NoError(t, err)

	g, err := New(
		WithVerifier(v),
		WithTenantSource(StaticTenant(project)),
		WithAdminPolicy(NewEmailAllowlistPolicy("admin@example.com")),
	)
	require.NoError(t, err)

	signFor := func(email string, verified bool) string {
		now := time.Now()
		token, err := jwt.NewBuilder().
			Issuer(validator.IssuerPrefix+project).
			Audience([]string{project}).
			Subject("user-e2e").
			Expiration(now.Add(time.Hour)).
			IssuedAt(now).
			Claim("auth_time", now.Add(-time.Minute).Unix()).
			Claim("email", email).
			Claim("email_verified", verified).
			Build()
		require.NoError(t, err)

		signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, private))
		require.NoError(t, err)
		return "Bearer " + string(signed)
	}

	t.Run("It returns 401 with the fixed body when no header is sent", func(t *testing.T) {
		identity, denial := g.RequireAuth(newGateRequest())
		require.Nil(t, identity)
		require.NotNil(t, denial)

		rec := httptest.NewRecorder()
		denial.Write(rec)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t,
			`{"error":true,"message":"Authentication required. Please sign in to use this feature."}`,
			rec.Body.String())
	})

	t.Run("It admits a signed token and yields a stable identity", func(t *testing.T) {
		r := newGateRequest()
		r.Header.Set("Authorization", signFor("jane@example.com", true))

		first, denial := g.RequireAuth(r)
		require.Nil(t, denial)
		second, denial := g.RequireAuth(r)
		require.Nil(t, denial)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("identities differ between calls (-first +second):\n%s", diff)
		}
		assert.Equal(t, "user-e2e", first.Subject)
	})

	t.Run("It distinguishes admin and non-admin identities", func(t *testing.T) {
		r := newGateRequest()
		r.Header.Set("Authorization", signFor("jane@example.com", true))
		_, denial := g.RequireAdmin(r)
		require.NotNil(t, denial)
		assert.Equal(t, http.StatusForbidden, denial.Status)

		r = newGateRequest()
		r.Header.Set("Authorization", signFor("admin@example.com", true))
		identity, denial := g.RequireAdmin(r)
		require.Nil(t, denial)
		assert.Equal(t, "user-e2e", identity.Subject)
	})
}
