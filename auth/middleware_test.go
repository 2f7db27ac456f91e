package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/galleria-go/config"
)

// protectedProbe serves a guarded route and records the identity the
// middleware injected, so tests can assert on both the response and
// the downstream view of the request.
type protectedProbe struct {
	handler    http.Handler
	called     bool
	seenUserID int
	seenOK     bool
}

func newProtectedProbe(cfg *config.AuthConfig) *protectedProbe {
	p := &protectedProbe{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.seenUserID, p.seenOK = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	p.handler = JWTMiddleware(cfg)(next)
	return p
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:       "middleware-test-secret",
		SessionTokenTTL: 168 * time.Hour,
		ResetTokenTTL:   15 * time.Minute,
	}
}

func doRequest(t *testing.T, handler http.Handler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	t.Parallel()

	probe := newProtectedProbe(testAuthConfig())
	rec := doRequest(t, probe.handler, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.called, "handler must not run without a token")
	assert.JSONEq(t, `{"error":"authorization token required"}`, rec.Body.String())
}

func TestJWTMiddleware_BadScheme(t *testing.T) {
	t.Parallel()

	probe := newProtectedProbe(testAuthConfig())
	rec := doRequest(t, probe.handler, "Token abc123")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.called)
}

func TestJWTMiddleware_GarbageToken(t *testing.T) {
	t.Parallel()

	probe := newProtectedProbe(testAuthConfig())
	rec := doRequest(t, probe.handler, "Bearer not.a.jwt")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, probe.called)
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	svc := NewService(nil, *cfg)
	token, _, err := svc.IssueToken(7, TokenTypeSession, -time.Minute)
	require.NoError(t, err)

	probe := newProtectedProbe(cfg)
	rec := doRequest(t, probe.handler, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, probe.called)
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	t.Parallel()

	otherSvc := NewService(nil, config.AuthConfig{JWTSecret: "some-other-secret"})
	token, _, err := otherSvc.IssueToken(7, TokenTypeSession, time.Hour)
	require.NoError(t, err)

	probe := newProtectedProbe(testAuthConfig())
	rec := doRequest(t, probe.handler, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, probe.called)
}

func TestJWTMiddleware_ResetTokenRejected(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	svc := NewService(nil, *cfg)
	token, _, err := svc.IssueToken(7, TokenTypeReset, 15*time.Minute)
	require.NoError(t, err)

	probe := newProtectedProbe(cfg)
	rec := doRequest(t, probe.handler, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, probe.called)
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	svc := NewService(nil, *cfg)
	token, _, err := svc.IssueToken(7, TokenTypeSession, time.Hour)
	require.NoError(t, err)

	probe := newProtectedProbe(cfg)
	rec := doRequest(t, probe.handler, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, probe.called)
	assert.True(t, probe.seenOK)
	assert.Equal(t, 7, probe.seenUserID)
}

func TestJWTMiddleware_SchemeCaseInsensitive(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	svc := NewService(nil, *cfg)
	token, _, err := svc.IssueToken(7, TokenTypeSession, time.Hour)
	require.NoError(t, err)

	probe := newProtectedProbe(cfg)
	rec := doRequest(t, probe.handler, "bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
}
