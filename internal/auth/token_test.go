package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyToken(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	token, err := issuer.IssueToken("user1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user1", userID)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	other := NewIssuer("different-secret", time.Hour)

	token, err := issuer.IssueToken("user1")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	token, err := issuer.IssueToken("user1")
	require.NoError(t, err)

	_, err = issuer.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyEmptyToken(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	_, err := issuer.VerifyToken("")
	assert.Error(t, err)
}

func TestExtractTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("Authorization", "Bearer abc123")

	token, err := ExtractTokenFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestExtractTokenMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events", nil)

	_, err := ExtractTokenFromRequest(req)
	assert.Error(t, err)
}

func TestExtractTokenBadFormat(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("Authorization", "Token abc123")

	_, err := ExtractTokenFromRequest(req)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	token, err := issuer.IssueToken("user1")
	require.NoError(t, err)

	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Middleware(issuer)(next)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user1", seenUserID)
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})
	handler := Middleware(issuer)(next)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
