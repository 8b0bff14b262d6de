package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cluelogs/server/internal/auth"
	"github.com/cluelogs/server/internal/domain/credentials"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	credential *credentials.Credential
}

func (v *fakeVerifier) Verify(_ context.Context, token string) (*credentials.Credential, error) {
	if v.credential != nil && v.credential.Token == token {
		return v.credential, nil
	}
	return nil, auth.ErrInvalidToken
}

func protected(t *testing.T, verifier Verifier) (http.Handler, *bool, **credentials.Credential) {
	t.Helper()
	var called bool
	var seen *credentials.Credential
	handler := TokenAuth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen = CredentialFromContext(r.Context())
		require.Equal(t, r.Header.Get(TokenHeader), TokenFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &called, &seen
}

func TestTokenAuthMissingHeader(t *testing.T) {
	handler, called, _ := protected(t, &fakeVerifier{})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/event", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, *called)

	var body struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Unauthorized Access: API Token Required", body.Message)
}

func TestTokenAuthInvalidToken(t *testing.T) {
	handler, called, _ := protected(t, &fakeVerifier{})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/event", nil)
	r.Header.Set(TokenHeader, "stale-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, *called)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Unauthorized Access: API Token Invalid", body.Message)
}

func TestTokenAuthAttachesCredential(t *testing.T) {
	credential := &credentials.Credential{ID: "abc", Username: "acme", Token: "good-token"}
	handler, called, seen := protected(t, &fakeVerifier{credential: credential})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/event", nil)
	r.Header.Set(TokenHeader, "good-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, *called)
	require.Equal(t, credential, *seen)
}
