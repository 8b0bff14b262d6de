package middleware

import (
	"context"
	"net/http"

	"github.com/cluelogs/server/internal/api/apperror"
	"github.com/cluelogs/server/internal/domain/credentials"
)

// TokenHeader carries the bearer token on every protected request and the
// freshly issued token on registration responses.
const TokenHeader = "X-Auth"

type contextKeyAuth string

const (
	credentialKey contextKeyAuth = "credential"
	tokenKey      contextKeyAuth = "token"
)

// Verifier resolves a bearer token to the credential it belongs to.
type Verifier interface {
	Verify(ctx context.Context, token string) (*credentials.Credential, error)
}

// TokenAuth guards protected operations: it extracts the token from the
// X-Auth header, verifies it, and attaches the resolved credential and raw
// token to the request context. Every operation except registration sits
// behind this check.
func TokenAuth(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				apperror.Write(w, r, apperror.Unauthorized("Unauthorized Access: API Token Required"))
				return
			}

			credential, err := verifier.Verify(r.Context(), token)
			if err != nil {
				apperror.Write(w, r, apperror.Unauthorized("Unauthorized Access: API Token Invalid"))
				return
			}

			ctx := context.WithValue(r.Context(), credentialKey, credential)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CredentialFromContext returns the credential resolved by TokenAuth, or nil
// outside a protected request.
func CredentialFromContext(ctx context.Context) *credentials.Credential {
	if credential, ok := ctx.Value(credentialKey).(*credentials.Credential); ok {
		return credential
	}
	return nil
}

// TokenFromContext returns the raw token attached by TokenAuth.
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}
	return ""
}
