// Package auth issues and verifies the bearer tokens that protect the API.
//
// A credential holds exactly one active token. Issuing writes the new token
// into that slot, which implicitly invalidates every previously issued token
// for the credential: verification requires the presented token to equal the
// stored one.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/cluelogs/server/internal/domain/credentials"
	"github.com/golang-jwt/jwt/v5"
)

// PurposeAuth is the fixed purpose discriminator embedded in every token.
const PurposeAuth = "auth"

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

type Claims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// CredentialStore is the slice of the credential store the token manager
// needs: lookup by id and the single-statement token swap.
type CredentialStore interface {
	GetByID(ctx context.Context, id string) (*credentials.Credential, error)
	SetToken(ctx context.Context, id, token, kind string) error
}

type TokenManager struct {
	secret []byte
	store  CredentialStore
	now    func() time.Time
}

func NewTokenManager(secret string, store CredentialStore) *TokenManager {
	return &TokenManager{secret: []byte(secret), store: store, now: time.Now}
}

// Issue signs a token bound to credentialID and persists it as the
// credential's active token. Tokens carry no expiry: they stay valid until a
// later Issue call overwrites the slot.
func (m *TokenManager) Issue(ctx context.Context, credentialID string) (string, error) {
	if credentialID == "" {
		return "", ErrInvalidToken
	}

	// IssuedAt but no ExpiresAt: a token only stops working when a newer
	// Issue call overwrites the credential's slot.
	claims := &Claims{
		Purpose: PurposeAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  credentialID,
			IssuedAt: jwt.NewNumericDate(m.now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", err
	}

	if err := m.store.SetToken(ctx, credentialID, token, PurposeAuth); err != nil {
		return "", err
	}
	return token, nil
}

// Verify decodes the token, loads the credential named by its subject, and
// requires that the credential's stored token equals the presented one and
// that its kind is PurposeAuth. Every failure mode is ErrInvalidToken; Verify
// never panics on malformed input.
func (m *TokenManager) Verify(ctx context.Context, tokenString string) (*credentials.Credential, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	credential, err := m.store.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if credential.Token != tokenString || credential.TokenKind != PurposeAuth {
		return nil, ErrInvalidToken
	}
	return credential, nil
}
