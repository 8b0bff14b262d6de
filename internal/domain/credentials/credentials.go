// Package credentials manages registered API clients: a client/username pair
// with a hashed secret and at most one active token.
package credentials

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("credential not found")
	ErrUsernameTaken = errors.New("username already registered")
)

type Credential struct {
	ID         string
	Client     string
	Username   string
	SecretHash string
	Token      string
	TokenKind  string
}

type Filters struct {
	Client   string
	Username string
}

// Repository is the persistent credential collection. Username uniqueness is
// enforced at this layer: Insert fails with ErrUsernameTaken on collision.
type Repository interface {
	Insert(ctx context.Context, credential *Credential) error
	GetByID(ctx context.Context, id string) (*Credential, error)
	List(ctx context.Context, filters Filters) ([]Credential, error)
	SetToken(ctx context.Context, id, token, kind string) error
}
