package credentials

import (
	"context"
	"fmt"

	"github.com/cluelogs/server/internal/domain/ids"
	"github.com/cluelogs/server/internal/sanitize"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer issues a bearer token bound to a credential id.
type TokenIssuer interface {
	Issue(ctx context.Context, credentialID string) (string, error)
}

// ValidationError reports a registration body that failed sanitization.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

type RegisterInput struct {
	Client   string `json:"client"`
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

type Service struct {
	repo   Repository
	issuer TokenIssuer
}

func NewService(repo Repository, issuer TokenIssuer) *Service {
	return &Service{repo: repo, issuer: issuer}
}

// Register sanitizes the input, persists a new credential with a hashed
// secret, and issues its first token. Nothing is persisted and no token is
// issued when any of the three fields is missing after sanitization.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Credential, string, error) {
	client := sanitize.URIText(input.Client)
	username := sanitize.Underscored(input.Username)
	secret := sanitize.Identifier(input.Secret)

	if client == "" || username == "" || secret == "" {
		return nil, "", ValidationError{Message: "Missing required params (client, username, secret)"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash secret: %w", err)
	}

	credential := &Credential{
		ID:         ids.New(),
		Client:     client,
		Username:   username,
		SecretHash: string(hash),
	}
	if err := s.repo.Insert(ctx, credential); err != nil {
		return nil, "", err
	}

	token, err := s.issuer.Issue(ctx, credential.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	credential.Token = token
	credential.TokenKind = "auth"
	return credential, token, nil
}

// Registered is the deduplicated listing shape: one row per distinct
// (client, username, token) tuple.
type Registered struct {
	Client   string `json:"client"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// List returns registered credentials matching the optional filters,
// deduplicated while preserving store order.
func (s *Service) List(ctx context.Context, filters Filters) ([]Registered, error) {
	items, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	seen := make(map[Registered]bool, len(items))
	out := make([]Registered, 0, len(items))
	for _, item := range items {
		row := Registered{Client: item.Client, Username: item.Username, Token: item.Token}
		if seen[row] {
			continue
		}
		seen[row] = true
		out = append(out, row)
	}
	return out, nil
}
