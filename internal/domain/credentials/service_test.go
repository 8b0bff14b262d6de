package credentials

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	inserted []Credential
}

func (r *fakeRepo) Insert(_ context.Context, credential *Credential) error {
	for _, existing := range r.inserted {
		if existing.Username == credential.Username {
			return ErrUsernameTaken
		}
	}
	r.inserted = append(r.inserted, *credential)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Credential, error) {
	for i := range r.inserted {
		if r.inserted[i].ID == id {
			return &r.inserted[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(_ context.Context, filters Filters) ([]Credential, error) {
	out := []Credential{}
	for _, c := range r.inserted {
		if filters.Client != "" && c.Client != filters.Client {
			continue
		}
		if filters.Username != "" && c.Username != filters.Username {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeRepo) SetToken(_ context.Context, id, token, kind string) error {
	for i := range r.inserted {
		if r.inserted[i].ID == id {
			r.inserted[i].Token = token
			r.inserted[i].TokenKind = kind
			return nil
		}
	}
	return ErrNotFound
}

type fakeIssuer struct {
	issued int
}

func (f *fakeIssuer) Issue(_ context.Context, credentialID string) (string, error) {
	f.issued++
	return fmt.Sprintf("token-%s-%d", credentialID, f.issued), nil
}

func TestRegisterSanitizesAndIssues(t *testing.T) {
	repo := &fakeRepo{}
	issuer := &fakeIssuer{}
	service := NewService(repo, issuer)

	credential, token, err := service.Register(context.Background(), RegisterInput{
		Client:   "The%20Jump%20Agency!",
		Username: "The Jump Agency",
		Secret:   "Hunter-2!",
	})

	require.NoError(t, err)
	require.Equal(t, "the jump agency", credential.Client)
	require.Equal(t, "the_jump_agency", credential.Username)
	require.NotEmpty(t, token)
	require.Equal(t, 1, issuer.issued)
	require.Len(t, repo.inserted, 1)

	// The raw secret never persists, only a bcrypt hash of the sanitized value.
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.inserted[0].SecretHash), []byte("hunter2")))
}

func TestRegisterMissingFieldsPersistsNothing(t *testing.T) {
	inputs := []RegisterInput{
		{Username: "user", Secret: "secret"},
		{Client: "client", Secret: "secret"},
		{Client: "client", Username: "user"},
		{Client: "!!!", Username: "user", Secret: "secret"}, // sanitizes to empty
	}
	for _, input := range inputs {
		repo := &fakeRepo{}
		issuer := &fakeIssuer{}

		_, _, err := NewService(repo, issuer).Register(context.Background(), input)

		var validationErr ValidationError
		require.ErrorAs(t, err, &validationErr, "input %+v", input)
		require.Empty(t, repo.inserted)
		require.Zero(t, issuer.issued)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := &fakeRepo{}
	service := NewService(repo, &fakeIssuer{})
	ctx := context.Background()

	_, _, err := service.Register(ctx, RegisterInput{Client: "one", Username: "dup", Secret: "s1"})
	require.NoError(t, err)

	_, _, err = service.Register(ctx, RegisterInput{Client: "two", Username: "dup", Secret: "s2"})
	require.ErrorIs(t, err, ErrUsernameTaken)
	require.Len(t, repo.inserted, 1)
}

func TestListDeduplicates(t *testing.T) {
	repo := &fakeRepo{inserted: []Credential{
		{ID: "1", Client: "acme", Username: "a", Token: "t1"},
		{ID: "2", Client: "acme", Username: "a", Token: "t1"},
		{ID: "3", Client: "acme", Username: "b", Token: "t2"},
	}}
	service := NewService(repo, &fakeIssuer{})

	rows, err := service.List(context.Background(), Filters{})
	require.NoError(t, err)
	require.Equal(t, []Registered{
		{Client: "acme", Username: "a", Token: "t1"},
		{Client: "acme", Username: "b", Token: "t2"},
	}, rows)
}

func TestListFilters(t *testing.T) {
	repo := &fakeRepo{inserted: []Credential{
		{ID: "1", Client: "acme", Username: "a", Token: "t1"},
		{ID: "2", Client: "globex", Username: "b", Token: "t2"},
	}}
	service := NewService(repo, &fakeIssuer{})

	rows, err := service.List(context.Background(), Filters{Client: "globex"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "b", rows[0].Username)
}
