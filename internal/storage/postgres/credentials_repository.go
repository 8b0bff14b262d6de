package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cluelogs/server/internal/domain/credentials"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ credentials.Repository = (*CredentialRepository)(nil)

const uniqueViolation = "23505"

func (r *CredentialRepository) Insert(ctx context.Context, credential *credentials.Credential) error {
	err := r.exec(ctx, `
INSERT INTO credentials (id, client, username, secret_hash, token, token_kind)
VALUES ($1, $2, $3, $4, $5, $6)
`, credential.ID, credential.Client, credential.Username, credential.SecretHash, credential.Token, credential.TokenKind)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return credentials.ErrUsernameTaken
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

func (r *CredentialRepository) GetByID(ctx context.Context, id string) (*credentials.Credential, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id, client, username, secret_hash, token, token_kind
  FROM credentials
 WHERE id = $1
`, id)

	credential, err := scanCredential(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, credentials.ErrNotFound
		}
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return credential, nil
}

func (r *CredentialRepository) List(ctx context.Context, filters credentials.Filters) ([]credentials.Credential, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT id, client, username, secret_hash, token, token_kind
  FROM credentials
 WHERE ($1 = '' OR client = $1)
   AND ($2 = '' OR username = $2)
 ORDER BY seq ASC
`, filters.Client, filters.Username)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	items := []credentials.Credential{}
	for rows.Next() {
		credential, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		items = append(items, *credential)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w", err)
	}
	return items, nil
}

// SetToken swaps the stored token in a single statement so the old token
// stops verifying the moment the new one is persisted.
func (r *CredentialRepository) SetToken(ctx context.Context, id, token, kind string) error {
	tag, err := r.execTag(ctx, `
UPDATE credentials
   SET token = $2, token_kind = $3
 WHERE id = $1
`, id, token, kind)
	if err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return credentials.ErrNotFound
	}
	return nil
}

func (r *CredentialRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *CredentialRepository) exec(ctx context.Context, sql string, args ...any) error {
	_, err := r.execTag(ctx, sql, args...)
	return err
}

func (r *CredentialRepository) execTag(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if r.tx != nil {
		return r.tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func scanCredential(row pgx.Row) (*credentials.Credential, error) {
	var credential credentials.Credential
	if err := row.Scan(
		&credential.ID,
		&credential.Client,
		&credential.Username,
		&credential.SecretHash,
		&credential.Token,
		&credential.TokenKind,
	); err != nil {
		return nil, err
	}
	return &credential, nil
}
