// Package storage groups persistent data access by domain.
package storage

import (
	"context"

	"github.com/cluelogs/server/internal/domain/credentials"
	"github.com/cluelogs/server/internal/domain/events"
)

type Repository interface {
	Events() events.Repository
	Credentials() credentials.Repository

	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}
