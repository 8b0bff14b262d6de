package events

import (
	"context"
	"fmt"

	"github.com/cluelogs/server/internal/domain/ids"
	"github.com/cluelogs/server/internal/sanitize"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListResult carries one page of events plus the pagination index: the date
// of the last record of the page, which a client passes back as the next
// WHERE to continue from.
type ListResult struct {
	Events    []Event
	NextIndex string
}

// List executes filter, sort, skip, limit in that order. An empty result set
// is ErrNoEvents, not an empty success.
func (s *Service) List(ctx context.Context, query Query) (ListResult, error) {
	items, err := s.repo.List(ctx, query)
	if err != nil {
		return ListResult{}, fmt.Errorf("list events: %w", err)
	}
	if len(items) == 0 {
		return ListResult{}, ErrNoEvents
	}
	return ListResult{Events: items, NextIndex: items[len(items)-1].Date}, nil
}

// Get looks a single event up by identifier. The identifier's shape is
// checked before the store is touched: shape-invalid ids are
// ids.ErrInvalidID, shape-valid misses are ErrNotFound.
func (s *Service) Get(ctx context.Context, rawID string) (*Event, error) {
	id := sanitize.Identifier(rawID)
	if err := ids.Validate(id); err != nil {
		return nil, err
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return item, nil
}
