// Package events holds the event record model, ingestion validation, and the
// cursor-paginated query engine.
package events

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means a shape-valid id matched nothing.
	ErrNotFound = errors.New("event not found")
	// ErrNoEvents means a list query produced an empty result set, which is
	// a terminal condition for the listing endpoint rather than an empty
	// success.
	ErrNoEvents = errors.New("no events found")
)

// Event is an immutable log record. Date always holds the canonical ISO-8601
// string; the category fields are lowercased and trimmed on ingestion.
type Event struct {
	ID       string           `json:"_id"`
	Date     string           `json:"date"`
	Trigger  string           `json:"trigger"`
	Action   string           `json:"action"`
	Severity string           `json:"severity"`
	Client   string           `json:"client"`
	Details  []any            `json:"details"`
	Meta     []map[string]any `json:"meta"`
}

// Repository is the persistent event collection, treated as an external
// filter/sort/skip/limit store.
type Repository interface {
	List(ctx context.Context, query Query) ([]Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	InsertAll(ctx context.Context, items []Event) error
}
