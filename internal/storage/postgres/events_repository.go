package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cluelogs/server/internal/domain/events"
	"github.com/jackc/pgx/v5"
)

var _ events.Repository = (*EventRepository)(nil)

// List applies filter, sort, skip and limit in the store. The date column
// holds canonical fixed-width ISO-8601 strings, so lexicographic comparison
// and ordering match chronological order.
func (r *EventRepository) List(ctx context.Context, query events.Query) ([]events.Event, error) {
	sql := `
SELECT id, date, trigger, action, severity, client, details, meta
  FROM events
 WHERE ($1 = '' OR date <= $1)
 ORDER BY ` + orderClause(query.Sort) + `
OFFSET $2
 LIMIT $3
`
	rows, err := r.queryer().Query(ctx, sql, query.Where, query.Offset, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	items := make([]events.Event, 0, query.Limit)
	for rows.Next() {
		item, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return items, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id, date, trigger, action, severity, client, details, meta
  FROM events
 WHERE id = $1
`, id)

	item, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &item, nil
}

// InsertAll persists the whole set in a single batch round trip.
func (r *EventRepository) InsertAll(ctx context.Context, items []events.Event) error {
	batch := &pgx.Batch{}
	for _, item := range items {
		details, err := json.Marshal(item.Details)
		if err != nil {
			return fmt.Errorf("encode details: %w", err)
		}
		meta, err := json.Marshal(item.Meta)
		if err != nil {
			return fmt.Errorf("encode meta: %w", err)
		}
		batch.Queue(`
INSERT INTO events (id, date, trigger, action, severity, client, details, meta)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, item.ID, item.Date, item.Trigger, item.Action, item.Severity, item.Client, details, meta)
	}

	var results pgx.BatchResults
	if r.tx != nil {
		results = r.tx.SendBatch(ctx, batch)
	} else {
		results = r.pool.SendBatch(ctx, batch)
	}
	defer results.Close()

	for range items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	return nil
}

func (r *EventRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

// orderClause maps the sort to a fixed clause; the seq column preserves
// insertion order and breaks date ties deterministically.
func orderClause(sort events.Sort) string {
	switch sort {
	case events.SortDateAsc:
		return "date ASC, seq ASC"
	case events.SortDateDesc:
		return "date DESC, seq DESC"
	default:
		return "seq ASC"
	}
}

func scanEvent(row pgx.Row) (events.Event, error) {
	var item events.Event
	var details, meta []byte
	if err := row.Scan(
		&item.ID,
		&item.Date,
		&item.Trigger,
		&item.Action,
		&item.Severity,
		&item.Client,
		&details,
		&meta,
	); err != nil {
		return events.Event{}, err
	}
	if err := json.Unmarshal(details, &item.Details); err != nil {
		return events.Event{}, fmt.Errorf("decode details: %w", err)
	}
	if err := json.Unmarshal(meta, &item.Meta); err != nil {
		return events.Event{}, fmt.Errorf("decode meta: %w", err)
	}
	return item, nil
}
