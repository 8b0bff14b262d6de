package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/cluelogs/server/internal/domain/ids"
	"github.com/cluelogs/server/internal/sanitize"
	"github.com/go-playground/validator/v10"
)

// EventInput is the ingestion wire shape. Details and Meta must be present
// but may be empty.
type EventInput struct {
	Date     string           `json:"date" validate:"required"`
	Trigger  string           `json:"trigger" validate:"required"`
	Action   string           `json:"action" validate:"required"`
	Severity string           `json:"severity" validate:"required"`
	Client   string           `json:"client" validate:"required"`
	Details  []any            `json:"details" validate:"required"`
	Meta     []map[string]any `json:"meta" validate:"required"`
}

// RecordSet is the tagged union of the two accepted ingestion shapes: a
// single record or an ordered sequence. The shape is resolved once at the
// boundary and carried so the response can mirror it.
type RecordSet struct {
	Batch bool
	Items []EventInput
}

// DecodeRecordSet resolves a JSON body into a RecordSet.
func DecodeRecordSet(body []byte) (RecordSet, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return RecordSet{}, fmt.Errorf("empty request body")
	}

	if trimmed[0] == '[' {
		var items []EventInput
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return RecordSet{}, fmt.Errorf("decode event batch: %w", err)
		}
		return RecordSet{Batch: true, Items: items}, nil
	}

	var item EventInput
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return RecordSet{}, fmt.Errorf("decode event: %w", err)
	}
	return RecordSet{Items: []EventInput{item}}, nil
}

// ValidationError aggregates one message per failed field across the whole
// record set; any failure rejects the entire batch.
type ValidationError struct {
	Messages []string
}

func (e ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type IngestService struct {
	repo  Repository
	newID func() string
}

func NewIngestService(repo Repository) *IngestService {
	return &IngestService{repo: repo, newID: ids.New}
}

type IngestResult struct {
	Batch bool
	IDs   []string
}

// Ingest validates every record in the set, normalizes them, and persists
// the whole set in one call. On any validation failure nothing is persisted
// and the error carries one message per failed field.
func (s *IngestService) Ingest(ctx context.Context, set RecordSet) (IngestResult, error) {
	if len(set.Items) == 0 {
		return IngestResult{}, ValidationError{Messages: []string{"at least one event is required"}}
	}

	var messages []string
	items := make([]Event, 0, len(set.Items))
	for _, input := range set.Items {
		normalized, errs := normalize(input, s.newID())
		messages = append(messages, errs...)
		items = append(items, normalized)
	}
	if len(messages) > 0 {
		return IngestResult{}, ValidationError{Messages: messages}
	}

	if err := s.repo.InsertAll(ctx, items); err != nil {
		return IngestResult{}, fmt.Errorf("insert events: %w", err)
	}

	result := IngestResult{Batch: set.Batch, IDs: make([]string, 0, len(items))}
	for _, item := range items {
		result.IDs = append(result.IDs, item.ID)
	}
	return result, nil
}

// normalize is the pure pre-persist step: required-field validation, category
// lowercasing and trimming, and rewriting date to its canonical ISO-8601
// form.
func normalize(input EventInput, id string) (Event, []string) {
	var messages []string
	if err := validate.Struct(input); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fieldError := range fieldErrors {
				messages = append(messages, fmt.Sprintf("%s is required", fieldError.Field()))
			}
		} else {
			messages = append(messages, err.Error())
		}
	}

	date := input.Date
	if input.Date != "" {
		canonical, ok := canonicalDate(input.Date)
		if !ok {
			messages = append(messages, "date must be an ISO-8601 date string")
		} else {
			date = canonical
		}
	}

	event := Event{
		ID:       id,
		Date:     date,
		Trigger:  lowerTrim(input.Trigger),
		Action:   lowerTrim(input.Action),
		Severity: lowerTrim(input.Severity),
		Client:   lowerTrim(input.Client),
		Details:  input.Details,
		Meta:     input.Meta,
	}
	return event, messages
}

// canonicalDate is the lenient pre-persist parse: stored dates may separate
// date and time with a space. The WHERE cursor keeps the strict grammar.
func canonicalDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.Replace(s, " ", "T", 1)
	return sanitize.DateString(s)
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
