package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cluelogs/server/internal/api/apperror"
	"github.com/cluelogs/server/internal/api/pagination"
	"github.com/cluelogs/server/internal/domain/events"
	"github.com/cluelogs/server/internal/domain/ids"
	"github.com/cluelogs/server/internal/metrics"
)

type EventsHandler struct {
	Service *events.Service
	Ingest  *events.IngestService
}

func NewEventsHandler(service *events.Service, ingest *events.IngestService) *EventsHandler {
	return &EventsHandler{Service: service, Ingest: ingest}
}

// List returns a page of events. The response carries the pagination index
// header so the client can continue from the last record it saw; an empty
// result set is a 404, not an empty array.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := events.ParseQuery(r.URL.Query())

	result, err := h.Service.List(r.Context(), query)
	if err != nil {
		if errors.Is(err, events.ErrNoEvents) {
			apperror.Write(w, r, apperror.NotFound("No events found."))
			return
		}
		apperror.Write(w, r, err)
		return
	}

	pagination.SetIndex(w, result.NextIndex)
	writeJSON(w, http.StatusOK, result.Events)
}

// Get looks up a single event by id.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, ids.ErrInvalidID):
			apperror.Write(w, r, apperror.Unprocessable("The resource ID is of an incorrect length, should be 12 or 24 characters."))
		case errors.Is(err, events.ErrNotFound):
			apperror.Write(w, r, apperror.NotFound("An event with that ID could not be found."))
		default:
			apperror.Write(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

type ingestResponse struct {
	Success string `json:"success"`
	ID      any    `json:"id"`
}

// Create ingests a single event or an ordered batch. The id field of the
// response mirrors the input shape: scalar for an object, list for an array.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			apperror.Write(w, r, apperror.TooLarge("request body too large"))
			return
		}
		apperror.Write(w, r, apperror.BadRequest("could not read request body"))
		return
	}

	set, err := events.DecodeRecordSet(body)
	if err != nil {
		apperror.Write(w, r, apperror.BadRequest("request body must be a JSON event object or array of event objects"))
		return
	}

	result, err := h.Ingest.Ingest(r.Context(), set)
	if err != nil {
		var validationErr events.ValidationError
		if errors.As(err, &validationErr) {
			apperror.Write(w, r, apperror.BadRequest(validationErr.Messages...))
			return
		}
		apperror.Write(w, r, err)
		return
	}

	metrics.EventsIngested.Add(float64(len(result.IDs)))

	response := ingestResponse{Success: "Success"}
	if result.Batch {
		response.ID = result.IDs
	} else {
		response.ID = result.IDs[0]
	}
	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
