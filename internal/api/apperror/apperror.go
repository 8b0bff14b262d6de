// Package apperror models the API failure taxonomy: every failure carries a
// numeric status, one or more messages, and a flag separating expected
// operational failures from internal faults.
package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

type Error struct {
	Status      int
	Messages    []string
	Operational bool
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Messages: []string{message}, Operational: true}
}

// BadRequest carries one message per failed field.
func BadRequest(messages ...string) *Error {
	return &Error{Status: http.StatusBadRequest, Messages: messages, Operational: true}
}

func Unprocessable(message string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Messages: []string{message}, Operational: true}
}

func TooLarge(message string) *Error {
	return &Error{Status: http.StatusRequestEntityTooLarge, Messages: []string{message}, Operational: true}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Messages: []string{message}, Operational: true}
}

// Internal wraps an unexpected fault. Non-operational failures still produce
// a response but are additionally escalated for operator attention.
func Internal(err error) *Error {
	message := http.StatusText(http.StatusInternalServerError)
	if err != nil {
		message = err.Error()
	}
	return &Error{Status: http.StatusInternalServerError, Messages: []string{message}, Operational: false}
}

type payload struct {
	Status  int `json:"status"`
	Message any `json:"message"`
}

// Write renders err as the client-facing JSON body {status, message}. Unknown
// error values are treated as internal faults. Message is a plain string for
// single-message failures and a list otherwise.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	appErr := From(err)

	logger := zerolog.Ctx(r.Context())
	event := logger.Warn()
	if !appErr.Operational || appErr.Status >= 500 {
		// Operator attention needed: this is the hook where paging or
		// alerting integrations plug in.
		event = logger.Error().Bool("escalate", true)
	}
	event.
		Int("status", appErr.Status).
		Str("path", r.URL.Path).
		Str("method", r.Method).
		Msg(appErr.Error())

	body := payload{Status: appErr.Status, Message: appErr.Messages[0]}
	if len(appErr.Messages) != 1 {
		body.Message = appErr.Messages
	}

	data, marshalErr := json.Marshal(body)
	if marshalErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":500,"message":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	_, _ = w.Write(data)
}

// From normalizes any error into an *Error.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		if len(appErr.Messages) == 0 {
			appErr = &Error{Status: appErr.Status, Messages: []string{http.StatusText(appErr.Status)}, Operational: appErr.Operational}
		}
		return appErr
	}
	return Internal(err)
}
