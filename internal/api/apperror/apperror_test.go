package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteSingleMessage(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/event", nil)

	Write(w, r, NotFound("No events found."))

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 404, body.Status)
	require.Equal(t, "No events found.", body.Message)
}

func TestWriteMessageList(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/event", nil)

	Write(w, r, BadRequest("date is required", "severity is required"))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Status  int      `json:"status"`
		Message []string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, []string{"date is required", "severity is required"}, body.Message)
}

func TestWriteUnknownErrorBecomesInternal(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Write(w, r, errors.New("pool exhausted"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestFrom(t *testing.T) {
	appErr := From(Unauthorized("Unauthorized Access: API Token Required"))
	require.Equal(t, http.StatusUnauthorized, appErr.Status)
	require.True(t, appErr.Operational)

	appErr = From(errors.New("boom"))
	require.False(t, appErr.Operational)
	require.Equal(t, http.StatusInternalServerError, appErr.Status)
}
