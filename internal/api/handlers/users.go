package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cluelogs/server/internal/api/apperror"
	"github.com/cluelogs/server/internal/api/middleware"
	"github.com/cluelogs/server/internal/domain/credentials"
)

type UsersHandler struct {
	Service *credentials.Service
}

func NewUsersHandler(service *credentials.Service) *UsersHandler {
	return &UsersHandler{Service: service}
}

type registerResponse struct {
	Client   string `json:"client"`
	Username string `json:"username"`
}

// Register creates a credential and returns its first token in the X-Auth
// response header. This is the only unauthenticated operation.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input credentials.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperror.Write(w, r, apperror.BadRequest("request body must be a JSON object"))
		return
	}

	credential, token, err := h.Service.Register(r.Context(), input)
	if err != nil {
		var validationErr credentials.ValidationError
		switch {
		case errors.As(err, &validationErr):
			apperror.Write(w, r, apperror.BadRequest(validationErr.Message))
		case errors.Is(err, credentials.ErrUsernameTaken):
			apperror.Write(w, r, apperror.BadRequest("username already registered"))
		default:
			apperror.Write(w, r, err)
		}
		return
	}

	w.Header().Set(middleware.TokenHeader, token)
	writeJSON(w, http.StatusOK, registerResponse{Client: credential.Client, Username: credential.Username})
}

// List returns the registered credentials as deduplicated
// {client, username, token} tuples, optionally filtered by client and
// username. Zero rows is an empty array, not an error; only the event list
// treats emptiness as terminal.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := credentials.Filters{
		Client:   strings.TrimSpace(r.URL.Query().Get("client")),
		Username: strings.TrimSpace(r.URL.Query().Get("username")),
	}

	rows, err := h.Service.List(r.Context(), filters)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
