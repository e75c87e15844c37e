package httptransport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backoffice/internal/service/models/apperrors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// actorHeader carries the authenticated user's id, set by the gateway that
// validated the token.
const actorHeader = "X-Actor-ID"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeError maps the service error kinds onto HTTP statuses. Unclassified
// errors are internal and their details stay out of the response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrUnprocessable):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrBadRequest):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		slog.Error("Error handling request", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})

		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// actorID reads the optional actor header. A present but malformed id is a
// client error.
func actorID(r *http.Request) (*uuid.UUID, error) {
	raw := r.Header.Get(actorHeader)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.BadRequest("invalid %s header", actorHeader)
	}

	return &id, nil
}

// requireActorID reads the actor header and rejects the request without it.
func requireActorID(r *http.Request) (uuid.UUID, error) {
	id, err := actorID(r)
	if err != nil {
		return uuid.Nil, err
	}
	if id == nil {
		return uuid.Nil, apperrors.Unauthorized("missing %s header", actorHeader)
	}

	return *id, nil
}

func pathID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, apperrors.BadRequest("invalid %s", param)
	}

	return id, nil
}
