package httptransport

import (
	"net/http/httptest"
	"testing"

	"github.com/corray333/backoffice/internal/service/models/apperrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperrors.NotFound("order %s not found", uuid.New()), 404},
		{"unauthorized", apperrors.Unauthorized("nope"), 401},
		{"unprocessable", apperrors.Unprocessable("already closed"), 422},
		{"bad request", apperrors.BadRequest("missing phone"), 400},
		{"unknown is internal", assertErr{}, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", "/api/orders", nil)

			writeError(w, r, tt.err)
			require.Equal(t, tt.status, w.Code)
			require.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tt.status == 500 {
				require.NotContains(t, w.Body.String(), "database exploded")
			}
		})
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "database exploded" }

func TestActorID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	id, err := actorID(r)
	require.NoError(t, err)
	require.Nil(t, id)

	want := uuid.New()
	r.Header.Set(actorHeader, want.String())
	id, err = actorID(r)
	require.NoError(t, err)
	require.Equal(t, want, *id)

	r.Header.Set(actorHeader, "not-a-uuid")
	_, err = actorID(r)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestRequireActorID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	_, err := requireActorID(r)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	want := uuid.New()
	r.Header.Set(actorHeader, want.String())
	got, err := requireActorID(r)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
