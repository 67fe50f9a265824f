package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jirorimi/cup-registration/internal/service"
	"github.com/jirorimi/cup-registration/internal/tournament"
	"github.com/jirorimi/cup-registration/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", validate.Errors{{Path: "name", Message: "name is required"}}, http.StatusBadRequest, "name: name is required"},
		{"foreign event", fmt.Errorf("%w: x", tournament.ErrForeignEventID), http.StatusBadRequest, ""},
		{"duplicate event", tournament.ErrDuplicateEventID, http.StatusBadRequest, ""},
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized, "sign in required"},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "administrator access required"},
		{"not found", service.ErrTournamentNotFound, http.StatusNotFound, "tournament not found"},
		{"store failure", errors.New("database is locked"), http.StatusInternalServerError, "failed to save"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, "failed to save", tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, resp.Error)
			}
			assert.NotContains(t, resp.Error, "database is locked")
		})
	}
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}
