package httputil

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jirorimi/cup-registration/internal/service"
	"github.com/jirorimi/cup-registration/internal/tournament"
	"github.com/jirorimi/cup-registration/internal/validate"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	http.Error(w, msg, http.StatusNotFound)
}

// WriteError answers an API request with the status and message err maps to.
// Anything unrecognised is a 500 whose details stay in the log.
func WriteError(w http.ResponseWriter, msg string, err error) {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		Fail(w, http.StatusBadRequest, verrs.First().Error(), err)
	case errors.Is(err, tournament.ErrForeignEventID):
		Fail(w, http.StatusBadRequest, "the request contains an event that does not belong to this tournament", err)
	case errors.Is(err, tournament.ErrDuplicateEventID):
		Fail(w, http.StatusBadRequest, "the request lists the same event more than once", err)
	case errors.Is(err, service.ErrUnauthenticated):
		Fail(w, http.StatusUnauthorized, "sign in required", nil)
	case errors.Is(err, service.ErrForbidden):
		Fail(w, http.StatusForbidden, "administrator access required", nil)
	case errors.Is(err, service.ErrTournamentNotFound):
		Fail(w, http.StatusNotFound, "tournament not found", err)
	case errors.Is(err, service.ErrUserNotFound):
		Fail(w, http.StatusNotFound, "user not found", err)
	default:
		slog.Error(msg, "error", err)
		Fail(w, http.StatusInternalServerError, msg, nil)
	}
}
