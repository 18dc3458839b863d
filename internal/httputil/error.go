package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
)

type errorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	WriteJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	WriteJSON(w, http.StatusNotFound, errorResponse{Error: msg})
}

// StatusFor maps engine errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, bracket.ErrBracketNotFound),
		errors.Is(err, bracket.ErrScheduleNotFound),
		errors.Is(err, bracket.ErrMatchNotFound),
		errors.Is(err, bracket.ErrCourtNotFound),
		errors.Is(err, bracket.ErrPoolNotFound),
		errors.Is(err, bracket.ErrPlaceholderNotFound):
		return http.StatusNotFound
	case errors.Is(err, bracket.ErrInvalidRoster),
		errors.Is(err, bracket.ErrInvalidFormat),
		errors.Is(err, bracket.ErrInvalidScore):
		return http.StatusBadRequest
	case errors.Is(err, bracket.ErrMatchNotReady),
		errors.Is(err, bracket.ErrMatchCompleted),
		errors.Is(err, bracket.ErrPoolIncomplete),
		errors.Is(err, bracket.ErrPlaceholderBound),
		errors.Is(err, bracket.ErrNoChampion):
		return http.StatusConflict
	case errors.Is(err, bracket.ErrIncompleteMatch),
		errors.Is(err, bracket.ErrSchedulingInfeasible):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Error writes err with the status StatusFor picks.
func Error(w http.ResponseWriter, msg string, err error) {
	status := StatusFor(err)
	switch status {
	case http.StatusInternalServerError:
		InternalServerError(w, msg, err)
	case http.StatusNotFound:
		NotFound(w, err.Error(), err)
	default:
		slog.Warn(msg, "status", status, "error", err)
		WriteJSON(w, status, errorResponse{Error: err.Error()})
	}
}
