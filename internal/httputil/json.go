package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the envelope every API endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Success(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// Fail writes {"success": false, "error": msg}. Client errors are logged as warnings.
func Fail(w http.ResponseWriter, status int, msg string, err error) {
	if status < http.StatusInternalServerError {
		if err != nil {
			slog.Warn("request rejected", "status", status, "message", msg, "error", err)
		} else {
			slog.Warn("request rejected", "status", status, "message", msg)
		}
	}
	WriteJSON(w, status, Response{Error: msg})
}
