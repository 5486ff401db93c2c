package webjson

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Write serializes v as the JSON response body.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response", slog.Any("err", err))
	}
}

// Error writes the {"error": ...} body used by read-style API endpoints.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// Fail writes the {"success": false, "error": ...} body used by
// command-style API endpoints.
func Fail(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]any{"success": false, "error": msg})
}

// Decode parses the request body into v.
func Decode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
