package server

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeJSONError writes {"error": message} plus any extra fields.
func writeJSONError(w http.ResponseWriter, statusCode int, message string, extra map[string]any) {
	body := map[string]any{"error": message}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, statusCode, body)
}

// writeInternalError answers 500. stack may be nil, in which case the current
// goroutine's stack is used; it is dropped entirely in production.
func (s *Server) writeInternalError(w http.ResponseWriter, err error, stack []byte) {
	extra := map[string]any{"message": err.Error()}
	if !s.production {
		if stack == nil {
			stack = debug.Stack()
		}
		extra["stack"] = string(stack)
	}
	writeJSONError(w, http.StatusInternalServerError, "Internal server error", extra)
}
