package server

import (
	"io"
	"net/http"

	"demo-app/internal/logging"
)

// Greeting is the body served on GET /
const Greeting = "🚀 Node.js Demo App running with CI/CD Pipeline!"

// handleRoot serves the greeting
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, Greeting); err != nil {
		logging.Debug("Failed to write response for %s: %v", RequestIDFromContext(r.Context()), err)
	}
}
