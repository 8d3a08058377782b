package server

import (
	"net/http"

	"demo-app/internal/logging"
	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader carries the per-request correlation ID
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen caps client-supplied IDs
const maxRequestIDLen = 128

// RequestIDMiddleware reuses the client's X-Request-ID or generates one
func (s *Server) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("http.request_id", id))

		next.ServeHTTP(w, r.WithContext(setRequestID(r.Context(), id)))
	})
}

// AccessLogMiddleware logs one debug line per request
func (s *Server) AccessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !logging.DebugEnabled() {
			next.ServeHTTP(w, r)
			return
		}

		m := httpsnoop.CaptureMetrics(next, w, r)
		logging.Debug("%s %s %d %dB %s id=%s",
			r.Method, r.URL.Path, m.Code, m.Written, m.Duration, RequestIDFromContext(r.Context()))
	})
}
