// Package api implements the Powerset HTTP API.
//
// The API exposes the determinization pipeline over HTTP:
//
//	POST   /determinize     stateless: description in, machine out
//	POST   /machines        determinize and store under a fresh id
//	GET    /machines        list stored machines
//	GET    /machines/{id}   fetch a stored machine
//	DELETE /machines/{id}   remove a stored machine
//	GET    /healthz         liveness probe
//
// Errors are returned as JSON envelopes carrying the machine-readable codes
// from pkg/errors. Every request gets a uuid request id, echoed in the
// X-Request-ID header and attached to its log lines.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/lbehrens/powerset/pkg/pipeline"
	"github.com/lbehrens/powerset/pkg/store"
)

// Server handles HTTP requests for the determinization API.
// Construct with NewServer; the zero value is not usable.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates a server backed by the given pipeline runner and store.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/determinize", s.handleDeterminize)
	r.Route("/machines", func(r chi.Router) {
		r.Post("/", s.handleCreateMachine)
		r.Get("/", s.handleListMachines)
		r.Get("/{id}", s.handleGetMachine)
		r.Delete("/{id}", s.handleDeleteMachine)
	})

	return r
}

// requestID assigns a uuid to each request and echoes it back to the client.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

// logRequests logs one line per request with method, path, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Millisecond),
			"request_id", requestIDFromContext(r.Context()))
	})
}
