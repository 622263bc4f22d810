// Package api exposes graph construction over a small HTTP surface.
//
// Two endpoints do the work: POST /graphs builds a graph from an uploaded
// crystal or molecule record and stores it under a server-assigned UUID,
// and GET /graphs/{id} returns a stored graph as JSON. Storage is
// in-memory; restarting the server forgets all graphs.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/larsmk/crystalgraph/pkg/pipeline"
)

// Server wires the HTTP handlers to a pipeline builder.
type Server struct {
	builder *pipeline.Builder
	logger  *log.Logger
	store   *store
}

// NewServer creates a server around an existing builder.
// If logger is nil, the default logger is used.
func NewServer(builder *pipeline.Builder, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		builder: builder,
		logger:  logger,
		store:   newStore(),
	}
}

// Routes assembles the router with standard middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/graphs", s.handleBuild)
	r.Get("/graphs/{graphID}", s.handleGet)
	return r
}
