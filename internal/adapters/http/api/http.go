// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/pitchcard/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	DirectoryDependencies
	CardDependencies

	// Ready reports whether the roster has been built.
	Ready() bool
}

// Card mirrors the JSON summary returned by the card endpoints.
type Card = types.Card

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	directoryHandler *DirectoryHandler
	cardHandler      *CardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(deps),
		statsHandler:     NewStatsHandler(statsProvider),
		directoryHandler: NewDirectoryHandler(deps),
		cardHandler:      NewCardHandler(deps),
	}
}

// Register attaches all HTTP routes to mux. Every route answers with an
// X-Request-ID header.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestID(MetricsMiddleware(h, endpoint)))
	}

	// Specific paths first (most specific to least specific)
	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	mux.HandleFunc("/metrics", RequestID(s.healthHandler.HandleMetrics))
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/api/levels", "levels", s.directoryHandler.HandleLevels)
	route("/api/teams", "teams", s.directoryHandler.HandleTeams)
	route("/api/pitchers", "pitchers", s.directoryHandler.HandlePitchers)
	route("/api/pitchers/", "card", s.cardHandler.HandleCard)
}
