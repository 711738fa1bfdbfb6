package api

import (
	"context"
	"net/http"

	"github.com/okian/pitchcard/internal/domain/types"
)

// DirectoryDependencies defines the dropdown lookups over the roster.
type DirectoryDependencies interface {
	Levels(ctx context.Context) []types.Option
	Teams(ctx context.Context, level string) []types.Option
	Pitchers(ctx context.Context, team string) []types.PitcherOption
}

// DirectoryHandler serves the level, team and pitcher dropdowns.
type DirectoryHandler struct {
	deps DirectoryDependencies
}

// NewDirectoryHandler creates a new directory handler.
func NewDirectoryHandler(deps DirectoryDependencies) *DirectoryHandler {
	return &DirectoryHandler{deps: deps}
}

// HandleLevels handles GET /api/levels requests.
func (h *DirectoryHandler) HandleLevels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(h.deps.Levels(r.Context())))
}

// HandleTeams handles GET /api/teams?level=L requests. An empty level
// yields an empty list.
func (h *DirectoryHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(h.deps.Teams(r.Context(), r.URL.Query().Get("level"))))
}

// HandlePitchers handles GET /api/pitchers?team=T requests. An empty team
// yields an empty list.
func (h *DirectoryHandler) HandlePitchers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(h.deps.Pitchers(r.Context(), r.URL.Query().Get("team"))))
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
