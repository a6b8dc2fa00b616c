package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/roster"
)

// SkatersDependencies defines the interface for skater reads.
type SkatersDependencies interface {
	Skaters(ctx context.Context, set roster.Set, team string) ([]model.SkaterProcessed, error)
	Skater(ctx context.Context, set roster.Set, team, number string) (model.SkaterProcessed, error)
}

// SkatersHandler handles skater requests.
type SkatersHandler struct {
	deps SkatersDependencies
}

// NewSkatersHandler creates a new skaters handler.
func NewSkatersHandler(deps SkatersDependencies) *SkatersHandler {
	return &SkatersHandler{deps: deps}
}

// HandleListSkaters handles GET /skaters?set=&team= requests.
func (h *SkatersHandler) HandleListSkaters(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_skaters"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	set, err := parseSet(op, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	skaters, err := h.deps.Skaters(r.Context(), set, r.URL.Query().Get("team"))
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, skaters)
}

// HandleGetSkater handles GET /skaters/{team}/{number}?set= requests.
func (h *SkatersHandler) HandleGetSkater(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_skater"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/skaters/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	set, err := parseSet(op, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	skater, err := h.deps.Skater(r.Context(), set, parts[0], parts[1])
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, skater)
}
