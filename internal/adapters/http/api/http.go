// Package api serves the published aggregation over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/jamstats/internal/adapters/repository"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/roster"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Output(ctx context.Context) (model.Output, error)
	Skaters(ctx context.Context, set roster.Set, team string) ([]model.SkaterProcessed, error)
	Skater(ctx context.Context, set roster.Set, team, number string) (model.SkaterProcessed, error)
	Teams(ctx context.Context) ([]model.TeamProcessed, error)
	Team(ctx context.Context, name string) (model.TeamProcessed, error)
	TopN(ctx context.Context, set roster.Set, metric repository.Metric, n int) ([]repository.Entry, error)
}

// Server wires HTTP routes for the read API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	outputHandler      *OutputHandler
	skatersHandler     *SkatersHandler
	teamsHandler       *TeamsHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		outputHandler:      NewOutputHandler(deps),
		skatersHandler:     NewSkatersHandler(deps),
		teamsHandler:       NewTeamsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/output", MetricsMiddleware(s.outputHandler.HandleGetOutput, "output"))
	mux.HandleFunc("/skaters", MetricsMiddleware(s.skatersHandler.HandleListSkaters, "skaters"))
	mux.HandleFunc("/skaters/", MetricsMiddleware(s.skatersHandler.HandleGetSkater, "skater"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.teamsHandler.HandleListTeams, "teams"))
	mux.HandleFunc("/teams/", MetricsMiddleware(s.teamsHandler.HandleGetTeam, "team"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeUpstreamError maps repository errors to a status and code.
func writeUpstreamError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, repository.ErrNoSnapshot):
		writeError(w, http.StatusServiceUnavailable, "not_ready", NewKind(op, ErrNotReady))
	case errors.Is(err, repository.ErrInvalidLimit), errors.Is(err, repository.ErrUnknownMetric),
		errors.Is(err, roster.ErrUnknownSet):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// parseSet reads the optional ?set= query parameter.
func parseSet(op string, r *http.Request) (roster.Set, error) {
	set, err := roster.ParseSet(r.URL.Query().Get("set"))
	if err != nil {
		return roster.SetAll, NewKindf(op, ErrBadRequest, "%v", err)
	}
	return set, nil
}
