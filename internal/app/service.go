// Package service runs the statbook pipeline and implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	workerpool "github.com/okian/jamstats/internal/adapters/mq/worker"
	"github.com/okian/jamstats/internal/adapters/repository"
	"github.com/okian/jamstats/internal/adapters/statbook"
	"github.com/okian/jamstats/internal/domain/aggregate"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/postprocess"
	"github.com/okian/jamstats/internal/domain/roster"
	"github.com/okian/jamstats/pkg/logger"
	"github.com/okian/jamstats/pkg/metrics"
)

// RunSummary describes the most recent completed run.
type RunSummary struct {
	RunID    string              `json:"runId"`
	Files    int                 `json:"files"`
	Stats    aggregate.FoldStats `json:"stats"`
	Duration time.Duration       `json:"duration"`
	Finished time.Time           `json:"finished"`
}

// Service parses statbooks, folds them into statistics and publishes the
// result to a snapshot store.
type Service struct {
	mu sync.RWMutex

	parser workerpool.Parser
	store  repository.Store

	parseWorkers int
	queueSize    int
	aliases      []roster.Alias

	runs    int
	lastRun RunSummary

	logger logger.Logger
}

// New constructs a Service. Defaults: the xlsx statbook parser, an
// in-memory snapshot store and one parser per CPU.
func New(opts ...Option) *Service {
	s := &Service{
		parseWorkers: runtime.NumCPU(),
		queueSize:    64,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.parser == nil {
		s.parser = statbook.NewParser()
	}
	if s.store == nil {
		s.store = repository.NewSnapshotStore()
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// DiscoverFiles lists the regular files in dir whose name starts with
// prefix, sorted by name.
func DiscoverFiles(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscover, err)
	}
	var paths []string
	// ReadDir returns entries sorted by filename.
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// Run parses paths, aggregates every game and publishes the output. A
// failing file fails the whole run and leaves the previous snapshot in place.
func (s *Service) Run(ctx context.Context, paths []string) (model.Output, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := s.logger.Named("run")

	aliases := roster.AliasTable(s.aliases)
	if err := aliases.Validate(); err != nil {
		return model.Output{}, err
	}

	log.Info(ctx, "starting run",
		logger.String("runID", runID),
		logger.Int("files", len(paths)),
		logger.Int("workers", s.parseWorkers),
	)
	if len(paths) == 0 {
		log.Warn(ctx, "no statbooks to process", logger.String("runID", runID))
	}

	pool := workerpool.NewPool(s.parseWorkers, s.parser, workerpool.WithQueueCapacity(s.queueSize))
	games, err := pool.ParseAll(ctx, paths)
	if err != nil {
		metrics.RecordErrorByComponent("service", "parse")
		return model.Output{}, err
	}

	reg := roster.NewRegistry(roster.WithAliases(aliases))
	agg := aggregate.New(reg)
	if err := agg.FoldAll(games); err != nil {
		metrics.RecordErrorByComponent("service", "fold")
		return model.Output{}, fmt.Errorf("fold: %w", err)
	}
	stats := agg.Stats()
	s.recordFold(reg, stats)

	out := postprocess.Process(reg, agg.Games())
	if err := s.store.Publish(ctx, runID, out); err != nil {
		metrics.RecordErrorByComponent("service", "publish")
		return model.Output{}, fmt.Errorf("publish: %w", err)
	}

	elapsed := time.Since(start)
	metrics.RecordRun(float64(elapsed.Milliseconds()))

	s.mu.Lock()
	s.runs++
	s.lastRun = RunSummary{
		RunID:    runID,
		Files:    len(paths),
		Stats:    stats,
		Duration: elapsed,
		Finished: time.Now(),
	}
	s.mu.Unlock()

	log.Info(ctx, "run complete",
		logger.String("runID", runID),
		logger.Int("games", stats.Games),
		logger.Int("jams", stats.Jams),
		logger.Int("lineupsWithoutScore", stats.LineupsWithoutScore),
		logger.Int("penalties", stats.Penalties),
		logger.Int("penaltiesWithoutLineup", stats.PenaltiesWithoutLineup),
		logger.Int("skaters", len(out.Skaters)),
		logger.Int("teams", len(out.Teams)),
		logger.Duration("elapsed", elapsed),
	)
	return out, nil
}

func (s *Service) recordFold(reg *roster.Registry, stats aggregate.FoldStats) {
	metrics.RecordFold(metrics.FoldCounts{
		Games:                  stats.Games,
		Jams:                   stats.Jams,
		LineupsWithoutScore:    stats.LineupsWithoutScore,
		Penalties:              stats.Penalties,
		PenaltiesWithoutLineup: stats.PenaltiesWithoutLineup,
	})
	for _, set := range roster.Sets {
		metrics.UpdateSkatersTracked(set.String(), reg.Count(set))
	}
	metrics.UpdateTeamsTracked(len(reg.Teams()))
}

// WriteOutput writes out to path as indented JSON. Undefined metrics are
// written as null.
func WriteOutput(path string, out model.Output) error {
	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// LastRun returns the summary of the most recent completed run.
func (s *Service) LastRun() (RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.runs == 0 {
		return RunSummary{}, ErrNotStarted
	}
	return s.lastRun, nil
}

// Store returns the snapshot store runs are published to.
func (s *Service) Store() repository.Store { return s.store }

// Output returns the latest published output.
func (s *Service) Output(ctx context.Context) (model.Output, error) {
	return s.store.Output(ctx)
}

// Info describes the latest published snapshot.
func (s *Service) Info(ctx context.Context) (repository.Info, error) {
	return s.store.Info(ctx)
}

// Skaters returns the skaters of set, optionally filtered by team.
func (s *Service) Skaters(ctx context.Context, set roster.Set, team string) ([]model.SkaterProcessed, error) {
	return s.store.Skaters(ctx, set, team)
}

// Skater returns one skater of set.
func (s *Service) Skater(ctx context.Context, set roster.Set, team, number string) (model.SkaterProcessed, error) {
	return s.store.Skater(ctx, set, team, number)
}

// Teams returns every team in registration order.
func (s *Service) Teams(ctx context.Context) ([]model.TeamProcessed, error) {
	return s.store.Teams(ctx)
}

// Team returns one team by name.
func (s *Service) Team(ctx context.Context, name string) (model.TeamProcessed, error) {
	return s.store.Team(ctx, name)
}

// TopN returns the n best skaters of set by metric.
func (s *Service) TopN(ctx context.Context, set roster.Set, metric repository.Metric, n int) ([]repository.Entry, error) {
	return s.store.TopN(ctx, set, metric, n)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"runs":         s.runs,
		"parseWorkers": s.parseWorkers,
		"queueSize":    s.queueSize,
		"aliases":      len(s.aliases),
	}
	if s.runs > 0 {
		stats["lastRun"] = s.lastRun
	}
	return stats
}
