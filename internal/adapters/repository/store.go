// Package repository holds the latest aggregation output and answers read
// queries over it.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/roster"
)

// Metric names a skater statistic that can be ranked.
type Metric string

// Rankable metrics. Higher values rank first.
const (
	MetricAvtar Metric = "avtar"
	MetricAvg   Metric = "avg"
	MetricJLP   Metric = "jlp"
	MetricPPJP  Metric = "ppjp"
	MetricJams  Metric = "jams"
)

// Metrics lists every rankable metric.
var Metrics = []Metric{MetricAvtar, MetricAvg, MetricJLP, MetricPPJP, MetricJams}

// ParseMetric validates a metric name. An empty name selects MetricAvtar.
func ParseMetric(name string) (Metric, error) {
	if name == "" {
		return MetricAvtar, nil
	}
	for _, m := range Metrics {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// value returns the metric of s and whether it is defined.
func (m Metric) value(s *model.SkaterProcessed) (float64, bool) {
	switch m {
	case MetricAvtar:
		return s.Avtar.Float(), s.Avtar.Valid()
	case MetricAvg:
		return s.Avg.Float(), s.Avg.Valid()
	case MetricJLP:
		return s.JLP.Float(), s.JLP.Valid()
	case MetricPPJP:
		return s.PPJP.Float(), s.PPJP.Valid()
	case MetricJams:
		return float64(s.Jams), true
	}
	return 0, false
}

// Entry is one leaderboard row.
type Entry struct {
	Rank   int     `json:"rank"`
	Team   string  `json:"team"`
	Number string  `json:"number"`
	Value  float64 `json:"value"`
	Jams   int     `json:"jams"`
}

// Info describes the published snapshot.
type Info struct {
	RunID     string    `json:"runId"`
	Games     int       `json:"games"`
	Skaters   int       `json:"skaters"`
	Teams     int       `json:"teams"`
	Published time.Time `json:"published"`
}

// Store provides read access to the latest output and a way to replace it.
type Store interface {
	// Publish replaces the current snapshot.
	Publish(ctx context.Context, runID string, out model.Output) error

	// Info describes the current snapshot. Returns ErrNoSnapshot before the first publish.
	Info(ctx context.Context) (Info, error)

	// Output returns the full output of the current snapshot.
	Output(ctx context.Context) (model.Output, error)

	// Skaters lists a skater-set, optionally filtered by team.
	Skaters(ctx context.Context, set roster.Set, team string) ([]model.SkaterProcessed, error)

	// Skater returns one skater of a set. Returns ErrNotFound if unknown.
	Skater(ctx context.Context, set roster.Set, team, number string) (model.SkaterProcessed, error)

	// Teams lists every team.
	Teams(ctx context.Context) ([]model.TeamProcessed, error)

	// Team returns one team. Returns ErrNotFound if unknown.
	Team(ctx context.Context, name string) (model.TeamProcessed, error)

	// TopN returns the top-n skaters of a set by metric.
	TopN(ctx context.Context, set roster.Set, metric Metric, n int) ([]Entry, error)
}
