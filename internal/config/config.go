// Package config defines process configuration and how it is loaded.
package config

import (
	"runtime"

	"github.com/okian/jamstats/internal/domain/roster"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// DataDir is scanned for statbook workbooks.
	DataDir string `koanf:"data_dir"`

	// FilePrefix filters DataDir entries by name prefix.
	FilePrefix string `koanf:"file_prefix"`

	// OutputPath receives the aggregated JSON document.
	OutputPath string `koanf:"output_path"`

	// ParseWorkers sets how many workbooks are parsed concurrently.
	ParseWorkers int `koanf:"parse_workers"`

	// QueueSize bounds the parse job queue.
	QueueSize int `koanf:"queue_size"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Serve keeps the process running with the read API after the run.
	Serve bool `koanf:"serve"`

	// Summary prints leaderboard tables to stdout after the run.
	Summary bool `koanf:"summary"`

	// SummaryLimit is the number of rows per summary table.
	SummaryLimit int `koanf:"summary_limit"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// NumberAdjustments maps numbers written on the statbook to a skater's real number.
	NumberAdjustments []NumberAdjustment `koanf:"number_adjustments"`
}

// NumberAdjustment is one entry of the number alias table.
type NumberAdjustment struct {
	Team       string `koanf:"team"`
	RawNumber  string `koanf:"raw_number"`
	RealNumber string `koanf:"real_number"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		DataDir:             "data",
		FilePrefix:          "STATS",
		OutputPath:          "output.json",
		ParseWorkers:        runtime.NumCPU(),
		QueueSize:           64,
		Addr:                ":9080",
		Serve:               false,
		Summary:             true,
		SummaryLimit:        10,
		MaxLeaderboardLimit: 100,
	}
}

// Aliases converts the number adjustments into a roster alias table.
func (c *Config) Aliases() []roster.Alias {
	out := make([]roster.Alias, 0, len(c.NumberAdjustments))
	for _, a := range c.NumberAdjustments {
		out = append(out, roster.Alias{Team: a.Team, RawNumber: a.RawNumber, RealNumber: a.RealNumber})
	}
	return out
}
