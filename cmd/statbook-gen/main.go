// Command statbook-gen writes synthetic statbook workbooks for local runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/jamstats/internal/adapters/statbook"
	"github.com/okian/jamstats/internal/testgames"
	"github.com/okian/jamstats/pkg/logger"
)

const dateLayout = "2006-01-02"

func main() {
	defaults := testgames.DefaultConfig()
	var (
		outDir    = flag.String("out", "data", "Directory to write statbooks to")
		prefix    = flag.String("prefix", "STATS", "File name prefix")
		games     = flag.Int("games", defaults.Games, "Number of games to generate")
		jams      = flag.Int("jams", defaults.JamsPerPeriod, "Jams per period")
		penalties = flag.Int("penalties", defaults.PenaltiesPerGame, "Penalties per game")
		seed      = flag.Int64("seed", defaults.Seed, "Random seed")
		teams     = flag.String("teams", strings.Join(defaults.Teams, ","), "Comma separated team names")
		first     = flag.String("first", defaults.FirstDate.Format(dateLayout), "Date of the first game")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	cfg := defaults
	cfg.Games = *games
	cfg.JamsPerPeriod = *jams
	cfg.PenaltiesPerGame = *penalties
	cfg.Seed = *seed
	cfg.Teams = splitTeams(*teams)
	date, err := time.Parse(dateLayout, *first)
	if err != nil {
		os.Stderr.WriteString("invalid -first date: " + err.Error() + "\n")
		os.Exit(2)
	}
	cfg.FirstDate = date

	paths, err := generate(cfg, *outDir, *prefix)
	if err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger.Get().Named("statbook-gen").Info(context.Background(), "statbooks written",
		logger.String("dir", *outDir),
		logger.Int("files", len(paths)),
	)
}

// generate writes one workbook per generated game and returns their paths.
func generate(cfg testgames.Config, dir, prefix string) ([]string, error) {
	games, err := testgames.Generate(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(games))
	for i, g := range games {
		path := filepath.Join(dir, fmt.Sprintf("%s-%s-%03d.xlsx", prefix, g.Date, i+1))
		if err := statbook.Write(path, g); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func splitTeams(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
