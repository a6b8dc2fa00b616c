// Package report renders the terminal summary printed after a run.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/okian/jamstats/internal/adapters/repository"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/roster"
)

// Reader is the part of the repository the summary reads.
type Reader interface {
	Info(ctx context.Context) (repository.Info, error)
	Teams(ctx context.Context) ([]model.TeamProcessed, error)
	TopN(ctx context.Context, set roster.Set, metric repository.Metric, n int) ([]repository.Entry, error)
}

// board is one leaderboard table of the summary.
type board struct {
	title  string
	set    roster.Set
	metric repository.Metric
}

var boards = []board{
	{title: "Skaters by AVTAR", set: roster.SetAll, metric: repository.MetricAvtar},
	{title: "Jammers by lead %", set: roster.SetJammers, metric: repository.MetricJLP},
	{title: "Blockers by AVTAR", set: roster.SetBlockers, metric: repository.MetricAvtar},
}

// Summary writes the league tables of the current snapshot to w, listing at
// most limit skaters per table.
func Summary(ctx context.Context, w io.Writer, r Reader, limit int) error {
	info, err := r.Info(ctx)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Run %s: %d games, %d teams, %d skaters\n",
		info.RunID, info.Games, info.Teams, info.Skaters); err != nil {
		return err
	}

	for _, b := range boards {
		entries, err := r.TopN(ctx, b.set, b.metric, limit)
		if err != nil {
			return fmt.Errorf("%s: %w", b.title, err)
		}
		renderBoard(w, b, entries)
	}

	teams, err := r.Teams(ctx)
	if err != nil {
		return err
	}
	renderTeams(w, teams)
	return nil
}

func renderBoard(w io.Writer, b board, entries []repository.Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(b.title)
	t.AppendHeader(table.Row{"#", "Team", "Skater", strings.ToUpper(string(b.metric)), "Jams"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Rank, e.Team, e.Number, e.Value, e.Jams})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

func renderTeams(w io.Writer, teams []model.TeamProcessed) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Teams")
	t.AppendHeader(table.Row{"Team", "Games", "Jams", "For", "Against", "Penalties", "PPJP", "Tendencies"})
	for _, tm := range teams {
		t.AppendRow(table.Row{
			tm.Name, tm.Games, tm.Jams, tm.PointsFor, tm.PointsAgainst, tm.PenaltyTotal,
			tm.PPJP.String(), tendencies(tm.PenaltyTendencies),
		})
	}
	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "tendency/normalized per code"})
	t.Render()
}

func tendencies(ts []model.PenaltyTendency) string {
	if len(ts) == 0 {
		return "-"
	}
	parts := make([]string, len(ts))
	for i, pt := range ts {
		parts[i] = fmt.Sprintf("%s %s/%s", pt.Penalty, pt.Tendency, pt.NormalizedTendency)
	}
	return strings.Join(parts, " ")
}
