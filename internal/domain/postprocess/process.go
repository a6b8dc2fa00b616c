package postprocess

import (
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/roster"
)

// Process snapshots every accumulator of the registry and derives the full
// output. totalGames is the number of games that were folded.
func Process(reg *roster.Registry, totalGames int) model.Output {
	return model.Output{
		Total:    model.Total{Games: totalGames},
		Skaters:  Skaters(skaterTotals(reg, roster.SetAll)),
		Jammers:  Skaters(skaterTotals(reg, roster.SetJammers)),
		Blockers: Skaters(skaterTotals(reg, roster.SetBlockers)),
		Teams:    Teams(teamTotals(reg), totalGames),
	}
}

func skaterTotals(reg *roster.Registry, set roster.Set) []model.SkaterTotals {
	skaters := reg.Skaters(set)
	out := make([]model.SkaterTotals, len(skaters))
	for i, s := range skaters {
		out[i] = s.Totals()
	}
	return out
}

func teamTotals(reg *roster.Registry) []model.TeamTotals {
	teams := reg.Teams()
	out := make([]model.TeamTotals, len(teams))
	for i, t := range teams {
		out[i] = t.Totals()
	}
	return out
}
