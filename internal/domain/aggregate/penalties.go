package aggregate

import (
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/roster"
)

func (a *Aggregator) foldPenalties(g *model.Game) {
	for _, p := range g.Penalties {
		team, _ := g.TeamName(p.Team)

		a.registry.Skater(roster.SetAll, team, p.Skater).AddPenalty(p.Code)
		a.registry.Team(team).AddPenalty(p.Code)

		set := roster.SetBlockers
		if a.asJammer(g, p) {
			set = roster.SetJammers
		}
		a.registry.Skater(set, team, p.Skater).AddPenalty(p.Code)
		a.stats.Penalties++
	}
}

// asJammer reports whether the penalized skater held slot 0 of their team's
// lineup for the penalty's jam. Without a lineup row the answer is false.
func (a *Aggregator) asJammer(g *model.Game, p model.PenaltyRow) bool {
	l, ok := g.LineupFor(p.Jam, p.Period)
	if !ok {
		a.stats.PenaltiesWithoutLineup++
		return false
	}
	return l.Side(p.Team).Jammer() == p.Skater
}
