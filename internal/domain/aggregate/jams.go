package aggregate

import (
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/numeric"
	"github.com/okian/jamstats/internal/domain/roster"
)

var sides = [2]model.Side{model.SideTeam1, model.SideTeam2}

// jamResult is one team's view of one jam.
type jamResult struct {
	pointsFor     int
	pointsAgainst int
	lead          bool
	vtar          float64
}

func (a *Aggregator) foldJams(g *model.Game) {
	a.countGamesPlayed(g)

	tjsd := teamJamScoreDiffs(g)
	for _, l := range g.Lineups {
		score, ok := g.ScoreFor(l.Jam, l.Period)
		if !ok {
			// Missing score rows count as 0-0 jams.
			a.stats.LineupsWithoutScore++
		}
		a.stats.Jams++

		for i, side := range sides {
			own, opp := score.Side(side), score.Side(side.Opponent())
			res := jamResult{
				pointsFor:     own.Total,
				pointsAgainst: opp.Total,
				lead:          own.Lead,
				vtar:          numeric.Round(float64(own.Total-opp.Total)-tjsd[i], 2),
			}
			team, _ := g.TeamName(side)
			a.noteLineup(team, l.Side(side), res)
		}
	}
}

// countGamesPlayed adds one game per distinct skater per team, and one per team.
func (a *Aggregator) countGamesPlayed(g *model.Game) {
	for _, side := range sides {
		team, _ := g.TeamName(side)
		seen := make(map[*roster.Skater]struct{})
		for _, l := range g.Lineups {
			for _, n := range l.Side(side).Lineup {
				s := a.registry.Skater(roster.SetAll, team, n)
				if _, dup := seen[s]; dup {
					continue
				}
				seen[s] = struct{}{}
				s.AddGame()
			}
		}
		a.registry.Team(team).AddGame()
	}
}

// teamJamScoreDiffs returns each team's mean per-jam point differential over
// the game's score rows (TJSD). A game without score rows has TJSD 0.
func teamJamScoreDiffs(g *model.Game) [2]float64 {
	d1 := make([]float64, 0, len(g.Scores))
	d2 := make([]float64, 0, len(g.Scores))
	for _, s := range g.Scores {
		d1 = append(d1, float64(s.Team1.Total-s.Team2.Total))
		d2 = append(d2, float64(s.Team2.Total-s.Team1.Total))
	}
	return [2]float64{numeric.MeanOrZero(d1), numeric.MeanOrZero(d2)}
}

func (a *Aggregator) noteLineup(team string, lt model.LineupTeam, res jamResult) {
	for i, n := range lt.Lineup {
		noteJam(a.registry.Skater(roster.SetAll, team, n), lt, n, i, res)
		if i == 0 {
			noteJam(a.registry.Skater(roster.SetJammers, team, n), lt, n, i, res)
		} else {
			noteJam(a.registry.Skater(roster.SetBlockers, team, n), lt, n, i, res)
		}
	}
	a.registry.Team(team).AddJam(res.pointsFor, res.pointsAgainst)
}

// noteJam applies one lineup slot to one accumulator. The pivot comparison
// uses the number as recorded, before alias resolution.
func noteJam(s *roster.Skater, lt model.LineupTeam, number string, slot int, res jamResult) {
	s.AddJam(res.pointsFor, res.pointsAgainst, res.vtar)
	if lt.IsPivot(number) {
		s.AddPivot()
	}
	if slot == 0 {
		s.AddJammer(res.lead)
	}
}
