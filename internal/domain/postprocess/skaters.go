// Package postprocess derives the reported statistics from fully folded
// accumulators. It runs once, after every game has been folded.
package postprocess

import (
	"math"
	"sort"

	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/numeric"
)

// Skaters derives statistics for one skater-set and returns them ordered by
// (team, number).
//
// Stage one is per skater. Stage two reads the finished stage-one snapshot to
// normalize each skater's VTAR deviation against their teammates in the set.
func Skaters(totals []model.SkaterTotals) []model.SkaterProcessed {
	stage1 := make([]model.SkaterProcessed, len(totals))
	for i, t := range totals {
		stage1[i] = skaterStats(t)
	}

	out := withVariability(stage1)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].Number < out[j].Number
	})
	return out
}

func skaterStats(t model.SkaterTotals) model.SkaterProcessed {
	jams := float64(t.Jams)
	p := model.SkaterProcessed{
		SkaterTotals: t,
		Avg:          numeric.Metric(numeric.Round(float64(t.PointsFor-t.PointsAgainst)/jams, 2)),
		Avtar:        numeric.Metric(numeric.Round(numeric.Mean(t.Vtars), 2)),
		VtarStddev:   numeric.Metric(numeric.Round(numeric.PopStdDev(t.Vtars), 2)),
		PPJP:         numeric.Metric(numeric.Round(100*float64(t.PenaltyTotal)/jams, 0)),
		JLP:          numeric.Metric(math.NaN()),
		Variability:  numeric.Metric(math.NaN()),
		Positions:    [3]int{t.Jammers, t.Pivots, t.Jams - t.Jammers - t.Pivots},
	}
	if t.Jammers > 0 {
		p.JLP = numeric.Metric(numeric.Round(100*float64(t.JammerLeads)/float64(t.Jammers), 0))
	}
	return p
}

// withVariability returns a copy of stage1 with Variability set. An undefined
// deviation (no jams in the set) counts as 0 in the team mean; the skater's own
// variability stays undefined.
func withVariability(stage1 []model.SkaterProcessed) []model.SkaterProcessed {
	byTeam := make(map[string][]float64)
	for _, s := range stage1 {
		sd := 0.0
		if s.VtarStddev.Valid() {
			sd = s.VtarStddev.Float()
		}
		byTeam[s.Team] = append(byTeam[s.Team], sd)
	}
	teamMean := make(map[string]float64, len(byTeam))
	for team, sds := range byTeam {
		teamMean[team] = numeric.Mean(sds)
	}

	out := make([]model.SkaterProcessed, len(stage1))
	for i, s := range stage1 {
		s.Variability = numeric.Metric(numeric.Round(100*s.VtarStddev.Float()/teamMean[s.Team], 0))
		out[i] = s
	}
	return out
}
