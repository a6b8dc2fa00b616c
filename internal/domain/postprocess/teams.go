package postprocess

import (
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/numeric"
)

// MinTendencySample is the smallest team amount of a code that gets a
// tendency entry; anything at or below it is dropped.
const MinTendencySample = 5

// leagueCode is the league-wide use of one penalty code.
type leagueCode struct {
	amount int
	ratio  float64
}

// Teams derives team statistics, comparing each team's penalty mix with the
// pool of every team's penalties. totalGames is the number of games folded.
func Teams(totals []model.TeamTotals, totalGames int) []model.TeamProcessed {
	league := leaguePenalties(totals)
	gamesShareDenominator := float64(2 * totalGames)

	out := make([]model.TeamProcessed, 0, len(totals))
	for _, t := range totals {
		out = append(out, model.TeamProcessed{
			TeamTotals:        t,
			PPJP:              numeric.Metric(numeric.Round(100*float64(t.PenaltyTotal)/float64(t.Jams), 0)),
			PenaltyTendencies: tendencies(t, league, float64(t.Games)/gamesShareDenominator),
		})
	}
	return out
}

func leaguePenalties(totals []model.TeamTotals) map[string]leagueCode {
	counts := make(map[string]int)
	all := 0
	for _, t := range totals {
		for _, code := range t.Penalties {
			counts[code]++
			all++
		}
	}
	league := make(map[string]leagueCode, len(model.PenaltyCodes))
	for _, code := range model.PenaltyCodes {
		amount := counts[code]
		league[code] = leagueCode{
			amount: amount,
			ratio:  numeric.Round(float64(amount)/float64(all), 3),
		}
	}
	return league
}

func tendencies(t model.TeamTotals, league map[string]leagueCode, gamesShare float64) []model.PenaltyTendency {
	counts := make(map[string]int)
	for _, code := range t.Penalties {
		counts[code]++
	}

	out := make([]model.PenaltyTendency, 0)
	for _, code := range model.PenaltyCodes {
		amount := counts[code]
		if amount <= MinTendencySample {
			continue
		}
		lc := league[code]
		teamRatio := numeric.Round(float64(amount)/float64(len(t.Penalties)), 3)
		totalRatio := numeric.Round(float64(amount)/float64(lc.amount), 3)
		out = append(out, model.PenaltyTendency{
			Penalty:            code,
			TeamAmount:         amount,
			TeamRatio:          numeric.Metric(teamRatio),
			AverageRatio:       numeric.Metric(lc.ratio),
			TotalRatio:         numeric.Metric(totalRatio),
			Tendency:           numeric.Metric(numeric.Round(100*totalRatio/gamesShare, 0)),
			NormalizedTendency: numeric.Metric(numeric.Round(100*teamRatio/lc.ratio, 0)),
		})
	}
	return out
}
