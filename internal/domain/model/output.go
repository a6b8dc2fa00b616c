package model

import "github.com/okian/jamstats/internal/domain/numeric"

// SkaterTotals are the raw counters accumulated for one skater in one skater-set.
type SkaterTotals struct {
	Team          string    `json:"team"`
	Number        string    `json:"number"`
	Games         int       `json:"games"`
	Jams          int       `json:"jams"`
	PointsFor     int       `json:"pointsFor"`
	PointsAgainst int       `json:"pointsAgainst"`
	Vtars         []float64 `json:"vtars"`
	Jammers       int       `json:"jammers"`
	Pivots        int       `json:"pivots"`
	JammerLeads   int       `json:"jammerLeads"`
	PenaltyTotal  int       `json:"penaltyTotal"`
	Penalties     []string  `json:"penalties"`
}

// SkaterProcessed is a skater's totals plus the derived statistics.
type SkaterProcessed struct {
	SkaterTotals

	// Avg is the point differential per jam.
	Avg numeric.Metric `json:"avg"`
	// Avtar is the mean VTAR.
	Avtar      numeric.Metric `json:"avtar"`
	VtarStddev numeric.Metric `json:"vtarStddev"`
	// Variability is VtarStddev as a percentage of the teammates' mean.
	Variability numeric.Metric `json:"variability"`
	// PPJP is penalties per jam, as a percentage.
	PPJP numeric.Metric `json:"ppjp"`
	// JLP is the jammer lead percentage; null when the skater never jammed.
	JLP numeric.Metric `json:"jlp"`
	// Positions counts jams as jammer, pivot and non-pivot blocker.
	Positions [3]int `json:"positions"`
}

// TeamTotals are the raw counters accumulated for one team.
type TeamTotals struct {
	Name          string   `json:"name"`
	Games         int      `json:"games"`
	Jams          int      `json:"jams"`
	PointsFor     int      `json:"pointsFor"`
	PointsAgainst int      `json:"pointsAgainst"`
	PenaltyTotal  int      `json:"penaltyTotal"`
	Penalties     []string `json:"penalties"`
}

// PenaltyTendency compares a team's use of one penalty code with the league.
type PenaltyTendency struct {
	Penalty      string         `json:"penalty"`
	TeamAmount   int            `json:"teamAmount"`
	TeamRatio    numeric.Metric `json:"teamRatio"`
	AverageRatio numeric.Metric `json:"averageRatio"`
	TotalRatio   numeric.Metric `json:"totalRatio"`
	// Tendency indexes the team's share of this code against its share of games.
	Tendency numeric.Metric `json:"tendency"`
	// NormalizedTendency indexes the code's share of the team's own penalties
	// against the league-wide share, independent of penalty volume.
	NormalizedTendency numeric.Metric `json:"normalizedTendency"`
}

// TeamProcessed is a team's totals plus the derived statistics.
type TeamProcessed struct {
	TeamTotals

	PPJP              numeric.Metric    `json:"ppjp"`
	PenaltyTendencies []PenaltyTendency `json:"penaltyTendencies"`
}

// Total holds league-wide counts.
type Total struct {
	Games int `json:"games"`
}

// Output is the complete result of one aggregation run.
type Output struct {
	Total    Total             `json:"total"`
	Skaters  []SkaterProcessed `json:"skaters"`
	Jammers  []SkaterProcessed `json:"jammers"`
	Blockers []SkaterProcessed `json:"blockers"`
	Teams    []TeamProcessed   `json:"teams"`
}
