// Package model contains domain models passed between layers.
package model

// LineupSize is the number of slots in a lineup; slot 0 is the jammer.
const LineupSize = 5

// Side identifies one of the two teams of a game as recorded on the sheets.
type Side int

// Team indicators as used by the penalty sheet.
const (
	SideTeam1 Side = 1
	SideTeam2 Side = 2
)

// Valid reports whether s is one of the two team indicators.
func (s Side) Valid() bool { return s == SideTeam1 || s == SideTeam2 }

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideTeam1 {
		return SideTeam2
	}
	return SideTeam1
}

// Game is one played match as produced by the statbook normalizer.
// It is not modified after parsing.
type Game struct {
	Team1     string       `json:"team1"`
	Team2     string       `json:"team2"`
	Date      string       `json:"date"`
	Scores    []ScoreRow   `json:"scoreData"`
	Penalties []PenaltyRow `json:"penaltiesData"`
	Lineups   []LineupRow  `json:"lineupsData"`

	// Source names the file the game was read from; empty for synthetic games.
	Source string `json:"-"`
}

// TeamName resolves a team indicator to the team's name.
func (g *Game) TeamName(s Side) (string, bool) {
	switch s {
	case SideTeam1:
		return g.Team1, true
	case SideTeam2:
		return g.Team2, true
	}
	return "", false
}

// ScoreFor returns the first score row recorded for (jam, period).
func (g *Game) ScoreFor(jam, period int) (ScoreRow, bool) {
	for _, s := range g.Scores {
		if s.Jam == jam && s.Period == period {
			return s, true
		}
	}
	return ScoreRow{}, false
}

// LineupFor returns the first lineup row recorded for (jam, period).
func (g *Game) LineupFor(jam, period int) (LineupRow, bool) {
	for _, l := range g.Lineups {
		if l.Jam == jam && l.Period == period {
			return l, true
		}
	}
	return LineupRow{}, false
}

// ScoreTeam is one team's half of a score row.
type ScoreTeam struct {
	Jammer string `json:"jammer"`
	Points []int  `json:"points"`
	Total  int    `json:"total"`
	Lead   bool   `json:"lead"`
}

// ScoreRow is the score sheet record of one jam.
type ScoreRow struct {
	Jam    int       `json:"jam"`
	Period int       `json:"period"`
	Team1  ScoreTeam `json:"team1"`
	Team2  ScoreTeam `json:"team2"`
}

// Side returns the half of the row belonging to s.
func (r ScoreRow) Side(s Side) ScoreTeam {
	if s == SideTeam2 {
		return r.Team2
	}
	return r.Team1
}

// LineupTeam is one team's lineup for a jam.
//
// The sheet leaves the pivot unset when its "no pivot" box is ticked; in that
// case NoPivot is true and Pivot is empty. Otherwise Pivot holds slot 1.
type LineupTeam struct {
	Lineup  [LineupSize]string `json:"lineup"`
	Pivot   string             `json:"pivot,omitempty"`
	NoPivot bool               `json:"noPivot,omitempty"`
}

// Jammer returns the skater in slot 0.
func (l LineupTeam) Jammer() string { return l.Lineup[0] }

// IsPivot reports whether number is the recorded pivot.
func (l LineupTeam) IsPivot(number string) bool {
	return !l.NoPivot && l.Pivot == number
}

// LineupRow is the lineup sheet record of one jam.
type LineupRow struct {
	Jam    int        `json:"jam"`
	Period int        `json:"period"`
	Team1  LineupTeam `json:"team1"`
	Team2  LineupTeam `json:"team2"`
}

// Side returns the half of the row belonging to s.
func (r LineupRow) Side(s Side) LineupTeam {
	if s == SideTeam2 {
		return r.Team2
	}
	return r.Team1
}

// PenaltyRow is a single penalty from the penalty sheet.
type PenaltyRow struct {
	Team   Side   `json:"team"`
	Period int    `json:"period"`
	Skater string `json:"skater"`
	Code   string `json:"penalty"`
	Jam    int    `json:"jam"`
}
