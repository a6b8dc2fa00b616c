package roster

import "github.com/okian/jamstats/internal/domain/model"

// Skater accumulates one skater's counters within one skater-set.
// It is only mutated through its Add* methods.
type Skater struct {
	team   string
	number string

	games         int
	jams          int
	pointsFor     int
	pointsAgainst int
	vtars         []float64
	jammers       int
	pivots        int
	jammerLeads   int
	penaltyTotal  int
	penalties     []string
}

// Team returns the team name of the skater.
func (s *Skater) Team() string { return s.team }

// Number returns the alias-resolved skater number.
func (s *Skater) Number() string { return s.number }

// Jams returns the number of jams recorded so far.
func (s *Skater) Jams() int { return s.jams }

// AddGame counts one game played.
func (s *Skater) AddGame() { s.games++ }

// AddJam records one jam on track with its points and VTAR.
func (s *Skater) AddJam(pointsFor, pointsAgainst int, vtar float64) {
	s.jams++
	s.pointsFor += pointsFor
	s.pointsAgainst += pointsAgainst
	s.vtars = append(s.vtars, vtar)
}

// AddPivot counts one jam as pivot.
func (s *Skater) AddPivot() { s.pivots++ }

// AddJammer counts one jam as jammer, and a lead when lead is set.
func (s *Skater) AddJammer(lead bool) {
	s.jammers++
	if lead {
		s.jammerLeads++
	}
}

// AddPenalty records one penalty with its code.
func (s *Skater) AddPenalty(code string) {
	s.penaltyTotal++
	s.penalties = append(s.penalties, code)
}

// Totals returns a copy of the accumulated counters.
func (s *Skater) Totals() model.SkaterTotals {
	return model.SkaterTotals{
		Team:          s.team,
		Number:        s.number,
		Games:         s.games,
		Jams:          s.jams,
		PointsFor:     s.pointsFor,
		PointsAgainst: s.pointsAgainst,
		Vtars:         append(make([]float64, 0, len(s.vtars)), s.vtars...),
		Jammers:       s.jammers,
		Pivots:        s.pivots,
		JammerLeads:   s.jammerLeads,
		PenaltyTotal:  s.penaltyTotal,
		Penalties:     append(make([]string, 0, len(s.penalties)), s.penalties...),
	}
}

// Team accumulates one team's counters.
type Team struct {
	name string

	games         int
	jams          int
	pointsFor     int
	pointsAgainst int
	penaltyTotal  int
	penalties     []string
}

// Name returns the team name.
func (t *Team) Name() string { return t.name }

// AddGame counts one game played.
func (t *Team) AddGame() { t.games++ }

// AddJam records one jam with its points.
func (t *Team) AddJam(pointsFor, pointsAgainst int) {
	t.jams++
	t.pointsFor += pointsFor
	t.pointsAgainst += pointsAgainst
}

// AddPenalty records one penalty with its code.
func (t *Team) AddPenalty(code string) {
	t.penaltyTotal++
	t.penalties = append(t.penalties, code)
}

// Totals returns a copy of the accumulated counters.
func (t *Team) Totals() model.TeamTotals {
	return model.TeamTotals{
		Name:          t.name,
		Games:         t.games,
		Jams:          t.jams,
		PointsFor:     t.pointsFor,
		PointsAgainst: t.pointsAgainst,
		PenaltyTotal:  t.penaltyTotal,
		Penalties:     append(make([]string, 0, len(t.penalties)), t.penalties...),
	}
}
