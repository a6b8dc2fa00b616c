package testgames

import (
	"errors"
	"math/rand"
	"strconv"

	"github.com/okian/jamstats/internal/domain/model"
)

// Generator produces games from a seeded source; the same config always
// yields the same games.
type Generator struct {
	cfg     Config
	rng     *rand.Rand
	rosters map[string][]string
}

// New validates cfg and creates a generator.
func New(cfg Config) (*Generator, error) {
	switch {
	case len(cfg.Teams) < 2:
		return nil, errors.New("testgames: need at least two teams")
	case cfg.RosterSize < model.LineupSize:
		return nil, errors.New("testgames: roster smaller than a lineup")
	case cfg.JamsPerPeriod < 1:
		return nil, errors.New("testgames: need at least one jam per period")
	}
	g := &Generator{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.Seed)), //nolint:gosec // deterministic seed for reproducible fixtures
		rosters: make(map[string][]string, len(cfg.Teams)),
	}
	for _, team := range cfg.Teams {
		g.rosters[team] = g.roster()
	}
	return g, nil
}

// Roster returns the skater numbers generated for team.
func (g *Generator) Roster(team string) []string {
	return append([]string(nil), g.rosters[team]...)
}

// Games generates cfg.Games games.
func (g *Generator) Games() []*model.Game {
	games := make([]*model.Game, 0, g.cfg.Games)
	n := len(g.cfg.Teams)
	for i := 0; i < g.cfg.Games; i++ {
		home := g.cfg.Teams[i%n]
		away := g.cfg.Teams[(i+1+i/n)%n]
		if away == home {
			away = g.cfg.Teams[(i+1)%n]
		}
		date := g.cfg.FirstDate.AddDate(0, 0, i*daysBetweenGames).Format(dateLayout)
		games = append(games, g.game(home, away, date))
	}
	return games
}

// Generate is a convenience wrapper for New(cfg).Games().
func Generate(cfg Config) ([]*model.Game, error) {
	g, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return g.Games(), nil
}

func (g *Generator) roster() []string {
	seen := make(map[string]struct{}, g.cfg.RosterSize)
	out := make([]string, 0, g.cfg.RosterSize)
	for len(out) < g.cfg.RosterSize {
		n := strconv.Itoa(minSkaterNumber + g.rng.Intn(maxSkaterNumber))
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func (g *Generator) game(home, away, date string) *model.Game {
	game := &model.Game{Team1: home, Team2: away, Date: date}
	for period := 1; period <= 2; period++ {
		for jam := 1; jam <= g.cfg.JamsPerPeriod; jam++ {
			game.Lineups = append(game.Lineups, model.LineupRow{
				Jam:    jam,
				Period: period,
				Team1:  g.lineup(home),
				Team2:  g.lineup(away),
			})
			game.Scores = append(game.Scores, g.score(jam, period, game.Lineups[len(game.Lineups)-1]))
		}
	}
	for i := 0; i < g.cfg.PenaltiesPerGame; i++ {
		game.Penalties = append(game.Penalties, g.penalty(game))
	}
	return game
}

func (g *Generator) lineup(team string) model.LineupTeam {
	roster := g.rosters[team]
	perm := g.rng.Perm(len(roster))
	var lt model.LineupTeam
	for i := range lt.Lineup {
		lt.Lineup[i] = roster[perm[i]]
	}
	if g.rng.Intn(percent) < g.cfg.NoPivotPercent {
		lt.NoPivot = true
	} else {
		lt.Pivot = lt.Lineup[1]
	}
	return lt
}

func (g *Generator) score(jam, period int, l model.LineupRow) model.ScoreRow {
	t1, t2 := g.passes(l.Team1.Jammer()), g.passes(l.Team2.Jammer())
	if g.rng.Intn(percent) < leadPercent {
		if g.rng.Intn(2) == 0 {
			t1.Lead = true
		} else {
			t2.Lead = true
		}
	}
	return model.ScoreRow{Jam: jam, Period: period, Team1: t1, Team2: t2}
}

func (g *Generator) passes(jammer string) model.ScoreTeam {
	st := model.ScoreTeam{Jammer: jammer, Points: []int{}}
	for i := g.rng.Intn(maxScoringPasses + 1); i > 0; i-- {
		p := g.rng.Intn(maxPassPoints + 1)
		st.Points = append(st.Points, p)
		st.Total += p
	}
	return st
}

func (g *Generator) penalty(game *model.Game) model.PenaltyRow {
	l := game.Lineups[g.rng.Intn(len(game.Lineups))]
	side := model.SideTeam1
	if g.rng.Intn(2) == 1 {
		side = model.SideTeam2
	}
	team, _ := game.TeamName(side)

	skater := l.Side(side).Lineup[g.rng.Intn(model.LineupSize)]
	if g.rng.Intn(percent) < g.cfg.UnlinedPercent {
		roster := g.rosters[team]
		skater = roster[g.rng.Intn(len(roster))]
	}
	code := model.PenaltyCodes[g.rng.Intn(len(model.PenaltyCodes))]
	return model.PenaltyRow{Team: side, Period: l.Period, Skater: skater, Code: code, Jam: l.Jam}
}
