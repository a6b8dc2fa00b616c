// Package aggregate folds parsed games into the roster accumulators.
//
// Games must be folded one at a time and in a stable order; the aggregator is
// not safe for concurrent use.
package aggregate

import (
	"fmt"

	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/roster"
)

// FoldStats counts what the fold saw, including absorbed anomalies.
type FoldStats struct {
	Games                  int `json:"games"`
	Jams                   int `json:"jams"`
	LineupsWithoutScore    int `json:"lineupsWithoutScore"`
	Penalties              int `json:"penalties"`
	PenaltiesWithoutLineup int `json:"penaltiesWithoutLineup"`
}

// Aggregator applies games to a roster registry.
type Aggregator struct {
	registry *roster.Registry
	stats    FoldStats
}

// New creates an aggregator writing into registry.
func New(registry *roster.Registry) *Aggregator {
	return &Aggregator{registry: registry}
}

// Registry returns the registry the aggregator writes into.
func (a *Aggregator) Registry() *roster.Registry { return a.registry }

// Games returns the number of games folded so far.
func (a *Aggregator) Games() int { return a.stats.Games }

// Stats returns the fold counters so far.
func (a *Aggregator) Stats() FoldStats { return a.stats }

// Fold applies one game: jams first, then penalties. A game that fails
// validation leaves the accumulators untouched.
func (a *Aggregator) Fold(g *model.Game) error {
	if err := validate(g); err != nil {
		return err
	}
	a.stats.Games++
	a.foldJams(g)
	a.foldPenalties(g)
	return nil
}

// FoldAll folds games in order, stopping at the first invalid game.
func (a *Aggregator) FoldAll(games []*model.Game) error {
	for i, g := range games {
		if err := a.Fold(g); err != nil {
			return fmt.Errorf("game %d: %w", i, err)
		}
	}
	return nil
}

func validate(g *model.Game) error {
	if g == nil {
		return ErrNilGame
	}
	for i, p := range g.Penalties {
		if !p.Team.Valid() {
			return fmt.Errorf("%w: penalty %d has team %d", ErrInvalidTeam, i, int(p.Team))
		}
	}
	return nil
}
