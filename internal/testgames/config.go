// Package testgames generates deterministic synthetic games for tests and for
// the statbook generator CLI.
package testgames

import "time"

// Config controls the shape of generated games.
type Config struct {
	Teams            []string  // Team names; games pair them round-robin
	Games            int       // Number of games to generate
	JamsPerPeriod    int       // Jams in each of the two periods
	RosterSize       int       // Skaters per team
	PenaltiesPerGame int       // Penalties recorded per game
	NoPivotPercent   int       // Chance a lineup has its "no pivot" box ticked
	UnlinedPercent   int       // Chance a penalty goes to a skater not in the jam's lineup
	Seed             int64     // Seed for the random source
	FirstDate        time.Time // Date of the first game; one game per week after it
}

// DefaultConfig returns a small league suitable for tests.
func DefaultConfig() Config {
	return Config{
		Teams:            []string{"Bay Bombers", "Harbor Hellcats", "River Rollers", "Steel City Sirens"},
		Games:            6,
		JamsPerPeriod:    defaultJamsPerPeriod,
		RosterSize:       defaultRosterSize,
		PenaltiesPerGame: defaultPenaltiesPerGame,
		NoPivotPercent:   defaultNoPivotPercent,
		UnlinedPercent:   defaultUnlinedPercent,
		Seed:             defaultSeed,
		FirstDate:        time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
	}
}
