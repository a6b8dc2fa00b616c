// Package roster deduplicates skaters and teams across games and owns their
// running accumulators.
package roster

import "fmt"

// Set selects one of the three parallel skater-sets.
type Set int

// Skater-sets. A skater may be present in all three with different totals.
const (
	SetAll Set = iota
	SetJammers
	SetBlockers
)

// Sets lists every skater-set in output order.
var Sets = []Set{SetAll, SetJammers, SetBlockers}

// String returns the name used for the set in output and metrics.
func (s Set) String() string {
	switch s {
	case SetAll:
		return "skaters"
	case SetJammers:
		return "jammers"
	case SetBlockers:
		return "blockers"
	}
	return fmt.Sprintf("set(%d)", int(s))
}

// ParseSet maps a set name back to a Set. "all" is accepted for SetAll.
func ParseSet(name string) (Set, error) {
	switch name {
	case "", "all", "skaters":
		return SetAll, nil
	case "jammers":
		return SetJammers, nil
	case "blockers":
		return SetBlockers, nil
	}
	return SetAll, fmt.Errorf("%w: %q", ErrUnknownSet, name)
}

type skaterKey struct {
	team   string
	number string
}

// skaterSet keeps accumulators by key and in registration order.
type skaterSet struct {
	byKey map[skaterKey]*Skater
	order []*Skater
}

func newSkaterSet() *skaterSet {
	return &skaterSet{byKey: make(map[skaterKey]*Skater)}
}

// Registry hands out one accumulator per (set, team, resolved number) and one
// per team name. It is not safe for concurrent use; the fold is sequential.
type Registry struct {
	aliases AliasTable
	sets    [3]*skaterSet

	teams     map[string]*Team
	teamOrder []*Team
}

// NewRegistry creates an empty registry with configuration options.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		teams: make(map[string]*Team),
	}
	for i := range r.sets {
		r.sets[i] = newSkaterSet()
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve applies the alias table to a raw skater number.
func (r *Registry) Resolve(team, rawNumber string) string {
	return r.aliases.Resolve(team, rawNumber)
}

// Skater returns the accumulator for the skater, creating it on first use.
func (r *Registry) Skater(set Set, team, rawNumber string) *Skater {
	ss := r.set(set)
	key := skaterKey{team: team, number: r.Resolve(team, rawNumber)}
	if s, ok := ss.byKey[key]; ok {
		return s
	}
	s := &Skater{team: key.team, number: key.number}
	ss.byKey[key] = s
	ss.order = append(ss.order, s)
	return s
}

// Team returns the accumulator for the team, creating it on first use.
func (r *Registry) Team(name string) *Team {
	if t, ok := r.teams[name]; ok {
		return t
	}
	t := &Team{name: name}
	r.teams[name] = t
	r.teamOrder = append(r.teamOrder, t)
	return t
}

// Skaters lists the accumulators of a set in registration order.
func (r *Registry) Skaters(set Set) []*Skater {
	ss := r.set(set)
	out := make([]*Skater, len(ss.order))
	copy(out, ss.order)
	return out
}

// Teams lists the team accumulators in registration order.
func (r *Registry) Teams() []*Team {
	out := make([]*Team, len(r.teamOrder))
	copy(out, r.teamOrder)
	return out
}

// Count returns the number of skaters registered in a set.
func (r *Registry) Count(set Set) int {
	return len(r.set(set).order)
}

func (r *Registry) set(set Set) *skaterSet {
	if set < SetAll || set > SetBlockers {
		panic(fmt.Sprintf("roster: unknown skater set %d", int(set)))
	}
	return r.sets[set]
}
