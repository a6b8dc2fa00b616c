package repository

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/roster"
	"github.com/okian/jamstats/pkg/metrics"
)

const defaultMaxLimit = 100

type skaterKey struct {
	team   string
	number string
}

type boardKey struct {
	set    roster.Set
	metric Metric
}

// snapshot is an immutable, indexed view of one output.
type snapshot struct {
	info   Info
	out    model.Output
	sets   [3][]model.SkaterProcessed
	byKey  [3]map[skaterKey]int
	teams  map[string]int
	boards map[boardKey][]Entry
}

// SnapshotStore is an in-memory Store. Publish swaps the whole snapshot, so
// readers never see a partially built one.
type SnapshotStore struct {
	maxLimit int
	current  atomic.Pointer[snapshot]
}

// NewSnapshotStore constructs an empty store with configuration options.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{maxLimit: defaultMaxLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish indexes out and makes it the current snapshot.
func (s *SnapshotStore) Publish(ctx context.Context, runID string, out model.Output) error {
	snap := &snapshot{
		info: Info{
			RunID:     runID,
			Games:     out.Total.Games,
			Skaters:   len(out.Skaters),
			Teams:     len(out.Teams),
			Published: time.Now().UTC(),
		},
		out:    out,
		sets:   [3][]model.SkaterProcessed{out.Skaters, out.Jammers, out.Blockers},
		teams:  make(map[string]int, len(out.Teams)),
		boards: make(map[boardKey][]Entry, len(roster.Sets)*len(Metrics)),
	}
	for _, set := range roster.Sets {
		idx := make(map[skaterKey]int, len(snap.sets[set]))
		for i, sk := range snap.sets[set] {
			idx[skaterKey{team: sk.Team, number: sk.Number}] = i
		}
		snap.byKey[set] = idx
		for _, m := range Metrics {
			snap.boards[boardKey{set: set, metric: m}] = buildBoard(snap.sets[set], m)
		}
	}
	for i, t := range out.Teams {
		snap.teams[t.Name] = i
	}

	s.current.Store(snap)
	metrics.RecordSnapshotUpdate(float64(snap.info.Published.Unix()))
	return nil
}

func (s *SnapshotStore) load() (*snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		metrics.RecordErrorByComponent("repository", "no_snapshot")
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

func observeQuery(start time.Time) {
	metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
}

// Info implements Store.Info.
func (s *SnapshotStore) Info(ctx context.Context) (Info, error) {
	snap, err := s.load()
	if err != nil {
		return Info{}, err
	}
	return snap.info, nil
}

// Output implements Store.Output. The returned value shares its slices with
// the snapshot and must not be modified.
func (s *SnapshotStore) Output(ctx context.Context) (model.Output, error) {
	snap, err := s.load()
	if err != nil {
		return model.Output{}, err
	}
	return snap.out, nil
}

// checkSet rejects sets outside roster.Sets.
func checkSet(set roster.Set) error {
	if set < 0 || int(set) >= len(roster.Sets) {
		metrics.RecordErrorByComponent("repository", "unknown_set")
		return fmt.Errorf("%w: %d", roster.ErrUnknownSet, int(set))
	}
	return nil
}

// Skaters implements Store.Skaters.
func (s *SnapshotStore) Skaters(ctx context.Context, set roster.Set, team string) ([]model.SkaterProcessed, error) {
	defer observeQuery(time.Now())

	if err := checkSet(set); err != nil {
		return nil, err
	}
	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	all := snap.sets[set]
	out := make([]model.SkaterProcessed, 0, len(all))
	for _, sk := range all {
		if team == "" || sk.Team == team {
			out = append(out, sk)
		}
	}
	return out, nil
}

// Skater implements Store.Skater.
func (s *SnapshotStore) Skater(ctx context.Context, set roster.Set, team, number string) (model.SkaterProcessed, error) {
	defer observeQuery(time.Now())

	if err := checkSet(set); err != nil {
		return model.SkaterProcessed{}, err
	}
	snap, err := s.load()
	if err != nil {
		return model.SkaterProcessed{}, err
	}
	i, ok := snap.byKey[set][skaterKey{team: team, number: number}]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.SkaterProcessed{}, ErrNotFound
	}
	return snap.sets[set][i], nil
}

// Teams implements Store.Teams.
func (s *SnapshotStore) Teams(ctx context.Context) ([]model.TeamProcessed, error) {
	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	return append([]model.TeamProcessed(nil), snap.out.Teams...), nil
}

// Team implements Store.Team.
func (s *SnapshotStore) Team(ctx context.Context, name string) (model.TeamProcessed, error) {
	snap, err := s.load()
	if err != nil {
		return model.TeamProcessed{}, err
	}
	i, ok := snap.teams[name]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.TeamProcessed{}, ErrNotFound
	}
	return snap.out.Teams[i], nil
}

// TopN implements Store.TopN. Skaters whose metric is undefined are left out.
func (s *SnapshotStore) TopN(ctx context.Context, set roster.Set, metric Metric, n int) ([]Entry, error) {
	defer observeQuery(time.Now())

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	if err := checkSet(set); err != nil {
		return nil, err
	}
	if n > s.maxLimit {
		n = s.maxLimit
	}
	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	board, ok := snap.boards[boardKey{set: set, metric: metric}]
	if !ok {
		metrics.RecordErrorByComponent("repository", "unknown_metric")
		return nil, ErrUnknownMetric
	}
	if n > len(board) {
		n = len(board)
	}
	return append([]Entry(nil), board[:n]...), nil
}

// buildBoard ranks skaters by metric desc, then team and number asc.
func buildBoard(skaters []model.SkaterProcessed, m Metric) []Entry {
	board := make([]Entry, 0, len(skaters))
	for i := range skaters {
		v, ok := m.value(&skaters[i])
		if !ok {
			continue
		}
		board = append(board, Entry{
			Team:   skaters[i].Team,
			Number: skaters[i].Number,
			Value:  v,
			Jams:   skaters[i].Jams,
		})
	}
	sortEntries(board)
	assignRanksWithTies(board)
	return board
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		if entries[i].Team != entries[j].Team {
			return entries[i].Team < entries[j].Team
		}
		return entries[i].Number < entries[j].Number
	})
}

// assignRanksWithTies gives equal values the same rank; the next distinct
// value gets the next consecutive rank.
func assignRanksWithTies(entries []Entry) {
	rank := 0
	for i := range entries {
		if i == 0 || entries[i].Value != entries[i-1].Value {
			rank++
		}
		entries[i].Rank = rank
	}
}
