package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/jamstats/internal/adapters/repository"
	"github.com/okian/jamstats/internal/adapters/statbook"
	service "github.com/okian/jamstats/internal/app"
	"github.com/okian/jamstats/internal/domain/aggregate"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/numeric"
	"github.com/okian/jamstats/internal/domain/postprocess"
	"github.com/okian/jamstats/internal/domain/roster"
	"github.com/okian/jamstats/internal/testgames"
	"github.com/okian/jamstats/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		panic(err)
	}
}

type mockParser struct {
	games map[string]*model.Game
	fail  string
}

func (m *mockParser) Parse(_ context.Context, path string) (*model.Game, error) {
	if path == m.fail {
		return nil, errors.New("corrupt workbook")
	}
	g, ok := m.games[path]
	if !ok {
		return nil, fmt.Errorf("unknown path %s", path)
	}
	return g, nil
}

func foldDirect(games []*model.Game) model.Output {
	reg := roster.NewRegistry()
	agg := aggregate.New(reg)
	So(agg.FoldAll(games), ShouldBeNil)
	return postprocess.Process(reg, agg.Games())
}

func touch(path string) {
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		panic(err)
	}
}

func TestDiscoverFiles(t *testing.T) {
	Convey("Given a data directory with statbooks and other files", t, func() {
		dir := t.TempDir()
		touch(filepath.Join(dir, "STATS-2024-03-09.xlsx"))
		touch(filepath.Join(dir, "STATS-2024-03-02.xlsx"))
		touch(filepath.Join(dir, "notes.txt"))
		So(os.Mkdir(filepath.Join(dir, "STATS-archive"), 0o755), ShouldBeNil)

		Convey("When files are discovered by prefix", func() {
			paths, err := service.DiscoverFiles(dir, "STATS")

			Convey("Then only regular files with the prefix are returned in name order", func() {
				So(err, ShouldBeNil)
				So(paths, ShouldResemble, []string{
					filepath.Join(dir, "STATS-2024-03-02.xlsx"),
					filepath.Join(dir, "STATS-2024-03-09.xlsx"),
				})
			})
		})

		Convey("When the directory does not exist", func() {
			_, err := service.DiscoverFiles(filepath.Join(dir, "missing"), "STATS")

			Convey("Then a discovery error is returned", func() {
				So(errors.Is(err, service.ErrDiscover), ShouldBeTrue)
			})
		})
	})
}

func TestService_Run(t *testing.T) {
	Convey("Given a directory of generated statbooks", t, func() {
		ctx := context.Background()
		cfg := testgames.DefaultConfig()
		games, err := testgames.Generate(cfg)
		So(err, ShouldBeNil)

		dir := t.TempDir()
		for i, g := range games {
			So(statbook.Write(filepath.Join(dir, fmt.Sprintf("STATS-%02d.xlsx", i)), g), ShouldBeNil)
		}
		paths, err := service.DiscoverFiles(dir, "STATS")
		So(err, ShouldBeNil)
		So(paths, ShouldHaveLength, cfg.Games)

		store := repository.NewSnapshotStore()
		svc := service.New(service.WithParseWorkers(3), service.WithQueueSize(2), service.WithStore(store))

		Convey("When the service runs over them", func() {
			out, err := svc.Run(ctx, paths)
			So(err, ShouldBeNil)

			Convey("Then every game is aggregated", func() {
				So(out.Total.Games, ShouldEqual, cfg.Games)
				So(out.Teams, ShouldHaveLength, len(cfg.Teams))
				So(len(out.Jammers)+len(out.Blockers), ShouldBeGreaterThanOrEqualTo, len(out.Skaters))
			})

			Convey("Then the output matches folding the games directly", func() {
				direct := foldDirect(games)
				So(out.Skaters, ShouldHaveLength, len(direct.Skaters))
				for i, s := range out.Skaters {
					d := direct.Skaters[i]
					So(s.Team, ShouldEqual, d.Team)
					So(s.Number, ShouldEqual, d.Number)
					So(s.Jams, ShouldEqual, d.Jams)
					So(s.Vtars, ShouldResemble, d.Vtars)
					So(s.PenaltyTotal, ShouldEqual, d.PenaltyTotal)
				}
			})

			Convey("Then the snapshot is published", func() {
				info, err := svc.Info(ctx)
				So(err, ShouldBeNil)
				So(info.Games, ShouldEqual, cfg.Games)
				So(info.RunID, ShouldNotBeEmpty)

				last, err := svc.LastRun()
				So(err, ShouldBeNil)
				So(last.RunID, ShouldEqual, info.RunID)
				So(last.Files, ShouldEqual, cfg.Games)
				So(last.Stats.Games, ShouldEqual, cfg.Games)
				So(last.Stats.Jams, ShouldEqual, cfg.Games*2*cfg.JamsPerPeriod)

				entries, err := svc.TopN(ctx, roster.SetAll, repository.MetricAvtar, 3)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
				So(entries[0].Rank, ShouldEqual, 1)
			})

			Convey("Then stats report the run", func() {
				stats := svc.GetStats()
				So(stats["runs"], ShouldEqual, 1)
				So(stats["parseWorkers"], ShouldEqual, 3)
			})
		})
	})

	Convey("Given a parser that fails on one file", t, func() {
		ctx := context.Background()
		games, err := testgames.Generate(testgames.DefaultConfig())
		So(err, ShouldBeNil)
		parser := &mockParser{games: map[string]*model.Game{"a": games[0], "b": games[1]}, fail: "b"}
		svc := service.New(service.WithParser(parser))

		Convey("When the service runs", func() {
			_, err := svc.Run(ctx, []string{"a", "b"})

			Convey("Then the run fails naming the file and nothing is published", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "parse b")
				_, err = svc.Output(ctx)
				So(errors.Is(err, repository.ErrNoSnapshot), ShouldBeTrue)
				_, err = svc.LastRun()
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})

	Convey("Given a number alias", t, func() {
		ctx := context.Background()
		games, err := testgames.Generate(testgames.DefaultConfig())
		So(err, ShouldBeNil)
		g := games[0]
		raw := g.Lineups[0].Team1.Lineup[0]
		parser := &mockParser{games: map[string]*model.Game{"a": g}}

		Convey("When the alias maps a number to a new one", func() {
			svc := service.New(
				service.WithParser(parser),
				service.WithAliases([]roster.Alias{{Team: g.Team1, RawNumber: raw, RealNumber: "X" + raw}}),
			)
			_, err := svc.Run(ctx, []string{"a"})
			So(err, ShouldBeNil)

			Convey("Then the skater is reported under the real number", func() {
				_, err := svc.Skater(ctx, roster.SetAll, g.Team1, "X"+raw)
				So(err, ShouldBeNil)
				_, err = svc.Skater(ctx, roster.SetAll, g.Team1, raw)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the alias is incomplete", func() {
			svc := service.New(
				service.WithParser(parser),
				service.WithAliases([]roster.Alias{{Team: g.Team1, RawNumber: raw}}),
			)
			_, err := svc.Run(ctx, []string{"a"})

			Convey("Then the run is rejected", func() {
				So(errors.Is(err, roster.ErrInvalidAlias), ShouldBeTrue)
			})
		})
	})

	Convey("Given no files", t, func() {
		svc := service.New(service.WithParser(&mockParser{}))

		Convey("Then the run publishes an empty output", func() {
			out, err := svc.Run(context.Background(), nil)
			So(err, ShouldBeNil)
			So(out.Total.Games, ShouldEqual, 0)
			So(out.Skaters, ShouldBeEmpty)
		})
	})
}

func TestWriteOutput(t *testing.T) {
	Convey("Given an output with an undefined metric", t, func() {
		path := filepath.Join(t.TempDir(), "out", "output.json")
		out := model.Output{
			Total: model.Total{Games: 1},
			Skaters: []model.SkaterProcessed{{
				SkaterTotals: model.SkaterTotals{Team: "A", Number: "1", Vtars: []float64{}, Penalties: []string{}},
				JLP:          numeric.Metric(numeric.Mean(nil)),
			}},
		}

		Convey("When it is written", func() {
			So(service.WriteOutput(path, out), ShouldBeNil)

			Convey("Then the file is indented JSON with null for the metric", func() {
				raw, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(raw), ShouldContainSubstring, "\n  \"total\"")
				So(string(raw), ShouldContainSubstring, `"jlp": null`)

				var decoded model.Output
				So(json.Unmarshal(raw, &decoded), ShouldBeNil)
				So(decoded.Total.Games, ShouldEqual, 1)
			})
		})
	})
}
