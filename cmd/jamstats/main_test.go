package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/jamstats/internal/adapters/statbook"
	app "github.com/okian/jamstats/internal/app"
	"github.com/okian/jamstats/internal/config"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/testgames"
	"github.com/okian/jamstats/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		panic(err)
	}
}

func writeLeague(dir string, games []*model.Game) {
	for i, g := range games {
		name := fmt.Sprintf("STATS-%s-%02d.xlsx", g.Date, i)
		if err := statbook.Write(filepath.Join(dir, name), g); err != nil {
			panic(err)
		}
	}
}

func TestRun(t *testing.T) {
	convey.Convey("Given a data directory of statbooks", t, func() {
		games, err := testgames.Generate(testgames.DefaultConfig())
		convey.So(err, convey.ShouldBeNil)

		dir := t.TempDir()
		writeLeague(dir, games)

		cfg := config.New()
		cfg.DataDir = dir
		cfg.OutputPath = filepath.Join(dir, "out", "output.json")
		cfg.ParseWorkers = 2
		cfg.SummaryLimit = 5

		convey.Convey("When a batch run completes", func() {
			var stdout bytes.Buffer
			err := run(context.Background(), cfg, &stdout)

			convey.Convey("Then the output file holds every game", func() {
				convey.So(err, convey.ShouldBeNil)
				raw, err := os.ReadFile(cfg.OutputPath)
				convey.So(err, convey.ShouldBeNil)
				var out model.Output
				convey.So(json.Unmarshal(raw, &out), convey.ShouldBeNil)
				convey.So(out.Total.Games, convey.ShouldEqual, len(games))
				convey.So(out.Teams, convey.ShouldHaveLength, 4)
			})

			convey.Convey("Then the summary is printed", func() {
				convey.So(stdout.String(), convey.ShouldContainSubstring, "Skaters by AVTAR")
			})
		})

		convey.Convey("When the summary is disabled", func() {
			cfg.Summary = false
			var stdout bytes.Buffer
			err := run(context.Background(), cfg, &stdout)

			convey.Convey("Then nothing is printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stdout.Len(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When serving until the context ends", func() {
			cfg.Addr = "127.0.0.1:0"
			svc := app.New(app.WithParseWorkers(2))
			paths, err := app.DiscoverFiles(cfg.DataDir, cfg.FilePrefix)
			convey.So(err, convey.ShouldBeNil)
			_, err = svc.Run(context.Background(), paths)
			convey.So(err, convey.ShouldBeNil)

			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()
			err = serve(ctx, cfg, svc, logger.Get())

			convey.Convey("Then the server shuts down cleanly", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the data directory is missing", func() {
			cfg.DataDir = filepath.Join(dir, "missing")
			err := run(context.Background(), cfg, io.Discard)

			convey.Convey("Then the run fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When a statbook is corrupt", func() {
			convey.So(os.WriteFile(filepath.Join(dir, "STATS-zz-broken.xlsx"), []byte("not a workbook"), 0o644), convey.ShouldBeNil)
			err := run(context.Background(), cfg, io.Discard)

			convey.Convey("Then the run fails naming the file", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "STATS-zz-broken.xlsx")
				_, statErr := os.Stat(cfg.OutputPath)
				convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
			})
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("When the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.Convey("Then it returns without panicking", func() {
				convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When metrics are updated directly", func() {
			convey.Convey("Then it should not panic", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})
	})
}
