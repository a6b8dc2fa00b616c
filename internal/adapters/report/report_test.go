package report_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/okian/jamstats/internal/adapters/report"
	"github.com/okian/jamstats/internal/adapters/repository"
	"github.com/okian/jamstats/internal/domain/aggregate"
	"github.com/okian/jamstats/internal/domain/postprocess"
	"github.com/okian/jamstats/internal/domain/roster"
	"github.com/okian/jamstats/internal/testgames"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSummary(t *testing.T) {
	Convey("Given a published snapshot of a generated league", t, func() {
		ctx := context.Background()
		cfg := testgames.DefaultConfig()
		games, err := testgames.Generate(cfg)
		So(err, ShouldBeNil)

		reg := roster.NewRegistry()
		agg := aggregate.New(reg)
		So(agg.FoldAll(games), ShouldBeNil)
		store := repository.NewSnapshotStore()
		So(store.Publish(ctx, "run-42", postprocess.Process(reg, agg.Games())), ShouldBeNil)

		Convey("When the summary is rendered", func() {
			var buf bytes.Buffer
			err := report.Summary(ctx, &buf, store, 5)

			Convey("Then it holds the run line and every table", func() {
				So(err, ShouldBeNil)
				out := buf.String()
				So(out, ShouldContainSubstring, "Run run-42: 6 games, 4 teams")
				So(out, ShouldContainSubstring, "Skaters by AVTAR")
				So(out, ShouldContainSubstring, "Jammers by lead %")
				So(out, ShouldContainSubstring, "Blockers by AVTAR")
				for _, team := range cfg.Teams {
					So(out, ShouldContainSubstring, team)
				}
			})
		})
	})

	Convey("Given an empty store", t, func() {
		Convey("Then the summary reports the missing snapshot", func() {
			err := report.Summary(context.Background(), &bytes.Buffer{}, repository.NewSnapshotStore(), 5)
			So(errors.Is(err, repository.ErrNoSnapshot), ShouldBeTrue)
		})
	})
}
