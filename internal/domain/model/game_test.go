package model_test

import (
	"testing"

	model "github.com/okian/jamstats/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestGameLookups(t *testing.T) {
	convey.Convey("Given a game with duplicated jam records", t, func() {
		g := &model.Game{
			Team1: "Rollers",
			Team2: "Wheelers",
			Scores: []model.ScoreRow{
				{Jam: 1, Period: 1, Team1: model.ScoreTeam{Total: 4}},
				{Jam: 1, Period: 2, Team1: model.ScoreTeam{Total: 9}},
				{Jam: 1, Period: 1, Team1: model.ScoreTeam{Total: 7}},
			},
			Lineups: []model.LineupRow{
				{Jam: 2, Period: 1, Team2: model.LineupTeam{Lineup: [5]string{"12"}}},
			},
		}

		convey.Convey("When looking up a score row", func() {
			row, ok := g.ScoreFor(1, 1)

			convey.Convey("Then the first match wins", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(row.Team1.Total, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When the jam is absent", func() {
			_, okScore := g.ScoreFor(3, 1)
			_, okLineup := g.LineupFor(1, 1)

			convey.Convey("Then lookups report a miss", func() {
				convey.So(okScore, convey.ShouldBeFalse)
				convey.So(okLineup, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When resolving team indicators", func() {
			n1, ok1 := g.TeamName(model.SideTeam1)
			n2, ok2 := g.TeamName(model.SideTeam2)
			_, ok3 := g.TeamName(model.Side(3))

			convey.Convey("Then 1 and 2 map to the team names", func() {
				convey.So(ok1 && ok2, convey.ShouldBeTrue)
				convey.So(n1, convey.ShouldEqual, "Rollers")
				convey.So(n2, convey.ShouldEqual, "Wheelers")
				convey.So(ok3, convey.ShouldBeFalse)
				convey.So(model.SideTeam1.Opponent(), convey.ShouldEqual, model.SideTeam2)
			})
		})

		convey.Convey("When reading a lineup side", func() {
			row, ok := g.LineupFor(2, 1)

			convey.Convey("Then the jammer is slot 0", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(row.Side(model.SideTeam2).Jammer(), convey.ShouldEqual, "12")
			})
		})
	})
}

func TestLineupPivot(t *testing.T) {
	convey.Convey("Given lineups with and without a pivot", t, func() {
		withPivot := model.LineupTeam{Lineup: [5]string{"1", "2", "3", "4", "5"}, Pivot: "2"}
		noPivot := model.LineupTeam{Lineup: [5]string{"1", "", "3", "4", "5"}, NoPivot: true}

		convey.So(withPivot.IsPivot("2"), convey.ShouldBeTrue)
		convey.So(withPivot.IsPivot("3"), convey.ShouldBeFalse)
		convey.So(noPivot.IsPivot(""), convey.ShouldBeFalse)
	})
}

func TestPenaltyCodes(t *testing.T) {
	convey.Convey("Given the penalty code table", t, func() {
		convey.So(len(model.PenaltyCodes), convey.ShouldEqual, 14)
		convey.So(model.PenaltyCodes[0], convey.ShouldEqual, "A")
		convey.So(model.PenaltyCodes[13], convey.ShouldEqual, "X")
	})
}
