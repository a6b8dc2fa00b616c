package postprocess_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/jamstats/internal/domain/aggregate"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/postprocess"
	"github.com/okian/jamstats/internal/domain/roster"
	"github.com/okian/jamstats/internal/testgames"
	. "github.com/smartystreets/goconvey/convey"
)

func twoJamGame() *model.Game {
	a := model.LineupTeam{Lineup: [5]string{"1", "2", "3", "4", "5"}, Pivot: "2"}
	b := model.LineupTeam{Lineup: [5]string{"11", "12", "13", "14", "15"}, NoPivot: true}
	return &model.Game{
		Team1: "A",
		Team2: "B",
		Scores: []model.ScoreRow{
			{Jam: 1, Period: 1, Team1: model.ScoreTeam{Jammer: "1", Total: 4, Lead: true}, Team2: model.ScoreTeam{Jammer: "11"}},
			{Jam: 2, Period: 1, Team1: model.ScoreTeam{Jammer: "1"}, Team2: model.ScoreTeam{Jammer: "11", Total: 6, Lead: true}},
		},
		Lineups: []model.LineupRow{
			{Jam: 1, Period: 1, Team1: a, Team2: b},
			{Jam: 2, Period: 1, Team1: a, Team2: b},
		},
	}
}

func find(skaters []model.SkaterProcessed, team, number string) model.SkaterProcessed {
	for _, s := range skaters {
		if s.Team == team && s.Number == number {
			return s
		}
	}
	return model.SkaterProcessed{}
}

func process(games ...*model.Game) model.Output {
	reg := roster.NewRegistry()
	agg := aggregate.New(reg)
	So(agg.FoldAll(games), ShouldBeNil)
	return postprocess.Process(reg, agg.Games())
}

func TestSkaters(t *testing.T) {
	Convey("Given the two jam game", t, func() {
		out := process(twoJamGame())

		Convey("Then the jammer's statistics are derived", func() {
			s := find(out.Skaters, "A", "1")
			So(s.Avg.Float(), ShouldEqual, -1)
			So(s.Avtar.Float(), ShouldEqual, 0)
			So(s.VtarStddev.Float(), ShouldEqual, 5)
			So(s.JLP.Float(), ShouldEqual, 50)
			So(s.PPJP.Float(), ShouldEqual, 0)
			So(s.Positions, ShouldResemble, [3]int{2, 0, 0})
		})

		Convey("Then positions add up to jams", func() {
			for _, s := range out.Skaters {
				So(s.Positions[0]+s.Positions[1]+s.Positions[2], ShouldEqual, s.Jams)
			}
			So(find(out.Skaters, "A", "2").Positions, ShouldResemble, [3]int{0, 2, 0})
			So(find(out.Skaters, "B", "12").Positions, ShouldResemble, [3]int{0, 0, 2})
		})

		Convey("Then variability compares against teammates", func() {
			So(find(out.Skaters, "A", "3").Variability.Float(), ShouldEqual, 100)
			So(find(out.Blockers, "B", "14").Variability.Float(), ShouldEqual, 100)
		})

		Convey("Then a skater who never jammed has no lead percentage", func() {
			s := find(out.Blockers, "A", "2")
			So(s.JLP.Valid(), ShouldBeFalse)

			raw, err := json.Marshal(s)
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"jlp":null`)
		})

		Convey("Then each set is ordered by team and number", func() {
			So(out.Total.Games, ShouldEqual, 1)
			So(out.Skaters, ShouldHaveLength, 10)
			So(out.Jammers, ShouldHaveLength, 2)
			So(out.Blockers, ShouldHaveLength, 8)
			So(out.Skaters[0].Team, ShouldEqual, "A")
			So(out.Skaters[0].Number, ShouldEqual, "1")
			So(out.Skaters[9].Team, ShouldEqual, "B")
			So(out.Skaters[9].Number, ShouldEqual, "15")
		})
	})

	Convey("Given a teammate who was penalized but skated no jams", t, func() {
		g := twoJamGame()
		g.Penalties = []model.PenaltyRow{{Team: model.SideTeam1, Period: 1, Jam: 1, Skater: "99", Code: "B"}}
		out := process(g)

		Convey("Then the teammate's own deviation and variability stay undefined", func() {
			s := find(out.Skaters, "A", "99")
			So(s.Number, ShouldEqual, "99")
			So(s.Jams, ShouldEqual, 0)
			So(s.VtarStddev.Valid(), ShouldBeFalse)
			So(s.Variability.Valid(), ShouldBeFalse)
			So(find(out.Blockers, "A", "99").Variability.Valid(), ShouldBeFalse)
		})

		Convey("Then the undefined deviation counts as zero in the team mean", func() {
			So(find(out.Skaters, "A", "3").Variability.Float(), ShouldEqual, 120)
			So(find(out.Blockers, "A", "3").Variability.Float(), ShouldEqual, 125)
		})

		Convey("Then the other team is unaffected", func() {
			So(find(out.Skaters, "B", "13").Variability.Float(), ShouldEqual, 100)
			So(find(out.Blockers, "B", "14").Variability.Float(), ShouldEqual, 100)
		})
	})

	Convey("Given a skater with penalties but no jams", t, func() {
		out := postprocess.Skaters([]model.SkaterTotals{
			{Team: "A", Number: "7", PenaltyTotal: 1, Penalties: []string{"B"}, Vtars: []float64{}},
		})

		Convey("Then rates are undefined instead of failing", func() {
			So(out, ShouldHaveLength, 1)
			So(out[0].Avg.Valid(), ShouldBeFalse)
			So(out[0].Avtar.Valid(), ShouldBeFalse)
			So(out[0].PPJP.Valid(), ShouldBeFalse)
			So(out[0].Variability.Valid(), ShouldBeFalse)
		})
	})
}

func repeat(code string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = code
	}
	return out
}

func TestTeams(t *testing.T) {
	Convey("Given two teams with skewed penalty mixes", t, func() {
		a := model.TeamTotals{Name: "A", Games: 2, Jams: 10, Penalties: append(repeat("B", 6), repeat("D", 5)...)}
		a.PenaltyTotal = len(a.Penalties)
		b := model.TeamTotals{Name: "B", Games: 2, Jams: 20, Penalties: append(repeat("B", 3), repeat("C", 7)...)}
		b.PenaltyTotal = len(b.Penalties)

		out := postprocess.Teams([]model.TeamTotals{a, b}, 2)

		Convey("Then teams keep their order and get a penalty rate", func() {
			So(out, ShouldHaveLength, 2)
			So(out[0].Name, ShouldEqual, "A")
			So(out[0].PPJP.Float(), ShouldEqual, 110)
			So(out[1].PPJP.Float(), ShouldEqual, 50)
		})

		Convey("Then codes used five times or fewer are dropped", func() {
			So(out[0].PenaltyTendencies, ShouldHaveLength, 1)
			So(out[0].PenaltyTendencies[0].Penalty, ShouldEqual, "B")
			So(out[1].PenaltyTendencies, ShouldHaveLength, 1)
			So(out[1].PenaltyTendencies[0].Penalty, ShouldEqual, "C")
		})

		Convey("Then tendencies compare against the league", func() {
			pt := out[0].PenaltyTendencies[0]
			So(pt.TeamAmount, ShouldEqual, 6)
			So(pt.TeamRatio.Float(), ShouldEqual, 0.545)
			So(pt.AverageRatio.Float(), ShouldEqual, 0.429)
			So(pt.TotalRatio.Float(), ShouldEqual, 0.667)
			So(pt.Tendency.Float(), ShouldEqual, 133)
			So(pt.NormalizedTendency.Float(), ShouldEqual, 127)

			pt = out[1].PenaltyTendencies[0]
			So(pt.TotalRatio.Float(), ShouldEqual, 1)
			So(pt.Tendency.Float(), ShouldEqual, 200)
			So(pt.NormalizedTendency.Float(), ShouldEqual, 210)
		})
	})

	Convey("Given a team without enough penalties", t, func() {
		out := postprocess.Teams([]model.TeamTotals{{Name: "A", Games: 1, Jams: 3, Penalties: []string{"B"}, PenaltyTotal: 1}}, 1)

		Convey("Then the tendency list is empty, not null", func() {
			raw, err := json.Marshal(out[0])
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"penaltyTendencies":[]`)
		})
	})
}

func TestProcessDeterminism(t *testing.T) {
	Convey("Given the same generated league processed twice", t, func() {
		games, err := testgames.Generate(testgames.DefaultConfig())
		So(err, ShouldBeNil)

		first, err := json.Marshal(process(games...))
		So(err, ShouldBeNil)
		second, err := json.Marshal(process(games...))
		So(err, ShouldBeNil)

		Convey("Then the serialized output is byte identical", func() {
			So(string(first), ShouldEqual, string(second))
		})
	})
}
