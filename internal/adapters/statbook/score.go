package statbook

import "github.com/okian/jamstats/internal/domain/model"

// scoreRows reads the jam rows of the Score sheet. Rows without a numeric
// jam number (star passes, blanks) are skipped.
func scoreRows(rows [][]string) []model.ScoreRow {
	var out []model.ScoreRow
	for i, row := range rows {
		period := periodOf(i)
		if period == 0 {
			continue
		}
		jam, ok := intCell(row, jamCol)
		if !ok {
			continue
		}
		out = append(out, model.ScoreRow{
			Jam:    jam,
			Period: period,
			Team1:  scoreTeam(row, scoreTeam1JammerCol, scoreTeam1LeadCol, scoreTeam1PointsCol),
			Team2:  scoreTeam(row, scoreTeam2JammerCol, scoreTeam2LeadCol, scoreTeam2PointsCol),
		})
	}
	return out
}

func scoreTeam(row []string, jammerCol, leadCol, pointsCol int) model.ScoreTeam {
	st := model.ScoreTeam{
		Jammer: cell(row, jammerCol),
		Points: []int{},
		Lead:   checked(row, leadCol),
	}
	for c := pointsCol; c < pointsCol+scoreTrips; c++ {
		if p, ok := intCell(row, c); ok {
			st.Points = append(st.Points, p)
			st.Total += p
		}
	}
	return st
}
