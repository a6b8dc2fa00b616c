package statbook

import "github.com/okian/jamstats/internal/domain/model"

// lineupRows reads the jam rows of the Lineups sheet.
func lineupRows(rows [][]string) []model.LineupRow {
	var out []model.LineupRow
	for i, row := range rows {
		period := periodOf(i)
		if period == 0 {
			continue
		}
		jam, ok := intCell(row, jamCol)
		if !ok {
			continue
		}
		out = append(out, model.LineupRow{
			Jam:    jam,
			Period: period,
			Team1:  lineupTeam(row, lineupTeam1NoPivotCol, lineupTeam1FirstCol),
			Team2:  lineupTeam(row, lineupTeam2NoPivotCol, lineupTeam2FirstCol),
		})
	}
	return out
}

// lineupTeam reads one team's five slots. Slot 0 is the jammer, slot 1 the
// pivot unless the "no pivot" box is ticked.
func lineupTeam(row []string, noPivotCol, firstCol int) model.LineupTeam {
	var lt model.LineupTeam
	for slot := range lt.Lineup {
		lt.Lineup[slot] = cell(row, firstCol+slot*lineupSlotWidth)
	}
	if checked(row, noPivotCol) {
		lt.NoPivot = true
	} else {
		lt.Pivot = lt.Lineup[1]
	}
	return lt
}
