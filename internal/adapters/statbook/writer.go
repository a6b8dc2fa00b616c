package statbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/okian/jamstats/internal/domain/model"
)

// penaltySlots is how many skaters fit on one side of the Penalties sheet.
const penaltySlots = (penaltiesLastRow - penaltiesFirstRow + 1) / 2

// Write saves g as a statbook at path using the same layout Parse reads.
func Write(path string, g *model.Game) error {
	f := excelize.NewFile()
	defer f.Close()

	w := &sheetWriter{f: f}
	w.rename(f.GetSheetName(0), SheetIGRF)
	for _, name := range []string{SheetScore, SheetLineups, SheetPenalties} {
		w.newSheet(name)
	}

	w.set(SheetIGRF, igrfDateRow, igrfDateCol, g.Date)
	w.set(SheetIGRF, igrfTeamsRow, igrfTeam1Col, g.Team1)
	w.set(SheetIGRF, igrfTeamsRow, igrfTeam2Col, g.Team2)

	if err := w.scores(g.Scores); err != nil {
		return err
	}
	if err := w.lineups(g.Lineups); err != nil {
		return err
	}
	if err := w.penalties(g.Penalties); err != nil {
		return err
	}
	if w.err != nil {
		return w.err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// sheetWriter keeps the first excelize error so calls can be chained.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) rename(from, to string) {
	if w.err == nil {
		w.err = w.f.SetSheetName(from, to)
	}
}

func (w *sheetWriter) newSheet(name string) {
	if w.err == nil {
		_, w.err = w.f.NewSheet(name)
	}
}

func (w *sheetWriter) set(sheet string, row, col int, v interface{}) {
	if w.err != nil {
		return
	}
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(sheet, name, v)
}

// jamRows hands out the next free jam row of each period.
type jamRows map[int]int

func (j jamRows) next(period int) (int, error) {
	first, last := period1FirstRow, period1LastRow
	if period == 2 {
		first, last = period2FirstRow, period2LastRow
	} else if period != 1 {
		return 0, fmt.Errorf("%w: period %d", ErrSheetOverflow, period)
	}
	row := first + j[period]
	if row > last {
		return 0, fmt.Errorf("%w: too many jams in period %d", ErrSheetOverflow, period)
	}
	j[period]++
	return row, nil
}

func (w *sheetWriter) scores(rows []model.ScoreRow) error {
	free := jamRows{}
	for _, s := range rows {
		row, err := free.next(s.Period)
		if err != nil {
			return err
		}
		w.set(SheetScore, row, jamCol, s.Jam)
		w.scoreTeam(row, s.Team1, scoreTeam1JammerCol, scoreTeam1LeadCol, scoreTeam1PointsCol)
		w.scoreTeam(row, s.Team2, scoreTeam2JammerCol, scoreTeam2LeadCol, scoreTeam2PointsCol)
	}
	return nil
}

func (w *sheetWriter) scoreTeam(row int, st model.ScoreTeam, jammerCol, leadCol, pointsCol int) {
	w.set(SheetScore, row, jammerCol, st.Jammer)
	if st.Lead {
		w.set(SheetScore, row, leadCol, "X")
	}
	for i, p := range st.Points {
		if i >= scoreTrips {
			break
		}
		w.set(SheetScore, row, pointsCol+i, p)
	}
}

func (w *sheetWriter) lineups(rows []model.LineupRow) error {
	free := jamRows{}
	for _, l := range rows {
		row, err := free.next(l.Period)
		if err != nil {
			return err
		}
		w.set(SheetLineups, row, jamCol, l.Jam)
		w.lineupTeam(row, l.Team1, lineupTeam1NoPivotCol, lineupTeam1FirstCol)
		w.lineupTeam(row, l.Team2, lineupTeam2NoPivotCol, lineupTeam2FirstCol)
	}
	return nil
}

func (w *sheetWriter) lineupTeam(row int, lt model.LineupTeam, noPivotCol, firstCol int) {
	if lt.NoPivot {
		w.set(SheetLineups, row, noPivotCol, "X")
	}
	for slot, n := range lt.Lineup {
		w.set(SheetLineups, row, firstCol+slot*lineupSlotWidth, n)
	}
}

type penaltyKey struct {
	side   model.Side
	skater string
}

// penalties lays out one row pair per penalized skater and side, filling the
// period blocks left to right.
func (w *sheetWriter) penalties(rows []model.PenaltyRow) error {
	slots := map[penaltyKey]int{}
	used := map[model.Side]int{}
	filled := map[penaltyKey]map[int]int{}

	for _, p := range rows {
		if !p.Team.Valid() {
			return fmt.Errorf("%w: penalty team %d", ErrSheetOverflow, int(p.Team))
		}
		key := penaltyKey{side: p.Team, skater: p.Skater}
		slot, ok := slots[key]
		if !ok {
			if used[p.Team] == penaltySlots {
				return fmt.Errorf("%w: more than %d penalized skaters", ErrSheetOverflow, penaltySlots)
			}
			slot = used[p.Team]
			used[p.Team]++
			slots[key] = slot
			filled[key] = map[int]int{}
			w.set(SheetPenalties, penaltiesFirstRow+2*slot, skaterCol(p.Team), p.Skater)
		}

		block, ok := blockFor(p.Team, p.Period)
		if !ok {
			return fmt.Errorf("%w: penalty period %d", ErrSheetOverflow, p.Period)
		}
		n := filled[key][p.Period]
		if n == penaltyCells {
			return fmt.Errorf("%w: skater %s has more than %d penalties in period %d",
				ErrSheetOverflow, p.Skater, penaltyCells, p.Period)
		}
		filled[key][p.Period] = n + 1

		row := penaltiesFirstRow + 2*slot
		w.set(SheetPenalties, row, block.first+n, p.Code)
		w.set(SheetPenalties, row+1, block.first+n, p.Jam)
	}
	return nil
}

func blockFor(side model.Side, period int) (penaltyBlock, bool) {
	for _, b := range penaltyBlocks {
		if b.side == side && b.period == period {
			return b, true
		}
	}
	return penaltyBlock{}, false
}
