package statbook

import "github.com/okian/jamstats/internal/domain/model"

// Sheet names of a WFTDA statbook.
const (
	SheetIGRF      = "IGRF"
	SheetScore     = "Score"
	SheetPenalties = "Penalties"
	SheetLineups   = "Lineups"
)

// Rows are zero-based sheet row indexes, columns zero-based cell indexes.

// IGRF cells.
const (
	igrfDateRow  = 8
	igrfDateCol  = 1
	igrfTeamsRow = 9
	igrfTeam1Col = 1
	igrfTeam2Col = 8
)

// Jam rows shared by the Score and Lineups sheets. Rows between the two
// period blocks hold totals and headers.
const (
	period1FirstRow = 3
	period1LastRow  = 40
	period2FirstRow = 45
	period2LastRow  = 82
	jamCol          = 0
)

// Score sheet columns; points run over nine trip cells.
const (
	scoreTeam1JammerCol = 1
	scoreTeam1LeadCol   = 3
	scoreTeam1PointsCol = 7
	scoreTeam2JammerCol = 20
	scoreTeam2LeadCol   = 22
	scoreTeam2PointsCol = 26
	scoreTrips          = 9
)

// Lineups sheet columns. Each lineup slot is four cells wide; the first slot
// column is preceded by the "no pivot" box.
const (
	lineupTeam1NoPivotCol = 1
	lineupTeam1FirstCol   = 2
	lineupTeam2NoPivotCol = 27
	lineupTeam2FirstCol   = 28
	lineupSlotWidth       = 4
)

// Penalties sheet. Each skater takes a pair of rows: codes, then the jam of
// each code in the same column.
const (
	penaltiesFirstRow     = 3
	penaltiesLastRow      = 42
	penaltyTeam1SkaterCol = 0
	penaltyTeam2SkaterCol = 15
	penaltyCells          = 9
)

// penaltyBlock is the run of code cells for one team in one period.
type penaltyBlock struct {
	first  int
	side   model.Side
	period int
}

// penaltyBlocks are ordered by column, the order codes are read in.
var penaltyBlocks = []penaltyBlock{
	{first: 1, side: model.SideTeam1, period: 1},
	{first: 16, side: model.SideTeam2, period: 1},
	{first: 29, side: model.SideTeam1, period: 2},
	{first: 44, side: model.SideTeam2, period: 2},
}

// periodOf returns the period of a jam row, or 0 outside the jam blocks.
func periodOf(row int) int {
	switch {
	case row >= period1FirstRow && row <= period1LastRow:
		return 1
	case row >= period2FirstRow && row <= period2LastRow:
		return 2
	}
	return 0
}
