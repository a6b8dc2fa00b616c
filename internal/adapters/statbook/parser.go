// Package statbook reads and writes WFTDA statbook workbooks.
//
// The layout is fixed: every field lives at a known row and column of the
// IGRF, Score, Lineups and Penalties sheets. Nothing beyond the presence of
// the sheets and the team names is validated.
package statbook

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/okian/jamstats/internal/domain/model"
)

// Parser turns statbook files into games.
type Parser struct{}

// NewParser creates a statbook parser.
func NewParser() *Parser { return &Parser{} }

// Parse reads the workbook at path.
func (p *Parser) Parse(ctx context.Context, path string) (*model.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	sheets := make(map[string][][]string, 4)
	for _, name := range []string{SheetIGRF, SheetScore, SheetLineups, SheetPenalties} {
		if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
			return nil, fmt.Errorf("%w: %s in %s", ErrMissingSheet, name, filepath.Base(path))
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s of %s: %w", name, filepath.Base(path), err)
		}
		sheets[name] = rows
	}

	g, err := gameFromSheets(sheets)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	g.Source = path
	return g, nil
}

// gameFromSheets builds a game from raw sheet rows keyed by sheet name.
func gameFromSheets(sheets map[string][][]string) (*model.Game, error) {
	igrf := sheets[SheetIGRF]
	g := &model.Game{
		Team1:     cell(rowAt(igrf, igrfTeamsRow), igrfTeam1Col),
		Team2:     cell(rowAt(igrf, igrfTeamsRow), igrfTeam2Col),
		Date:      cell(rowAt(igrf, igrfDateRow), igrfDateCol),
		Scores:    scoreRows(sheets[SheetScore]),
		Lineups:   lineupRows(sheets[SheetLineups]),
		Penalties: penaltyRows(sheets[SheetPenalties]),
	}
	if g.Team1 == "" || g.Team2 == "" {
		return nil, ErrMissingTeams
	}
	return g, nil
}
