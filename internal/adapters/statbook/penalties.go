package statbook

import (
	"strings"

	"github.com/okian/jamstats/internal/domain/model"
)

// penaltyRows reads the paired skater rows of the Penalties sheet. A code cell
// counts only when it holds a single character; its jam sits right below it.
func penaltyRows(rows [][]string) []model.PenaltyRow {
	var out []model.PenaltyRow
	for i := penaltiesFirstRow; i < penaltiesLastRow; i += 2 {
		codes, jams := rowAt(rows, i), rowAt(rows, i+1)
		for _, block := range penaltyBlocks {
			skater := cell(codes, skaterCol(block.side))
			for c := block.first; c < block.first+penaltyCells; c++ {
				code := cell(codes, c)
				if len([]rune(code)) != 1 {
					continue
				}
				jam, _ := intCell(jams, c)
				out = append(out, model.PenaltyRow{
					Team:   block.side,
					Period: block.period,
					Skater: skater,
					Code:   strings.ToUpper(code),
					Jam:    jam,
				})
			}
		}
	}
	return out
}

func skaterCol(side model.Side) int {
	if side == model.SideTeam2 {
		return penaltyTeam2SkaterCol
	}
	return penaltyTeam1SkaterCol
}
