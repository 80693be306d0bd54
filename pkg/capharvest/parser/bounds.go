package parser

import "github.com/gridwatch-in/capharvest/pkg/capharvest/models"

// densityParams holds thresholds for the table sanity gate.
type densityParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

func defaultDensityParams() densityParams {
	return densityParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// hasTable reports whether the grid contains a plausibly table-like
// region. Sheets that fail the gate are rejected before header
// location instead of producing records from noise.
func hasTable(g models.Grid, params densityParams) bool {
	minRow, maxRow, minCol, maxCol := dataBounds(g)
	if minRow < 0 {
		return false
	}

	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	nonEmpty := countNonEmpty(g, minRow, maxRow, minCol, maxCol)
	if nonEmpty < params.MinNonemptyCells {
		return false
	}
	return float64(nonEmpty)/float64(totalCells) >= params.DensityMin
}

// dataBounds finds the bounding box of non-empty cells. minRow is -1
// when the grid is entirely empty.
func dataBounds(g models.Grid) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range g {
		for colIdx, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// countNonEmpty counts non-empty cells within bounds.
func countNonEmpty(g models.Grid, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < g.Rows(); rowIdx++ {
		for colIdx := minCol; colIdx <= maxCol; colIdx++ {
			if !g.Cell(rowIdx, colIdx).IsEmpty() {
				count++
			}
		}
	}
	return count
}
