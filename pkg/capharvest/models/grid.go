package models

// Grid is a raw 2-D array of cells read from one report sheet.
// Rows and columns are indexed from 0 and carry no schema.
type Grid [][]Cell

// NewGrid converts decoded sheet rows into a Grid.
func NewGrid(rows [][]string) Grid {
	g := make(Grid, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, raw := range row {
			cells[j] = ParseCell(raw)
		}
		g[i] = cells
	}
	return g
}

// Cell returns the cell at (row, col), or an empty cell when the
// coordinates fall outside the grid.
func (g Grid) Cell(row, col int) Cell {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return Cell{Kind: KindEmpty}
	}
	return g[row][col]
}

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int {
	return len(g)
}
