package term

import "github.com/fynn9563/bootgif/internal/ansi"

// Cell is one character position on the grid.
type Cell struct {
	Ch    rune
	Style ansi.Style
}

// blank is the cell value an erased position holds.
var blank = Cell{Ch: ' '}

// newGrid allocates a rows x cols cell buffer filled with blanks.
func newGrid(rows, cols int) [][]Cell {
	g := make([][]Cell, rows)
	for i := range g {
		g[i] = make([]Cell, cols)
		for j := range g[i] {
			g[i][j] = blank
		}
	}
	return g
}

// clearGrid resets every cell to blank.
func clearGrid(g [][]Cell) {
	for i := range g {
		for j := range g[i] {
			g[i][j] = blank
		}
	}
}
