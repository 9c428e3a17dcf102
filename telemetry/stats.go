package telemetry

import (
	"github.com/pthm-cable/schelling/grid"
	"github.com/pthm-cable/schelling/sim"
)

// Numeric color codes for exported board views. Red and blue sit at
// opposite ends of a diverging scale with empty at zero, so the matrix
// plots directly as a heatmap.
const (
	CodeRed   = 100
	CodeEmpty = 0
	CodeBlue  = -100
)

// ColorCodes renders the board as a matrix of numeric color codes.
func ColorCodes(g *grid.Grid) [][]int {
	n := g.Size()
	out := make([][]int, n)
	for r := 0; r < n; r++ {
		out[r] = make([]int, n)
		for c := 0; c < n; c++ {
			switch g.Get(grid.Pos{Row: r, Col: c}) {
			case grid.Red:
				out[r][c] = CodeRed
			case grid.Blue:
				out[r][c] = CodeBlue
			default:
				out[r][c] = CodeEmpty
			}
		}
	}
	return out
}

// RatioGrid renders the per-cell similarity ratios as a matrix.
func RatioGrid(g *grid.Grid) [][]float64 {
	n := g.Size()
	out := make([][]float64, n)
	for r := 0; r < n; r++ {
		out[r] = make([]float64, n)
		for c := 0; c < n; c++ {
			out[r][c] = sim.Ratio(g, grid.Pos{Row: r, Col: c})
		}
	}
	return out
}
