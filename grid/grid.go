// Package grid owns the N×N cell-color state of the relocation model and
// provides raw read/write access plus Chebyshev-1 neighborhood lookups.
package grid

import (
	"fmt"
	"math/rand"
	"strings"
)

// Color is the occupancy state of a single cell. Empty is a first-class
// color, not an absence: the conservation invariant counts it like any other.
type Color uint8

const (
	Empty Color = iota
	Red
	Blue
)

// String returns the color name for logging and errors.
func (c Color) String() string {
	switch c {
	case Empty:
		return "empty"
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// rune returns the single-character encoding used by Parse and Grid.String.
func (c Color) rune() byte {
	switch c {
	case Red:
		return 'R'
	case Blue:
		return 'B'
	}
	return '.'
}

// Pos addresses a cell by (row, col), both in [0, N).
type Pos struct {
	Row, Col int
}

// neighborOffsets enumerates the Chebyshev-distance-1 ring in row-major
// order, so neighbor slices come out sorted.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid stores an N×N arrangement of colors in row-major order.
type Grid struct {
	size  int
	cells []Color
}

// New allocates an all-Empty grid with the given side length.
func New(size int) *Grid {
	if size < 1 {
		size = 1
	}
	return &Grid{size: size, cells: make([]Color, size*size)}
}

// Generate populates a fresh grid by independent per-cell draws: Empty with
// probability emptyFrac, otherwise Red with probability redFrac, else Blue.
// Reproducible given a seeded rng.
func Generate(size int, emptyFrac, redFrac float64, rng *rand.Rand) *Grid {
	g := New(size)
	for i := range g.cells {
		if rng.Float64() < emptyFrac {
			continue
		}
		if rng.Float64() < redFrac {
			g.cells[i] = Red
		} else {
			g.cells[i] = Blue
		}
	}
	return g
}

// Size reports the side length N.
func (g *Grid) Size() int { return g.size }

func (g *Grid) index(p Pos) int { return p.Row*g.size + p.Col }

// Get returns the color at p.
func (g *Grid) Get(p Pos) Color { return g.cells[g.index(p)] }

// Set writes the color at p.
func (g *Grid) Set(p Pos, c Color) { g.cells[g.index(p)] = c }

// Move relocates the occupant of src into dst, leaving src Empty. The cell
// count per color is unchanged apart from the Empty/occupant swap.
func (g *Grid) Move(src, dst Pos) {
	g.cells[g.index(dst)] = g.cells[g.index(src)]
	g.cells[g.index(src)] = Empty
}

// Neighbors returns the up-to-8 in-bounds cells whose row and column each
// differ from p's by at most 1, excluding p itself. No wraparound: corners
// have 3 neighbors, edges 5, interior cells 8.
func (g *Grid) Neighbors(p Pos) []Pos {
	out := make([]Pos, 0, 8)
	for _, off := range neighborOffsets {
		n := Pos{p.Row + off[0], p.Col + off[1]}
		if n.Row < 0 || n.Row >= g.size || n.Col < 0 || n.Col >= g.size {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Empties returns every Empty cell in row-major order.
func (g *Grid) Empties() []Pos {
	var out []Pos
	for i, c := range g.cells {
		if c == Empty {
			out = append(out, Pos{i / g.size, i % g.size})
		}
	}
	return out
}

// Count returns the number of cells holding c.
func (g *Grid) Count(c Color) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Color, len(g.cells))
	copy(cells, g.cells)
	return &Grid{size: g.size, cells: cells}
}

// Equal reports whether two grids hold identical cell state.
func (g *Grid) Equal(o *Grid) bool {
	if g.size != o.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid one row per line, 'R'/'B'/'.' per cell.
func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			b.WriteByte(g.cells[r*g.size+c].rune())
		}
		if r < g.size-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Parse builds a grid from the String encoding. Rows must be equal-length
// and form a square.
func Parse(s string) (*Grid, error) {
	rows := strings.Split(strings.TrimSpace(s), "\n")
	size := len(rows)
	g := New(size)
	for r, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != size {
			return nil, fmt.Errorf("grid: row %d has %d cells, want %d", r, len(row), size)
		}
		for c := 0; c < size; c++ {
			switch row[c] {
			case 'R':
				g.cells[r*size+c] = Red
			case 'B':
				g.cells[r*size+c] = Blue
			case '.':
				g.cells[r*size+c] = Empty
			default:
				return nil, fmt.Errorf("grid: unknown cell %q at (%d,%d)", row[c], r, c)
			}
		}
	}
	return g, nil
}
