package sim

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/schelling/grid"
)

// parallelThreshold is the minimum board side length to split the read-only
// similarity pass across workers. Below this, single-threaded is faster due
// to goroutine overhead.
const parallelThreshold = 64

// Ratio computes the similarity ratio of the cell at p: same-color neighbors
// over total neighbors, with Empty neighbors counting toward the denominator
// only. Empty cells and cells with no neighbors report 1 (vacuously
// satisfied).
func Ratio(g *grid.Grid, p grid.Pos) float64 {
	c := g.Get(p)
	if c == grid.Empty {
		return 1
	}
	return placedRatio(g, c, p)
}

// placedRatio is Ratio for a hypothetical occupant color at p, reading the
// rest of the grid as-is.
func placedRatio(g *grid.Grid, c grid.Color, p grid.Pos) float64 {
	neighbors := g.Neighbors(p)
	if len(neighbors) == 0 {
		return 1
	}
	same := 0
	for _, n := range neighbors {
		if g.Get(n) == c {
			same++
		}
	}
	return float64(same) / float64(len(neighbors))
}

// Ratios computes the similarity ratio of every cell in row-major order.
// The pass is read-only, so large boards are split across workers.
func Ratios(g *grid.Grid) []float64 {
	size := g.Size()
	out := make([]float64, size*size)

	fill := func(rowStart, rowEnd int) {
		for r := rowStart; r < rowEnd; r++ {
			for c := 0; c < size; c++ {
				out[r*size+c] = Ratio(g, grid.Pos{Row: r, Col: c})
			}
		}
	}

	if size < parallelThreshold {
		fill(0, size)
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > size {
		workers = size
	}
	chunk := (size + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < size; start += chunk {
		end := start + chunk
		if end > size {
			end = size
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fill(s, e)
		}(start, end)
	}
	wg.Wait()
	return out
}

// Unsatisfied returns every occupied cell whose similarity ratio is below
// threshold, in row-major order.
func Unsatisfied(g *grid.Grid, threshold float64) []grid.Pos {
	size := g.Size()
	var out []grid.Pos
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			p := grid.Pos{Row: r, Col: c}
			if g.Get(p) == grid.Empty {
				continue
			}
			if Ratio(g, p) < threshold {
				out = append(out, p)
			}
		}
	}
	return out
}

// WouldSatisfy reports whether hypothetically placing c at candidate leaves
// it satisfied under threshold. The rest of the grid, including candidate's
// own neighbors, is read unchanged; nothing is mutated.
func WouldSatisfy(g *grid.Grid, c grid.Color, candidate grid.Pos, threshold float64) bool {
	return placedRatio(g, c, candidate) >= threshold
}

// MeanRatio returns the unweighted mean similarity ratio over all occupied
// cells, or 0 for a fully empty grid.
func MeanRatio(g *grid.Grid) float64 {
	size := g.Size()
	var vals []float64
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			p := grid.Pos{Row: r, Col: c}
			if g.Get(p) == grid.Empty {
				continue
			}
			vals = append(vals, Ratio(g, p))
		}
	}
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}
