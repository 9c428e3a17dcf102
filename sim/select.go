package sim

import (
	"math/rand"

	"github.com/pthm-cable/schelling/grid"
)

// Selection is the target-selection method of an algorithm. It never
// consults the satisfaction threshold; eligibility filtering happens before
// selection.
type Selection uint8

const (
	// SelectRandom draws uniformly from the eligible pool using the run's
	// RNG stream.
	SelectRandom Selection = iota
	// SelectClosest picks the eligible cell minimizing Euclidean distance
	// from the source, tie-broken by lexicographic (row, col) order.
	SelectClosest
)

// String returns the selection method name.
func (s Selection) String() string {
	if s == SelectClosest {
		return "closest"
	}
	return "random"
}

// distSq is the squared Euclidean distance between two cells. Squares
// preserve the closest-first ordering without the sqrt.
func distSq(a, b grid.Pos) int {
	dr := a.Row - b.Row
	dc := a.Col - b.Col
	return dr*dr + dc*dc
}

// pickTarget chooses a destination from pool for a source at src. ok is
// false when the pool is empty.
func pickTarget(rng *rand.Rand, sel Selection, src grid.Pos, pool []grid.Pos) (target grid.Pos, ok bool) {
	if len(pool) == 0 {
		return grid.Pos{}, false
	}
	if sel == SelectRandom {
		return pool[rng.Intn(len(pool))], true
	}

	best := pool[0]
	bestD := distSq(src, pool[0])
	for _, p := range pool[1:] {
		d := distSq(src, p)
		if d < bestD || (d == bestD && lexLess(p, best)) {
			best, bestD = p, d
		}
	}
	return best, true
}

func lexLess(a, b grid.Pos) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}
