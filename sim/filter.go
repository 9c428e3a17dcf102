package sim

import "github.com/pthm-cable/schelling/grid"

// Filter is the eligibility policy narrowing the Empty pool before target
// selection.
type Filter uint8

const (
	// FilterAny passes the Empty pool through unfiltered.
	FilterAny Filter = iota
	// FilterSatisfyStop keeps only candidates that would leave the mover
	// satisfied; if none exist the whole run halts with a DeadEnd.
	FilterSatisfyStop
	// FilterSatisfyContinue keeps the satisfying subset when non-empty and
	// otherwise falls back to the full pool instead of halting.
	FilterSatisfyContinue
)

// String returns the filter policy name.
func (f Filter) String() string {
	switch f {
	case FilterSatisfyStop:
		return "satisfy-stop"
	case FilterSatisfyContinue:
		return "satisfy-continue"
	}
	return "any"
}

// eligible narrows pool for a mover of color c. The grid is only read: for
// batch mode it is the iteration-start snapshot, otherwise the live grid.
// halt is true when a satisfy-stop filter finds no candidate.
func eligible(g *grid.Grid, f Filter, c grid.Color, pool []grid.Pos, threshold float64) (out []grid.Pos, halt bool) {
	if f == FilterAny {
		return pool, false
	}

	satisfying := make([]grid.Pos, 0, len(pool))
	for _, p := range pool {
		if WouldSatisfy(g, c, p, threshold) {
			satisfying = append(satisfying, p)
		}
	}
	if len(satisfying) > 0 {
		return satisfying, false
	}
	if f == FilterSatisfyStop {
		return nil, true
	}
	return pool, false
}
