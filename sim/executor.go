package sim

import (
	"math/rand"

	"github.com/pthm-cable/schelling/grid"
)

// Mode is the update-consistency policy controlling when the unsatisfied set
// and the Empty pool are refreshed relative to individual moves.
type Mode uint8

const (
	// ModeSingle applies one move per iteration: the source is drawn from
	// the unsatisfied set recomputed against the grid's current state and
	// the pool is the current Empty set.
	ModeSingle Mode = iota
	// ModeWhitebatch snapshots the unsatisfied set once per iteration and
	// processes it in row-major order, recomputing the Empty pool before
	// each move so cells vacated earlier in the iteration become targets.
	ModeWhitebatch
	// ModeBatch snapshots both the unsatisfied set and the Empty pool once
	// per iteration; vacated cells only become targets next iteration, and
	// a target contested by two movers goes to the first in order.
	ModeBatch
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeWhitebatch:
		return "whitebatch"
	case ModeBatch:
		return "batch"
	}
	return "single"
}

// executor applies one update-consistency iteration of the chosen algorithm,
// holding exclusive mutable access to the grid while it runs.
type executor struct {
	g         *grid.Grid
	alg       Algorithm
	threshold float64
	rng       *rand.Rand
}

// step runs one driver iteration. halt is true when a satisfy-stop filter
// hit a dead end; the remaining batch is abandoned immediately and no
// further mutation follows.
func (e *executor) step() (halt bool) {
	switch e.alg.Mode {
	case ModeWhitebatch:
		return e.stepWhitebatch()
	case ModeBatch:
		return e.stepBatch()
	}
	return e.stepSingle()
}

// stepSingle draws one source from the freshly recomputed unsatisfied set
// and moves it against the current Empty pool.
func (e *executor) stepSingle() bool {
	unsat := Unsatisfied(e.g, e.threshold)
	if len(unsat) == 0 {
		return false
	}
	src := unsat[e.rng.Intn(len(unsat))]
	_, halt := e.moveOne(src, e.g.Empties())
	return halt
}

// stepWhitebatch processes the iteration-start unsatisfied snapshot in
// row-major order. Each move sees the Empty pool left by the previous one,
// so a cell vacated earlier in the iteration is a valid later target.
func (e *executor) stepWhitebatch() bool {
	for _, src := range Unsatisfied(e.g, e.threshold) {
		if _, halt := e.moveOne(src, e.g.Empties()); halt {
			return true
		}
	}
	return false
}

// stepBatch freezes both the unsatisfied snapshot and the grid state at
// iteration start. Filtering and selection run against the frozen state, so
// per-source decisions are independent of moves applied earlier in the
// iteration; when two sources pick the same target the first in enumeration
// order wins and the loser goes without a candidate.
func (e *executor) stepBatch() bool {
	unsat := Unsatisfied(e.g, e.threshold)
	frozen := e.g.Clone()
	pool := frozen.Empties()
	taken := make(map[grid.Pos]bool, len(pool))

	for _, src := range unsat {
		c := frozen.Get(src)
		elig, halt := eligible(frozen, e.alg.Filter, c, pool, e.threshold)
		if halt {
			return true
		}
		dst, ok := pickTarget(e.rng, e.alg.Selection, src, elig)
		if !ok || taken[dst] {
			continue
		}
		taken[dst] = true
		e.g.Move(src, dst)
	}
	return false
}

// moveOne filters the live pool, selects a target, and applies the move
// immediately. A source with no eligible target simply stays put unless the
// filter demands a halt.
func (e *executor) moveOne(src grid.Pos, pool []grid.Pos) (moved, halt bool) {
	c := e.g.Get(src)
	elig, halt := eligible(e.g, e.alg.Filter, c, pool, e.threshold)
	if halt {
		return false, true
	}
	dst, ok := pickTarget(e.rng, e.alg.Selection, src, elig)
	if !ok {
		return false, false
	}
	e.g.Move(src, dst)
	return true, false
}
