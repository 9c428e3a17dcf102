package sim

import (
	"testing"

	"github.com/pthm-cable/schelling/grid"
)

// mustParse builds a grid from its string form or fails the test.
func mustParse(t *testing.T, s string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// countDiffs returns how many cells differ between two grids.
func countDiffs(a, b *grid.Grid) int {
	n := 0
	for r := 0; r < a.Size(); r++ {
		for c := 0; c < a.Size(); c++ {
			p := grid.Pos{Row: r, Col: c}
			if a.Get(p) != b.Get(p) {
				n++
			}
		}
	}
	return n
}

func checkConservation(t *testing.T, g *grid.Grid) {
	t.Helper()
	total := g.Count(grid.Red) + g.Count(grid.Blue) + g.Count(grid.Empty)
	if total != g.Size()*g.Size() {
		t.Fatalf("conservation broken: counts sum to %d, want %d", total, g.Size()*g.Size())
	}
}

// TestSingleRandomScenario pins down one iteration of singleRandom on the
// 3x3 board from the evaluator tests: exactly one unsatisfied cell moves
// into one of the two empties, and with a suitable seed the move is
// (0,0) -> (1,1), leaving every other cell untouched.
func TestSingleRandomScenario(t *testing.T) {
	const initial = "RRB\nB.B\nRR."
	wantExact := mustParse(t, ".RB\nBRB\nRR.")
	cfg := Config{Threshold: 0.5, Stopping: 1}

	foundExact := false
	for seed := int64(0); seed < 512; seed++ {
		g := mustParse(t, initial)
		before := g.Clone()

		s, err := NewFromGrid(cfg, g, seed)
		if err != nil {
			t.Fatal(err)
		}
		res, err := s.Run(1, "singleRandom")
		if err != nil {
			t.Fatal(err)
		}
		if res.Iterations != 1 {
			t.Fatalf("seed %d: ran %d iterations, want 1", seed, res.Iterations)
		}
		checkConservation(t, g)

		// Exactly one move: the source vacated, one former empty occupied.
		if d := countDiffs(before, g); d != 2 {
			t.Fatalf("seed %d: %d cells changed in one singleRandom iteration, want 2", seed, d)
		}
		if g.Equal(wantExact) {
			foundExact = true
			// The unsatisfied set for the next iteration reflects the move.
			if res.History[0] != len(Unsatisfied(g, 0.5)) {
				t.Fatalf("history %v disagrees with recomputed unsatisfied set", res.History)
			}
		}
	}

	if !foundExact {
		t.Error("no seed produced the (0,0) -> (1,1) move")
	}
}

// divergenceGrid has exactly two unsatisfied cells: a Red at (1,1) deep in
// Blue territory and a Blue at (4,4) deep in Red territory, with (4,1) the
// only empty. Under threshold 0.3 the Red's only satisfying target is
// (4,1); once it moves, the vacated (1,1) is the Blue's only satisfying
// target.
const divergenceGrid = "BBBBB\nBRBBB\nBBBBB\nRRRRR\nR.RRB"

func TestWhitebatchSeesVacatedCells(t *testing.T) {
	for _, algo := range []string{"whitebatchRandomSatisfyStop", "whitebatchClosestSatisfyStop"} {
		t.Run(algo, func(t *testing.T) {
			g := mustParse(t, divergenceGrid)
			s, err := NewFromGrid(Config{Threshold: 0.3, Stopping: 1}, g, 1)
			if err != nil {
				t.Fatal(err)
			}
			res, err := s.Run(1, algo)
			if err != nil {
				t.Fatal(err)
			}

			if res.Reason == DeadEnd {
				t.Fatal("whitebatch hit a dead end; the vacated cell should have served the second mover")
			}
			if got := g.Get(grid.Pos{Row: 4, Col: 1}); got != grid.Red {
				t.Errorf("(4,1) = %v, want red mover", got)
			}
			if got := g.Get(grid.Pos{Row: 1, Col: 1}); got != grid.Blue {
				t.Errorf("(1,1) = %v, want blue mover in the vacated cell", got)
			}
			if got := g.Get(grid.Pos{Row: 4, Col: 4}); got != grid.Empty {
				t.Errorf("(4,4) = %v, want empty after the blue mover left", got)
			}
			checkConservation(t, g)
		})
	}
}

func TestBatchFrozenPoolMissesVacatedCells(t *testing.T) {
	g := mustParse(t, divergenceGrid)
	s, err := NewFromGrid(Config{Threshold: 0.3, Stopping: 1}, g, 1)
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Run(5, "batchRandomSatisfyStop")
	if err != nil {
		t.Fatal(err)
	}

	if res.Reason != DeadEnd {
		t.Fatalf("stop reason = %v, want dead_end: the frozen pool cannot contain the vacated cell", res.Reason)
	}
	if res.Iterations != 1 {
		t.Errorf("dead end after %d iterations, want 1", res.Iterations)
	}
	// The first mover's relocation stands; the second never moved.
	if got := g.Get(grid.Pos{Row: 4, Col: 1}); got != grid.Red {
		t.Errorf("(4,1) = %v, want red mover", got)
	}
	if got := g.Get(grid.Pos{Row: 1, Col: 1}); got != grid.Empty {
		t.Errorf("(1,1) = %v, want empty (vacated, never refilled)", got)
	}
	if got := g.Get(grid.Pos{Row: 4, Col: 4}); got != grid.Blue {
		t.Errorf("(4,4) = %v, want the stranded blue mover", got)
	}
	checkConservation(t, g)
}

func TestBatchSatisfyContinueLosesContestedTarget(t *testing.T) {
	g := mustParse(t, divergenceGrid)
	s, err := NewFromGrid(Config{Threshold: 0.3, Stopping: 1}, g, 1)
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Run(1, "batchRandomSatisfyContinue")
	if err != nil {
		t.Fatal(err)
	}

	if res.Reason == DeadEnd {
		t.Fatal("satisfy-continue must never report a dead end")
	}
	// The blue mover's fallback pool is the single frozen empty, already
	// taken by the red mover: no candidate, no move.
	if got := g.Get(grid.Pos{Row: 4, Col: 4}); got != grid.Blue {
		t.Errorf("(4,4) = %v, want blue mover left in place", got)
	}
	if got := g.Get(grid.Pos{Row: 4, Col: 1}); got != grid.Red {
		t.Errorf("(4,1) = %v, want red mover", got)
	}
	checkConservation(t, g)
}

// deadEndGrid has one unsatisfied Red at (0,0) and two empties, neither of
// which would satisfy it at threshold 0.5.
const deadEndGrid = "RB.\nBBB\n.BB"

func TestSatisfyStopHaltsEveryMode(t *testing.T) {
	algos := []string{
		"singleRandomSatisfyStop",
		"singleClosestSatisfyStop",
		"whitebatchRandomSatisfyStop",
		"whitebatchClosestSatisfyStop",
		"batchRandomSatisfyStop",
		"batchClosestSatisfyStop",
	}
	for _, algo := range algos {
		t.Run(algo, func(t *testing.T) {
			g := mustParse(t, deadEndGrid)
			before := g.Clone()
			s, err := NewFromGrid(Config{Threshold: 0.5, Stopping: 1}, g, 7)
			if err != nil {
				t.Fatal(err)
			}
			res, err := s.Run(10, algo)
			if err != nil {
				t.Fatal(err)
			}

			if res.Reason != DeadEnd {
				t.Fatalf("stop reason = %v, want dead_end", res.Reason)
			}
			if res.Iterations != 1 {
				t.Errorf("halted after %d iterations, want exactly the iteration that hit the dead end", res.Iterations)
			}
			if !g.Equal(before) {
				t.Error("grid mutated after the dead end")
			}
		})
	}
}

func TestSatisfyContinueStillMoves(t *testing.T) {
	algos := []string{
		"singleRandomSatisfyContinue",
		"singleClosestSatisfyContinue",
		"whitebatchRandomSatisfyContinue",
		"whitebatchClosestSatisfyContinue",
		"batchRandomSatisfyContinue",
		"batchClosestSatisfyContinue",
	}
	for _, algo := range algos {
		t.Run(algo, func(t *testing.T) {
			g := mustParse(t, deadEndGrid)
			before := g.Clone()
			s, err := NewFromGrid(Config{Threshold: 0.5, Stopping: 1}, g, 7)
			if err != nil {
				t.Fatal(err)
			}
			res, err := s.Run(1, algo)
			if err != nil {
				t.Fatal(err)
			}

			if res.Reason == DeadEnd {
				t.Fatal("satisfy-continue reported a dead end")
			}
			// The source still moves, to an unconstrained target.
			if got := g.Get(grid.Pos{Row: 0, Col: 0}); got != grid.Empty {
				t.Errorf("(0,0) = %v, want empty after the fallback move", got)
			}
			if d := countDiffs(before, g); d != 2 {
				t.Errorf("%d cells changed, want 2 (one move)", d)
			}
			checkConservation(t, g)
		})
	}
}

func TestClosestSatisfyContinueFallbackTieBreak(t *testing.T) {
	// (0,2) and (2,0) are equidistant from (0,0); lexicographic order picks
	// (0,2).
	g := mustParse(t, deadEndGrid)
	s, err := NewFromGrid(Config{Threshold: 0.5, Stopping: 1}, g, 7)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(1, "singleClosestSatisfyContinue"); err != nil {
		t.Fatal(err)
	}
	if got := g.Get(grid.Pos{Row: 0, Col: 2}); got != grid.Red {
		t.Errorf("(0,2) = %v, want red via lexicographic tie-break", got)
	}
}
