package grid

import (
	"math"
	"math/rand"
	"testing"
)

func TestNeighborCounts(t *testing.T) {
	g := New(3)

	tests := []struct {
		name string
		pos  Pos
		want int
	}{
		{"corner", Pos{0, 0}, 3},
		{"edge", Pos{0, 1}, 5},
		{"center", Pos{1, 1}, 8},
		{"opposite corner", Pos{2, 2}, 3},
		{"left edge", Pos{1, 0}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(g.Neighbors(tt.pos)); got != tt.want {
				t.Errorf("Neighbors(%v) = %d cells, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestNeighborsStayInBounds(t *testing.T) {
	g := New(3)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			for _, n := range g.Neighbors(Pos{r, c}) {
				if n.Row < 0 || n.Row >= 3 || n.Col < 0 || n.Col >= 3 {
					t.Errorf("neighbor %v of (%d,%d) out of bounds", n, r, c)
				}
				if n == (Pos{r, c}) {
					t.Errorf("cell (%d,%d) is its own neighbor", r, c)
				}
			}
		}
	}
}

func TestDegenerateGridHasNoNeighbors(t *testing.T) {
	g := New(1)
	if got := len(g.Neighbors(Pos{0, 0})); got != 0 {
		t.Errorf("1x1 grid cell has %d neighbors, want 0", got)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(20, 0.1, 0.5, rand.New(rand.NewSource(7)))
	b := Generate(20, 0.1, 0.5, rand.New(rand.NewSource(7)))
	if !a.Equal(b) {
		t.Error("two generations with the same seed differ")
	}
}

func TestGenerateConservation(t *testing.T) {
	g := Generate(17, 0.2, 0.4, rand.New(rand.NewSource(3)))
	total := g.Count(Red) + g.Count(Blue) + g.Count(Empty)
	if total != 17*17 {
		t.Errorf("color counts sum to %d, want %d", total, 17*17)
	}
}

func TestGenerateFractions(t *testing.T) {
	const size = 100
	g := Generate(size, 0.1, 0.5, rand.New(rand.NewSource(11)))

	cells := float64(size * size)
	emptyFrac := float64(g.Count(Empty)) / cells
	if math.Abs(emptyFrac-0.1) > 0.03 {
		t.Errorf("empty fraction %.3f too far from 0.1", emptyFrac)
	}

	occupied := cells - float64(g.Count(Empty))
	redFrac := float64(g.Count(Red)) / occupied
	if math.Abs(redFrac-0.5) > 0.03 {
		t.Errorf("red fraction among occupied %.3f too far from 0.5", redFrac)
	}
}

func TestMoveConservation(t *testing.T) {
	g, err := Parse("RRB\nB.B\nRR.")
	if err != nil {
		t.Fatal(err)
	}

	red, blue, empty := g.Count(Red), g.Count(Blue), g.Count(Empty)
	g.Move(Pos{0, 0}, Pos{1, 1})

	if g.Get(Pos{0, 0}) != Empty {
		t.Error("source not vacated")
	}
	if g.Get(Pos{1, 1}) != Red {
		t.Error("destination not occupied by mover's color")
	}
	if g.Count(Red) != red || g.Count(Blue) != blue || g.Count(Empty) != empty {
		t.Errorf("counts changed: red %d->%d blue %d->%d empty %d->%d",
			red, g.Count(Red), blue, g.Count(Blue), empty, g.Count(Empty))
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	const s = "RRB\nB.B\nRR."
	g, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.String(); got != s {
		t.Errorf("String() = %q, want %q", got, s)
	}
}

func TestParseRejectsRaggedRows(t *testing.T) {
	if _, err := Parse("RR\nB"); err == nil {
		t.Error("expected error for ragged rows")
	}
}

func TestEmptiesRowMajor(t *testing.T) {
	g, err := Parse("R.B\n..B\nRR.")
	if err != nil {
		t.Fatal(err)
	}
	want := []Pos{{0, 1}, {1, 0}, {1, 1}, {2, 2}}
	got := g.Empties()
	if len(got) != len(want) {
		t.Fatalf("Empties() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Empties() = %v, want %v", got, want)
		}
	}
}
