package sim

import (
	"math/rand"

	"github.com/pthm-cable/schelling/grid"
)

// StopReason reports why a run ended. All three are normal terminal
// outcomes, never errors: a run halted by design is still a success.
type StopReason uint8

const (
	// Converged means the unsatisfied count dropped below the stopping
	// threshold.
	Converged StopReason = iota
	// MaxIterationsReached means the iteration budget ran out first.
	MaxIterationsReached
	// DeadEnd means a satisfy-stop filter found no candidate for some
	// source and halted the run.
	DeadEnd
)

// String returns the stop reason name.
func (r StopReason) String() string {
	switch r {
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max_iterations"
	case DeadEnd:
		return "dead_end"
	}
	return "unknown"
}

// IterationStats summarizes the grid after one executor iteration.
type IterationStats struct {
	Iteration   int
	Unsatisfied int
	Empties     int
	MeanRatio   float64
}

// Observer receives per-iteration stats during a run. Observers must treat
// the simulation as read-only.
type Observer func(IterationStats)

// RunResult reports the outcome of one Run call. The final grid stays on
// the Sim and is reachable through its query surface.
type RunResult struct {
	Iterations int
	Reason     StopReason
	// History records the unsatisfied count after each iteration.
	History []int
}

// Sim owns one run's grid and RNG stream. The grid is mutated only through
// Run; everything else on Sim is a read-only query.
type Sim struct {
	cfg Config
	g   *grid.Grid
	rng *rand.Rand
	obs Observer
}

// New validates cfg, then builds a simulation with a deterministically
// seeded RNG stream and a freshly populated grid.
func New(cfg Config, seed int64) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	return &Sim{
		cfg: cfg,
		g:   grid.Generate(cfg.Size, cfg.EmptyFrac, cfg.RedFrac, rng),
		rng: rng,
	}, nil
}

// NewFromGrid builds a simulation over an existing board, for replays and
// hand-built scenarios. The board's side length overrides cfg.Size.
func NewFromGrid(cfg Config, g *grid.Grid, seed int64) (*Sim, error) {
	cfg.Size = g.Size()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sim{cfg: cfg, g: g, rng: rand.New(rand.NewSource(seed))}, nil
}

// SetObserver installs a per-iteration stats hook.
func (s *Sim) SetObserver(obs Observer) { s.obs = obs }

// Config returns the run parameters.
func (s *Sim) Config() Config { return s.cfg }

// Grid exposes the board for the read-only query surface. Callers must not
// mutate it.
func (s *Sim) Grid() *grid.Grid { return s.g }

// Ratios returns the per-cell similarity ratio snapshot in row-major order.
func (s *Sim) Ratios() []float64 { return Ratios(s.g) }

// MeanRatio returns the unweighted mean similarity ratio over occupied
// cells.
func (s *Sim) MeanRatio() float64 { return MeanRatio(s.g) }

// Run iterates the named algorithm until a stop condition fires: the
// unsatisfied count drops below the stopping threshold (Converged), the
// iteration budget runs out (MaxIterationsReached), or a satisfy-stop
// filter hits a dead end (DeadEnd). An unknown name fails with
// ErrUnknownAlgorithm before any mutation. maxIterations of 0 leaves the
// grid untouched.
func (s *Sim) Run(maxIterations int, algorithm string) (RunResult, error) {
	alg, err := Lookup(algorithm)
	if err != nil {
		return RunResult{}, err
	}

	exec := &executor{g: s.g, alg: alg, threshold: s.cfg.Threshold, rng: s.rng}
	var res RunResult
	unsatisfied := len(Unsatisfied(s.g, s.cfg.Threshold))

	for {
		if unsatisfied < s.cfg.Stopping {
			res.Reason = Converged
			return res, nil
		}
		if res.Iterations >= maxIterations {
			res.Reason = MaxIterationsReached
			return res, nil
		}

		halt := exec.step()
		res.Iterations++
		unsatisfied = len(Unsatisfied(s.g, s.cfg.Threshold))
		res.History = append(res.History, unsatisfied)

		if s.obs != nil {
			s.obs(IterationStats{
				Iteration:   res.Iterations,
				Unsatisfied: unsatisfied,
				Empties:     len(s.g.Empties()),
				MeanRatio:   MeanRatio(s.g),
			})
		}
		if halt {
			res.Reason = DeadEnd
			return res, nil
		}
	}
}
