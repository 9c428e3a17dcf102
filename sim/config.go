package sim

import "fmt"

// Config fixes the run-wide parameters of one simulation. It is constructed
// once before a run and never mutated during it.
type Config struct {
	// Size is the board side length N.
	Size int
	// EmptyFrac is the probability a cell starts Empty.
	EmptyFrac float64
	// RedFrac is the probability a non-Empty cell starts Red.
	RedFrac float64
	// Threshold is the satisfaction bound: an occupied cell whose similarity
	// ratio falls below it is unsatisfied.
	Threshold float64
	// Stopping is the convergence threshold: the run converges once the
	// unsatisfied count drops below it.
	Stopping int
}

// Validate checks all parameters, wrapping failures in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, c.Size)
	}
	if c.EmptyFrac < 0 || c.EmptyFrac > 1 {
		return fmt.Errorf("%w: empty fraction %v outside [0,1]", ErrInvalidConfig, c.EmptyFrac)
	}
	if c.RedFrac < 0 || c.RedFrac > 1 {
		return fmt.Errorf("%w: red fraction %v outside [0,1]", ErrInvalidConfig, c.RedFrac)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [0,1]", ErrInvalidConfig, c.Threshold)
	}
	if c.Stopping < 0 {
		return fmt.Errorf("%w: stopping threshold %d is negative", ErrInvalidConfig, c.Stopping)
	}
	return nil
}
