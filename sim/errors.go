package sim

import "errors"

var (
	// ErrUnknownAlgorithm is returned by Run when the algorithm name is not
	// registered. No simulation state is mutated.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrInvalidConfig is returned before any grid allocation when run
	// parameters are out of range.
	ErrInvalidConfig = errors.New("invalid config")
)
