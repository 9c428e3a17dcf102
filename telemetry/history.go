// Package telemetry records per-iteration simulation output: the iteration
// history CSV, grid snapshots, and color-coded board views.
package telemetry

import "github.com/pthm-cable/schelling/sim"

// IterationRecord is one row of the iteration history CSV.
type IterationRecord struct {
	Iteration   int     `csv:"iteration"`
	Unsatisfied int     `csv:"unsatisfied"`
	Empties     int     `csv:"empties"`
	MeanRatio   float64 `csv:"mean_ratio"`
}

// Record converts driver stats into a CSV row.
func Record(st sim.IterationStats) IterationRecord {
	return IterationRecord{
		Iteration:   st.Iteration,
		Unsatisfied: st.Unsatisfied,
		Empties:     st.Empties,
		MeanRatio:   st.MeanRatio,
	}
}
