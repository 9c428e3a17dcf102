package telemetry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pthm-cable/schelling/sim"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the final state of a run for replay and plotting.
type Snapshot struct {
	Version   int    `json:"version"`
	Seed      int64  `json:"seed"`
	Size      int    `json:"size"`
	Algorithm string `json:"algorithm"`

	Iterations int     `json:"iterations"`
	Reason     string  `json:"reason"`
	MeanRatio  float64 `json:"mean_ratio"`

	// Cells is the board as numeric color codes, row by row.
	Cells [][]int `json:"cells"`
}

// NewSnapshot captures the simulation's final state.
func NewSnapshot(s *sim.Sim, seed int64, algorithm string, res sim.RunResult) *Snapshot {
	return &Snapshot{
		Version:    SnapshotVersion,
		Seed:       seed,
		Size:       s.Config().Size,
		Algorithm:  algorithm,
		Iterations: res.Iterations,
		Reason:     res.Reason.String(),
		MeanRatio:  s.MeanRatio(),
		Cells:      ColorCodes(s.Grid()),
	}
}

// Write saves the snapshot as indented JSON.
func (s *Snapshot) Write(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot from disk, rejecting unknown versions.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return snap, nil
}
