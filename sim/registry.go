package sim

import (
	"fmt"
	"sort"
)

// Algorithm names one point in the policy space spanned by update mode,
// selection method, and eligibility filter. The registry below enumerates
// the 18 distinct combinations: single mode has no batch snapshot to vary,
// so it contributes 6 variants against 12 for whitebatch and batch.
type Algorithm struct {
	Mode      Mode
	Selection Selection
	Filter    Filter
}

var algorithms = map[string]Algorithm{
	"singleRandom":                 {ModeSingle, SelectRandom, FilterAny},
	"singleClosest":                {ModeSingle, SelectClosest, FilterAny},
	"singleRandomSatisfyStop":      {ModeSingle, SelectRandom, FilterSatisfyStop},
	"singleRandomSatisfyContinue":  {ModeSingle, SelectRandom, FilterSatisfyContinue},
	"singleClosestSatisfyStop":     {ModeSingle, SelectClosest, FilterSatisfyStop},
	"singleClosestSatisfyContinue": {ModeSingle, SelectClosest, FilterSatisfyContinue},

	"whitebatchRandom":                 {ModeWhitebatch, SelectRandom, FilterAny},
	"whitebatchClosest":                {ModeWhitebatch, SelectClosest, FilterAny},
	"whitebatchRandomSatisfyStop":      {ModeWhitebatch, SelectRandom, FilterSatisfyStop},
	"whitebatchRandomSatisfyContinue":  {ModeWhitebatch, SelectRandom, FilterSatisfyContinue},
	"whitebatchClosestSatisfyStop":     {ModeWhitebatch, SelectClosest, FilterSatisfyStop},
	"whitebatchClosestSatisfyContinue": {ModeWhitebatch, SelectClosest, FilterSatisfyContinue},

	"batchRandom":                 {ModeBatch, SelectRandom, FilterAny},
	"batchClosest":                {ModeBatch, SelectClosest, FilterAny},
	"batchRandomSatisfyStop":      {ModeBatch, SelectRandom, FilterSatisfyStop},
	"batchRandomSatisfyContinue":  {ModeBatch, SelectRandom, FilterSatisfyContinue},
	"batchClosestSatisfyStop":     {ModeBatch, SelectClosest, FilterSatisfyStop},
	"batchClosestSatisfyContinue": {ModeBatch, SelectClosest, FilterSatisfyContinue},
}

// Lookup resolves a registered algorithm by exact name.
func Lookup(name string) (Algorithm, error) {
	alg, ok := algorithms[name]
	if !ok {
		return Algorithm{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return alg, nil
}

// Names returns all registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
