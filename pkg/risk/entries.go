package risk

import "github.com/iwvelando/flip-forecast/pkg/scenario"

// DefaultWeights are the probabilities given to the named presets when the
// caller supplies none.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		scenario.PresetBase:   60,
		scenario.PresetBest:   20,
		scenario.PresetWorstA: 20,
	}
}

// EntriesFromResults turns scenario results into weighted entries. Results
// without a weight are skipped.
func EntriesFromResults(results []scenario.Result, weights map[string]float64) []Entry {
	entries := make([]Entry, 0, len(results))
	for _, r := range results {
		w, ok := weights[r.Name]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Name:        r.Name,
			Profit:      r.NetProfit,
			Probability: w,
		})
	}
	return entries
}
