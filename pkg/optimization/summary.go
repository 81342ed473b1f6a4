// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a single max-offer search.
type Summary struct {
	Scope           string   `json:"scope" yaml:"scope"`
	TargetName      string   `json:"targetName" yaml:"targetName"`
	Field           string   `json:"field" yaml:"field"`
	Kind            string   `json:"kind" yaml:"kind"`
	Target          float64  `json:"target" yaml:"target"`
	Original        float64  `json:"original" yaml:"original"`
	Value           float64  `json:"value" yaml:"value"`
	Achieved        float64  `json:"achieved" yaml:"achieved"`
	Headroom        float64  `json:"headroom" yaml:"headroom"`
	Iterations      int      `json:"iterations" yaml:"iterations"`
	Converged       bool     `json:"converged" yaml:"converged"`
	Notes           []string `json:"notes,omitempty" yaml:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty" yaml:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty" yaml:"valueDisplay,omitempty"`
}

// Feasible reports whether the chosen value reaches the target.
func (s Summary) Feasible() bool {
	return s.Headroom >= 0
}
