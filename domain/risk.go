package domain

// RiskLevel is the coarse classification of how dangerous a file is to
// edit, distinct from the continuous 0-100 score
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// riskRank orders risk levels for sorting (higher is worse)
var riskRank = map[RiskLevel]int{
	RiskLevelLow:    0,
	RiskLevelMedium: 1,
	RiskLevelHigh:   2,
}

// Rank returns a sortable ordinal for the risk level
func (r RiskLevel) Rank() int {
	return riskRank[r]
}

// RiskProfile holds the graph-derived and local risk signals for one file
type RiskProfile struct {
	// Level is the classified risk, evaluated high > medium > low
	Level RiskLevel `json:"risk_level"`

	// CircularDeps are the other file ids sharing any import cycle with
	// this file (empty when the file is in no cycle)
	CircularDeps []string `json:"circular_deps"`

	// IncomingDeps are the file ids whose imports resolve to this file
	IncomingDeps []string `json:"incoming_deps"`

	// DownstreamUntested is the subset of IncomingDeps lacking their own
	// discoverable test file. Only valid after the second propagation
	// pass; provisional profiles leave it nil.
	DownstreamUntested []string `json:"downstream_untested"`

	// GlobalMutations is the count of module-scope mutable declarations
	GlobalMutations int `json:"global_mutations"`

	// MissingReturnTypes is the count of exported declarations lacking an
	// explicit return type
	MissingReturnTypes int `json:"missing_return_types"`
}

// IncomingCount returns the fan-in of the file
func (p *RiskProfile) IncomingCount() int {
	return len(p.IncomingDeps)
}

// InCycle reports whether the file participates in any import cycle
func (p *RiskProfile) InCycle() bool {
	return len(p.CircularDeps) > 0
}
