package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText  OutputFormat = "text"
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// HealthRequest represents a request for a code-health scan
type HealthRequest struct {
	// Paths are the input files or directories to scan
	Paths []string

	// Policy selects score-only or risk-only reporting
	Policy OutputPolicy

	// GateThreshold is the aggregate score below which the check command
	// fails under the score policy
	GateThreshold int

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer

	// FailOnHigh controls whether any high-risk file fails the check
	// command under the risk policy; nil applies the config default
	FailOnHigh *bool

	// ShowClean controls whether files with nothing to flag appear in
	// the text and table listings; nil means show them
	ShowClean *bool

	// Analysis options
	Recursive        bool
	IncludePatterns  []string
	ExcludePatterns  []string
	RespectGitignore *bool

	// ConfigPath is an explicit config file path, empty for discovery
	ConfigPath string
}

// BoolPtr returns a pointer to the given bool, for the request's optional
// boolean fields
func BoolPtr(b bool) *bool {
	return &b
}

// FileReport is the complete per-file output consumed by the Reporter
type FileReport struct {
	// Path is the scanned file path
	Path string `json:"path"`

	// Score holds the banded sub-scores (score policy)
	Score SignalScore `json:"score"`

	// Overall is the weighted 0-100 score
	Overall int `json:"overall"`

	// TopIssue names the lowest-scoring axis; empty when the file is clean
	TopIssue SignalAxis `json:"top_issue,omitempty"`

	// Risk holds the graph-derived risk profile (risk policy)
	Risk RiskProfile `json:"risk"`

	// Briefing is the assembled human-readable guidance for this file
	Briefing string `json:"briefing"`

	// Issues are per-file findings such as "file unreadable"
	Issues []string `json:"issues,omitempty"`
}

// RiskTally counts files per risk level
type RiskTally struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// RepoSummary is the repo-wide aggregate
type RepoSummary struct {
	// FilesScanned is the number of files in the result
	FilesScanned int `json:"files_scanned"`

	// AggregateScore is the rounded mean of per-file overall scores;
	// 100 when zero files were scanned
	AggregateScore int `json:"aggregate_score"`

	// Tally counts files per risk level
	Tally RiskTally `json:"tally"`

	// Headline is the policy-specific summary sentence
	Headline string `json:"headline"`
}

// HealthResponse is the stable structured record at the Reporter boundary.
// Built once per run and immutable thereafter; downstream tooling depends
// on its JSON field names.
type HealthResponse struct {
	// Files are the per-file results, ordered worst first
	Files []FileReport `json:"files"`

	// Summary is the repo-wide aggregate
	Summary RepoSummary `json:"summary"`

	// ActionItems are the capped, deduplicated repo-wide recommendations
	ActionItems []string `json:"action_items"`

	// Policy is the output policy the scan ran under
	Policy OutputPolicy `json:"policy"`

	// Warnings from degraded steps (parse failures, graph build failures)
	Warnings []string `json:"warnings,omitempty"`

	// Errors encountered during the scan
	Errors []string `json:"errors,omitempty"`

	// GeneratedAt is when the scan finished (RFC3339)
	GeneratedAt string `json:"generated_at"`

	// Version is the tool version
	Version string `json:"version"`

	// HideClean omits files with nothing to flag from the text and
	// table listings. Display hint only, never part of the stable
	// record.
	HideClean bool `json:"-"`
}

// ExitCode returns the process exit code for the response per the gate
// contract: 1 when any file is high-risk (risk policy) or the aggregate
// falls below the gate threshold (score policy), 0 otherwise.
func (r *HealthResponse) ExitCode(gateThreshold int) int {
	switch r.Policy {
	case PolicyRisk:
		if r.Summary.Tally.High > 0 {
			return 1
		}
	case PolicyScore:
		if r.Summary.AggregateScore < gateThreshold {
			return 1
		}
	}
	return 0
}

// HealthService defines the core scan pipeline
type HealthService interface {
	// Analyze runs the full scan for the given request
	Analyze(ctx context.Context, req HealthRequest) (*HealthResponse, error)
}

// HealthFormatter renders a HealthResponse to a writer
type HealthFormatter interface {
	Write(response *HealthResponse, format OutputFormat, writer io.Writer) error
}

// ProgressManager coordinates progress display across analysis tasks
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ExecutableTask is a unit of work the parallel executor can run
type ExecutableTask interface {
	Name() string
	IsEnabled() bool
	Execute(ctx context.Context) (interface{}, error)
}
