package domain

import "math"

// Score bands. Every axis score is one of these fixed values.
const (
	BandCritical = 0
	BandPoor     = 10
	BandWeak     = 40
	BandFair     = 70
	BandGood     = 100
)

// SignalAxis identifies one measurable code-quality axis
type SignalAxis string

// Axes in fixed precedence order: when two axes tie for the lowest score,
// the earlier axis wins as the file's top issue.
const (
	AxisFunctionLength SignalAxis = "function_length"
	AxisCoupling       SignalAxis = "coupling"
	AxisTestCoverage   SignalAxis = "test_coverage"
	AxisCommentDensity SignalAxis = "comment_density"
	AxisFileSize       SignalAxis = "file_size"
)

// AxisPrecedence is the tie-break order for top-issue selection
var AxisPrecedence = []SignalAxis{
	AxisFunctionLength,
	AxisCoupling,
	AxisTestCoverage,
	AxisCommentDensity,
	AxisFileSize,
}

// Aggregation weights. They sum to 1.0; the overall score is the rounded
// weighted sum of the axis scores.
const (
	WeightFunctionLength = 0.30
	WeightCoupling       = 0.25
	WeightTestCoverage   = 0.25
	WeightCommentDensity = 0.10
	WeightFileSize       = 0.10
)

// SignalScore holds the banded sub-score for each axis
type SignalScore struct {
	FunctionLength int `json:"function_length"`
	Coupling       int `json:"coupling"`
	TestCoverage   int `json:"test_coverage"`
	CommentDensity int `json:"comment_density"`
	FileSize       int `json:"file_size"`
}

// Axis returns the score for the given axis
func (s SignalScore) Axis(axis SignalAxis) int {
	switch axis {
	case AxisFunctionLength:
		return s.FunctionLength
	case AxisCoupling:
		return s.Coupling
	case AxisTestCoverage:
		return s.TestCoverage
	case AxisCommentDensity:
		return s.CommentDensity
	case AxisFileSize:
		return s.FileSize
	}
	return 0
}

// Overall computes the weighted overall score, rounded to an integer
func (s SignalScore) Overall() int {
	sum := WeightFunctionLength*float64(s.FunctionLength) +
		WeightCoupling*float64(s.Coupling) +
		WeightTestCoverage*float64(s.TestCoverage) +
		WeightCommentDensity*float64(s.CommentDensity) +
		WeightFileSize*float64(s.FileSize)
	return int(math.Round(sum))
}

// TopIssue returns the axis with the lowest score, using the fixed
// precedence order to break ties
func (s SignalScore) TopIssue() SignalAxis {
	top := AxisPrecedence[0]
	lowest := s.Axis(top)
	for _, axis := range AxisPrecedence[1:] {
		if s.Axis(axis) < lowest {
			top = axis
			lowest = s.Axis(axis)
		}
	}
	return top
}

// IsClean reports whether the file has no issue worth flagging
// (every axis, including the top issue, scores at least BandFair)
func (s SignalScore) IsClean() bool {
	return s.Axis(s.TopIssue()) >= BandFair
}

// OutputPolicy selects which of the two aggregation/reporting policies a
// scan runs under. The engine is shared; the policies diverge only in how
// results are classified and summarized.
type OutputPolicy string

const (
	// PolicyScore reports continuous 0-100 quality scores with a
	// repo-wide mean aggregate
	PolicyScore OutputPolicy = "score"

	// PolicyRisk reports discrete low/medium/high risk levels with a
	// per-level tally
	PolicyRisk OutputPolicy = "risk"
)
