// Package analyzer computes per-file signal scores, builds the project
// import graph, propagates graph-derived risk, and assembles briefings.
package analyzer

import (
	"github.com/prescan-dev/prescan/domain"
)

// Scorer bands raw file facts into fixed signal scores
type Scorer struct{}

// NewScorer creates a new Scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes all five axis scores for a file. Unreadable files score
// zero on every axis; empty files score 100 on every axis.
func (s *Scorer) Score(facts *domain.FileFacts) domain.SignalScore {
	if facts.Unreadable {
		return domain.SignalScore{}
	}
	if facts.IsEmpty() {
		return domain.SignalScore{
			FunctionLength: domain.BandGood,
			Coupling:       domain.BandGood,
			TestCoverage:   domain.BandGood,
			CommentDensity: domain.BandGood,
			FileSize:       domain.BandGood,
		}
	}
	return domain.SignalScore{
		FunctionLength: scoreFunctionLength(facts),
		Coupling:       scoreCoupling(facts),
		TestCoverage:   scoreTestCoverage(facts),
		CommentDensity: scoreCommentDensity(facts),
		FileSize:       scoreFileSize(facts),
	}
}

// scoreFunctionLength bands the average function length. Files with no
// detected functions score 100: nothing measurable means nothing to flag.
func scoreFunctionLength(facts *domain.FileFacts) int {
	if len(facts.Functions) == 0 {
		return domain.BandGood
	}
	avg := facts.AverageFunctionLines()
	switch {
	case avg > 50:
		return domain.BandCritical
	case avg > 30:
		return domain.BandWeak
	case avg > 20:
		return domain.BandFair
	default:
		return domain.BandGood
	}
}

func scoreCoupling(facts *domain.FileFacts) int {
	switch {
	case facts.ImportCount > 8:
		return domain.BandCritical
	case facts.ImportCount > 5:
		return domain.BandWeak
	case facts.ImportCount > 3:
		return domain.BandFair
	default:
		return domain.BandGood
	}
}

// scoreTestCoverage is binary: a discoverable test file exists or it does not
func scoreTestCoverage(facts *domain.FileFacts) int {
	if facts.HasTestFile {
		return domain.BandGood
	}
	return domain.BandCritical
}

func scoreCommentDensity(facts *domain.FileFacts) int {
	if facts.TotalLines == 0 {
		return domain.BandGood
	}
	ratio := float64(facts.CommentLines) / float64(facts.TotalLines)
	switch {
	case ratio > 0.10:
		return domain.BandGood
	case ratio > 0.05:
		return domain.BandFair
	case ratio > 0.01:
		return domain.BandWeak
	default:
		return domain.BandPoor
	}
}

func scoreFileSize(facts *domain.FileFacts) int {
	switch {
	case facts.TotalLines > 500:
		return domain.BandCritical
	case facts.TotalLines > 300:
		return domain.BandWeak
	case facts.TotalLines > 150:
		return domain.BandFair
	default:
		return domain.BandGood
	}
}
