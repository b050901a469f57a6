package analyzer

import (
	"math"
	"sort"

	"github.com/prescan-dev/prescan/domain"
)

// AggregateScore computes the repo-wide aggregate as the rounded mean of
// per-file overall scores. A scan with zero files aggregates to 100.
func AggregateScore(reports []domain.FileReport) int {
	if len(reports) == 0 {
		return domain.BandGood
	}
	sum := 0
	for _, r := range reports {
		sum += r.Overall
	}
	return int(math.Round(float64(sum) / float64(len(reports))))
}

// TallyRisk counts files per risk level
func TallyRisk(reports []domain.FileReport) domain.RiskTally {
	var tally domain.RiskTally
	for _, r := range reports {
		switch r.Risk.Level {
		case domain.RiskLevelHigh:
			tally.High++
		case domain.RiskLevelMedium:
			tally.Medium++
		default:
			tally.Low++
		}
	}
	return tally
}

// SortWorstFirst orders reports so the most urgent files come first.
// Under the score policy that is ascending overall score; under the risk
// policy it is descending risk rank. Files that compare equal are ordered
// by path so output is stable across runs.
func SortWorstFirst(reports []domain.FileReport, policy domain.OutputPolicy) {
	sort.SliceStable(reports, func(i, j int) bool {
		if policy == domain.PolicyRisk {
			ri, rj := reports[i].Risk.Level.Rank(), reports[j].Risk.Level.Rank()
			if ri != rj {
				return ri > rj
			}
		}
		if reports[i].Overall != reports[j].Overall {
			return reports[i].Overall < reports[j].Overall
		}
		return reports[i].Path < reports[j].Path
	})
}
