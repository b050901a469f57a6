package analyzer

import (
	"fmt"
	"strings"

	"github.com/prescan-dev/prescan/domain"
)

// maxActionItems caps the repo-wide recommendation list
const maxActionItems = 5

// maxNamedDownstream is how many downstream files a briefing names before
// truncating with a "+K more" suffix
const maxNamedDownstream = 3

// lowAssertionThreshold is the assertion count below which test coverage
// is treated as too thin to rely on
const lowAssertionThreshold = 5

// BriefingGenerator assembles per-file briefings, repo-wide action items,
// and the summary headline
type BriefingGenerator struct{}

// NewBriefingGenerator creates a new BriefingGenerator
func NewBriefingGenerator() *BriefingGenerator {
	return &BriefingGenerator{}
}

// FileBriefing assembles the briefing fragments for one file in fixed
// precedence, omitting fragments that do not apply. A file with no
// applicable fragment is safe to edit.
func (g *BriefingGenerator) FileBriefing(facts *domain.FileFacts, profile *domain.RiskProfile) string {
	var fragments []string

	if n := profile.IncomingCount(); n > 0 {
		fragments = append(fragments, fmt.Sprintf("editing this affects %d %s", n, pluralize(n, "file", "files")))
	}

	if len(profile.DownstreamUntested) > 0 {
		named := profile.DownstreamUntested
		suffix := ""
		if len(named) > maxNamedDownstream {
			suffix = fmt.Sprintf(" +%d more", len(named)-maxNamedDownstream)
			named = named[:maxNamedDownstream]
		}
		fragments = append(fragments, fmt.Sprintf(
			"%s%s %s no tests; changes may break silently",
			strings.Join(named, ", "), suffix,
			pluralize(len(profile.DownstreamUntested), "has", "have"),
		))
	}

	if profile.InCycle() {
		fragments = append(fragments, fmt.Sprintf(
			"part of a circular dependency; read %s first", profile.CircularDeps[0]))
	}

	if len(facts.GlobalMutations) > 0 {
		fragments = append(fragments, fmt.Sprintf(
			"shares mutable state (%s)", strings.Join(facts.MutatedNames(), ", ")))
	}

	if profile.MissingReturnTypes > 0 {
		fragments = append(fragments, fmt.Sprintf(
			"%d exported %s missing return types",
			profile.MissingReturnTypes,
			pluralize(profile.MissingReturnTypes, "declaration", "declarations"),
		))
	}

	if profile.IncomingCount() > 5 && facts.TestAssertionCount < lowAssertionThreshold {
		fragments = append(fragments, "write tests before editing")
	}

	if len(fragments) == 0 {
		return "safe to edit"
	}
	return strings.Join(fragments, "; ")
}

// ActionItems generates the repo-wide recommendations in priority order:
// downstream-untested impact first, then circular-dependency hints, then
// global state with high fan-in. The list is deduplicated and capped.
func (g *BriefingGenerator) ActionItems(reports []domain.FileReport) []string {
	items := []string{}
	seen := make(map[string]bool)

	add := func(item string) {
		if len(items) < maxActionItems && !seen[item] {
			seen[item] = true
			items = append(items, item)
		}
	}

	for _, r := range reports {
		if len(r.Risk.DownstreamUntested) > 0 && r.Risk.IncomingCount() > 0 {
			add(fmt.Sprintf(
				"add tests for the %d untested %s of %s before touching it",
				len(r.Risk.DownstreamUntested),
				pluralize(len(r.Risk.DownstreamUntested), "dependent", "dependents"),
				r.Path,
			))
		}
	}
	for _, r := range reports {
		if r.Risk.InCycle() {
			add(fmt.Sprintf(
				"untangle the import cycle between %s and %s",
				r.Path, r.Risk.CircularDeps[0],
			))
		}
	}
	for _, r := range reports {
		if r.Risk.GlobalMutations > 0 && r.Risk.IncomingCount() > 3 {
			add(fmt.Sprintf(
				"%s holds module-level mutable state with %d importers; isolate it",
				r.Path, r.Risk.IncomingCount(),
			))
		}
	}
	return items
}

// ScoreActionItems generates the score-policy recommendations: split the
// single worst file below 40, call out the top issue of the next two such
// files, and nudge toward tests when nothing is below 40 but the aggregate
// is below 80.
func (g *BriefingGenerator) ScoreActionItems(sorted []domain.FileReport, aggregate int) []string {
	items := []string{}

	var below []domain.FileReport
	for _, r := range sorted {
		if r.Overall < domain.BandWeak {
			below = append(below, r)
		}
	}

	if len(below) > 0 {
		items = append(items, fmt.Sprintf(
			"split %s first (score %d, biggest win)", below[0].Path, below[0].Overall))
		for _, r := range below[1:] {
			if len(items) >= maxActionItems {
				break
			}
			items = append(items, fmt.Sprintf(
				"%s: %s scores %d", r.Path, AxisLabel(r.Score.TopIssue()), r.Score.Axis(r.Score.TopIssue())))
			if len(items) == 3 {
				break
			}
		}
		return items
	}

	if aggregate < 80 {
		items = append(items, "no single file stands out; add tests to lift the aggregate score")
	}
	return items
}

// Headline produces the policy-specific summary sentence
func (g *BriefingGenerator) Headline(policy domain.OutputPolicy, tally domain.RiskTally, aggregate, filesScanned int) string {
	if policy == domain.PolicyScore {
		return fmt.Sprintf("aggregate score %d across %d %s",
			aggregate, filesScanned, pluralize(filesScanned, "file", "files"))
	}

	if tally.High == 0 && tally.Medium == 0 {
		return "all clear, safe to start"
	}

	var parts []string
	if tally.High > 0 {
		parts = append(parts, fmt.Sprintf("%d high-risk %s", tally.High, pluralize(tally.High, "file", "files")))
	}
	if tally.Medium > 0 {
		parts = append(parts, fmt.Sprintf("%d medium-risk %s", tally.Medium, pluralize(tally.Medium, "file", "files")))
	}
	if tally.Low > 0 {
		parts = append(parts, fmt.Sprintf("%d low-risk %s", tally.Low, pluralize(tally.Low, "file", "files")))
	}
	return strings.Join(parts, ", ")
}

// AxisLabel renders a signal axis for human-readable output
func AxisLabel(axis domain.SignalAxis) string {
	switch axis {
	case domain.AxisFunctionLength:
		return "function length"
	case domain.AxisCoupling:
		return "coupling"
	case domain.AxisTestCoverage:
		return "test coverage"
	case domain.AxisCommentDensity:
		return "comment density"
	case domain.AxisFileSize:
		return "file size"
	}
	return string(axis)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
