package analyzer

import (
	"path/filepath"
	"sort"

	"github.com/prescan-dev/prescan/domain"
	"github.com/prescan-dev/prescan/internal/extractor"
)

// RiskPropagator derives per-file risk profiles from the import graph and
// the completed facts snapshot. Facts are read, never written: the first
// pass produces provisional profiles from local facts alone, and the
// second pass fills in the graph-derived fields once every file's facts
// are known.
type RiskPropagator struct {
	graph *domain.ImportGraph

	// testfiles caches HasTestFile lookups for importers outside the
	// scanned set, keyed by module ID
	testFiles map[string]bool
}

// NewRiskPropagator creates a propagator over the given graph. A nil graph
// degrades gracefully: graph-derived fields stay empty and classification
// uses local facts only.
func NewRiskPropagator(graph *domain.ImportGraph) *RiskPropagator {
	return &RiskPropagator{
		graph:     graph,
		testFiles: make(map[string]bool),
	}
}

// Provisional builds the first-pass profile from local facts alone.
// DownstreamUntested is left nil; it is not valid until Propagate runs.
func (p *RiskPropagator) Provisional(facts *domain.FileFacts) domain.RiskProfile {
	profile := domain.RiskProfile{
		GlobalMutations:    len(facts.GlobalMutations),
		MissingReturnTypes: facts.MissingReturnTypes,
	}
	profile.Level = classify(&profile, facts.HasTestFile)
	return profile
}

// Propagate runs the second pass for one file: cycle membership, fan-in,
// and the downstream-untested set, then reclassifies. The factsByID index
// must hold the completed facts for every scanned file.
func (p *RiskPropagator) Propagate(facts *domain.FileFacts, profile *domain.RiskProfile, factsByID map[string]*domain.FileFacts) {
	if p.graph == nil {
		profile.DownstreamUntested = []string{}
		profile.Level = classify(profile, facts.HasTestFile)
		return
	}

	id := p.moduleIDFor(facts.Path)

	profile.CircularDeps = p.graph.CycleMembers(id)

	incoming := p.graph.Incoming(id)
	profile.IncomingDeps = make([]string, 0, len(incoming))
	profile.DownstreamUntested = []string{}
	for _, edge := range incoming {
		profile.IncomingDeps = append(profile.IncomingDeps, edge.From)
		if !p.importerHasTest(edge.From, factsByID) {
			profile.DownstreamUntested = append(profile.DownstreamUntested, edge.From)
		}
	}
	sort.Strings(profile.IncomingDeps)
	sort.Strings(profile.DownstreamUntested)

	profile.Level = classify(profile, facts.HasTestFile)
}

// moduleIDFor maps a scanned file path to its graph node ID
func (p *RiskPropagator) moduleIDFor(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	rel, err := filepath.Rel(p.graph.Root, abs)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// importerHasTest reports whether the importing module has its own test
// file. Importers inside the scanned set answer from the facts snapshot;
// importers outside it are looked up directly on disk and cached.
func (p *RiskPropagator) importerHasTest(id string, factsByID map[string]*domain.FileFacts) bool {
	if facts, ok := factsByID[id]; ok {
		return facts.HasTestFile
	}
	if has, ok := p.testFiles[id]; ok {
		return has
	}
	node := p.graph.GetNode(id)
	has := false
	if node != nil && node.FilePath != "" {
		has = extractor.FindTestFile(node.FilePath, p.graph.Root) != ""
	}
	p.testFiles[id] = has
	return has
}

// classify evaluates the risk rules in priority order: every high rule
// first, then every medium rule, then low. Counting rules use the
// propagated fields, which are zero-valued on provisional profiles.
func classify(profile *domain.RiskProfile, hasTestFile bool) domain.RiskLevel {
	in := profile.IncomingCount()

	switch {
	case profile.InCycle():
		return domain.RiskLevelHigh
	case in > 5 && !hasTestFile:
		return domain.RiskLevelHigh
	case in > 3 && len(profile.DownstreamUntested) > 2:
		return domain.RiskLevelHigh
	case profile.GlobalMutations > 2:
		return domain.RiskLevelHigh
	case profile.MissingReturnTypes > 5:
		return domain.RiskLevelHigh
	}

	switch {
	case in > 2 && !hasTestFile:
		return domain.RiskLevelMedium
	case profile.GlobalMutations > 0:
		return domain.RiskLevelMedium
	case profile.MissingReturnTypes > 2:
		return domain.RiskLevelMedium
	case !hasTestFile:
		return domain.RiskLevelMedium
	}

	return domain.RiskLevelLow
}
