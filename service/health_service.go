package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prescan-dev/prescan/domain"
	"github.com/prescan-dev/prescan/internal/analyzer"
	"github.com/prescan-dev/prescan/internal/extractor"
	"github.com/prescan-dev/prescan/internal/parser"
	"github.com/prescan-dev/prescan/internal/version"
)

// fileState carries one file through the two analysis passes
type fileState struct {
	facts   domain.FileFacts
	profile domain.RiskProfile
}

// HealthServiceImpl implements the HealthService interface
type HealthServiceImpl struct {
	progress domain.ProgressManager
	cache    *GraphCache
}

// NewHealthService creates a new health service implementation
func NewHealthService() *HealthServiceImpl {
	return &HealthServiceImpl{
		cache: NewGraphCache(),
	}
}

// NewHealthServiceWithProgress creates a new health service with progress
// reporting
func NewHealthServiceWithProgress(pm domain.ProgressManager) *HealthServiceImpl {
	return &HealthServiceImpl{
		progress: pm,
		cache:    NewGraphCache(),
	}
}

// Analyze runs the full scan pipeline: extract facts for every file, build
// the project import graph, propagate graph-derived risk, then aggregate
// and assemble briefings. Fact extraction is sequential; pass two runs only
// after pass one completes for every file.
func (s *HealthServiceImpl) Analyze(ctx context.Context, req domain.HealthRequest) (*domain.HealthResponse, error) {
	defer s.cache.Clear()

	if len(req.Paths) == 0 {
		return nil, domain.ErrNoPaths
	}

	var warnings []string
	var errors []string

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if s.progress != nil {
		task = s.progress.StartTask("Scanning files", len(req.Paths))
	}
	defer task.Complete()

	root := extractor.FindProjectRoot(req.Paths[0])
	ext := extractor.New(root)

	// Pass 1: facts and provisional risk, one file at a time
	states := make([]*fileState, 0, len(req.Paths))
	for _, path := range req.Paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("scan cancelled: %w", ctx.Err())
		default:
		}

		state := s.extractFile(path, ext, &warnings)
		states = append(states, state)
		task.Increment(1)
	}

	// The graph covers every file under the root, not just the scanned
	// subset. A failed build degrades to no graph rather than failing
	// the scan.
	graph, err := s.cache.Get(ctx, root)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("dependency graph unavailable: %v", err))
		graph = nil
	}

	// Pass 2: graph-derived fields from the now-complete snapshot
	propagator := analyzer.NewRiskPropagator(graph)
	factsByID := make(map[string]*domain.FileFacts, len(states))
	for _, state := range states {
		factsByID[moduleIDForPath(root, state.facts.Path)] = &state.facts
	}
	for _, state := range states {
		if state.facts.Unreadable {
			continue
		}
		propagator.Propagate(&state.facts, &state.profile, factsByID)
	}

	response := s.buildResponse(states, req)
	response.Warnings = warnings
	response.Errors = errors
	return response, nil
}

// moduleIDForPath maps a scanned path to its graph node ID: relative to
// the project root with forward slashes
func moduleIDForPath(root, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// extractFile runs pass one for a single file
func (s *HealthServiceImpl) extractFile(path string, ext *extractor.Extractor, warnings *[]string) *fileState {
	source, err := os.ReadFile(path)
	if err != nil {
		// Nothing about the file can be verified, so it is never safe
		// to start from
		return &fileState{
			facts:   extractor.UnreadableFacts(path),
			profile: domain.RiskProfile{Level: domain.RiskLevelHigh},
		}
	}

	// Parse failures degrade to empty facts so scoring proceeds with
	// full bad-case penalties
	ast, err := parser.ParseForLanguage(path, source)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("[%s] parse failed: %v", path, err))
		ast = nil
	}

	facts := ext.Extract(path, source, ast)
	state := &fileState{facts: facts}
	state.profile = analyzer.NewRiskPropagator(nil).Provisional(&facts)
	return state
}

// buildResponse scores, sorts, and summarizes the completed states
func (s *HealthServiceImpl) buildResponse(states []*fileState, req domain.HealthRequest) *domain.HealthResponse {
	scorer := analyzer.NewScorer()
	generator := analyzer.NewBriefingGenerator()

	reports := make([]domain.FileReport, 0, len(states))
	for _, state := range states {
		score := scorer.Score(&state.facts)
		report := domain.FileReport{
			Path:    state.facts.Path,
			Score:   score,
			Overall: score.Overall(),
			Risk:    state.profile,
		}
		if !score.IsClean() {
			report.TopIssue = score.TopIssue()
		}
		if state.facts.Unreadable {
			report.Issues = append(report.Issues, "file unreadable")
			report.Briefing = "file unreadable"
		} else {
			report.Briefing = generator.FileBriefing(&state.facts, &state.profile)
		}
		reports = append(reports, report)
	}

	analyzer.SortWorstFirst(reports, req.Policy)

	aggregate := analyzer.AggregateScore(reports)
	tally := analyzer.TallyRisk(reports)

	var actionItems []string
	if req.Policy == domain.PolicyScore {
		actionItems = generator.ScoreActionItems(reports, aggregate)
	} else {
		actionItems = generator.ActionItems(reports)
	}

	return &domain.HealthResponse{
		Files: reports,
		Summary: domain.RepoSummary{
			FilesScanned:   len(reports),
			AggregateScore: aggregate,
			Tally:          tally,
			Headline:       generator.Headline(req.Policy, tally, aggregate, len(reports)),
		},
		ActionItems: actionItems,
		Policy:      req.Policy,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
		HideClean:   req.ShowClean != nil && !*req.ShowClean,
	}
}
