package app

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/prescan-dev/prescan/domain"
	"github.com/prescan-dev/prescan/internal/extractor"
)

// ScanUseCase orchestrates the code-health scan workflow
type ScanUseCase struct {
	service    domain.HealthService
	formatter  domain.HealthFormatter
	fileHelper *FileHelper

	// newService creates a fresh service per project root for multi-root
	// scans; nil means multi-root requests reuse the single service
	newService func() domain.HealthService
}

// NewScanUseCase creates a new scan use case
func NewScanUseCase(service domain.HealthService, formatter domain.HealthFormatter) *ScanUseCase {
	return &ScanUseCase{
		service:    service,
		formatter:  formatter,
		fileHelper: NewFileHelper(),
	}
}

// WithServiceFactory sets a factory used to create one service per project
// root when scanning multiple roots
func (uc *ScanUseCase) WithServiceFactory(factory func() domain.HealthService) *ScanUseCase {
	uc.newService = factory
	return uc
}

// Execute performs the complete scan workflow: discover files, analyze,
// and render the response
func (uc *ScanUseCase) Execute(ctx context.Context, req domain.HealthRequest) (*domain.HealthResponse, error) {
	response, err := uc.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.OutputWriter != nil {
		if err := uc.formatter.Write(response, req.OutputFormat, req.OutputWriter); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
	}
	return response, nil
}

// Analyze discovers files and runs the scan without rendering
func (uc *ScanUseCase) Analyze(ctx context.Context, req domain.HealthRequest) (*domain.HealthResponse, error) {
	if len(req.Paths) == 0 {
		return nil, domain.ErrNoPaths
	}

	respectGitignore := req.RespectGitignore == nil || *req.RespectGitignore
	files, err := ResolveFilePaths(
		uc.fileHelper,
		req.Paths,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
		respectGitignore,
	)
	if err != nil {
		return nil, domain.NewIOError("failed to collect files", err)
	}
	if len(files) == 0 {
		return nil, domain.ErrNoFiles
	}

	req.Paths = files
	return uc.service.Analyze(ctx, req)
}

// scanRootTask adapts a single project root to the ExecutableTask interface
type scanRootTask struct {
	root     string
	req      domain.HealthRequest
	usecase  *ScanUseCase
	response *domain.HealthResponse
	mu       *sync.Mutex
}

func (t *scanRootTask) Name() string { return t.root }

func (t *scanRootTask) IsEnabled() bool { return true }

func (t *scanRootTask) Execute(ctx context.Context) (interface{}, error) {
	req := t.req
	req.Paths = []string{t.root}

	uc := t.usecase
	if t.usecase.newService != nil {
		uc = NewScanUseCase(t.usecase.newService(), t.usecase.formatter)
	}

	response, err := uc.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.response = response
	t.mu.Unlock()
	return response, nil
}

// Executor runs tasks concurrently; the service parallel executor
// implements it
type Executor interface {
	Execute(ctx context.Context, tasks []domain.ExecutableTask) error
}

// ExecuteMultiRoot scans several project roots concurrently, one task per
// root, and returns the responses keyed by root. Roots are derived from
// the request paths by the nearest package.json; each scan itself remains
// single-threaded.
func (uc *ScanUseCase) ExecuteMultiRoot(ctx context.Context, req domain.HealthRequest, executor Executor) (map[string]*domain.HealthResponse, error) {
	roots := groupByProjectRoot(req.Paths)
	if len(roots) == 0 {
		return nil, domain.ErrNoPaths
	}

	var mu sync.Mutex
	tasks := make([]domain.ExecutableTask, 0, len(roots))
	byRoot := make(map[string]*scanRootTask, len(roots))
	for _, root := range roots {
		task := &scanRootTask{root: root, req: req, usecase: uc, mu: &mu}
		byRoot[root] = task
		tasks = append(tasks, task)
	}

	err := executor.Execute(ctx, tasks)

	responses := make(map[string]*domain.HealthResponse, len(roots))
	for root, task := range byRoot {
		if task.response != nil {
			responses[root] = task.response
		}
	}
	return responses, err
}

// groupByProjectRoot maps each input path to its project root and returns
// the distinct roots, sorted
func groupByProjectRoot(paths []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, path := range paths {
		root := extractor.FindProjectRoot(path)
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}
	}
	sort.Strings(roots)
	return roots
}
