package service

import (
	"fmt"
	"os"
	"time"

	"github.com/prescan-dev/prescan/domain"
	"github.com/schollz/progressbar/v3"
)

// scanProgress renders one progress bar per scan task on stderr, keeping
// stdout clean for the report itself.
type scanProgress struct {
	bars []*progressbar.ProgressBar
}

// NewProgressManager returns a bar-rendering manager when progress display
// is both requested and the environment is interactive, otherwise a no-op.
func NewProgressManager(enabled bool) domain.ProgressManager {
	if !enabled || !IsInteractiveEnvironment() {
		return &NoOpProgressManager{}
	}
	return &scanProgress{}
}

// StartTask opens a bar for one scan task. Updates are throttled so large
// file counts do not flood the terminal.
func (pm *scanProgress) StartTask(description string, total int) domain.TaskProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(24),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
	pm.bars = append(pm.bars, bar)
	return &barTask{bar: bar}
}

func (pm *scanProgress) IsInteractive() bool { return true }

// Close finishes any bars a failed scan left hanging
func (pm *scanProgress) Close() {
	for _, bar := range pm.bars {
		_ = bar.Finish()
	}
	pm.bars = nil
}

type barTask struct {
	bar *progressbar.ProgressBar
}

func (t *barTask) Increment(n int) {
	_ = t.bar.Add(n)
}

func (t *barTask) Describe(description string) {
	t.bar.Describe(description)
}

func (t *barTask) Complete() {
	_ = t.bar.Finish()
}

// NoOpProgressManager satisfies ProgressManager without rendering anything.
// Used for machine-readable output and non-interactive environments.
type NoOpProgressManager struct{}

func (pm *NoOpProgressManager) StartTask(_ string, _ int) domain.TaskProgress {
	return &NoOpTaskProgress{}
}

func (pm *NoOpProgressManager) IsInteractive() bool { return false }

func (pm *NoOpProgressManager) Close() {}

// NoOpTaskProgress is the task handle NoOpProgressManager issues
type NoOpTaskProgress struct{}

func (tp *NoOpTaskProgress) Increment(_ int) {}

func (tp *NoOpTaskProgress) Describe(_ string) {}

func (tp *NoOpTaskProgress) Complete() {}
