package service

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsInteractiveEnvironment reports whether stderr is attached to a
// terminal a progress bar can draw on. CI environments are treated as
// non-interactive regardless of the terminal.
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
