// Package app wires the CLI commands to the service layer.
package app

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// FileHelper provides file discovery utilities
type FileHelper struct {
	// matcher holds the .gitignore rules for the current walk root,
	// nil when no .gitignore exists or gitignore handling is disabled
	matcher *ignore.GitIgnore
}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectJSFiles collects JavaScript/TypeScript files from paths. File
// system errors on individual entries are skipped, never fatal: a scan
// should degrade, not abort, when one directory is unreadable.
func (h *FileHelper) CollectJSFiles(paths []string, recursive bool, includePatterns, excludePatterns []string, respectGitignore bool) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		if !info.IsDir() {
			if h.isIncluded(path, includePatterns) && !h.isExcluded(path, excludePatterns) {
				files = append(files, path)
			}
			continue
		}

		if respectGitignore {
			h.matcher = loadGitignore(path)
		} else {
			h.matcher = nil
		}

		if recursive {
			_ = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
				if err != nil {
					if info != nil && info.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}

				if info.IsDir() {
					dirName := filepath.Base(filePath)
					for _, pattern := range excludePatterns {
						if pattern == dirName {
							return filepath.SkipDir
						}
						if matched, _ := filepath.Match(pattern, dirName); matched {
							return filepath.SkipDir
						}
					}
					if h.ignoredBy(path, filePath) {
						return filepath.SkipDir
					}
					return nil
				}

				if h.isIncluded(filePath, includePatterns) && !h.isExcluded(filePath, excludePatterns) && !h.ignoredBy(path, filePath) {
					files = append(files, filePath)
				}
				return nil
			})
		} else {
			entries, err := os.ReadDir(path)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				filePath := filepath.Join(path, entry.Name())
				if h.isIncluded(filePath, includePatterns) && !h.isExcluded(filePath, excludePatterns) && !h.ignoredBy(path, filePath) {
					files = append(files, filePath)
				}
			}
		}
	}

	return files, nil
}

// FileExists checks if a path exists and is a regular file
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// isJSFile checks if a file is JavaScript/TypeScript based on extension
func (h *FileHelper) isJSFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".js" || ext == ".ts" || ext == ".jsx" || ext == ".tsx" ||
		ext == ".mjs" || ext == ".cjs" || ext == ".mts" || ext == ".cts"
}

// isIncluded checks a path against the configured include patterns,
// matching the file name against each pattern's final segment so globs
// like **/*.ts work without full glob support. An empty list falls back
// to the JS/TS extension check.
func (h *FileHelper) isIncluded(path string, includePatterns []string) bool {
	if len(includePatterns) == 0 {
		return h.isJSFile(path)
	}
	base := filepath.Base(path)
	for _, pattern := range includePatterns {
		if matched, _ := filepath.Match(filepath.Base(pattern), base); matched {
			return true
		}
	}
	return false
}

// isExcluded checks if a path matches any exclude pattern
func (h *FileHelper) isExcluded(path string, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// ignoredBy checks the walk root's .gitignore rules against a path
func (h *FileHelper) ignoredBy(root, path string) bool {
	if h.matcher == nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return h.matcher.MatchesPath(rel)
}

// loadGitignore parses the .gitignore at the walk root, nil when absent or
// unreadable
func loadGitignore(root string) *ignore.GitIgnore {
	matcher, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return matcher
}

// ResolveFilePaths returns existing files directly or collects files from
// directories
func ResolveFilePaths(
	fileHelper *FileHelper,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
	respectGitignore bool,
) ([]string, error) {
	allFiles := true
	for _, path := range paths {
		exists, err := fileHelper.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}
	if allFiles {
		return paths, nil
	}
	return fileHelper.CollectJSFiles(paths, recursive, includePatterns, excludePatterns, respectGitignore)
}
