package extractor

import (
	"os"
	"path/filepath"
	"strings"
)

// testExtensions are the extensions a test file may carry, in the order
// candidates are probed.
var testExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", ".mjs", ".cjs"}

// testDirNames are the project-root directories mirrored source trees may
// keep tests under.
var testDirNames = []string{"tests", "test"}

// FindProjectRoot walks upward from the given path looking for the nearest
// directory containing a package.json. It falls back to the file's own
// directory when no marker is found. The result is always absolute so
// graph node IDs and lookup IDs share one coordinate system no matter how
// the scan paths were spelled.
func FindProjectRoot(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	dir := path
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		dir = filepath.Dir(path)
	}

	for current := dir; ; {
		if _, err := os.Stat(filepath.Join(current, "package.json")); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}

// FindTestFile locates the test file covering the given source file.
// Candidates are probed in a fixed order and the first hit wins:
// sibling <base>.test.<ext>, sibling <base>.spec.<ext>, sibling
// __tests__/<base>.<ext>, then mirrored tests/ and test/ directories at
// the project root, both with the directory-mirrored subpath and flat.
// Returns the empty string when nothing matches.
func FindTestFile(sourcePath, projectRoot string) string {
	dir := filepath.Dir(sourcePath)
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))

	for _, ext := range testExtensions {
		if p := existing(filepath.Join(dir, base+".test"+ext)); p != "" {
			return p
		}
	}
	for _, ext := range testExtensions {
		if p := existing(filepath.Join(dir, base+".spec"+ext)); p != "" {
			return p
		}
	}
	for _, ext := range testExtensions {
		if p := existing(filepath.Join(dir, "__tests__", base+ext)); p != "" {
			return p
		}
	}

	if projectRoot == "" {
		return ""
	}

	rel, err := filepath.Rel(projectRoot, sourcePath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	// Strip the leading source directory so src/a/b.ts mirrors to
	// tests/a/b.test.ts rather than tests/src/a/b.test.ts
	subdir := filepath.Dir(rel)
	if first, rest, found := strings.Cut(subdir, string(filepath.Separator)); found {
		if first == "src" || first == "lib" {
			subdir = rest
		}
	} else if subdir == "src" || subdir == "lib" {
		subdir = "."
	}

	for _, testDir := range testDirNames {
		root := filepath.Join(projectRoot, testDir)
		candidates := []string{
			filepath.Join(root, subdir, base),
			filepath.Join(root, base),
		}
		for _, prefix := range candidates {
			for _, suffix := range []string{".test", ".spec", ""} {
				for _, ext := range testExtensions {
					if p := existing(prefix + suffix + ext); p != "" {
						return p
					}
				}
			}
		}
	}
	return ""
}

func existing(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

// assertionMarkers are the lexical patterns counted as one assertion each.
// This is a cheap textual heuristic; the count feeds briefing wording, not
// any score.
var assertionMarkers = []string{
	"expect(",
	"assert.",
	"assert(",
	".should(",
	"t.deepEqual(",
	"t.is(",
}

// CountAssertions counts assertion-looking call sites in the test file at
// the given path. Returns 0 when the file cannot be read.
func CountAssertions(testPath string) int {
	data, err := os.ReadFile(testPath)
	if err != nil {
		return 0
	}
	text := string(data)
	count := 0
	for _, marker := range assertionMarkers {
		count += strings.Count(text, marker)
	}
	return count
}
