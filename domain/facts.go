package domain

// FunctionSpan identifies a single function-like declaration and its size
type FunctionSpan struct {
	// Name is the function name ("<anonymous>" for unnamed expressions)
	Name string `json:"name"`

	// LineCount is the number of source lines the function spans
	LineCount int `json:"line_count"`

	// StartLine is the 1-based line the declaration starts on
	StartLine int `json:"start_line"`
}

// MutableDecl is a module-scope reassignable declaration (let/var).
// Declarations nested inside function or class bodies are never recorded.
type MutableDecl struct {
	// Name is the declared identifier
	Name string `json:"name"`

	// Line is the 1-based declaration line
	Line int `json:"line"`

	// Exported indicates the declaration is exported (directly or re-exported)
	Exported bool `json:"exported,omitempty"`
}

// FileFacts holds the raw structural measurements for a single source file.
// Facts are computed exactly once per file per run and are immutable
// thereafter; every downstream stage (scorer, propagator, generator) reads
// the same record.
type FileFacts struct {
	// Path is the file path as scanned
	Path string `json:"path"`

	// TotalLines is the number of lines in the file
	TotalLines int `json:"total_lines"`

	// Functions are all function-like declarations with their spans
	Functions []FunctionSpan `json:"functions"`

	// ImportCount is the number of distinct import sources
	// (ES imports, require() calls, and dynamic import() combined)
	ImportCount int `json:"import_count"`

	// CommentLines is the number of lines carrying a comment
	CommentLines int `json:"comment_lines"`

	// GlobalMutations are module-scope let/var declarations
	GlobalMutations []MutableDecl `json:"global_mutations"`

	// MissingReturnTypes counts exported functions and exported
	// function-valued declarations lacking an explicit return type
	MissingReturnTypes int `json:"missing_return_types"`

	// HasTestFile indicates a discoverable test file exists for this file
	HasTestFile bool `json:"has_test_file"`

	// TestAssertionCount is a heuristic count of assertions in the
	// discovered test file (0 when no test file exists)
	TestAssertionCount int `json:"test_assertion_count"`

	// ImportSources are the raw import specifiers found in the file
	ImportSources []string `json:"import_sources,omitempty"`

	// Unreadable marks a file that could not be read; such files take a
	// zero-score fast path and skip all further processing
	Unreadable bool `json:"unreadable,omitempty"`
}

// AverageFunctionLines returns the mean function length, 0 when the file
// has no detected functions.
func (f *FileFacts) AverageFunctionLines() float64 {
	if len(f.Functions) == 0 {
		return 0
	}
	total := 0
	for _, fn := range f.Functions {
		total += fn.LineCount
	}
	return float64(total) / float64(len(f.Functions))
}

// IsEmpty reports whether the file contains no measurable content
// (zero lines after trimming whitespace).
func (f *FileFacts) IsEmpty() bool {
	return f.TotalLines == 0
}

// MutatedNames returns the identifiers of all module-scope mutable
// declarations, in declaration order.
func (f *FileFacts) MutatedNames() []string {
	names := make([]string, 0, len(f.GlobalMutations))
	for _, m := range f.GlobalMutations {
		names = append(names, m.Name)
	}
	return names
}
