package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/prescan-dev/prescan/domain"
)

func sampleResponse(policy domain.OutputPolicy) *domain.HealthResponse {
	return &domain.HealthResponse{
		Files: []domain.FileReport{
			{
				Path:     "src/store.js",
				Score:    domain.SignalScore{FunctionLength: 40, Coupling: 70, TestCoverage: 0, CommentDensity: 40, FileSize: 70},
				Overall:  41,
				TopIssue: domain.AxisTestCoverage,
				Risk: domain.RiskProfile{
					Level:        domain.RiskLevelHigh,
					IncomingDeps: []string{"src/a.js", "src/b.js"},
				},
				Briefing: "editing this affects 2 files",
			},
			{
				Path:     "src/util.js",
				Score:    domain.SignalScore{FunctionLength: 100, Coupling: 100, TestCoverage: 100, CommentDensity: 70, FileSize: 100},
				Overall:  97,
				Risk:     domain.RiskProfile{Level: domain.RiskLevelLow},
				Briefing: "safe to edit",
			},
		},
		Summary: domain.RepoSummary{
			FilesScanned:   2,
			AggregateScore: 69,
			Tally:          domain.RiskTally{High: 1, Low: 1},
			Headline:       "1 high-risk file, 1 low-risk file",
		},
		ActionItems: []string{"add tests for the 2 untested dependents of src/store.js before touching it"},
		Policy:      policy,
		GeneratedAt: "2026-08-26T10:00:00Z",
		Version:     "dev",
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewOutputFormatter()
	response := sampleResponse(domain.PolicyRisk)
	// Display hints never thin out the stable record
	response.HideClean = true

	if err := formatter.Write(response, domain.OutputFormatJSON, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}

	// Downstream tooling depends on these field names
	for _, field := range []string{"files", "summary", "action_items", "policy", "generated_at", "version"} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("json output missing field %q", field)
		}
	}

	summary, ok := decoded["summary"].(map[string]interface{})
	if !ok {
		t.Fatal("summary is not an object")
	}
	for _, field := range []string{"files_scanned", "aggregate_score", "tally", "headline"} {
		if _, ok := summary[field]; !ok {
			t.Errorf("summary missing field %q", field)
		}
	}

	files := decoded["files"].([]interface{})
	first := files[0].(map[string]interface{})
	if first["top_issue"] != "test_coverage" {
		t.Errorf("top_issue = %v, want test_coverage", first["top_issue"])
	}
	risk := first["risk"].(map[string]interface{})
	if risk["risk_level"] != "high" {
		t.Errorf("risk.risk_level = %v, want high", risk["risk_level"])
	}
	// Clean files omit top_issue entirely
	second := files[1].(map[string]interface{})
	if _, present := second["top_issue"]; present {
		t.Error("clean file should omit top_issue")
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewOutputFormatter()

	if err := formatter.Write(sampleResponse(domain.PolicyScore), domain.OutputFormatYAML, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid yaml: %v", err)
	}
	if _, ok := decoded["files"]; !ok {
		t.Error("yaml output missing files")
	}
}

func TestWriteText(t *testing.T) {
	formatter := NewOutputFormatter()

	t.Run("risk policy shows levels and tally", func(t *testing.T) {
		var buf bytes.Buffer
		if err := formatter.Write(sampleResponse(domain.PolicyRisk), domain.OutputFormatText, &buf); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		out := buf.String()

		for _, want := range []string{
			"=== Code Health ===",
			"High risk: 1",
			"src/store.js [HIGH]",
			"editing this affects 2 files",
			"Action Items:",
			"1. add tests for the 2 untested dependents of src/store.js before touching it",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("text output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("score policy shows scores and top issues", func(t *testing.T) {
		var buf bytes.Buffer
		if err := formatter.Write(sampleResponse(domain.PolicyScore), domain.OutputFormatText, &buf); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		out := buf.String()

		for _, want := range []string{
			"Aggregate score: 69",
			"src/store.js: 41 (test coverage)",
			"src/util.js: 97",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("text output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("hide clean omits files with nothing to flag", func(t *testing.T) {
		response := sampleResponse(domain.PolicyRisk)
		response.HideClean = true

		var buf bytes.Buffer
		if err := formatter.Write(response, domain.OutputFormatText, &buf); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "src/store.js") {
			t.Errorf("flagged file missing from output:\n%s", out)
		}
		if strings.Contains(out, "src/util.js") {
			t.Errorf("clean file should be hidden:\n%s", out)
		}
	})

	t.Run("warnings are listed", func(t *testing.T) {
		response := sampleResponse(domain.PolicyRisk)
		response.Warnings = []string{"[a.js] parse failed: bad token"}

		var buf bytes.Buffer
		if err := formatter.Write(response, domain.OutputFormatText, &buf); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "- [a.js] parse failed: bad token") {
			t.Errorf("text output missing warning:\n%s", buf.String())
		}
	})
}

func TestWriteTable(t *testing.T) {
	formatter := NewOutputFormatter()

	t.Run("risk policy columns", func(t *testing.T) {
		var buf bytes.Buffer
		if err := formatter.Write(sampleResponse(domain.PolicyRisk), domain.OutputFormatTable, &buf); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"FILE", "RISK", "BRIEFING", "src/store.js", "high"} {
			if !strings.Contains(out, want) {
				t.Errorf("table output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("score policy columns", func(t *testing.T) {
		var buf bytes.Buffer
		if err := formatter.Write(sampleResponse(domain.PolicyScore), domain.OutputFormatTable, &buf); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"FILE", "SCORE", "TOP ISSUE", "41", "test coverage"} {
			if !strings.Contains(out, want) {
				t.Errorf("table output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("hide clean filters table rows", func(t *testing.T) {
		response := sampleResponse(domain.PolicyRisk)
		response.HideClean = true

		var buf bytes.Buffer
		if err := formatter.Write(response, domain.OutputFormatTable, &buf); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "src/store.js") {
			t.Errorf("flagged file missing from table:\n%s", out)
		}
		if strings.Contains(out, "src/util.js") {
			t.Errorf("clean file should be hidden from table:\n%s", out)
		}
	})
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewOutputFormatter().Write(sampleResponse(domain.PolicyRisk), domain.OutputFormat("csv"), &buf)
	if err == nil {
		t.Error("Write should reject unsupported formats")
	}
}
