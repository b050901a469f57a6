package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/prescan-dev/prescan/domain"
	"github.com/prescan-dev/prescan/internal/analyzer"
)

// OutputFormatterImpl implements the HealthFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Write writes the health response in the specified format. The JSON and
// YAML renderings use the response's own field names; downstream tooling
// depends on them staying stable.
func (f *OutputFormatterImpl) Write(response *domain.HealthResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return f.writeYAML(response, writer)
	case domain.OutputFormatTable:
		return f.writeTable(response, writer)
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (f *OutputFormatterImpl) writeYAML(response *domain.HealthResponse, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	return encoder.Encode(response)
}

// writeText writes the response as plain text, worst files first
func (f *OutputFormatterImpl) writeText(response *domain.HealthResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Code Health ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)

	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Files scanned: %d\n", response.Summary.FilesScanned)
	if response.Policy == domain.PolicyScore {
		fmt.Fprintf(writer, "  Aggregate score: %d\n", response.Summary.AggregateScore)
	} else {
		fmt.Fprintf(writer, "  High risk: %d\n", response.Summary.Tally.High)
		fmt.Fprintf(writer, "  Medium risk: %d\n", response.Summary.Tally.Medium)
		fmt.Fprintf(writer, "  Low risk: %d\n", response.Summary.Tally.Low)
	}
	fmt.Fprintf(writer, "  %s\n\n", response.Summary.Headline)

	if len(response.Files) > 0 {
		fmt.Fprintf(writer, "Files (worst first):\n")
		for _, file := range response.Files {
			if response.HideClean && cleanReport(&file, response.Policy) {
				continue
			}
			if response.Policy == domain.PolicyScore {
				issue := ""
				if file.TopIssue != "" {
					issue = fmt.Sprintf(" (%s)", analyzer.AxisLabel(file.TopIssue))
				}
				fmt.Fprintf(writer, "  %s: %d%s\n", file.Path, file.Overall, issue)
			} else {
				fmt.Fprintf(writer, "  %s [%s]\n", file.Path, strings.ToUpper(string(file.Risk.Level)))
			}
			fmt.Fprintf(writer, "    %s\n", file.Briefing)
		}
	}

	if len(response.ActionItems) > 0 {
		fmt.Fprintf(writer, "\nAction Items:\n")
		for i, item := range response.ActionItems {
			fmt.Fprintf(writer, "  %d. %s\n", i+1, item)
		}
	}

	if len(response.Warnings) > 0 {
		fmt.Fprintf(writer, "\nWarnings:\n")
		for _, w := range response.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}

	if len(response.Errors) > 0 {
		fmt.Fprintf(writer, "\nErrors:\n")
		for _, e := range response.Errors {
			fmt.Fprintf(writer, "  - %s\n", e)
		}
	}

	return nil
}

// cleanReport reports whether a file has nothing to flag under the given
// policy, making it eligible for omission when show_clean is off
func cleanReport(file *domain.FileReport, policy domain.OutputPolicy) bool {
	if policy == domain.PolicyScore {
		return file.Score.IsClean()
	}
	return file.Risk.Level == domain.RiskLevelLow
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true)
	highRiskStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mediumRiskStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// writeTable writes the per-file results as a rendered table
func (f *OutputFormatterImpl) writeTable(response *domain.HealthResponse, writer io.Writer) error {
	visible := make([]domain.FileReport, 0, len(response.Files))
	for _, file := range response.Files {
		if response.HideClean && cleanReport(&file, response.Policy) {
			continue
		}
		visible = append(visible, file)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle.Padding(0, 1)
			}
			if col == 1 && response.Policy == domain.PolicyRisk && row >= 0 && row < len(visible) {
				switch visible[row].Risk.Level {
				case domain.RiskLevelHigh:
					return highRiskStyle.Padding(0, 1)
				case domain.RiskLevelMedium:
					return mediumRiskStyle.Padding(0, 1)
				}
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	if response.Policy == domain.PolicyScore {
		t.Headers("FILE", "SCORE", "TOP ISSUE")
		for _, file := range visible {
			issue := ""
			if file.TopIssue != "" {
				issue = analyzer.AxisLabel(file.TopIssue)
			}
			t.Row(file.Path, strconv.Itoa(file.Overall), issue)
		}
	} else {
		t.Headers("FILE", "RISK", "BRIEFING")
		for _, file := range visible {
			t.Row(file.Path, string(file.Risk.Level), file.Briefing)
		}
	}

	fmt.Fprintln(writer, t.Render())
	fmt.Fprintf(writer, "\n%s\n", response.Summary.Headline)

	if len(response.ActionItems) > 0 {
		fmt.Fprintln(writer)
		for i, item := range response.ActionItems {
			fmt.Fprintf(writer, "%d. %s\n", i+1, item)
		}
	}
	return nil
}
