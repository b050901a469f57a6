package domain

import "testing"

func TestTopIssue(t *testing.T) {
	t.Run("lowest axis wins", func(t *testing.T) {
		score := SignalScore{
			FunctionLength: 100,
			Coupling:       70,
			TestCoverage:   0,
			CommentDensity: 40,
			FileSize:       100,
		}
		if got := score.TopIssue(); got != AxisTestCoverage {
			t.Errorf("TopIssue = %s, want %s", got, AxisTestCoverage)
		}
	})

	t.Run("ties break by precedence order", func(t *testing.T) {
		score := SignalScore{
			FunctionLength: 100,
			Coupling:       40,
			TestCoverage:   40,
			CommentDensity: 100,
			FileSize:       40,
		}
		if got := score.TopIssue(); got != AxisCoupling {
			t.Errorf("TopIssue = %s, want %s", got, AxisCoupling)
		}
	})

	t.Run("all equal picks the first axis", func(t *testing.T) {
		score := SignalScore{
			FunctionLength: 70, Coupling: 70, TestCoverage: 70,
			CommentDensity: 70, FileSize: 70,
		}
		if got := score.TopIssue(); got != AxisFunctionLength {
			t.Errorf("TopIssue = %s, want %s", got, AxisFunctionLength)
		}
	})
}

func TestIsClean(t *testing.T) {
	clean := SignalScore{
		FunctionLength: 100, Coupling: 70, TestCoverage: 100,
		CommentDensity: 70, FileSize: 100,
	}
	if !clean.IsClean() {
		t.Error("IsClean = false for all-fair-or-better score")
	}

	dirty := clean
	dirty.CommentDensity = 40
	if dirty.IsClean() {
		t.Error("IsClean = true with a weak axis")
	}
}

func TestRiskLevelRank(t *testing.T) {
	if !(RiskLevelHigh.Rank() > RiskLevelMedium.Rank() && RiskLevelMedium.Rank() > RiskLevelLow.Rank()) {
		t.Errorf("rank order broken: high=%d medium=%d low=%d",
			RiskLevelHigh.Rank(), RiskLevelMedium.Rank(), RiskLevelLow.Rank())
	}
}

func TestHealthResponseExitCode(t *testing.T) {
	tests := []struct {
		name     string
		response HealthResponse
		gate     int
		want     int
	}{
		{
			name:     "risk policy passes without high-risk files",
			response: HealthResponse{Policy: PolicyRisk, Summary: RepoSummary{Tally: RiskTally{Medium: 3}}},
			gate:     70,
			want:     0,
		},
		{
			name:     "risk policy fails on any high-risk file",
			response: HealthResponse{Policy: PolicyRisk, Summary: RepoSummary{Tally: RiskTally{High: 1}}},
			gate:     70,
			want:     1,
		},
		{
			name:     "score policy passes at the gate",
			response: HealthResponse{Policy: PolicyScore, Summary: RepoSummary{AggregateScore: 70}},
			gate:     70,
			want:     0,
		},
		{
			name:     "score policy fails below the gate",
			response: HealthResponse{Policy: PolicyScore, Summary: RepoSummary{AggregateScore: 69}},
			gate:     70,
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.response.ExitCode(tt.gate); got != tt.want {
				t.Errorf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFileFactsHelpers(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		facts := FileFacts{Path: "a.js"}
		if !facts.IsEmpty() {
			t.Error("IsEmpty = false for zero-line facts")
		}
	})

	t.Run("average over zero functions", func(t *testing.T) {
		facts := FileFacts{TotalLines: 10}
		if avg := facts.AverageFunctionLines(); avg != 0 {
			t.Errorf("AverageFunctionLines = %v, want 0", avg)
		}
	})

	t.Run("mutated names preserve order", func(t *testing.T) {
		facts := FileFacts{GlobalMutations: []MutableDecl{
			{Name: "z"}, {Name: "a"},
		}}
		names := facts.MutatedNames()
		if len(names) != 2 || names[0] != "z" || names[1] != "a" {
			t.Errorf("MutatedNames = %v", names)
		}
	})
}
