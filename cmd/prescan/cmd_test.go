package main

import (
	"testing"

	"github.com/prescan-dev/prescan/domain"
)

func TestScanCmd_FlagsExist(t *testing.T) {
	cmd := scanCmd()

	expectedFlags := []string{"policy", "format", "json", "config", "no-recursive", "parallel"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestScanCmd_ShortFlags(t *testing.T) {
	cmd := scanCmd()

	shortFlags := map[string]string{
		"p": "policy",
		"f": "format",
		"c": "config",
	}
	for short, long := range shortFlags {
		if cmd.Flags().ShorthandLookup(short) == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestScanCmd_NoPathsError(t *testing.T) {
	cmd := scanCmd()
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestCheckCmd_FlagsExist(t *testing.T) {
	cmd := checkCmd()

	expectedFlags := []string{"policy", "gate", "json", "verbose", "config"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestCheckCmd_ShortFlags(t *testing.T) {
	cmd := checkCmd()

	shortFlags := map[string]string{
		"p": "policy",
		"v": "verbose",
		"c": "config",
	}
	for short, long := range shortFlags {
		if cmd.Flags().ShorthandLookup(short) == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestCheckExitCode(t *testing.T) {
	highRisk := &domain.HealthResponse{
		Policy:  domain.PolicyRisk,
		Summary: domain.RepoSummary{Tally: domain.RiskTally{High: 1}},
	}

	tests := []struct {
		name     string
		response *domain.HealthResponse
		req      domain.HealthRequest
		want     int
	}{
		{
			name:     "high risk fails by default",
			response: highRisk,
			req:      domain.HealthRequest{Policy: domain.PolicyRisk},
			want:     1,
		},
		{
			name:     "fail_on_high true fails",
			response: highRisk,
			req:      domain.HealthRequest{Policy: domain.PolicyRisk, FailOnHigh: domain.BoolPtr(true)},
			want:     1,
		},
		{
			name:     "fail_on_high false passes despite high risk",
			response: highRisk,
			req:      domain.HealthRequest{Policy: domain.PolicyRisk, FailOnHigh: domain.BoolPtr(false)},
			want:     0,
		},
		{
			name: "score gate ignores fail_on_high",
			response: &domain.HealthResponse{
				Policy:  domain.PolicyScore,
				Summary: domain.RepoSummary{AggregateScore: 60},
			},
			req: domain.HealthRequest{
				Policy:        domain.PolicyScore,
				GateThreshold: 70,
				FailOnHigh:    domain.BoolPtr(false),
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkExitCode(tt.response, &tt.req); got != tt.want {
				t.Errorf("checkExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCheckExitError(t *testing.T) {
	err := &CheckExitError{Code: 1, Message: "gate failed"}
	if err.Error() != "gate failed" {
		t.Errorf("Error() = %q, want %q", err.Error(), "gate failed")
	}
	if err.Code != 1 {
		t.Errorf("Code = %d, want 1", err.Code)
	}
}
