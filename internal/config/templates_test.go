package config

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestConfigForPreset(t *testing.T) {
	t.Run("strict node preset", func(t *testing.T) {
		cfg := ConfigForPreset(ProjectTypeNodeBackend, StrictnessStrict)
		if cfg.Scoring.GateThreshold != 85 {
			t.Errorf("GateThreshold = %d, want 85", cfg.Scoring.GateThreshold)
		}
		if !cfg.Risk.FailOnHigh {
			t.Error("FailOnHigh = false, want true")
		}
		for _, p := range cfg.Analysis.IncludePatterns {
			if strings.Contains(p, "tsx") {
				t.Errorf("node preset should not include %s", p)
			}
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset config failed validation: %v", err)
		}
	})

	t.Run("relaxed preset loosens the gate", func(t *testing.T) {
		cfg := ConfigForPreset(ProjectTypeGeneric, StrictnessRelaxed)
		if cfg.Scoring.GateThreshold != 50 {
			t.Errorf("GateThreshold = %d, want 50", cfg.Scoring.GateThreshold)
		}
		if cfg.Risk.FailOnHigh {
			t.Error("FailOnHigh = true, want false")
		}
	})

	t.Run("unknown presets keep defaults", func(t *testing.T) {
		cfg := ConfigForPreset(ProjectType("unknown"), Strictness("unknown"))
		if cfg.Scoring.GateThreshold != DefaultGateThreshold {
			t.Errorf("GateThreshold = %d, want default", cfg.Scoring.GateThreshold)
		}
	})
}

func TestConfigTemplates(t *testing.T) {
	t.Run("full template is valid yaml matching its presets", func(t *testing.T) {
		tmpl := GetFullConfigTemplate(ProjectTypeReact, StrictnessStandard)

		var cfg Config
		if err := yaml.Unmarshal([]byte(tmpl), &cfg); err != nil {
			t.Fatalf("template is not valid yaml: %v", err)
		}
		if cfg.Scoring.GateThreshold != DefaultGateThreshold {
			t.Errorf("GateThreshold = %d, want %d", cfg.Scoring.GateThreshold, DefaultGateThreshold)
		}
		if !strings.Contains(tmpl, ".next") {
			t.Error("react template should exclude .next")
		}
	})

	t.Run("minimal template is valid yaml", func(t *testing.T) {
		var cfg Config
		if err := yaml.Unmarshal([]byte(GetMinimalConfigTemplate()), &cfg); err != nil {
			t.Fatalf("minimal template is not valid yaml: %v", err)
		}
		if cfg.Output.Policy != "risk" {
			t.Errorf("Policy = %s, want risk", cfg.Output.Policy)
		}
	})
}
