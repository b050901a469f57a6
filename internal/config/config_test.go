package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scoring.GateThreshold != DefaultGateThreshold {
		t.Errorf("GateThreshold = %d, want %d", cfg.Scoring.GateThreshold, DefaultGateThreshold)
	}
	if cfg.Output.Policy != DefaultPolicy {
		t.Errorf("Policy = %s, want %s", cfg.Output.Policy, DefaultPolicy)
	}
	if !cfg.Risk.FailOnHigh {
		t.Error("FailOnHigh = false, want true")
	}
	if !cfg.Analysis.Recursive {
		t.Error("Recursive = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		// Run from an empty directory so discovery finds nothing
		dir := t.TempDir()
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		if err := os.Chdir(dir); err != nil {
			t.Fatal(err)
		}
		defer os.Chdir(cwd)

		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Scoring.GateThreshold != DefaultGateThreshold {
			t.Errorf("GateThreshold = %d, want default", cfg.Scoring.GateThreshold)
		}
	})

	t.Run("explicit yaml file overrides defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "prescan.yaml")
		content := `scoring:
  gate_threshold: 85
output:
  format: json
  policy: score
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Scoring.GateThreshold != 85 {
			t.Errorf("GateThreshold = %d, want 85", cfg.Scoring.GateThreshold)
		}
		if cfg.Output.Format != "json" || cfg.Output.Policy != "score" {
			t.Errorf("Output = %+v", cfg.Output)
		}
		// Unset sections keep their defaults
		if len(cfg.Analysis.IncludePatterns) == 0 {
			t.Error("IncludePatterns lost its default")
		}
	})

	t.Run("missing explicit file fails", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("LoadConfig should fail for a missing explicit file")
		}
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "prescan.yaml")
		if err := os.WriteFile(path, []byte("scoring:\n  gate_threshold: 250\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("LoadConfig should reject gate_threshold 250")
		}
	})
}

func TestLoadConfigWithTarget(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "src", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "scoring:\n  gate_threshold: 60\n"
	if err := os.WriteFile(filepath.Join(dir, "prescan.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigWithTarget("", sub)
	if err != nil {
		t.Fatalf("LoadConfigWithTarget failed: %v", err)
	}
	if cfg.Scoring.GateThreshold != 60 {
		t.Errorf("GateThreshold = %d, want 60 from discovered config", cfg.Scoring.GateThreshold)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative gate threshold", func(c *Config) { c.Scoring.GateThreshold = -1 }},
		{"gate threshold above 100", func(c *Config) { c.Scoring.GateThreshold = 101 }},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }},
		{"unknown policy", func(c *Config) { c.Output.Policy = "vibes" }},
		{"empty include patterns", func(c *Config) { c.Analysis.IncludePatterns = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate should have failed")
			}
		})
	}
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prescan.yaml")

	cfg := DefaultConfig()
	cfg.Scoring.GateThreshold = 90
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig after save failed: %v", err)
	}
	if loaded.Scoring.GateThreshold != 90 {
		t.Errorf("GateThreshold = %d, want 90", loaded.Scoring.GateThreshold)
	}
	if loaded.Output.Policy != cfg.Output.Policy {
		t.Errorf("Policy = %s, want %s", loaded.Output.Policy, cfg.Output.Policy)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "gate_threshold: 90") {
		t.Errorf("saved yaml missing gate_threshold:\n%s", data)
	}
}
