package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitCommand_BasicConfigCreation(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "prescan.yaml")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Config file was not created: %v", err)
	}

	contentStr := string(content)
	expectedSections := []string{
		"scoring",
		"gate_threshold",
		"risk",
		"fail_on_high",
		"output",
		"analysis",
		"include_patterns",
	}
	for _, section := range expectedSections {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Config missing expected section: %s", section)
		}
	}
}

func TestInitCommand_MinimalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "prescan.yaml")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--minimal"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Config file was not created: %v", err)
	}

	contentStr := string(content)
	if !strings.Contains(contentStr, "minimal") {
		t.Error("Minimal config missing its header")
	}
	if strings.Contains(contentStr, "gate_threshold") {
		t.Error("Minimal config should not contain scoring options")
	}
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "prescan.yaml")
	if err := os.WriteFile(configPath, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when config file already exists")
	}

	content, _ := os.ReadFile(configPath)
	if string(content) != "existing" {
		t.Error("Existing config was overwritten without --force")
	}
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "prescan.yaml")
	if err := os.WriteFile(configPath, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--force"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) == "existing" {
		t.Error("--force should overwrite the existing config")
	}
}

func TestInitCommand_MissingDirectory(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "no", "such", "dir", "prescan.yaml")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when target directory does not exist")
	}
}
