package service

import (
	"fmt"

	"github.com/prescan-dev/prescan/domain"
	"github.com/prescan-dev/prescan/internal/config"
)

// ConfigurationLoaderImpl implements configuration loading for the CLI
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.HealthRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return c.convertToHealthRequest(cfg), nil
}

// LoadConfigForTarget loads configuration discovered relative to the scan
// target, falling back to defaults when nothing is found
func (c *ConfigurationLoaderImpl) LoadConfigForTarget(configPath, targetPath string) (*domain.HealthRequest, error) {
	cfg, err := config.LoadConfigWithTarget(configPath, targetPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return c.convertToHealthRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.HealthRequest {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return c.convertToHealthRequest(cfg)
}

// MergeConfig merges CLI flags over a loaded configuration. Paths always
// come from command arguments; other fields override only when set.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.HealthRequest, override *domain.HealthRequest) *domain.HealthRequest {
	merged := *base

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.Policy != "" {
		merged.Policy = override.Policy
	}
	if override.GateThreshold != 0 {
		merged.GateThreshold = override.GateThreshold
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.FailOnHigh != nil {
		merged.FailOnHigh = override.FailOnHigh
	}
	if override.ShowClean != nil {
		merged.ShowClean = override.ShowClean
	}
	if override.RespectGitignore != nil {
		merged.RespectGitignore = override.RespectGitignore
	}
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}
	return &merged
}

// convertToHealthRequest converts a Config to a HealthRequest
func (c *ConfigurationLoaderImpl) convertToHealthRequest(cfg *config.Config) *domain.HealthRequest {
	return &domain.HealthRequest{
		// Paths are set by the caller, not from config
		Paths: []string{},

		Policy:        domain.OutputPolicy(cfg.Output.Policy),
		GateThreshold: cfg.Scoring.GateThreshold,
		OutputFormat:  domain.OutputFormat(cfg.Output.Format),

		FailOnHigh: domain.BoolPtr(cfg.Risk.FailOnHigh),
		ShowClean:  domain.BoolPtr(cfg.Output.ShowClean),

		Recursive:        cfg.Analysis.Recursive,
		IncludePatterns:  cfg.Analysis.IncludePatterns,
		ExcludePatterns:  cfg.Analysis.ExcludePatterns,
		RespectGitignore: domain.BoolPtr(cfg.Analysis.RespectGitignore),
	}
}

// ValidateRequest validates a merged request before the scan runs
func (c *ConfigurationLoaderImpl) ValidateRequest(req *domain.HealthRequest) error {
	if req.GateThreshold < 0 || req.GateThreshold > 100 {
		return fmt.Errorf("gate threshold must be in [0,100], got %d", req.GateThreshold)
	}

	validPolicies := map[domain.OutputPolicy]bool{
		domain.PolicyScore: true,
		domain.PolicyRisk:  true,
	}
	if !validPolicies[req.Policy] {
		return fmt.Errorf("invalid policy: %s (must be one of: score, risk)", req.Policy)
	}

	validFormats := map[domain.OutputFormat]bool{
		domain.OutputFormatText:  true,
		domain.OutputFormatTable: true,
		domain.OutputFormatJSON:  true,
		domain.OutputFormatYAML:  true,
	}
	if !validFormats[req.OutputFormat] {
		return fmt.Errorf("invalid output format: %s (must be one of: text, table, json, yaml)",
			req.OutputFormat)
	}

	return nil
}
