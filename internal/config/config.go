package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default gate and policy settings
const (
	// DefaultGateThreshold is the aggregate score below which the check
	// command fails under the score policy
	DefaultGateThreshold = 70

	// DefaultPolicy selects risk-oriented reporting unless configured
	// otherwise
	DefaultPolicy = "risk"
)

// Config represents the main configuration structure
type Config struct {
	// Scoring holds score-policy configuration
	Scoring ScoringConfig `json:"scoring" mapstructure:"scoring" yaml:"scoring"`

	// Risk holds risk-policy configuration
	Risk RiskConfig `json:"risk" mapstructure:"risk" yaml:"risk"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds file discovery configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`
}

// ScoringConfig holds configuration for the score output policy
type ScoringConfig struct {
	// GateThreshold is the aggregate score the check command gates on
	GateThreshold int `json:"gateThreshold" mapstructure:"gate_threshold" yaml:"gate_threshold"`
}

// RiskConfig holds configuration for the risk output policy
type RiskConfig struct {
	// FailOnHigh controls whether any high-risk file fails the check
	// command
	FailOnHigh bool `json:"failOnHigh" mapstructure:"fail_on_high" yaml:"fail_on_high"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, table, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// Policy selects score or risk reporting
	Policy string `json:"policy" mapstructure:"policy" yaml:"policy"`

	// ShowClean controls whether clean files appear in the listing
	ShowClean bool `json:"showClean" mapstructure:"show_clean" yaml:"show_clean"`
}

// AnalysisConfig holds file discovery configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether directories are walked recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`

	// RespectGitignore controls whether .gitignore rules filter discovery
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			GateThreshold: DefaultGateThreshold,
		},
		Risk: RiskConfig{
			FailOnHigh: true,
		},
		Output: OutputConfig{
			Format:    "text",
			Policy:    DefaultPolicy,
			ShowClean: true,
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx",
				"**/*.mjs", "**/*.cjs", "**/*.mts", "**/*.cts",
			},
			ExcludePatterns: []string{
				"node_modules",
				"dist",
				"build",
				"out",
				".next",
				".nuxt",
				"coverage",
				".git",
				"*.min.js",
				"*.bundle.js",
				"*.map",
			},
			Recursive:        true,
			RespectGitignore: true,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// When no explicit path is given the config file is discovered by walking
// upward from the target.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// New viper instance per load to avoid shared state
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for configuration files, walking upward from the
// target path, then falling back to the working directory, XDG config
// locations, and the PRESCAN_CONFIG environment variable.
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"prescan.yaml",
		"prescan.yml",
		".prescan.yaml",
		".prescan.yml",
		"prescan.json",
		".prescan.json",
	}

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			for dir := absPath; ; {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}
				parent := filepath.Dir(dir)
				if parent == dir {
					break
				}
				dir = parent
			}
		}
	}

	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "prescan"), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if config := searchConfigInDirectory(filepath.Join(home, ".config", "prescan"), candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv("PRESCAN_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Scoring.GateThreshold < 0 || c.Scoring.GateThreshold > 100 {
		return fmt.Errorf("scoring.gate_threshold must be in [0,100], got %d", c.Scoring.GateThreshold)
	}

	validFormats := map[string]bool{
		"text":  true,
		"table": true,
		"json":  true,
		"yaml":  true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, table, json, yaml", c.Output.Format)
	}

	validPolicies := map[string]bool{
		"score": true,
		"risk":  true,
	}
	if !validPolicies[c.Output.Policy] {
		return fmt.Errorf("invalid output.policy '%s', must be one of: score, risk", c.Output.Policy)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	return nil
}

// SaveConfig writes the configuration to the given path as YAML
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
