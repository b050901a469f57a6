package config

import "strconv"

// ProjectType represents the type of JavaScript/TypeScript project
type ProjectType string

const (
	ProjectTypeGeneric     ProjectType = "generic"
	ProjectTypeReact       ProjectType = "react"
	ProjectTypeVue         ProjectType = "vue"
	ProjectTypeNodeBackend ProjectType = "node"
)

// Strictness represents how aggressively the check command gates
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds discovery presets for different project types
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
}

// StrictnessPreset holds gate values for different strictness levels
type StrictnessPreset struct {
	GateThreshold int
	FailOnHigh    bool
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx",
			},
			ExcludePatterns: []string{
				"node_modules", "dist", "build", "*.min.js", "*.bundle.js",
			},
		},
		ProjectTypeReact: {
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx",
			},
			ExcludePatterns: []string{
				"node_modules", "dist", "build", ".next", "coverage",
				"*.min.js", "*.bundle.js",
			},
		},
		ProjectTypeVue: {
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx", "**/*.vue",
			},
			ExcludePatterns: []string{
				"node_modules", "dist", "build", ".nuxt", "coverage",
				"*.min.js", "*.bundle.js",
			},
		},
		ProjectTypeNodeBackend: {
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.mjs", "**/*.cjs",
			},
			ExcludePatterns: []string{
				"node_modules", "dist", "build",
				"*.min.js", "*.bundle.js",
			},
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			GateThreshold: 50,
			FailOnHigh:    false,
		},
		StrictnessStandard: {
			GateThreshold: DefaultGateThreshold,
			FailOnHigh:    true,
		},
		StrictnessStrict: {
			GateThreshold: 85,
			FailOnHigh:    true,
		},
	}
}

// ConfigForPreset builds a complete configuration from the chosen presets
func ConfigForPreset(projectType ProjectType, strictness Strictness) *Config {
	config := DefaultConfig()

	if preset, ok := GetProjectPresets()[projectType]; ok {
		config.Analysis.IncludePatterns = preset.IncludePatterns
		config.Analysis.ExcludePatterns = preset.ExcludePatterns
	}
	if preset, ok := GetStrictnessPresets()[strictness]; ok {
		config.Scoring.GateThreshold = preset.GateThreshold
		config.Risk.FailOnHigh = preset.FailOnHigh
	}
	return config
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	projectPresets := GetProjectPresets()
	strictnessPresets := GetStrictnessPresets()

	preset := projectPresets[projectType]
	strict := strictnessPresets[strictness]

	return `# prescan configuration
# Documentation: https://github.com/prescan-dev/prescan

# Score-policy settings
scoring:
  # Aggregate score below which 'prescan check' fails
  gate_threshold: ` + strconv.Itoa(strict.GateThreshold) + `

# Risk-policy settings
risk:
  # Fail 'prescan check' when any file is classified high-risk
  fail_on_high: ` + strconv.FormatBool(strict.FailOnHigh) + `

output:
  # Output format: text, table, json, yaml
  format: text

  # Reporting policy: risk (low/medium/high levels) or score (0-100)
  policy: risk

  # List files with nothing to flag
  show_clean: true

analysis:
  include_patterns:
` + formatYAMLList(preset.IncludePatterns, "    ") + `
  exclude_patterns:
` + formatYAMLList(preset.ExcludePatterns, "    ") + `
  recursive: true
  respect_gitignore: true
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# prescan configuration (minimal)
# See full options: https://github.com/prescan-dev/prescan

output:
  policy: risk

analysis:
  include_patterns:
    - "**/*.js"
    - "**/*.ts"
    - "**/*.jsx"
    - "**/*.tsx"
  exclude_patterns:
    - node_modules
    - dist
`
}

// formatYAMLList formats a string slice as an indented YAML sequence
func formatYAMLList(items []string, indent string) string {
	result := ""
	for _, item := range items {
		result += indent + "- \"" + item + "\"\n"
	}
	if result != "" {
		result = result[:len(result)-1]
	}
	return result
}
