package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "prescan"

	// ConfigFileName is the default config file name
	ConfigFileName = "prescan.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "PRESCAN"
)

// Output policy constants
const (
	PolicyScore = "score"
	PolicyRisk  = "risk"
)

// Output format constants
const (
	OutputFormatText  = "text"
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// Exit codes
const (
	// ExitOK is returned on normal completion
	ExitOK = 0

	// ExitGateFailed is returned when a file is high-risk or the
	// aggregate falls below the gate threshold
	ExitGateFailed = 1

	// ExitError is returned on analysis errors
	ExitError = 2
)
