package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/prescan-dev/prescan/app"
	"github.com/prescan-dev/prescan/domain"
	"github.com/prescan-dev/prescan/internal/constants"
	"github.com/prescan-dev/prescan/service"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkPolicy     string
	checkGate       int
	checkJSON       bool
	checkVerbose    bool
	checkConfigPath string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Gate on code health for CI/CD pipelines",
		Long: `Run the scan and gate on the result.

Exit codes:
  0 - Check passed
  1 - A file is high-risk (risk policy) or the aggregate score is below
      the gate threshold (score policy)
  2 - Analysis error (file not found, no files, configuration error)

Examples:
  # Fail when any file is high-risk
  prescan check src/

  # Gate on aggregate score instead
  prescan check --policy score --gate 80 src/

  # JSON output for machine parsing
  prescan check --json src/`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&checkPolicy, "policy", "p", "",
		"Gate policy: risk or score")
	cmd.Flags().IntVar(&checkGate, "gate", 0,
		"Aggregate score threshold for the score policy")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show per-file detail")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: constants.ExitError, Message: "no paths specified"}
	}

	loader := service.NewConfigurationLoader()
	base, err := loader.LoadConfigForTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: constants.ExitError, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	override := &domain.HealthRequest{
		Paths:         args,
		Policy:        domain.OutputPolicy(checkPolicy),
		GateThreshold: checkGate,
	}
	req := loader.MergeConfig(base, override)
	if err := loader.ValidateRequest(req); err != nil {
		return &CheckExitError{Code: constants.ExitError, Message: err.Error()}
	}

	pm := service.NewProgressManager(!checkJSON)
	defer pm.Close()

	usecase := app.NewScanUseCase(service.NewHealthServiceWithProgress(pm), service.NewOutputFormatter())

	response, err := usecase.Analyze(context.Background(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrNoFiles) {
			return &CheckExitError{Code: constants.ExitError, Message: "no JavaScript/TypeScript files found"}
		}
		return &CheckExitError{Code: constants.ExitError, Message: err.Error()}
	}

	return outputCheckResult(response, req)
}

// checkExitCode applies the configured gate to a response: the response's
// own exit contract, except that fail_on_high: false downgrades a
// high-risk failure to a pass under the risk policy
func checkExitCode(response *domain.HealthResponse, req *domain.HealthRequest) int {
	code := response.ExitCode(req.GateThreshold)
	if code != constants.ExitOK && req.Policy == domain.PolicyRisk &&
		req.FailOnHigh != nil && !*req.FailOnHigh {
		return constants.ExitOK
	}
	return code
}

func outputCheckResult(response *domain.HealthResponse, req *domain.HealthRequest) error {
	exitCode := checkExitCode(response, req)

	if checkJSON {
		return outputCheckJSON(response, exitCode)
	}
	return outputCheckText(response, req, exitCode, os.Stdout)
}

func outputCheckText(response *domain.HealthResponse, req *domain.HealthRequest, exitCode int, w io.Writer) error {
	if exitCode == constants.ExitOK {
		fmt.Fprintln(w, "PASS: "+response.Summary.Headline)
		if checkVerbose {
			fmt.Fprintf(w, "  Files scanned: %d\n", response.Summary.FilesScanned)
			if req.Policy == domain.PolicyScore {
				fmt.Fprintf(w, "  Aggregate score: %d (gate: %d)\n",
					response.Summary.AggregateScore, req.GateThreshold)
			}
		}
		return nil
	}

	fmt.Fprintln(w, "FAIL: "+response.Summary.Headline)
	if req.Policy == domain.PolicyScore {
		fmt.Fprintf(w, "  Aggregate score %d is below the gate threshold %d\n",
			response.Summary.AggregateScore, req.GateThreshold)
	} else {
		for _, file := range response.Files {
			if file.Risk.Level != domain.RiskLevelHigh {
				break // files are sorted worst first
			}
			fmt.Fprintf(w, "  [HIGH] %s: %s\n", file.Path, file.Briefing)
		}
	}

	if checkVerbose && len(response.ActionItems) > 0 {
		fmt.Fprintln(w, "\nAction Items:")
		for i, item := range response.ActionItems {
			fmt.Fprintf(w, "  %d. %s\n", i+1, item)
		}
	}

	return &CheckExitError{Code: exitCode, Message: ""}
}

func outputCheckJSON(response *domain.HealthResponse, exitCode int) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return &CheckExitError{Code: constants.ExitError, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
	}
	if exitCode != constants.ExitOK {
		return &CheckExitError{Code: exitCode, Message: ""}
	}
	return nil
}
