package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prescan-dev/prescan/app"
	"github.com/prescan-dev/prescan/domain"
	"github.com/prescan-dev/prescan/service"
)

var (
	scanPolicy     string
	scanFormat     string
	scanJSON       bool
	scanConfigPath string
	scanNoRecurse  bool
	scanParallel   bool
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path...]",
		Short: "Scan JavaScript/TypeScript files for code health",
		Long: `Scan JavaScript/TypeScript files and report per-file health signals,
dependency risk, and prioritized recommendations.

Examples:
  prescan scan src/
  prescan scan --policy score src/
  prescan scan --format table src/
  prescan scan --json src/
  prescan scan --parallel packages/a packages/b`,
		RunE: runScan,
	}

	cmd.Flags().StringVarP(&scanPolicy, "policy", "p", "",
		"Reporting policy: risk (low/medium/high) or score (0-100)")
	cmd.Flags().StringVarP(&scanFormat, "format", "f", "",
		"Output format: text, table, json, yaml")
	cmd.Flags().BoolVar(&scanJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&scanConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&scanNoRecurse, "no-recursive", false,
		"Do not descend into subdirectories")
	cmd.Flags().BoolVar(&scanParallel, "parallel", false,
		"Scan multiple project roots concurrently")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return domain.ErrNoPaths
	}

	req, err := buildScanRequest(args)
	if err != nil {
		return err
	}

	interactive := req.OutputFormat == domain.OutputFormatText ||
		req.OutputFormat == domain.OutputFormatTable
	pm := service.NewProgressManager(interactive)
	defer pm.Close()

	formatter := service.NewOutputFormatter()
	usecase := app.NewScanUseCase(service.NewHealthServiceWithProgress(pm), formatter).
		WithServiceFactory(func() domain.HealthService {
			return service.NewHealthService()
		})

	ctx := context.Background()

	if scanParallel {
		executor := service.NewParallelExecutorWithProgress(pm)
		responses, err := usecase.ExecuteMultiRoot(ctx, *req, executor)
		if err != nil {
			return err
		}
		for root, response := range responses {
			fmt.Fprintf(req.OutputWriter, "# %s\n", root)
			if err := formatter.Write(response, req.OutputFormat, req.OutputWriter); err != nil {
				return err
			}
		}
		return nil
	}

	_, err = usecase.Execute(ctx, *req)
	if errors.Is(err, domain.ErrNoFiles) {
		return fmt.Errorf("no JavaScript/TypeScript files found in the specified paths")
	}
	return err
}

// buildScanRequest loads configuration discovered from the first target and
// merges CLI flags over it
func buildScanRequest(args []string) (*domain.HealthRequest, error) {
	loader := service.NewConfigurationLoader()
	base, err := loader.LoadConfigForTarget(scanConfigPath, args[0])
	if err != nil {
		return nil, err
	}

	override := &domain.HealthRequest{
		Paths:        args,
		Policy:       domain.OutputPolicy(scanPolicy),
		OutputFormat: domain.OutputFormat(scanFormat),
		OutputWriter: os.Stdout,
		ConfigPath:   scanConfigPath,
	}
	if scanJSON {
		override.OutputFormat = domain.OutputFormatJSON
	}

	req := loader.MergeConfig(base, override)
	if scanNoRecurse {
		req.Recursive = false
	}

	if err := loader.ValidateRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}
