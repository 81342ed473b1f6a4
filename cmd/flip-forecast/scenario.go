package main

import (
	"io"

	"github.com/iwvelando/flip-forecast/pkg/output"
	"github.com/iwvelando/flip-forecast/pkg/scenario"
	"github.com/spf13/cobra"
)

func newScenarioCommand(opts *rootOptions) *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Compare every deal under one named scenario",
		Long: "Compare every deal under one named scenario. The name may be a preset " +
			"(base, best, worstA, worstB) or a custom scenario defined on the deals.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd.OutOrStdout(), opts, preset)
		},
	}
	cmd.Flags().StringVar(&preset, "preset", scenario.PresetWorstB, "scenario to report")
	return cmd
}

func runScenario(w io.Writer, opts *rootOptions, name string) error {
	conf, logger, err := loadAnalysisConfig(opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	reports, err := analyzeDeals(logger, conf)
	if err != nil {
		return err
	}
	return output.ScenarioFormat(w, name, reports)
}
