package main

import (
	"fmt"
	"io"

	"github.com/iwvelando/flip-forecast/internal/analysis"
	"github.com/iwvelando/flip-forecast/internal/config"
	"github.com/iwvelando/flip-forecast/internal/optimizer"
	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/output"
	"github.com/iwvelando/flip-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAnalyzeCommand(opts *rootOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze every deal in the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.OutOrStdout(), opts, outputFormat)
		},
	}
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv, yaml")
	return cmd
}

func runAnalyze(w io.Writer, opts *rootOptions, outputFormatOverride string) error {
	conf, logger, err := loadAnalysisConfig(opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if outputFormatOverride != "" {
		outputFormat = outputFormatOverride
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	reports, err := analyzeDeals(logger, conf)
	if err != nil {
		return err
	}
	return output.Write(w, outputFormat, reports)
}

// loadAnalysisConfig loads the deal file, builds the logger it configures
// and logs every configuration warning.
func loadAnalysisConfig(opts *rootOptions) (*config.Configuration, *zap.Logger, error) {
	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	return conf, logger, nil
}

// analyzeDeals runs the analysis and attaches the max offer searches.
func analyzeDeals(logger *zap.Logger, conf *config.Configuration) ([]analysis.Report, error) {
	runner, err := optimizer.NewRunner(logger, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize optimizer: %w", err)
	}
	result, err := runner.Run()
	if err != nil {
		return nil, fmt.Errorf("optimizer execution failed: %w", err)
	}

	reports, err := analysis.Run(logger, *conf)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze deals: %w", err)
	}

	if !result.Empty() {
		result.Apply(reports)
	}
	return reports, nil
}
