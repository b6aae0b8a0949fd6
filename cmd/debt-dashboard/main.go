package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/debt-dashboard/internal/config"
	"github.com/iwvelando/debt-dashboard/internal/dashboard"
	"github.com/iwvelando/debt-dashboard/internal/metrics"
	"github.com/iwvelando/debt-dashboard/internal/server"
	"github.com/iwvelando/debt-dashboard/internal/trend"
	"github.com/iwvelando/debt-dashboard/pkg/constants"
	"github.com/iwvelando/debt-dashboard/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
	envFile    string
	logLevel   string
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "debt-dashboard",
		Short:         "Sovereign & corporate debt restructuring dashboard",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(stdout)

	root.PersistentFlags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", constants.DefaultEnvFile, "optional dotenv file with DASHBOARD_ overrides")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(newServeCommand(opts), newComputeCommand(opts, stdout))
	return root
}

// setup loads the environment file, the configuration and the logger.
func setup(opts *rootOptions) (*config.Configuration, *zap.Logger, error) {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return nil, nil, err
	}

	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	return conf, logger, nil
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, logger, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			if address != "" {
				conf.Server.Address = address
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.Run(ctx, logger, conf, version); err != nil {
				logger.Error("server stopped with error",
					zap.String("op", "main"),
					zap.Error(err),
				)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "listen address override (e.g. :8080)")
	return cmd
}

func newComputeCommand(opts *rootOptions, stdout io.Writer) *cobra.Command {
	var (
		capital      float64
		rate         float64
		outputFormat string
		seed         uint64
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the dashboard metrics for one slider position and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, logger, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			state := conf.Defaults.SliderState()
			if cmd.Flags().Changed("capital") {
				state.Capital = capital
			}
			if cmd.Flags().Changed("rate") {
				state.Rate = rate
			}

			// Determine output format (CLI override takes precedence over config)
			format := conf.Output.Format
			if outputFormat != "" {
				format = outputFormat
			}
			if format == "" {
				format = constants.OutputFormatPretty
			}

			trendSeed := conf.Trend.Seed
			if cmd.Flags().Changed("seed") {
				trendSeed = seed
			}

			view := dashboard.Build(state, trend.NewSynthesizer(trendSeed))
			if view.State != state {
				logger.Warn("slider input clamped to control range",
					zap.String("op", "main"),
					zap.Float64("capital", view.State.Capital),
					zap.Float64("rate", view.State.Rate),
				)
			}
			logger.Debug("metrics computed",
				zap.String("op", "main"),
				zap.String("summary", output.Summary(view.State, view.Metrics)),
			)

			return output.Write(stdout, format, view.Snapshot())
		},
	}

	defaults := metrics.DefaultSliderState()
	cmd.Flags().Float64Var(&capital, "capital", defaults.Capital, "capital allocation in $ billion [0.1, 10]")
	cmd.Flags().Float64Var(&rate, "rate", defaults.Rate, "restructuring favorability in percent [0, 100]")
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv, json, yaml")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "trend noise seed, 0 for unseeded")
	return cmd
}
