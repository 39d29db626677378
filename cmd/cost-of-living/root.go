package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/cost-of-living/internal/config"
	"github.com/iwvelando/cost-of-living/internal/dashboard"
	"github.com/iwvelando/cost-of-living/pkg/constants"
	"github.com/iwvelando/cost-of-living/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags.
var version = "dev"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configLocation string
	logLevel       string
	outputFormat   string
	dataDir        string
	envFile        string
}

// app is what a subcommand needs once configuration is loaded.
type app struct {
	conf   *config.Configuration
	logger *zap.Logger
	format string
	svc    *dashboard.Service
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "cost-of-living",
		Short: "Compare salaries with housing, energy and healthcare costs by county",
		Long: "cost-of-living merges median income, house listing prices, energy prices and\n" +
			"healthcare billing by date, derives annual expenses per county and compares\n" +
			"them with a chosen salary or career.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Version: version,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	flags.StringVar(&opts.dataDir, "data-dir", "", "override the data directory from the configuration")
	flags.StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file with COL_* overrides")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newRowsCmd(opts))
	root.AddCommand(newChartCmd(opts))
	root.AddCommand(newSummaryCmd(opts))
	root.AddCommand(newRawCmd(opts))
	return root
}

// setup loads the environment file and configuration, builds the logger and
// the dashboard service. The caller must Sync the returned logger.
func setup(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", opts.envFile, err)
		}
	}

	conf, err := loadConfiguration(opts.configLocation, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	if opts.dataDir != "" {
		conf.Data.Dir = opts.dataDir
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// CLI override takes precedence over config
	format := conf.Output.Format
	if opts.outputFormat != "" {
		format = opts.outputFormat
	}
	if format == "" {
		format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(format); err != nil {
		_ = logger.Sync()
		return nil, err
	}

	svc, err := dashboard.New(logger, conf, afero.NewReadOnlyFs(afero.NewOsFs()))
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	logger.Debug("configuration loaded",
		zap.String("op", "main.setup"),
		zap.String("config", opts.configLocation),
		zap.String("dataDir", conf.Data.Dir),
	)
	return &app{conf: conf, logger: logger, format: format, svc: svc}, nil
}

// loadConfiguration reads path. When the default file is absent and no path
// was given explicitly, the built-in defaults are used.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}
	return conf, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
