package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/StinkyLord/rosettabom/internal/config"
	"github.com/StinkyLord/rosettabom/internal/logging"
	"github.com/StinkyLord/rosettabom/internal/metrics"
	"github.com/StinkyLord/rosettabom/internal/output"
)

const toolVersion = "2.0.0"

var (
	flagConfig       string
	flagTokenizer    string
	flagOutputFormat string
	flagLogLevel     string
	flagLogFormat    string
	flagWorkers      int
	flagMetricsFile  string
	flagVerbose      bool
)

// Resolved once per invocation by PersistentPreRunE.
var (
	cfg    config.Config
	logger *slog.Logger
	metric *metrics.Metrics
	loader *config.Loader
)

// Command output goes through these so tests can capture it.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "rosettabom",
	Short: "Universal SBOM component identifier translator",
	Long: `rosettabom reconciles software component identifiers written in different
formats and tokenizes them for downstream matching.

Supported identifier formats:
  • basic  — name-version               log4j-core-2.14.1
  • maven  — group:artifact:version     org.apache.logging.log4j:log4j-core:2.14.1
  • PURL   — pkg:type/namespace/name@v  pkg:maven/org.apache.logging.log4j/log4j-core@2.14.1

Settings are read from flags, ROSETTABOM_* environment variables and an
optional rosettabom.yaml (current directory or $HOME).`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if flagMetricsFile == "" {
			return nil
		}
		if err := metric.WriteFile(flagMetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default: rosettabom.yaml in . or $HOME)")
	pf.StringVarP(&flagTokenizer, "tokenizer", "t", config.Defaults().Tokenizer, "Path of the trained tokenizer bundle")
	pf.StringVarP(&flagOutputFormat, "output-format", "f", config.Defaults().OutputFormat, "Result format: json, yaml")
	pf.StringVar(&flagLogLevel, "log-level", config.Defaults().LogLevel, "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", config.Defaults().LogFormat, "Log format: text, json")
	pf.IntVar(&flagWorkers, "workers", 0, "Concurrent workers for batch operations (0 = one per CPU)")
	pf.StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus counters to this file on exit")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output (same as --log-level debug)")
}

// setup resolves configuration, then builds the logger and metrics shared by
// every command.
func setup(cmd *cobra.Command, args []string) error {
	loader = config.NewLoader()
	bindings := map[string]string{
		config.KeyTokenizer:    "tokenizer",
		config.KeyOutputFormat: "output-format",
		config.KeyLogLevel:     "log-level",
		config.KeyLogFormat:    "log-format",
		config.KeyWorkers:      "workers",
	}
	for key, flag := range bindings {
		if err := loader.BindFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	if f := cmd.Flags().Lookup("corpus"); f != nil {
		if err := loader.BindFlag(config.KeyCorpus, f); err != nil {
			return err
		}
	}

	var err error
	cfg, err = loader.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagVerbose {
		cfg.LogLevel = "debug"
	}

	logger = logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: stderr})
	metric = metrics.New()

	if used := loader.ConfigFileUsed(); used != "" {
		logger.Debug("config loaded", "file", used)
	}
	return nil
}

// printResult writes v to stdout in the configured format.
func printResult(v any) error {
	return output.Print(stdout, cfg.OutputFormat, v)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
