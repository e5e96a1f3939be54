package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trustview/internal/config"
	"trustview/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiURL     string
	wallet     string
	dbPath     string
	logFile    string
	timeout    time.Duration
	autoFlag   bool

	// Resolved configuration
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trustview",
	Short: "trustview - transparency dashboard for the TrustFlow Orchestrator",
	Long: `trustview reads intents from the TrustFlow Orchestrator and explains them:
overview counters, an activity log, and a per-intent trust report with
safety checks, the workflow timeline, and the raw and result payloads.

It never submits, signs, or executes transactions.

Run without arguments to start the interactive dashboard.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runDashboard,
}

// listCmd prints the activity log once
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print overview counters and the activity log",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

// showCmd prints the trust report for one intent
var showCmd = &cobra.Command{
	Use:   "show [intent-id]",
	Short: "Print the trust report for an intent",
	Long: `Fetches one intent and renders its trust report: the interception
banner for failed intents, simulation and safety checks, the workflow
timeline, and the raw intent and execution result payloads.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

// exportCmd snapshots the Orchestrator into a SQLite file
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every listed intent and its steps to a SQLite snapshot",
	Long: `Fetches the activity log and every intent's detail and writes them to a
SQLite file using the Orchestrator's schema. The snapshot can be opened later
with --db for offline audit.

Example:
  trustview export --out audit-2024-05-01.db`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// initConfigCmd writes the resolved configuration to --config
var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write the current configuration to the config file",
	Long: `Writes the configuration trustview would run with (defaults, then the
existing file, environment, and flags) to --config so it can be edited.
An existing file is only replaced with --force.`,
	Args: cobra.NoArgs,
	RunE: runInitConfig,
}

// healthCmd probes the Orchestrator
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the Orchestrator (or database) is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.PersistentPreRunE = rootPersistentPreRunE

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFile, "Config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Orchestrator API URL (or set API_URL env)")
	rootCmd.PersistentFlags().StringVarP(&wallet, "wallet", "w", "", "Only show intents for this wallet (or set USER_ADDRESS env)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Read an Orchestrator SQLite database instead of the API (or set TRUSTVIEW_DB env)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default trustview.log)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per-request timeout (default 10s)")

	rootCmd.Flags().BoolVarP(&autoFlag, "auto", "a", false, "Start with auto refresh enabled")

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON instead of a table")
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Print the Markdown report without rendering")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Snapshot file to write (required)")
	exportCmd.Flags().IntVar(&exportConcurrency, "concurrency", 4, "Parallel detail fetches")
	_ = exportCmd.MarkFlagRequired("out")
	initConfigCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(initConfigCmd)
}

// rootPersistentPreRunE resolves configuration and initializes logging.
// It is attached to rootCmd in init to avoid an initialization cycle through
// logFileFor.
func rootPersistentPreRunE(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err = logging.Initialize(logging.Options{
		File:  logFileFor(cmd),
		Level: cfg.Logging.Level,
	})
	if err != nil {
		return err
	}
	logging.Boot("trustview %s starting (level=%s)", cmd.Name(), cfg.Logging.Level)
	logger.Debug("configuration resolved",
		zap.String("api_url", cfg.Orchestrator.APIURL),
		zap.String("wallet", cfg.Orchestrator.UserAddress),
		zap.String("db", cfg.Store.Path))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// logFileFor returns the log destination for cmd. The dashboard owns the
// terminal, so an empty logging.file discards its logs instead of writing
// them over the alt screen.
func logFileFor(cmd *cobra.Command) string {
	if cfg.Logging.File == "" && cmd == rootCmd {
		return os.DevNull
	}
	return cfg.Logging.File
}

// loadConfig resolves defaults < YAML < environment < flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		c.Orchestrator.APIURL = apiURL
	}
	if flags.Changed("wallet") {
		c.Orchestrator.UserAddress = wallet
	}
	if flags.Changed("db") {
		c.Store.Path = dbPath
	}
	if flags.Changed("log-file") {
		c.Logging.File = logFile
	}
	if flags.Changed("timeout") {
		c.Orchestrator.Timeout = timeout.String()
	}
	if flags.Changed("auto") {
		c.Refresh.Auto = autoFlag
	}
	if verbose {
		c.Logging.Level = "debug"
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
