// Package root contains the root command for the application
package root

import (
	"fmt"
	"os"

	"fjacquet/ledger/internal/config"
	"fjacquet/ledger/internal/container"
	"fjacquet/ledger/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to every command
type CommonFlags struct {
	ConfigFile string
	DataDir    string
	Backend    string
	LogLevel   string
	LogFormat  string
	WeekStart  string
	Format     string
	Output     string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.OrDiscard(nil)

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig = config.Default()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ledger",
		Short: "A CLI tool to aggregate and report on a personal-finance ledger.",
		Long: `ledger is a CLI tool that reads a personal-finance ledger and reports on it.
It resolves reporting periods, groups spending by category or account, compares
periods, tracks budgets and loans and resolves account fees.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv(nil)

			cfg, err := config.LoadConfig(SharedFlags.ConfigFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
				os.Exit(1)
			}
			ApplyFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(os.Stderr, "Invalid flags: %v\n", err)
				os.Exit(1)
			}

			AppConfig = cfg
			Log = config.NewLogger(cfg)
		},
	}

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default: config.yaml in $HOME/.ledger, .ledger or .)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.DataDir, "data-dir", "d", "", "Directory holding the ledger data files")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Backend, "backend", "", "Record store backend: file or sqlite")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format: text or json")
	Cmd.PersistentFlags().StringVar(&SharedFlags.WeekStart, "week-start", "", "First day of the week, e.g. monday or sunday")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Output format: text, json or csv")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
}

// ApplyFlags copies the persistent flags that were set on the command line into cfg
func ApplyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("data-dir") {
		cfg.Data.Directory = SharedFlags.DataDir
	}
	if changed("backend") {
		cfg.Data.Backend = SharedFlags.Backend
	}
	if changed("log-level") {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if changed("log-format") {
		cfg.Log.Format = SharedFlags.LogFormat
	}
	if changed("week-start") {
		cfg.Period.WeekStart = SharedFlags.WeekStart
	}
	if changed("format") {
		cfg.Report.Format = SharedFlags.Format
	}
}

// NewContainer wires the application for a subcommand. Callers must Close it.
func NewContainer() *container.Container {
	c, err := container.NewContainer(AppConfig)
	if err != nil {
		Log.Fatalf("Error initializing application: %v", err)
	}
	return c
}
