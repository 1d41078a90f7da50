// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/ledger/internal/dateutils"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/period"
	"fjacquet/ledger/internal/store"
	"fjacquet/ledger/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LEDGER_DATA_DIRECTORY
const EnvPrefix = "LEDGER"

// MaxPrecision bounds currency.precision
const MaxPrecision = 6

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Backend          string `mapstructure:"backend" yaml:"backend"`
		Directory        string `mapstructure:"directory" yaml:"directory"`
		TransactionsFile string `mapstructure:"transactions_file" yaml:"transactions_file"`
		AccountsFile     string `mapstructure:"accounts_file" yaml:"accounts_file"`
		CategoriesFile   string `mapstructure:"categories_file" yaml:"categories_file"`
		BudgetsFile      string `mapstructure:"budgets_file" yaml:"budgets_file"`
		LoansFile        string `mapstructure:"loans_file" yaml:"loans_file"`
		SQLitePath       string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	} `mapstructure:"data" yaml:"data"`

	Period struct {
		WeekStart          string `mapstructure:"week_start" yaml:"week_start"`
		DefaultGranularity string `mapstructure:"default_granularity" yaml:"default_granularity"`
	} `mapstructure:"period" yaml:"period"`

	Currency struct {
		Precision int    `mapstructure:"precision" yaml:"precision"`
		Symbol    string `mapstructure:"symbol" yaml:"symbol"`
	} `mapstructure:"currency" yaml:"currency"`

	Report struct {
		Format       string `mapstructure:"format" yaml:"format"`
		ExcludeLoans bool   `mapstructure:"exclude_loans" yaml:"exclude_loans"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig loads the configuration from the default locations
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig initializes Viper configuration with hierarchical loading.
// A non-empty configFile replaces the search path and must be readable.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.ledger")
		v.AddConfigPath(".ledger")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if !errors.As(err, &notFound) {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration made of defaults only
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Data defaults
	v.SetDefault("data.backend", store.BackendFile)
	v.SetDefault("data.directory", ".")
	v.SetDefault("data.transactions_file", store.DefaultTransactionsFile)
	v.SetDefault("data.accounts_file", store.DefaultAccountsFile)
	v.SetDefault("data.categories_file", store.DefaultCategoriesFile)
	v.SetDefault("data.budgets_file", store.DefaultBudgetsFile)
	v.SetDefault("data.loans_file", store.DefaultLoansFile)
	v.SetDefault("data.sqlite_path", "ledger.db")

	// Period defaults
	v.SetDefault("period.week_start", "monday")
	v.SetDefault("period.default_granularity", string(period.Monthly))

	// Currency defaults
	v.SetDefault("currency.precision", 2)
	v.SetDefault("currency.symbol", "")

	// Report defaults
	v.SetDefault("report.format", validation.FormatText)
	v.SetDefault("report.exclude_loans", false)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch strings.ToLower(config.Data.Backend) {
	case store.BackendFile, store.BackendSQLite:
	default:
		return fmt.Errorf("invalid data backend: %s (must be '%s' or '%s')", config.Data.Backend, store.BackendFile, store.BackendSQLite)
	}

	if _, err := dateutils.ParseWeekday(config.Period.WeekStart); err != nil {
		return fmt.Errorf("invalid period.week_start: %w", err)
	}

	if _, err := period.ParseGranularity(config.Period.DefaultGranularity); err != nil {
		return fmt.Errorf("invalid period.default_granularity: %w", err)
	}

	if config.Currency.Precision < 0 || config.Currency.Precision > MaxPrecision {
		return fmt.Errorf("currency.precision must be between 0 and %d, got: %d", MaxPrecision, config.Currency.Precision)
	}

	if err := validation.IsValidOutputFormat(config.Report.Format); err != nil {
		return fmt.Errorf("invalid report.format: %w", err)
	}

	return nil
}

// PeriodSettings converts the period section into resolver settings
func (c *Config) PeriodSettings() (period.Settings, error) {
	ws, err := dateutils.ParseWeekday(c.Period.WeekStart)
	if err != nil {
		return period.Settings{}, err
	}
	return period.Settings{WeekStart: ws}, nil
}

// StoreOptions converts the data section into store options
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend: c.Data.Backend,
		Files: store.FileConfig{
			Directory:        c.Data.Directory,
			TransactionsFile: c.Data.TransactionsFile,
			AccountsFile:     c.Data.AccountsFile,
			CategoriesFile:   c.Data.CategoriesFile,
			BudgetsFile:      c.Data.BudgetsFile,
			LoansFile:        c.Data.LoansFile,
		},
		DBPath: c.Data.SQLitePath,
	}
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// NewLogger returns the configured logger behind the logging.Logger interface
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapterFromLogger(ConfigureLoggingFromConfig(config))
}

// Validate checks the configuration after programmatic changes such as flag overrides
func (c *Config) Validate() error {
	return validateConfig(c)
}
