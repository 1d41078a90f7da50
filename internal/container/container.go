// Package container provides dependency injection for the ledger application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"fjacquet/ledger/internal/aggregator"
	"fjacquet/ledger/internal/config"
	"fjacquet/ledger/internal/fee"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/period"
	"fjacquet/ledger/internal/report"
	"fjacquet/ledger/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      store.Backend
	resolver   *period.Resolver
	calculator *fee.Calculator
	aggregator *aggregator.Aggregator
	generator  *report.Generator
}

// NewContainer creates and wires all application dependencies.
// The store backend named by the configuration is opened here; call Close when done.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := config.NewLogger(cfg)

	backend, err := store.Open(cfg.StoreOptions(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Data.Backend, err)
	}

	c, err := NewContainerWithStore(cfg, backend, logger)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return c, nil
}

// NewContainerWithStore wires the engine around an already opened backend.
// A nil logger is replaced with one built from cfg.
func NewContainerWithStore(cfg *config.Config, backend store.Backend, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if backend == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	settings, err := cfg.PeriodSettings()
	if err != nil {
		return nil, fmt.Errorf("invalid period settings: %w", err)
	}

	resolver := period.NewResolver(settings, logger)
	precision := int32(cfg.Currency.Precision) // #nosec G115 -- bounded by config validation

	c := &Container{
		logger:     logger,
		config:     cfg,
		store:      backend,
		resolver:   resolver,
		calculator: fee.NewCalculator(precision),
		aggregator: aggregator.NewAggregator(resolver, logger),
		generator:  report.NewGenerator(cfg.Currency.Symbol, precision, logger),
	}

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldBackend, cfg.Data.Backend),
		logging.F("week_start", settings.WeekStart.String()))

	return c, nil
}

// Snapshot loads the current content of the store
func (c *Container) Snapshot(ctx context.Context) (*store.Snapshot, error) {
	return c.store.Snapshot(ctx)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the record store backend
func (c *Container) GetStore() store.Backend {
	return c.store
}

// GetResolver returns the period resolver configured with the week start
func (c *Container) GetResolver() *period.Resolver {
	return c.resolver
}

// GetFeeCalculator returns the fee calculator configured with the currency precision
func (c *Container) GetFeeCalculator() *fee.Calculator {
	return c.calculator
}

// GetAggregator returns the report aggregator
func (c *Container) GetAggregator() *aggregator.Aggregator {
	return c.aggregator
}

// GetGenerator returns the output renderer
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// Close releases the store.
func (c *Container) Close() error {
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
