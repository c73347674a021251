// Package cli provides the initialization steps shared by the ledgerstat
// command: environment, logging, configuration and signal handling.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ledgerstat/internal/config"
	"ledgerstat/internal/core"
	"ledgerstat/internal/log"
	"ledgerstat/internal/sheets/memory"
)

// SetupLogger initializes structured logging at the given level and sets it
// as the default logger.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(level)
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			log.NewFields().WithOperation(log.OpValidate).WithError(err).ToSlice()...)
		os.Exit(1)
	}
	return cfg
}

// LoadTables builds the vocabulary and classification rules. A configured
// seed file replaces the defaults; a configured file that is missing,
// unreadable or empty is an error.
func LoadTables(cfg *config.Config, logger *log.Logger) (core.Vocabulary, core.Rules, error) {
	vocab := core.DefaultVocabulary()
	if cfg.CategoriesFile != "" {
		names, err := readSeed(cfg.CategoriesFile)
		if err != nil {
			return core.Vocabulary{}, core.Rules{}, fmt.Errorf("categories: %w", err)
		}
		vocab = core.NewVocabulary(names...)
		logger.Info("Loaded categories", "path", cfg.CategoriesFile, "count", vocab.Len())
	}

	rules := core.DefaultRules()
	if cfg.IncomeSourcesFile != "" {
		sources, err := readSeed(cfg.IncomeSourcesFile)
		if err != nil {
			return core.Vocabulary{}, core.Rules{}, fmt.Errorf("income sources: %w", err)
		}
		rules = rules.WithIncomeSources(sources)
		logger.Info("Loaded income sources", "path", cfg.IncomeSourcesFile, "count", len(sources))
	}
	return vocab, rules, nil
}

func readSeed(path string) ([]string, error) {
	lines, err := memory.ReadLines(path)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("seed file %s has no entries", path)
	}
	return lines, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received",
				log.FieldOperation, log.OpShutdown,
				"signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
