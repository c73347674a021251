package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"ledgerstat/internal/core"
	"ledgerstat/internal/sheets/csvfile"
)

type Config struct {
	// Ledger input
	LedgerSource     string
	LedgerInput      string
	LedgerEncoding   string
	LedgerSheetRange string

	// Report output
	ReportSinks     []string
	ReportOutputDir string
	ReportFrom      string
	ReportTo        string
	ReportMonth     string

	// Classification tables
	CategoriesFile    string
	IncomeSourcesFile string

	// Database
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Logging
	LogLevel string

	// Overall deadline for one run, I/O included
	RunTimeout time.Duration
}

func Load() *Config {
	cfg := &Config{
		LedgerSource:     getEnv("LEDGER_SOURCE", "csv"),
		LedgerInput:      getEnv("LEDGER_INPUT", "./data/data.csv"),
		LedgerEncoding:   getEnv("LEDGER_ENCODING", "utf-8"),
		LedgerSheetRange: getEnv("LEDGER_SHEET_RANGE", "Ledger!A:K"),

		ReportSinks:     getEnvList("REPORT_SINKS", []string{"csv"}),
		ReportOutputDir: getEnv("REPORT_OUTPUT_DIR", "./data/out"),
		ReportFrom:      getEnv("REPORT_FROM", ""),
		ReportTo:        getEnv("REPORT_TO", ""),
		ReportMonth:     getEnv("REPORT_MONTH", ""),

		CategoriesFile:    getEnv("CATEGORIES_FILE", ""),
		IncomeSourcesFile: getEnv("INCOME_SOURCES_FILE", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/ledgerstat.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "ledgerstat"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_ready"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		RunTimeout: getEnvDuration("RUN_TIMEOUT", 2*time.Minute),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validSources := []string{"csv", "sheets"}
	if !contains(validSources, c.LedgerSource) {
		errors = append(errors, fmt.Sprintf("invalid ledger source '%s': must be one of %v", c.LedgerSource, validSources))
	}

	if c.LedgerSource == "csv" {
		if c.LedgerInput == "" {
			errors = append(errors, "ledger input path cannot be empty when using csv source")
		}
		if _, ok := csvfile.CanonicalEncoding(c.LedgerEncoding); !ok {
			errors = append(errors, fmt.Sprintf("invalid ledger encoding '%s': must be one of %v", c.LedgerEncoding, csvfile.EncodingNames()))
		}
	}

	validSinks := []string{"csv", "sheets", "sqlite"}
	if len(c.ReportSinks) == 0 {
		errors = append(errors, "at least one report sink is required")
	}
	for _, s := range c.ReportSinks {
		if !contains(validSinks, s) {
			errors = append(errors, fmt.Sprintf("invalid report sink '%s': must be one of %v", s, validSinks))
		}
	}
	if contains(c.ReportSinks, "csv") && c.ReportOutputDir == "" {
		errors = append(errors, "report output directory cannot be empty when using csv sink")
	}
	if contains(c.ReportSinks, "sqlite") && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite sink")
	}

	if c.LedgerSource == "sheets" || contains(c.ReportSinks, "sheets") {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using Google Sheets")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	for _, seed := range []struct{ key, path string }{
		{"CATEGORIES_FILE", c.CategoriesFile},
		{"INCOME_SOURCES_FILE", c.IncomeSourcesFile},
	} {
		if seed.path == "" {
			continue
		}
		if info, err := os.Stat(seed.path); err != nil {
			errors = append(errors, fmt.Sprintf("%s cannot be read: %v", seed.key, err))
		} else if info.IsDir() {
			errors = append(errors, fmt.Sprintf("%s is a directory: %s", seed.key, seed.path))
		}
	}

	from, fromErr := parseOptionalDate(c.ReportFrom)
	if fromErr != nil {
		errors = append(errors, fmt.Sprintf("invalid REPORT_FROM: %v", fromErr))
	}
	to, toErr := parseOptionalDate(c.ReportTo)
	if toErr != nil {
		errors = append(errors, fmt.Sprintf("invalid REPORT_TO: %v", toErr))
	}
	if fromErr == nil && toErr == nil && from.IsValid() && to.IsValid() && to.Before(from) {
		errors = append(errors, fmt.Sprintf("REPORT_TO %s is before REPORT_FROM %s", c.ReportTo, c.ReportFrom))
	}

	if c.ReportMonth != "" {
		if _, err := core.ParseMonthKey(c.ReportMonth); err != nil {
			errors = append(errors, fmt.Sprintf("invalid REPORT_MONTH: %v", err))
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	if c.RunTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid run timeout %v: must be at least 1 second", c.RunTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ListingWindow returns the parsed REPORT_FROM/REPORT_TO bounds; unset bounds
// are zero dates. Call after Validate.
func (c *Config) ListingWindow() (from, to civil.Date, err error) {
	if from, err = parseOptionalDate(c.ReportFrom); err != nil {
		return
	}
	to, err = parseOptionalDate(c.ReportTo)
	return
}

func parseOptionalDate(s string) (civil.Date, error) {
	if strings.TrimSpace(s) == "" {
		return civil.Date{}, nil
	}
	return core.ParseDate(s)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
