package backend

import (
	"fmt"

	"ledgerstat/internal/config"
)

// Config holds configuration for source and sink creation
type Config struct {
	Source SourceType
	Sinks  []SinkType

	// CSV specific
	LedgerInput    string
	LedgerEncoding string
	OutputDir      string

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleLedgerRange        string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
}

// SourceType selects where ledger rows are read from
type SourceType string

const (
	CSVSource    SourceType = "csv"
	SheetsSource SourceType = "sheets"
)

func (st SourceType) String() string {
	return string(st)
}

// IsValid returns true if the source type is valid
func (st SourceType) IsValid() bool {
	switch st {
	case CSVSource, SheetsSource:
		return true
	default:
		return false
	}
}

// SinkType selects where rendered tables are written
type SinkType string

const (
	CSVSink    SinkType = "csv"
	SheetsSink SinkType = "sheets"
	SQLiteSink SinkType = "sqlite"
)

func (st SinkType) String() string {
	return string(st)
}

// IsValid returns true if the sink type is valid
func (st SinkType) IsValid() bool {
	switch st {
	case CSVSink, SheetsSink, SQLiteSink:
		return true
	default:
		return false
	}
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	source := SourceType(appConfig.LedgerSource)
	if !source.IsValid() {
		return Config{}, fmt.Errorf("invalid ledger source in config: %s", appConfig.LedgerSource)
	}

	sinks := make([]SinkType, 0, len(appConfig.ReportSinks))
	for _, s := range appConfig.ReportSinks {
		sink := SinkType(s)
		if !sink.IsValid() {
			return Config{}, fmt.Errorf("invalid report sink in config: %s", s)
		}
		sinks = append(sinks, sink)
	}

	return Config{
		Source: source,
		Sinks:  sinks,

		LedgerInput:    appConfig.LedgerInput,
		LedgerEncoding: appConfig.LedgerEncoding,
		OutputDir:      appConfig.ReportOutputDir,

		SQLiteDBPath: appConfig.SQLiteDBPath,

		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleLedgerRange:        appConfig.LedgerSheetRange,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Source.IsValid() {
		return fmt.Errorf("invalid source type: %s", c.Source)
	}
	if c.Source == CSVSource && c.LedgerInput == "" {
		return fmt.Errorf("ledger input path is required for csv source")
	}
	if len(c.Sinks) == 0 {
		return fmt.Errorf("at least one sink is required")
	}

	usesSheets := c.Source == SheetsSource
	seen := make(map[SinkType]bool, len(c.Sinks))
	for _, s := range c.Sinks {
		if !s.IsValid() {
			return fmt.Errorf("invalid sink type: %s", s)
		}
		if seen[s] {
			return fmt.Errorf("duplicate sink type: %s", s)
		}
		seen[s] = true

		switch s {
		case CSVSink:
			if c.OutputDir == "" {
				return fmt.Errorf("output directory is required for csv sink")
			}
		case SQLiteSink:
			if c.SQLiteDBPath == "" {
				return fmt.Errorf("SQLite database path is required for sqlite sink")
			}
		case SheetsSink:
			usesSheets = true
		}
	}

	if usesSheets && c.GoogleSpreadsheetID == "" {
		return fmt.Errorf("Google Spreadsheet ID is required for sheets source or sink")
	}

	return nil
}
