package backend

import (
	"context"

	"ledgerstat/internal/sheets"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// SourceResult contains the ledger reader and optional cleanup function
type SourceResult struct {
	Reader  sheets.LedgerReader
	Cleanup CleanupFunc
}

// Sink is a named table writer.
type Sink struct {
	Type    SinkType
	Writer  sheets.TableWriter
	Cleanup CleanupFunc
}

// Factory creates ledger sources and report sinks based on configuration
type Factory interface {
	CreateSource(ctx context.Context, config Config) (*SourceResult, error)
	CreateSinks(ctx context.Context, config Config) ([]Sink, error)
}
