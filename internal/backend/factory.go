package backend

import (
	"context"
	"fmt"

	"ledgerstat/internal/log"
	"ledgerstat/internal/sheets/csvfile"
	gsheet "ledgerstat/internal/sheets/google"
	"ledgerstat/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateSource implements Factory.CreateSource
func (f *DefaultFactory) CreateSource(ctx context.Context, config Config) (*SourceResult, error) {
	switch config.Source {
	case CSVSource:
		f.logger.Info("Initialized CSV ledger source",
			"path", config.LedgerInput,
			"encoding", config.LedgerEncoding)
		return &SourceResult{Reader: csvfile.NewReader(config.LedgerInput, config.LedgerEncoding)}, nil
	case SheetsSource:
		cli, err := f.sheetsClient(ctx, config)
		if err != nil {
			return nil, err
		}
		f.logger.Info("Initialized Google Sheets ledger source", "range", config.GoogleLedgerRange)
		return &SourceResult{Reader: cli}, nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", config.Source)
	}
}

// CreateSinks implements Factory.CreateSinks. On failure every sink created
// so far is cleaned up.
func (f *DefaultFactory) CreateSinks(ctx context.Context, config Config) ([]Sink, error) {
	sinks := make([]Sink, 0, len(config.Sinks))
	for _, t := range config.Sinks {
		sink, err := f.createSink(ctx, t, config)
		if err != nil {
			CloseSinks(sinks, f.logger)
			return nil, err
		}
		sinks = append(sinks, sink)
	}
	return sinks, nil
}

func (f *DefaultFactory) createSink(ctx context.Context, t SinkType, config Config) (Sink, error) {
	switch t {
	case CSVSink:
		f.logger.Info("Initialized CSV sink", "output_dir", config.OutputDir)
		return Sink{Type: t, Writer: csvfile.NewWriter(config.OutputDir)}, nil
	case SheetsSink:
		cli, err := f.sheetsClient(ctx, config)
		if err != nil {
			return Sink{}, err
		}
		f.logger.Info("Initialized Google Sheets sink")
		return Sink{Type: t, Writer: cli}, nil
	case SQLiteSink:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return Sink{}, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite sink", "db_path", config.SQLiteDBPath)
		return Sink{Type: t, Writer: repo, Cleanup: repo.Close}, nil
	default:
		return Sink{}, fmt.Errorf("unsupported sink type: %s", t)
	}
}

func (f *DefaultFactory) sheetsClient(ctx context.Context, config Config) (*gsheet.Client, error) {
	cli, err := gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:   config.GoogleSpreadsheetID,
		LedgerRange:     config.GoogleLedgerRange,
		CredentialsJSON: config.GoogleServiceAccountJSON,
		CredentialsFile: config.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}
	return cli, nil
}

// CloseSinks runs every sink cleanup, logging failures.
func CloseSinks(sinks []Sink, logger *log.Logger) {
	for _, s := range sinks {
		if s.Cleanup == nil {
			continue
		}
		if err := s.Cleanup(); err != nil {
			logger.Warn("Failed to close sink", log.FieldSink, s.Type.String(), log.FieldError, err)
		}
	}
}
