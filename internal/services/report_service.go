package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ledgerstat/internal/amqp"
	"ledgerstat/internal/core"
	"ledgerstat/internal/log"
	"ledgerstat/internal/report"
	"ledgerstat/internal/sheets"
)

// ErrEmptyLedger is returned when no month is requested and the ledger has
// no entries to pick one from.
var ErrEmptyLedger = errors.New("ledger has no entries")

// Notifier announces finished runs.
type Notifier interface {
	PublishReportReady(ctx context.Context, msg *amqp.ReportReadyMessage) error
}

// RunResult describes one finished run.
type RunResult struct {
	RunID   string
	Month   core.MonthKey
	Summary core.Summary
	Tables  []report.Table
}

// ReportService reads a ledger, aggregates it, renders the report tables and
// hands them to the sink. Nothing is written if any step before the sink fails.
type ReportService struct {
	source   sheets.LedgerReader
	sink     sheets.TableWriter
	notifier Notifier
	pipeline *core.Pipeline
	renderer *report.Renderer
	logger   *log.Logger
	newRunID func() string
}

// NewReportService wires a service. notifier may be nil.
func NewReportService(source sheets.LedgerReader, sink sheets.TableWriter, notifier Notifier, pipeline *core.Pipeline, renderer *report.Renderer, logger *log.Logger) *ReportService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ReportService{
		source:   source,
		sink:     sink,
		notifier: notifier,
		pipeline: pipeline,
		renderer: renderer,
		logger:   logger.WithComponent(log.ComponentPipeline),
		newRunID: func() string { return uuid.NewString() },
	}
}

// Run executes one report run. A zero opts.Month selects the latest month in
// the ledger.
func (s *ReportService) Run(ctx context.Context, opts report.Options) (*RunResult, error) {
	runID := s.newRunID()
	logger := s.logger.WithFields(log.NewFields().WithRunID(runID))
	ctx = log.IntoContext(ctx, logger)
	start := time.Now()

	rows, err := s.source.ReadRows(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Ledger read failed",
			log.NewFields().WithOperation(log.OpRead).WithError(err).ToSlice()...)
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	logger.DebugContext(ctx, "Read ledger rows", log.FieldRows, len(rows))

	summary, err := s.pipeline.Run(rows)
	if err != nil {
		logger.ErrorContext(ctx, "Ledger classification failed",
			log.NewFields().WithOperation(log.OpClassify).WithError(err).ToSlice()...)
		return nil, fmt.Errorf("aggregate ledger: %w", err)
	}

	if opts.Month.IsZero() {
		latest, ok := core.Latest(summary.Monthly)
		if !ok {
			logger.WarnContext(ctx, "Ledger has no months to report", log.FieldRows, len(rows))
			return nil, ErrEmptyLedger
		}
		opts.Month = latest
	}

	tables, err := s.renderer.Render(summary, opts)
	if err != nil {
		logger.WithComponent(log.ComponentReport).ErrorContext(ctx, "Report rendering failed",
			log.NewFields().WithOperation(log.OpRender).WithError(err).ToSlice()...)
		return nil, fmt.Errorf("render report: %w", err)
	}

	if err := s.sink.WriteTables(ctx, runID, tables); err != nil {
		logger.ErrorContext(ctx, "Report write failed",
			log.NewFields().WithOperation(log.OpWrite).WithError(err).ToSlice()...)
		return nil, fmt.Errorf("write report: %w", err)
	}

	logger.InfoContext(ctx, "Report run completed",
		log.NewFields().
			WithCounts(len(rows), len(summary.Entries), len(summary.Daily), len(summary.Monthly)).
			With(log.FieldMonth, opts.Month.String()).
			With(log.FieldDuration, time.Since(start).Milliseconds()).
			ToSlice()...)

	result := &RunResult{RunID: runID, Month: opts.Month, Summary: summary, Tables: tables}
	s.notify(ctx, logger, result)
	return result, nil
}

// notify publishes the run announcement. Failures are logged only; the
// tables are already written.
func (s *ReportService) notify(ctx context.Context, logger *log.Logger, r *RunResult) {
	if s.notifier == nil {
		return
	}
	months := make([]string, 0, len(r.Summary.Monthly))
	for _, m := range core.SortedMonths(r.Summary.Monthly) {
		months = append(months, m.Month.String())
	}
	names := make([]string, 0, len(r.Tables))
	for _, t := range r.Tables {
		names = append(names, t.Name)
	}
	msg := amqp.NewReportReadyMessage(r.RunID, len(r.Summary.Entries), len(r.Summary.Daily), months, names)
	if err := s.notifier.PublishReportReady(ctx, msg); err != nil {
		logger.ErrorContext(ctx, "Failed to publish report ready message",
			log.NewFields().WithOperation(log.OpNotify).WithError(err).ToSlice()...)
	}
}
