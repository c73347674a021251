package backend

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"ledgerstat/internal/log"
	"ledgerstat/internal/report"
	"ledgerstat/internal/sheets"
)

var _ sheets.TableWriter = (*Fanout)(nil)

// Fanout writes the same tables to every sink concurrently. Each sink gets
// its own copy of the tables.
type Fanout struct {
	sinks  []Sink
	logger *log.Logger
}

func NewFanout(sinks []Sink, logger *log.Logger) *Fanout {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Fanout{sinks: sinks, logger: logger.WithComponent(log.ComponentBackend)}
}

// WriteTables returns the first sink error; the context passed to the
// remaining sinks is cancelled when one fails. Sinks log through the run
// logger carried by ctx.
func (f *Fanout) WriteTables(ctx context.Context, run string, tables []report.Table) error {
	logger := log.FromContext(ctx).WithComponent(log.ComponentBackend)
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range f.sinks {
		own := copyTables(tables)
		g.Go(func() error {
			start := time.Now()
			if err := s.Writer.WriteTables(gctx, run, own); err != nil {
				return fmt.Errorf("sink %s: %w", s.Type, err)
			}
			logger.InfoContext(gctx, "Wrote report tables",
				log.NewFields().
					WithSink(s.Type.String(), len(own)).
					With(log.FieldDuration, time.Since(start).Milliseconds()).
					ToSlice()...)
			return nil
		})
	}
	return g.Wait()
}

// Close runs every sink cleanup.
func (f *Fanout) Close() error {
	CloseSinks(f.sinks, f.logger)
	return nil
}

func copyTables(tables []report.Table) []report.Table {
	out := make([]report.Table, len(tables))
	for i, t := range tables {
		rows := make([][]string, len(t.Rows))
		for j, r := range t.Rows {
			rows[j] = append([]string(nil), r...)
		}
		out[i] = report.Table{
			Name:      t.Name,
			Header:    append([]string(nil), t.Header...),
			Rows:      rows,
			Delimiter: t.Delimiter,
		}
	}
	return out
}
