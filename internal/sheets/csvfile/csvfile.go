// Package csvfile reads Coinkeeper CSV exports and writes report tables as
// delimited files.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"ledgerstat/internal/core"
	"ledgerstat/internal/log"
	"ledgerstat/internal/report"
	ports "ledgerstat/internal/sheets"
)

// Supported input encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1251 = "windows-1251"
)

// encodingAliases maps every accepted encoding name to its canonical form.
var encodingAliases = map[string]string{
	"":                  EncodingUTF8,
	EncodingUTF8:        EncodingUTF8,
	"utf8":              EncodingUTF8,
	EncodingWindows1251: EncodingWindows1251,
	"cp1251":            EncodingWindows1251,
}

// CanonicalEncoding resolves an encoding name, case-insensitively, to
// EncodingUTF8 or EncodingWindows1251. An empty name means UTF-8.
func CanonicalEncoding(name string) (string, bool) {
	enc, ok := encodingAliases[strings.ToLower(strings.TrimSpace(name))]
	return enc, ok
}

// EncodingNames lists the accepted encoding names.
func EncodingNames() []string {
	return []string{EncodingUTF8, "utf8", EncodingWindows1251, "cp1251"}
}

// Ensure interface conformance
var (
	_ ports.LedgerReader = (*Reader)(nil)
	_ ports.TableWriter  = (*Writer)(nil)
)

// Reader reads a ledger export from a CSV file.
type Reader struct {
	path     string
	encoding string
}

func NewReader(path, encoding string) *Reader {
	return &Reader{path: path, encoding: encoding}
}

// ReadRows parses the whole file. The first record is the header.
func (r *Reader) ReadRows(ctx context.Context) ([]core.RawRow, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", r.path, err)
	}
	defer f.Close()

	src, err := decode(f, r.encoding)
	if err != nil {
		return nil, err
	}
	rows, err := ReadFrom(ctx, src)
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).WithComponent(log.ComponentLedger).DebugContext(ctx, "Read ledger file",
		log.FieldSource, r.path,
		log.FieldRows, len(rows))
	return rows, nil
}

// ReadFrom parses a comma delimited export from src. Rows carry the file
// line their record starts on.
func ReadFrom(ctx context.Context, src io.Reader) ([]core.RawRow, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records [][]string
	var lines []int
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ledger csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return ports.RowsFromNumberedRecords(records, lines)
}

func decode(src io.Reader, encoding string) (io.Reader, error) {
	enc, ok := CanonicalEncoding(encoding)
	if !ok {
		return nil, fmt.Errorf("unsupported ledger encoding %q", encoding)
	}
	if enc == EncodingWindows1251 {
		return charmap.Windows1251.NewDecoder().Reader(src), nil
	}
	return src, nil
}

// Writer writes every table to <dir>/<name>.csv.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteTables writes the tables of a run. Files of a previous run are
// overwritten.
func (w *Writer) WriteTables(ctx context.Context, _ string, tables []report.Table) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.writeTable(t); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeTable(t report.Table) error {
	path := filepath.Join(w.dir, t.Name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if t.Delimiter != 0 {
		cw.Comma = t.Delimiter
	}
	if err := cw.WriteAll(t.Values()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
