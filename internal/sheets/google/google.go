package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"ledgerstat/internal/core"
	"ledgerstat/internal/log"
	"ledgerstat/internal/report"
	ports "ledgerstat/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	// A1 range holding the ledger export, header row included.
	ledgerRange string
}

// Ensure interface conformance
var (
	_ ports.LedgerReader = (*Client)(nil)
	_ ports.TableWriter  = (*Client)(nil)
)

// Options configures a Sheets client.
type Options struct {
	SpreadsheetID string
	LedgerRange   string
	// Service account credentials, inline JSON takes precedence over the file.
	CredentialsJSON string
	CredentialsFile string
}

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, opts Options) (*Client, error) {
	spreadsheetID := strings.TrimSpace(opts.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	ledgerRange := strings.TrimSpace(opts.LedgerRange)
	if ledgerRange == "" {
		ledgerRange = "Ledger!A:K"
	}

	svc, err := newSheetsService(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		ledgerRange:   ledgerRange,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
// Falls back to GOOGLE_APPLICATION_CREDENTIALS when neither option is set.
func newSheetsService(ctx context.Context, opts Options) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(opts.CredentialsJSON)
	serviceAccountFile := strings.TrimSpace(opts.CredentialsFile)
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	logger := log.FromContext(ctx).WithComponent(log.ComponentSheets)
	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		logger.DebugContext(ctx, "Using inline JSON credentials")
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		logger.DebugContext(ctx, "Reading credentials from file", "path", serviceAccountFile)
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadRows reads the ledger range and maps it by header name. Values are read
// formatted, so amounts may carry locale thousands separators; ParseAmount
// drops them.
func (c *Client) ReadRows(ctx context.Context) ([]core.RawRow, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.ledgerRange).
		ValueRenderOption("FORMATTED_VALUE").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.ledgerRange, err)
	}
	log.FromContext(ctx).WithComponent(log.ComponentLedger).DebugContext(ctx, "Read ledger range",
		log.FieldSource, c.ledgerRange,
		log.FieldRows, len(resp.Values))
	return ports.RowsFromRecords(toRecords(resp.Values))
}

// WriteTables writes each table into a tab named after it, creating missing
// tabs and clearing old content first.
func (c *Client) WriteTables(ctx context.Context, _ string, tables []report.Table) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Name)
	}
	if err := c.ensureSheets(ctx, names); err != nil {
		return err
	}
	logger := log.FromContext(ctx).WithComponent(log.ComponentSheets)

	for _, t := range tables {
		if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, t.Name, &gsheet.ClearValuesRequest{}).
			Context(ctx).Do(); err != nil {
			return fmt.Errorf("clear sheet %s: %w", t.Name, err)
		}
		vr := &gsheet.ValueRange{Values: valuesFromTable(t)}
		if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, t.Name+"!A1", vr).
			ValueInputOption("RAW").Context(ctx).Do(); err != nil {
			return fmt.Errorf("update sheet %s: %w", t.Name, err)
		}
		logger.InfoContext(ctx, "Table written to Google Sheets",
			log.FieldTable, t.Name,
			log.FieldRows, len(t.Rows))
	}
	return nil
}

func (c *Client) ensureSheets(ctx context.Context, names []string) error {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	existing := make([]string, 0, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			existing = append(existing, s.Properties.Title)
		}
	}
	missing := missingSheets(existing, names)
	if len(missing) == 0 {
		return nil
	}
	reqs := make([]*gsheet.Request, 0, len(missing))
	for _, name := range missing {
		reqs = append(reqs, &gsheet.Request{
			AddSheet: &gsheet.AddSheetRequest{Properties: &gsheet.SheetProperties{Title: name}},
		})
	}
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{Requests: reqs}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("add sheets %v: %w", missing, err)
	}
	return nil
}

func missingSheets(existing, wanted []string) []string {
	have := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		have[e] = struct{}{}
	}
	var out []string
	for _, w := range wanted {
		if _, ok := have[w]; ok {
			continue
		}
		have[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func valuesFromTable(t report.Table) [][]interface{} {
	values := t.Values()
	out := make([][]interface{}, len(values))
	for i, row := range values {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}

func toRecords(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = strings.TrimSpace(fmt.Sprint(v))
		}
		out[i] = rec
	}
	return out
}
