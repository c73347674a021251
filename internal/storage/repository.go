package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ledgerstat/internal/log"
	"ledgerstat/internal/report"
	ports "ledgerstat/internal/sheets"

	_ "modernc.org/sqlite"
)

var _ ports.TableWriter = (*SQLiteRepository)(nil)

// ErrTableNotFound is returned when a run has no table of the requested name.
var ErrTableNotFound = errors.New("report table not found")

// SQLiteRepository archives rendered report tables per run.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// WriteTables stores all tables of a run in one transaction.
func (r *SQLiteRepository) WriteTables(ctx context.Context, run string, tables []report.Table) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO report_runs (id) VALUES (?)`, run); err != nil {
		return fmt.Errorf("insert run %s: %w", run, err)
	}

	for _, t := range tables {
		header, err := json.Marshal(t.Header)
		if err != nil {
			return fmt.Errorf("marshal header of %s: %w", t.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO report_tables (run_id, name, header, delimiter) VALUES (?, ?, ?, ?)`,
			run, t.Name, string(header), string(t.Delimiter)); err != nil {
			return fmt.Errorf("insert table %s: %w", t.Name, err)
		}
		for i, row := range t.Rows {
			cells, err := json.Marshal(row)
			if err != nil {
				return fmt.Errorf("marshal row %d of %s: %w", i, t.Name, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO report_rows (run_id, table_name, row_index, cells) VALUES (?, ?, ?, ?)`,
				run, t.Name, i, string(cells)); err != nil {
				return fmt.Errorf("insert row %d of %s: %w", i, t.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run, err)
	}

	log.FromContext(ctx).WithComponent(log.ComponentStorage).InfoContext(ctx, "Report tables saved to SQLite",
		log.FieldTables, len(tables))
	return nil
}

// ReadTable loads one archived table.
func (r *SQLiteRepository) ReadTable(ctx context.Context, run, name string) (report.Table, error) {
	var header, delimiter string
	err := r.db.QueryRowContext(ctx,
		`SELECT header, delimiter FROM report_tables WHERE run_id = ? AND name = ?`,
		run, name).Scan(&header, &delimiter)
	if errors.Is(err, sql.ErrNoRows) {
		return report.Table{}, fmt.Errorf("%s/%s: %w", run, name, ErrTableNotFound)
	}
	if err != nil {
		return report.Table{}, fmt.Errorf("get table %s: %w", name, err)
	}

	t := report.Table{Name: name}
	if err := json.Unmarshal([]byte(header), &t.Header); err != nil {
		return report.Table{}, fmt.Errorf("decode header of %s: %w", name, err)
	}
	for _, d := range delimiter {
		t.Delimiter = d
		break
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT cells FROM report_rows WHERE run_id = ? AND table_name = ? ORDER BY row_index`,
		run, name)
	if err != nil {
		return report.Table{}, fmt.Errorf("get rows of %s: %w", name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var cells string
		if err := rows.Scan(&cells); err != nil {
			return report.Table{}, fmt.Errorf("scan row of %s: %w", name, err)
		}
		var row []string
		if err := json.Unmarshal([]byte(cells), &row); err != nil {
			return report.Table{}, fmt.Errorf("decode row of %s: %w", name, err)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return report.Table{}, fmt.Errorf("iterate rows of %s: %w", name, err)
	}
	return t, nil
}

// ListRuns returns archived run ids, newest first.
func (r *SQLiteRepository) ListRuns(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM report_runs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
