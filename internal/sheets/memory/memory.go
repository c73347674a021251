package memory

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"ledgerstat/internal/core"
	"ledgerstat/internal/report"
)

// Store keeps ledger rows and written tables in memory.
type Store struct {
	mu     sync.Mutex
	rows   []core.RawRow
	runs   []string
	tables map[string]report.Table
}

func New(rows []core.RawRow) *Store {
	return &Store{
		rows:   append([]core.RawRow(nil), rows...),
		tables: make(map[string]report.Table),
	}
}

// ReadRows returns a copy of the seeded rows.
func (s *Store) ReadRows(_ context.Context) ([]core.RawRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.RawRow(nil), s.rows...), nil
}

// WriteTables records the tables of a run, replacing tables of the same name.
func (s *Store) WriteTables(_ context.Context, run string, tables []report.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	for _, t := range tables {
		s.tables[t.Name] = t
	}
	return nil
}

// Table returns the last table written under name.
func (s *Store) Table(name string) (report.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	return t, ok
}

// Runs returns the run ids seen so far.
func (s *Store) Runs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.runs...)
}

// ReadLines reads a seed file: one value per line, blank lines and
// "#" comments skipped, duplicates dropped.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return dedupe(out), nil
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	// Preserve input order; the vocabulary order is significant.
	return out
}
