package sheets

import (
	"fmt"
	"strings"

	"ledgerstat/internal/core"
)

// RowsFromRecords maps a header-first record matrix to raw rows. Columns are
// looked up by header name; a missing required column is an error. Fully
// blank records are skipped. Each row's Line is its record number, header
// included, which is the sheet row number of a range starting at row 1.
func RowsFromRecords(records [][]string) ([]core.RawRow, error) {
	return RowsFromNumberedRecords(records, nil)
}

// RowsFromNumberedRecords is RowsFromRecords with the source line of every
// record given in lines, which must be nil or as long as records.
func RowsFromNumberedRecords(records [][]string, lines []int) ([]core.RawRow, error) {
	if lines != nil && len(lines) != len(records) {
		return nil, fmt.Errorf("got %d line numbers for %d records", len(lines), len(records))
	}
	if len(records) == 0 {
		return nil, nil
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		// Excel exports often start with a byte order mark
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	required := []string{ColumnDate, ColumnType, ColumnFrom, ColumnTo, ColumnAmount}
	var missing []string
	for _, name := range required {
		if indexOf(header, name) == -1 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unexpected ledger header: missing %s; got headers=%v", strings.Join(missing, ","), header)
	}

	col := func(rec []string, name string) string {
		return strings.TrimSpace(safeGet(rec, indexOf(header, name)))
	}
	out := make([]core.RawRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		line := i + 2
		if lines != nil {
			line = lines[i+1]
		}
		out = append(out, core.RawRow{
			Line:              line,
			Date:              col(rec, ColumnDate),
			Type:              col(rec, ColumnType),
			From:              col(rec, ColumnFrom),
			To:                col(rec, ColumnTo),
			Tags:              splitTags(col(rec, ColumnTags)),
			Amount:            col(rec, ColumnAmount),
			Currency:          col(rec, ColumnCurrency),
			SecondaryAmount:   col(rec, ColumnSecondaryAmount),
			SecondaryCurrency: col(rec, ColumnSecondaryCurrency),
			Repeat:            col(rec, ColumnRepeat),
			Note:              col(rec, ColumnNote),
		})
	}
	return out, nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(target)) {
			return i
		}
	}
	return -1
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
