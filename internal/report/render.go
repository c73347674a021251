package report

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"ledgerstat/internal/core"
	"ledgerstat/internal/locale"
)

// Window is an inclusive date range. A zero bound is open.
type Window struct {
	From civil.Date
	To   civil.Date
}

// Contains reports whether d lies inside the window.
func (w Window) Contains(d civil.Date) bool {
	if w.From.IsValid() && d.Before(w.From) {
		return false
	}
	if w.To.IsValid() && d.After(w.To) {
		return false
	}
	return true
}

// Options selects what goes into the rendered tables.
type Options struct {
	// Listing restricts the records table.
	Listing Window
	// Month is the month of the category breakdown.
	Month core.MonthKey
}

// Renderer turns summaries into tables using display labels.
type Renderer struct {
	labels locale.Labels
}

func NewRenderer(labels locale.Labels) *Renderer {
	return &Renderer{labels: labels}
}

// Render produces the listing, the monthly rollup and the category breakdown.
func (r *Renderer) Render(s core.Summary, opts Options) ([]Table, error) {
	monthly, err := r.MonthlyRollup(core.SortedMonths(s.Monthly), s.Vocabulary)
	if err != nil {
		return nil, fmt.Errorf("render monthly rollup: %w", err)
	}
	cats, err := s.Categories(opts.Month)
	if err != nil {
		return nil, fmt.Errorf("render category breakdown: %w", err)
	}
	return []Table{
		r.Listing(s.Entries, opts.Listing),
		monthly,
		r.CategoryBreakdown(cats),
	}, nil
}

// Listing renders the entries inside w in their original order.
func (r *Renderer) Listing(entries []core.Entry, w Window) Table {
	t := Table{
		Name:      TableRecords,
		Header:    []string{HeaderDate, HeaderValueRUB, HeaderType, HeaderFrom, HeaderTo, HeaderNote},
		Delimiter: ';',
	}
	for _, e := range entries {
		if !w.Contains(e.Date) {
			continue
		}
		t.Rows = append(t.Rows, []string{
			locale.FormatDate(e.Date),
			core.FormatAmount(e.Amount),
			r.labels.Operation(e.Operation),
			e.Source,
			e.Destination,
			e.Note,
		})
	}
	return t
}

// MonthlyRollup renders one row per month with the category map folded
// into a single field.
func (r *Renderer) MonthlyRollup(months []core.MonthlyBucket, vocab core.Vocabulary) (Table, error) {
	t := Table{
		Name: TableMonthly,
		Header: []string{
			HeaderDate,
			r.labels.Operation(core.Consumption),
			r.labels.Operation(core.Income),
			r.labels.Operation(core.Transfer),
			HeaderSpending,
		},
		Delimiter: ',',
	}
	for _, m := range months {
		label, err := r.labels.Month(m.Month)
		if err != nil {
			return Table{}, err
		}
		t.Rows = append(t.Rows, []string{
			label,
			core.FormatAmount(m.Consumption),
			core.FormatAmount(m.Income),
			core.FormatAmount(m.Transfer),
			FormatSpending(m.Project(vocab)),
		})
	}
	return t, nil
}

// CategoryBreakdown renders a projection, one row per category.
func (r *Renderer) CategoryBreakdown(cats []core.CategoryAmount) Table {
	t := Table{
		Name:      TableCategories,
		Header:    []string{HeaderCategory, r.labels.Operation(core.Consumption)},
		Delimiter: ';',
	}
	for _, c := range cats {
		t.Rows = append(t.Rows, []string{c.Name, core.FormatAmount(c.Amount)})
	}
	return t
}

// FormatSpending serializes a projection as "{name=amount, ...}".
func FormatSpending(cats []core.CategoryAmount) string {
	parts := make([]string, 0, len(cats))
	for _, c := range cats {
		parts = append(parts, c.Name+"="+core.FormatAmount(c.Amount))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
