// Package report renders a summary into the delimited tables consumed by
// output sinks.
package report

// Table names, also used as file and sheet names by the sinks.
const (
	TableRecords    = "records"
	TableMonthly    = "monthly_records"
	TableCategories = "monthly_category_statistics"
)

// Column headers
const (
	HeaderDate     = "Дата"
	HeaderValueRUB = "Сумма, ₽"
	HeaderType     = "Тип"
	HeaderFrom     = "Из"
	HeaderTo       = "В"
	HeaderNote     = "Заметка"
	HeaderSpending = "Траты по категориям"
	HeaderCategory = "Категория"
)

// Table is a rendered, immutable result table.
type Table struct {
	Name      string
	Header    []string
	Rows      [][]string
	Delimiter rune
}

// Values returns header and rows as one matrix.
func (t Table) Values() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Header...))
	for _, r := range t.Rows {
		out = append(out, append([]string(nil), r...))
	}
	return out
}
