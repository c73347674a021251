package sheets

import (
	"context"

	"ledgerstat/internal/core"
	"ledgerstat/internal/report"
)

// Ports for inbound and outbound adapters.
type (
	// LedgerReader supplies the raw rows of a ledger export in file order.
	LedgerReader interface {
		ReadRows(ctx context.Context) ([]core.RawRow, error)
	}

	// TableWriter stores the rendered tables of one run.
	TableWriter interface {
		// WriteTables writes every table; run identifies the report run.
		WriteTables(ctx context.Context, run string, tables []report.Table) error
	}
)

// Coinkeeper export column headers.
const (
	ColumnDate              = "Данные"
	ColumnType              = "Тип"
	ColumnFrom              = "Из"
	ColumnTo                = "В"
	ColumnTags              = "Метки"
	ColumnAmount            = "Сумма"
	ColumnCurrency          = "Валюта"
	ColumnSecondaryAmount   = "Сумма в др.валюте"
	ColumnSecondaryCurrency = "Др.валюта"
	ColumnRepeat            = "Повторение"
	ColumnNote              = "Заметка"
)
