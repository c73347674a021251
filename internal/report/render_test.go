package report

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerstat/internal/core"
	"ledgerstat/internal/locale"
)

func summary(t *testing.T) core.Summary {
	t.Helper()
	rows := []core.RawRow{
		{Date: "31.08.2021", Type: "Расход", From: "Карта", To: "Дом", Amount: "20"},
		{Date: "01.09.2021", Type: "Расход", From: "Карта", To: "Продукты", Amount: "100,50", Note: "магазин"},
		{Date: "01.09.2021", Type: "Расход", From: "Карта", To: "Еда", Amount: "50.00"},
		{Date: "02.09.2021", Type: "Доход", From: "Зарплата", To: "Карта", Amount: "5000.00"},
	}
	vocab := core.NewVocabulary("Дом", "Продукты", "Еда")
	s, err := core.NewPipeline(core.DefaultRules(), vocab).Run(rows)
	require.NoError(t, err)
	return s
}

func september() core.MonthKey {
	return core.MonthKey{Year: 2021, Month: time.September}
}

func TestWindowContains(t *testing.T) {
	w := Window{
		From: civil.Date{Year: 2021, Month: time.September, Day: 1},
		To:   civil.Date{Year: 2021, Month: time.September, Day: 30},
	}
	assert.True(t, w.Contains(civil.Date{Year: 2021, Month: time.September, Day: 1}))
	assert.True(t, w.Contains(civil.Date{Year: 2021, Month: time.September, Day: 30}))
	assert.False(t, w.Contains(civil.Date{Year: 2021, Month: time.August, Day: 31}))
	assert.False(t, w.Contains(civil.Date{Year: 2021, Month: time.October, Day: 1}))
	assert.True(t, Window{}.Contains(civil.Date{Year: 1999, Month: time.January, Day: 1}))
}

func TestRenderTables(t *testing.T) {
	s := summary(t)
	opts := Options{
		Listing: Window{From: civil.Date{Year: 2021, Month: time.September, Day: 1}},
		Month:   september(),
	}

	tables, err := NewRenderer(locale.Russian()).Render(s, opts)
	require.NoError(t, err)
	require.Len(t, tables, 3)

	records := tables[0]
	assert.Equal(t, TableRecords, records.Name)
	assert.Equal(t, ';', records.Delimiter)
	require.Len(t, records.Rows, 3)
	assert.Equal(t, []string{"01.09.2021", "-100.50", "Расход", "Карта", "Продукты", "магазин"}, records.Rows[0])
	assert.Equal(t, []string{"02.09.2021", "5000.00", "Доход", "Зарплата", "Карта", ""}, records.Rows[2])

	monthly := tables[1]
	assert.Equal(t, TableMonthly, monthly.Name)
	assert.Equal(t, []string{"Дата", "Расход", "Доход", "Перевод", "Траты по категориям"}, monthly.Header)
	require.Len(t, monthly.Rows, 2)
	assert.Equal(t, "Август 2021", monthly.Rows[0][0])
	assert.Equal(t, []string{
		"Сентябрь 2021", "-150.50", "5000.00", "0.00",
		"{Дом=0.00, Продукты=-100.50, Еда=-50.00}",
	}, monthly.Rows[1])

	cats := tables[2]
	assert.Equal(t, TableCategories, cats.Name)
	assert.Equal(t, []string{"Категория", "Расход"}, cats.Header)
	assert.Equal(t, [][]string{
		{"Дом", "0.00"},
		{"Продукты", "-100.50"},
		{"Еда", "-50.00"},
	}, cats.Rows)
}

func TestRenderUnknownMonth(t *testing.T) {
	s := summary(t)

	_, err := NewRenderer(locale.Russian()).Render(s, Options{Month: core.MonthKey{Year: 2020, Month: time.July}})

	var target *core.UnknownMonthError
	assert.ErrorAs(t, err, &target)
}

func TestTableValues(t *testing.T) {
	tbl := Table{Header: []string{"a", "b"}, Rows: [][]string{{"1", "2"}}}

	v := tbl.Values()
	v[0][0] = "changed"

	assert.Equal(t, [][]string{{"changed", "b"}, {"1", "2"}}, v)
	assert.Equal(t, "a", tbl.Header[0])
}
