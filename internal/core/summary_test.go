package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineRoundTrip(t *testing.T) {
	rows := []RawRow{
		{Date: "01.09.2021", Type: "Расход", From: "Карта", To: "Продукты", Amount: "100.50"},
		{Date: "01.09.2021", Type: "Расход", From: "Карта", To: "Еда", Amount: "50.00"},
		{Date: "02.09.2021", Type: "Доход", From: "Зарплата", To: "Карта", Amount: "5000.00"},
	}

	s, err := NewPipeline(DefaultRules(), DefaultVocabulary()).Run(rows)
	require.NoError(t, err)

	require.Len(t, s.Entries, 3)
	require.Len(t, s.Daily, 2)
	d := s.Daily[day(2021, time.September, 1)]
	assertDecimal(t, "-150.50", d.Consumption)
	assertDecimal(t, "-100.50", d.CategorySpend["Продукты"])
	assertDecimal(t, "-50.00", d.CategorySpend["Еда"])

	require.Len(t, s.Monthly, 1)
	m := s.Monthly[MonthKey{Year: 2021, Month: time.September}]
	assertDecimal(t, "-150.50", m.Consumption)
	assertDecimal(t, "5000.00", m.Income)
	assertDecimal(t, "0", m.Transfer)

	cats, err := s.Categories(MonthKey{Year: 2021, Month: time.September})
	require.NoError(t, err)
	assert.Len(t, cats, DefaultVocabulary().Len())
}

func TestPipelineUnknownOperationAbortsBeforeBuckets(t *testing.T) {
	rows := []RawRow{
		{Date: "01.09.2021", Type: "Расход", From: "Карта", To: "Еда", Amount: "1"},
		{Date: "01.09.2021", Type: "Obscure", From: "Карта", To: "Еда", Amount: "1"},
	}

	s, err := NewPipeline(DefaultRules(), DefaultVocabulary()).Run(rows)

	var target *UnknownOperationError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "Obscure", target.Declared)
	assert.Nil(t, s.Daily)
	assert.Nil(t, s.Monthly)
	assert.Nil(t, s.Entries)
}

func TestPipelineDataConsistencyIsFatal(t *testing.T) {
	rows := []RawRow{
		{Date: "01.09.2021", Type: "Доход", From: "Зарплата", To: "Еда", Amount: "1"},
	}

	s, err := NewPipeline(DefaultRules(), DefaultVocabulary()).Run(rows)

	var target *DataConsistencyError
	require.ErrorAs(t, err, &target)
	assert.Nil(t, s.Monthly)
}
