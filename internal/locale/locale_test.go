package locale

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerstat/internal/core"
)

func TestOperationLabels(t *testing.T) {
	l := Russian()
	assert.Equal(t, "Расход", l.Operation(core.Consumption))
	assert.Equal(t, "Доход", l.Operation(core.Income))
	assert.Equal(t, "Перевод", l.Operation(core.Transfer))
	assert.Equal(t, "unknown", l.Operation(core.Operation(0)))
}

func TestMonthName(t *testing.T) {
	l := Russian()
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"01", "Январь", true},
		{"09", "Сентябрь", true},
		{"12", "Декабрь", true},
		{"00", "", false},
		{"13", "", false},
		{"1", "", false},
		{"ab", "", false},
	}
	for _, tt := range tests {
		got, err := l.MonthName(tt.in)
		if !tt.ok {
			var target *UnknownMonthNumberError
			assert.ErrorAsf(t, err, &target, "%q", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestMonth(t *testing.T) {
	got, err := Russian().Month(core.MonthKey{Year: 2021, Month: time.September})
	require.NoError(t, err)
	assert.Equal(t, "Сентябрь 2021", got)

	_, err = Russian().Month(core.MonthKey{Year: 2021, Month: 13})
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "01.09.2021", FormatDate(civil.Date{Year: 2021, Month: time.September, Day: 1}))
}
