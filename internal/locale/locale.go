// Package locale renders operation kinds, months and dates for report tables.
package locale

import (
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"

	"ledgerstat/internal/core"
)

// UnknownMonthNumberError is returned for a month label outside 01-12.
type UnknownMonthNumberError struct {
	Number string
}

func (e *UnknownMonthNumberError) Error() string {
	return fmt.Sprintf("unknown month number: %q", e.Number)
}

// Labels maps abstract keys to display strings.
type Labels struct {
	operations map[core.Operation]string
	months     [12]string
}

// Russian returns the labels used by Coinkeeper exports.
func Russian() Labels {
	return Labels{
		operations: map[core.Operation]string{
			core.Consumption: "Расход",
			core.Income:      "Доход",
			core.Transfer:    "Перевод",
		},
		months: [12]string{
			"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
			"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
		},
	}
}

// Operation returns the display label of op, or op.String() if none is set.
func (l Labels) Operation(op core.Operation) string {
	if s, ok := l.operations[op]; ok {
		return s
	}
	return op.String()
}

// MonthName resolves a two digit month number ("01".."12") to its name.
func (l Labels) MonthName(number string) (string, error) {
	if len(number) != 2 {
		return "", &UnknownMonthNumberError{Number: number}
	}
	n, err := strconv.Atoi(number)
	if err != nil || n < 1 || n > 12 {
		return "", &UnknownMonthNumberError{Number: number}
	}
	return l.months[n-1], nil
}

// Month renders a month key as "<name> <year>", e.g. "Сентябрь 2021".
func (l Labels) Month(key core.MonthKey) (string, error) {
	name, err := l.MonthName(fmt.Sprintf("%02d", int(key.Month)))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %d", name, key.Year), nil
}

// FormatDate renders a date in the ledger layout (dd.MM.yyyy).
func FormatDate(d civil.Date) string {
	return d.In(time.UTC).Format(core.DateLayout)
}
