package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout is the day-first layout used by the ledger export (dd.MM.yyyy).
const DateLayout = "02.01.2006"

// ParseDate parses a ledger date into a calendar date.
func ParseDate(s string) (civil.Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, &MalformedDateError{Value: s, Layout: DateLayout, Err: err}
	}
	return civil.DateOf(t), nil
}

// MonthOf returns the month key a date belongs to.
func MonthOf(d civil.Date) MonthKey {
	return MonthKey{Year: d.Year, Month: d.Month}
}

// ParseMonthKey parses a "MM.yyyy" month, e.g. "07.2020".
func ParseMonthKey(s string) (MonthKey, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ".")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 4 {
		return MonthKey{}, &MalformedDateError{Value: s, Layout: "01.2006"}
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return MonthKey{}, &MalformedDateError{Value: s, Layout: "01.2006", Err: err}
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return MonthKey{}, &MalformedDateError{Value: s, Layout: "01.2006", Err: err}
	}
	return MonthKey{Year: year, Month: time.Month(month)}, nil
}

// String renders the key as "MM.yyyy".
func (k MonthKey) String() string {
	return fmt.Sprintf("%02d.%04d", int(k.Month), k.Year)
}

// Before reports whether k is earlier than other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// IsZero reports whether the key is unset.
func (k MonthKey) IsZero() bool {
	return k == MonthKey{}
}

// Latest returns the most recent month present, or false if there is none.
func Latest(months map[MonthKey]MonthlyBucket) (MonthKey, bool) {
	var latest MonthKey
	found := false
	for k := range months {
		if !found || latest.Before(k) {
			latest, found = k, true
		}
	}
	return latest, found
}
