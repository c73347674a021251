// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from ledger
// exports and rendering them back as fixed point strings.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string into an exact decimal.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and drops
// space, no-break space and narrow no-break space used as thousands
// separators by spreadsheet locales ("1 234,56"). The value
// keeps the sign and every fractional digit of the input; no rounding happens.
// Returns a *MalformedAmountError for empty or non numeric input.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount(" 100,5 ") -> 100.5, nil
//	ParseAmount("1\u00a0234,56") -> 1234.56, nil
//	ParseAmount("abc") -> 0, *MalformedAmountError
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, &MalformedAmountError{Value: raw}
	}
	s = groupSeparators.Replace(s)
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &MalformedAmountError{Value: raw, Err: err}
	}
	return d, nil
}

var groupSeparators = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "")

// FormatAmount renders an amount with two fractional digits, e.g. "-150.50".
// Amounts with more significant fractional digits are rendered exactly.
func FormatAmount(d decimal.Decimal) string {
	if !d.Equal(d.Round(2)) {
		return d.String()
	}
	return d.StringFixed(2)
}

// MergeSpend returns a new map holding the per-key sum of a and b.
// A key missing from one side counts as zero; neither input is modified.
func MergeSpend(a, b map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(a))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = out[k].Add(v)
	}
	return out
}
