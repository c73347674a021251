package core

import (
	"fmt"
	"strings"
)

// Rules holds the classification tables: sources that always produce income
// and the declared type to operation mapping.
type Rules struct {
	incomeSources map[string]struct{}
	declaredTypes map[string]Operation
}

// NewRules builds classification rules. Declared types are matched exactly.
func NewRules(incomeSources []string, declaredTypes map[string]Operation) Rules {
	r := Rules{
		incomeSources: make(map[string]struct{}, len(incomeSources)),
		declaredTypes: make(map[string]Operation, len(declaredTypes)),
	}
	for _, s := range incomeSources {
		if s = strings.TrimSpace(s); s != "" {
			r.incomeSources[s] = struct{}{}
		}
	}
	for k, op := range declaredTypes {
		r.declaredTypes[k] = op
	}
	return r
}

// DefaultIncomeSources are Coinkeeper accounts that only ever receive income.
func DefaultIncomeSources() []string {
	return []string{"ALM", "ФТИ", "Вклад", "Другое", "Cashback", "Mining", "Биржа"}
}

// DefaultDeclaredTypes maps the Coinkeeper "Тип" column to operations.
func DefaultDeclaredTypes() map[string]Operation {
	return map[string]Operation{
		"Расход":  Consumption,
		"Доход":   Income,
		"Перевод": Transfer,
	}
}

// DefaultRules returns the rules for a Coinkeeper export.
func DefaultRules() Rules {
	return NewRules(DefaultIncomeSources(), DefaultDeclaredTypes())
}

// WithIncomeSources returns a copy of the rules using a different income set.
func (r Rules) WithIncomeSources(sources []string) Rules {
	return NewRules(sources, r.declaredTypes)
}

// Resolve determines the operation of a transaction. The always-income
// override is checked before the declared type.
func (r Rules) Resolve(source, declared string) (Operation, error) {
	if _, ok := r.incomeSources[source]; ok {
		return Income, nil
	}
	if op, ok := r.declaredTypes[declared]; ok {
		return op, nil
	}
	return 0, &UnknownOperationError{Declared: declared, Source: source}
}

// Classifier turns raw ledger rows into entries.
type Classifier struct {
	rules Rules
}

func NewClassifier(rules Rules) Classifier {
	return Classifier{rules: rules}
}

// Classify converts one row. It has no side effects.
func (c Classifier) Classify(row RawRow) (Entry, error) {
	date, err := ParseDate(row.Date)
	if err != nil {
		return Entry{}, err
	}
	op, err := c.rules.Resolve(row.From, row.Type)
	if err != nil {
		return Entry{}, err
	}
	amount, err := ParseAmount(row.Amount)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		Date:        date,
		Operation:   op,
		Source:      row.From,
		Destination: row.To,
		Amount:      amount,
		Currency:    row.Currency,
		Tags:        append([]string(nil), row.Tags...),
		Note:        row.Note,
	}
	return e.Normalize(), nil
}

// ClassifyAll converts every row, stopping at the first failure. The error
// wraps the classification error and names the source line of the row, or
// its 1-based position in rows when the line is unknown.
func (c Classifier) ClassifyAll(rows []RawRow) ([]Entry, error) {
	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		e, err := c.Classify(row)
		if err != nil {
			if row.Line > 0 {
				return nil, fmt.Errorf("line %d: %w", row.Line, err)
			}
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
