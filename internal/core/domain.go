package core

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Operation is the closed set of transaction kinds.
type Operation uint8

const (
	Consumption Operation = iota + 1
	Income
	Transfer
)

// String implements fmt.Stringer
func (o Operation) String() string {
	switch o {
	case Consumption:
		return "consumption"
	case Income:
		return "income"
	case Transfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// IsValid returns true if the operation is one of the known kinds
func (o Operation) IsValid() bool {
	switch o {
	case Consumption, Income, Transfer:
		return true
	default:
		return false
	}
}

// Operations lists every kind in display order.
func Operations() []Operation {
	return []Operation{Consumption, Income, Transfer}
}

type (
	// RawRow is one untyped row of a ledger export, as handed over by a reader.
	RawRow struct {
		Date              string
		Type              string
		From              string
		To                string
		Tags              []string
		Amount            string
		Currency          string
		SecondaryAmount   string
		SecondaryCurrency string
		Repeat            string
		Note              string
		// Line is the 1-based line of the row in its source, header
		// included; zero when unknown.
		Line int
	}

	// Entry is a classified transaction.
	Entry struct {
		Date        civil.Date
		Operation   Operation
		Source      string
		Destination string
		Amount      decimal.Decimal
		Currency    string
		Tags        []string
		Note        string
	}

	// DailyBucket aggregates all entries of one calendar date.
	DailyBucket struct {
		Date          civil.Date
		Consumption   decimal.Decimal
		Income        decimal.Decimal
		Transfer      decimal.Decimal
		CategorySpend map[string]decimal.Decimal
	}

	// MonthlyBucket aggregates all daily buckets of one calendar month.
	MonthlyBucket struct {
		Month         MonthKey
		Consumption   decimal.Decimal
		Income        decimal.Decimal
		Transfer      decimal.Decimal
		CategorySpend map[string]decimal.Decimal
	}

	// CategoryAmount is one row of a category projection.
	CategoryAmount struct {
		Name   string
		Amount decimal.Decimal
	}

	// MonthKey identifies a calendar month of a specific year.
	MonthKey struct {
		Year  int
		Month time.Month
	}
)

// Normalize returns the entry with the consumption sign convention applied.
// Consumption amounts are stored negative; calling it twice is a no-op.
func (e Entry) Normalize() Entry {
	if e.Operation == Consumption && e.Amount.IsPositive() {
		e.Amount = e.Amount.Neg()
	}
	return e
}

// Total returns the bucket total for the given operation kind.
func (b DailyBucket) Total(op Operation) decimal.Decimal {
	switch op {
	case Consumption:
		return b.Consumption
	case Income:
		return b.Income
	case Transfer:
		return b.Transfer
	default:
		return decimal.Zero
	}
}

// Total returns the bucket total for the given operation kind.
func (b MonthlyBucket) Total(op Operation) decimal.Decimal {
	switch op {
	case Consumption:
		return b.Consumption
	case Income:
		return b.Income
	case Transfer:
		return b.Transfer
	default:
		return decimal.Zero
	}
}

// Vocabulary is the ordered, duplicate free list of spending categories.
type Vocabulary struct {
	names []string
	index map[string]struct{}
}

// NewVocabulary builds a vocabulary preserving the first occurrence order.
// Blank names are skipped.
func NewVocabulary(names ...string) Vocabulary {
	v := Vocabulary{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := v.index[n]; ok {
			continue
		}
		v.index[n] = struct{}{}
		v.names = append(v.names, n)
	}
	return v
}

// DefaultVocabulary returns the Coinkeeper spending categories.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(
		"Комиссии (black hole)",
		"Дом",
		"Продукты",
		"Квартплата/Интернет",
		"Еда",
		"Путешествия",
		"Транспорт",
		"Мобильный",
		"Mining",
		"Charity",
		"Cryptocurrency",
		"Другое",
		"Спорт",
		"Кино/театр",
		"Вещи",
		"Музыка",
		"Развлечения",
		"Медицина",
	)
}

// Names returns a copy of the category names in vocabulary order.
func (v Vocabulary) Names() []string {
	return append([]string(nil), v.names...)
}

// Contains reports whether name is a known category.
func (v Vocabulary) Contains(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Len returns the number of categories.
func (v Vocabulary) Len() int {
	return len(v.names)
}

// zeroSpend returns a fresh category map with every category set to zero.
func (v Vocabulary) zeroSpend() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(v.names))
	for _, n := range v.names {
		out[n] = decimal.Zero
	}
	return out
}
