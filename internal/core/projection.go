package core

import "github.com/shopspring/decimal"

// Project lists the bucket's spending for every vocabulary category, in
// vocabulary order, with zero for categories the month never touched.
func (m MonthlyBucket) Project(vocab Vocabulary) []CategoryAmount {
	out := make([]CategoryAmount, 0, vocab.Len())
	for _, name := range vocab.names {
		amount, ok := m.CategorySpend[name]
		if !ok {
			amount = decimal.Zero
		}
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	return out
}

// ProjectCategories finds the bucket for key and projects it onto vocab.
func ProjectCategories(months map[MonthKey]MonthlyBucket, key MonthKey, vocab Vocabulary) ([]CategoryAmount, error) {
	m, ok := months[key]
	if !ok {
		return nil, &UnknownMonthError{Month: key}
	}
	return m.Project(vocab), nil
}
