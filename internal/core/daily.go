package core

import (
	"sort"

	"cloud.google.com/go/civil"
)

// AggregateDaily groups entries by date and reduces every group into a
// DailyBucket. Grouping is by date value, so input order does not matter.
//
// Every vocabulary category is present in each bucket's CategorySpend. An
// entry whose destination is a category but whose operation is not
// consumption aborts the aggregation with a *DataConsistencyError.
func AggregateDaily(entries []Entry, vocab Vocabulary) (map[civil.Date]DailyBucket, error) {
	groups := make(map[civil.Date][]Entry)
	for _, e := range entries {
		groups[e.Date] = append(groups[e.Date], e)
	}

	dates := make([]civil.Date, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	// Sorted so the first inconsistency reported is the earliest one.
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make(map[civil.Date]DailyBucket, len(groups))
	for _, d := range dates {
		b, err := reduceDay(d, groups[d], vocab)
		if err != nil {
			return nil, err
		}
		out[d] = b
	}
	return out, nil
}

func reduceDay(date civil.Date, entries []Entry, vocab Vocabulary) (DailyBucket, error) {
	b := DailyBucket{
		Date:          date,
		CategorySpend: vocab.zeroSpend(),
	}
	for _, e := range entries {
		switch e.Operation {
		case Consumption:
			b.Consumption = b.Consumption.Add(e.Amount)
		case Income:
			b.Income = b.Income.Add(e.Amount)
		case Transfer:
			b.Transfer = b.Transfer.Add(e.Amount)
		}

		if !vocab.Contains(e.Destination) {
			continue
		}
		if e.Operation != Consumption {
			return DailyBucket{}, &DataConsistencyError{Entry: e, Category: e.Destination}
		}
		b.CategorySpend[e.Destination] = b.CategorySpend[e.Destination].Add(e.Amount)
	}
	return b, nil
}

// SortedDays returns the buckets ordered by date.
func SortedDays(days map[civil.Date]DailyBucket) []DailyBucket {
	out := make([]DailyBucket, 0, len(days))
	for _, b := range days {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
