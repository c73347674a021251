package core

import (
	"sort"

	"cloud.google.com/go/civil"
)

// AggregateMonthly groups daily buckets by calendar month and sums them.
// Totals and category maps are added with exact decimal arithmetic, so the
// result does not depend on map iteration order.
func AggregateMonthly(days map[civil.Date]DailyBucket) map[MonthKey]MonthlyBucket {
	out := make(map[MonthKey]MonthlyBucket)
	for _, d := range days {
		key := MonthOf(d.Date)
		m, ok := out[key]
		if !ok {
			m = MonthlyBucket{Month: key}
		}
		m.Consumption = m.Consumption.Add(d.Consumption)
		m.Income = m.Income.Add(d.Income)
		m.Transfer = m.Transfer.Add(d.Transfer)
		m.CategorySpend = MergeSpend(m.CategorySpend, d.CategorySpend)
		out[key] = m
	}
	return out
}

// SortedMonths returns the buckets in chronological order.
func SortedMonths(months map[MonthKey]MonthlyBucket) []MonthlyBucket {
	out := make([]MonthlyBucket, 0, len(months))
	for _, m := range months {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}
