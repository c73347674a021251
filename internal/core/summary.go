package core

import (
	"cloud.google.com/go/civil"
)

// Summary is the complete result of one run over a ledger.
type Summary struct {
	Entries    []Entry
	Daily      map[civil.Date]DailyBucket
	Monthly    map[MonthKey]MonthlyBucket
	Vocabulary Vocabulary
}

// Pipeline chains classification, daily and monthly aggregation.
type Pipeline struct {
	classifier Classifier
	vocab      Vocabulary
}

func NewPipeline(rules Rules, vocab Vocabulary) *Pipeline {
	return &Pipeline{classifier: NewClassifier(rules), vocab: vocab}
}

// Run classifies all rows and aggregates them. Any error aborts the run and
// no partial summary is returned.
func (p *Pipeline) Run(rows []RawRow) (Summary, error) {
	entries, err := p.classifier.ClassifyAll(rows)
	if err != nil {
		return Summary{}, err
	}
	daily, err := AggregateDaily(entries, p.vocab)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Entries:    entries,
		Daily:      daily,
		Monthly:    AggregateMonthly(daily),
		Vocabulary: p.vocab,
	}, nil
}

// Categories projects the given month of the summary onto its vocabulary.
func (s Summary) Categories(key MonthKey) ([]CategoryAmount, error) {
	return ProjectCategories(s.Monthly, key, s.Vocabulary)
}
