package amqp

import (
	"encoding/json"
	"time"
)

// ReportReadyMessage announces a finished report run. Consumers fetch the
// tables from the sinks; the message only carries run metadata.
type ReportReadyMessage struct {
	RunID     string    `json:"run_id"`
	Entries   int       `json:"entries"`
	Days      int       `json:"days"`
	Months    []string  `json:"months"`
	Tables    []string  `json:"tables"`
	Timestamp time.Time `json:"timestamp"`
}

// NewReportReadyMessage creates a message stamped with the current time
func NewReportReadyMessage(runID string, entries, days int, months, tables []string) *ReportReadyMessage {
	return &ReportReadyMessage{
		RunID:     runID,
		Entries:   entries,
		Days:      days,
		Months:    months,
		Tables:    tables,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportReadyMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
