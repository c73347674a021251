package log

import "log/slog"

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldSource    = "source"
	FieldSink      = "sink"
	FieldTable     = "table"
	FieldTables    = "tables"
	FieldRows      = "rows"
	FieldEntries   = "entries"
	FieldDays      = "days"
	FieldMonths    = "months"
	FieldMonth     = "month"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldOperation = "operation"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentPipeline = "pipeline"
	ComponentLedger   = "ledger"
	ComponentReport   = "report"
	ComponentStorage  = "storage"
	ComponentSheets   = "sheets"
	ComponentAMQP     = "amqp"
	ComponentBackend  = "backend"
)

// Operations defines standard operation names
const (
	OpRead     = "read"
	OpClassify = "classify"
	OpRender   = "render"
	OpWrite    = "write"
	OpNotify   = "notify"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithRunID adds run ID field
func (f LogFields) WithRunID(runID string) LogFields {
	f[FieldRunID] = runID
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithCounts adds the sizes of a finished pipeline run
func (f LogFields) WithCounts(rows, entries, days, months int) LogFields {
	f[FieldRows] = rows
	f[FieldEntries] = entries
	f[FieldDays] = days
	f[FieldMonths] = months
	return f
}

// WithSink adds the sink name and the number of tables written to it
func (f LogFields) WithSink(sink string, tables int) LogFields {
	f[FieldSink] = sink
	f[FieldTables] = tables
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}

// ParseLevel maps a configured level name to a slog level. Unknown names
// fall back to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// With adds an arbitrary field
func (f LogFields) With(key string, value any) LogFields {
	f[key] = value
	return f
}
