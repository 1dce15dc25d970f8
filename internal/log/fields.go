package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldErrorType     = "error_type"
	FieldOperation     = "operation"
	FieldKey           = "key"
	FieldRecordID      = "record_id"
	FieldRecordKind    = "record_kind"
	FieldAmount        = "amount"
	FieldCategory      = "category"
	FieldSource        = "source"
	FieldDate          = "date"
	FieldMonth         = "month"
	FieldStartDate     = "start_date"
	FieldEndDate       = "end_date"
	FieldRemainingDays = "remaining_days"
	FieldProgress      = "progress_pct"
	FieldTarget        = "target"
	FieldSaved         = "saved"
	FieldDayStamp      = "day_stamp"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentCLI      = "cli"
	ComponentTracker  = "tracker"
	ComponentStorage  = "storage"
	ComponentBackend  = "backend"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentCache    = "cache"
	ComponentTimeline = "timeline"
	ComponentLedger   = "ledger"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpSave     = "save"
	OpCreate   = "create"
	OpDelete   = "delete"
	OpList     = "list"
	OpReset    = "reset"
	OpImport   = "import"
	OpExport   = "export"
	OpRefresh  = "refresh"
	OpMigrate  = "migrate"
	OpPublish  = "publish"
	OpValidate = "validate"
	OpShutdown = "shutdown"
	OpUpdate   = "update"
	OpStartup  = "startup"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeStorage       = "storage_error"
	ErrorTypeCorruption    = "corruption_error"
	ErrorTypeNetwork       = "network_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeInternal      = "internal_error"
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

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds error type field
func (f LogFields) WithErrorType(errorType string) LogFields {
	f[FieldErrorType] = errorType
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithKey adds storage key field
func (f LogFields) WithKey(key string) LogFields {
	f[FieldKey] = key
	return f
}

// WithRecord adds record-related fields
func (f LogFields) WithRecord(kind, id string, amount int64, date string) LogFields {
	f[FieldRecordKind] = kind
	f[FieldRecordID] = id
	f[FieldAmount] = amount
	f[FieldDate] = date
	return f
}

// WithTimeline adds timeline fields
func (f LogFields) WithTimeline(start, end string, remainingDays int) LogFields {
	f[FieldStartDate] = start
	f[FieldEndDate] = end
	f[FieldRemainingDays] = remainingDays
	return f
}

// WithProgress adds goal progress fields
func (f LogFields) WithProgress(saved, target int64, pct float64) LogFields {
	f[FieldSaved] = saved
	f[FieldTarget] = target
	f[FieldProgress] = pct
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
