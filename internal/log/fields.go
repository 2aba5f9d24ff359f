package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldErrorType = "error_type"
	FieldMonth     = "month"
	FieldExpenseID = "expense_id"
	FieldTitle     = "title"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldDate      = "date"
	FieldPath      = "path"
	FieldBackend   = "backend"
	FieldKey       = "key"
	FieldSize      = "size"

	FieldSchemaVersion = "schema_version"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentBackend = "backend"
	ComponentBackup  = "backup"
	ComponentPrefs   = "prefs"
)

// Operations defines standard operation names
const (
	OpLoad      = "load"
	OpSave      = "save"
	OpSetIncome = "set_income"
	OpCreate    = "create"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpMerge     = "merge"
	OpExport    = "export"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation = "validation_error"
	ErrorTypeStorage    = "storage_error"
	ErrorTypeCorrupt    = "corrupt_document"
	ErrorTypeShape      = "bad_shape"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category
func (f LogFields) WithErrorType(kind string) LogFields {
	f[FieldErrorType] = kind
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(id, title, amount, category, date string) LogFields {
	f[FieldExpenseID] = id
	f[FieldTitle] = title
	f[FieldAmount] = amount
	f[FieldCategory] = category
	f[FieldDate] = date
	return f
}

// WithMonth adds the month key field
func (f LogFields) WithMonth(month string) LogFields {
	f[FieldMonth] = month
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
