package logging

// Standardized field names for structured logging.
const (
	FieldFile           = "file_path"
	FieldSource         = "source"
	FieldBackend        = "backend"
	FieldTransactionID  = "transaction_id"
	FieldAccountID      = "account_id"
	FieldLoanID         = "loan_id"
	FieldCategory       = "category"
	FieldGranularity    = "granularity"
	FieldPeriod         = "period"
	FieldPeriodStart    = "period_start"
	FieldPeriodEnd      = "period_end"
	FieldGroupBy        = "group_by"
	FieldFeeRule        = "fee_rule"
	FieldReason         = "reason"
	FieldOperation      = "operation"
	FieldError          = "error"
	FieldDuration       = "duration_ms"
	FieldCount          = "count"
	FieldMalformedCount = "malformed_count"
	FieldFormat         = "format"
)
