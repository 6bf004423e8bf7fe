package loggers

const (
	FieldApp       = "app"
	FieldComponent = "component"
	FieldRunID     = "run_id"

	FieldDuration   = "duration"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldQueueEntry   = "queue_entry"
	FieldSkippedLines = "skipped_lines"
	FieldSite         = "site"
	FieldProbe        = "probe"
	FieldRecordCount  = "record_count"
	FieldRecordID     = "record_id"
	FieldTransport    = "transport"
)
