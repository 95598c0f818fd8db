package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEntryID is the standardized structured logging key for catalog entry identifiers.
	FieldEntryID = "entry_id"
	// FieldRunID is the standardized structured logging key for pipeline run identifiers.
	FieldRunID = "run_id"
	// FieldVideoID is the standardized structured logging key for the reference video identifier.
	FieldVideoID = "video_id"
	// FieldEventType is the standardized structured logging key for event classification.
	FieldEventType = "event_type"
	// FieldErrorHint carries an actionable suggestion alongside an error record.
	FieldErrorHint = "error_hint"
)
