package logger

// Standard field keys for pipeline log lines.
const (
	FieldComponent  = "component"
	FieldRunID      = "run_id"
	FieldStepID     = "step_id"
	FieldInstanceID = "instance_id"
	FieldProcessor  = "processor"
	FieldLink       = "link"
	FieldRecordID   = "record_id"
	FieldIteration  = "iteration"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
)

// Fields builds a field map from alternating key-value pairs. Keys that are
// not strings are skipped.
//
//	logger.Info("output published", logger.Fields(logger.FieldStepID, "blur"))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}
