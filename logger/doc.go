// Package logger provides structured logging for the pipeline toolkit
// using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
// Pipeline code tags log lines with run, step, and instance identifiers
// via the Field constants.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("runner")
//	log.Info("step completed", logger.Fields(logger.FieldStepID, "blur"))
package logger
