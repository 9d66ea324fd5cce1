// Package logger provides structured logging for fnkit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. WithContext adds the run
// id stored by ContextWithRunID and the trace and span ids of the active
// OpenTelemetry span.
//
// # Configuration
//
//	logger:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("stats")
//	log.Info("pipeline finished", logger.Fields("count", n))
package logger
