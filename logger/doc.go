// Package logger provides structured logging for ssehub using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("sse")
//	log.Info("broadcast finished", logger.RoundFields("send_text", 12, 0, d))
package logger
