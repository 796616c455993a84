// Package logger provides structured logging for sessionauth using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("auth")
//	log.Info("user registered", logger.Fields(logger.FieldUserID, id))
//
// Secrets (passwords, tokens, signing keys) must never be passed as fields.
package logger
