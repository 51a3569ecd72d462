// Package logger provides structured logging for runkit packages
// using zerolog.
//
// It supports JSON and console output formats, log level configuration,
// component-scoped loggers with structured fields, and ANSI color
// helpers for terminal diagnostics.
//
// # Usage
//
//	log := logger.NewDefault("my-tool").WithComponent("spawner")
//	log.Info("child started", logger.Fields(logger.FieldPID, 1234))
package logger
