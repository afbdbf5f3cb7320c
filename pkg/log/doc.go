// Package log provides the structured logging system used across the ktrace
// runtime.
//
// Loggers are constructed explicitly and passed by dependency injection; there
// is no package-level default. Output is line-oriented text or JSON.
//
// Example:
//
//	logger := log.NewLogger(
//		log.WithLevel(log.InfoLevel),
//		log.WithFormatter(&log.TextFormatter{}),
//		log.WithOutput(log.NewConsoleOutput()),
//	)
//	logger.Info("tracer ready", log.Int("capacity", 1<<25), log.Component("trace"))
package log
