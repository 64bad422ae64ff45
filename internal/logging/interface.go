package logging

import "jobtrail-utils/internal/logging/types"

// Re-export types so callers only import this package
type LogLevel = types.LogLevel
type LogEntry = types.LogEntry
type LogAdapter = types.LogAdapter
type Logger = types.Logger

const (
	DebugLevel = types.DebugLevel
	InfoLevel  = types.InfoLevel
	WarnLevel  = types.WarnLevel
	ErrorLevel = types.ErrorLevel
	FatalLevel = types.FatalLevel
)

// ParseLogLevel converts a level name to a LogLevel
var ParseLogLevel = types.ParseLogLevel
