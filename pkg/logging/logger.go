package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/alanhe1219-web/Pulse-Bodega/pkg/config"
)

// Logger represents a logger instance
type Logger = *logrus.Logger

// Fields represents structured logging fields
type Fields = logrus.Fields

// Level represents a log level
type Level = logrus.Level

// Log levels
const (
	DebugLevel = logrus.DebugLevel
	InfoLevel  = logrus.InfoLevel
	WarnLevel  = logrus.WarnLevel
	ErrorLevel = logrus.ErrorLevel
)

// NewLogger creates a new configured logger instance
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(config.GetLogLevel())
	return logger
}

// NewLoggerWithService creates a logger with a service field
func NewLoggerWithService(serviceName string) *logrus.Logger {
	logger := NewLogger()

	// Add service name to all log entries
	logger = logger.WithField("service", serviceName).Logger

	return logger
}

// WithPipeline returns an entry tagged with a pipeline stage, so one
// render request can be traced across classify/extract/fetch/render.
func WithPipeline(logger Logger, stage, requestID string) *logrus.Entry {
	return logger.WithFields(Fields{
		"stage":      stage,
		"request_id": requestID,
	})
}
