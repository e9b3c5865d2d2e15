package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide structured logger. It is usable before
// InitLogger runs so tests and tools never hit a nil logger.
var Logger = logrus.New()

// LoggerOptions controls how InitLogger configures Logger.
type LoggerOptions struct {
	Level  string
	Format string
	File   string
}

// InitLogger initializes the logger
func InitLogger(opts LoggerOptions) error {
	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "text":
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	default:
		Logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	}

	var out io.Writer = os.Stdout
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %v", err)
		}
		file, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %v", err)
		}
		out = io.MultiWriter(os.Stdout, file)
	}
	Logger.SetOutput(out)

	return nil
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	Logger.Infof(format, v...)
}

// LogWarn logs a warning
func LogWarn(format string, v ...interface{}) {
	Logger.Warnf(format, v...)
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	Logger.Errorf(format, v...)
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	Logger.Debugf(format, v...)
}

// LogEvent logs a domain event with structured fields. scripts/analyze_logs
// keys off the "event" field.
func LogEvent(event string, fields logrus.Fields) {
	entry := Logger.WithField("event", event)
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Info(event)
}

// LogRequest logs HTTP request details
func LogRequest(method, path, ip, requestID string, status int, duration time.Duration) {
	Logger.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"ip":         ip,
		"request_id": requestID,
		"status":     status,
		"duration":   duration.String(),
	}).Info("request")
}

// LogErrorWithStack logs an error with stack trace
func LogErrorWithStack(err error, stack []byte) {
	Logger.WithField("stack", string(stack)).Errorf("Error: %v", err)
}
