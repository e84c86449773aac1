// Package log is the structured logger of the trip planner. Every domain
// event goes through a typed helper so entries carry a stable "type" field.
package log

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/config"
)

// ServiceName is attached to every entry
const ServiceName = "japan-trip-planner"

// Logger wraps logrus.Logger with the domain event helpers
type Logger struct {
	*logrus.Logger
	config *config.LoggingConfig
}

// Fields represents a map of fields for structured logging
type Fields map[string]interface{}

// New creates a logger from the logging configuration.
func New(cfg *config.LoggingConfig) (*Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	output, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(formatter(cfg.Format))
	logger.SetOutput(output)
	logger.AddHook(serviceHook{})

	return &Logger{Logger: logger, config: cfg}, nil
}

// NewNop returns a logger that discards everything, for tests and tools.
func NewNop() *Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Logger{Logger: logger, config: &config.LoggingConfig{Level: "panic"}}
}

func formatter(format string) logrus.Formatter {
	if format == "text" {
		return &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		}
	}
	return &logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	}
}

// openOutput resolves stdout, file (rotated by lumberjack) or both.
func openOutput(cfg *config.LoggingConfig) (io.Writer, error) {
	if cfg.Output != "file" && cfg.Output != "both" {
		return os.Stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, err
	}
	rotated := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	if cfg.Output == "both" {
		return io.MultiWriter(os.Stdout, rotated), nil
	}
	return rotated, nil
}

type serviceHook struct{}

func (serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (serviceHook) Fire(e *logrus.Entry) error {
	if _, ok := e.Data["service"]; !ok {
		e.Data["service"] = ServiceName
	}
	return nil
}

// WithFields adds fields to log entry
func (l *Logger) WithFields(fields Fields) *logrus.Entry {
	return l.Logger.WithFields(logrus.Fields(fields))
}

// WithField adds a single field to log entry
func (l *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return l.Logger.WithField(key, value)
}

// WithError adds an error field to log entry
func (l *Logger) WithError(err error) *logrus.Entry {
	return l.Logger.WithError(err)
}

// event builds an entry of the given type. details never override the
// fixed fields.
func (l *Logger) event(kind string, fixed Fields, details map[string]interface{}) *logrus.Entry {
	fields := make(logrus.Fields, len(fixed)+len(details)+1)
	for k, v := range details {
		fields[k] = v
	}
	for k, v := range fixed {
		fields[k] = v
	}
	fields["type"] = kind
	return l.Logger.WithFields(fields)
}

// LogRequest records a served HTTP request; the level follows the status.
func (l *Logger) LogRequest(method, path, userAgent, clientIP, userID string, statusCode int, duration int64) {
	entry := l.event("request", Fields{
		"method":      method,
		"path":        path,
		"user_agent":  userAgent,
		"client_ip":   clientIP,
		"user_id":     userID,
		"status_code": statusCode,
		"duration_ms": duration,
	}, nil)

	switch {
	case statusCode >= 500:
		entry.Error("HTTP request")
	case statusCode >= 400:
		entry.Warn("HTTP request")
	default:
		entry.Info("HTTP request")
	}
}

// LogSecurity records rejected or suspicious requests
func (l *Logger) LogSecurity(event string, userID string, ip string, details map[string]interface{}) {
	l.event("security", Fields{
		"event":   event,
		"user_id": userID,
		"ip":      ip,
	}, details).Warn("Security event")
}

func (l *Logger) LogSystem(component string, action string, success bool, details map[string]interface{}) {
	entry := l.event("system", Fields{
		"component": component,
		"action":    action,
		"success":   success,
	}, details)

	if !success {
		entry.Error("System event failed")
		return
	}
	entry.Info("System event")
}

// LogPerformance flags slow operations; anything over 5s is an error.
func (l *Logger) LogPerformance(operation string, duration int64, details map[string]interface{}) {
	entry := l.event("performance", Fields{
		"operation":   operation,
		"duration_ms": duration,
	}, details)

	switch {
	case duration > 5000:
		entry.Error("Slow operation detected")
	case duration > 1000:
		entry.Warn("Operation took longer than expected")
	default:
		entry.Debug("Operation completed")
	}
}

// LogItinerary records a generation or an edit of an itinerary snapshot
func (l *Logger) LogItinerary(itineraryID string, action string, days int, activities int, cost float64) {
	l.event("itinerary", Fields{
		"itinerary_id": itineraryID,
		"action":       action,
		"days":         days,
		"activities":   activities,
		"total_cost":   cost,
	}, nil).Info("Itinerary event")
}

// LogStore records a storage backend call
func (l *Logger) LogStore(backend string, operation string, table string, duration int64, err error) {
	entry := l.event("store", Fields{
		"backend":     backend,
		"operation":   operation,
		"table":       table,
		"duration_ms": duration,
	}, nil)

	if err != nil {
		entry.WithError(err).Error("Store operation failed")
		return
	}
	entry.Debug("Store operation")
}

// LogCache records cache hits, misses and failures
func (l *Logger) LogCache(operation string, key string, hit bool, err error) {
	entry := l.event("cache", Fields{
		"operation": operation,
		"key":       key,
		"hit":       hit,
	}, nil)

	if err != nil {
		entry.WithError(err).Warn("Cache operation failed")
		return
	}
	entry.Debug("Cache operation")
}

// LogJob records a scheduled job run
func (l *Logger) LogJob(job string, success bool, duration int64, details map[string]interface{}) {
	entry := l.event("job", Fields{
		"job":         job,
		"success":     success,
		"duration_ms": duration,
	}, details)

	if !success {
		entry.Error("Job failed")
		return
	}
	entry.Info("Job completed")
}

var defaultLogger *Logger

// Init installs the process wide logger used by main.
func Init(cfg *config.LoggingConfig) error {
	logger, err := New(cfg)
	if err != nil {
		return err
	}
	defaultLogger = logger
	return nil
}

// GetLogger returns the process wide logger, or a discarding one before Init.
func GetLogger() *Logger {
	if defaultLogger == nil {
		return NewNop()
	}
	return defaultLogger
}
