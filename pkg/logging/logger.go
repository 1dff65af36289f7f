package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kc2g-lora/lora-phy/pkg/config"
	"gopkg.in/lumberjack.v2"
)

// LogLevel represents logging levels
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns string representation of log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string log level
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides structured logging for the lora-tx/lora-rx/lora-vectors
// tools. Call sites tag each entry with a source string — the command
// name — rather than the subsystem names (radio/web/daemon) a station
// controller would use.
type Logger struct {
	level         LogLevel
	fileLogger    *log.Logger
	consoleLogger *log.Logger
	structured    bool
	rotatingFile  *lumberjack.Logger
}

// NewLogger creates a new logger from configuration
func NewLogger(cfg *config.Config) (*Logger, error) {
	logger := &Logger{
		level:      ParseLogLevel(cfg.Logging.Level),
		structured: cfg.Logging.Structured,
	}

	// Setup file logging with rotation (only if a file path is specified).
	// IQ-capture runs can log one line per symbol at debug level, so the
	// rotation knobs come from config rather than a fixed default here.
	if cfg.Logging.File != "" {
		logDir := filepath.Dir(cfg.Logging.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		logger.rotatingFile = &lumberjack.Logger{
			Filename:   cfg.Logging.File,
			MaxSize:    cfg.Logging.MaxSize,    // megabytes
			MaxBackups: cfg.Logging.MaxBackups, // number of backups
			MaxAge:     cfg.Logging.MaxAge,     // days
			Compress:   cfg.Logging.Compress,   // compress old files
		}

		logger.fileLogger = log.New(logger.rotatingFile, "", 0)
	}

	// Setup console logging (enabled by config or when no file logging)
	if cfg.Logging.Console || logger.fileLogger == nil {
		logger.consoleLogger = log.New(os.Stdout, "", 0)
	}

	return logger, nil
}

// Close closes the logger and any open files
func (l *Logger) Close() error {
	if l.rotatingFile != nil {
		return l.rotatingFile.Close()
	}
	return nil
}

// shouldLog checks if a message should be logged at the given level
func (l *Logger) shouldLog(level LogLevel) bool {
	return level >= l.level
}

// logEntry is the structured-mode wire shape, marshaled with
// encoding/json rather than hand-built so a message or field value
// containing a quote or newline can't corrupt the record.
type logEntry struct {
	Time    string                 `json:"time"`
	Level   string                 `json:"level"`
	Source  string                 `json:"source"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// formatMessage formats a log message
func (l *Logger) formatMessage(level LogLevel, source, message string, fields map[string]interface{}) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")

	if l.structured {
		entry := logEntry{Time: timestamp, Level: level.String(), Source: source, Message: message, Fields: fields}
		buf, err := json.Marshal(entry)
		if err != nil {
			return fmt.Sprintf(`{"time":%q,"level":"ERROR","source":"logging","message":"failed to marshal log entry: %v"}`, timestamp, err)
		}
		return string(buf)
	}

	fieldsStr := ""
	if len(fields) > 0 {
		var parts []string
		for k, v := range fields {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
		fieldsStr = fmt.Sprintf(" [%s]", strings.Join(parts, " "))
	}
	return fmt.Sprintf("%s [%s] %s: %s%s",
		timestamp, level.String(), source, message, fieldsStr)
}

// log writes a log message
func (l *Logger) log(level LogLevel, source, message string, fields map[string]interface{}) {
	if !l.shouldLog(level) {
		return
	}

	formatted := l.formatMessage(level, source, message, fields)

	if l.fileLogger != nil {
		l.fileLogger.Println(formatted)
	}

	if l.consoleLogger != nil {
		l.consoleLogger.Println(formatted)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(source, message string, fields ...map[string]interface{}) {
	var f map[string]interface{}
	if len(fields) > 0 {
		f = fields[0]
	}
	l.log(LevelDebug, source, message, f)
}

// Info logs an info message
func (l *Logger) Info(source, message string, fields ...map[string]interface{}) {
	var f map[string]interface{}
	if len(fields) > 0 {
		f = fields[0]
	}
	l.log(LevelInfo, source, message, f)
}

// Warn logs a warning message
func (l *Logger) Warn(source, message string, fields ...map[string]interface{}) {
	var f map[string]interface{}
	if len(fields) > 0 {
		f = fields[0]
	}
	l.log(LevelWarn, source, message, f)
}

// Error logs an error message
func (l *Logger) Error(source, message string, fields ...map[string]interface{}) {
	var f map[string]interface{}
	if len(fields) > 0 {
		f = fields[0]
	}
	l.log(LevelError, source, message, f)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(source, format string, args ...interface{}) {
	l.Debug(source, fmt.Sprintf(format, args...))
}

// Infof logs a formatted info message
func (l *Logger) Infof(source, format string, args ...interface{}) {
	l.Info(source, fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(source, format string, args ...interface{}) {
	l.Warn(source, fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(source, format string, args ...interface{}) {
	l.Error(source, fmt.Sprintf(format, args...))
}

// WithFields creates a logger with predefined fields
func (l *Logger) WithFields(fields map[string]interface{}) *FieldLogger {
	return &FieldLogger{
		logger: l,
		fields: fields,
	}
}

// WithChannel returns a FieldLogger pre-tagged with the channel parameters
// every run of lora-tx/lora-rx/lora-vectors is keyed by, so a CFO/TO
// estimate or a batch-complete line carries sf/bw/osr without the caller
// re-threading them through every log call.
func (l *Logger) WithChannel(sf, bwHz, osr int) *FieldLogger {
	return l.WithFields(map[string]interface{}{
		"sf":    sf,
		"bw_hz": bwHz,
		"osr":   osr,
	})
}

// FieldLogger is a logger with predefined fields
type FieldLogger struct {
	logger *Logger
	fields map[string]interface{}
}

// Debug logs a debug message with predefined fields
func (fl *FieldLogger) Debug(source, message string) {
	fl.logger.log(LevelDebug, source, message, fl.fields)
}

// Info logs an info message with predefined fields
func (fl *FieldLogger) Info(source, message string) {
	fl.logger.log(LevelInfo, source, message, fl.fields)
}

// Warn logs a warning message with predefined fields
func (fl *FieldLogger) Warn(source, message string) {
	fl.logger.log(LevelWarn, source, message, fl.fields)
}

// Error logs an error message with predefined fields
func (fl *FieldLogger) Error(source, message string) {
	fl.logger.log(LevelError, source, message, fl.fields)
}

// Debugf logs a formatted debug message with predefined fields
func (fl *FieldLogger) Debugf(source, format string, args ...interface{}) {
	fl.logger.log(LevelDebug, source, fmt.Sprintf(format, args...), fl.fields)
}

// Infof logs a formatted info message with predefined fields
func (fl *FieldLogger) Infof(source, format string, args ...interface{}) {
	fl.logger.log(LevelInfo, source, fmt.Sprintf(format, args...), fl.fields)
}

// Warnf logs a formatted warning message with predefined fields
func (fl *FieldLogger) Warnf(source, format string, args ...interface{}) {
	fl.logger.log(LevelWarn, source, fmt.Sprintf(format, args...), fl.fields)
}

// Errorf logs a formatted error message with predefined fields
func (fl *FieldLogger) Errorf(source, format string, args ...interface{}) {
	fl.logger.log(LevelError, source, fmt.Sprintf(format, args...), fl.fields)
}

// Global logger instance
var globalLogger *Logger

// InitGlobalLogger initializes the global logger
func InitGlobalLogger(cfg *config.Config) error {
	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	globalLogger = logger
	return nil
}

// GetGlobalLogger returns the global logger
func GetGlobalLogger() *Logger {
	if globalLogger == nil {
		// Fallback to console logging if not initialized
		globalLogger = &Logger{
			level:         LevelInfo,
			consoleLogger: log.New(os.Stdout, "", 0),
		}
	}
	return globalLogger
}

// CloseGlobalLogger closes the global logger
func CloseGlobalLogger() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}

// Convenience functions for global logger
func Debug(source, message string, fields ...map[string]interface{}) {
	GetGlobalLogger().Debug(source, message, fields...)
}

func Info(source, message string, fields ...map[string]interface{}) {
	GetGlobalLogger().Info(source, message, fields...)
}

func Warn(source, message string, fields ...map[string]interface{}) {
	GetGlobalLogger().Warn(source, message, fields...)
}

func Error(source, message string, fields ...map[string]interface{}) {
	GetGlobalLogger().Error(source, message, fields...)
}

func Debugf(source, format string, args ...interface{}) {
	GetGlobalLogger().Debugf(source, format, args...)
}

func Infof(source, format string, args ...interface{}) {
	GetGlobalLogger().Infof(source, format, args...)
}

func Warnf(source, format string, args ...interface{}) {
	GetGlobalLogger().Warnf(source, format, args...)
}

func Errorf(source, format string, args ...interface{}) {
	GetGlobalLogger().Errorf(source, format, args...)
}

// WithChannel tags the global logger's subsequent entries with sf/bw/osr;
// see Logger.WithChannel.
func WithChannel(sf, bwHz, osr int) *FieldLogger {
	return GetGlobalLogger().WithChannel(sf, bwHz, osr)
}
