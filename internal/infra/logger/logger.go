package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
)

// Init initializes the logger.
// An empty logFilePath logs to stdout and "stderr" logs to stderr; any other
// value sends entries to that file only.
func Init(debugEnabled bool, logFilePath string) error {
	var err error

	level := zapcore.InfoLevel
	if debugEnabled {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	outputs := []string{"stdout"}
	errOutputs := []string{"stderr"}
	switch logFilePath {
	case "":
	case "stderr":
		outputs = []string{"stderr"}
	default:
		outputs = []string{logFilePath}
		errOutputs = []string{logFilePath + ".err"}
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputs,
		ErrorOutputPaths: errOutputs,
	}

	logger, err = config.Build()
	if err != nil {
		return err
	}

	return nil
}

// Set replaces the package logger. Tests use it with zaptest/observer cores.
func Set(l *zap.Logger) {
	logger = l
}

// Close flushes any buffered log entries
func Close() {
	if logger != nil {
		_ = logger.Sync()
	}
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Debug(msg, fields...)
	}
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Info(msg, fields...)
	}
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Warn(msg, fields...)
	}
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Error(msg, fields...)
	}
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Fatal(msg, fields...)
	}
}

// Err creates an error field
func Err(err error) zap.Field {
	return zap.Error(err)
}

// String creates a string field (safe for user input)
func String(key string, value string) zap.Field {
	return zap.String(key, value)
}

// Bool creates a bool field
func Bool(key string, value bool) zap.Field {
	return zap.Bool(key, value)
}

// Int creates an int field
func Int(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// Duration creates a duration field
func Duration(key string, value time.Duration) zap.Field {
	return zap.Duration(key, value)
}
