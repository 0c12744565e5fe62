// ABOUTME: Structured logger implementation backed by logrus
// ABOUTME: Writes to stdout or to a rotating file through lumberjack

package structured

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string

	// Format is "json" or "text". Defaults to text.
	Format string

	// File, when set, sends output to a rotating log file instead of stdout.
	File string

	// MaxSizeMB, MaxBackups and MaxAgeDays control file rotation.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger implements interfaces.Logger on top of logrus
type Logger struct {
	entry  *logrus.Logger
	closer io.Closer
}

// NewLogger creates a logger from options
func NewLogger(opts Options) *Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(opts.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logger := &Logger{entry: l}

	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 100),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 28),
			Compress:   true,
		}
		l.SetOutput(rotating)
		logger.closer = rotating
	} else {
		l.SetOutput(os.Stdout)
	}

	return logger
}

// NewWithOutput creates a logger writing to w, mainly for tests
func NewWithOutput(w io.Writer, opts Options) *Logger {
	logger := NewLogger(Options{Level: opts.Level, Format: opts.Format})
	logger.entry.SetOutput(w)
	return logger
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Error(msg)
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
