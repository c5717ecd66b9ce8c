package log

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger is the process-wide structured logger. The terminal UI owns the
// screen while a session runs, so play mode sends it to a file.
type Logger struct {
	logger *slog.Logger
	file   *os.File
}

// TimeFormat is the timestamp layout of every log line.
const TimeFormat = "2006/01/02 15:04:05.000000"

var (
	mu           sync.RWMutex
	globalLogger *Logger
)

// init creates the global logger with console output by default
func init() {
	globalLogger = &Logger{logger: slog.New(newHandler(os.Stdout))}
}

func newHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(slog.TimeKey, a.Value.Time().Format(TimeFormat))
			}
			return a
		},
	})
}

// NewLogger creates a logger that appends to the specified file
func NewLogger(filename string) (*Logger, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Logger{logger: slog.New(newHandler(file)), file: file}, nil
}

// SetFileOutput redirects the global logger to the specified file
func SetFileOutput(filename string) error {
	logger, err := NewLogger(filename)
	if err != nil {
		return err
	}
	swap(logger)
	return nil
}

// SetOutput redirects the global logger to w. The caller keeps ownership of w.
func SetOutput(w io.Writer) {
	swap(&Logger{logger: slog.New(newHandler(w))})
}

func swap(next *Logger) {
	mu.Lock()
	prev := globalLogger
	globalLogger = next
	mu.Unlock()
	if prev != nil && prev.file != nil {
		prev.file.Close()
	}
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger.logger
}

func Debug(msg string, args ...any) { current().Debug(msg, args...) }
func Info(msg string, args ...any)  { current().Info(msg, args...) }
func Warn(msg string, args ...any)  { current().Warn(msg, args...) }
func Error(msg string, args ...any) { current().Error(msg, args...) }

// Close closes the log file, if any, and falls back to stdout.
func Close() {
	SetOutput(os.Stdout)
}
