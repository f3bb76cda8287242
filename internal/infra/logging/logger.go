// Package logging provides file-based logging for pluribus.
// Entries go to a workspace-wide log (.pluribus/logs/pluribus.log) and,
// when a plurb id is given, to a per-plurb log
// (.pluribus/logs/plurb-<id>.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// Ensure Logger implements domain.Logger.
var _ domain.Logger = (*Logger)(nil)

// Logger writes leveled entries to workspace log files.
// Fields are ordered to minimize memory padding.
type Logger struct {
	globalFile    *os.File
	plurbFiles    map[string]*os.File
	workspaceRoot string
	mu            sync.Mutex
	level         slog.Level
}

// New creates a logger for the workspace. An empty workspaceRoot
// disables logging entirely.
func New(workspaceRoot string, level slog.Level) *Logger {
	return &Logger{
		workspaceRoot: workspaceRoot,
		level:         level,
		plurbFiles:    make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) ensureLogsDir() error {
	return os.MkdirAll(domain.LogsDir(l.workspaceRoot), 0o750)
}

func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}

	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := domain.GlobalLogPath(l.workspaceRoot)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open global log file: %w", err)
	}
	l.globalFile = f
	return f, nil
}

func (l *Logger) ensurePlurbFile(plurbID string) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.plurbFiles[plurbID]; ok {
		return f, nil
	}

	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := domain.PlurbLogPath(l.workspaceRoot, plurbID)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open plurb log file: %w", err)
	}
	l.plurbFiles[plurbID] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, f := range l.plurbFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.plurbFiles, id)
	}
	return lastErr
}

// formatLog renders one entry.
// Format: [2026-03-01 09:32:51] [INFO] [fix-bug-ab12c] [workon] message
func formatLog(t time.Time, level slog.Level, plurbID, category, msg string) string {
	scope := plurbID
	if scope == "" {
		scope = "global"
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes to the global log and, when plurbID is non-empty, to that
// plurb's log as well.
func (l *Logger) log(level slog.Level, plurbID, category, msg string) {
	if l.workspaceRoot == "" {
		return
	}
	if level < l.level {
		return
	}

	entry := formatLog(time.Now(), level, plurbID, category, msg)

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}
	if plurbID != "" {
		if pf, err := l.ensurePlurbFile(plurbID); err == nil {
			_, _ = io.WriteString(pf, entry)
		}
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(plurbID, category, msg string) {
	l.log(slog.LevelDebug, plurbID, category, msg)
}

// Info logs an info message.
func (l *Logger) Info(plurbID, category, msg string) {
	l.log(slog.LevelInfo, plurbID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(plurbID, category, msg string) {
	l.log(slog.LevelWarn, plurbID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(plurbID, category, msg string) {
	l.log(slog.LevelError, plurbID, category, msg)
}
