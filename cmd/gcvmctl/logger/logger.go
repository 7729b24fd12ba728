// Package logger holds the process-wide slog logger used by gcvmctl.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the active logger. It discards everything until Init enables it.
var L = discard()

// file is the open --log-dir target, nil when logging to a writer.
var file *os.File

const (
	logPrefix     = "gcvmctl-"
	logSuffix     = ".log"
	dateLayout    = "2006-01-02"
	retentionDays = 30
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // false discards all records
	LogDir  string     // JSON files, one per day; empty means text to Stderr
	Level   slog.Level // zero means LevelInfo
	Stderr  io.Writer  // nil means os.Stderr
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Init replaces L according to opts, closing any log file a previous Init
// opened. With a LogDir, records append to gcvmctl-YYYY-MM-DD.log and files
// past the retention window are pruned.
func Init(opts Options) error {
	if err := Close(); err != nil {
		return err
	}
	if !opts.Enabled {
		return nil
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.LogDir == "" {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		L = slog.New(slog.NewTextHandler(w, handlerOpts))
		return nil
	}

	if err := os.MkdirAll(opts.LogDir, 0755); err != nil {
		return err
	}
	now := time.Now()
	cleanOldLogs(opts.LogDir, now)

	name := filepath.Join(opts.LogDir, logPrefix+now.Format(dateLayout)+logSuffix)
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	file = f
	L = slog.New(slog.NewJSONHandler(f, handlerOpts))
	return nil
}

// Close flushes and closes the log file, if any, and resets L to discard.
// It is safe to call more than once.
func Close() error {
	L = discard()
	if file == nil {
		return nil
	}
	f := file
	file = nil
	return errors.Join(f.Sync(), f.Close())
}

// cleanOldLogs deletes gcvmctl log files dated before the retention window.
// Failures are ignored; a stale file only costs disk space.
func cleanOldLogs(logDir string, now time.Time) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}
	cutoff := now.AddDate(0, 0, -retentionDays)

	for _, entry := range entries {
		name := entry.Name()
		date, ok := strings.CutPrefix(name, logPrefix)
		if !ok {
			continue
		}
		date, ok = strings.CutSuffix(date, logSuffix)
		if !ok {
			continue
		}
		day, err := time.Parse(dateLayout, date)
		if err != nil || !day.Before(cutoff) {
			continue
		}
		_ = os.Remove(filepath.Join(logDir, name))
	}
}

// Debug logs at LevelDebug.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at LevelInfo.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at LevelWarn.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at LevelError.
func Error(msg string, args ...any) { L.Error(msg, args...) }
