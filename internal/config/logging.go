package config

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation bounds the JSON log file. Zero values use lumberjack defaults
// except MaxSizeMB, which defaults to 10.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func (r Rotation) writer(logFile string) *lumberjack.Logger {
	size := r.MaxSizeMB
	if size <= 0 {
		size = 10
	}
	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    size,
		MaxBackups: r.MaxBackups,
		MaxAge:     r.MaxAgeDays,
		Compress:   true,
	}
}

// SetupLogger logs text to stderr and JSON to a rotating logFile. The
// returned func closes the file.
func SetupLogger(logFile string, level slog.Level, rot Rotation) (*slog.Logger, func() error) {
	w := rot.writer(logFile)
	return SetupLoggerWithWriters(os.Stderr, w, level), w.Close
}

// SetupFileLogger logs JSON to logFile only. The TUI owns the terminal,
// so nothing may be written to stderr while it runs.
func SetupFileLogger(logFile string, level slog.Level, rot Rotation) (*slog.Logger, func() error) {
	w := rot.writer(logFile)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), w.Close
}

// SetupLoggerWithWriters fans out to a text handler on stderr and a JSON
// handler on file.
func SetupLoggerWithWriters(stderr, file io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	return slog.New(slogmulti.Fanout(
		slog.NewTextHandler(stderr, opts),
		slog.NewJSONHandler(file, opts),
	))
}
