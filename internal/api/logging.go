package api

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// LogFileName is written next to the database; the TUI owns the terminal
const LogFileName = "pawsome.log"

// NewFileLogger creates a logger that appends to pawsome.log in the same
// directory as the database. If the file cannot be opened the logger
// discards output rather than writing over the TUI. The returned closer
// is never nil.
func NewFileLogger(dbPath, level string) (*log.Logger, io.Closer) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	var w io.Writer = io.Discard
	var closer io.Closer = nopCloser{}

	logFile := filepath.Join(filepath.Dir(dbPath), LogFileName)
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err == nil {
		w = f
		closer = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "pawsome",
		Level:           lvl,
	})
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
