// v0
// logger.go
package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Init configures slog to log to both stdout and a file, aligning the
// legacy stdlib log package to the same writer. Returns the logger and
// the opened file so the caller can Close() it on shutdown.
func Init() (*slog.Logger, *os.File) {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "./logs"
	}
	_ = os.MkdirAll(logDir, 0o755)

	filePath := filepath.Join(logDir, "qc-engine.log")
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
		logger.Error("failed to open log file; falling back to stdout only", "error", err)
		return logger, os.Stdout
	}

	mw := NewMultiWriter(f, os.Stdout)
	h := slog.NewTextHandler(mw, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(h)

	log.SetOutput(mw)
	return logger, f
}
