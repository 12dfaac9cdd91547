package main

import (
	"io"
	"log"
	"os"

	"github.com/google/uuid"
)

type Logger interface {
	Log(format string, args ...any)
}

type moduleLogger struct {
	logger *log.Logger
}

func (m *moduleLogger) Log(format string, args ...any) {
	m.logger.Printf("      "+format, args...)
}

// runLogger prefixes every line with the run ID so interleaved runs in a
// shared log file can be told apart.
type runLogger struct {
	id   string
	base Logger
}

func newRunLogger(base Logger) *runLogger {
	return &runLogger{id: generateRunID(), base: base}
}

func (r *runLogger) Log(format string, args ...any) {
	r.base.Log("[%s] "+format, append([]any{r.id}, args...)...)
}

func generateRunID() string {
	return uuid.New().String()[:8]
}

// setupLogging writes to stdout and, when logPath is set, appends to that file.
// The returned file is nil when no log file is used.
func setupLogging(logPath string) (*os.File, *log.Logger, error) {
	if logPath == "" {
		return nil, log.New(os.Stdout, "", log.LstdFlags), nil
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return logFile, log.New(io.MultiWriter(os.Stdout, logFile), "", log.LstdFlags), nil
}
