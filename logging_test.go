package main

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestRunLoggerPrefix(t *testing.T) {
	base := &recordingLogger{}
	l := newRunLogger(base)
	l.Log("Found crumb: %s", "abc")

	if len(base.lines) != 1 {
		t.Fatalf("expected one line, got %v", base.lines)
	}
	re := regexp.MustCompile(`^\[[0-9a-f]{8}\] Found crumb: abc$`)
	if !re.MatchString(base.lines[0]) {
		t.Errorf("unexpected line %q", base.lines[0])
	}

	if other := newRunLogger(base); other.id == l.id {
		t.Errorf("run IDs should differ, both %q", l.id)
	}
}

func TestSetupLoggingWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yfquote.log")

	f, logger, err := setupLogging(path)
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	(&moduleLogger{logger: logger}).Log("Chart API failed with status: %d", 503)
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Chart API failed with status: 503") {
		t.Errorf("log file missing line: %q", data)
	}
}

func TestSetupLoggingWithoutFile(t *testing.T) {
	f, logger, err := setupLogging("")
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	if f != nil {
		t.Errorf("expected no file, got %v", f.Name())
	}
	if logger == nil {
		t.Fatal("expected logger")
	}
}
