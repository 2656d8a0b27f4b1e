package errlog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileSink_RecordFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "errors.log")
	sink, err := NewFileSink(path, testLogger())
	if err != nil {
		t.Fatalf("NewFileSink(): %v", err)
	}
	defer sink.Close()

	fixed := time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	sink.now = func() time.Time { return fixed }

	sink.Record("Todo item not found")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}
	want := "[2026-03-14T09:26:53.589Z] Todo item not found\n"
	if string(data) != want {
		t.Errorf("Record() wrote %q, want %q", string(data), want)
	}
}

func TestFileSink_CreatesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "logs", "errors.log")
	sink, err := NewFileSink(path, testLogger())
	if err != nil {
		t.Fatalf("NewFileSink() with missing directory: %v", err)
	}
	defer sink.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("sink file was not created: %v", err)
	}
}

func TestFileSink_AppendsAcrossReopens(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "errors.log")

	first, err := NewFileSink(path, testLogger())
	if err != nil {
		t.Fatalf("NewFileSink(): %v", err)
	}
	first.Record("one")
	if err := first.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}

	second, err := NewFileSink(path, testLogger())
	if err != nil {
		t.Fatalf("NewFileSink() reopen: %v", err)
	}
	second.Record("two")
	defer second.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("log has %d lines, want 2: %q", len(lines), string(data))
	}

	linePattern := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z\] `)
	for i, line := range lines {
		if !linePattern.MatchString(line) {
			t.Errorf("line %d does not match sink format: %q", i, line)
		}
	}
}

func TestFileSink_RecordAfterClose(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "errors.log")
	sink, err := NewFileSink(path, testLogger())
	if err != nil {
		t.Fatalf("NewFileSink(): %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}

	// Best-effort contract: no panic, no write.
	sink.Record("dropped")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Record() after Close wrote %q, want nothing", string(data))
	}
}
