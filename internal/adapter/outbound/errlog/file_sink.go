// Package errlog provides the file-based error record sink.
package errlog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tickd-io/tickd/internal/domain/todo"
)

// timestampLayout is RFC 3339 with millisecond precision, always UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FileSink appends timestamped error records to a plain-text file,
// one line per event: "[<timestamp>] <message>".
//
// Recording is best-effort: write failures are logged and swallowed so a
// broken log file can never fail request handling. Writes are serialized
// behind a mutex to keep lines from interleaving under concurrency.
type FileSink struct {
	file   *os.File
	path   string
	logger *slog.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// NewFileSink opens (or creates) the error log file at path, creating the
// containing directory if absent. The sink is created once at startup and
// owned by the composition root.
func NewFileSink(path string, logger *slog.Logger) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create error log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open error log %s: %w", path, err)
	}

	return &FileSink{
		file:   f,
		path:   path,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Record appends one timestamped line for the given message.
// It never surfaces failures to the caller.
func (s *FileSink) Record(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return
	}

	line := fmt.Sprintf("[%s] %s\n", s.now().Format(timestampLayout), message)
	if _, err := s.file.WriteString(line); err != nil {
		s.logger.Warn("failed to append error record", "path", s.path, "error", err)
	}
}

// Close syncs and closes the underlying file. Record calls after Close
// are silently dropped.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	_ = s.file.Sync()
	err := s.file.Close()
	s.file = nil
	return err
}

// Compile-time interface verification.
var _ todo.Sink = (*FileSink)(nil)
