package eventlog

import (
	"fmt"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"conferencetimer/internal/core/timerengine"
)

// FileLogger appends entries to a CBOR file. It is safe for concurrent use.
type FileLogger struct {
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
	follows sync.WaitGroup
}

// NewFileLogger opens path for appending, creating it if needed.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	return &FileLogger{
		file:    f,
		encoder: encMode.NewEncoder(f),
	}, nil
}

// Log writes an entry. Encoding errors are dropped; logging must not
// disturb the timer.
func (logger *FileLogger) Log(entry Entry) {
	logger.mu.Lock()
	defer logger.mu.Unlock()

	if logger.closed {
		return
	}
	_ = logger.encoder.Encode(entry)
}

// Consume logs every event from events until the channel is closed.
func (logger *FileLogger) Consume(events <-chan timerengine.Event) {
	for event := range events {
		logger.Log(FromEvent(event))
	}
}

// Follow consumes events on a new goroutine. Close waits until events is
// closed and drained, so the producer must be closed first.
func (logger *FileLogger) Follow(events <-chan timerengine.Event) {
	logger.follows.Add(1)
	go func() {
		defer logger.follows.Done()
		logger.Consume(events)
	}()
}

// Close waits for followed channels to drain, then closes the file. Later
// Log calls are ignored.
func (logger *FileLogger) Close() error {
	logger.follows.Wait()

	logger.mu.Lock()
	defer logger.mu.Unlock()

	if logger.closed {
		return nil
	}
	logger.closed = true
	return logger.file.Close()
}
