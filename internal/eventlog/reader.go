package eventlog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// Reader streams entries from a CBOR event log.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
}

// NewReader opens the log at path.
func NewReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	return &Reader{
		file:    f,
		decoder: decMode.NewDecoder(f),
	}, nil
}

// Next returns the next entry, or io.EOF when the log is exhausted.
func (reader *Reader) Next() (Entry, error) {
	var entry Entry
	if err := reader.decoder.Decode(&entry); err != nil {
		if errors.Is(err, io.EOF) {
			return Entry{}, io.EOF
		}
		return Entry{}, fmt.Errorf("decode event log entry: %w", err)
	}
	return entry, nil
}

// ReadAll returns every entry in the log at path.
func ReadAll(path string) ([]Entry, error) {
	reader, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var entries []Entry
	for {
		entry, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
}

// Close closes the underlying file.
func (reader *Reader) Close() error {
	return reader.file.Close()
}
