// Package eventlog records timer engine events to an append-only CBOR file.
//
// Each record is one CBOR data item using integer keys. A file can be read
// back with Reader for post-mortem inspection of a session: when the
// countdown started, whether the warning fired, and when the session was
// terminated.
package eventlog
