// Package history provides persistent transcript storage for debug
// sessions.
package history

import (
	"errors"
	"time"
)

// Store persists the event transcript of a session.
// Implementations must be safe for concurrent use.
//
// A transcript is append-only: entries are written in arrival order
// and read back the same way. Duplicate suppression happens upstream;
// the store records what it is given.
type Store interface {
	// Append records one event for a session.
	Append(sessionID, eventID string, data []byte) error

	// Load returns all entries for a session in append order.
	// Returns an empty slice (not an error) for an unknown session.
	Load(sessionID string) ([]Entry, error)

	// Count returns the number of entries for a session.
	Count(sessionID string) (int, error)

	// DeleteSession removes all entries for a session.
	// Returns nil if the session has no entries.
	DeleteSession(sessionID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Entry is one recorded event.
type Entry struct {
	SessionID string
	EventID   string
	Sequence  int
	Timestamp time.Time
	Data      []byte
}

// ErrStoreClosed indicates the store has been closed.
var ErrStoreClosed = errors.New("history store closed")
