package history

import (
	"sync"
	"time"
)

// MemoryStore is an in-memory transcript store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]Entry // sessionID -> entries in append order
	closed bool
}

// NewMemoryStore creates a new in-memory transcript store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]Entry),
	}
}

// Append implements Store.
func (m *MemoryStore) Append(sessionID, eventID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy data to avoid retaining caller's slice
	stored := make([]byte, len(data))
	copy(stored, data)

	m.data[sessionID] = append(m.data[sessionID], Entry{
		SessionID: sessionID,
		EventID:   eventID,
		Sequence:  len(m.data[sessionID]) + 1,
		Timestamp: time.Now().UTC(),
		Data:      stored,
	})

	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(sessionID string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	entries := m.data[sessionID]
	result := make([]Entry, len(entries))
	for i, e := range entries {
		data := make([]byte, len(e.Data))
		copy(data, e.Data)
		e.Data = data
		result[i] = e
	}
	return result, nil
}

// Count implements Store.
func (m *MemoryStore) Count(sessionID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrStoreClosed
	}
	return len(m.data[sessionID]), nil
}

// DeleteSession implements Store.
func (m *MemoryStore) DeleteSession(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, sessionID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the total number of entries across all sessions.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, entries := range m.data {
		count += len(entries)
	}
	return count
}
