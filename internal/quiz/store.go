package quiz

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Store persists issued quiz records and taker answers. Records are
// write-once; answers are overwritable until the taker is done.
type Store interface {
	// SaveRecord persists a freshly issued record. The code must be new.
	SaveRecord(ctx context.Context, rec Record) error

	// Get returns the record for code, or ErrUnknownCode.
	Get(ctx context.Context, code string) (*Record, error)

	// List returns all issued records, newest first.
	List(ctx context.Context) ([]Record, error)

	// Exists reports whether a record with the given code exists.
	Exists(ctx context.Context, code string) (bool, error)

	// SetAnswer stores or overwrites the taker's answer for one question.
	SetAnswer(ctx context.Context, code, takerID string, index int, selected string) error

	// Answers returns the taker's current answers keyed by question index.
	Answers(ctx context.Context, code, takerID string) (map[int]string, error)
}

// MemoryStore is an in-process Store. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	answers map[string]map[int]string // keyed by code + "\x00" + takerID
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		answers: make(map[string]map[int]string),
	}
}

func attemptKey(code, takerID string) string {
	return code + "\x00" + takerID
}

// SaveRecord persists a record. Saving an existing code is an error.
func (m *MemoryStore) SaveRecord(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[rec.Code]; ok {
		return fmt.Errorf("code %s already issued", rec.Code)
	}
	m.records[rec.Code] = rec
	return nil
}

// Get returns the record for code, or ErrUnknownCode.
func (m *MemoryStore) Get(_ context.Context, code string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[code]
	if !ok {
		return nil, ErrUnknownCode
	}
	return &rec, nil
}

// List returns all records, newest first.
func (m *MemoryStore) List(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Exists reports whether a record with the given code exists.
func (m *MemoryStore) Exists(_ context.Context, code string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.records[code]
	return ok, nil
}

// SetAnswer stores or overwrites one answer for the taker's attempt.
func (m *MemoryStore) SetAnswer(_ context.Context, code, takerID string, index int, selected string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[code]; !ok {
		return ErrUnknownCode
	}

	key := attemptKey(code, takerID)
	if m.answers[key] == nil {
		m.answers[key] = make(map[int]string)
	}
	m.answers[key][index] = selected
	return nil
}

// Answers returns a copy of the taker's current answers.
func (m *MemoryStore) Answers(_ context.Context, code, takerID string) (map[int]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.records[code]; !ok {
		return nil, ErrUnknownCode
	}

	out := make(map[int]string)
	for idx, text := range m.answers[attemptKey(code, takerID)] {
		out[idx] = text
	}
	return out, nil
}
