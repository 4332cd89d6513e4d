package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*shortener.Record
	byCode map[shortener.Code]int64
	byURL  map[string]int64 // first record stored for a long URL
}

// NewMemoryStore creates a new in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[int64]*shortener.Record),
		byCode: make(map[shortener.Code]int64),
		byURL:  make(map[string]int64),
	}
}

func (m *MemoryStore) FindByCode(_ context.Context, code shortener.Code) (*shortener.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return clone(m.byID[id]), nil
}

func (m *MemoryStore) FindByLongURL(_ context.Context, longURL string) (*shortener.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byURL[longURL]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return clone(m.byID[id]), nil
}

func (m *MemoryStore) Insert(_ context.Context, record *shortener.Record) (*shortener.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byCode[record.Code]; taken {
		return nil, shortener.ErrUniqueViolation
	}

	m.nextID++

	stored := clone(record)
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()

	m.byID[stored.ID] = stored
	m.byCode[stored.Code] = stored.ID

	if _, seen := m.byURL[stored.LongURL]; !seen {
		m.byURL[stored.LongURL] = stored.ID
	}

	return clone(stored), nil
}

func (m *MemoryStore) IncrementHits(_ context.Context, id int64) (*shortener.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	record.Hits++

	return clone(record), nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

func clone(r *shortener.Record) *shortener.Record {
	c := *r

	if r.ExpiresAt != nil {
		t := *r.ExpiresAt
		c.ExpiresAt = &t
	}

	return &c
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)
