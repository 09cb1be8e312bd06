package idempotency

import (
	"context"
	"sync"
	"time"
)

// Response is what gets replayed for a repeated key.
type Response struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type Store interface {
	// TryLock claims the key; false means another request holds it.
	TryLock(ctx context.Context, key string) (bool, error)
	Unlock(ctx context.Context, key string) error
	Remember(ctx context.Context, key string, resp Response) error
	Recall(ctx context.Context, key string) (*Response, bool, error)
}

/* =========================================================
   In-memory store (single instance, or no REDIS_URL)
========================================================= */

type memoryEntry struct {
	resp    *Response
	expires time.Time
}

// pruneEvery bounds how often writes scan for expired keys.
const pruneEvery = time.Minute

type MemoryStore struct {
	mu         sync.Mutex
	ttl        time.Duration
	locks      map[string]time.Time
	data       map[string]memoryEntry
	now        func() time.Time
	lastPruned time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		locks: map[string]time.Time{},
		data:  map[string]memoryEntry{},
		now:   time.Now,
	}
}

func (m *MemoryStore) TryLock(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.pruneLocked(now)
	if exp, held := m.locks[key]; held && now.Before(exp) {
		return false, nil
	}
	m.locks[key] = now.Add(m.ttl)
	return true, nil
}

func (m *MemoryStore) Unlock(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.locks, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Remember(_ context.Context, key string, resp Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.pruneLocked(now)
	m.data[key] = memoryEntry{resp: &resp, expires: now.Add(m.ttl)}
	return nil
}

// pruneLocked drops expired locks and responses. Caller holds m.mu.
func (m *MemoryStore) pruneLocked(now time.Time) {
	if now.Sub(m.lastPruned) < pruneEvery {
		return
	}
	m.lastPruned = now
	for k, exp := range m.locks {
		if !now.Before(exp) {
			delete(m.locks, k)
		}
	}
	for k, e := range m.data {
		if !now.Before(e.expires) {
			delete(m.data, k)
		}
	}
}

func (m *MemoryStore) Recall(_ context.Context, key string) (*Response, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expires) {
		delete(m.data, key)
		return nil, false, nil
	}
	cp := *e.resp
	return &cp, true, nil
}
