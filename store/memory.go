package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

type memoryEntry struct {
	dataset  *schema.Dataset
	expireAt time.Time
}

type memoryStore struct {
	sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryStore - return a session store kept in process memory
func NewMemoryStore(ttl time.Duration) SessionStore {
	return newMemoryStore(ttl, time.Now)
}

func newMemoryStore(ttl time.Duration, now func() time.Time) *memoryStore {
	return &memoryStore{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *memoryStore) Save(ctx context.Context, d *schema.Dataset) (string, error) {
	id := uuid.New().String()

	m.Lock()
	defer m.Unlock()

	m.purge()
	m.entries[id] = memoryEntry{
		dataset:  d,
		expireAt: m.now().Add(m.ttl),
	}

	return id, nil
}

func (m *memoryStore) Get(ctx context.Context, id string) (*schema.Dataset, error) {
	m.Lock()
	defer m.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, ErrDatasetNotFound
	}
	if !m.now().Before(e.expireAt) {
		delete(m.entries, id)
		return nil, ErrDatasetNotFound
	}

	return e.dataset, nil
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.entries[id]; !ok {
		return ErrDatasetNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *memoryStore) Close() {
	m.Lock()
	defer m.Unlock()

	log.WithField("prefix", storeLogPrefix).Infof("dropping %d in-memory sessions", len(m.entries))
	m.entries = make(map[string]memoryEntry)
}

// purge drops expired sessions. The caller holds the lock.
func (m *memoryStore) purge() {
	now := m.now()
	for id, e := range m.entries {
		if !now.Before(e.expireAt) {
			delete(m.entries, id)
		}
	}
}
