// Package store is the persistence adapter: one JSON document per key,
// whole-document overwrite on every save. A malformed stored value is treated
// as absent and gets discarded by the next save.
package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Well-known snapshot keys.
const (
	KeyProducts    = "products"
	KeyClients     = "clients"
	KeyInvoices    = "invoices"
	KeyCounters    = "counters"
	KeySettings    = "settings"
	KeyCurrentUser = "currentUser"
)

// Store reads and writes JSON snapshots in a durable key space.
type Store interface {
	// Load unmarshals the document at key into dest. It returns false when no
	// valid document exists; dest is left untouched so the caller's default
	// applies.
	Load(ctx context.Context, key string, dest any) (bool, error)
	// Save overwrites the document at key unconditionally.
	Save(ctx context.Context, key string, value any) error
	// Delete removes the document at key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error
}

// MemStore is an in-memory Store for tests and ephemeral runs.
type MemStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string][]byte)}
}

func (m *MemStore) Load(_ context.Context, key string, dest any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.docs[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Corrupt document: behave as if absent.
		return false, nil
	}
	return true, nil
}

func (m *MemStore) Save(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.docs, key)
	m.mu.Unlock()
	return nil
}

// Corrupt plants an invalid document under key, for failure-path tests.
func (m *MemStore) Corrupt(key string) {
	m.mu.Lock()
	m.docs[key] = []byte("{not json")
	m.mu.Unlock()
}
