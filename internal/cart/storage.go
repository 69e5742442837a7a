package cart

import (
	"context"
	"encoding/json"
	"sync"

	"restaurant-service/internal/entity"
)

// StorageKey is the key a cart is persisted under. Session scoped carts
// append ":<session>" to it.
const StorageKey = "restaurant-cart"

// Storage is the key-value store a cart serializes into. Load returns a nil
// snapshot and no error when nothing is stored under key.
type Storage interface {
	Load(ctx context.Context, key string) (*entity.CartSnapshot, error)
	Save(ctx context.Context, key string, snapshot entity.CartSnapshot) error
}

// MemoryStorage keeps snapshots JSON encoded in process memory.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStorage creates an empty in-process Storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) (*entity.CartSnapshot, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var snapshot entity.CartSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (m *MemoryStorage) Save(_ context.Context, key string, snapshot entity.CartSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

// Raw returns the encoded snapshot stored under key.
func (m *MemoryStorage) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[key]
	return raw, ok
}

// Put stores an already encoded snapshot under key.
func (m *MemoryStorage) Put(key string, raw []byte) {
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
}
