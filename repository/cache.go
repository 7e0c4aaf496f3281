package repository

import "sync"

// CacheRepository stores serialized projection results by key. A miss and
// an unreachable backend look the same to callers.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// DefaultMockCacheEntries bounds the in-process cache.
const DefaultMockCacheEntries = 10_000

// MockCache is an in-process CacheRepository used when no Redis address is
// configured, and in tests. Once full it evicts the oldest key first.
type MockCache struct {
	mu         sync.RWMutex
	Data       map[string]string
	order      []string
	maxEntries int
}

func NewMockCache() *MockCache {
	return NewMockCacheSize(DefaultMockCacheEntries)
}

// NewMockCacheSize creates a cache holding at most maxEntries keys; zero or
// less means unbounded.
func NewMockCacheSize(maxEntries int) *MockCache {
	return &MockCache{
		Data:       make(map[string]string),
		maxEntries: maxEntries,
	}
}

func (m *MockCache) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Data[key]; !exists {
		if m.maxEntries > 0 && len(m.order) >= m.maxEntries {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.Data, oldest)
		}
		m.order = append(m.order, key)
	}
	m.Data[key] = value
	return nil
}
