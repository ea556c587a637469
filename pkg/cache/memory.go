package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryItem struct {
	value    []byte
	expireAt time.Time
}

func (i *memoryItem) expired() bool {
	return !i.expireAt.IsZero() && time.Now().After(i.expireAt)
}

// MemoryCache is the in-process Cache backend. Size-capped with
// least-recently-used eviction and periodic cleanup of expired entries.
type MemoryCache struct {
	mu      sync.RWMutex
	data    map[string]*memoryItem
	access  map[string]time.Time
	maxSize int
	ticker  *time.Ticker
	done    chan struct{}
}

// MemoryOption configures MemoryCache.
type MemoryOption func(*MemoryCache)

// WithMaxSize caps the number of entries.
func WithMaxSize(n int) MemoryOption {
	return func(m *MemoryCache) {
		if n > 0 {
			m.maxSize = n
		}
	}
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	m := &MemoryCache{
		data:    make(map[string]*memoryItem),
		access:  make(map[string]time.Time),
		maxSize: 1000,
		ticker:  time.NewTicker(5 * time.Minute),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	go m.cleanupLoop()
	return m
}

func (m *MemoryCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	if item.expired() {
		delete(m.data, key)
		delete(m.access, key)
		return nil, false, nil
	}
	m.access[key] = time.Now()
	return item.value, true, nil
}

func (m *MemoryCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.data) >= m.maxSize {
		m.evictLRU()
	}
	var expireAt time.Time
	if ttl > 0 {
		expireAt = time.Now().Add(ttl)
	}
	m.data[key] = &memoryItem{value: value, expireAt: expireAt}
	m.access[key] = time.Now()
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
		delete(m.access, key)
	}
	return nil
}

func (m *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
			delete(m.access, key)
		}
	}
	return nil
}

func (m *MemoryCache) Close() error {
	m.ticker.Stop()
	close(m.done)
	return nil
}

// evictLRU removes the least recently accessed entry. Caller holds the lock.
func (m *MemoryCache) evictLRU() {
	var oldest string
	var oldestAt time.Time
	for key, at := range m.access {
		if oldest == "" || at.Before(oldestAt) {
			oldest = key
			oldestAt = at
		}
	}
	if oldest != "" {
		delete(m.data, oldest)
		delete(m.access, oldest)
	}
}

func (m *MemoryCache) cleanupLoop() {
	for {
		select {
		case <-m.done:
			return
		case <-m.ticker.C:
			m.mu.Lock()
			for key, item := range m.data {
				if item.expired() {
					delete(m.data, key)
					delete(m.access, key)
				}
			}
			m.mu.Unlock()
		}
	}
}
