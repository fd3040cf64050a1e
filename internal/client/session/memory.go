package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value   string
	expires time.Time
}

// MemoryBackend keeps values in process memory. With expire set it behaves
// like the cookie backend and honours ttl; otherwise ttl is ignored.
type MemoryBackend struct {
	mu     sync.Mutex
	name   string
	expire bool
	now    func() time.Time
	data   map[string]memoryEntry
}

func NewMemoryBackend(name string, expire bool) *MemoryBackend {
	return &MemoryBackend{name: name, expire: expire, now: time.Now, data: make(map[string]memoryEntry)}
}

func (b *MemoryBackend) Name() string { return b.name }

func (b *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.data[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && !b.now().Before(e.expires) {
		delete(b.data, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (b *MemoryBackend) Set(_ context.Context, key, value string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := memoryEntry{value: value}
	if b.expire {
		if ttl <= 0 {
			ttl = DefaultCookieTTL
		}
		e.expires = b.now().Add(ttl)
	}
	b.data[key] = e
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range keys {
		delete(b.data, k)
	}
	return nil
}

// Len reports how many keys are held, expired ones included.
func (b *MemoryBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}
