package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	values    map[string]string
	expiresAt time.Time
}

// MemoryBackend хранит сессии в памяти процесса. Подходит для одного экземпляра и тестов.
type MemoryBackend struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{sessions: make(map[string]memoryEntry), now: time.Now}
}

func (b *MemoryBackend) Load(_ context.Context, sessionID string) (map[string]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.sessions[sessionID]
	if !ok || (!e.expiresAt.IsZero() && b.now().After(e.expiresAt)) {
		return map[string]string{}, nil
	}
	out := make(map[string]string, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out, nil
}

func (b *MemoryBackend) Save(_ context.Context, sessionID string, values map[string]string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	e := memoryEntry{values: copied}
	if ttl > 0 {
		e.expiresAt = b.now().Add(ttl)
	}
	b.sessions[sessionID] = e
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, sessionID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, sessionID)
	return nil
}
