package listing

import (
	"sync"
	"time"
)

// Registry хранит по одному View на ключ (сессия + имя представления).
type Registry[F, T any] struct {
	cfg   Config[F, T]
	mu    sync.Mutex
	views map[string]*entry[F, T]
	now   func() time.Time
}

type entry[F, T any] struct {
	view     *View[F, T]
	lastUsed time.Time
}

func NewRegistry[F, T any](cfg Config[F, T]) (*Registry[F, T], error) {
	// проверяем конфиг один раз, до первого обращения
	if _, err := NewView(cfg); err != nil {
		return nil, err
	}
	return &Registry[F, T]{cfg: cfg, views: make(map[string]*entry[F, T]), now: time.Now}, nil
}

func (r *Registry[F, T]) Get(key string) *View[F, T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.views[key]
	if !ok {
		view, _ := NewView(r.cfg)
		e = &entry[F, T]{view: view}
		r.views[key] = e
	}
	e.lastUsed = r.now()
	return e.view
}

func (r *Registry[F, T]) Forget(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, key)
}

// Sweep удаляет представления, к которым не обращались дольше idle. Возвращает число удаленных.
func (r *Registry[F, T]) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	removed := 0
	for key, e := range r.views {
		if e.lastUsed.Before(cutoff) {
			delete(r.views, key)
			removed++
		}
	}
	return removed
}
