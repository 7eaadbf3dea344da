package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// registry 以 uuid 为键保存进行中的会话，长时间未访问的会被清理
type registry[T any] struct {
	mu    sync.Mutex
	items map[string]*registryEntry[T]
	ttl   time.Duration
	now   func() time.Time
}

type registryEntry[T any] struct {
	value      T
	lastAccess time.Time
}

func newRegistry[T any](ttl time.Duration) *registry[T] {
	return &registry[T]{
		items: make(map[string]*registryEntry[T]),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (r *registry[T]) add(v T) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id] = &registryEntry[T]{value: v, lastAccess: r.now()}
	return id
}

func (r *registry[T]) get(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	e.lastAccess = r.now()
	return e.value, true
}

func (r *registry[T]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// sweep 移除超过 ttl 未访问的会话并返回它们，ttl<=0 时不清理
func (r *registry[T]) sweep() []T {
	if r.ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	var removed []T
	for id, e := range r.items {
		if e.lastAccess.Before(cutoff) {
			removed = append(removed, e.value)
			delete(r.items, id)
		}
	}
	return removed
}

func (r *registry[T]) drain() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, 0, len(r.items))
	for id, e := range r.items {
		out = append(out, e.value)
		delete(r.items, id)
	}
	return out
}
