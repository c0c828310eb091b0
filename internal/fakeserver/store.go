package fakeserver

import (
	"context"
	"errors"
	"sync"

	"github.com/lunatask-go/lunatask/pkg/lunatask"
)

// ErrNotFound is returned by a Store when no task has the requested ID.
var ErrNotFound = errors.New("task not found")

// Store persists tasks for the server. List returns tasks in insertion order.
// Put inserts a new task at the end or replaces an existing one in place.
type Store interface {
	List(ctx context.Context) ([]lunatask.Task, error)
	Get(ctx context.Context, id string) (*lunatask.Task, error)
	Put(ctx context.Context, task lunatask.Task) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// MemoryStore is a Store that keeps tasks in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]lunatask.Task
	order []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[string]lunatask.Task)}
}

func (m *MemoryStore) List(ctx context.Context) ([]lunatask.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]lunatask.Task, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.tasks[id])
	}
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*lunatask.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *MemoryStore) Put(ctx context.Context, task lunatask.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.ID]; !ok {
		m.order = append(m.order, task.ID)
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(m.tasks, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
