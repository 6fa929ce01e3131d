package store

import "sync"

// Mem is an in-memory KV for tests and single-process hosting.
//
// Safe for concurrent use. Values are copied on the way in and out.
type Mem struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMem() *Mem {
	return &Mem{data: make(map[string][]byte)}
}

func (m *Mem) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Mem) Set(key, value []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(key)] = v
	return nil
}

func (m *Mem) Has(key []byte) bool {
	if len(key) == 0 {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[string(key)]
	return ok
}
