package store

import (
	"errors"
	"sort"
	"sync"
)

// ErrWriteRejected is returned by MemKV.Set while FailSets is on.
var ErrWriteRejected = errors.New("storage unavailable")

// MemKV is a process-local KV. Nothing survives the process.
type MemKV struct {
	mu   sync.Mutex
	data map[string]string

	// FailSets makes every Set fail, like a full or disabled disk.
	FailSets bool
	// Sets counts Set calls, including rejected ones.
	Sets int
}

func NewMemKV() *MemKV {
	return &MemKV{data: map[string]string{}}
}

func (m *MemKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	if m.FailSets {
		return ErrWriteRejected
	}
	if key == "" {
		return ErrInvalidKey
	}
	if m.data == nil {
		m.data = map[string]string{}
	}
	m.data[key] = value
	return nil
}

func (m *MemKV) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
