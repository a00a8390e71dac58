package store

import (
	"context"
	"sync"
)

// Medium is the key-value persistence boundary the store writes its
// serialized photo sequence through. Each medium instance is bound to
// one fixed key; the store never uses more than one.
type Medium interface {
	// Read returns the persisted bytes, or ok=false when nothing has
	// been written yet.
	Read(ctx context.Context) (data []byte, ok bool, err error)
	// Write replaces the persisted bytes.
	Write(ctx context.Context, data []byte) error
}

// MemoryMedium keeps the payload in memory. Used in tests and as the
// fallback backend.
type MemoryMedium struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{}
}

func (m *MemoryMedium) Read(ctx context.Context) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, false, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, true, nil
}

func (m *MemoryMedium) Write(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append(m.data[:0], data...)
	m.set = true
	return nil
}
