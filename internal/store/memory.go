package store

import (
	"context"
	"sync"

	"github.com/robby/dex/internal/domain"
)

// MemoryPersister keeps the encoded envelope in memory.
// It backs --no-persist sessions and tests.
type MemoryPersister struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryPersister returns an empty MemoryPersister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (m *MemoryPersister) Load(ctx context.Context) (domain.Preferences, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return domain.DefaultPreferences(), false, nil
	}
	p, err := Decode(m.data)
	if err != nil {
		return p, false, err
	}
	return p, true, nil
}

func (m *MemoryPersister) Save(ctx context.Context, p domain.Preferences) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}

// Raw returns the stored envelope, or nil when nothing was saved.
func (m *MemoryPersister) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}
