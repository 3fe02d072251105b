package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/skygaze/skygaze/internal/skygaze"
)

// Ensure Memory implements the Store interface
var _ skygaze.Store = (*Memory)(nil)

// Memory is a non-durable store. It backs the "none" cache backend and
// keeps tests off the filesystem.
type Memory struct {
	slots *lru.Cache[string, []byte]
}

// NewMemory creates a new instance of Memory.
func NewMemory() Memory {
	// Far more room than the three features need, but the lru handles
	// eviction if slot keys ever multiply.
	slots, _ := lru.New[string, []byte](16)

	return Memory{slots: slots}
}

func (m Memory) Read(_ context.Context, f skygaze.Feature) ([]byte, error) {
	value, ok := m.slots.Get(f.SlotKey())
	if !ok {
		return nil, skygaze.ErrNotFound
	}

	return value, nil
}

func (m Memory) Write(_ context.Context, f skygaze.Feature, value []byte) error {
	m.slots.Add(f.SlotKey(), value)

	return nil
}

func (m Memory) Clear(_ context.Context, f skygaze.Feature) error {
	m.slots.Remove(f.SlotKey())

	return nil
}
