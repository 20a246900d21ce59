package wardroberepo

import (
	"context"
	"sync"

	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
)

// MemoryRepository keeps wardrobes in process memory for tests/dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string][]wardrobe.Item
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string][]wardrobe.Item)}
}

// List returns a copy of the owner's items in insertion order.
func (r *MemoryRepository) List(_ context.Context, owner string) ([]wardrobe.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.items[owner]
	out := make([]wardrobe.Item, len(stored))
	copy(out, stored)
	return out, nil
}

// Save replaces the owner's collection.
func (r *MemoryRepository) Save(_ context.Context, owner string, items []wardrobe.Item) error {
	cp := make([]wardrobe.Item, len(items))
	copy(cp, items)
	r.mu.Lock()
	r.items[owner] = cp
	r.mu.Unlock()
	return nil
}

var _ wardrobe.Repository = (*MemoryRepository)(nil)
