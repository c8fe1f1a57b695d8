package logic

import (
	"sync"

	"unibooks/internal/domain"
)

// MemoryItemStore is an in-memory implementation of ItemStore.
// Catalog order is preserved.
type MemoryItemStore struct {
	mu    sync.RWMutex
	items []domain.SearchItem
	byID  map[string]int
}

// NewMemoryItemStore creates a store seeded with items
func NewMemoryItemStore(items []domain.SearchItem) *MemoryItemStore {
	s := &MemoryItemStore{}
	s.ReplaceItems(items)
	return s
}

func (s *MemoryItemStore) GetItem(id string) (domain.SearchItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return domain.SearchItem{}, false
	}
	return s.items[i], true
}

// GetAllItems returns the current snapshot. Snapshots are never mutated in
// place, so callers may hold on to it but must not modify it.
func (s *MemoryItemStore) GetAllItems() []domain.SearchItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

func (s *MemoryItemStore) ReplaceItems(items []domain.SearchItem) {
	// Copy to prevent external modification
	snapshot := make([]domain.SearchItem, len(items))
	copy(snapshot, items)

	byID := make(map[string]int, len(snapshot))
	for i, item := range snapshot {
		if _, dup := byID[item.ID]; !dup {
			byID[item.ID] = i
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snapshot
	s.byID = byID
}

func (s *MemoryItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
