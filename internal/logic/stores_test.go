package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"unibooks/internal/domain"
)

func TestMemoryItemStore(t *testing.T) {
	items := []domain.SearchItem{
		{ID: "a", Category: domain.CategoryBooks, Title: "A"},
		{ID: "b", Category: domain.CategoryUsers, Title: "B"},
	}
	s := NewMemoryItemStore(items)

	items[0].Title = "mutated"
	got, ok := s.GetItem("a")
	assert.True(t, ok)
	assert.Equal(t, "A", got.Title, "store keeps its own copy")

	snapshot := s.GetAllItems()
	s.ReplaceItems([]domain.SearchItem{{ID: "c", Title: "C"}})

	assert.Len(t, snapshot, 2, "old snapshot is untouched by replace")
	assert.Equal(t, 1, s.Len())
	_, ok = s.GetItem("a")
	assert.False(t, ok)
}
