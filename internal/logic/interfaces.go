package logic

import "unibooks/internal/domain"

// ItemStore provides access to the searchable catalog
type ItemStore interface {
	GetItem(id string) (domain.SearchItem, bool)
	GetAllItems() []domain.SearchItem
	ReplaceItems(items []domain.SearchItem)
	Len() int
}
