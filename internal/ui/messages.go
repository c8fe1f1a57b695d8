package ui

import (
	"unibooks/internal/domain"
)

// CatalogReloadedMsg carries a freshly loaded catalog from the watcher
type CatalogReloadedMsg struct {
	Path  string
	Items []domain.SearchItem
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}
