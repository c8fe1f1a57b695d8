package state

import (
	"unibooks/internal/domain"
)

// RecentLimit caps the recently opened list
const RecentLimit = 5

// Page is the screen the host shows behind the overlay
type Page int

const (
	PageLibrary Page = iota
	PageDetail
)

// AppState contains all the application state
type AppState struct {
	Page     Page
	Selected *domain.SearchItem  // item shown on the detail page
	Recent   []domain.SearchItem // most recent first

	// Catalog data
	CatalogPath  string // empty for the embedded sample
	CatalogCount int

	StatusMessage string // status bar message
	StatusIsError bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Page:   PageLibrary,
		Recent: make([]domain.SearchItem, 0, RecentLimit),
	}
}

// OpenItem shows item on the detail page and records it as recent
func (s *AppState) OpenItem(item domain.SearchItem) {
	s.Page = PageDetail
	s.Selected = &item

	recent := make([]domain.SearchItem, 0, RecentLimit)
	recent = append(recent, item)
	for _, r := range s.Recent {
		if r.ID != item.ID && len(recent) < RecentLimit {
			recent = append(recent, r)
		}
	}
	s.Recent = recent
}

// Back returns to the library page
func (s *AppState) Back() {
	s.Page = PageLibrary
	s.Selected = nil
}

// Refresh swaps the selected and recent items for their current catalog
// versions. Items lookup no longer finds keep their last known contents.
func (s *AppState) Refresh(lookup func(id string) (domain.SearchItem, bool)) {
	if s.Selected != nil {
		if item, ok := lookup(s.Selected.ID); ok {
			s.Selected = &item
		}
	}
	for i, r := range s.Recent {
		if item, ok := lookup(r.ID); ok {
			s.Recent[i] = item
		}
	}
}

// SetStatus sets the status bar message
func (s *AppState) SetStatus(msg string, isError bool) {
	s.StatusMessage = msg
	s.StatusIsError = isError
}
