package handlers

import (
	"fmt"

	"unibooks/internal/eventbus"
	"unibooks/internal/ui/state"
)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{state: appState}
}

// HandleEvent processes domain events forwarded to the UI
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.CatalogReloadedEvent:
		h.state.CatalogPath = e.Path
		h.state.CatalogCount = e.Count
		h.state.SetStatus(fmt.Sprintf("Catalog reloaded: %d items", e.Count), false)

	case eventbus.ItemSelectedEvent:
		h.state.SetStatus(fmt.Sprintf("Opened %s", e.Item.Title), false)
	}
}
