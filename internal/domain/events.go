package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventOverlayOpened   EventType = "OverlayOpened"
	EventOverlayClosed   EventType = "OverlayClosed"
	EventItemSelected    EventType = "ItemSelected"
	EventCatalogReloaded EventType = "CatalogReloaded"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CloseReason tells why an overlay went away
type CloseReason string

const (
	CloseReplaced CloseReason = "replaced"
	CloseBackdrop CloseReason = "backdrop"
	CloseEscape   CloseReason = "escape"
	CloseSelected CloseReason = "selected"
	CloseExplicit CloseReason = "closed"
)

// Rect is a cell rectangle on the terminal screen
type Rect struct {
	X, Y          int
	Width, Height int
}

// Right returns the first column past the rectangle
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first row past the rectangle
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether the cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlap of two rectangles (zero size if disjoint)
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Area returns width times height
func (r Rect) Area() int { return r.Width * r.Height }

// OverlayOpenedEvent is emitted when an overlay is mounted
type OverlayOpenedEvent struct {
	ID     string
	Anchor Rect
}

func (e OverlayOpenedEvent) Type() EventType { return EventOverlayOpened }

// OverlayClosedEvent is emitted when an overlay is disposed
type OverlayClosedEvent struct {
	ID     string
	Reason CloseReason
}

func (e OverlayClosedEvent) Type() EventType { return EventOverlayClosed }

// ItemSelectedEvent is emitted when the user picks a search result
type ItemSelectedEvent struct {
	ID   string
	Item SearchItem
}

func (e ItemSelectedEvent) Type() EventType { return EventItemSelected }

// CatalogReloadedEvent is emitted after the item catalog was read again
type CatalogReloadedEvent struct {
	Path  string
	Count int
}

func (e CatalogReloadedEvent) Type() EventType { return EventCatalogReloaded }

// ConfigLoadedEvent is emitted when configuration is read
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
