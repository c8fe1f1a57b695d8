package navigation

import "time"

// Kind is the navigation state tag
type Kind int

const (
	Inactive Kind = iota
	ActiveAt
)

// State is either Inactive or ActiveAt(Index)
type State struct {
	Kind  Kind
	Index int
}

// Active reports the active row, if any
func (s State) Active() (int, bool) {
	return s.Index, s.Kind == ActiveAt
}

func inactive() State { return State{Kind: Inactive} }
func activeAt(i int) State { return State{Kind: ActiveAt, Index: i} }

// Direction represents movement directions
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionHome Direction = "home"
	DirectionEnd  Direction = "end"
)

// DefaultTypeAheadWindow is how long typed characters keep accumulating
const DefaultTypeAheadWindow = 200 * time.Millisecond

// CursorMovedEvent describes one cursor change
type CursorMovedEvent struct {
	Old State
	New State
}
