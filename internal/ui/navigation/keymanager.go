package navigation

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
)

// KeyManager tracks a virtual active row over the rendered rows.
// It never touches real focus; the view reads State and highlights.
type KeyManager struct {
	labels []string
	state  State

	window   time.Duration
	buffer   []rune
	lastType time.Time

	onMove func(CursorMovedEvent)
}

// NewKeyManager creates a manager with the given type-ahead window.
// A non-positive window uses DefaultTypeAheadWindow.
func NewKeyManager(window time.Duration) *KeyManager {
	if window <= 0 {
		window = DefaultTypeAheadWindow
	}
	return &KeyManager{window: window, state: inactive()}
}

// OnMove registers a callback for cursor changes
func (k *KeyManager) OnMove(fn func(CursorMovedEvent)) {
	k.onMove = fn
}

// State returns the current navigation state
func (k *KeyManager) State() State {
	return k.state
}

// Len returns the number of rows
func (k *KeyManager) Len() int {
	return len(k.labels)
}

// SetRows replaces the rendered rows and resets to the first row,
// or to Inactive when there are none.
func (k *KeyManager) SetRows(labels []string) {
	k.labels = labels
	k.buffer = k.buffer[:0]
	if len(labels) == 0 {
		k.set(inactive())
		return
	}
	k.set(activeAt(0))
}

// Navigate moves the cursor in a direction
func (k *KeyManager) Navigate(d Direction) {
	switch d {
	case DirectionUp:
		k.Prev()
	case DirectionDown:
		k.Next()
	case DirectionHome:
		k.First()
	case DirectionEnd:
		k.Last()
	}
}

// Next moves down one row, wrapping from the last row to the first
func (k *KeyManager) Next() {
	n := len(k.labels)
	if n == 0 {
		return
	}
	i, ok := k.state.Active()
	if !ok {
		k.set(activeAt(0))
		return
	}
	k.set(activeAt((i + 1) % n))
}

// Prev moves up one row, wrapping from the first row to the last
func (k *KeyManager) Prev() {
	n := len(k.labels)
	if n == 0 {
		return
	}
	i, ok := k.state.Active()
	if !ok {
		k.set(activeAt(n - 1))
		return
	}
	k.set(activeAt((i - 1 + n) % n))
}

// First jumps to the first row
func (k *KeyManager) First() {
	if len(k.labels) > 0 {
		k.set(activeAt(0))
	}
}

// Last jumps to the last row
func (k *KeyManager) Last() {
	if n := len(k.labels); n > 0 {
		k.set(activeAt(n - 1))
	}
}

// Activate moves the cursor to row i; out-of-range indexes are ignored
func (k *KeyManager) Activate(i int) {
	if i >= 0 && i < len(k.labels) {
		k.set(activeAt(i))
	}
}

// Deactivate drops the cursor
func (k *KeyManager) Deactivate() {
	k.buffer = k.buffer[:0]
	k.set(inactive())
}

// TypeAhead feeds one typed character. Characters typed within the window
// of the previous one extend the buffer. The cursor moves to the next row
// whose label starts with the buffer. Reports whether the cursor moved.
func (k *KeyManager) TypeAhead(r rune, now time.Time) bool {
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
		return false
	}
	if len(k.buffer) == 0 || now.Sub(k.lastType) > k.window {
		k.buffer = k.buffer[:0]
	}
	k.buffer = append(k.buffer, r)
	k.lastType = now

	n := len(k.labels)
	if n == 0 {
		return false
	}

	caser := cases.Fold()
	prefix := caser.String(string(k.buffer))

	start := 0
	if i, ok := k.state.Active(); ok {
		start = i
		// a single key looks past the current row, a longer buffer may stay on it
		if len(k.buffer) == 1 {
			start = i + 1
		}
	}
	for step := 0; step < n; step++ {
		idx := (start + step) % n
		if strings.HasPrefix(caser.String(k.labels[idx]), prefix) {
			if cur, ok := k.state.Active(); ok && cur == idx {
				return false
			}
			k.set(activeAt(idx))
			return true
		}
	}
	return false
}

func (k *KeyManager) set(s State) {
	old := k.state
	k.state = s
	if old != s && k.onMove != nil {
		k.onMove(CursorMovedEvent{Old: old, New: s})
	}
}
