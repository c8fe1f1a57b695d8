package overlay

import (
	"math"

	"unibooks/internal/domain"
)

// Rect is a cell rectangle on screen
type Rect = domain.Rect

// Size is a width and height in cells
type Size struct {
	Width, Height int
}

// Position is one candidate spot for the panel relative to its anchor
type Position struct {
	Name string
	// Above puts the panel's bottom edge on the anchor's top edge
	Above bool
	// AlignEnd lines up right edges instead of left edges
	AlignEnd bool
}

// DefaultPositions are tried in order: below-start first, then the fallbacks
var DefaultPositions = []Position{
	{Name: "below-start"},
	{Name: "above-start", Above: true},
	{Name: "below-end", AlignEnd: true},
	{Name: "above-end", Above: true, AlignEnd: true},
}

// Geometry bounds the panel size and its distance from the screen edge
type Geometry struct {
	MinWidth       int
	MaxWidth       int
	ViewportMargin int
	OffsetY        int
	MaxHeightRatio float64
}

// DefaultGeometry matches the config defaults
func DefaultGeometry() Geometry {
	return Geometry{
		MinWidth:       40,
		MaxWidth:       80,
		ViewportMargin: 1,
		OffsetY:        0,
		MaxHeightRatio: 0.8,
	}
}

// PanelWidth is max(anchor, min) clamped to [min, max], then to the viewport
func (g Geometry) PanelWidth(anchorWidth, viewportWidth int) int {
	w := min(max(anchorWidth, g.MinWidth), g.MaxWidth)
	if avail := viewportWidth - 2*g.ViewportMargin; avail > 0 && w > avail {
		w = avail
	}
	return max(w, 1)
}

// MaxPanelHeight caps the panel to a share of the viewport
func (g Geometry) MaxPanelHeight(viewportHeight int) int {
	ratio := g.MaxHeightRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	h := int(math.Floor(float64(viewportHeight) * ratio))
	if avail := viewportHeight - 2*g.ViewportMargin; avail > 0 && h > avail {
		h = avail
	}
	return max(h, 1)
}

// Placement is where the panel ended up
type Placement struct {
	Bounds   Rect
	Position Position
	// Pushed is set when no position fit and the panel was moved on screen
	Pushed bool
}

func (g Geometry) inset(viewport Size) Rect {
	m := max(g.ViewportMargin, 0)
	return Rect{X: m, Y: m, Width: max(viewport.Width-2*m, 0), Height: max(viewport.Height-2*m, 0)}
}

func (g Geometry) boundsAt(p Position, anchor Rect, size Size) Rect {
	r := Rect{Width: size.Width, Height: size.Height}
	if p.AlignEnd {
		r.X = anchor.Right() - size.Width
	} else {
		r.X = anchor.X
	}
	if p.Above {
		r.Y = anchor.Y - size.Height - g.OffsetY
	} else {
		r.Y = anchor.Bottom() + g.OffsetY
	}
	return r
}

func fits(r, area Rect) bool {
	return r.X >= area.X && r.Y >= area.Y && r.Right() <= area.Right() && r.Bottom() <= area.Bottom()
}

// Place picks the first position that fits inside the viewport margins.
// When none fits, the one showing the most of the panel is pushed on screen.
func Place(anchor Rect, size Size, viewport Size, g Geometry, positions []Position) Placement {
	if len(positions) == 0 {
		positions = DefaultPositions
	}
	area := g.inset(viewport)

	best := -1
	bestVisible := -1
	for i, p := range positions {
		r := g.boundsAt(p, anchor, size)
		if fits(r, area) {
			return Placement{Bounds: r, Position: p}
		}
		if v := r.Intersect(area).Area(); v > bestVisible {
			best, bestVisible = i, v
		}
	}

	p := positions[best]
	return Placement{Bounds: push(g.boundsAt(p, anchor, size), area), Position: p, Pushed: true}
}

func push(r, area Rect) Rect {
	if r.Right() > area.Right() {
		r.X = area.Right() - r.Width
	}
	if r.X < area.X {
		r.X = area.X
	}
	if r.Bottom() > area.Bottom() {
		r.Y = area.Bottom() - r.Height
	}
	if r.Y < area.Y {
		r.Y = area.Y
	}
	return r
}
