// Package overlay mounts at most one floating panel next to an anchor
// rectangle and guarantees its teardown.
package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"unibooks/internal/domain"
	"unibooks/internal/eventbus"
)

// Panel is the component shown inside an overlay
type Panel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	// View renders the panel at exactly width cells and at most maxHeight lines
	View(width, maxHeight int) string
}

// Disposer is implemented by panels that release resources on close
type Disposer interface {
	Dispose()
}

// Controller is what a panel gets to close its own overlay
type Controller interface {
	ID() string
	Close(reason domain.CloseReason)
}

// PanelFunc builds a panel for a freshly opened overlay
type PanelFunc func(ctl Controller) Panel

// ClosedMsg is returned from Update when the overlay went away during it
type ClosedMsg struct {
	ID     string
	Reason domain.CloseReason
}

// Options configures a Service
type Options struct {
	Geometry      Geometry
	Positions     []Position
	DimBackground bool
	Bus           eventbus.EventBus
	Logger        *zap.Logger
}

// Service owns the single overlay slot
type Service struct {
	geometry  Geometry
	positions []Position
	dim       bool
	bus       eventbus.EventBus
	logger    *zap.Logger

	viewport Size
	current  *Handle
	closed   []ClosedMsg
}

// NewService creates an overlay service
func NewService(opts Options) *Service {
	if opts.Bus == nil {
		opts.Bus = eventbus.NullBus{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Geometry == (Geometry{}) {
		opts.Geometry = DefaultGeometry()
	}
	if len(opts.Positions) == 0 {
		opts.Positions = DefaultPositions
	}
	return &Service{
		geometry:  opts.Geometry,
		positions: opts.Positions,
		dim:       opts.DimBackground,
		bus:       opts.Bus,
		logger:    opts.Logger,
	}
}

// SetViewport records the screen size
func (s *Service) SetViewport(width, height int) {
	s.viewport = Size{Width: width, Height: height}
	if s.current != nil {
		s.layout(s.current)
	}
}

// Viewport returns the last known screen size
func (s *Service) Viewport() Size {
	return s.viewport
}

// IsOpen reports whether an overlay is mounted
func (s *Service) IsOpen() bool {
	return s.current != nil
}

// Current returns the open overlay, or nil
func (s *Service) Current() *Handle {
	return s.current
}

// Open mounts a panel anchored to anchor, closing any overlay already open.
// It panics on a degenerate or off-screen anchor, an unknown viewport or a
// nil panel; these are programming errors.
func (s *Service) Open(anchor Rect, newPanel PanelFunc) *Handle {
	if newPanel == nil {
		panic("overlay: Open called with a nil PanelFunc")
	}
	if s.viewport.Width <= 0 || s.viewport.Height <= 0 {
		panic("overlay: viewport size unknown, forward tea.WindowSizeMsg before Open")
	}
	if anchor.Width <= 0 || anchor.Height <= 0 {
		panic(fmt.Sprintf("overlay: anchor %+v has no area", anchor))
	}
	screen := Rect{Width: s.viewport.Width, Height: s.viewport.Height}
	if anchor.Intersect(screen).Area() == 0 {
		panic(fmt.Sprintf("overlay: anchor %+v is outside the %dx%d viewport", anchor, s.viewport.Width, s.viewport.Height))
	}

	if s.current != nil {
		s.closeCurrent(domain.CloseReplaced)
	}

	h := &Handle{id: uuid.NewString(), anchor: anchor, svc: s}
	panel := newPanel(h)
	if panel == nil {
		panic("overlay: PanelFunc returned a nil panel")
	}
	h.panel = panel
	s.current = h
	s.layout(h)

	s.logger.Info("overlay opened",
		zap.String("id", h.id),
		zap.String("position", h.placement.Position.Name),
		zap.Bool("pushed", h.placement.Pushed),
		zap.Int("x", h.placement.Bounds.X),
		zap.Int("y", h.placement.Bounds.Y),
		zap.Int("width", h.placement.Bounds.Width),
		zap.Int("height", h.placement.Bounds.Height))
	s.bus.Publish(eventbus.OverlayOpenedEvent{ID: h.id, Anchor: anchor})
	return h
}

// Close disposes the open overlay. Safe to call when nothing is open.
func (s *Service) Close() {
	s.closeCurrent(domain.CloseExplicit)
}

func (s *Service) closeCurrent(reason domain.CloseReason) {
	h := s.current
	if h == nil {
		return
	}
	s.current = nil
	h.closed = true
	if d, ok := h.panel.(Disposer); ok {
		d.Dispose()
	}
	h.panel = nil
	h.content = ""

	s.closed = append(s.closed, ClosedMsg{ID: h.id, Reason: reason})
	s.logger.Info("overlay closed", zap.String("id", h.id), zap.String("reason", string(reason)))
	s.bus.Publish(eventbus.OverlayClosedEvent{ID: h.id, Reason: reason})
}

// Update routes a message to the open panel. Escape and presses on the
// backdrop close the overlay before the panel sees them.
func (s *Service) Update(msg tea.Msg) tea.Cmd {
	s.closed = s.closed[:0]

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		s.SetViewport(size.Width, size.Height)
		return nil
	}

	h := s.current
	if h == nil {
		return nil
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			s.closeCurrent(domain.CloseEscape)
			break
		}
		cmd = h.panel.Update(msg)
	case tea.MouseMsg:
		bounds := h.placement.Bounds
		if !bounds.Contains(msg.X, msg.Y) {
			if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
				s.closeCurrent(domain.CloseBackdrop)
			}
			break
		}
		local := msg
		local.X -= bounds.X
		local.Y -= bounds.Y
		cmd = h.panel.Update(local)
	default:
		cmd = h.panel.Update(msg)
	}

	if s.current == h {
		s.layout(h)
	}
	cmds := []tea.Cmd{cmd}
	for _, m := range s.closed {
		cmds = append(cmds, func() tea.Msg { return m })
	}
	return tea.Batch(cmds...)
}

// View draws the open overlay over background
func (s *Service) View(background string) string {
	h := s.current
	if h == nil {
		return background
	}
	if s.dim {
		background = desaturate(background)
	}
	b := h.placement.Bounds
	return compose(background, h.content, b.X, b.Y, s.viewport.Height)
}

// layout renders the panel and places it. Placement is redone on every
// change so a growing panel keeps fitting the screen.
func (s *Service) layout(h *Handle) {
	width := s.geometry.PanelWidth(h.anchor.Width, s.viewport.Width)
	maxHeight := s.geometry.MaxPanelHeight(s.viewport.Height)

	content := h.panel.View(width, maxHeight)
	if lines := strings.Split(content, "\n"); len(lines) > maxHeight {
		content = strings.Join(lines[:maxHeight], "\n")
	}
	size := Size{Width: lipgloss.Width(content), Height: lipgloss.Height(content)}

	h.content = content
	h.placement = Place(h.anchor, size, s.viewport, s.geometry, s.positions)
}

// Handle is one open overlay
type Handle struct {
	id        string
	anchor    Rect
	panel     Panel
	placement Placement
	content   string
	closed    bool
	svc       *Service
}

// ID returns the overlay id
func (h *Handle) ID() string { return h.id }

// Panel returns the mounted panel, or nil once closed
func (h *Handle) Panel() Panel { return h.panel }

// Anchor returns the rectangle the overlay is attached to
func (h *Handle) Anchor() Rect { return h.anchor }

// Placement returns where the panel was last drawn
func (h *Handle) Placement() Placement { return h.placement }

// IsClosed reports whether this overlay has been disposed
func (h *Handle) IsClosed() bool { return h.closed }

// Init returns the panel's startup command
func (h *Handle) Init() tea.Cmd {
	if h.IsClosed() {
		return nil
	}
	return h.panel.Init()
}

// Close closes this overlay if it is still the open one. A stale handle is a no-op.
func (h *Handle) Close(reason domain.CloseReason) {
	if h.IsClosed() || h.svc.current != h {
		return
	}
	h.svc.closeCurrent(reason)
}
