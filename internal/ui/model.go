package ui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"unibooks/internal/config"
	"unibooks/internal/domain"
	"unibooks/internal/eventbus"
	"unibooks/internal/logic"
	"unibooks/internal/ui/dropdown"
	"unibooks/internal/ui/handlers"
	"unibooks/internal/ui/overlay"
	"unibooks/internal/ui/search"
	"unibooks/internal/ui/state"
	"unibooks/internal/ui/views"
)

// Model represents the UI state: the library page with the search overlay on top
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state
	store  logic.ItemStore
	logger *zap.Logger

	// UI-specific state not in AppState
	width  int
	height int
	help   help.Model
	keys   keyMap
	policy search.Policy

	overlay      *overlay.Service
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	helpRenderer *HelpRenderer
	unsubscribe  []func()
}

// NewModel creates a new UI model. Events published on bus update the
// status line; every publisher runs on the Bubble Tea update goroutine.
func NewModel(bus eventbus.EventBus, cfg *config.Config, store logic.ItemStore, logger *zap.Logger) *Model {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	policy, err := search.ParsePolicy(cfg.Search.EmptyQuery)
	if err != nil {
		logger.Warn("falling back to show_all", zap.Error(err))
		policy = search.PolicyShowAll
	}

	appState := state.NewAppState()
	appState.CatalogPath = cfg.Catalog
	appState.CatalogCount = store.Len()

	m := &Model{
		bus:    bus,
		config: cfg,
		state:  appState,
		store:  store,
		logger: logger,
		help:   help.New(),
		keys:   defaultKeyMap(),
		policy: policy,
		overlay: overlay.NewService(overlay.Options{
			Geometry: overlay.Geometry{
				MinWidth:       cfg.Overlay.MinWidth,
				MaxWidth:       cfg.Overlay.MaxWidth,
				ViewportMargin: cfg.Overlay.ViewportMargin,
				OffsetY:        cfg.Overlay.OffsetY,
				MaxHeightRatio: cfg.Overlay.MaxHeightRatio,
			},
			DimBackground: cfg.Overlay.DimBackground,
			Bus:           bus,
			Logger:        logger.Named("overlay"),
		}),
		renderer:     views.NewRenderer(),
		eventHandler: handlers.NewEventHandler(appState),
		helpRenderer: NewHelpRenderer(),
	}

	for _, t := range []eventbus.EventType{
		eventbus.EventCatalogReloaded,
		eventbus.EventItemSelected,
	} {
		m.unsubscribe = append(m.unsubscribe, bus.Subscribe(t, m.eventHandler.HandleEvent))
	}
	return m
}

// Close drops the model's bus subscriptions
func (m *Model) Close() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
}

// State exposes the application state
func (m *Model) State() *state.AppState {
	return m.state
}

// Overlay exposes the overlay service
func (m *Model) Overlay() *overlay.Service {
	return m.overlay
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, m.overlay.Update(msg)

	case CatalogReloadedMsg:
		// an open dropdown keeps its items; the next Open sees the new ones
		m.store.ReplaceItems(msg.Items)
		m.state.Refresh(m.store.GetItem)
		m.bus.Publish(eventbus.CatalogReloadedEvent{Path: msg.Path, Count: len(msg.Items)})
		return m, nil

	case overlay.ClosedMsg:
		m.logger.Debug("search closed", zap.String("id", msg.ID), zap.String("reason", string(msg.Reason)))
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Error("help pager failed", zap.Error(msg.err))
			m.state.SetStatus(fmt.Sprintf("Help unavailable: %v", msg.err), true)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}

	if m.overlay.IsOpen() {
		return m, m.overlay.Update(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			m.renderer.SearchBarRect(m.width).Contains(msg.X, msg.Y) {
			return m, m.openSearch()
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Search):
		return m.openSearch()
	case key.Matches(msg, m.keys.Help):
		return showHelpInPager(m.helpRenderer.RenderHelpContent())
	case key.Matches(msg, m.keys.Back):
		if m.state.Page == state.PageDetail {
			m.state.Back()
		}
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	}
	return nil
}

// openSearch anchors a fresh dropdown to the search bar
func (m *Model) openSearch() tea.Cmd {
	vp := m.overlay.Viewport()
	bar := m.renderer.SearchBarRect(m.width)
	if bar.Intersect(domain.Rect{Width: vp.Width, Height: vp.Height}).Area() == 0 {
		// the bar is off screen, so there is nothing to anchor to
		m.logger.Debug("search bar not visible", zap.Int("width", vp.Width), zap.Int("height", vp.Height))
		if vp.Width > 0 && vp.Height > 0 {
			m.state.SetStatus("Terminal too small to search", true)
		}
		return nil
	}
	labels := m.config.Labels
	h := m.overlay.Open(bar, dropdown.New(dropdown.Options{
		Items:            m.store.GetAllItems(),
		Placeholder:      labels.Placeholder,
		EmptyMessage:     labels.EmptyMessage,
		NoResultsMessage: labels.NoResultsMessage,
		NoResultsHint:    labels.NoResultsHint,
		JumpToHint:       labels.JumpToHint,
		Policy:           m.policy,
		TypeAheadWindow:  m.config.Search.TypeAhead(),
		OnSelect:         m.selectItem,
	}))
	return h.Init()
}

func (m *Model) selectItem(item domain.SearchItem) {
	id := ""
	if h := m.overlay.Current(); h != nil {
		id = h.ID()
	}
	m.logger.Info("item selected", zap.String("overlay", id), zap.String("item", item.ID))
	m.state.OpenItem(item)
	m.bus.Publish(eventbus.ItemSelectedEvent{ID: id, Item: item})
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	catalogName := ""
	if m.state.CatalogPath != "" {
		catalogName = filepath.Base(m.state.CatalogPath)
	}

	items := m.store.GetAllItems()
	bg := m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Page:          m.state.Page,
		Selected:      m.state.Selected,
		Recent:        m.state.Recent,
		Counts:        views.CountByCategory(items),
		CatalogName:   catalogName,
		ItemCount:     len(items),
		StatusMessage: m.state.StatusMessage,
		StatusIsError: m.state.StatusIsError,
		Placeholder:   m.config.Labels.Placeholder,
		SearchHint:    "/ or ctrl+k",
		HelpModel:     m.help,
		HelpKeys:      m.keys,
	})
	return m.overlay.View(bg)
}
