package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unibooks/internal/config"
	"unibooks/internal/domain"
	"unibooks/internal/eventbus"
	"unibooks/internal/logic"
	"unibooks/internal/ui/dropdown"
	"unibooks/internal/ui/state"
)

var catalogItems = []domain.SearchItem{
	{ID: "b1", Category: domain.CategoryBooks, Title: "Intro to CS", Subtitle: "Prof. Hopper"},
	{ID: "c1", Category: domain.CategoryChapters, Title: "Data Structures", Subtitle: "Intro to CS"},
	{ID: "u1", Category: domain.CategoryUsers, Title: "Ada Lovelace"},
}

func newTestModel(t *testing.T) (*Model, eventbus.EventBus) {
	t.Helper()
	bus := eventbus.New(nil)
	m := NewModel(bus, config.DefaultConfig(), logic.NewMemoryItemStore(catalogItems), nil)
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, bus
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openDropdown(t *testing.T, m *Model) *dropdown.Dropdown {
	t.Helper()
	m.Update(keyRunes("/"))
	require.True(t, m.Overlay().IsOpen())
	d, ok := m.Overlay().Current().Panel().(*dropdown.Dropdown)
	require.True(t, ok)
	return d
}

func TestViewBeforeSize(t *testing.T) {
	m := NewModel(nil, config.DefaultConfig(), logic.NewMemoryItemStore(nil), nil)
	assert.Equal(t, "Loading...", m.View())
	assert.Nil(t, m.openSearch(), "no viewport, no overlay")
	assert.False(t, m.Overlay().IsOpen())
}

func TestSlashOpensSearchBelowTheBar(t *testing.T) {
	m, _ := newTestModel(t)

	d := openDropdown(t, m)
	assert.Len(t, d.Result().Rows, 3, "blank query shows all by default")

	bar := m.renderer.SearchBarRect(m.width)
	bounds := m.Overlay().Current().Placement().Bounds
	assert.Equal(t, bar.X, bounds.X)
	assert.Equal(t, bar.Bottom(), bounds.Y)
	assert.Equal(t, bar.Width, bounds.Width)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Books (1)")
	assert.Contains(t, view, "Jump to")
}

func TestSelectingOpensDetailPage(t *testing.T) {
	m, bus := newTestModel(t)
	var selected []eventbus.ItemSelectedEvent
	bus.Subscribe(eventbus.EventItemSelected, func(e eventbus.DomainEvent) {
		selected = append(selected, e.(eventbus.ItemSelectedEvent))
	})

	openDropdown(t, m)
	overlayID := m.Overlay().Current().ID()
	m.Update(keyRunes("intro"))
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Overlay().IsOpen())
	require.Len(t, selected, 1)
	assert.Equal(t, overlayID, selected[0].ID)
	assert.Equal(t, "c1", selected[0].Item.ID)

	s := m.State()
	assert.Equal(t, state.PageDetail, s.Page)
	require.NotNil(t, s.Selected)
	assert.Equal(t, "c1", s.Selected.ID)
	assert.Equal(t, "Opened Data Structures", s.StatusMessage)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Category  Chapters")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, state.PageLibrary, s.Page)
	assert.Contains(t, ansi.Strip(m.View()), "Data Structures Intro to CS", "listed as recently opened")
}

func TestEscapeClosesWithoutSelecting(t *testing.T) {
	m, bus := newTestModel(t)
	selections := 0
	bus.Subscribe(eventbus.EventItemSelected, func(eventbus.DomainEvent) { selections++ })

	openDropdown(t, m)
	m.Update(keyRunes("ada"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.Overlay().IsOpen())
	assert.Zero(t, selections)
	assert.Equal(t, state.PageLibrary, m.State().Page)

	// a new search starts from an empty query
	d := openDropdown(t, m)
	assert.Equal(t, "", d.Query())
}

func TestReloadReachesOnlyTheNextOverlay(t *testing.T) {
	m, _ := newTestModel(t)

	d := openDropdown(t, m)
	m.Update(CatalogReloadedMsg{Path: "/tmp/catalog.yaml", Items: []domain.SearchItem{
		{ID: "d1", Category: domain.CategoryDocuments, Title: "Syllabus"},
	}})

	assert.Len(t, d.Result().Rows, 3, "open dropdown keeps its items")
	assert.Equal(t, "Catalog reloaded: 1 items", m.State().StatusMessage)
	assert.Equal(t, "/tmp/catalog.yaml", m.State().CatalogPath)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	d = openDropdown(t, m)
	require.Len(t, d.Result().Rows, 1)
	assert.Equal(t, "d1", d.Result().Rows[0].ID)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Contains(t, ansi.Strip(m.View()), "catalog.yaml · 1 items")
}

func TestClickOnSearchBarOpens(t *testing.T) {
	m, _ := newTestModel(t)
	bar := m.renderer.SearchBarRect(m.width)

	m.Update(tea.MouseMsg{X: bar.X + 1, Y: bar.Bottom() + 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.Overlay().IsOpen())

	m.Update(tea.MouseMsg{X: bar.X + 1, Y: bar.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, m.Overlay().IsOpen())

	// a click on the page behind closes it again
	m.Update(tea.MouseMsg{X: 0, Y: 29, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.Overlay().IsOpen())
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	openDropdown(t, m)
	m.Update(keyRunes("q"))
	assert.True(t, m.Overlay().IsOpen(), "q is typed into the query while searching")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelpContent(t *testing.T) {
	content := ansi.Strip(NewHelpRenderer().RenderHelpContent())
	assert.Contains(t, content, "University Books Help")
	for _, section := range helpSections {
		assert.Contains(t, content, section.title)
	}
	assert.True(t, strings.Contains(content, "Open search"))

	m, _ := newTestModel(t)
	m.Update(helpPagerMsg{err: assert.AnError})
	assert.True(t, m.State().StatusIsError)
}

func TestSearchNeedsVisibleBar(t *testing.T) {
	for _, size := range []tea.WindowSizeMsg{{Width: 80, Height: 3}, {Width: 2, Height: 30}} {
		m, _ := newTestModel(t)
		m.Update(size)

		assert.NotPanics(t, func() { m.Update(keyRunes("/")) }, "%dx%d", size.Width, size.Height)
		assert.False(t, m.Overlay().IsOpen())
		assert.Equal(t, "Terminal too small to search", m.State().StatusMessage)
		assert.True(t, m.State().StatusIsError)

		// growing the terminal makes search work again
		m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
		openDropdown(t, m)
	}
}

func TestReloadRefreshesDetailPage(t *testing.T) {
	m, _ := newTestModel(t)
	openDropdown(t, m)
	m.Update(keyRunes("ada"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, state.PageDetail, m.State().Page)

	m.Update(CatalogReloadedMsg{Path: "catalog.yaml", Items: []domain.SearchItem{
		{ID: "u1", Category: domain.CategoryUsers, Title: "Ada King", Subtitle: "Countess of Lovelace"},
	}})

	require.NotNil(t, m.State().Selected)
	assert.Equal(t, "Ada King", m.State().Selected.Title)
	assert.Equal(t, "Ada King", m.State().Recent[0].Title)
	assert.Contains(t, ansi.Strip(m.View()), "Countess of Lovelace")
}
