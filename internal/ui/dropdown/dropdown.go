// Package dropdown is the search panel shown inside an overlay: a query
// input over category sections with a keyboard-driven active row.
package dropdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"unibooks/internal/domain"
	"unibooks/internal/ui/navigation"
	"unibooks/internal/ui/overlay"
	"unibooks/internal/ui/search"
)

// Zone is where typed characters go
type Zone int

const (
	// ZoneInput sends runes to the query
	ZoneInput Zone = iota
	// ZoneList sends runes to type-ahead
	ZoneList
)

func (z Zone) String() string {
	if z == ZoneList {
		return "list"
	}
	return "input"
}

// bodyTop is the first panel line below the border, the input and the separator
const bodyTop = 3

type line struct {
	text string
	row  int // index into Result.Rows, -1 for headers and messages
}

// Dropdown is the search panel
type Dropdown struct {
	opts   Options
	styles *Styles
	ctl    overlay.Controller
	keys   keyMap
	help   help.Model
	input  textinput.Model
	nav    *navigation.KeyManager
	result search.Result
	zone   Zone

	offset   int
	rowAt    map[int]int // panel line -> row, from the last View
	disposed bool
}

// New returns a PanelFunc that builds a fresh dropdown for every overlay
// opened with it. It panics when a required label is missing.
func New(opts Options) overlay.PanelFunc {
	if err := opts.Validate(); err != nil {
		panic("dropdown: " + err.Error())
	}
	opts = opts.withDefaults()
	return func(ctl overlay.Controller) overlay.Panel {
		return newDropdown(opts, ctl)
	}
}

func newDropdown(opts Options, ctl overlay.Controller) *Dropdown {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = opts.Placeholder
	ti.PromptStyle = opts.Styles.Prompt
	ti.PlaceholderStyle = opts.Styles.Placeholder
	ti.Focus()

	d := &Dropdown{
		opts:   opts,
		styles: opts.Styles,
		ctl:    ctl,
		keys:   defaultKeyMap(),
		help:   help.New(),
		input:  ti,
		nav:    navigation.NewKeyManager(opts.TypeAheadWindow),
		rowAt:  make(map[int]int),
	}
	d.refresh()
	return d
}

// Init starts the cursor blink
func (d *Dropdown) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles keys, mouse presses in panel coordinates and input ticks
func (d *Dropdown) Update(msg tea.Msg) tea.Cmd {
	if d.disposed {
		return nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return d.handleKey(msg)
	case tea.MouseMsg:
		return d.handleMouse(msg)
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

func (d *Dropdown) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, d.keys.Select):
		d.selectActive()
		return nil
	case key.Matches(msg, d.keys.Close):
		d.nav.Deactivate()
		d.ctl.Close(domain.CloseEscape)
		return nil
	case key.Matches(msg, d.keys.Up):
		d.nav.Prev()
		return d.setZone(ZoneList)
	case key.Matches(msg, d.keys.Down):
		d.nav.Next()
		return d.setZone(ZoneList)
	case key.Matches(msg, d.keys.Home):
		d.nav.First()
		return d.setZone(ZoneList)
	case key.Matches(msg, d.keys.End):
		d.nav.Last()
		return d.setZone(ZoneList)
	case key.Matches(msg, d.keys.Toggle):
		if d.zone == ZoneInput {
			return d.setZone(ZoneList)
		}
		return d.setZone(ZoneInput)
	}

	if d.zone == ZoneInput {
		return d.editQuery(msg)
	}

	if key.Matches(msg, d.keys.Back) {
		return tea.Batch(d.setZone(ZoneInput), d.editQuery(msg))
	}
	runes := msg.Runes
	switch msg.Type {
	case tea.KeySpace:
		runes = []rune{' '}
	case tea.KeyRunes:
	default:
		return nil
	}
	now := d.opts.Now()
	for _, r := range runes {
		d.nav.TypeAhead(r, now)
	}
	return nil
}

func (d *Dropdown) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		d.nav.Prev()
		return d.setZone(ZoneList)
	case tea.MouseButtonWheelDown:
		d.nav.Next()
		return d.setZone(ZoneList)
	case tea.MouseButtonLeft:
		if row, ok := d.rowAt[msg.Y]; ok {
			d.nav.Activate(row)
			d.selectActive()
		}
	}
	return nil
}

func (d *Dropdown) editQuery(msg tea.Msg) tea.Cmd {
	before := d.input.Value()
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if d.input.Value() != before {
		d.refresh()
	}
	return cmd
}

func (d *Dropdown) setZone(z Zone) tea.Cmd {
	d.zone = z
	if z == ZoneInput {
		return d.input.Focus()
	}
	d.input.Blur()
	return nil
}

// selectActive reports the active row, then closes the overlay
func (d *Dropdown) selectActive() {
	item, ok := d.ActiveItem()
	if !ok {
		return
	}
	if d.opts.OnSelect != nil {
		d.opts.OnSelect(item)
	}
	d.ctl.Close(domain.CloseSelected)
}

// refresh re-evaluates the query; the cursor goes back to the first row
func (d *Dropdown) refresh() {
	d.result = search.Evaluate(d.opts.Items, d.input.Value(), d.opts.Policy)
	labels := make([]string, len(d.result.Rows))
	for i, item := range d.result.Rows {
		labels[i] = item.Title
	}
	d.nav.SetRows(labels)
	d.offset = 0
}

// Dispose detaches the panel from its callbacks
func (d *Dropdown) Dispose() {
	d.disposed = true
	d.opts.OnSelect = nil
	d.input.Blur()
}

// Query returns the current query text
func (d *Dropdown) Query() string {
	return d.input.Value()
}

// SetQuery replaces the query as if it had been typed
func (d *Dropdown) SetQuery(q string) {
	if d.disposed {
		return
	}
	d.input.SetValue(q)
	d.input.CursorEnd()
	d.refresh()
}

// Result returns the evaluation of the current query
func (d *Dropdown) Result() search.Result {
	return d.result
}

// Active returns the navigation state
func (d *Dropdown) Active() navigation.State {
	return d.nav.State()
}

// ActiveItem returns the item under the cursor, if any
func (d *Dropdown) ActiveItem() (domain.SearchItem, bool) {
	i, ok := d.nav.State().Active()
	if !ok || i >= len(d.result.Rows) {
		return domain.SearchItem{}, false
	}
	return d.result.Rows[i], true
}

// Zone returns the focus zone
func (d *Dropdown) Zone() Zone {
	return d.zone
}

// View renders the panel at width cells, scrolled so the active row is visible
func (d *Dropdown) View(width, maxHeight int) string {
	frame := d.styles.Frame
	inner := max(width-frame.GetHorizontalFrameSize(), 1)
	// input and separator above the body, separator and help below
	avail := max(maxHeight-frame.GetVerticalFrameSize()-4, 1)

	d.input.Width = max(inner-lipgloss.Width(d.input.Prompt)-1, 1)
	d.help.Width = inner

	sep := d.styles.Separator.Render(strings.Repeat("─", inner))
	lines := []string{fit(d.input.View(), inner), sep}

	clear(d.rowAt)
	for i, l := range d.scroll(d.body(inner), avail) {
		if l.row >= 0 {
			d.rowAt[bodyTop+i] = l.row
		}
		lines = append(lines, l.text)
	}
	lines = append(lines, sep, fit(d.styles.Help.Render(d.help.ShortHelpView(d.keys.ShortHelp())), inner))

	return frame.Width(inner + frame.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

func (d *Dropdown) body(width int) []line {
	r := d.result
	switch {
	case r.ShowEmptyState:
		return []line{{text: fit(d.styles.Empty.Render(d.opts.EmptyMessage), width), row: -1}}
	case r.ShowNoResultsState:
		msg := search.FormatNoResults(d.opts.NoResultsMessage, r.Query)
		out := []line{{text: fit(d.styles.NoResults.Render(msg), width), row: -1}}
		if d.opts.NoResultsHint != "" {
			out = append(out, line{text: fit(d.styles.Empty.Render(d.opts.NoResultsHint), width), row: -1})
		}
		return out
	}

	active, hasActive := d.nav.State().Active()
	var out []line
	row := 0
	for _, g := range r.Groups {
		header := d.styles.Glyph.Render(Glyph(g.Config.Icon)) + " " +
			d.styles.Header.Render(g.Config.Label) + " " +
			d.styles.Count.Render(fmt.Sprintf("(%d)", len(g.Items)))
		out = append(out, line{text: fit(header, width), row: -1})
		for _, item := range g.Items {
			out = append(out, line{text: d.renderRow(item, width, hasActive && active == row), row: row})
			row++
		}
	}
	return out
}

func (d *Dropdown) renderRow(item domain.SearchItem, width int, active bool) string {
	glyph := Glyph(item.Icon)
	detail := item.Subtitle
	if item.Metadata != "" {
		if detail != "" {
			detail += " · "
		}
		detail += item.Metadata
	}

	var left, right string
	if active {
		left = "  " + glyph + " " + item.Title
		if detail != "" {
			left += "  " + detail
		}
		var parts []string
		if item.Badge != "" {
			parts = append(parts, item.Badge)
		}
		if d.opts.JumpToHint != "" {
			parts = append(parts, "↵ "+d.opts.JumpToHint)
		}
		right = strings.Join(parts, " ")
	} else {
		left = "  " + d.styles.Glyph.Render(glyph) + " " + d.styles.Title.Render(item.Title)
		if detail != "" {
			left += "  " + d.styles.Subtitle.Render(detail)
		}
		if item.Badge != "" {
			right = d.styles.Badge(item.BadgeColor).Render(item.Badge)
		}
	}

	rw := ansi.StringWidth(right)
	lw := width - rw
	if rw > 0 {
		lw--
	}
	if lw < 1 {
		right, rw, lw = "", 0, width
	}
	left = ansi.Truncate(left, lw, "…")
	pad := strings.Repeat(" ", max(width-ansi.StringWidth(left)-rw, 0))

	if active {
		return d.styles.Active.Render(left+pad) + d.styles.Hint.Render(right)
	}
	return left + pad + right
}

// scroll returns the slice of body that fits in height lines and keeps the
// active row, with its section header where possible, in view
func (d *Dropdown) scroll(body []line, height int) []line {
	if len(body) <= height {
		d.offset = 0
		return body
	}
	if active, ok := d.nav.State().Active(); ok {
		at := 0
		for i, l := range body {
			if l.row == active {
				at = i
				break
			}
		}
		top := at
		if top > 0 && body[top-1].row < 0 {
			top--
		}
		if top < d.offset {
			d.offset = top
		}
		if at >= d.offset+height {
			d.offset = at - height + 1
		}
	}
	d.offset = min(max(d.offset, 0), len(body)-height)
	return body[d.offset : d.offset+height]
}

func fit(s string, width int) string {
	return ansi.Truncate(s, width, "")
}
