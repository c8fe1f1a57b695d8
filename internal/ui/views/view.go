package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"unibooks/internal/domain"
	"unibooks/internal/ui/state"
)

// searchBarMaxWidth caps the search bar on wide terminals
const searchBarMaxWidth = 72

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Page          state.Page
	Selected      *domain.SearchItem
	Recent        []domain.SearchItem
	Counts        []CategoryCount
	CatalogName   string
	ItemCount     int
	StatusMessage string
	StatusIsError bool
	Placeholder   string
	SearchHint    string
	HelpModel     help.Model
	HelpKeys      help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles         *Styles
	itemRender     *ItemRenderer
	categoryRender *CategoryRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:         styles,
		itemRender:     NewItemRenderer(styles),
		categoryRender: NewCategoryRenderer(styles),
	}
}

// SearchBarRect is where the search bar is drawn for a terminal width.
// The search overlay anchors to it.
func (r *Renderer) SearchBarRect(width int) domain.Rect {
	main := r.styles.Main
	inner := max(width-main.GetHorizontalPadding(), 1)
	return domain.Rect{
		X:      main.GetPaddingLeft(),
		Y:      main.GetPaddingTop() + 2, // title line and a blank line
		Width:  min(inner, searchBarMaxWidth),
		Height: r.styles.SearchBar.GetVerticalFrameSize() + 1,
	}
}

// Render produces the complete page shown behind the overlay
func (r *Renderer) Render(s ViewState) string {
	inner := max(s.Width-r.styles.Main.GetHorizontalPadding(), 1)

	content := &strings.Builder{}
	content.WriteString(r.renderTitle(s, inner))
	content.WriteString("\n\n")
	content.WriteString(r.renderSearchBar(s))
	content.WriteString("\n\n")

	if s.Page == state.PageDetail && s.Selected != nil {
		content.WriteString(r.itemRender.RenderDetail(*s.Selected, min(inner, searchBarMaxWidth)))
		content.WriteString("\n")
		content.WriteString(r.styles.Dim.Render("esc back · / search again"))
	} else {
		content.WriteString(r.renderLibrary(s))
	}

	status := ""
	if s.StatusMessage != "" {
		style := r.styles.Status
		if s.StatusIsError {
			style = r.styles.StatusError
		}
		status = style.Render(s.StatusMessage)
	}
	footer := status + "\n" + r.styles.Help.Render(s.HelpModel.View(s.HelpKeys))

	// Push the footer to the bottom
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := s.Height - r.styles.Main.GetVerticalPadding()
	if padding := availableLines - currentLines - 2; padding > 0 {
		content.WriteString(strings.Repeat("\n", padding))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	lines := strings.Split(content.String(), "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, inner, "…")
	}
	return r.styles.Main.MaxHeight(s.Height).Render(strings.Join(lines, "\n"))
}

func (r *Renderer) renderTitle(s ViewState, width int) string {
	logo := r.styles.Title.Render("University Books")
	name := s.CatalogName
	if name == "" {
		name = "sample catalog"
	}
	right := r.styles.Dim.Render(fmt.Sprintf("%s · %d items", name, s.ItemCount))

	padding := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		return fmt.Sprintf("%s  %s", logo, right)
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderSearchBar(s ViewState) string {
	bar := r.SearchBarRect(s.Width)
	style := r.styles.SearchBar
	textWidth := max(bar.Width-style.GetHorizontalFrameSize(), 1)

	left := r.styles.SearchIcon.Render("⌕") + " " + r.styles.Dim.Render(s.Placeholder)
	right := r.styles.Dim.Render(s.SearchHint)
	gap := textWidth - lipgloss.Width(left) - lipgloss.Width(right)
	line := left
	if gap >= 1 {
		line += strings.Repeat(" ", gap) + right
	}
	line = ansi.Truncate(line, textWidth, "…")

	return style.Width(bar.Width - style.GetHorizontalBorderSize()).Render(line)
}

func (r *Renderer) renderLibrary(s ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Section.Render("Catalog"))
	b.WriteString("\n")
	b.WriteString(r.categoryRender.RenderSummary(s.Counts))
	b.WriteString("\n\n")
	b.WriteString(r.styles.Section.Render("Recently opened"))
	b.WriteString("\n")
	if len(s.Recent) == 0 {
		b.WriteString(r.styles.Dim.Render("  Nothing opened yet. Press / to search."))
		return b.String()
	}
	for i, item := range s.Recent {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.itemRender.RenderLine(item))
	}
	return b.String()
}
