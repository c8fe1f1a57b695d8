package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"unibooks/internal/domain"
	"unibooks/internal/ui/dropdown"
)

// ItemRenderer handles rendering of catalog items
type ItemRenderer struct {
	styles *Styles
}

// NewItemRenderer creates a new item renderer
func NewItemRenderer(styles *Styles) *ItemRenderer {
	return &ItemRenderer{
		styles: styles,
	}
}

// RenderLine renders an item on one line: glyph, title, subtitle and badge
func (r *ItemRenderer) RenderLine(item domain.SearchItem) string {
	parts := []string{dropdown.Glyph(item.Icon), item.Title}
	if item.Subtitle != "" {
		parts = append(parts, r.styles.Dim.Render(item.Subtitle))
	}
	if item.Badge != "" {
		parts = append(parts, r.badge(item))
	}
	return "  " + strings.Join(parts, " ")
}

// RenderDetail renders the detail page box for an item
func (r *ItemRenderer) RenderDetail(item domain.SearchItem, width int) string {
	cfg := domain.ConfigFor(item.Category)

	var b strings.Builder
	title := r.styles.Highlight.Render(dropdown.Glyph(item.Icon) + " " + item.Title)
	if item.Badge != "" {
		title += "  " + r.badge(item)
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(r.styles.DetailLabel.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	field("Category", cfg.Label)
	field("Subtitle", item.Subtitle)
	field("Details", item.Metadata)
	field("ID", item.ID)
	if item.Data != nil {
		field("Data", fmt.Sprint(item.Data))
	}

	box := r.styles.DetailBox
	if width > 0 {
		box = box.Width(max(width-box.GetHorizontalBorderSize(), 20))
	}
	return box.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (r *ItemRenderer) badge(item domain.SearchItem) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(dropdown.BadgeColorCode(item.BadgeColor)))
	return style.Render("[" + item.Badge + "]")
}
