package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"unibooks/internal/domain"
	"unibooks/internal/ui/dropdown"
)

// CategoryCount is one line of the catalog summary
type CategoryCount struct {
	Config domain.CategoryConfig
	Count  int
}

// CountByCategory tallies items per category in table order.
// Categories outside the table follow in first-seen order.
func CountByCategory(items []domain.SearchItem) []CategoryCount {
	counts := make(map[domain.Category]int)
	var extra []domain.Category
	known := make(map[domain.Category]bool)
	for _, cfg := range domain.Categories() {
		known[cfg.Key] = true
	}
	for _, item := range items {
		if !known[item.Category] && counts[item.Category] == 0 {
			extra = append(extra, item.Category)
		}
		counts[item.Category]++
	}

	var out []CategoryCount
	for _, cfg := range domain.Categories() {
		out = append(out, CategoryCount{Config: cfg, Count: counts[cfg.Key]})
	}
	for _, c := range extra {
		out = append(out, CategoryCount{Config: domain.ConfigFor(c), Count: counts[c]})
	}
	return out
}

// CategoryRenderer handles rendering of the catalog summary
type CategoryRenderer struct {
	styles *Styles
}

// NewCategoryRenderer creates a new category renderer
func NewCategoryRenderer(styles *Styles) *CategoryRenderer {
	return &CategoryRenderer{
		styles: styles,
	}
}

// RenderSummary renders one line per category with its item count
func (c *CategoryRenderer) RenderSummary(counts []CategoryCount) string {
	labelWidth := 0
	for _, cc := range counts {
		labelWidth = max(labelWidth, lipgloss.Width(cc.Config.Label))
	}

	lines := make([]string, 0, len(counts))
	for _, cc := range counts {
		label := cc.Config.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(cc.Config.Label))
		line := fmt.Sprintf("  %s %s  %d", dropdown.Glyph(cc.Config.Icon), label, cc.Count)
		if cc.Count == 0 {
			line = c.styles.Dim.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
