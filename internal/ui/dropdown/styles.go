package dropdown

import (
	"github.com/charmbracelet/lipgloss"

	"unibooks/internal/domain"
)

// Styles contains the style definitions for the dropdown panel
type Styles struct {
	Frame       lipgloss.Style
	Prompt      lipgloss.Style
	Placeholder lipgloss.Style
	Separator   lipgloss.Style
	Header      lipgloss.Style
	Count       lipgloss.Style
	Glyph       lipgloss.Style
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Active      lipgloss.Style
	Hint        lipgloss.Style
	Empty       lipgloss.Style
	NoResults   lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Separator:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Header:      lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Count:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Glyph:       lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Title:       lipgloss.NewStyle(),
		Subtitle:    lipgloss.NewStyle().Faint(true),
		Active: lipgloss.NewStyle().
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("255")),
		Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")),
		Empty:     lipgloss.NewStyle().Faint(true),
		NoResults: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:      lipgloss.NewStyle().Faint(true),
	}
}

// Badge returns the style for a badge of the given color
func (s *Styles) Badge(c domain.BadgeColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(BadgeColorCode(c)))
}

// BadgeColorCode maps a badge color to a terminal color
func BadgeColorCode(c domain.BadgeColor) string {
	switch c {
	case domain.BadgePrimary:
		return "33" // blue
	case domain.BadgeSecondary:
		return "99" // purple
	case domain.BadgeSuccess:
		return "78" // green
	case domain.BadgeWarning:
		return "214" // yellow
	case domain.BadgeDanger:
		return "203" // red
	default:
		return "245" // gray
	}
}

// Glyph returns the single-cell symbol drawn for an icon name
func Glyph(icon string) string {
	switch icon {
	case "book-outline", "library-outline":
		return "▣"
	case "document-text-outline":
		return "≡"
	case "document-outline":
		return "▤"
	case "person-outline", "people-outline":
		return "◉"
	default:
		return "•"
	}
}
