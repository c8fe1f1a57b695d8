package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Library", []helpEntry{
		{"/, ctrl+k", "Open search"},
		{"click", "Open search from the search bar"},
		{"esc", "Back to the library from an item"},
		{"?", "Show this help"},
		{"q, ctrl+c", "Quit"},
	}},
	{"Search", []helpEntry{
		{"type", "Filter books, chapters, documents and users"},
		{"↑/↓", "Move through results (wraps around)"},
		{"home/end", "First / last result"},
		{"tab", "Switch between query and result list"},
		{"a-z, 0-9", "Jump to a result by its first letters (in the list)"},
		{"backspace", "Back to the query (in the list)"},
		{"enter, click", "Open the highlighted result"},
		{"esc", "Close search"},
	}},
}

// RenderHelpContent renders the help information with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("University Books Help"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			help.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render(e.keys), descStyle.Render(e.desc)))
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render("  Press q to close this pager"))
	return help.String()
}

// pagerCommand runs ov on a string while Bubble Tea has released the terminal
type pagerCommand struct {
	content string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (c *pagerCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *pagerCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *pagerCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run shows the content in ov until the user quits it
func (c *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return fmt.Errorf("open pager: %w", err)
	}

	// Do not write on exit, it would mess with our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	if err := root.Run(); err != nil {
		return fmt.Errorf("run pager: %w", err)
	}
	return nil
}

// showHelpInPager hands the terminal to ov and reports back with helpPagerMsg
func showHelpInPager(content string) tea.Cmd {
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return helpPagerMsg{err: err}
	})
}
