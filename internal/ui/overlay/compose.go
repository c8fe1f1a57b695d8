package overlay

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const sgrReset = "\x1b[0m"

// desaturate strips ANSI color/style codes and recolors text dim gray
func desaturate(s string) string {
	lines := strings.Split(s, "\n")
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		lines[i] = gray.Render(ansiRE.ReplaceAllString(line, ""))
	}
	return strings.Join(lines, "\n")
}

// compose splices panel onto background with its top-left corner at (x, y).
// Background cells left and right of the panel are kept as they are.
func compose(background, panel string, x, y, height int) string {
	bgLines := strings.Split(background, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	for i, pLine := range strings.Split(panel, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		line := bgLines[row]
		pw := ansi.StringWidth(pLine)

		left := ansi.Truncate(line, x, "")
		if gap := x - ansi.StringWidth(left); gap > 0 {
			left += strings.Repeat(" ", gap)
		}
		right := ""
		if ansi.StringWidth(line) > x+pw {
			right = ansi.TruncateLeft(line, x+pw, "")
		}
		bgLines[row] = left + sgrReset + pLine + sgrReset + right
	}
	return strings.Join(bgLines, "\n")
}
