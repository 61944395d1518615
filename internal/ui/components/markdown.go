package components

import (
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Simi-mac/educafin/internal/ui/theme"
)

var (
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.+?)\*`)
	bulletRe = regexp.MustCompile(`^\s*[-*]\s+`)
	headRe   = regexp.MustCompile(`^#{1,6}\s+`)
)

// Markdown renders the small markdown subset the assistant writes
// (headings, bold, italics and bullet lists) for the terminal, wrapped to
// width.
func Markdown(text string, width int) string {
	bold := lipgloss.NewStyle().Bold(true)
	italic := lipgloss.NewStyle().Italic(true)

	lines := strings.Split(strings.TrimSpace(text), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if headRe.MatchString(line) {
			out = append(out, theme.Title.Align(lipgloss.Left).Render(headRe.ReplaceAllString(line, "")))
			continue
		}
		indent := ""
		if bulletRe.MatchString(line) {
			line = bulletRe.ReplaceAllString(line, "")
			indent = "  • "
		}
		line = boldRe.ReplaceAllStringFunc(line, func(m string) string {
			return bold.Render(boldRe.FindStringSubmatch(m)[1])
		})
		line = italicRe.ReplaceAllStringFunc(line, func(m string) string {
			return italic.Render(italicRe.FindStringSubmatch(m)[1])
		})
		out = append(out, indent+line)
	}

	rendered := strings.Join(out, "\n")
	if width > 0 {
		rendered = lipgloss.NewStyle().Width(width).Render(rendered)
	}
	return rendered
}

// PlainMarkdown strips the markers Markdown understands, for output that is
// not a terminal.
func PlainMarkdown(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		line = headRe.ReplaceAllString(line, "")
		if bulletRe.MatchString(line) {
			line = "• " + bulletRe.ReplaceAllString(line, "")
		}
		line = boldRe.ReplaceAllString(line, "$1")
		line = italicRe.ReplaceAllString(line, "$1")
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
