package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Simi-mac/educafin/internal/ui/theme"
)

// Step is one entry of a learning track.
type Step struct {
	Title       string
	Description string
}

// TrackProgress renders the steps of a track with the first one marked as
// current and the rest locked.
func TrackProgress(steps []Step, width int) string {
	if len(steps) == 0 {
		return ""
	}
	current := lipgloss.NewStyle().Foreground(theme.Text).Background(theme.Primary).Bold(true)
	locked := lipgloss.NewStyle().Foreground(theme.TextDim)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim).Width(max(width-6, 10))

	var b strings.Builder
	b.WriteString(theme.Heading.Render("Sua Trilha de Aprendizado"))
	b.WriteString("\n")
	for i, s := range steps {
		b.WriteString("\n")
		if i == 0 {
			b.WriteString(current.Render(fmt.Sprintf(" ⚡ %d ", i+1)))
			b.WriteString(" " + theme.Heading.Render(s.Title))
		} else {
			b.WriteString(locked.Render(fmt.Sprintf(" 🔒 %d ", i+1)))
			b.WriteString(" " + theme.Body.Render(s.Title))
		}
		b.WriteString("\n")
		for _, line := range strings.Split(desc.Render(s.Description), "\n") {
			b.WriteString("      " + line + "\n")
		}
	}
	return b.String()
}
