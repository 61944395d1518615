package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Simi-mac/educafin/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar. Percent is a fraction in
// [0, 1].
type ProgressBar struct {
	Label       string
	LabelWidth  int // pad the label so stacked bars line up
	Percent     float64
	ShowPercent bool
	Suffix      string // shown after the bar instead of the percentage
	Width       int
	Color       color.Color
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Color:       theme.Secondary,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		label := p.Label
		if pad := p.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}

	tail := p.Suffix
	if tail == "" && p.ShowPercent {
		tail = fmt.Sprintf("%d%%", int(p.Percent*100+0.5))
	}
	tailWidth := 0
	if tail != "" {
		tailWidth = lipgloss.Width(tail) + 2
	}

	barWidth := max(p.Width-lipgloss.Width(result)-tailWidth, 4)

	filled := min(max(int(float64(barWidth)*p.Percent+0.5), 0), barWidth)
	empty := barWidth - filled

	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}
	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))

	if tail != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + tail)
	}

	return result
}
