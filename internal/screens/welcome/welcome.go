package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Simi-mac/educafin/internal/router"
	"github.com/Simi-mac/educafin/internal/screen"
	"github.com/Simi-mac/educafin/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 400 * time.Millisecond
	phase2End    = 1200 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const Tagline = "Sua jornada para a saúde financeira começa aqui."

const coinArt = `    ╭─────────╮
  ╭─┤  ╭───╮  ├─╮
  │ │  │ $ │  │ │
  ╰─┤  ╰───╯  ├─╯
    ╰─────────╯`

// glint frames cycle around the coin
var glintFrames = []string{"✦", "✧"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation, then hands over to the screen of
// the user's current stage.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Warning).Render(coinArt)

	if w.elapsed >= phase1End {
		glint := glintFrames[w.tickCount%len(glintFrames)]
		a := lipgloss.NewStyle().Foreground(theme.Accent).Render(glint)
		b := lipgloss.NewStyle().Foreground(theme.Secondary).Render(glint)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 4 {
			lines[0] = a + "  " + lines[0] + "  " + b
			lines[2] = b + "  " + lines[2] + "  " + a
			lines[4] = a + "  " + lines[4] + "  " + b
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
			"",
			theme.Hint.Render("pressione qualquer tecla para continuar"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
