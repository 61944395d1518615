package transcript

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Simi-mac/educafin/internal/router"
	"github.com/Simi-mac/educafin/internal/screen"
	"github.com/Simi-mac/educafin/internal/ui/components"
	"github.com/Simi-mac/educafin/internal/ui/layout"
	"github.com/Simi-mac/educafin/internal/ui/theme"
)

// TranscriptScreen shows the plain-text copy of the user's answers.
type TranscriptScreen struct {
	text   string
	offset int
}

var _ screen.Screen = (*TranscriptScreen)(nil)
var _ screen.KeyHintProvider = (*TranscriptScreen)(nil)

// New creates a transcript screen for text.
func New(text string) *TranscriptScreen {
	return &TranscriptScreen{text: text}
}

func (s *TranscriptScreen) Init() tea.Cmd {
	return nil
}

func (s *TranscriptScreen) Title() string {
	return "Minhas Respostas"
}

func (s *TranscriptScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Rolar"},
		{Key: "Esc", Description: "Voltar"},
	}
}

func (s *TranscriptScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	case "pgdown", "space":
		s.offset += 10
	case "pgup":
		s.offset = max(s.offset-10, 0)
	case "q", "enter":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *TranscriptScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	lines := strings.Split(layout.Wrap(strings.TrimRight(s.text, "\n"), cw-4), "\n")

	// Two lines for the card border.
	rows := max(height-2, 1)
	s.offset = min(s.offset, max(len(lines)-rows, 0))
	end := min(s.offset+rows, len(lines))

	body := theme.Body.Render(strings.Join(lines[s.offset:end], "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(body, cw))
}
