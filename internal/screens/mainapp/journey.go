package mainapp

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Simi-mac/educafin/internal/journey"
	"github.com/Simi-mac/educafin/internal/ui/components"
	"github.com/Simi-mac/educafin/internal/ui/theme"
)

const diaryCTA = "Começar a Registrar Meus Gastos"

func (s *MainAppScreen) updateJourney(kmsg tea.KeyPressMsg) tea.Cmd {
	switch kmsg.String() {
	case "up", "k":
		s.journeyOffset--
	case "down", "j":
		s.journeyOffset++
	case "pgup":
		s.journeyOffset -= 10
	case "pgdown":
		s.journeyOffset += 10
	case "enter":
		if s.env.Journey.ShowDiaryPrompt(s.diaryEmpty()) {
			return s.setView(journey.ViewDiary)
		}
	}
	return nil
}

func (s *MainAppScreen) viewJourney(width, height int) string {
	cw := components.ContentWidth(width)
	j := s.env.Journey
	data := j.Onboarding()
	if data == nil {
		return ""
	}

	var b strings.Builder
	if track, ok := j.Track(); ok {
		b.WriteString(theme.Title.Render(track.Name()))
		b.WriteString("\n\n")
	}
	b.WriteString(components.Card(components.Markdown(data.WelcomeMessage, cw-4), cw))
	b.WriteString("\n\n")

	steps := make([]components.Step, len(data.TrackSteps))
	for i, st := range data.TrackSteps {
		steps[i] = components.Step{Title: st.Title, Description: st.Description}
	}
	b.WriteString(components.TrackProgress(steps, cw))

	if j.ShowDiaryPrompt(s.diaryEmpty()) {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render("Seu primeiro passo é conhecer para onde vai o seu dinheiro."))
		b.WriteString("\n\n")
		b.WriteString(components.NewButton(diaryCTA, true, nil).View())
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, window(b.String(), height, &s.journeyOffset))
}
