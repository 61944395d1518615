package onboarding

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/Simi-mac/educafin/internal/coach"
	"github.com/Simi-mac/educafin/internal/screen"
	"github.com/Simi-mac/educafin/internal/ui/components"
	"github.com/Simi-mac/educafin/internal/ui/layout"
	"github.com/Simi-mac/educafin/internal/ui/theme"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerTickMsg is sent at short intervals to animate the loading spinner.
type spinnerTickMsg time.Time

// OnboardingScreen waits for the personalized track. On failure it shows
// what went wrong and lets the user try again.
type OnboardingScreen struct {
	env     *screen.Env
	frame   int
	ticking bool
}

var _ screen.Screen = (*OnboardingScreen)(nil)
var _ screen.KeyHintProvider = (*OnboardingScreen)(nil)

// New creates the onboarding screen.
func New(env *screen.Env) *OnboardingScreen {
	return &OnboardingScreen{env: env}
}

func (s *OnboardingScreen) Init() tea.Cmd {
	if s.env.Journey.OnboardingPending() {
		return s.startTicking()
	}
	return nil
}

func (s *OnboardingScreen) Title() string {
	return "Sua Trilha"
}

func (s *OnboardingScreen) KeyHints() []layout.KeyHint {
	if s.env.Journey.OnboardingPending() {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Sair"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Tentar novamente"},
		{Key: "Ctrl+R", Description: "Refazer questionário"},
	}
}

func (s *OnboardingScreen) startTicking() tea.Cmd {
	if s.ticking {
		return nil
	}
	s.ticking = true
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !s.env.Journey.OnboardingPending() {
			s.ticking = false
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, tick()

	case tea.KeyPressMsg:
		if msg.String() == "enter" && !s.env.Journey.OnboardingPending() {
			return s, s.retry()
		}
	}
	return s, nil
}

func (s *OnboardingScreen) retry() tea.Cmd {
	t, err := s.env.Journey.BeginOnboarding()
	if err != nil {
		if s.env.Logger != nil {
			s.env.Logger.Error("retry onboarding", zap.Error(err))
		}
		return nil
	}
	return tea.Batch(s.env.RequestOnboarding(t), s.startTicking())
}

func (s *OnboardingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	j := s.env.Journey
	track, _ := j.Track()

	var b strings.Builder
	b.WriteString(theme.Title.Render(track.Name()))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(layout.Wrap(track.Journey(), cw-4)))
	b.WriteString("\n\n")

	switch {
	case j.OnboardingPending():
		spin := lipgloss.NewStyle().Foreground(theme.Primary).Render(spinnerFrames[s.frame])
		b.WriteString(spin + " " + theme.Body.Render("Criando sua trilha personalizada..."))
		b.WriteString("\n\n")
		for i, title := range track.StepTitles() {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d. %s", i+1, title)))
			b.WriteString("\n")
		}

	case j.Err() != nil:
		b.WriteString(theme.ErrorText.Render(layout.Wrap(coach.UserMessage(j.Err()), cw-4)))
		b.WriteString("\n\n")
		b.WriteString(components.NewButton("Tentar novamente", true, nil).View())

	default:
		b.WriteString(theme.Body.Render(layout.Wrap("Vamos montar sua trilha personalizada com base no seu diagnóstico.", cw-4)))
		b.WriteString("\n\n")
		b.WriteString(components.NewButton("Gerar minha trilha", true, nil).View())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(b.String(), cw))
}
