package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/Simi-mac/educafin/internal/assessment"
	"github.com/Simi-mac/educafin/internal/router"
	"github.com/Simi-mac/educafin/internal/screen"
	"github.com/Simi-mac/educafin/internal/screens/transcript"
	"github.com/Simi-mac/educafin/internal/ui/components"
	"github.com/Simi-mac/educafin/internal/ui/layout"
	"github.com/Simi-mac/educafin/internal/ui/theme"
)

// GuideURL is the practical guide offered next to the diagnosis.
const GuideURL = "https://drive.google.com/drive/folders/1JXXMNuoni1erGE-pLw9JIP2qD69XfwgZ?usp=drive_link"

const guideText = "Transforme sua relação com o dinheiro através de hábitos simples e " +
	"sustentáveis. Este guia foi criado especialmente para quem está dando os " +
	"primeiros passos rumo ao controle financeiro."

// InsightCount is how many feedback items the diagnosis highlights.
const InsightCount = 3

// ResultsScreen shows the diagnosis of the submitted assessment.
type ResultsScreen struct {
	env    *screen.Env
	offset int
	errMsg string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen.
func New(env *screen.Env) *ResultsScreen {
	return &ResultsScreen{env: env}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Diagnóstico"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continuar"},
		{Key: "t", Description: "Minhas respostas"},
		{Key: "↑↓", Description: "Rolar"},
		{Key: "Ctrl+R", Description: "Refazer"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "enter":
		return s, s.proceed()
	case "t":
		j := s.env.Journey
		a := j.Assessment()
		if a == nil {
			return s, nil
		}
		text := assessment.Transcript(s.questions(), j.Profile(), j.Answers(), *a)
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: transcript.New(text)}
		}
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	}
	return s, nil
}

func (s *ResultsScreen) questions() *assessment.QuestionSet {
	if s.env.Questions != nil {
		return s.env.Questions
	}
	return assessment.Default()
}

// proceed starts the onboarding request and moves to its stage.
func (s *ResultsScreen) proceed() tea.Cmd {
	t, err := s.env.Journey.BeginOnboarding()
	if err != nil {
		s.errMsg = "Não foi possível continuar agora."
		if s.env.Logger != nil {
			s.env.Logger.Error("begin onboarding", zap.Error(err))
		}
		return nil
	}
	return tea.Batch(screen.StageChanged, s.env.RequestOnboarding(t))
}

func (s *ResultsScreen) View(width, height int) string {
	a := s.env.Journey.Assessment()
	if a == nil {
		return ""
	}
	cw := components.ContentWidth(width)
	level := assessment.LevelFor(a.Score)
	levelStyle := lipgloss.NewStyle().Foreground(theme.LevelColor(level.Label)).Bold(true)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Seu Diagnóstico Financeiro"))
	b.WriteString("\n\n")

	var card strings.Builder
	card.WriteString(levelStyle.Render(level.Emoji + "  " + level.Label))
	card.WriteString("\n\n")
	card.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).
		Render(fmt.Sprintf("%d%%", assessment.RoundedScore(a.Score))))
	card.WriteString("  ")
	card.WriteString(theme.Heading.Render(level.Title))
	card.WriteString("\n\n")
	bar := components.NewProgressBar("", a.Score/100, false, cw-6)
	bar.Color = theme.LevelColor(level.Label)
	card.WriteString(bar.View())
	card.WriteString("\n\n")
	card.WriteString(theme.Body.Render(layout.Wrap(level.Message, cw-6)))
	b.WriteString(components.Card(card.String(), cw))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("Principais Insights para Você:"))
	b.WriteString("\n")
	insights := assessment.TopInsights(*a, InsightCount)
	if len(insights) == 0 {
		b.WriteString(theme.Hint.Render("  Você atingiu a pontuação máxima em todas as perguntas."))
		b.WriteString("\n")
	}
	for _, in := range insights {
		b.WriteString("\n")
		lines := strings.Split(layout.Wrap(in, cw-4), "\n")
		for i, line := range lines {
			prefix := "   "
			if i == 0 {
				prefix = lipgloss.NewStyle().Foreground(theme.Accent).Render(" ⚡ ")
			}
			b.WriteString(prefix + theme.Body.Render(line) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(components.NewButton(level.Action+" →", true, nil).View())
	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render(s.errMsg))
	}
	b.WriteString("\n\n")

	guide := theme.Heading.Render("Seu Próximo Passo: Um Guia Prático") + "\n\n" +
		theme.Body.Render(layout.Wrap(guideText, cw-6)) + "\n\n" +
		theme.Hint.Render("Baixar Guia em PDF: ") + "\n" +
		lipgloss.NewStyle().Foreground(theme.Primary).Underline(true).Render(GuideURL)
	b.WriteString(components.AccentCard(guide, cw))

	return scroll(b.String(), width, height, &s.offset)
}

// scroll centers content horizontally and shows the window starting at
// offset, clamping offset to the content.
func scroll(content string, width, height int, offset *int) string {
	lines := strings.Split(content, "\n")
	maxOffset := max(len(lines)-height, 0)
	*offset = min(*offset, maxOffset)
	end := min(*offset+height, len(lines))
	visible := strings.Join(lines[*offset:end], "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, visible)
}
