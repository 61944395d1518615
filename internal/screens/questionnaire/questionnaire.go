package questionnaire

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/Simi-mac/educafin/internal/assessment"
	"github.com/Simi-mac/educafin/internal/screen"
	"github.com/Simi-mac/educafin/internal/ui/components"
	"github.com/Simi-mac/educafin/internal/ui/layout"
	"github.com/Simi-mac/educafin/internal/ui/theme"
)

// Intro opens the questionnaire.
const Intro = "Para começar, preciso entender um pouco sobre sua vida financeira. " +
	"Responda com sinceridade: não existem respostas certas ou erradas."

const goalPlaceholder = "Ex: Comprar uma casa, quitar dívidas, aprender a investir..."

type phase int

const (
	phaseProfile phase = iota
	phaseQuestions
	phaseGoal
)

const (
	fieldName = iota
	fieldEmail
)

// QuestionnaireScreen collects the profile, one answer per question and
// the user's goal, then submits the assessment.
type QuestionnaireScreen struct {
	env       *screen.Env
	questions *assessment.QuestionSet

	phase   phase
	name    components.TextInput
	email   components.TextInput
	field   int
	index   int
	choice  components.MultiChoice
	answers assessment.AnswerMap
	goal    components.TextInput
	errMsg  string
}

var _ screen.Screen = (*QuestionnaireScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionnaireScreen)(nil)

// New creates the questionnaire for env. The embedded question set is
// used when env has none.
func New(env *screen.Env) *QuestionnaireScreen {
	qs := env.Questions
	if qs == nil {
		qs = assessment.Default()
	}
	s := &QuestionnaireScreen{
		env:       env,
		questions: qs,
		name:      components.NewTextInput("Qual é o seu nome?", "Seu nome", 80),
		email:     components.NewTextInput("E-mail (opcional)", "voce@exemplo.com", 120),
		goal:      components.NewTextInput(assessment.GoalPrompt, goalPlaceholder, 500),
		answers:   make(assessment.AnswerMap),
	}
	s.name.Focus()
	return s
}

func (s *QuestionnaireScreen) Init() tea.Cmd {
	return s.name.Focus()
}

func (s *QuestionnaireScreen) Title() string {
	return "Questionário"
}

func (s *QuestionnaireScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuestions:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Escolher"},
			{Key: "Enter", Description: "Responder"},
			{Key: "←", Description: "Voltar"},
		}
	case phaseGoal:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Enviar"},
			{Key: "Shift+Tab", Description: "Voltar"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Próximo campo"},
		{Key: "Enter", Description: "Continuar"},
	}
}

// Answers returns the answers given so far.
func (s *QuestionnaireScreen) Answers() assessment.AnswerMap {
	out := make(assessment.AnswerMap, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

func (s *QuestionnaireScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, s.updateFocused(msg)
	}

	switch s.phase {
	case phaseProfile:
		return s, s.updateProfile(kmsg)
	case phaseQuestions:
		return s, s.updateQuestion(kmsg)
	case phaseGoal:
		return s, s.updateGoal(kmsg)
	}
	return s, nil
}

// updateFocused forwards non-key messages, such as cursor blinks, to the
// focused input.
func (s *QuestionnaireScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case s.phase == phaseGoal:
		s.goal, cmd = s.goal.Update(msg)
	case s.phase == phaseProfile && s.field == fieldEmail:
		s.email, cmd = s.email.Update(msg)
	case s.phase == phaseProfile:
		s.name, cmd = s.name.Update(msg)
	}
	return cmd
}

func (s *QuestionnaireScreen) updateProfile(kmsg tea.KeyPressMsg) tea.Cmd {
	switch kmsg.String() {
	case "tab", "down", "shift+tab", "up":
		return s.toggleField()
	case "enter":
		if s.field == fieldName {
			return s.toggleField()
		}
		p := assessment.NewProfile(s.name.Value(), s.email.Value(), "")
		if err := p.Validate(); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.errMsg = ""
		s.name.Blur()
		s.email.Blur()
		s.phase = phaseQuestions
		s.showQuestion(0)
		return nil
	}
	s.errMsg = ""
	return s.updateFocused(kmsg)
}

func (s *QuestionnaireScreen) toggleField() tea.Cmd {
	if s.field == fieldName {
		s.field = fieldEmail
		s.name.Blur()
		return s.email.Focus()
	}
	s.field = fieldName
	s.email.Blur()
	return s.name.Focus()
}

func (s *QuestionnaireScreen) showQuestion(i int) {
	q := s.questions.Questions()[i]
	s.index = i
	s.choice = components.NewMultiChoice(q.Text, q.Options, s.answers[q.ID])
}

func (s *QuestionnaireScreen) updateQuestion(kmsg tea.KeyPressMsg) tea.Cmd {
	key := kmsg.String()
	switch key {
	case "left", "shift+tab":
		if s.index == 0 {
			s.phase = phaseProfile
			s.field = fieldName
			return s.name.Focus()
		}
		s.showQuestion(s.index - 1)
		return nil
	case "right", "tab":
		if s.choice.Answered() {
			return s.advance()
		}
		return nil
	}

	s.choice, _ = s.choice.Update(kmsg)
	picked := key == "enter" || key == "space" || (len(key) == 1 && key[0] >= '1' && key[0] <= '9')
	if picked && s.choice.Answered() {
		q := s.questions.Questions()[s.index]
		s.answers[q.ID] = s.choice.Answer()
		s.errMsg = ""
		return s.advance()
	}
	return nil
}

func (s *QuestionnaireScreen) advance() tea.Cmd {
	if s.index+1 < s.questions.Len() {
		s.showQuestion(s.index + 1)
		return nil
	}
	s.phase = phaseGoal
	return s.goal.Focus()
}

func (s *QuestionnaireScreen) updateGoal(kmsg tea.KeyPressMsg) tea.Cmd {
	switch kmsg.String() {
	case "shift+tab":
		s.goal.Blur()
		s.phase = phaseQuestions
		s.showQuestion(s.questions.Len() - 1)
		return nil
	case "enter":
		return s.submit()
	}
	s.errMsg = ""
	return s.updateFocused(kmsg)
}

func (s *QuestionnaireScreen) submit() tea.Cmd {
	p := assessment.NewProfile(s.name.Value(), s.email.Value(), s.goal.Value())
	if err := p.Validate(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if missing := assessment.Missing(s.questions, s.answers); len(missing) > 0 {
		s.errMsg = "Responda todas as perguntas antes de enviar."
		for i, q := range s.questions.Questions() {
			if q.ID == missing[0] {
				s.goal.Blur()
				s.phase = phaseQuestions
				s.showQuestion(i)
				break
			}
		}
		return nil
	}

	a := assessment.Score(s.questions, s.answers)
	if err := s.env.Journey.Submit(p, s.Answers(), &a); err != nil {
		s.errMsg = "Não foi possível enviar suas respostas."
		if s.env.Logger != nil {
			s.env.Logger.Error("submit assessment", zap.Error(err))
		}
		return nil
	}
	if s.env.Logger != nil {
		s.env.Logger.Info("assessment submitted",
			zap.Float64("score", a.Score),
			zap.Int("feedback", len(a.Feedback)))
	}
	return screen.StageChanged
}

func (s *QuestionnaireScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.phase {
	case phaseProfile:
		body = s.viewProfile(cw)
	case phaseQuestions:
		body = s.viewQuestion(cw)
	case phaseGoal:
		body = s.viewGoal(cw)
	}
	if s.errMsg != "" {
		body += "\n\n" + theme.ErrorText.Render(s.errMsg)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(body, cw))
}

func (s *QuestionnaireScreen) viewProfile(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Vamos nos conhecer"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(layout.Wrap(Intro, cw-4)))
	b.WriteString("\n\n")
	b.WriteString(s.name.View())
	b.WriteString("\n\n")
	b.WriteString(s.email.View())
	return b.String()
}

func (s *QuestionnaireScreen) viewQuestion(cw int) string {
	q := s.questions.Questions()[s.index]

	var b strings.Builder
	if sec, ok := s.questions.SectionOf(q.ID); ok {
		b.WriteString(theme.Subtitle.Render(sec.Title))
		b.WriteString("\n\n")
	}

	bar := components.NewProgressBar("", float64(s.index)/float64(s.questions.Len()), false, cw-4)
	bar.Suffix = fmt.Sprintf("Pergunta %d de %d", s.index+1, s.questions.Len())
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())
	return b.String()
}

func (s *QuestionnaireScreen) viewGoal(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Quase lá!"))
	b.WriteString("\n\n")
	b.WriteString(s.goal.View())
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("Enviar Respostas e Iniciar Minha Jornada", true, nil).View())
	return b.String()
}
