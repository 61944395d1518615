package questionnaire

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Simi-mac/educafin/internal/assessment"
	"github.com/Simi-mac/educafin/internal/journey"
	"github.com/Simi-mac/educafin/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s *QuestionnaireScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func newScreen() (*QuestionnaireScreen, *screen.Env) {
	env := &screen.Env{Journey: journey.New(), Questions: assessment.Default()}
	return New(env), env
}

func TestProfileRequiresName(t *testing.T) {
	s, _ := newScreen()

	s.Update(specialKey(tea.KeyEnter)) // to e-mail
	s.Update(specialKey(tea.KeyEnter))

	if s.phase != phaseProfile {
		t.Fatalf("phase = %d, want profile", s.phase)
	}
	if !strings.Contains(s.View(100, 40), "informe seu nome") {
		t.Error("expected name validation message")
	}
}

func TestProfileRejectsBadEmail(t *testing.T) {
	s, _ := newScreen()

	typeText(s, "Ana")
	s.Update(specialKey(tea.KeyTab))
	typeText(s, "ana@")
	s.Update(specialKey(tea.KeyEnter))

	if s.phase != phaseProfile {
		t.Fatalf("phase = %d, want profile", s.phase)
	}
	if s.errMsg != "informe um e-mail válido" {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestFullFlowSubmits(t *testing.T) {
	s, env := newScreen()

	typeText(s, "Ana")
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyEnter))
	if s.phase != phaseQuestions {
		t.Fatalf("phase = %d, want questions", s.phase)
	}

	// First option is always full credit.
	for i := 0; i < env.Questions.Len(); i++ {
		s.Update(keyPress('1'))
	}
	if s.phase != phaseGoal {
		t.Fatalf("phase = %d, want goal", s.phase)
	}

	typeText(s, "Quitar dívidas")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command after submit")
	}
	if _, ok := cmd().(screen.StageChangedMsg); !ok {
		t.Fatalf("expected StageChangedMsg, got %T", cmd())
	}

	j := env.Journey
	if j.Stage() != journey.StageResults {
		t.Fatalf("stage = %s, want results", j.Stage())
	}
	if got := j.Assessment().Score; got != 100 {
		t.Errorf("score = %v, want 100", got)
	}
	if p := j.Profile(); p.Name != "Ana" || p.Goal != "Quitar dívidas" {
		t.Errorf("profile = %+v", p)
	}
}

func TestBlankGoalUsesDefault(t *testing.T) {
	s, env := newScreen()

	typeText(s, "Bia")
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyEnter))
	for i := 0; i < env.Questions.Len(); i++ {
		s.Update(keyPress('2'))
	}
	s.Update(specialKey(tea.KeyEnter))

	if got := env.Journey.Profile().Goal; got != assessment.DefaultGoal {
		t.Errorf("goal = %q, want %q", got, assessment.DefaultGoal)
	}
}

func TestBackKeepsAnswers(t *testing.T) {
	s, env := newScreen()

	typeText(s, "Ana")
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyEnter))

	s.Update(keyPress('3'))
	if s.index != 1 {
		t.Fatalf("index = %d, want 1", s.index)
	}
	s.Update(specialKey(tea.KeyLeft))
	if s.index != 0 {
		t.Fatalf("index = %d, want 0", s.index)
	}

	first := env.Questions.Questions()[0]
	if s.choice.Answer() != first.Options[2] {
		t.Errorf("restored answer = %q, want %q", s.choice.Answer(), first.Options[2])
	}

	// Moving the cursor alone does not answer.
	s.Update(specialKey(tea.KeyUp))
	if s.index != 0 {
		t.Errorf("cursor move advanced to %d", s.index)
	}
	if s.Answers()[first.ID] != first.Options[2] {
		t.Errorf("answer changed without confirmation")
	}
}

func TestViewShowsProgress(t *testing.T) {
	s, env := newScreen()

	typeText(s, "Ana")
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyEnter))

	view := s.View(100, 40)
	want := fmt.Sprintf("Pergunta 1 de %d", env.Questions.Len())
	if !strings.Contains(view, want) {
		t.Errorf("view missing %q", want)
	}
	if !strings.Contains(view, "Hábitos Financeiros") {
		t.Error("view missing section title")
	}
}
