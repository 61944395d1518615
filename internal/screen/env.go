package screen

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/Simi-mac/educafin/internal/assessment"
	"github.com/Simi-mac/educafin/internal/coach"
	"github.com/Simi-mac/educafin/internal/diary"
	"github.com/Simi-mac/educafin/internal/journey"
	"github.com/Simi-mac/educafin/internal/llm"
)

// Env is what every screen shares: the journey being driven and the
// services it talks to. The journey is only touched from Update.
type Env struct {
	Journey   *journey.Journey
	Questions *assessment.QuestionSet
	Coach     *coach.Service
	Diary     *diary.Diary
	Logger    *zap.Logger

	// RequestTimeout bounds a single generation request. Zero means none.
	RequestTimeout time.Duration
}

// StageChangedMsg tells the app that the journey moved to another stage
// and the screen for it should be shown.
type StageChangedMsg struct{}

// SaveMsg asks the app to persist the journey.
type SaveMsg struct{}

// OnboardingResultMsg carries a finished onboarding request.
type OnboardingResultMsg struct {
	Ticket journey.Ticket
	Data   *coach.OnboardingData
	Err    error
}

// AdviceResultMsg carries a finished advice request.
type AdviceResultMsg struct {
	Ticket journey.Ticket
	Text   string
	Err    error
}

// StageChanged is a command emitting StageChangedMsg.
func StageChanged() tea.Msg { return StageChangedMsg{} }

// Save is a command emitting SaveMsg.
func Save() tea.Msg { return SaveMsg{} }

func (e *Env) requestContext() (context.Context, context.CancelFunc) {
	if e.RequestTimeout > 0 {
		return context.WithTimeout(context.Background(), e.RequestTimeout)
	}
	return context.WithCancel(context.Background())
}

// RequestOnboarding generates the track for the submitted assessment.
// The inputs are captured now so the command does not read the journey.
func (e *Env) RequestOnboarding(t journey.Ticket) tea.Cmd {
	a := e.Journey.Assessment()
	if a == nil {
		return nil
	}
	score := a.Score
	p := e.Journey.Profile()
	svc := e.Coach
	return func() tea.Msg {
		ctx, cancel := e.requestContext()
		defer cancel()
		data, err := svc.RequestOnboarding(ctx, score, p.Name, p.Goal)
		return OnboardingResultMsg{Ticket: t, Data: data, Err: err}
	}
}

// RequestAdvice asks the assistant about prompt with the earlier turns
// as context.
func (e *Env) RequestAdvice(t journey.Ticket, history []llm.Message, prompt string) tea.Cmd {
	svc := e.Coach
	return func() tea.Msg {
		ctx, cancel := e.requestContext()
		defer cancel()
		text, err := svc.RequestAdviceWithHistory(ctx, history, prompt)
		return AdviceResultMsg{Ticket: t, Text: text, Err: err}
	}
}
