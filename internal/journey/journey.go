package journey

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Simi-mac/educafin/internal/assessment"
	"github.com/Simi-mac/educafin/internal/coach"
	"github.com/Simi-mac/educafin/internal/llm"
)

var (
	ErrNoAssessment      = errors.New("journey: no assessment")
	ErrNoOnboarding      = errors.New("journey: no onboarding data")
	ErrInvalidTransition = errors.New("journey: invalid transition")
	ErrStale             = errors.New("journey: stale result")
)

// Role is the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one entry of the assistant conversation.
type ChatMessage struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`

	// Failed marks the apology shown in place of a reply.
	Failed bool `json:"failed,omitempty"`
}

type slot int

const (
	slotOnboarding slot = iota
	slotChat
)

// Ticket identifies an asynchronous request. A result is applied only if
// its ticket is still current when it arrives.
type Ticket struct {
	slot  slot
	epoch uint64
	seq   uint64
}

// Journey is the explicit state machine of the app flow. It is not safe
// for concurrent use; the TUI drives it from its update loop and async
// results come back as messages carrying their Ticket.
type Journey struct {
	stage      Stage
	view       View
	profile    assessment.Profile
	answers    assessment.AnswerMap
	result     *assessment.Assessment
	onboarding *coach.OnboardingData
	chat       []ChatMessage
	lastErr    error

	epoch         uint64
	onboardingSeq uint64
	onboardingOut bool
	chatSeq       uint64
	chatOut       map[uint64]bool

	now func() time.Time
}

// New returns a journey at the questionnaire.
func New() *Journey {
	return &Journey{now: time.Now}
}

// NewWithClock is New with a custom clock for chat timestamps.
func NewWithClock(now func() time.Time) *Journey {
	return &Journey{now: now}
}

func (j *Journey) Stage() Stage { return j.stage }
func (j *Journey) View() View { return j.view }
func (j *Journey) Profile() assessment.Profile { return j.profile }
func (j *Journey) Onboarding() *coach.OnboardingData { return j.onboarding }

// Err is the error of the last failed onboarding attempt, if any.
func (j *Journey) Err() error { return j.lastErr }

// Assessment returns the submitted assessment or nil.
func (j *Journey) Assessment() *assessment.Assessment { return j.result }

// Answers returns a copy of the submitted answers.
func (j *Journey) Answers() assessment.AnswerMap {
	out := make(assessment.AnswerMap, len(j.answers))
	for k, v := range j.answers {
		out[k] = v
	}
	return out
}

// Chat returns a copy of the conversation.
func (j *Journey) Chat() []ChatMessage { return slices.Clone(j.chat) }

// OnboardingPending reports whether an onboarding request is in flight.
func (j *Journey) OnboardingPending() bool { return j.onboardingOut }

// ChatPending reports whether any advice request is in flight.
func (j *Journey) ChatPending() bool { return len(j.chatOut) > 0 }

// Track returns the track of the submitted score.
func (j *Journey) Track() (coach.Track, bool) {
	if j.result == nil {
		return coach.TrackFoundations, false
	}
	return coach.ClassifyTrack(j.result.Score), true
}

// Submit records the questionnaire result and moves to the results stage.
func (j *Journey) Submit(p assessment.Profile, answers assessment.AnswerMap, a *assessment.Assessment) error {
	if j.stage != StageQuestionnaire {
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, j.stage)
	}
	if a == nil {
		return ErrNoAssessment
	}
	res := *a
	res.Feedback = slices.Clone(a.Feedback)

	j.profile = p
	j.answers = make(assessment.AnswerMap, len(answers))
	for k, v := range answers {
		j.answers[k] = v
	}
	j.result = &res
	j.stage = StageResults
	return nil
}

// BeginOnboarding moves to the onboarding stage and issues a ticket for
// the generation request. Calling it again from onboarding retries and
// supersedes the previous ticket.
func (j *Journey) BeginOnboarding() (Ticket, error) {
	if j.stage != StageResults && j.stage != StageOnboarding {
		return Ticket{}, fmt.Errorf("%w: begin onboarding from %s", ErrInvalidTransition, j.stage)
	}
	if j.result == nil {
		return Ticket{}, ErrNoAssessment
	}
	j.stage = StageOnboarding
	j.lastErr = nil
	j.onboardingSeq++
	j.onboardingOut = true
	return Ticket{slot: slotOnboarding, epoch: j.epoch, seq: j.onboardingSeq}, nil
}

func (j *Journey) currentOnboarding(t Ticket) bool {
	return t.slot == slotOnboarding &&
		t.epoch == j.epoch &&
		t.seq == j.onboardingSeq &&
		j.stage == StageOnboarding &&
		j.onboardingOut
}

// CompleteOnboarding applies a generated track and enters the main app.
// The welcome message becomes the first chat message.
func (j *Journey) CompleteOnboarding(t Ticket, data *coach.OnboardingData) error {
	if !j.currentOnboarding(t) {
		return ErrStale
	}
	if data == nil {
		return ErrNoOnboarding
	}
	d := *data
	j.onboarding = &d
	j.onboardingOut = false
	j.lastErr = nil
	j.stage = StageMainApp
	j.view = ViewJourney
	j.chat = []ChatMessage{{Role: RoleModel, Text: d.WelcomeMessage, At: j.now()}}
	return nil
}

// FailOnboarding records a failed attempt. The stage and any earlier
// state are left as they were so the user can retry.
func (j *Journey) FailOnboarding(t Ticket, err error) error {
	if !j.currentOnboarding(t) {
		return ErrStale
	}
	j.onboardingOut = false
	j.lastErr = err
	return nil
}

// Restart returns to the questionnaire and forgets everything but the
// diary, which lives in the store. Results still in flight become stale.
func (j *Journey) Restart() {
	j.epoch++
	j.stage = StageQuestionnaire
	j.view = ViewJourney
	j.profile = assessment.Profile{}
	j.answers = nil
	j.result = nil
	j.onboarding = nil
	j.chat = nil
	j.lastErr = nil
	j.onboardingOut = false
	j.chatOut = nil
}

// SetView switches the main app section.
func (j *Journey) SetView(v View) error {
	if j.stage != StageMainApp {
		return fmt.Errorf("%w: navigate from %s", ErrInvalidTransition, j.stage)
	}
	if _, ok := viewNames[v]; !ok {
		return fmt.Errorf("%w: unknown view %d", ErrInvalidTransition, int(v))
	}
	j.view = v
	return nil
}

// History converts the conversation so far into model messages. It starts
// at the first user turn, since providers expect the user to open, and
// leaves out failed replies.
func (j *Journey) History() []llm.Message {
	out := make([]llm.Message, 0, len(j.chat))
	for _, m := range j.chat {
		if m.Failed || (len(out) == 0 && m.Role != RoleUser) {
			continue
		}
		role := llm.RoleUser
		if m.Role == RoleModel {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Text})
	}
	return out
}

// AppendUser adds the user's question and issues a ticket for the reply.
func (j *Journey) AppendUser(text string) (Ticket, error) {
	if j.stage != StageMainApp {
		return Ticket{}, fmt.Errorf("%w: chat from %s", ErrInvalidTransition, j.stage)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Ticket{}, coach.ErrEmptyPrompt
	}
	j.chat = append(j.chat, ChatMessage{Role: RoleUser, Text: text, At: j.now()})
	j.chatSeq++
	if j.chatOut == nil {
		j.chatOut = make(map[uint64]bool)
	}
	j.chatOut[j.chatSeq] = true
	return Ticket{slot: slotChat, epoch: j.epoch, seq: j.chatSeq}, nil
}

func (j *Journey) currentChat(t Ticket) bool {
	return t.slot == slotChat && t.epoch == j.epoch && j.stage == StageMainApp && j.chatOut[t.seq]
}

// AppendReply adds the assistant's answer for t.
func (j *Journey) AppendReply(t Ticket, text string) error {
	return j.appendModel(t, ChatMessage{Role: RoleModel, Text: text})
}

// AppendFailure adds the apology in place of the answer for t.
func (j *Journey) AppendFailure(t Ticket) error {
	return j.appendModel(t, ChatMessage{Role: RoleModel, Text: coach.Apology, Failed: true})
}

func (j *Journey) appendModel(t Ticket, m ChatMessage) error {
	if !j.currentChat(t) {
		return ErrStale
	}
	delete(j.chatOut, t.seq)
	m.At = j.now()
	j.chat = append(j.chat, m)
	return nil
}

// ShowDiaryPrompt reports whether the journey view should invite the user
// to start logging expenses.
func (j *Journey) ShowDiaryPrompt(diaryEmpty bool) bool {
	track, ok := j.Track()
	return ok && j.stage == StageMainApp && track == coach.TrackFoundations && diaryEmpty
}
