package assessment

import (
	"errors"
	"fmt"
	"slices"
)

// GoalPrompt is the free-text question that closes the questionnaire.
const GoalPrompt = "Qual é a sua principal meta financeira ou maior dificuldade hoje?"

// Question is a weighted multiple-choice question. Points is parallel to
// Options; the largest value is full credit.
type Question struct {
	ID       string
	Text     string
	Options  []string
	Points   []int
	Feedback string
}

// MaxPoints returns the full-credit value of the question.
func (q Question) MaxPoints() int {
	return slices.Max(q.Points)
}

// OptionIndex returns the index of option, or -1 if it is not one of the
// question's options.
func (q Question) OptionIndex(option string) int {
	return slices.Index(q.Options, option)
}

// Section groups questions for presentation. Scoring ignores it.
type Section struct {
	ID        string
	Title     string
	Questions []Question
}

// QuestionSet is a validated, immutable questionnaire.
type QuestionSet struct {
	sections  []Section
	questions []Question
	byID      map[string]int
	maxScore  int
}

var (
	ErrNoQuestions       = errors.New("question set has no questions")
	ErrDuplicateQuestion = errors.New("duplicate question id")
	ErrInvalidQuestion   = errors.New("invalid question")
)

// NewQuestionSet validates sections and builds a QuestionSet.
func NewQuestionSet(sections []Section) (*QuestionSet, error) {
	qs := &QuestionSet{byID: make(map[string]int)}

	for _, sec := range sections {
		if len(sec.Questions) == 0 {
			return nil, fmt.Errorf("%w: section %q is empty", ErrInvalidQuestion, sec.ID)
		}
		sec.Questions = slices.Clone(sec.Questions)
		for i := range sec.Questions {
			q := cloneQuestion(sec.Questions[i])
			if err := validateQuestion(q); err != nil {
				return nil, err
			}
			if _, dup := qs.byID[q.ID]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateQuestion, q.ID)
			}
			sec.Questions[i] = q
			qs.byID[q.ID] = len(qs.questions)
			qs.questions = append(qs.questions, q)
			qs.maxScore += q.MaxPoints()
		}
		qs.sections = append(qs.sections, sec)
	}

	if len(qs.questions) == 0 {
		return nil, ErrNoQuestions
	}
	if qs.maxScore <= 0 {
		return nil, fmt.Errorf("%w: max score must be positive, got %d", ErrInvalidQuestion, qs.maxScore)
	}
	return qs, nil
}

func validateQuestion(q Question) error {
	if q.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidQuestion)
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: %q has no options", ErrInvalidQuestion, q.ID)
	}
	if len(q.Points) != len(q.Options) {
		return fmt.Errorf("%w: %q has %d options but %d point values",
			ErrInvalidQuestion, q.ID, len(q.Options), len(q.Points))
	}
	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		if seen[opt] {
			return fmt.Errorf("%w: %q repeats option %q", ErrInvalidQuestion, q.ID, opt)
		}
		seen[opt] = true
		if q.Points[i] < 0 {
			return fmt.Errorf("%w: %q has negative points for %q", ErrInvalidQuestion, q.ID, opt)
		}
	}
	return nil
}

func cloneQuestion(q Question) Question {
	q.Options = slices.Clone(q.Options)
	q.Points = slices.Clone(q.Points)
	return q
}

// MaxScore is the sum of every question's full-credit value.
func (s *QuestionSet) MaxScore() int { return s.maxScore }

// Len returns the number of questions.
func (s *QuestionSet) Len() int { return len(s.questions) }

// Questions returns the questions in scoring order.
func (s *QuestionSet) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = cloneQuestion(q)
	}
	return out
}

// Sections returns the sections in presentation order.
func (s *QuestionSet) Sections() []Section {
	out := make([]Section, len(s.sections))
	for i, sec := range s.sections {
		sec.Questions = slices.Clone(sec.Questions)
		for j := range sec.Questions {
			sec.Questions[j] = cloneQuestion(sec.Questions[j])
		}
		out[i] = sec
	}
	return out
}

// Question looks up a question by id.
func (s *QuestionSet) Question(id string) (Question, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Question{}, false
	}
	return cloneQuestion(s.questions[i]), true
}

// SectionOf returns the section containing the question with id.
func (s *QuestionSet) SectionOf(id string) (Section, bool) {
	for _, sec := range s.sections {
		for _, q := range sec.Questions {
			if q.ID == id {
				return Section{ID: sec.ID, Title: sec.Title}, true
			}
		}
	}
	return Section{}, false
}
