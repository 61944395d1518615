package assessment

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultQuestions []byte

type yamlSet struct {
	Sections []yamlSection `yaml:"sections"`
}

type yamlSection struct {
	ID        string         `yaml:"id"`
	Title     string         `yaml:"title"`
	Questions []yamlQuestion `yaml:"questions"`
}

type yamlQuestion struct {
	ID       string       `yaml:"id"`
	Text     string       `yaml:"text"`
	Options  []yamlOption `yaml:"options"`
	Feedback string       `yaml:"feedback"`
}

type yamlOption struct {
	Text   string `yaml:"text"`
	Points int    `yaml:"points"`
}

// Load parses a YAML questionnaire and validates it.
func Load(r io.Reader) (*QuestionSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc yamlSet
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrNoQuestions
		}
		return nil, fmt.Errorf("decode question set: %w", err)
	}

	sections := make([]Section, 0, len(doc.Sections))
	for _, ys := range doc.Sections {
		sec := Section{ID: ys.ID, Title: ys.Title}
		for _, yq := range ys.Questions {
			q := Question{ID: yq.ID, Text: yq.Text, Feedback: yq.Feedback}
			for _, opt := range yq.Options {
				q.Options = append(q.Options, opt.Text)
				q.Points = append(q.Points, opt.Points)
			}
			sec.Questions = append(sec.Questions, q)
		}
		sections = append(sections, sec)
	}

	return NewQuestionSet(sections)
}

var (
	defaultOnce sync.Once
	defaultSet  *QuestionSet
)

// Default returns the built-in eight-question questionnaire.
func Default() *QuestionSet {
	defaultOnce.Do(func() {
		set, err := Load(bytes.NewReader(defaultQuestions))
		if err != nil {
			panic(fmt.Sprintf("assessment: embedded question set: %v", err))
		}
		defaultSet = set
	})
	return defaultSet
}

// Submission is a filled-in questionnaire read from YAML, as used by
// `educafin assess --answers`.
type Submission struct {
	Name    string    `yaml:"name"`
	Email   string    `yaml:"email"`
	Goal    string    `yaml:"goal"`
	Answers AnswerMap `yaml:"answers"`
}

// Profile returns the submission's normalized profile.
func (s *Submission) Profile() Profile {
	return NewProfile(s.Name, s.Email, s.Goal)
}

// ReadSubmission decodes a YAML answer sheet.
func ReadSubmission(r io.Reader) (*Submission, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sub Submission
	if err := dec.Decode(&sub); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	if sub.Answers == nil {
		sub.Answers = AnswerMap{}
	}
	return &sub, nil
}
