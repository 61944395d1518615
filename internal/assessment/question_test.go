package assessment

import (
	"errors"
	"strings"
	"testing"
)

func TestNewQuestionSet_Rejects(t *testing.T) {
	valid := Question{ID: "a", Options: []string{"x", "y"}, Points: []int{1, 0}}

	tests := []struct {
		name     string
		sections []Section
		wantErr  error
	}{
		{"no sections", nil, ErrNoQuestions},
		{"empty section", []Section{{ID: "s"}}, ErrInvalidQuestion},
		{"duplicate ids", []Section{{ID: "s", Questions: []Question{valid, valid}}}, ErrDuplicateQuestion},
		{"duplicate across sections", []Section{
			{ID: "s1", Questions: []Question{valid}},
			{ID: "s2", Questions: []Question{valid}},
		}, ErrDuplicateQuestion},
		{"empty id", []Section{{ID: "s", Questions: []Question{{Options: []string{"x"}, Points: []int{1}}}}}, ErrInvalidQuestion},
		{"no options", []Section{{ID: "s", Questions: []Question{{ID: "a"}}}}, ErrInvalidQuestion},
		{"points mismatch", []Section{{ID: "s", Questions: []Question{{ID: "a", Options: []string{"x", "y"}, Points: []int{1}}}}}, ErrInvalidQuestion},
		{"repeated option", []Section{{ID: "s", Questions: []Question{{ID: "a", Options: []string{"x", "x"}, Points: []int{1, 0}}}}}, ErrInvalidQuestion},
		{"negative points", []Section{{ID: "s", Questions: []Question{{ID: "a", Options: []string{"x", "y"}, Points: []int{1, -1}}}}}, ErrInvalidQuestion},
		{"zero max score", []Section{{ID: "s", Questions: []Question{{ID: "a", Options: []string{"x"}, Points: []int{0}}}}}, ErrInvalidQuestion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuestionSet(tt.sections)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewQuestionSet_CopiesInput(t *testing.T) {
	qs := []Question{{ID: "a", Options: []string{"x", "y"}, Points: []int{2, 0}}}
	set, err := NewQuestionSet([]Section{{ID: "s", Questions: qs}})
	if err != nil {
		t.Fatal(err)
	}
	qs[0].Points[0] = 100
	if set.MaxScore() != 2 {
		t.Fatalf("MaxScore changed to %d after mutating input", set.MaxScore())
	}
	q, _ := set.Question("a")
	if q.Points[0] != 2 {
		t.Fatalf("stored question mutated: %v", q.Points)
	}

	out := set.Questions()
	out[0].Options[0] = "changed"
	if q, _ := set.Question("a"); q.Options[0] != "x" {
		t.Fatal("Questions() must return copies")
	}
}

func TestDefault(t *testing.T) {
	set := Default()
	if set.Len() != 8 {
		t.Errorf("Len() = %d, want 8", set.Len())
	}
	if set.MaxScore() != 16 {
		t.Errorf("MaxScore() = %d, want 16", set.MaxScore())
	}

	secs := set.Sections()
	if len(secs) != 3 {
		t.Fatalf("got %d sections, want 3", len(secs))
	}
	wantIDs := []string{"habits", "consumption", "financial_life"}
	for i, sec := range secs {
		if sec.ID != wantIDs[i] {
			t.Errorf("section %d = %q, want %q", i, sec.ID, wantIDs[i])
		}
	}

	budget, ok := set.Question("budget")
	if !ok {
		t.Fatal("budget question missing")
	}
	if len(budget.Options) != 2 || budget.Points[1] != 0 {
		t.Errorf("budget = %+v", budget)
	}

	sec, ok := set.SectionOf("credit_card")
	if !ok || sec.Title != "2. Consumo" {
		t.Errorf("SectionOf(credit_card) = %+v, %v", sec, ok)
	}
	if _, ok := set.SectionOf("nope"); ok {
		t.Error("SectionOf(nope) should fail")
	}
}

func TestLoad(t *testing.T) {
	doc := `
sections:
  - id: only
    title: Única
    questions:
      - id: q
        text: Pergunta?
        options:
          - { text: Sim, points: 3 }
          - { text: Não, points: 0 }
        feedback: Responda sim.
`
	set, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.MaxScore() != 3 {
		t.Errorf("MaxScore() = %d, want 3", set.MaxScore())
	}
	if a := Score(set, AnswerMap{"q": "Não"}); a.Score != 0 || a.Feedback[0] != "Responda sim." {
		t.Errorf("Score = %+v", a)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unknown field", "sections: []\nextra: 1\n"},
		{"no questions", "sections: []\n"},
		{"not yaml", "sections: [\n"},
		{"points not int", "sections:\n  - id: s\n    questions:\n      - id: q\n        options:\n          - { text: a, points: many }\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestReadSubmission(t *testing.T) {
	doc := `
name: Ana
email: ana@example.com
goal: pagar dívidas
answers:
  budget: Sim
  savings: Não
`
	sub, err := ReadSubmission(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadSubmission: %v", err)
	}
	if sub.Name != "Ana" || sub.Answers["budget"] != "Sim" || len(sub.Answers) != 2 {
		t.Errorf("submission = %+v", sub)
	}
	if p := sub.Profile(); p.Goal != "pagar dívidas" {
		t.Errorf("profile = %+v", p)
	}

	empty, err := ReadSubmission(strings.NewReader(""))
	if err != nil {
		t.Fatalf("empty submission: %v", err)
	}
	if empty.Answers == nil {
		t.Error("answers should default to an empty map")
	}

	if _, err := ReadSubmission(strings.NewReader("answerz: {}\n")); err == nil {
		t.Error("expected error for unknown field")
	}
}
