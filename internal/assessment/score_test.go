package assessment

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
)

// uniformSet builds n questions worth [2,1,0] each.
func uniformSet(t *testing.T, n int) *QuestionSet {
	t.Helper()
	var qs []Question
	for i := range n {
		qs = append(qs, Question{
			ID:       fmt.Sprintf("q%d", i+1),
			Text:     fmt.Sprintf("Pergunta %d?", i+1),
			Options:  []string{"Sempre", "Às vezes", "Nunca"},
			Points:   []int{2, 1, 0},
			Feedback: fmt.Sprintf("dica %d", i+1),
		})
	}
	set, err := NewQuestionSet([]Section{{ID: "all", Questions: qs}})
	if err != nil {
		t.Fatalf("NewQuestionSet: %v", err)
	}
	return set
}

func bestAnswers(set *QuestionSet) AnswerMap {
	answers := AnswerMap{}
	for _, q := range set.Questions() {
		best := 0
		for i, p := range q.Points {
			if p > q.Points[best] {
				best = i
			}
		}
		answers[q.ID] = q.Options[best]
	}
	return answers
}

func TestMaxScore_SumOfMaxPoints(t *testing.T) {
	for _, set := range []*QuestionSet{Default(), uniformSet(t, 8), uniformSet(t, 1)} {
		want := 0
		for _, q := range set.Questions() {
			want += slices.Max(q.Points)
		}
		if set.MaxScore() != want {
			t.Errorf("MaxScore() = %d, want %d", set.MaxScore(), want)
		}
		if set.MaxScore() <= 0 {
			t.Errorf("MaxScore() = %d, want > 0", set.MaxScore())
		}
	}
}

func TestScore_AllBestAnswers(t *testing.T) {
	set := Default()
	a := Score(set, bestAnswers(set))
	if a.Score != 100 {
		t.Errorf("score = %v, want 100", a.Score)
	}
	if len(a.Feedback) != 0 {
		t.Errorf("feedback = %v, want empty", a.Feedback)
	}
}

func TestScore_NothingAnswered(t *testing.T) {
	set := Default()
	for _, answers := range []AnswerMap{nil, {}} {
		a := Score(set, answers)
		if a.Score != 0 {
			t.Errorf("score = %v, want 0", a.Score)
		}
		var want []string
		for _, q := range set.Questions() {
			want = append(want, q.Feedback)
		}
		if !slices.Equal(a.Feedback, want) {
			t.Errorf("feedback = %v, want %v", a.Feedback, want)
		}
	}
}

func TestScore_HalfAnsweredScenario(t *testing.T) {
	set := uniformSet(t, 8)
	if set.MaxScore() != 16 {
		t.Fatalf("MaxScore() = %d, want 16", set.MaxScore())
	}

	answers := AnswerMap{"q1": "Sempre", "q3": "Sempre", "q5": "Sempre", "q7": "Sempre"}
	a := Score(set, answers)

	if a.Score != 50.0 {
		t.Errorf("score = %v, want 50", a.Score)
	}
	want := []string{"dica 2", "dica 4", "dica 6", "dica 8"}
	if !slices.Equal(a.Feedback, want) {
		t.Errorf("feedback = %v, want %v", a.Feedback, want)
	}
}

func TestScore_PartialCreditAddsFeedback(t *testing.T) {
	set := uniformSet(t, 2)
	a := Score(set, AnswerMap{"q1": "Às vezes", "q2": "Sempre"})
	if a.Score != 75 {
		t.Errorf("score = %v, want 75", a.Score)
	}
	if !slices.Equal(a.Feedback, []string{"dica 1"}) {
		t.Errorf("feedback = %v", a.Feedback)
	}
}

func TestScore_UnknownOptionIsAbsorbed(t *testing.T) {
	set := uniformSet(t, 2)
	a := Score(set, AnswerMap{"q1": "Talvez", "q2": "Sempre"})
	if a.Score != 50 {
		t.Errorf("score = %v, want 50", a.Score)
	}
	if len(a.Feedback) != 0 {
		t.Errorf("feedback = %v, want none for unknown option", a.Feedback)
	}
}

func TestScore_IgnoresUnknownQuestionIDs(t *testing.T) {
	set := uniformSet(t, 1)
	a := Score(set, AnswerMap{"q1": "Sempre", "bogus": "Sempre"})
	if a.Score != 100 {
		t.Errorf("score = %v, want 100", a.Score)
	}
}

func TestScore_NonMonotonicPoints(t *testing.T) {
	set, err := NewQuestionSet([]Section{{ID: "s", Questions: []Question{{
		ID:       "mid",
		Options:  []string{"a", "b", "c"},
		Points:   []int{1, 3, 0},
		Feedback: "f",
	}}}})
	if err != nil {
		t.Fatal(err)
	}
	if got := Score(set, AnswerMap{"mid": "b"}); got.Score != 100 || len(got.Feedback) != 0 {
		t.Errorf("full credit = %+v", got)
	}
	if got := Score(set, AnswerMap{"mid": "a"}); len(got.Feedback) != 1 {
		t.Errorf("partial credit = %+v", got)
	}
}

func TestScore_MonotonicInAnswers(t *testing.T) {
	set := Default()
	questions := set.Questions()
	rng := rand.New(rand.NewPCG(1, 2))

	for range 200 {
		base := AnswerMap{}
		for _, q := range questions {
			if rng.IntN(2) == 0 {
				base[q.ID] = q.Options[rng.IntN(len(q.Options))]
			}
		}
		before := Score(set, base)

		for _, q := range questions {
			if _, done := base[q.ID]; done {
				continue
			}
			for _, opt := range q.Options {
				next := AnswerMap{q.ID: opt}
				for k, v := range base {
					next[k] = v
				}
				after := Score(set, next)
				if after.Score < before.Score {
					t.Fatalf("answering %s=%q lowered score %v -> %v", q.ID, opt, before.Score, after.Score)
				}
				if len(after.Feedback) > len(before.Feedback) {
					t.Fatalf("answering %s=%q grew feedback %d -> %d", q.ID, opt, len(before.Feedback), len(after.Feedback))
				}
			}
		}
	}
}

func TestScore_FeedbackOrderIndependentOfMap(t *testing.T) {
	set := Default()
	answers := AnswerMap{"investments": "Não", "track_expenses": "Nunca", "impulse": "Ocasionalmente"}
	first := Score(set, answers)
	for range 20 {
		if got := Score(set, answers); !slices.Equal(got.Feedback, first.Feedback) {
			t.Fatalf("feedback order changed: %v vs %v", got.Feedback, first.Feedback)
		}
	}
	if first.Feedback[0] != "Acompanhar seus ganhos e gastos é o primeiro passo para ter controle sobre seu dinheiro." {
		t.Errorf("first feedback = %q", first.Feedback[0])
	}
}

func TestScore_WithinBounds(t *testing.T) {
	set := Default()
	rng := rand.New(rand.NewPCG(3, 4))
	for range 500 {
		answers := AnswerMap{}
		for _, q := range set.Questions() {
			switch rng.IntN(3) {
			case 0:
				answers[q.ID] = q.Options[rng.IntN(len(q.Options))]
			case 1:
				answers[q.ID] = "???"
			}
		}
		if a := Score(set, answers); a.Score < 0 || a.Score > 100 {
			t.Fatalf("score %v out of range for %v", a.Score, answers)
		}
	}
}

func TestMissing(t *testing.T) {
	set := uniformSet(t, 4)
	got := Missing(set, AnswerMap{"q2": "Sempre", "q4": "Nunca"})
	if !slices.Equal(got, []string{"q1", "q3"}) {
		t.Errorf("Missing = %v", got)
	}
	if got := Missing(set, bestAnswers(set)); len(got) != 0 {
		t.Errorf("Missing on complete answers = %v", got)
	}
}

func TestTopInsights(t *testing.T) {
	a := Assessment{Feedback: []string{"a", "b", "c", "d"}}
	tests := []struct {
		n    int
		want []string
	}{
		{3, []string{"a", "b", "c"}},
		{10, []string{"a", "b", "c", "d"}},
		{0, nil},
	}
	for _, tt := range tests {
		if got := TopInsights(a, tt.n); !slices.Equal(got, tt.want) {
			t.Errorf("TopInsights(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}

	got := TopInsights(a, 2)
	got[0] = "changed"
	if a.Feedback[0] != "a" {
		t.Error("TopInsights must not alias the assessment")
	}
}
