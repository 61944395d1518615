package assessment

import (
	"strings"
	"testing"
)

func TestLevelFor_Edges(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "Vermelho"},
		{20, "Vermelho"},
		{20.4, "Vermelho"},
		{20.5, "Laranja"},
		{21, "Laranja"},
		{35, "Laranja"},
		{36, "Amarelo"},
		{45, "Amarelo"},
		{45.6, "Verde"},
		{46, "Verde"},
		{100, "Verde"},
		{-5, "Vermelho"},
		{150, "Vermelho"},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.score); got.Label != tt.want {
			t.Errorf("LevelFor(%v) = %s, want %s", tt.score, got.Label, tt.want)
		}
	}
}

func TestLevels_CoverRange(t *testing.T) {
	ls := Levels()
	if ls[0].Min != 0 || ls[len(ls)-1].Max != 100 {
		t.Fatalf("levels do not span 0..100: %+v", ls)
	}
	for i := 1; i < len(ls); i++ {
		if ls[i].Min != ls[i-1].Max+1 {
			t.Errorf("gap between %s and %s", ls[i-1].Label, ls[i].Label)
		}
	}
}

func TestProfile(t *testing.T) {
	p := NewProfile("  Ana ", " ", "   ")
	if p.Name != "Ana" || p.Email != "" || p.Goal != DefaultGoal {
		t.Fatalf("NewProfile = %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{"missing name", NewProfile("", "", "meta"), "informe seu nome"},
		{"bad email", NewProfile("Ana", "ana@", "meta"), "informe um e-mail válido"},
		{"long name", NewProfile(strings.Repeat("a", 81), "", "meta"), "no máximo 80"},
		{"blank goal", Profile{Name: "Ana"}, "informe sua meta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestTranscript(t *testing.T) {
	set := Default()
	answers := AnswerMap{"track_expenses": "Sempre", "budget": "Não"}
	a := Score(set, answers)
	out := Transcript(set, NewProfile("Ana", "ana@example.com", ""), answers, a)

	for _, want := range []string{
		"Nome: Ana",
		"E-mail: ana@example.com",
		"Pontuação: 13% (Vermelho)",
		"1. Hábitos Financeiros",
		"- Você acompanha seus ganhos e gastos mensais?: Sempre",
		"- Você possui um orçamento mensal?: Não",
		"- Você investe seu dinheiro?: Não respondido",
		GoalPrompt + ": " + DefaultGoal,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("transcript missing %q:\n%s", want, out)
		}
	}
}
