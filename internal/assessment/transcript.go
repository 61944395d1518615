package assessment

import (
	"fmt"
	"strings"
)

const unanswered = "Não respondido"

// Transcript renders the plain-text copy of a submission that the user
// can keep for their records.
func Transcript(set *QuestionSet, p Profile, answers AnswerMap, a Assessment) string {
	var b strings.Builder

	b.WriteString("Respostas do Questionário de Diagnóstico Financeiro\n\n")
	fmt.Fprintf(&b, "Nome: %s\n", p.Name)
	if p.Email != "" {
		fmt.Fprintf(&b, "E-mail: %s\n", p.Email)
	}
	level := LevelFor(a.Score)
	fmt.Fprintf(&b, "Pontuação: %d%% (%s)\n\n", RoundedScore(a.Score), level.Label)

	for _, sec := range set.sections {
		if sec.Title != "" {
			b.WriteString(sec.Title)
			b.WriteString("\n")
		}
		for _, q := range sec.Questions {
			answer, ok := answers[q.ID]
			if !ok || answer == "" {
				answer = unanswered
			}
			fmt.Fprintf(&b, "- %s: %s\n", q.Text, answer)
		}
		b.WriteString("\n")
	}

	goal := p.Goal
	if goal == "" {
		goal = DefaultGoal
	}
	fmt.Fprintf(&b, "%s: %s\n", GoalPrompt, goal)

	return b.String()
}
