package assessment

// AnswerMap maps a question id to the chosen option text. Unanswered
// questions have no entry.
type AnswerMap map[string]string

// Assessment is the scored result of a questionnaire.
type Assessment struct {
	// Score is a percentage in [0, 100].
	Score float64 `json:"score"`
	// Feedback holds, in question order, the feedback text of every
	// question answered below full credit or left unanswered.
	Feedback []string `json:"feedback"`
}

// Score computes the assessment for answers. It never fails: an answer
// that is not one of the question's options earns zero points and no
// feedback, and an unanswered question earns zero points plus its
// feedback.
func Score(set *QuestionSet, answers AnswerMap) Assessment {
	total := 0
	feedback := make([]string, 0)

	for _, q := range set.questions {
		chosen, answered := answers[q.ID]
		if !answered {
			feedback = append(feedback, q.Feedback)
			continue
		}
		idx := q.OptionIndex(chosen)
		if idx < 0 {
			continue
		}
		total += q.Points[idx]
		if q.Points[idx] < q.MaxPoints() {
			feedback = append(feedback, q.Feedback)
		}
	}

	return Assessment{
		Score:    100 * float64(total) / float64(set.maxScore),
		Feedback: feedback,
	}
}

// Missing returns the ids of unanswered questions in question order.
func Missing(set *QuestionSet, answers AnswerMap) []string {
	var out []string
	for _, q := range set.questions {
		if _, ok := answers[q.ID]; !ok {
			out = append(out, q.ID)
		}
	}
	return out
}

// TopInsights returns at most n feedback items, in order.
func TopInsights(a Assessment, n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(a.Feedback) {
		n = len(a.Feedback)
	}
	out := make([]string, n)
	copy(out, a.Feedback[:n])
	return out
}
