package assessment

import "math"

// Level is the score band shown on the results screen.
type Level struct {
	Min, Max int
	Label    string
	Emoji    string
	Title    string
	Message  string
	Action   string
}

var levels = []Level{
	{
		Min: 0, Max: 20,
		Label:   "Vermelho",
		Emoji:   "❌",
		Title:   "Atenção aos detalhes!",
		Message: "Sua saúde financeira precisa de atenção. Vamos começar pelos hábitos de consumo.",
		Action:  "Revisar Gastos",
	},
	{
		Min: 21, Max: 35,
		Label:   "Laranja",
		Emoji:   "⚙️",
		Title:   "Em construção!",
		Message: "Você está no caminho, mas há pontos importantes a equilibrar.",
		Action:  "Ajustar Orçamento",
	},
	{
		Min: 36, Max: 45,
		Label:   "Amarelo",
		Emoji:   "🌱",
		Title:   "Você está evoluindo!",
		Message: "Seus hábitos estão melhorando. Vamos fortalecer seu controle e foco em metas.",
		Action:  "Criar Metas SMART",
	},
	{
		Min: 46, Max: 100,
		Label:   "Verde",
		Emoji:   "💚",
		Title:   "Excelente base!",
		Message: "Excelente! Sua base é sólida. Agora é hora de investir e crescer.",
		Action:  "Continuar",
	},
}

// RoundedScore is the whole-number percentage shown to the user.
func RoundedScore(score float64) int {
	return int(math.Round(score))
}

// LevelFor returns the band of the rounded score. Out-of-range scores
// fall back to the lowest band.
func LevelFor(score float64) Level {
	s := RoundedScore(score)
	for _, l := range levels {
		if s >= l.Min && s <= l.Max {
			return l
		}
	}
	return levels[0]
}

// Levels returns every band from lowest to highest.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}
