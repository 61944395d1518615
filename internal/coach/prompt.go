package coach

import (
	"fmt"
	"strings"

	"github.com/Simi-mac/educafin/internal/assessment"
)

// Persona is the system instruction shared by every request.
const Persona = `Você é um educador financeiro amigável e experiente.
Seu objetivo é explicar conceitos financeiros complexos de uma forma simples, clara e encorajadora para iniciantes no Brasil.
Evite jargões e use analogias do dia a dia. Suas respostas devem ser práticas, acionáveis e adaptadas à realidade brasileira (mencionando, por exemplo, Real (BRL), Selic, Tesouro Direto, etc., quando relevante).
Sempre formate suas respostas usando markdown para melhor legibilidade, usando títulos, listas e negrito quando apropriado.`

const unnamedUser = "Não informado"

func buildOnboardingPrompt(track Track, score float64, name, goal string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = unnamedUser
	}
	goal = strings.TrimSpace(goal)
	if goal == "" {
		goal = assessment.DefaultGoal
	}

	var b strings.Builder
	b.WriteString("Gere um objeto JSON para a jornada de onboarding de um usuário de educação financeira.\n")
	b.WriteString("Dados do usuário:\n")
	fmt.Fprintf(&b, "- Nome: %s\n", name)
	fmt.Fprintf(&b, "- Pontuação do Diagnóstico: %d%%\n", assessment.RoundedScore(score))
	fmt.Fprintf(&b, "- Meta/Dificuldade Principal: %s\n\n", goal)

	fmt.Fprintf(&b, "O usuário está na %s.\n", track.Name())

	titles := track.StepTitles()
	switch track {
	case TrackOptimization:
		b.WriteString(`- "welcomeMessage": Deve dar as boas-vindas ao usuário pelo nome e parabenizá-lo pelo bom resultado, mostrando que ele está pronto para o próximo nível. `)
		fmt.Fprintf(&b, `Apresente a "%s", focando em transformar organização em ação para atingir a meta de %s. `, track.Journey(), goal)
		fmt.Fprintf(&b, `Dê a primeira missão: "%s". `, track.FirstMission())
		b.WriteString("Termine dizendo que o próximo passo será sobre ferramentas de investimento.\n")
	default:
		b.WriteString(`- "welcomeMessage": Deve dar as boas-vindas ao usuário pelo nome, parabenizá-lo por completar o diagnóstico e tratar a pontuação como "um ótimo ponto de partida". `)
		fmt.Fprintf(&b, `Apresente a "%s", focando em clareza e controle. `, track.Journey())
		fmt.Fprintf(&b, "Mencione que a dificuldade citada (%s) é comum e será abordada. ", goal)
		fmt.Fprintf(&b, `Dê a primeira missão: "%s". `, track.FirstMission())
		b.WriteString("Termine com encorajamento.\n")
	}

	fmt.Fprintf(&b, `- "trackSteps": Liste exatamente %d passos lógicos para esta trilha, cada um com "title" e "description" não vazios. Use títulos como: `, StepCount)
	for i, title := range titles {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, title)
	}
	b.WriteString(".\n\n")
	b.WriteString(`O tom deve ser sempre amigável e motivador. O "welcomeMessage" deve ser formatado em markdown.`)

	return b.String()
}
