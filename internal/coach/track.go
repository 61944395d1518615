package coach

// FoundationsThreshold is the highest score that still lands on the
// foundations track.
const FoundationsThreshold = 50.0

// Track is one of the two onboarding curricula.
type Track int

const (
	TrackFoundations Track = iota
	TrackOptimization
)

// ClassifyTrack picks the track for a score. The threshold is inclusive on
// the foundations side.
func ClassifyTrack(score float64) Track {
	if score <= FoundationsThreshold {
		return TrackFoundations
	}
	return TrackOptimization
}

func (t Track) String() string {
	if t == TrackOptimization {
		return "optimization"
	}
	return "foundations"
}

// Name is the user-facing track label.
func (t Track) Name() string {
	if t == TrackOptimization {
		return "Trilha 2: Otimização"
	}
	return "Trilha 1: Fundamentos"
}

// Journey is the title the welcome message introduces.
func (t Track) Journey() string {
	if t == TrackOptimization {
		return "Jornada de Otimização e Alcance de Metas"
	}
	return "Jornada de Fundamentos e Criação de Hábitos"
}

// FirstMission is the first assignment handed to the user.
func (t Track) FirstMission() string {
	if t == TrackOptimization {
		return "Sua primeira missão é transformar seu sonho em um plano usando a metodologia **SMART**: " +
			"**Específica**, **Mensurável**, **Atingível**, **Relevante** e **Temporal**."
	}
	return "Sua primeira missão, que vai durar esta semana, é simplesmente **anotar todos os seus gastos**. " +
		"O objetivo é apenas clareza."
}

// StepTitles suggests the four step titles of the track.
func (t Track) StepTitles() [StepCount]string {
	if t == TrackOptimization {
		return [StepCount]string{
			"Sua Meta SMART",
			"Otimização do Orçamento",
			"Descobrindo seu Perfil de Investidor",
			"Montando sua Carteira de Investimentos",
		}
	}
	return [StepCount]string{
		"Clareza Total",
		"Orçamento Inteligente",
		"Construindo sua Segurança (Reserva)",
		"Plano de Ação contra Dívidas",
	}
}
