package coach

// StepCount is the fixed length of a generated track.
const StepCount = 4

// TrackStep is one item of the generated curriculum.
type TrackStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// OnboardingData is the validated welcome narrative and track. The first
// step is the current one.
type OnboardingData struct {
	WelcomeMessage string               `json:"welcomeMessage"`
	TrackSteps     [StepCount]TrackStep `json:"trackSteps"`
}

// Config tunes the generation requests.
type Config struct {
	OnboardingMaxTokens int
	AdviceMaxTokens     int
	Temperature         float64
}

// DefaultConfig returns the generation settings the app ships with.
func DefaultConfig() Config {
	return Config{
		OnboardingMaxTokens: 2048,
		AdviceMaxTokens:     2048,
		Temperature:         0.7,
	}
}
