package coach

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type onboardingPayload struct {
	WelcomeMessage string      `json:"welcomeMessage"`
	TrackSteps     []TrackStep `json:"trackSteps"`
}

// ValidateOnboarding parses raw and checks it is a complete onboarding
// payload. Any failure is a *GenerationContractError carrying raw; on
// failure no data is returned.
func ValidateOnboarding(raw json.RawMessage) (*OnboardingData, error) {
	fail := func(err error) (*OnboardingData, error) {
		return nil, &GenerationContractError{Raw: raw, Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var p onboardingPayload
	if err := dec.Decode(&p); err != nil {
		return fail(fmt.Errorf("decode onboarding: %w", err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fail(errors.New("decode onboarding: trailing data after object"))
	}

	if strings.TrimSpace(p.WelcomeMessage) == "" {
		return fail(errors.New("welcomeMessage is empty"))
	}
	if len(p.TrackSteps) != StepCount {
		return fail(fmt.Errorf("trackSteps has %d items, want %d", len(p.TrackSteps), StepCount))
	}

	data := &OnboardingData{WelcomeMessage: p.WelcomeMessage}
	for i, step := range p.TrackSteps {
		if strings.TrimSpace(step.Title) == "" {
			return fail(fmt.Errorf("trackSteps[%d].title is empty", i))
		}
		if strings.TrimSpace(step.Description) == "" {
			return fail(fmt.Errorf("trackSteps[%d].description is empty", i))
		}
		data.TrackSteps[i] = step
	}
	return data, nil
}
