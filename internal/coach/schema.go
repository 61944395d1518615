package coach

import "github.com/Simi-mac/educafin/internal/llm"

// OnboardingSchema is the structured output contract of the onboarding
// request.
var OnboardingSchema = &llm.Schema{
	Name:        "onboarding",
	Description: "Welcome message and four-step learning track for a personal finance learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"welcomeMessage": map[string]any{
				"type":        "string",
				"description": "Markdown welcome message addressed to the user by name",
				"minLength":   1,
			},
			"trackSteps": map[string]any{
				"type":     "array",
				"minItems": StepCount,
				"maxItems": StepCount,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":      "string",
							"minLength": 1,
						},
						"description": map[string]any{
							"type":      "string",
							"minLength": 1,
						},
					},
					"required":             []any{"title", "description"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"welcomeMessage", "trackSteps"},
		"additionalProperties": false,
	},
}
