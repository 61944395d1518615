package llm

import (
	"context"
	"encoding/json"
)

// Provider is the generation collaborator. Implementations talk to one
// model vendor; decorators add retry and event logging.
type Provider interface {
	// Generate sends one request and returns the model output. When the
	// request carries a Schema, Content is JSON already validated against
	// it; otherwise Content is the reply text encoded as a JSON string.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the persona instruction.
	System string

	// Messages is the conversation, oldest first. Single-shot requests
	// carry one user message.
	Messages []Message

	// Schema, when set, asks the provider for JSON conforming to it.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name identifies the schema, kebab-case. It doubles as the compile
	// cache key, so two different definitions must not share a name.
	Name string

	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Text returns the reply of a schema-less request. Content that is not a
// JSON string is returned verbatim.
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// textContent encodes a plain-text reply as a JSON string.
func textContent(text string) json.RawMessage {
	b, _ := json.Marshal(text)
	return b
}
