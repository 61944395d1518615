package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		TextResponse("Olá!"),
	)

	resp1, err := mock.Generate(t.Context(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(t.Context(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text() != "Olá!" {
		t.Fatalf("expected text 'Olá!', got %q", resp2.Text())
	}
}

func TestMockProvider_EmptyQueueReturnsUnavailable(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(t.Context(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})

	_, _ = mock.Generate(t.Context(), Request{
		System:   "persona",
		Messages: []Message{{Role: RoleUser, Content: "oi"}},
	})

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.LastCall().System != "persona" {
		t.Fatalf("expected system 'persona', got %q", mock.LastCall().System)
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"name":"Ana"}`)})

	_, err := mock.Generate(t.Context(), Request{Schema: testSchema()})
	if !IsContractViolation(err) {
		t.Fatalf("expected contract violation, got %v", err)
	}
	if string(OffendingContent(err)) != `{"name":"Ana"}` {
		t.Fatalf("offending content = %s", OffendingContent(err))
	}
}

func TestMockProvider_HonoursCancelledContext(t *testing.T) {
	mock := NewMockProvider(TextResponse("late"))
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := mock.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"json string", `"Guarde 10% do salário."`, "Guarde 10% do salário."},
		{"escaped newline", `"linha 1\nlinha 2"`, "linha 1\nlinha 2"},
		{"object passes through", `{"a":1}`, `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Response{Content: json.RawMessage(tt.content)}
			if got := r.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := t.Context()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "onboarding")
	if p := PurposeFrom(ctx); p != "onboarding" {
		t.Fatalf("expected 'onboarding', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"gemini without key", Config{Provider: ProviderGemini}, ErrMissingCredential},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, nil},
		{"openai without key", Config{Provider: ProviderOpenAI}, ErrMissingCredential},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "sk"}}, nil},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, ErrMissingCredential},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, nil},
		{"no provider", Config{}, ErrMissingCredential},
		{"mock needs no key", Config{Provider: ProviderMock}, nil},
		{"unknown provider", Config{Provider: "watson"}, ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderGemini {
		t.Errorf("provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("gemini model = %q", cfg.Gemini.Model)
	}
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("retry attempts = %d, want 1", cfg.Retry.MaxAttempts)
	}
}

func TestNewProvider_RejectsMissingCredential(t *testing.T) {
	_, err := NewProvider(t.Context(), Config{Provider: ProviderGemini}, nil, nil)
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(t.Context(), Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("model = %q, want mock", p.ModelID())
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-2.5-flash")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-2.8) > 1e-9 {
		t.Errorf("cost = %v, want 2.8", got)
	}
	if LookupCost("made-up-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
