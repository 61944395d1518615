package llm

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Simi-mac/educafin/internal/store"
)

// NewProvider builds the configured provider wrapped as
// caller → retry → logging → vendor SDK. eventRepo may be nil, in which
// case calls are only written to the logger.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini, httpClient)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI, httpClient)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic, httpClient)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter, httpClient)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	return WithRetry(logged, cfg.Retry), nil
}
