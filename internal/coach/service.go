package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Simi-mac/educafin/internal/llm"
	"github.com/Simi-mac/educafin/internal/store"
)

// Service requests onboarding tracks and advice from the language model.
// It keeps no per-request state and is safe for concurrent use.
type Service struct {
	llmCfg   llm.Config
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewService creates a coach service. provider may be nil when llmCfg is
// not usable; every request then fails with a *ConfigurationError.
func NewService(llmCfg llm.Config, provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		llmCfg:   llmCfg,
		provider: provider,
		cfg:      cfg,
		logger:   logger.Named("coach"),
	}
}

// Connect builds the provider stack for llmCfg and returns a service on
// top of it. A configuration problem does not fail Connect; it is
// reported by each request instead, so the rest of the app stays usable.
func Connect(ctx context.Context, llmCfg llm.Config, cfg Config, events store.EventRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	provider, err := llm.NewProvider(ctx, llmCfg, events, logger)
	if err != nil {
		logger.Warn("llm provider not available", zap.String("provider", llmCfg.Provider), zap.Error(err))
		provider = nil
	}
	return NewService(llmCfg, provider, cfg, logger)
}

// Provider returns the configured provider name.
func (s *Service) Provider() string {
	return s.llmCfg.Provider
}

// Ready reports whether requests can be sent.
func (s *Service) Ready() bool {
	return s.checkConfig() == nil
}

func (s *Service) checkConfig() error {
	if err := s.llmCfg.Validate(); err != nil {
		reason := "invalid provider configuration"
		if errors.Is(err, llm.ErrMissingCredential) {
			reason = "missing API key"
		}
		return &ConfigurationError{Provider: s.llmCfg.Provider, Reason: reason, Err: err}
	}
	if s.provider == nil {
		return &ConfigurationError{Provider: s.llmCfg.Provider, Reason: "provider could not be initialized"}
	}
	return nil
}

// RequestOnboarding classifies score into a track and asks the model for
// the welcome message and the four track steps.
func (s *Service) RequestOnboarding(ctx context.Context, score float64, name, goal string) (*OnboardingData, error) {
	if err := s.checkConfig(); err != nil {
		return nil, err
	}

	track := ClassifyTrack(score)
	ctx = llm.WithPurpose(ctx, "onboarding")

	req := llm.Request{
		System: Persona,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildOnboardingPrompt(track, score, name, goal)},
		},
		Schema:      OnboardingSchema,
		MaxTokens:   s.cfg.OnboardingMaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, s.classify("onboarding", err)
	}

	data, err := ValidateOnboarding(resp.Content)
	if err != nil {
		s.logContract("onboarding", err)
		return nil, err
	}

	s.logger.Info("onboarding generated",
		zap.Stringer("track", track),
		zap.Float64("score", score),
		zap.String("model", resp.Model))
	return data, nil
}

// RequestAdvice sends one free-text question under the persona and returns
// the model's markdown answer.
func (s *Service) RequestAdvice(ctx context.Context, prompt string) (string, error) {
	return s.RequestAdviceWithHistory(ctx, nil, prompt)
}

// RequestAdviceWithHistory is RequestAdvice with earlier chat turns sent
// as conversation context.
func (s *Service) RequestAdviceWithHistory(ctx context.Context, history []llm.Message, prompt string) (string, error) {
	if err := s.checkConfig(); err != nil {
		return "", err
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	ctx = llm.WithPurpose(ctx, "advice")

	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: prompt})

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      Persona,
		Messages:    msgs,
		MaxTokens:   s.cfg.AdviceMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", s.classify("advice", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		err := &GenerationContractError{Raw: resp.Content, Err: errors.New("empty advice reply")}
		s.logContract("advice", err)
		return "", err
	}
	return text, nil
}

// classify maps a provider error onto the coach error taxonomy.
func (s *Service) classify(op string, err error) error {
	if llm.IsContractViolation(err) {
		cerr := &GenerationContractError{Raw: llm.OffendingContent(err), Err: err}
		s.logContract(op, cerr)
		return cerr
	}
	s.logger.Warn("generation unavailable", zap.String("op", op), zap.Error(err))
	return &GenerationUnavailableError{Err: fmt.Errorf("%s: %w", op, err)}
}

func (s *Service) logContract(op string, err error) {
	var cerr *GenerationContractError
	var raw []byte
	if errors.As(err, &cerr) {
		raw = cerr.Raw
	}
	s.logger.Error("generation contract violated",
		zap.String("op", op),
		zap.ByteString("raw", raw),
		zap.Error(err))
}
