package coach

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Simi-mac/educafin/internal/llm"
)

// Apology is shown when generation fails for reasons the user can retry.
const Apology = "Desculpe, não consegui processar sua solicitação. Tente novamente mais tarde."

// ErrEmptyPrompt is returned for a blank advice question.
var ErrEmptyPrompt = errors.New("empty prompt")

// ConfigurationError means the generation collaborator cannot be used as
// configured, typically a missing API key. No request was sent.
type ConfigurationError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("coach not configured: %s: %v", e.Reason, e.Err)
	}
	return "coach not configured: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// GenerationUnavailableError means the request failed in transport or at
// the provider. Retrying later may succeed.
type GenerationUnavailableError struct {
	Err error
}

func (e *GenerationUnavailableError) Error() string {
	return fmt.Sprintf("generation unavailable: %v", e.Err)
}

func (e *GenerationUnavailableError) Unwrap() error { return e.Err }

// GenerationContractError means the provider answered, but the answer does
// not have the required shape. Raw holds the offending payload.
type GenerationContractError struct {
	Raw json.RawMessage
	Err error
}

func (e *GenerationContractError) Error() string {
	return fmt.Sprintf("generation contract violated: %v", e.Err)
}

func (e *GenerationContractError) Unwrap() error { return e.Err }

// IsConfiguration reports whether err is a *ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsUnavailable reports whether err is a *GenerationUnavailableError.
func IsUnavailable(err error) bool {
	var target *GenerationUnavailableError
	return errors.As(err, &target)
}

// IsContract reports whether err is a *GenerationContractError.
func IsContract(err error) bool {
	var target *GenerationContractError
	return errors.As(err, &target)
}

// UserMessage returns the Portuguese message to show for err.
func UserMessage(err error) string {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return fmt.Sprintf("O assistente financeiro não está configurado. Defina a variável %s e tente novamente.",
			llm.CredentialEnv(cfgErr.Provider))
	}
	if errors.Is(err, ErrEmptyPrompt) {
		return "Escreva sua pergunta antes de enviar."
	}
	return Apology
}
