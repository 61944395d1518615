// Package config resolves the app configuration from defaults, an optional
// educafin.yaml, a .env file, the environment and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Simi-mac/educafin/internal/llm"
	"github.com/Simi-mac/educafin/internal/store"
)

// Config is the resolved configuration.
type Config struct {
	LLM           llm.Config
	DBPath        string
	Log           LogConfig
	QuestionsFile string

	// ConfigFile is the config file that was read, if any.
	ConfigFile string
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string
	File  string
}

// Options carries the flag overrides. Empty fields are ignored.
type Options struct {
	ConfigFile string
	EnvFile    string // Default ".env" in the working directory.
	DBPath     string
	Provider   string
	LogLevel   string
}

// Provider keys in detection order. The first provider with a credential
// wins when none is selected explicitly.
var providerKeys = []struct {
	provider string
	key      string
	env      []string
}{
	{llm.ProviderGemini, "llm.gemini.api_key", []string{"EDUCAFIN_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"}},
	{llm.ProviderOpenAI, "llm.openai.api_key", []string{"EDUCAFIN_OPENAI_API_KEY", "OPENAI_API_KEY"}},
	{llm.ProviderAnthropic, "llm.anthropic.api_key", []string{"EDUCAFIN_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"}},
	{llm.ProviderOpenRouter, "llm.openrouter.api_key", []string{"EDUCAFIN_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"}},
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("EDUCAFIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, pk := range providerKeys {
		if err := v.BindEnv(append([]string{pk.key}, pk.env...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", pk.key, err)
		}
	}
	if err := v.BindEnv("db_path", "EDUCAFIN_DB", "EDUCAFIN_DB_PATH"); err != nil {
		return nil, fmt.Errorf("bind db_path: %w", err)
	}

	file := opts.ConfigFile
	if file == "" {
		file = findConfigFile()
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	if opts.DBPath != "" {
		v.Set("db_path", opts.DBPath)
	}
	if opts.Provider != "" {
		v.Set("llm.provider", opts.Provider)
	}
	if opts.LogLevel != "" {
		v.Set("log.level", opts.LogLevel)
	}

	cfg := &Config{
		LLM:           llmConfig(v),
		DBPath:        v.GetString("db_path"),
		QuestionsFile: v.GetString("questions_file"),
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("log.level")),
			File:  v.GetString("log.file"),
		},
		ConfigFile: v.ConfigFileUsed(),
	}

	if cfg.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		cfg.DBPath = p
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(filepath.Dir(cfg.DBPath), "educafin.log")
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("log.level", "info")
}

func llmConfig(v *viper.Viper) llm.Config {
	c := llm.Config{
		Provider: strings.ToLower(strings.TrimSpace(v.GetString("llm.provider"))),
		Gemini: llm.GeminiConfig{
			APIKey:  v.GetString("llm.gemini.api_key"),
			Model:   v.GetString("llm.gemini.model"),
			BaseURL: v.GetString("llm.gemini.base_url"),
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  v.GetString("llm.openai.api_key"),
			Model:   v.GetString("llm.openai.model"),
			BaseURL: v.GetString("llm.openai.base_url"),
		},
		Anthropic: llm.AnthropicConfig{
			APIKey:  v.GetString("llm.anthropic.api_key"),
			Model:   v.GetString("llm.anthropic.model"),
			BaseURL: v.GetString("llm.anthropic.base_url"),
		},
		OpenRouter: llm.OpenRouterConfig{
			APIKey:  v.GetString("llm.openrouter.api_key"),
			Model:   v.GetString("llm.openrouter.model"),
			BaseURL: v.GetString("llm.openrouter.base_url"),
		},
		Retry: llm.RetryConfig{
			MaxAttempts: v.GetInt("llm.retry.max_attempts"),
			InitialWait: v.GetDuration("llm.retry.initial_wait"),
			MaxWait:     v.GetDuration("llm.retry.max_wait"),
			Multiplier:  v.GetFloat64("llm.retry.multiplier"),
		},
		Timeout: v.GetDuration("llm.timeout"),
	}
	if c.Provider == "" {
		c.Provider = detectProvider(c)
	}
	return c
}

// detectProvider picks the first provider that has a key, falling back to
// Gemini so a missing key is reported against the default provider.
func detectProvider(c llm.Config) string {
	for _, pk := range providerKeys {
		probe := c
		probe.Provider = pk.provider
		if probe.APIKey() != "" {
			return pk.provider
		}
	}
	return llm.ProviderGemini
}

func (c *Config) validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.LLM.Retry.MaxAttempts < 1 {
		return fmt.Errorf("llm.retry.max_attempts must be at least 1, got %d", c.LLM.Retry.MaxAttempts)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	return nil
}

// loadEnvFile reads a .env file into the environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// findConfigFile looks for educafin.yaml in the user config directory,
// then in the working directory.
func findConfigFile() string {
	var dirs []string
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		dirs = append(dirs, filepath.Join(dir, "educafin"))
	} else if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "educafin"))
	}
	dirs = append(dirs, ".")

	for _, dir := range dirs {
		for _, name := range []string{"educafin.yaml", "educafin.yml"} {
			p := filepath.Join(dir, name)
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p
			}
		}
	}
	return ""
}
