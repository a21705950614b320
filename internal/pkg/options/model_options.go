package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ModelOptions selects the provider and model a chat session talks to,
// and the sampling parameters sent with every request.
type ModelOptions struct {
	Provider string            `json:"provider" mapstructure:"provider"`
	Name     string            `json:"name" mapstructure:"name"`
	BaseURL  string            `json:"base-url" mapstructure:"base-url"`
	APIKey   string            `json:"-" mapstructure:"api-key"`
	Headers  map[string]string `json:"headers" mapstructure:"headers"`
	Timeout  time.Duration     `json:"timeout" mapstructure:"timeout"`
	Retries  int               `json:"retries" mapstructure:"retries"`

	Temperature      float32 `json:"temperature" mapstructure:"temperature"`
	TopP             float32 `json:"top-p" mapstructure:"top-p"`
	MaxTokens        int     `json:"max-tokens" mapstructure:"max-tokens"`
	PresencePenalty  float32 `json:"presence-penalty" mapstructure:"presence-penalty"`
	FrequencyPenalty float32 `json:"frequency-penalty" mapstructure:"frequency-penalty"`
	TopK             int32   `json:"top-k" mapstructure:"top-k"`
	EnableThinking   bool    `json:"enable-thinking" mapstructure:"enable-thinking"`
}

// NewModelOptions returns the sampling defaults of the local exo endpoint.
// Provider, name and base url stay empty so the provider defaults apply.
func NewModelOptions() *ModelOptions {
	return &ModelOptions{
		Headers:          map[string]string{},
		Timeout:          120 * time.Second,
		Retries:          2,
		Temperature:      0.7,
		TopP:             0.9,
		MaxTokens:        400,
		PresencePenalty:  0.3,
		FrequencyPenalty: 0.2,
	}
}

func (o *ModelOptions) Validate() []error {
	var errs []error
	if o.Temperature < 0 || o.Temperature > 2 {
		errs = append(errs, fmt.Errorf("model.temperature must be within [0, 2], got %v", o.Temperature))
	}
	if o.TopP <= 0 || o.TopP > 1 {
		errs = append(errs, fmt.Errorf("model.top-p must be within (0, 1], got %v", o.TopP))
	}
	if o.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("model.max-tokens must be positive, got %d", o.MaxTokens))
	}
	if o.PresencePenalty < -2 || o.PresencePenalty > 2 {
		errs = append(errs, fmt.Errorf("model.presence-penalty must be within [-2, 2], got %v", o.PresencePenalty))
	}
	if o.FrequencyPenalty < -2 || o.FrequencyPenalty > 2 {
		errs = append(errs, fmt.Errorf("model.frequency-penalty must be within [-2, 2], got %v", o.FrequencyPenalty))
	}
	if o.TopK < 0 {
		errs = append(errs, fmt.Errorf("model.top-k must not be negative, got %d", o.TopK))
	}
	if o.Timeout < 0 {
		errs = append(errs, fmt.Errorf("model.timeout must not be negative, got %s", o.Timeout))
	}
	if o.Retries < 0 {
		errs = append(errs, fmt.Errorf("model.retries must not be negative, got %d", o.Retries))
	}
	return errs
}

func (o *ModelOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Provider, "model.provider", o.Provider, "Provider plugin to use (exo, openai, ollama, deepseek, qwen, anthropic, gemini, kimi, glm).")
	fs.StringVar(&o.Name, "model.name", o.Name, "Model identifier. Empty means the provider default.")
	fs.StringVar(&o.BaseURL, "model.base-url", o.BaseURL, "Chat completions base url. Empty means the provider default.")
	fs.StringVar(&o.APIKey, "model.api-key", o.APIKey, "API key, or a ${ENV_VAR} reference.")
	fs.DurationVar(&o.Timeout, "model.timeout", o.Timeout, "Per-request timeout.")
	fs.IntVar(&o.Retries, "model.retries", o.Retries, "Retries on 429/5xx responses (exo provider).")
	fs.Float32Var(&o.Temperature, "model.temperature", o.Temperature, "Sampling temperature.")
	fs.Float32Var(&o.TopP, "model.top-p", o.TopP, "Nucleus sampling probability mass.")
	fs.IntVar(&o.MaxTokens, "model.max-tokens", o.MaxTokens, "Maximum tokens generated per reply.")
	fs.Float32Var(&o.PresencePenalty, "model.presence-penalty", o.PresencePenalty, "Presence penalty.")
	fs.Float32Var(&o.FrequencyPenalty, "model.frequency-penalty", o.FrequencyPenalty, "Frequency penalty.")
	fs.Int32Var(&o.TopK, "model.top-k", o.TopK, "Top-k sampling (ollama, gemini). 0 keeps the provider default.")
	fs.BoolVar(&o.EnableThinking, "model.enable-thinking", o.EnableThinking, "Request native reasoning output from providers that support it (qwen, ollama, gemini).")
}
