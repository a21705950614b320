package options

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ContextOptions configures the approximate context-budget tracker.
type ContextOptions struct {
	WarningThreshold  float64 `json:"warning-threshold" mapstructure:"warning-threshold"`
	CriticalThreshold float64 `json:"critical-threshold" mapstructure:"critical-threshold"`
	CharsPerToken     int     `json:"chars-per-token" mapstructure:"chars-per-token"`
	MessageOverhead   int     `json:"message-overhead" mapstructure:"message-overhead"`
	// Windows adds or overrides model context windows. Config file only.
	// A list, not a map: model names contain dots and viper splits keys on them.
	Windows []ModelWindow `json:"windows" mapstructure:"windows"`
}

// ModelWindow is one context window override.
type ModelWindow struct {
	Model  string `json:"model" mapstructure:"model"`
	Tokens int    `json:"tokens" mapstructure:"tokens"`
}

// WindowMap returns the overrides keyed by model. Later entries win.
func (o *ContextOptions) WindowMap() map[string]int {
	out := make(map[string]int, len(o.Windows))
	for _, w := range o.Windows {
		out[w.Model] = w.Tokens
	}
	return out
}

func NewContextOptions() *ContextOptions {
	return &ContextOptions{
		WarningThreshold:  0.8,
		CriticalThreshold: 0.9,
		CharsPerToken:     4,
		MessageOverhead:   10,
	}
}

func (o *ContextOptions) Validate() []error {
	var errs []error
	if o.WarningThreshold <= 0 || o.WarningThreshold >= 1 {
		errs = append(errs, fmt.Errorf("context.warning-threshold must be within (0, 1), got %v", o.WarningThreshold))
	}
	if o.CriticalThreshold <= 0 || o.CriticalThreshold > 1 {
		errs = append(errs, fmt.Errorf("context.critical-threshold must be within (0, 1], got %v", o.CriticalThreshold))
	}
	if o.WarningThreshold >= o.CriticalThreshold {
		errs = append(errs, fmt.Errorf("context.warning-threshold (%v) must be below context.critical-threshold (%v)",
			o.WarningThreshold, o.CriticalThreshold))
	}
	if o.CharsPerToken <= 0 {
		errs = append(errs, fmt.Errorf("context.chars-per-token must be positive, got %d", o.CharsPerToken))
	}
	if o.MessageOverhead < 0 {
		errs = append(errs, fmt.Errorf("context.message-overhead must not be negative, got %d", o.MessageOverhead))
	}
	for i, w := range o.Windows {
		if strings.TrimSpace(w.Model) == "" {
			errs = append(errs, fmt.Errorf("context.windows[%d].model must not be empty", i))
		}
		if w.Tokens <= 0 {
			errs = append(errs, fmt.Errorf("context.windows[%d] (%s) tokens must be positive, got %d", i, w.Model, w.Tokens))
		}
	}
	return errs
}

func (o *ContextOptions) AddFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&o.WarningThreshold, "context.warning-threshold", o.WarningThreshold, "Usage fraction reported as WARNING.")
	fs.Float64Var(&o.CriticalThreshold, "context.critical-threshold", o.CriticalThreshold, "Usage fraction reported as CRITICAL.")
	fs.IntVar(&o.CharsPerToken, "context.chars-per-token", o.CharsPerToken, "Characters counted as one token.")
	fs.IntVar(&o.MessageOverhead, "context.message-overhead", o.MessageOverhead, "Tokens added per message.")
}
