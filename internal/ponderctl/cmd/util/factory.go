package util

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kiosk404/ponder/internal/pkg/config"
	"github.com/kiosk404/ponder/internal/pkg/options"
	"github.com/kiosk404/ponder/internal/ponder"
	"github.com/kiosk404/ponder/internal/ponder/domain/service/runtime"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
)

// Factory gives commands access to the resolved configuration and builds
// chat sessions from it.
type Factory interface {
	// Options is the configuration after flags, env and config file merged.
	Options() *options.Options
	// Session builds a chat session. observer and diag may be nil.
	Session(ctx context.Context, observer runtime.ToolObserver, diag runtime.DiagnosticFunc) (*ponder.Module, error)
}

// FactoryOption customizes the default factory.
type FactoryOption func(*factory)

// WithChatModel makes every session use m instead of a provider-built model.
func WithChatModel(m spi.ChatModel) FactoryOption {
	return func(f *factory) {
		f.chatModel = m
	}
}

type factory struct {
	opts      *options.Options
	chatModel spi.ChatModel
}

// NewFactory creates a factory over opts. opts is filled later by LoadOptions.
func NewFactory(opts *options.Options, fopts ...FactoryOption) Factory {
	f := &factory{opts: opts}
	for _, o := range fopts {
		o(f)
	}
	return f
}

func (f *factory) Options() *options.Options {
	return f.opts
}

func (f *factory) Session(ctx context.Context, observer runtime.ToolObserver, diag runtime.DiagnosticFunc) (*ponder.Module, error) {
	cfg := &ponder.Config{
		Options:     f.opts,
		ChatModel:   f.chatModel,
		Observer:    observer,
		Diagnostics: diag,
	}
	return cfg.Complete().New(ctx)
}

// LoadOptions merges the config file, PONDER_* env vars and the flags in fs
// into opts, validates them and applies the log settings.
func LoadOptions(v *viper.Viper, fs *pflag.FlagSet, cfgFile string, opts *options.Options) error {
	if err := config.Load(v, fs, cfgFile, "ponderctl", opts); err != nil {
		return err
	}
	if errs := opts.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return opts.Log.Apply()
}
