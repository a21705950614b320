// Package ponder assembles a chat session: the workspace tools, the model
// transport, the context tracker and the prompt builder behind one Runner.
package ponder

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gptr"

	"github.com/kiosk404/ponder/internal/pkg/options"
	"github.com/kiosk404/ponder/internal/ponder/domain/service/runtime"
	"github.com/kiosk404/ponder/internal/ponder/domain/service/runtime/prompt"
	"github.com/kiosk404/ponder/internal/ponder/llm"
	llmEntity "github.com/kiosk404/ponder/internal/ponder/llm/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/helper"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
	"github.com/kiosk404/ponder/internal/ponder/service/tools"
	"github.com/kiosk404/ponder/internal/ponder/service/tools/fstool"
	"github.com/kiosk404/ponder/pkg/logger"
)

// Config holds everything needed to build a Module.
type Config struct {
	Options *options.Options

	// ChatModel replaces the provider-built model when set.
	ChatModel spi.ChatModel
	// OutOfTreeRegistry adds provider plugins beyond the built-in ones.
	OutOfTreeRegistry *provider.Registry
	// Observer is notified around tool executions. May be nil.
	Observer runtime.ToolObserver
	// Diagnostics receives tool calls the parser had to skip. Nil logs them.
	Diagnostics runtime.DiagnosticFunc
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.Options == nil {
		c.Options = options.NewOptions()
	}
	return CompletedConfig{c}
}

// Module is one ready-to-use chat session.
type Module struct {
	Runner     *runtime.Runner
	Tools      *tools.Registry
	FileSystem *fstool.FileSystem
	Executor   *runtime.ToolExecutor
	Parser     *runtime.ToolCallParser
	Windows    *runtime.ContextWindowTable
	Loader     *prompt.ContextLoader
	Prompt     *prompt.Builder

	// LLM is nil when Config.ChatModel was supplied.
	LLM       *llm.Module
	ModelName string
}

// New builds the session. The returned module owns a file watcher; call
// Close when done.
func (c CompletedConfig) New(ctx context.Context) (*Module, error) {
	opts := c.Options
	fs, registry := NewToolset(opts)

	m := &Module{
		Tools:      registry,
		FileSystem: fs,
		ModelName:  opts.Model.Name,
	}

	chatModel := c.ChatModel
	windows := make(map[string]int)
	if chatModel == nil {
		llmCfg := &llm.Config{
			Connection:        ConnectionFromOptions(opts.Model),
			Params:            ParamsFromOptions(opts.Model),
			OutOfTreeRegistry: c.OutOfTreeRegistry,
		}
		mod, err := llmCfg.Complete().New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM module: %w", err)
		}
		m.LLM = mod
		m.ModelName = mod.ModelName()
		chatModel = mod.ChatModel
		windows = mod.ContextWindows()
	}
	for name, size := range opts.Context.WindowMap() {
		windows[name] = size
	}
	m.Windows = runtime.NewContextWindowTable(windows)

	estimator := runtime.NewTokenEstimator(opts.Context.CharsPerToken, opts.Context.MessageOverhead)
	tracker := runtime.NewContextTracker(estimator, m.Windows.Resolve(m.ModelName), runtime.TrackerConfig{
		WarningThreshold:  opts.Context.WarningThreshold,
		CriticalThreshold: opts.Context.CriticalThreshold,
	})

	parserOpts := []runtime.ParserOption{}
	if c.Diagnostics != nil {
		parserOpts = append(parserOpts, runtime.WithDiagnostics(c.Diagnostics))
	}
	m.Parser = runtime.NewToolCallParser(parserOpts...)
	m.Executor = runtime.NewToolExecutor(registry, c.Observer)

	m.Loader = prompt.NewContextLoader(fs.Root(), opts.Workspace.ContextFile)
	m.Prompt = prompt.NewBuilder(ToolSummaries(registry), m.ModelName, m.Loader)

	m.Runner = runtime.NewRunner(chatModel, tracker, m.Parser, m.Executor, m.Prompt.SystemPrompt)
	logger.Info("[Ponder] session ready: model=%s window=%d workspace=%s", m.ModelName, tracker.MaxTokens(), fs.Root())
	return m, nil
}

// Close stops watching the context file.
func (m *Module) Close() {
	if m.Loader != nil {
		m.Loader.Close()
	}
}

// NewToolset creates the workspace file system and the tool registry bound
// to it.
func NewToolset(opts *options.Options) (*fstool.FileSystem, *tools.Registry) {
	fs := fstool.New(opts.Workspace.Root,
		fstool.WithMaxLines(opts.Tools.MaxReadLines),
		fstool.WithConfinement(opts.Workspace.Confine),
	)
	return fs, tools.NewWorkspaceRegistry(fs)
}

// ResolveWindows builds the context window table for the configured
// provider without creating a chat model, and returns the model name the
// session would use.
func ResolveWindows(opts *options.Options) (*runtime.ContextWindowTable, string, error) {
	name := opts.Model.Provider
	if name == "" {
		name = provider.DefaultProvider
	}
	plugin, err := provider.NewInTreeRegistry().Plugin(name)
	if err != nil {
		return nil, "", err
	}
	conn, err := helper.ResolveConnection(plugin, ConnectionFromOptions(opts.Model))
	if err != nil {
		return nil, "", err
	}

	windows := make(map[string]int)
	for _, spec := range plugin.Models() {
		if spec.ContextWindow > 0 {
			windows[spec.ID] = spec.ContextWindow
		}
	}
	for model, size := range opts.Context.WindowMap() {
		windows[model] = size
	}
	return runtime.NewContextWindowTable(windows), conn.Model, nil
}

// ToolSummaries lists the registry's tools in the form the prompt renders.
func ToolSummaries(r *tools.Registry) []prompt.ToolSummary {
	specs := r.Specs()
	out := make([]prompt.ToolSummary, 0, len(specs))
	for _, s := range specs {
		out = append(out, prompt.ToolSummary{
			Name:        s.Name,
			Description: s.Description,
			Usage:       s.Usage,
			Hint:        s.Hint,
		})
	}
	return out
}

// ConnectionFromOptions maps model options onto a provider connection.
func ConnectionFromOptions(o *options.ModelOptions) *llmEntity.Connection {
	return &llmEntity.Connection{
		Provider: o.Provider,
		Model:    o.Name,
		BaseURL:  o.BaseURL,
		APIKey:   o.APIKey,
		Headers:  o.Headers,
		Timeout:  o.Timeout,
		Retries:  o.Retries,
	}
}

// ParamsFromOptions maps model options onto sampling parameters.
func ParamsFromOptions(o *options.ModelOptions) *llmEntity.LLMParams {
	params := &llmEntity.LLMParams{
		Temperature:      gptr.Of(o.Temperature),
		TopP:             gptr.Of(o.TopP),
		MaxTokens:        o.MaxTokens,
		PresencePenalty:  o.PresencePenalty,
		FrequencyPenalty: o.FrequencyPenalty,
	}
	if o.TopK > 0 {
		params.TopK = gptr.Of(o.TopK)
	}
	if o.EnableThinking {
		params.EnableThinking = gptr.Of(true)
	}
	return params
}
