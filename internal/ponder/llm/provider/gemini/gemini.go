package gemini

import (
	"context"
	"fmt"

	einoGemini "github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"github.com/kiosk404/ponder/internal/ponder/llm/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/helper"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
)

const Name = "gemini"

// Compile-time check: Plugin implements ProviderPlugin.
var _ spi.ProviderPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ProviderPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{PluginName: Name},
	}
}

// BuildChatModel talks to Google's generative AI API through genai rather
// than an OpenAI-compatible endpoint.
func (p *Plugin) BuildChatModel(ctx context.Context, conn *entity.Connection, params *entity.LLMParams) (spi.ChatModel, error) {
	if conn == nil || conn.Model == "" {
		return nil, fmt.Errorf("provider %s: no model configured", Name)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  conn.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: "https://generativelanguage.googleapis.com/",
		},
	}
	if conn.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = conn.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client for %s: %w", conn.Model, err)
	}

	cfg := &einoGemini.Config{
		Client: client,
		Model:  conn.Model,
	}

	applyParamsToGeminiConfig(cfg, params)

	m, err := einoGemini.NewChatModel(ctx, cfg)
	return helper.WrapEino(Name, m, err)
}

// applyParamsToGeminiConfig maps LLMParams to Gemini Config.
func applyParamsToGeminiConfig(conf *einoGemini.Config, params *entity.LLMParams) {
	if params == nil {
		return
	}

	conf.TopK = params.TopK
	conf.TopP = params.TopP

	if params.Temperature != nil {
		t := *params.Temperature
		conf.Temperature = &t
	}
	if params.MaxTokens != 0 {
		mt := params.MaxTokens
		conf.MaxTokens = &mt
	}
	if params.EnableThinking != nil {
		conf.ThinkingConfig = &genai.ThinkingConfig{
			IncludeThoughts: *params.EnableThinking,
		}
	}
}

func (p *Plugin) DefaultConnection() *entity.Connection {
	return &entity.Connection{
		APIKey: "${GOOGLE_API_KEY}",
		Model:  "gemini-2.0-flash",
	}
}

func (p *Plugin) Models() []entity.ModelSpec {
	return []entity.ModelSpec{
		{ID: "gemini-2.5-flash-preview-05-20", Name: "Gemini 2.5 Flash", Reasoning: true, ContextWindow: 1048576, MaxTokens: 65536},
		{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash", ContextWindow: 1048576, MaxTokens: 8192},
	}
}
