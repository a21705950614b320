package anthropic

import (
	"context"
	"fmt"

	einoClaude "github.com/cloudwego/eino-ext/components/model/claude"

	"github.com/kiosk404/ponder/internal/ponder/llm/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/helper"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
)

const Name = "anthropic"

// defaultMaxTokens is required by the Messages API.
const defaultMaxTokens = 4096

var _ spi.ProviderPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ProviderPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{PluginName: Name},
	}
}

func (p *Plugin) BuildChatModel(ctx context.Context, conn *entity.Connection, params *entity.LLMParams) (spi.ChatModel, error) {
	if conn == nil || conn.Model == "" {
		return nil, fmt.Errorf("provider %s: no model configured", Name)
	}

	cfg := &einoClaude.Config{
		APIKey:    conn.APIKey,
		Model:     conn.Model,
		MaxTokens: defaultMaxTokens,
	}
	if conn.BaseURL != "" {
		baseURL := conn.BaseURL
		cfg.BaseURL = &baseURL
	}

	applyParamsToClaudeConfig(cfg, params)

	m, err := einoClaude.NewChatModel(ctx, cfg)
	return helper.WrapEino(Name, m, err)
}

func applyParamsToClaudeConfig(conf *einoClaude.Config, params *entity.LLMParams) {
	if params == nil {
		return
	}

	if params.Temperature != nil {
		conf.Temperature = params.Temperature
	}
	if params.MaxTokens != 0 {
		conf.MaxTokens = params.MaxTokens
	}
	if params.TopP != nil {
		conf.TopP = params.TopP
	}
}

func (p *Plugin) DefaultConnection() *entity.Connection {
	return &entity.Connection{
		APIKey: "${ANTHROPIC_API_KEY}",
		Model:  "claude-haiku-4-5",
	}
}

func (p *Plugin) Models() []entity.ModelSpec {
	return []entity.ModelSpec{
		{ID: "claude-sonnet-4-5", Name: "Claude Sonnet 4.5", Reasoning: true, ContextWindow: 200000, MaxTokens: 64000},
		{ID: "claude-haiku-4-5", Name: "Claude Haiku 4.5", ContextWindow: 200000, MaxTokens: 64000},
	}
}
