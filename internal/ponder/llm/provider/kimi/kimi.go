package kimi

import (
	"context"

	"github.com/kiosk404/ponder/internal/ponder/llm/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/helper"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
)

const Name = "kimi"

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
	return helper.NewOpenAICompatibleChatModel(ctx, Name, conn, params)
}

func (p *Plugin) DefaultConnection() *entity.Connection {
	return &entity.Connection{
		BaseURL: "https://api.moonshot.cn/v1",
		APIKey:  "${MOONSHOT_API_KEY}",
		Model:   "kimi-2.5",
	}
}

func (p *Plugin) Models() []entity.ModelSpec {
	return []entity.ModelSpec{
		{ID: "kimi-2.5", Name: "Kimi-2.5", ContextWindow: 131072, MaxTokens: 8192},
	}
}
