package glm

import (
	"context"

	"github.com/kiosk404/ponder/internal/ponder/llm/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/helper"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
)

const Name = "glm"

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
		BaseURL: "https://open.bigmodel.cn/api/paas/v4",
		APIKey:  "${ZHIPU_API_KEY}",
		Model:   "glm-4.6",
	}
}

func (p *Plugin) Models() []entity.ModelSpec {
	return []entity.ModelSpec{
		{ID: "glm-4.6", Name: "GLM-4.6", ContextWindow: 131072, MaxTokens: 8192},
	}
}
