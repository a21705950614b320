package deepseek

import (
	"context"
	"fmt"

	einoDeepseek "github.com/cloudwego/eino-ext/components/model/deepseek"

	"github.com/kiosk404/ponder/internal/ponder/llm/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/helper"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
)

const Name = "deepseek"

var _ spi.ProviderPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ProviderPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{PluginName: Name},
	}
}

// BuildChatModel uses the dedicated DeepSeek SDK, which reports the
// reasoner's chain of thought out of band.
func (p *Plugin) BuildChatModel(ctx context.Context, conn *entity.Connection, params *entity.LLMParams) (spi.ChatModel, error) {
	if conn == nil || conn.Model == "" {
		return nil, fmt.Errorf("provider %s: no model configured", Name)
	}

	conf := &einoDeepseek.ChatModelConfig{
		APIKey:      conn.APIKey,
		Model:       conn.Model,
		Temperature: 0.7,
		Timeout:     conn.Timeout,
	}
	if conn.BaseURL != "" {
		conf.BaseURL = conn.BaseURL
	}

	applyParamsToDeepseekConfig(conf, params)

	m, err := einoDeepseek.NewChatModel(ctx, conf)
	return helper.WrapEino(Name, m, err)
}

// applyParamsToDeepseekConfig maps LLMParams to Deepseek ChatModelConfig.
func applyParamsToDeepseekConfig(conf *einoDeepseek.ChatModelConfig, params *entity.LLMParams) {
	if params == nil {
		return
	}

	if params.Temperature != nil {
		conf.Temperature = *params.Temperature
	}
	if params.MaxTokens != 0 {
		conf.MaxTokens = params.MaxTokens
	}
	if params.FrequencyPenalty != 0 {
		conf.FrequencyPenalty = params.FrequencyPenalty
	}
	if params.PresencePenalty != 0 {
		conf.PresencePenalty = params.PresencePenalty
	}
	conf.ResponseFormatType = einoDeepseek.ResponseFormatTypeText
}

func (p *Plugin) DefaultConnection() *entity.Connection {
	return &entity.Connection{
		BaseURL: "https://api.deepseek.com/v1",
		APIKey:  "${DEEPSEEK_API_KEY}",
		Model:   "deepseek-chat",
	}
}

func (p *Plugin) Models() []entity.ModelSpec {
	return []entity.ModelSpec{
		{ID: "deepseek-chat", Name: "Deepseek V3", ContextWindow: 131072, MaxTokens: 8192},
		{ID: "deepseek-reasoner", Name: "Deepseek R1", Reasoning: true, ContextWindow: 131072, MaxTokens: 8192},
	}
}
