package qwen

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gptr"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	einoQwen "github.com/cloudwego/eino-ext/components/model/qwen"

	"github.com/kiosk404/ponder/internal/ponder/llm/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/helper"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
)

const Name = "qwen"

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

	conf := &einoQwen.ChatModelConfig{
		APIKey:      conn.APIKey,
		Model:       conn.Model,
		Timeout:     conn.Timeout,
		Temperature: gptr.Of(float32(0.7)),
		ResponseFormat: &einoOpenAI.ChatCompletionResponseFormat{
			Type: einoOpenAI.ChatCompletionResponseFormatTypeText,
		},
	}
	if conn.BaseURL != "" {
		conf.BaseURL = conn.BaseURL
	}

	applyParamsToQwenConfig(conf, params)

	m, err := einoQwen.NewChatModel(ctx, conf)
	return helper.WrapEino(Name, m, err)
}

// applyParamsToQwenConfig maps LLMParams to Qwen ChatModelConfig.
func applyParamsToQwenConfig(conf *einoQwen.ChatModelConfig, params *entity.LLMParams) {
	if params == nil {
		return
	}

	conf.TopP = params.TopP

	if params.Temperature != nil {
		conf.Temperature = gptr.Of(*params.Temperature)
	}
	if params.MaxTokens != 0 {
		conf.MaxTokens = gptr.Of(params.MaxTokens)
	}
	if params.FrequencyPenalty != 0 {
		conf.FrequencyPenalty = gptr.Of(params.FrequencyPenalty)
	}
	if params.PresencePenalty != 0 {
		conf.PresencePenalty = gptr.Of(params.PresencePenalty)
	}
	if params.EnableThinking != nil {
		conf.EnableThinking = params.EnableThinking
	}
}

func (p *Plugin) DefaultConnection() *entity.Connection {
	return &entity.Connection{
		BaseURL: "https://dashscope.aliyuncs.com/compatible-mode/v1",
		APIKey:  "${DASHSCOPE_API_KEY}",
		Model:   "qwen-plus",
	}
}

func (p *Plugin) Models() []entity.ModelSpec {
	return []entity.ModelSpec{
		{ID: "qwen-plus", Name: "Qwen Plus", ContextWindow: 131072, MaxTokens: 8192},
		{ID: "qwen-turbo", Name: "Qwen Turbo", ContextWindow: 131072, MaxTokens: 8192},
		{ID: "qwq-plus", Name: "QWQ Plus (Reasoning)", Reasoning: true, ContextWindow: 131072, MaxTokens: 8192},
	}
}
