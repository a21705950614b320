package ollama

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gptr"
	einoOllama "github.com/cloudwego/eino-ext/components/model/ollama"

	"github.com/kiosk404/ponder/internal/ponder/llm/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/helper"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
)

const Name = "ollama"

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

	conf := &einoOllama.ChatModelConfig{
		BaseURL: "http://127.0.0.1:11434",
		Model:   conn.Model,
		Timeout: conn.Timeout,
		Options: &einoOllama.Options{},
	}
	if conn.BaseURL != "" {
		conf.BaseURL = conn.BaseURL
	}

	applyParamsToOllamaConfig(conf, params)

	m, err := einoOllama.NewChatModel(ctx, conf)
	return helper.WrapEino(Name, m, err)
}

// applyParamsToOllamaConfig applies runtime LLM params to the Ollama config.
func applyParamsToOllamaConfig(conf *einoOllama.ChatModelConfig, params *entity.LLMParams) {
	if params == nil {
		return
	}

	if params.Temperature != nil {
		conf.Options.Temperature = *params.Temperature
	}
	if params.TopP != nil {
		conf.Options.TopP = *params.TopP
	}
	if params.TopK != nil {
		conf.Options.TopK = int(*params.TopK)
	}
	if params.FrequencyPenalty != 0 {
		conf.Options.FrequencyPenalty = params.FrequencyPenalty
	}
	if params.PresencePenalty != 0 {
		conf.Options.PresencePenalty = params.PresencePenalty
	}
	if params.EnableThinking != nil {
		conf.Thinking = &einoOllama.ThinkValue{
			Value: gptr.Of(*params.EnableThinking),
		}
	}
}

func (p *Plugin) DefaultConnection() *entity.Connection {
	return &entity.Connection{
		BaseURL: "http://127.0.0.1:11434",
		Model:   "llama3.2:3b",
	}
}

func (p *Plugin) Models() []entity.ModelSpec {
	return []entity.ModelSpec{
		{ID: "llama3.2:1b", Name: "Llama 3.2 1B", ContextWindow: 8192},
		{ID: "llama3.2:3b", Name: "Llama 3.2 3B", ContextWindow: 32768},
	}
}
