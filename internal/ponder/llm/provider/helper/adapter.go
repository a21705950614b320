package helper

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gptr"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	domain "github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/domain/service/runtime"
	"github.com/kiosk404/ponder/internal/ponder/llm/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
	"github.com/kiosk404/ponder/internal/ponder/pkg/errno"
)

// EinoChatModel adapts an Eino BaseChatModel to spi.ChatModel.
type EinoChatModel struct {
	name  string
	model model.BaseChatModel
}

var _ spi.ChatModel = (*EinoChatModel)(nil)

// WrapEino wraps the result of an Eino constructor.
func WrapEino(name string, m model.BaseChatModel, err error) (spi.ChatModel, error) {
	if err != nil {
		return nil, fmt.Errorf("build %s chat model: %w", name, err)
	}
	return &EinoChatModel{name: name, model: m}, nil
}

func (e *EinoChatModel) Generate(ctx context.Context, msgs []domain.Message) (string, error) {
	out, err := e.model.Generate(ctx, runtime.ToSchemaMessages(msgs))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", errno.ErrModelRequest, e.name, err)
	}
	if out == nil {
		return "", fmt.Errorf("%s: %w", e.name, errno.ErrEmptyModelResponse)
	}
	return runtime.FromSchemaMessage(out).Content, nil
}

// NewOpenAICompatibleChatModel creates an Eino ChatModel using the OpenAI-compatible API.
// This is the common path for providers that expose an OpenAI-compatible endpoint
// (OpenAI, Kimi/Moonshot, GLM/ZhiPu, vLLM and friends).
func NewOpenAICompatibleChatModel(ctx context.Context, name string, conn *entity.Connection, params *entity.LLMParams) (spi.ChatModel, error) {
	if conn == nil || conn.Model == "" {
		return nil, fmt.Errorf("provider %s: no model configured", name)
	}

	cfg := &einoOpenAI.ChatModelConfig{
		Model:     conn.Model,
		APIKey:    conn.APIKey,
		MaxTokens: gptr.Of(4096),
		Timeout:   conn.Timeout,
		ResponseFormat: &einoOpenAI.ChatCompletionResponseFormat{
			Type: einoOpenAI.ChatCompletionResponseFormatTypeText,
		},
		ByAzure:    conn.ByAzure,
		APIVersion: conn.APIVersion,
	}

	// Set BaseURL only for non-default OpenAI endpoints.
	if conn.BaseURL != "" {
		cfg.BaseURL = conn.BaseURL
	}

	applyParamsToOpenAIChatModelConfig(cfg, params)

	m, err := einoOpenAI.NewChatModel(ctx, cfg)
	return WrapEino(name, m, err)
}

func applyParamsToOpenAIChatModelConfig(cfg *einoOpenAI.ChatModelConfig, params *entity.LLMParams) {
	if params == nil {
		return
	}

	if params.Temperature != nil {
		cfg.Temperature = params.Temperature
	}
	if params.MaxTokens != 0 {
		cfg.MaxTokens = gptr.Of(params.MaxTokens)
	}
	if params.FrequencyPenalty != 0 {
		cfg.FrequencyPenalty = gptr.Of(params.FrequencyPenalty)
	}
	if params.PresencePenalty != 0 {
		cfg.PresencePenalty = gptr.Of(params.PresencePenalty)
	}

	cfg.TopP = params.TopP
}
