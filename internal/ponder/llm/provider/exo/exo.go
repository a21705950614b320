// Package exo talks to a local OpenAI-compatible chat completions endpoint,
// such as an exo cluster, over plain HTTP.
package exo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	domain "github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/helper"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
	"github.com/kiosk404/ponder/internal/ponder/pkg/errno"
	"github.com/kiosk404/ponder/pkg/logger"
	"github.com/kiosk404/ponder/pkg/utils/json"
)

const Name = "exo"

const (
	DefaultBaseURL = "http://127.0.0.1:52415/v1"
	DefaultModel   = "llama-3.2-3b"

	defaultTimeout       = 120 * time.Second
	defaultRetryWait     = time.Second
	defaultRetryMaxWait  = 5 * time.Second
	maxErrorBodyInReport = 512
)

var _ spi.ProviderPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ProviderPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{PluginName: Name},
	}
}

func (p *Plugin) BuildChatModel(_ context.Context, conn *entity.Connection, params *entity.LLMParams) (spi.ChatModel, error) {
	return NewChatModel(conn, params)
}

func (p *Plugin) DefaultConnection() *entity.Connection {
	return &entity.Connection{
		BaseURL: DefaultBaseURL,
		Model:   DefaultModel,
	}
}

func (p *Plugin) Models() []entity.ModelSpec {
	return []entity.ModelSpec{
		{ID: "llama-3.2-1b", Name: "Llama 3.2 1B", ContextWindow: 8192},
		{ID: "llama-3.2-3b", Name: "Llama 3.2 3B", ContextWindow: 32768},
		{ID: "llama-3.2-8b", Name: "Llama 3.2 8B", ContextWindow: 131072},
	}
}

// Option tunes the HTTP client.
type Option func(*resty.Client)

// WithRetryWait sets the backoff bounds between retries.
func WithRetryWait(wait, maxWait time.Duration) Option {
	return func(c *resty.Client) {
		c.SetRetryWaitTime(wait)
		c.SetRetryMaxWaitTime(maxWait)
	}
}

// ChatModel posts the whole history to <base>/chat/completions and returns
// the first choice's content.
type ChatModel struct {
	client   *resty.Client
	endpoint string
	model    string
	apiKey   string
	params   *entity.LLMParams
}

var _ spi.ChatModel = (*ChatModel)(nil)

// NewChatModel creates a ChatModel for conn. Empty fields fall back to the
// local exo defaults.
func NewChatModel(conn *entity.Connection, params *entity.LLMParams, opts ...Option) (*ChatModel, error) {
	if conn == nil {
		conn = &entity.Connection{}
	}
	baseURL := conn.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := conn.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := conn.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if conn.Retries < 0 {
		return nil, fmt.Errorf("provider %s: retries must be >= 0, got %d", Name, conn.Retries)
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(conn.Retries)
	client.SetRetryWaitTime(defaultRetryWait)
	client.SetRetryMaxWaitTime(defaultRetryMaxWait)
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil || isRetryableStatusCode(r.StatusCode())
	})
	client.SetJSONMarshaler(json.Marshal)
	client.SetJSONUnmarshaler(json.Unmarshal)
	for k, v := range conn.Headers {
		client.SetHeader(k, v)
	}
	for _, opt := range opts {
		opt(client)
	}

	return &ChatModel{
		client:   client,
		endpoint: strings.TrimRight(baseURL, "/") + "/chat/completions",
		model:    model,
		apiKey:   conn.APIKey,
		params:   params,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      *float32      `json:"temperature,omitempty"`
	TopP             *float32      `json:"top_p,omitempty"`
	MaxTokens        int           `json:"max_tokens,omitempty"`
	PresencePenalty  float32       `json:"presence_penalty,omitempty"`
	FrequencyPenalty float32       `json:"frequency_penalty,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Endpoint is the URL requests are posted to.
func (m *ChatModel) Endpoint() string {
	return m.endpoint
}

func (m *ChatModel) Generate(ctx context.Context, msgs []domain.Message) (string, error) {
	req := m.buildRequest(msgs)

	r := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req)
	if m.apiKey != "" {
		r.SetHeader("Authorization", "Bearer "+m.apiKey)
	}

	start := time.Now()
	resp, err := r.Post(m.endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: post %s: %w", errno.ErrModelRequest, m.endpoint, err)
	}
	logger.DebugX(Name, "chat completion", "status", resp.StatusCode(), "elapsed", time.Since(start).String())

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned %d: %s", errno.ErrModelRequest, m.endpoint, resp.StatusCode(), truncate(resp.String()))
	}

	var out chatResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", errno.ErrModelRequest, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", Name, errno.ErrEmptyModelResponse)
	}
	return out.Choices[0].Message.Content, nil
}

func (m *ChatModel) buildRequest(msgs []domain.Message) *chatRequest {
	req := &chatRequest{
		Model:    m.model,
		Messages: make([]chatMessage, 0, len(msgs)),
	}
	for _, msg := range msgs {
		req.Messages = append(req.Messages, chatMessage{Role: string(msg.Role), Content: msg.Content, Name: msg.Name})
	}
	if p := m.params; p != nil {
		req.Temperature = p.Temperature
		req.TopP = p.TopP
		req.MaxTokens = p.MaxTokens
		req.PresencePenalty = p.PresencePenalty
		req.FrequencyPenalty = p.FrequencyPenalty
	}
	return req
}

func isRetryableStatusCode(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxErrorBodyInReport {
		return s
	}
	cut := maxErrorBodyInReport
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
