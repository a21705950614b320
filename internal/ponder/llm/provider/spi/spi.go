package spi

import (
	"context"

	domain "github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/entity"
)

// ChatModel sends a message history to a completion endpoint and returns
// the assistant text of the first choice.
type ChatModel interface {
	Generate(ctx context.Context, msgs []domain.Message) (string, error)
}

// ProviderPlugin is the interface for provider plugins.
type ProviderPlugin interface {
	// Name returns the name of the provider plugin.
	Name() string
	// DefaultConnection returns the endpoint used when none is configured.
	DefaultConnection() *entity.Connection
	// Models lists the models the provider knows out of the box.
	Models() []entity.ModelSpec
	// BuildChatModel builds a ChatModel for conn. params may be nil, in
	// which case provider defaults are used.
	BuildChatModel(ctx context.Context, conn *entity.Connection, params *entity.LLMParams) (ChatModel, error)
}

// PluginFactory is a function that creates a ProviderPlugin instance.
type PluginFactory func() ProviderPlugin
