package llm

import (
	"context"
	"fmt"

	"github.com/kiosk404/ponder/internal/ponder/llm/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/helper"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
	"github.com/kiosk404/ponder/internal/ponder/pkg"
	"github.com/kiosk404/ponder/pkg/logger"
)

// Config holds the configuration for the LLM module.
type Config struct {
	Connection *entity.Connection
	Params     *entity.LLMParams

	// OutOfTreeRegistry adds provider plugins beyond the built-in ones.
	OutOfTreeRegistry *provider.Registry
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.Connection == nil {
		c.Connection = &entity.Connection{}
	}
	if c.Connection.Provider == "" {
		c.Connection.Provider = provider.DefaultProvider
	}
	return CompletedConfig{c}
}

// Module owns the provider registry and the chat model built from the
// configured connection.
type Module struct {
	Registry   *provider.Registry
	Plugin     spi.ProviderPlugin
	Connection *entity.Connection
	ChatModel  spi.ChatModel
}

// New builds the registry, resolves the connection against the provider
// defaults and creates the chat model.
func (c CompletedConfig) New(ctx context.Context) (*Module, error) {
	registry := provider.NewInTreeRegistry()
	if c.OutOfTreeRegistry != nil {
		if err := registry.Merge(c.OutOfTreeRegistry); err != nil {
			return nil, fmt.Errorf("failed to merge out-of-tree providers: %w", err)
		}
	}
	logger.Debug("[LLM] provider registry initialized with %d plugins", registry.Len())

	plugin, err := registry.Plugin(c.Connection.Provider)
	if err != nil {
		return nil, err
	}
	conn, err := helper.ResolveConnection(plugin, c.Connection)
	if err != nil {
		return nil, err
	}

	cm, err := plugin.BuildChatModel(ctx, conn, c.Params)
	if err != nil {
		return nil, err
	}
	logger.InfoX(pkg.ModuleName, "[LLM] chat model ready", "provider", conn.Provider, "model", conn.Model, "base_url", conn.BaseURL)

	return &Module{
		Registry:   registry,
		Plugin:     plugin,
		Connection: conn,
		ChatModel:  cm,
	}, nil
}

// ModelName is the resolved model identifier.
func (m *Module) ModelName() string {
	return m.Connection.Model
}

// ContextWindows lists the windows the provider declares for its models.
func (m *Module) ContextWindows() map[string]int {
	out := make(map[string]int)
	for _, spec := range m.Plugin.Models() {
		if spec.ContextWindow > 0 {
			out[spec.ID] = spec.ContextWindow
		}
	}
	return out
}
