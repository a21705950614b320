package helper

import (
	"fmt"
	"os"
	"strings"

	"github.com/jinzhu/copier"

	"github.com/kiosk404/ponder/internal/ponder/llm/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
)

type BasePlugin struct {
	PluginName string
}

func (b *BasePlugin) Name() string {
	return b.PluginName
}

// Models returns no built-in models.
func (b *BasePlugin) Models() []entity.ModelSpec {
	return nil
}

// ResolveConnection overlays conn on the plugin defaults: every empty field
// of conn takes the default, and ${ENV_VAR} api keys are expanded. The
// result shares no maps with either input.
func ResolveConnection(p spi.ProviderPlugin, conn *entity.Connection) (*entity.Connection, error) {
	resolved := &entity.Connection{}
	if def := p.DefaultConnection(); def != nil {
		if err := copier.CopyWithOption(resolved, def, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("provider %s: copy default connection: %w", p.Name(), err)
		}
	}
	if conn != nil {
		if err := copier.CopyWithOption(resolved, conn, copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("provider %s: apply connection settings: %w", p.Name(), err)
		}
	}
	resolved.Provider = p.Name()
	resolved.APIKey = ResolveEnvValue(resolved.APIKey)
	return resolved, nil
}

// ResolveEnvValue resolves "${ENV_VAR}" references in a string.
func ResolveEnvValue(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		envKey := s[2 : len(s)-1]
		return os.Getenv(envKey)
	}
	return s
}
