package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/ponder/internal/ponder/llm/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/exo"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/openai"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
	"github.com/kiosk404/ponder/internal/ponder/pkg/errno"
)

func TestInTreeRegistry(t *testing.T) {
	r := NewInTreeRegistry()
	assert.Equal(t, []string{"anthropic", "deepseek", "exo", "gemini", "glm", "kimi", "ollama", "openai", "qwen"}, r.List())
	assert.Equal(t, 9, r.Len())

	r.Range(func(name string, factory spi.PluginFactory) bool {
		p := factory()
		assert.Equal(t, name, p.Name())
		conn := p.DefaultConnection()
		require.NotNil(t, conn, name)
		assert.NotEmpty(t, conn.Model, name)
		assert.NotEmpty(t, p.Models(), name)
		return true
	})
}

func TestPluginsRejectMissingModel(t *testing.T) {
	r := NewInTreeRegistry()
	for _, name := range r.List() {
		if name == exo.Name {
			continue
		}
		p, err := r.Plugin(name)
		require.NoError(t, err)
		_, err = p.BuildChatModel(context.Background(), &entity.Connection{}, nil)
		assert.ErrorContains(t, err, "no model configured", name)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(exo.Name, exo.New))
	err := r.Register(exo.Name, exo.New)
	assert.ErrorIs(t, err, errno.ErrProviderRegistered)
	assert.Panics(t, func() { r.MustRegister(exo.Name, exo.New) })
	assert.Error(t, r.Register("", exo.New))
	assert.Error(t, r.Register("x", nil))
}

func TestGetAndUnregister(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(openai.Name, openai.New)

	_, err := r.Get("missing")
	assert.ErrorIs(t, err, errno.ErrProviderNotFound)

	p, err := r.Plugin(openai.Name)
	require.NoError(t, err)
	assert.Equal(t, openai.Name, p.Name())

	require.NoError(t, r.Unregister(openai.Name))
	assert.ErrorIs(t, r.Unregister(openai.Name), errno.ErrProviderNotFound)
	assert.Zero(t, r.Len())
}

func TestMerge(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(exo.Name, exo.New)

	other := NewRegistry()
	other.MustRegister(openai.Name, openai.New)
	require.NoError(t, r.Merge(other))
	assert.Equal(t, []string{exo.Name, openai.Name}, r.List())

	require.NoError(t, r.Merge(nil))
	require.NoError(t, r.Merge(r))

	conflict := NewRegistry()
	conflict.MustRegister("fresh", openai.New)
	conflict.MustRegister(exo.Name, exo.New)
	assert.ErrorIs(t, r.Merge(conflict), errno.ErrProviderRegistered)
	assert.Equal(t, 2, r.Len(), "a conflicting merge adds nothing")
}

func TestRangeStops(t *testing.T) {
	r := NewInTreeRegistry()
	var seen []string
	r.Range(func(name string, _ spi.PluginFactory) bool {
		seen = append(seen, name)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"anthropic", "deepseek"}, seen)
}
