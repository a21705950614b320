// Package tools is the tool dispatcher: a registry mapping tool names to
// their required parameters and handlers.
package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/pkg/errno"
	"github.com/kiosk404/ponder/pkg/logger"
)

const moduleName = "tools"

// Handler executes a tool. It must report failures through the returned
// ToolResult.
type Handler func(ctx context.Context, params entity.Params) entity.ToolResult

// Spec describes one registered tool.
type Spec struct {
	// Name is the identifier used in TOOL:<name>(...) calls.
	Name string
	// Description is a one-line summary shown in the system prompt.
	Description string
	// Usage is an example call shown in the system prompt.
	Usage string
	// Hint is optional extra guidance shown under the usage line.
	Hint string
	// Required lists parameter keys that must be present, in report order.
	Required []string
	// Handler runs the tool.
	Handler Handler
}

// Registry routes tool calls to handlers after checking required parameters.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		specs: make(map[string]Spec),
	}
}

// Register adds a tool. It fails on an empty name, a nil handler or a name
// that is already taken.
func (r *Registry) Register(spec Spec) error {
	if strings.TrimSpace(spec.Name) == "" {
		return fmt.Errorf("tool name is empty")
	}
	if spec.Handler == nil {
		return fmt.Errorf("tool %s has no handler", spec.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.specs[spec.Name]; ok {
		return fmt.Errorf("tool %s: %w", spec.Name, errno.ErrToolAlreadyExists)
	}
	spec.Required = append([]string(nil), spec.Required...)
	r.specs[spec.Name] = spec
	r.order = append(r.order, spec.Name)
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(spec Spec) {
	if err := r.Register(spec); err != nil {
		panic(err)
	}
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.specs[name]
	return ok
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Specs returns registered specs in registration order.
func (r *Registry) Specs() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs := make([]Spec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.specs[name])
	}
	return specs
}

// Required returns the required parameter keys of name, or nil when the
// tool is unknown.
func (r *Registry) Required(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[name]
	if !ok {
		return nil
	}
	return append([]string(nil), spec.Required...)
}

// Execute validates params against the tool's required keys and runs it.
// The handler's result is returned unchanged.
func (r *Registry) Execute(ctx context.Context, name string, params entity.Params) entity.ToolResult {
	r.mu.RLock()
	spec, ok := r.specs[name]
	r.mu.RUnlock()

	if !ok {
		logger.WarnX(moduleName, "unknown tool", "tool", name, "known", r.sortedNames())
		return entity.NewToolFailure(errno.ErrUnknownTool, "Unknown tool: %s", name)
	}

	if missing := MissingParams(spec.Required, params); len(missing) > 0 {
		return entity.NewToolFailure(errno.ErrMissingParameters, "Missing required parameters: %s", strings.Join(missing, ", "))
	}

	return spec.Handler(ctx, params)
}

// MissingParams returns the keys of required absent from params, keeping
// the order of required.
func MissingParams(required []string, params entity.Params) []string {
	var missing []string
	for _, key := range required {
		if !params.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

func (r *Registry) sortedNames() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}
