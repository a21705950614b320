package options

import (
	"github.com/spf13/pflag"
)

// Options is the full ponderctl configuration. Every flag is named after its
// config file key, so viper can bind flags, file and PONDER_* env vars alike.
type Options struct {
	Model     *ModelOptions `json:"model" mapstructure:"model"`
	Workspace *WorkspaceOptions `json:"workspace" mapstructure:"workspace"`
	Tools     *ToolsOptions     `json:"tools" mapstructure:"tools"`
	Context   *ContextOptions   `json:"context" mapstructure:"context"`
	Log       *LogOptions       `json:"log" mapstructure:"log"`
}

func NewOptions() *Options {
	return &Options{
		Model:     NewModelOptions(),
		Workspace: NewWorkspaceOptions(),
		Tools:     NewToolsOptions(),
		Context:   NewContextOptions(),
		Log:       NewLogOptions(),
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.Model.AddFlags(fs)
	o.Workspace.AddFlags(fs)
	o.Tools.AddFlags(fs)
	o.Context.AddFlags(fs)
	o.Log.AddFlags(fs)
}

func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.Model.Validate()...)
	errs = append(errs, o.Workspace.Validate()...)
	errs = append(errs, o.Tools.Validate()...)
	errs = append(errs, o.Context.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errs
}
