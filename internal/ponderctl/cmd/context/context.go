// Package context implements `ponderctl context`.
package context

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kiosk404/ponder/internal/ponder"
	"github.com/kiosk404/ponder/internal/ponderctl/cmd/util"
	"github.com/kiosk404/ponder/internal/ponderctl/printer"
	"github.com/kiosk404/ponder/pkg/cli/genericclioptions"
)

var contextExample = heredoc.Doc(`
		# Show the context windows known for the configured provider
		ponderctl context

		# Check the window a specific model would get
		ponderctl context --model=llama-3.2-1b`)

type ContextOptions struct {
	Model string

	factory util.Factory
	genericclioptions.IOStreams
}

func NewCmdContext(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := &ContextOptions{factory: f, IOStreams: ioStreams}

	cmd := &cobra.Command{
		Use:                   "context",
		DisableFlagsInUseLine: true,
		Short:                 "Show model context windows and the budget thresholds",
		Example:               contextExample,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run()
		},
	}
	cmd.Flags().StringVar(&o.Model, "model", o.Model, "Model to resolve. Defaults to the configured model.")
	return cmd
}

func (o *ContextOptions) Run() error {
	opts := o.factory.Options()
	table, model, err := ponder.ResolveWindows(opts)
	if err != nil {
		return err
	}
	if o.Model != "" {
		model = o.Model
	}

	pr := printer.New(o.Out)
	pr.WindowTable(table.Entries(), model, table.Default())

	window := table.Resolve(model)
	pr.Printf("\nModel %s: %d tokens", model, window)
	if !table.Known(model) {
		pr.Printf(" (default)")
	}
	pr.Println()
	pr.Printf("WARNING at %.0f%% (%d tokens), CRITICAL at %.0f%% (%d tokens)\n",
		opts.Context.WarningThreshold*100, int(float64(window)*opts.Context.WarningThreshold),
		opts.Context.CriticalThreshold*100, int(float64(window)*opts.Context.CriticalThreshold))
	pr.Printf("Estimate: 1 token per %d characters, plus %d per message\n",
		opts.Context.CharsPerToken, opts.Context.MessageOverhead)
	return nil
}
