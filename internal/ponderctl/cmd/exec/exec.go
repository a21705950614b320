package exec

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kiosk404/ponder/internal/ponder"
	"github.com/kiosk404/ponder/internal/ponder/domain/service/runtime"
	"github.com/kiosk404/ponder/internal/ponderctl/cmd/util"
	"github.com/kiosk404/ponder/internal/ponderctl/printer"
	"github.com/kiosk404/ponder/pkg/cli/genericclioptions"
)

var execExample = heredoc.Doc(`
		# List the workspace root
		ponderctl exec 'TOOL:list_dir(relative_workspace_path=".")'

		# Read part of a file and print each result in full
		ponderctl exec -o text 'TOOL:read_file(target_file="main.go", start_line_one_indexed=1, end_line_one_indexed_inclusive=20)'

		# Run every call found in a saved model reply
		ponderctl exec - < reply.txt`)

const (
	OutputTable = "table"
	OutputText  = "text"
)

type ExecOptions struct {
	Output string

	factory util.Factory
	genericclioptions.IOStreams
}

func NewCmdExec(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewExecOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "exec (TEXT | -)",
		DisableFlagsInUseLine: true,
		Short:                 "Extract and run the tool calls in a piece of text",
		Long: heredoc.Doc(`
			Run the tool-call extractor on TEXT, or on stdin when TEXT is '-', and
			execute every call against the workspace. No model is involved.`),
		Example: execExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := o.Complete(args)
			if err != nil {
				return util.UsageErrorf(cmd.CommandPath(), "%v", err)
			}
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(cmd.Context(), text)
		},
	}

	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "Output format: table or text.")
	return cmd
}

func NewExecOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *ExecOptions {
	return &ExecOptions{
		Output:    OutputTable,
		factory:   f,
		IOStreams: ioStreams,
	}
}

// Complete returns the text to scan.
func (o *ExecOptions) Complete(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("TEXT is required")
	}
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(o.In)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

func (o *ExecOptions) Validate() error {
	switch o.Output {
	case OutputTable, OutputText:
		return nil
	}
	return fmt.Errorf("unsupported output format %q, must be %q or %q", o.Output, OutputTable, OutputText)
}

// Run executes the calls found in text. It fails only when no call was
// found; tool failures are part of the output.
func (o *ExecOptions) Run(ctx context.Context, text string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	pr := printer.New(o.Out)

	parser := runtime.NewToolCallParser(runtime.WithDiagnostics(pr.Skipped))
	parsed := parser.ParseDetailed(text)
	if len(parsed.Calls) == 0 {
		return fmt.Errorf("no tool calls found")
	}

	_, registry := ponder.NewToolset(o.factory.Options())
	var observer runtime.ToolObserver
	if o.Output == OutputText {
		observer = pr
	}
	executor := runtime.NewToolExecutor(registry, observer)
	execs := executor.Execute(ctx, parsed.Calls)

	if o.Output == OutputTable {
		pr.ToolTable(execs)
	}
	return nil
}
