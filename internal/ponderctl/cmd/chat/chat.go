package chat

import (
	"context"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kiosk404/ponder/internal/ponder"
	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/domain/service/runtime"
	"github.com/kiosk404/ponder/internal/ponderctl/cmd/util"
	"github.com/kiosk404/ponder/internal/ponderctl/printer"
	"github.com/kiosk404/ponder/pkg/cli/genericclioptions"
	"github.com/kiosk404/ponder/pkg/logger"
)

var chatExample = heredoc.Doc(`
		# Interactive chat against the local exo endpoint
		ponderctl chat

		# Single message mode
		ponderctl chat "What does main.go do?"

		# Use an OpenAI model on another workspace
		ponderctl chat --model.provider=openai --model.name=gpt-4o --workspace.root=~/src/app`)

type ChatOptions struct {
	Session string

	// contextChanged is set when the context file reloads mid-session.
	contextChanged atomic.Bool

	factory util.Factory
	genericclioptions.IOStreams
}

func NewCmdChat(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewChatOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "chat [message]",
		DisableFlagsInUseLine: true,
		Short:                 "Chat with the model in thinking mode",
		Long: heredoc.Doc(`
			Start a thinking-mode conversation.

			When invoked without arguments, open an interactive chat loop.
			When invoked with a message argument, run a single exchange and print it.`),
		Example: chatExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&o.Session, "session", o.Session, "Session ID used in logs. Generated when empty.")
	return cmd
}

func NewChatOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *ChatOptions {
	return &ChatOptions{
		factory:   f,
		IOStreams: ioStreams,
	}
}

func (o *ChatOptions) Complete(args []string) error {
	if o.Session == "" {
		o.Session = uuid.NewString()
	}
	return nil
}

func (o *ChatOptions) Run(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pr := printer.New(o.Out)
	// Tool activity and skipped calls are printed after the response.
	m, err := o.factory.Session(ctx, nil, func(runtime.SkippedCall) {})
	if err != nil {
		return err
	}
	defer m.Close()

	if len(args) > 0 {
		return o.exchange(ctx, pr, m, strings.Join(args, " "))
	}
	return o.runInteractive(ctx, pr, m)
}

// exchange runs one turn and prints everything it produced.
func (o *ChatOptions) exchange(ctx context.Context, pr *printer.Printer, m *ponder.Module, input string) error {
	pr.Println("\n🤖 AI is thinking...")

	res, err := m.Runner.Exchange(ctx, input)
	if err != nil {
		pr.Error("Error: %v", err)
		return err
	}
	logger.InfoX("ponderctl", "[Chat] exchange done", "session", o.Session,
		"duration", res.Duration.String(), "tools", len(res.Executions))

	pr.Response(res.Thinking, res.Answer)

	for _, s := range res.Skipped {
		pr.Skipped(s)
	}
	if len(res.Executions) > 0 {
		pr.ToolsFound(len(res.Executions))
		for _, e := range res.Executions {
			pr.OnToolStart(e.Call)
			pr.OnToolDone(e.Call, e.Result)
		}
	}

	if pr.ContextUsage(res.Usage, m.Runner.Conversation().Len()) == entity.StatusCritical {
		pr.Println("\n💡 Tip: Type 'clear' to reset conversation history")
	}
	return nil
}
