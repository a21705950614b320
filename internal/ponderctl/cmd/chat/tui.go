package chat

import (
	"bufio"
	"context"
	"path/filepath"
	"strings"

	"github.com/kiosk404/ponder/internal/ponder"
	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponderctl/printer"
	"github.com/kiosk404/ponder/pkg/version"
)

const maxInputLine = 1 << 20

// lineReader delivers input lines until EOF or until ctx is done.
type lineReader struct {
	ctx   context.Context
	lines chan string
	errCh chan error
}

func newLineReader(ctx context.Context, o *ChatOptions) *lineReader {
	r := &lineReader{ctx: ctx, lines: make(chan string), errCh: make(chan error, 1)}
	go func() {
		defer close(r.lines)
		scanner := bufio.NewScanner(o.In)
		scanner.Buffer(make([]byte, 0, 64*1024), maxInputLine)
		for scanner.Scan() {
			select {
			case r.lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		r.errCh <- scanner.Err()
	}()
	return r
}

// next prints prompt and waits for a line. ok is false on EOF or cancel.
func (r *lineReader) next(pr *printer.Printer, prompt string) (string, bool) {
	pr.Printf("%s", prompt)
	select {
	case <-r.ctx.Done():
		return "", false
	case line, ok := <-r.lines:
		return line, ok
	}
}

func (r *lineReader) err() error {
	select {
	case err := <-r.errCh:
		return err
	default:
		return nil
	}
}

// runInteractive is the chat loop. Model errors are printed and the loop
// goes on; only EOF, a quit command or cancellation end it.
func (o *ChatOptions) runInteractive(ctx context.Context, pr *printer.Printer, m *ponder.Module) error {
	rows := [][2]string{{"Model", m.ModelName}}
	if m.LLM != nil {
		rows = append(rows, [2]string{"Provider", m.LLM.Connection.Provider})
	}
	rows = append(rows, [2]string{"Workspace", m.FileSystem.Root()}, [2]string{"Session", o.Session})
	pr.Banner("🤖 AI Thinking Mode Chat with Context Monitoring "+version.Get().String(), rows)
	o.showContext(pr, m)

	// The loader reloads from its watcher goroutine; the notice is printed
	// by the loop.
	m.Loader.OnLoad(func(string) { o.contextChanged.Store(true) })

	in := newLineReader(ctx, o)
	for {
		if o.contextChanged.Swap(false) {
			pr.Notice("📄 %s changed. Type 'clear' to start over with the new context.", filepath.Base(m.Loader.Path()))
		}
		line, ok := in.next(pr, "\n👤 You: ")
		if !ok {
			pr.Println("\n👋 Goodbye!")
			return in.err()
		}
		input := strings.TrimSpace(line)

		switch strings.ToLower(input) {
		case "quit", "exit", "bye":
			pr.Println("👋 Goodbye!")
			return nil
		case "context":
			o.showContext(pr, m)
			continue
		case "clear":
			o.clear(pr, m)
			continue
		case "help":
			pr.Commands("\n📚 Available Commands:")
			continue
		case "":
			continue
		}

		if m.Runner.PreCheck(input).Status == entity.StatusCritical {
			pr.Println("\n🚨 WARNING: Context is nearly full!")
			choice, ok := in.next(pr, "Continue anyway? (y/n) or 'clear' to reset: ")
			if !ok {
				pr.Println("\n👋 Goodbye!")
				return in.err()
			}
			switch strings.ToLower(strings.TrimSpace(choice)) {
			case "clear":
				o.clear(pr, m)
			case "y":
			default:
				continue
			}
		}

		// Errors are already printed; the history is unchanged.
		_ = o.exchange(ctx, pr, m, input)
	}
}

func (o *ChatOptions) showContext(pr *printer.Printer, m *ponder.Module) {
	pr.ContextUsage(m.Runner.Usage(), m.Runner.Conversation().Len())
}

func (o *ChatOptions) clear(pr *printer.Printer, m *ponder.Module) {
	m.Loader.Reload()
	o.contextChanged.Store(false)
	m.Runner.Reset()
	pr.Println("🧹 Conversation history cleared!")
	o.showContext(pr, m)
}
