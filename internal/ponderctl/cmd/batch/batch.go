package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kiosk404/ponder/internal/ponder/domain/service/runtime"
	"github.com/kiosk404/ponder/internal/ponderctl/cmd/util"
	"github.com/kiosk404/ponder/internal/ponderctl/printer"
	"github.com/kiosk404/ponder/pkg/cli/genericclioptions"
	"github.com/kiosk404/ponder/pkg/logger"
)

var batchExample = heredoc.Doc(`
		# Ask several questions, each against a fresh conversation
		ponderctl batch "What is consciousness?" "How should AI be regulated?"

		# Read questions from a file, one per line ('#' starts a comment)
		ponderctl batch -f questions.txt --pause=0s

		# Read questions from stdin
		cat questions.txt | ponderctl batch -f -`)

type BatchOptions struct {
	File  string
	Pause time.Duration

	factory util.Factory
	genericclioptions.IOStreams
}

func NewCmdBatch(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewBatchOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "batch [question...]",
		DisableFlagsInUseLine: true,
		Short:                 "Answer a list of questions independently",
		Long: heredoc.Doc(`
			Send each question to the model together with the system prompt only.
			Answers do not build up history and tool calls are not executed.`),
		Example: batchExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := o.Complete(args)
			if err != nil {
				return err
			}
			if len(questions) == 0 {
				return util.UsageErrorf(cmd.CommandPath(), "no questions given")
			}
			return o.Run(cmd.Context(), questions)
		},
	}

	cmd.Flags().StringVarP(&o.File, "file", "f", o.File, "Read questions from this file, one per line. '-' reads stdin.")
	cmd.Flags().DurationVar(&o.Pause, "pause", o.Pause, "Pause between questions.")
	return cmd
}

func NewBatchOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *BatchOptions {
	return &BatchOptions{
		Pause:     time.Second,
		factory:   f,
		IOStreams: ioStreams,
	}
}

// Complete collects questions from args followed by the file, if any.
func (o *BatchOptions) Complete(args []string) ([]string, error) {
	questions := make([]string, 0, len(args))
	for _, a := range args {
		if q := strings.TrimSpace(a); q != "" {
			questions = append(questions, q)
		}
	}
	if o.File == "" {
		return questions, nil
	}

	var r io.Reader
	if o.File == "-" {
		r = o.In
	} else {
		f, err := os.Open(o.File)
		if err != nil {
			return nil, fmt.Errorf("open questions file: %w", err)
		}
		defer f.Close()
		r = f
	}
	fromFile, err := ReadQuestions(r)
	if err != nil {
		return nil, err
	}
	return append(questions, fromFile...), nil
}

// ReadQuestions returns the non-blank lines of r that are not '#' comments.
func ReadQuestions(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return out, nil
}

func (o *BatchOptions) Run(ctx context.Context, questions []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	session := uuid.NewString()
	pr := printer.New(o.Out)

	m, err := o.factory.Session(ctx, nil, nil)
	if err != nil {
		return err
	}
	defer m.Close()

	pr.Println("🤖 AI Thinking Mode - Batch Processing")
	pr.Println(strings.Repeat("=", 60))

	failed := 0
	_, err = m.Runner.RunBatch(ctx, questions, runtime.BatchOptions{
		Pause: o.Pause,
		OnResult: func(res runtime.BatchResult) {
			pr.Printf("\n📝 QUESTION %d: %s\n", res.Index, res.Question)
			if res.Err != nil {
				failed++
				pr.Error("Error processing question %d: %v", res.Index, res.Err)
				logger.WarnX("ponderctl", "[Batch] question failed", "session", session, "index", res.Index, "err", res.Err)
				return
			}
			pr.Response(res.Thinking, res.Answer)
		},
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d questions failed", failed, len(questions))
	}
	return nil
}
