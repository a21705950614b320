package runtime

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
	"github.com/kiosk404/ponder/internal/ponder/pkg"
	"github.com/kiosk404/ponder/internal/ponder/pkg/errno"
	"github.com/kiosk404/ponder/pkg/logger"
)

// PromptFunc produces the system prompt for a fresh conversation.
type PromptFunc func() string

// ExchangeResult is everything one user turn produced.
type ExchangeResult struct {
	// Response is the raw model output.
	Response string
	Thinking string
	Answer   string
	// Calls are the de-duplicated calls extracted from Response.
	Calls      []entity.ToolCall
	Skipped    []SkippedCall
	Executions []ToolExecution
	// Recorded is the assistant message appended to the history.
	Recorded entity.Message
	// Usage is the context usage after the exchange.
	Usage    entity.ContextUsage
	Duration time.Duration
}

// BatchResult is the outcome of one batch question.
type BatchResult struct {
	Index    int
	Question string
	Thinking string
	Answer   string
	Err      error
}

// BatchOptions tune RunBatch.
type BatchOptions struct {
	// Pause is waited between questions.
	Pause time.Duration
	// OnResult, when set, is called as soon as each question finishes.
	OnResult func(BatchResult)
}

// Runner drives the thinking-mode chat loop: it owns the conversation and
// wires the model, the tool-call parser, the tool executor and the context
// tracker together for each exchange.
//
// Exchange flow:
//  1. Append the user message
//  2. Call the model with the whole history
//  3. On failure remove the user message and return the error
//  4. Split thinking from the answer
//  5. Extract and run tool calls from the full response
//  6. Append the answer, with tool results folded in, as the assistant message
type Runner struct {
	model    spi.ChatModel
	conv     *Conversation
	tracker  *ContextTracker
	parser   *ToolCallParser
	executor *ToolExecutor
	prompt   PromptFunc
}

// NewRunner creates a runner whose conversation starts from prompt().
func NewRunner(model spi.ChatModel, tracker *ContextTracker, parser *ToolCallParser, executor *ToolExecutor, prompt PromptFunc) *Runner {
	if tracker == nil {
		tracker = NewContextTracker(nil, DefaultContextWindow, DefaultTrackerConfig())
	}
	if parser == nil {
		parser = NewToolCallParser()
	}
	if prompt == nil {
		prompt = func() string { return "" }
	}
	return &Runner{
		model:    model,
		conv:     NewConversation(prompt()),
		tracker:  tracker,
		parser:   parser,
		executor: executor,
		prompt:   prompt,
	}
}

// Conversation exposes the owned history.
func (r *Runner) Conversation() *Conversation {
	return r.conv
}

// Tracker returns the context tracker.
func (r *Runner) Tracker() *ContextTracker {
	return r.tracker
}

// Usage is the context usage of the current history.
func (r *Runner) Usage() entity.ContextUsage {
	return r.tracker.Usage(r.conv.Messages())
}

// PreCheck is the usage the history would have with input appended. The
// history itself is not touched.
func (r *Runner) PreCheck(input string) entity.ContextUsage {
	return r.tracker.Usage(r.conv.With(entity.NewUserMessage(input)))
}

// Reset replaces the history with a fresh system prompt.
func (r *Runner) Reset() {
	r.conv.Reset(r.prompt())
	logger.InfoX(pkg.ModuleName, "[Runner] conversation reset")
}

// Exchange runs one user turn. A model error leaves the history exactly as
// it was before the call.
func (r *Runner) Exchange(ctx context.Context, input string) (*ExchangeResult, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errno.ErrEmptyInput
	}

	start := time.Now()
	r.conv.Append(entity.NewUserMessage(input))

	response, err := r.model.Generate(ctx, r.conv.Messages())
	if err != nil {
		r.conv.PopLast()
		logger.WarnX(pkg.ModuleName, "[Runner] exchange failed, user message removed", "err", err)
		return nil, err
	}

	thinking, answer := SplitThinking(response)
	parsed := r.parser.ParseDetailed(response)

	var executions []ToolExecution
	if len(parsed.Calls) > 0 && r.executor != nil {
		executions = r.executor.Execute(ctx, parsed.Calls)
	}

	recorded := entity.NewAssistantMessage(FoldToolResults(answer, executions))
	r.conv.Append(recorded)

	result := &ExchangeResult{
		Response:   response,
		Thinking:   thinking,
		Answer:     answer,
		Calls:      parsed.Calls,
		Skipped:    parsed.Skipped,
		Executions: executions,
		Recorded:   recorded,
		Usage:      r.Usage(),
		Duration:   time.Since(start),
	}
	logger.DebugX(pkg.ModuleName, "[Runner] exchange done",
		"calls", len(result.Calls), "tokens", result.Usage.CurrentTokens, "status", result.Usage.Status)
	return result, nil
}

// RunBatch answers each question against the system prompt alone; the
// history never accumulates. A failing question is recorded and the batch
// moves on. Only context cancellation stops the batch early.
func (r *Runner) RunBatch(ctx context.Context, questions []string, opts BatchOptions) ([]BatchResult, error) {
	system := r.conv.System()
	results := make([]BatchResult, 0, len(questions))

	for i, q := range questions {
		res := BatchResult{Index: i + 1, Question: q}

		response, err := r.model.Generate(ctx, []entity.Message{system, entity.NewUserMessage(q)})
		if err != nil {
			res.Err = fmt.Errorf("question %d: %w", i+1, err)
		} else {
			res.Thinking, res.Answer = SplitThinking(response)
		}

		results = append(results, res)
		if opts.OnResult != nil {
			opts.OnResult(res)
		}

		if i == len(questions)-1 {
			break
		}
		if err := sleepCtx(ctx, opts.Pause); err != nil {
			return results, err
		}
	}
	return results, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
