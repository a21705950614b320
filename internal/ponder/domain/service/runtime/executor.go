package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/pkg"
	"github.com/kiosk404/ponder/pkg/logger"
)

// ToolDispatcher routes a named call to its tool.
type ToolDispatcher interface {
	Execute(ctx context.Context, name string, params entity.Params) entity.ToolResult
}

// ToolObserver is notified around every tool execution.
type ToolObserver interface {
	OnToolStart(call entity.ToolCall)
	OnToolDone(call entity.ToolCall, result entity.ToolResult)
}

// ToolExecution pairs a call with its result.
type ToolExecution struct {
	Call   entity.ToolCall
	Result entity.ToolResult
}

// ToolExecutor runs extracted calls one after another. A failing call does
// not stop the ones after it.
type ToolExecutor struct {
	dispatcher ToolDispatcher
	observer   ToolObserver
}

// NewToolExecutor creates an executor. observer may be nil.
func NewToolExecutor(dispatcher ToolDispatcher, observer ToolObserver) *ToolExecutor {
	return &ToolExecutor{dispatcher: dispatcher, observer: observer}
}

// Execute runs calls sequentially in order.
func (e *ToolExecutor) Execute(ctx context.Context, calls []entity.ToolCall) []ToolExecution {
	executions := make([]ToolExecution, 0, len(calls))
	for _, call := range calls {
		if e.observer != nil {
			e.observer.OnToolStart(call)
		}

		result := e.dispatcher.Execute(ctx, call.Name, call.Params)
		if result.Success {
			logger.DebugX(pkg.ModuleName, "[ToolExecutor] tool succeeded", "tool", call.Name)
		} else {
			logger.InfoX(pkg.ModuleName, "[ToolExecutor] tool failed", "tool", call.Name, "error", result.Error)
		}

		if e.observer != nil {
			e.observer.OnToolDone(call, result)
		}
		executions = append(executions, ToolExecution{Call: call, Result: result})
	}
	return executions
}

// FoldToolResults appends a TOOL RESULTS block to answer so the next turn
// sees what the tools returned. answer is returned unchanged when there are
// no executions.
func FoldToolResults(answer string, executions []ToolExecution) string {
	if len(executions) == 0 {
		return answer
	}

	var b strings.Builder
	b.WriteString(answer)
	b.WriteString("\n\nTOOL RESULTS:\n")
	for i, exec := range executions {
		if exec.Result.Success {
			fmt.Fprintf(&b, "Tool %d succeeded:\n%s\n\n", i+1, exec.Result.Content)
		} else {
			fmt.Fprintf(&b, "Tool %d failed: %s\n\n", i+1, exec.Result.Error)
		}
	}
	return b.String()
}
