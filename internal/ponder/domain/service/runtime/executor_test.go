package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponder/pkg/errno"
)

type scriptedDispatcher struct {
	results map[string]entity.ToolResult
	called  []string
}

func (d *scriptedDispatcher) Execute(_ context.Context, name string, _ entity.Params) entity.ToolResult {
	d.called = append(d.called, name)
	if r, ok := d.results[name]; ok {
		return r
	}
	return entity.NewToolFailure(errno.ErrUnknownTool, "Unknown tool: %s", name)
}

type recordingObserver struct {
	events []string
}

func (o *recordingObserver) OnToolStart(call entity.ToolCall) { o.events = append(o.events, "start:"+call.Name) }
func (o *recordingObserver) OnToolDone(call entity.ToolCall, r entity.ToolResult) {
	state := "ok"
	if !r.Success {
		state = "fail"
	}
	o.events = append(o.events, "done:"+call.Name+":"+state)
}

func TestToolExecutor_SequentialAndIndependent(t *testing.T) {
	d := &scriptedDispatcher{results: map[string]entity.ToolResult{
		"a": entity.NewToolSuccess("A"),
		"c": entity.NewToolSuccess("C"),
	}}
	obs := &recordingObserver{}
	exec := NewToolExecutor(d, obs)

	out := exec.Execute(context.Background(), []entity.ToolCall{{Name: "a"}, {Name: "b"}, {Name: "c"}})
	require.Len(t, out, 3)
	assert.Equal(t, []string{"a", "b", "c"}, d.called)
	assert.True(t, out[0].Result.Success)
	assert.False(t, out[1].Result.Success)
	assert.True(t, out[2].Result.Success)
	assert.Equal(t, []string{
		"start:a", "done:a:ok",
		"start:b", "done:b:fail",
		"start:c", "done:c:ok",
	}, obs.events)
}

func TestFoldToolResults(t *testing.T) {
	assert.Equal(t, "answer", FoldToolResults("answer", nil))

	folded := FoldToolResults("answer", []ToolExecution{
		{Call: entity.ToolCall{Name: "a"}, Result: entity.NewToolSuccess("body")},
		{Call: entity.ToolCall{Name: "b"}, Result: entity.NewToolFailure(errno.ErrNotFound, "Directory not found: x")},
	})
	assert.Equal(t, "answer\n\nTOOL RESULTS:\nTool 1 succeeded:\nbody\n\nTool 2 failed: Directory not found: x\n\n", folded)
}
