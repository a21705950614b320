package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/ponder/internal/pkg/options"
	"github.com/kiosk404/ponder/internal/ponder/domain/entity"
	"github.com/kiosk404/ponder/internal/ponderctl/cmd/util"
	"github.com/kiosk404/ponder/pkg/cli/genericclioptions"
)

type echoModel struct {
	seen   [][]entity.Message
	failOn string
}

func (m *echoModel) Generate(_ context.Context, msgs []entity.Message) (string, error) {
	m.seen = append(m.seen, msgs)
	q := msgs[len(msgs)-1].Content
	if q == m.failOn {
		return "", errors.New("model unavailable")
	}
	return "<thinking>about " + q + "</thinking>\n\nanswer to " + q, nil
}

func newBatch(t *testing.T, model *echoModel, stdin string) (*BatchOptions, *bytes.Buffer) {
	t.Helper()
	streams, in, out, _ := genericclioptions.NewTestIOStreams()
	in.WriteString(stdin)
	opts := options.NewOptions()
	opts.Workspace.Root = t.TempDir()

	o := NewBatchOptions(util.NewFactory(opts, util.WithChatModel(model)), streams)
	o.Pause = 0
	return o, out
}

func TestReadQuestions(t *testing.T) {
	qs, err := ReadQuestions(strings.NewReader("# header\nfirst?\n\n   \n  second?  \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first?", "second?"}, qs)
}

func TestCompleteMergesArgsAndFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "q.txt")
	require.NoError(t, os.WriteFile(file, []byte("from file\n"), 0o644))

	o, _ := newBatch(t, &echoModel{}, "")
	o.File = file
	qs, err := o.Complete([]string{"from args", "  "})
	require.NoError(t, err)
	assert.Equal(t, []string{"from args", "from file"}, qs)

	o.File = filepath.Join(t.TempDir(), "missing.txt")
	_, err = o.Complete(nil)
	assert.Error(t, err)
}

func TestCompleteFromStdin(t *testing.T) {
	o, _ := newBatch(t, &echoModel{}, "a\nb\n")
	o.File = "-"
	qs, err := o.Complete(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, qs)
}

func TestRunAnswersIndependently(t *testing.T) {
	model := &echoModel{}
	o, out := newBatch(t, model, "")

	require.NoError(t, o.Run(context.Background(), []string{"q1", "q2"}))

	require.Len(t, model.seen, 2)
	for _, msgs := range model.seen {
		require.Len(t, msgs, 2)
		assert.Equal(t, entity.RoleSystem, msgs[0].Role)
	}
	text := out.String()
	assert.Contains(t, text, "🤖 AI Thinking Mode - Batch Processing")
	assert.Contains(t, text, "📝 QUESTION 1: q1")
	assert.Contains(t, text, "answer to q1")
	assert.Contains(t, text, "📝 QUESTION 2: q2")
	assert.Contains(t, text, "about q2")
}

func TestRunReportsFailures(t *testing.T) {
	model := &echoModel{failOn: "bad"}
	o, out := newBatch(t, model, "")

	err := o.Run(context.Background(), []string{"good", "bad", "also good"})
	require.Error(t, err)
	assert.Equal(t, "1 of 3 questions failed", err.Error())
	assert.Len(t, model.seen, 3)
	assert.Contains(t, out.String(), "❌ Error processing question 2:")
	assert.Contains(t, out.String(), "answer to also good")
}
