package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/ponder/pkg/cli/genericclioptions"
	"github.com/kiosk404/ponder/pkg/utils/json"
	"github.com/kiosk404/ponder/pkg/version"
)

func TestVersionOutputs(t *testing.T) {
	streams, _, out, _ := genericclioptions.NewTestIOStreams()
	o := &Options{IOStreams: streams, Short: true}
	require.NoError(t, o.Run())
	assert.Equal(t, version.GitVersion+"\n", out.String())

	out.Reset()
	o.Output = "json"
	require.NoError(t, o.Run())
	var info version.Info
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, version.GitVersion, info.GitVersion)

	o.Output = "xml"
	assert.Error(t, o.Run())
}
