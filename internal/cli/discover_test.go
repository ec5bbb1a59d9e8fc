package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftscan/drift/internal/testutil"
)

func TestDiscoverCommandListsCandidates(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{
		"main.go":          "package main\n",
		"node_modules/x.js": "x",
	})

	var out bytes.Buffer
	cmd := RootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"discover", root})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "main.go")
	assert.NotContains(t, out.String(), "node_modules")
}
