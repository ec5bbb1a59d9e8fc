package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftscan/drift/internal/scan"
	"github.com/driftscan/drift/internal/testutil"
)

func TestScanCommandJSONOutput(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{"main.go": "package main\n"})
	snapshot := filepath.Join(t.TempDir(), "drift.db")

	var out bytes.Buffer
	cmd := RootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"scan", root, "--snapshot", snapshot, "--json"})

	require.NoError(t, cmd.Execute())

	var summary scan.ExposedSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, 1, summary.AddedCount)
}

func TestScanCommandTextOutput(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{"main.go": "package main\n"})
	snapshot := filepath.Join(t.TempDir(), "drift.db")

	var out bytes.Buffer
	cmd := RootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	// The root command is shared between tests and flag values persist
	// across Execute calls, so --json is reset explicitly.
	cmd.SetArgs([]string{"scan", root, "--snapshot", snapshot, "--json=false"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "added:")
}
