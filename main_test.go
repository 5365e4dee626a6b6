package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/pomolog/internal/sessionlog"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func seedLog(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	l := sessionlog.New(sessionlog.DefaultPath)
	require.NoError(t, l.Append("2024-01-01", 25))
	require.NoError(t, l.Append("2024-01-01", 25))
	require.NoError(t, l.Append("2024-01-02", 25))
}

func TestStatsCommand(t *testing.T) {
	seedLog(t)

	out, err := runCmd(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, reportTitle)
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "Total: 75 minutes over 2 days")
}

func TestStatsCommandNoLog(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runCmd(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions logged yet")
}

func TestStatsCommandMalformedLog(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(sessionlog.DefaultPath, []byte("Date,Minutes\n2024-01-01,x\n"), 0o644))

	_, err := runCmd(t, "stats")
	var perr *sessionlog.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestExportCommand(t *testing.T) {
	seedLog(t)
	path := filepath.Join(t.TempDir(), "out.json")

	out, err := runCmd(t, "export", "json", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Exported 2 days"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.EqualValues(t, 75, doc["total_minutes"])
}

func TestExportCommandUnknownFormat(t *testing.T) {
	seedLog(t)

	_, err := runCmd(t, "export", "xml", "out.xml")
	assert.ErrorContains(t, err, "unknown export format")
}

func TestExportCommandArgs(t *testing.T) {
	_, err := runCmd(t, "export", "csv")
	assert.Error(t, err)
}
