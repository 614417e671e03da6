package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/flrw/cmd"
	"github.com/phil-mansfield/flrw/version"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	root := newRootCommand(strings.NewReader(stdin), out)
	root.SetArgs(args)
	root.SetErr(&bytes.Buffer{})
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "flrw version "+version.SourceVersion+"\n", out)
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, "", "config")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[cosmology]"))

	out, err = run(t, "", "config", "table")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[table]"))

	_, err = run(t, "", "config", "banana")
	assert.Error(t, err)
}

func TestParamsCommand(t *testing.T) {
	out, err := run(t, "", "params", "--format", "json", "--h100", "0.7")
	require.NoError(t, err)

	var p cmd.Params
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, 0.7, p.H100)
	assert.InDelta(t, 70, p.H0, 1e-12)

	_, err = run(t, "", "params", "--omega-cdm", "-0.1")
	assert.Error(t, err)
}

func TestEvalCommand(t *testing.T) {
	out, err := run(t, "0\n1\n", "eval", "z", "a")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "# Column contents: z(0) a(1)", lines[0])
	assert.Equal(t, "1 0.5", lines[2])

	_, err = run(t, "0\n", "eval", "z", "nope")
	assert.Error(t, err)
}

func TestTableCommand(t *testing.T) {
	out, err := run(t, "", "table", "--format", "yaml",
		"--z-max", "3", "--steps", "5", "z", "age", "dtdz")
	require.NoError(t, err)

	var table cmd.Table
	require.NoError(t, yaml.Unmarshal([]byte(out), &table))
	assert.Equal(t, []string{"z", "age", "dtdz"}, table.Columns)
	require.Len(t, table.Rows, 5)
	assert.Equal(t, 3.0, table.Rows[4][0])
	for _, row := range table.Rows {
		assert.Less(t, row[2], 0.0)
	}
}

func TestBadFlags(t *testing.T) {
	_, err := run(t, "", "params", "--format", "xml")
	assert.Error(t, err)
	_, err = run(t, "", "params", "--log-mode", "loud")
	assert.Error(t, err)
	_, err = run(t, "", "params", "--config", "/does/not/exist.config")
	assert.Error(t, err)
}
