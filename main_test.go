package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "errors"

	"github.com/mcncl/jsonkdl/internal/errors"
)

// resetCLI clears flag state between tests and points the config flag
// at a throwaway file so a developer's own config never leaks in.
func resetCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: v2\n"), 0644))

	CLI.Input = ""
	CLI.Output = ""
	CLI.KdlV1 = false
	CLI.KdlV2 = false
	CLI.Force = false
	CLI.Verbose = false
	CLI.NodeSchema = false
	CLI.JSONC = false
	CLI.Config = cfgPath
	return dir
}

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_ConvertsObject(t *testing.T) {
	dir := resetCLI(t)
	CLI.Input = writeInput(t, dir, `{"a": 1, "b": 2}`)
	CLI.Output = filepath.Join(dir, "out.kdl")

	require.NoError(t, run())

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "a 1\nb 2\n", string(out))
}

func TestRun_VersionFlagSelectsGrammar(t *testing.T) {
	dir := resetCLI(t)
	CLI.Input = writeInput(t, dir, `{"x": null}`)
	CLI.Output = filepath.Join(dir, "out.kdl")
	CLI.KdlV1 = true

	require.NoError(t, run())

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "x null\n", string(out))
}

func TestRun_DefaultsToV2(t *testing.T) {
	dir := resetCLI(t)
	CLI.Input = writeInput(t, dir, `{"x": null}`)
	CLI.Output = filepath.Join(dir, "out.kdl")

	require.NoError(t, run())

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "x #null\n", string(out))
}

func TestRun_NodeSchemaMode(t *testing.T) {
	dir := resetCLI(t)
	CLI.Input = writeInput(t, dir, `[{"name": "greet", "arguments": ["hello"], "properties": {"lang": "en"}}]`)
	CLI.Output = filepath.Join(dir, "out.kdl")
	CLI.NodeSchema = true

	require.NoError(t, run())

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "greet \"hello\" lang=\"en\"\n", string(out))
}

func TestRun_RefusesExistingOutput(t *testing.T) {
	dir := resetCLI(t)
	CLI.Input = writeInput(t, dir, `{"a": 1}`)
	CLI.Output = filepath.Join(dir, "out.kdl")
	require.NoError(t, os.WriteFile(CLI.Output, []byte("old content"), 0644))

	err := run()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrOutputExists))

	// Existing content untouched.
	out, readErr := os.ReadFile(CLI.Output)
	require.NoError(t, readErr)
	assert.Equal(t, "old content", string(out))
}

func TestRun_ForceOverwrites(t *testing.T) {
	dir := resetCLI(t)
	CLI.Input = writeInput(t, dir, `{"a": 1}`)
	CLI.Output = filepath.Join(dir, "out.kdl")
	CLI.Force = true
	require.NoError(t, os.WriteFile(CLI.Output, []byte("old content"), 0644))

	require.NoError(t, run())

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "a 1\n", string(out))
}

func TestRun_MalformedInputLeavesNoOutput(t *testing.T) {
	dir := resetCLI(t)
	CLI.Input = writeInput(t, dir, `{"a": `)
	CLI.Output = filepath.Join(dir, "out.kdl")

	err := run()
	require.Error(t, err)

	_, statErr := os.Stat(CLI.Output)
	assert.True(t, os.IsNotExist(statErr), "output file must not exist after a failed conversion")
}

func TestRun_MissingInput(t *testing.T) {
	dir := resetCLI(t)
	CLI.Input = filepath.Join(dir, "missing.json")
	CLI.Output = filepath.Join(dir, "out.kdl")

	err := run()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrFileNotFound))
}

func TestRun_InputIsDirectory(t *testing.T) {
	dir := resetCLI(t)
	CLI.Input = dir
	CLI.Output = filepath.Join(dir, "out.kdl")

	err := run()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrNotAFile))
}

func TestRun_JSONCInput(t *testing.T) {
	dir := resetCLI(t)
	CLI.Input = writeInput(t, dir, "{\n\t// comment\n\t\"a\": 1,\n}\n")
	CLI.Output = filepath.Join(dir, "out.kdl")
	CLI.JSONC = true

	require.NoError(t, run())

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "a 1\n", string(out))
}

func TestRun_ConfigDefaults(t *testing.T) {
	dir := resetCLI(t)
	cfgPath := filepath.Join(dir, "v1config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: v1\nindent: 2\n"), 0644))
	CLI.Config = cfgPath
	CLI.Input = writeInput(t, dir, `{"a": {"b": true}}`)
	CLI.Output = filepath.Join(dir, "out.kdl")

	require.NoError(t, run())

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "a {\n  b true\n}\n", string(out))
}

func TestWriteOutput_LeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.kdl")
	require.NoError(t, writeOutput(path, "node 1\n"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.kdl", entries[0].Name())

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "node 1\n", string(out))
}

func TestCheckOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.kdl")

	assert.NoError(t, checkOutput(path, false))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.Error(t, checkOutput(path, false))
	assert.NoError(t, checkOutput(path, true))
}
