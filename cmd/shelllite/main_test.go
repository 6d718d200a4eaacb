package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shelllite/shelllite/lite"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testState struct {
	*globalState
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestState(t *testing.T) *testState {
	t.Helper()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	logger := logrus.New()
	logger.SetOutput(stderr)
	return &testState{
		globalState: &globalState{
			ctx:    context.Background(),
			fs:     afero.NewMemMapFs(),
			stdin:  strings.NewReader(""),
			stdout: stdout,
			stderr: stderr,
			logger: logger,
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func (ts *testState) writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, ts.fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(ts.fs, path, []byte(content), 0o644))
}

func (ts *testState) run(args ...string) error {
	return runCLI(ts.globalState, args)
}

func TestRunCLIHelp(t *testing.T) {
	ts := newTestState(t)
	require.NoError(t, ts.run("--help"))
	for _, sub := range []string{"tokens", "parse", "check", "fmt", "analyze", "watch", "lsp", "repl"} {
		assert.Contains(t, ts.stdout.String(), sub)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	ts := newTestState(t)
	err := ts.run("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRunCLIRequiresFile(t *testing.T) {
	ts := newTestState(t)
	require.Error(t, ts.run("parse"))
}

func TestRunCLIMissingFile(t *testing.T) {
	ts := newTestState(t)
	err := ts.run("parse", "/work/missing.shl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read /work/missing.shl")
}

func TestSetupDefaults(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/a.shl", "say 1\n")
	require.NoError(t, ts.run("parse", "/work/a.shl"))

	assert.Equal(t, "rd", ts.config.Parser)
	assert.Equal(t, lite.DefaultMaxDepth, ts.config.MaxDepth)
	assert.Equal(t, []string{".shl"}, ts.config.Extensions)
	assert.Equal(t, "yaml", ts.config.Format)
	assert.Equal(t, logrus.WarnLevel, ts.logger.GetLevel())
}

func TestSetupReadsConfigFileAndFlagsOverride(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, ".shelllite.toml", "parser = \"gbp\"\nmax_depth = 64\nlog_level = \"debug\"\n")
	ts.writeFile(t, "/work/a.shl", "say 1\n")

	require.NoError(t, ts.run("parse", "/work/a.shl"))
	assert.Equal(t, "gbp", ts.config.Parser)
	assert.Equal(t, 64, ts.config.MaxDepth)
	assert.Equal(t, logrus.DebugLevel, ts.logger.GetLevel())
	assert.Contains(t, ts.stderr.String(), "loaded config")

	ts = newTestState(t)
	ts.writeFile(t, ".shelllite.toml", "parser = \"gbp\"\n")
	ts.writeFile(t, "/work/a.shl", "say 1\n")
	require.NoError(t, ts.run("--parser", "rd", "--max-depth", "32", "parse", "/work/a.shl"))
	assert.Equal(t, "rd", ts.config.Parser)
	assert.Equal(t, 32, ts.config.MaxDepth)
}

func TestSetupJSONLogs(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/a.shl", "say 1\n")
	require.NoError(t, ts.run("--log-level", "debug", "--log-format", "json", "--parser", "gbp", "parse", "/work/a.shl"))
	assert.Contains(t, ts.stderr.String(), `"msg":"parsed"`)
	assert.Contains(t, ts.stderr.String(), `"parser":"gbp"`)
}

func TestSetupRejectsBadFlags(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/a.shl", "say 1\n")

	err := ts.run("--parser", "lalr", "parse", "/work/a.shl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parser")

	err = ts.run("--max-depth", "0", "parse", "/work/a.shl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--max-depth")

	err = ts.run("--log-format", "xml", "parse", "/work/a.shl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_format")
}
