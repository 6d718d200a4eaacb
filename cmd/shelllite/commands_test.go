package main

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/shelllite/shelllite/lite"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScript = `to greet name
    say "hi {name}"
greet "Ann"
`

func TestTokensCommand(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/a.shl", "say 1\n")
	require.NoError(t, ts.run("tokens", "/work/a.shl"))

	lines := strings.Split(strings.TrimRight(ts.stdout.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "OUTPUT")
	assert.Contains(t, lines[0], `"say"`)
	assert.Contains(t, lines[1], "NUMBER")
	assert.Contains(t, lines[1], `"1"`)
	assert.Contains(t, lines[2], "NEWLINE")
	assert.Contains(t, lines[3], "EOF")
}

func TestTokensCommandLexError(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/a.shl", "say 1\nsay $\n")
	err := ts.run("tokens", "/work/a.shl")
	var lexErr *lite.LexError
	require.True(t, errors.As(err, &lexErr), "got %v", err)
	assert.Equal(t, 2, lexErr.Line)
	assert.Contains(t, err.Error(), "/work/a.shl: lex error on line 2")
}

func TestParseCommandFormats(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/a.shl", sampleScript)
	require.NoError(t, ts.run("parse", "/work/a.shl"))
	assert.True(t, strings.HasPrefix(ts.stdout.String(), "- kind: FunctionDef\n"), ts.stdout.String())

	ts = newTestState(t)
	ts.writeFile(t, "/work/a.shl", sampleScript)
	require.NoError(t, ts.run("parse", "--format", "json", "/work/a.shl"))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(ts.stdout.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "FunctionDef", decoded[0]["kind"])
	assert.Equal(t, "Call", decoded[1]["kind"])

	ts = newTestState(t)
	ts.writeFile(t, "/work/a.shl", sampleScript)
	err := ts.run("parse", "--format", "xml", "/work/a.shl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestParseCommandFormatFromConfig(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, ".shelllite.yaml", "format: json\n")
	ts.writeFile(t, "/work/a.shl", "say 1\n")
	require.NoError(t, ts.run("parse", "/work/a.shl"))
	assert.True(t, strings.HasPrefix(ts.stdout.String(), "["), ts.stdout.String())
}

func TestParseCommandParsersPrintSameTree(t *testing.T) {
	outputs := make([]string, 0, 2)
	for _, parser := range []string{"rd", "gbp"} {
		ts := newTestState(t)
		ts.writeFile(t, "/work/a.shl", sampleScript)
		require.NoError(t, ts.run("--parser", parser, "parse", "/work/a.shl"))
		outputs = append(outputs, ts.stdout.String())
	}
	assert.Equal(t, outputs[0], outputs[1])
}

func TestParseCommandReportsCodeFrame(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/bad.shl", "x = 1\nsay (1 + 2\n")
	err := ts.run("parse", "/work/bad.shl")
	require.Error(t, err)

	var syntaxErr *lite.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 2, syntaxErr.Line)
	assert.Contains(t, err.Error(), "/work/bad.shl: syntax error on line 2")
	assert.Contains(t, err.Error(), " 2 | say (1 + 2")
}

func TestCheckCommand(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/good.shl", sampleScript)
	ts.writeFile(t, "/work/nested/also.shl", "say 1\n")
	ts.writeFile(t, "/work/bad.shl", "if x\nsay 1\n")
	ts.writeFile(t, "/work/notes.txt", "not a script (\n")

	err := ts.run("check", "--jobs", "2", "/work")
	require.Error(t, err)
	assert.Equal(t, "check found errors in 1 of 3 file(s)", err.Error())
	out := ts.stdout.String()
	assert.Contains(t, out, "/work/bad.shl: syntax error on line 2")
	assert.NotContains(t, out, "good.shl")
	assert.NotContains(t, out, "notes.txt")
}

func TestCheckCommandCompare(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/good.shl", sampleScript)
	ts.writeFile(t, "/work/loops.shl", "repeat 3 times\n    say 1\nforever\n    stop\n")
	require.NoError(t, ts.run("check", "--compare", "/work"))
	assert.Empty(t, ts.stdout.String())
}

func TestCheckCommandExplicitFileAndBadJobs(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/script.txt", "say 1\n")
	require.NoError(t, ts.run("check", "/work/script.txt"))

	ts = newTestState(t)
	ts.writeFile(t, "/work/a.shl", "say 1\n")
	err := ts.run("check", "--jobs", "0", "/work")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--jobs")
}

func TestCheckCommandCustomExtensions(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, ".shelllite.toml", "extensions = [\".lite\"]\n")
	ts.writeFile(t, "/work/a.lite", "say (\n")
	ts.writeFile(t, "/work/b.shl", "say (\n")
	err := ts.run("check", "/work")
	require.Error(t, err)
	assert.Contains(t, ts.stdout.String(), "/work/a.lite")
	assert.NotContains(t, ts.stdout.String(), "/work/b.shl")
}

func TestFmtCommandPrintsFormattedOutput(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/a.shl", "if x  \r\n    say 1\t \r\n\n\n")
	require.NoError(t, ts.run("fmt", "/work/a.shl"))
	assert.Equal(t, "if x\n    say 1\n", ts.stdout.String())
}

func TestFmtCommandWriteFormatsFileInPlace(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/a.shl", "say 1   \n")
	ts.writeFile(t, "/work/b.shl", "say 2\n")
	require.NoError(t, ts.run("fmt", "-w", "/work"))

	updated, err := afero.ReadFile(ts.fs, "/work/a.shl")
	require.NoError(t, err)
	assert.Equal(t, "say 1\n", string(updated))
	assert.Empty(t, ts.stdout.String())
}

func TestFmtCommandCheckDetectsUnformattedFiles(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/a.shl", "say 1   \n")
	ts.writeFile(t, "/work/b.shl", "say 2\n")
	err := ts.run("fmt", "--check", "/work")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 file(s) need formatting")
	assert.Equal(t, "/work/a.shl\n", ts.stdout.String())

	original, err := afero.ReadFile(ts.fs, "/work/a.shl")
	require.NoError(t, err)
	assert.Equal(t, "say 1   \n", string(original))
}

func TestFormatSourceKeepsIndentation(t *testing.T) {
	assert.Equal(t, "\tsay 1\n", formatSource("\tsay 1  \n"))
	assert.Equal(t, "", formatSource("\n\n  \n"))
}

func TestAnalyzeCommand(t *testing.T) {
	ts := newTestState(t)
	ts.writeFile(t, "/work/a.shl", `to f
    give 1
    say 2
forever
    say "x"
say "after"
`)
	err := ts.run("analyze", "/work/a.shl")
	require.Error(t, err)
	assert.Equal(t, "analysis found 2 issue(s)", err.Error())
	assert.Equal(t,
		"/work/a.shl:3: unreachable statement (f)\n/work/a.shl:6: unreachable statement (<main>)\n",
		ts.stdout.String())

	ts = newTestState(t)
	ts.writeFile(t, "/work/ok.shl", sampleScript)
	require.NoError(t, ts.run("analyze", "/work/ok.shl"))
	assert.Equal(t, "No issues found\n", ts.stdout.String())
}

func TestAnalyzeProgram(t *testing.T) {
	source := `structure Dog
    to bark
        stop
        say 1
to a
    if x
        give 1
    else
        error "no"
    say "dead"
to b
    forever
        while yes
            stop
        say 1
    say "also dead"
to c
    forever
        if x
            stop
    say "alive"
to d
    when v
        is 1
            exit
        otherwise
            exit
    say "dead too"
to e
    try
        give 1
    catch err
        say err
    say "alive too"
`
	program, err := lite.MustNewFrontend(lite.Config{}).Parse(source)
	require.NoError(t, err)

	warnings := analyzeProgram(program.Statements)
	got := make([]string, 0, len(warnings))
	for _, w := range warnings {
		got = append(got, w.Scope+":"+strconv.Itoa(w.Line))
	}
	assert.Equal(t, []string{"Dog.bark:4", "a:10", "b:16", "d:28"}, got)
}
