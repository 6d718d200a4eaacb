package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/shelllite/shelllite/lite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLSPServer(docs map[string]string) *lspServer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s := newLSPServer(strings.NewReader(""), io.Discard, lite.MustNewFrontend(lite.Config{}), logger)
	for uri, text := range docs {
		s.docs[uri] = text
	}
	return s
}

func TestDiagnosticsForSourceWithoutErrors(t *testing.T) {
	diags := diagnosticsForSource(lite.MustNewFrontend(lite.Config{}), "say 1\n")
	assert.Empty(t, diags)
}

func TestDiagnosticsForSourceWithParseError(t *testing.T) {
	diags := diagnosticsForSource(lite.MustNewFrontend(lite.Config{}), "x = 1\nif a\n    say (2\n")
	require.Len(t, diags, 1)
	first := diags[0]
	assert.Equal(t, 1, first["severity"])
	assert.Equal(t, `syntax error on line 3: expected ")", got end of line`, first["message"])

	rng := first["range"].(map[string]any)
	assert.Equal(t, map[string]any{"line": 2, "character": 4}, rng["start"])
	assert.Equal(t, map[string]any{"line": 2, "character": 10}, rng["end"])
}

func TestDiagnosticsForSourceWithLexError(t *testing.T) {
	diags := diagnosticsForSource(lite.MustNewFrontend(lite.Config{}), "say \"open\n")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0]["message"], "unterminated string")
}

func TestCompletionItemsAreSortedAndCategorized(t *testing.T) {
	source := "to greet name\n    say name\ntotal = 3\nstructure Dog\n    has age\n"
	items := completionItems(lite.MustNewFrontend(lite.Config{}), source)
	require.NotEmpty(t, items)

	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item["label"].(string))
	}
	assert.True(t, slices.IsSorted(labels), "labels not sorted: %v", labels)

	byLabel := make(map[string]map[string]any)
	for _, item := range items {
		byLabel[item["label"].(string)] = item
	}
	assert.Equal(t, completionKindKeyword, byLabel["if"]["kind"])
	assert.Equal(t, completionKindFunction, byLabel["greet"]["kind"])
	assert.Equal(t, "to greet name", byLabel["greet"]["detail"])
	assert.Equal(t, completionKindVariable, byLabel["total"]["kind"])
	assert.Equal(t, completionKindVariable, byLabel["name"]["kind"])
	assert.Equal(t, completionKindClass, byLabel["Dog"]["kind"])
}

func TestCompletionItemsForBrokenDocument(t *testing.T) {
	items := completionItems(lite.MustNewFrontend(lite.Config{}), "say (")
	assert.Len(t, items, len(lite.Keywords()))
}

func TestHandleMessageDidOpenPublishesDiagnostics(t *testing.T) {
	server := newTestLSPServer(nil)
	payload, err := json.Marshal(map[string]any{
		"textDocument": map[string]any{
			"uri":  "file:///tmp/test.shl",
			"text": "if x\nsay 1\n",
		},
	})
	require.NoError(t, err)

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/didOpen",
		Params:  payload,
	})
	require.Len(t, messages, 1)
	assert.Equal(t, "textDocument/publishDiagnostics", messages[0].Method)
	params := messages[0].Params.(map[string]any)
	diags := params["diagnostics"].([]map[string]any)
	require.Len(t, diags, 1)
	assert.Equal(t, "file:///tmp/test.shl", params["uri"])

	closePayload, err := json.Marshal(map[string]any{"textDocument": map[string]any{"uri": "file:///tmp/test.shl"}})
	require.NoError(t, err)
	assert.Nil(t, server.handleMessage(lspInboundMessage{Method: "textDocument/didClose", Params: closePayload}))
	assert.Empty(t, server.docs)
}

func TestHandleMessageHover(t *testing.T) {
	uri := "file:///tmp/test.shl"
	server := newTestLSPServer(map[string]string{
		uri: "to greet name greeting=\"hi\"\n    say greeting\ngreet \"Ann\"\n",
	})

	hover := func(line, character int) string {
		payload, err := json.Marshal(map[string]any{
			"textDocument": map[string]any{"uri": uri},
			"position":     map[string]any{"line": line, "character": character},
		})
		require.NoError(t, err)
		messages := server.handleMessage(lspInboundMessage{
			JSONRPC: "2.0",
			ID:      rawID("1"),
			Method:  "textDocument/hover",
			Params:  payload,
		})
		require.Len(t, messages, 1)
		if messages[0].Result == nil {
			return ""
		}
		result := messages[0].Result.(map[string]any)
		return result["contents"].(map[string]any)["value"].(string)
	}

	assert.Contains(t, hover(0, 1), "ShellLite keyword (TO)")
	assert.Contains(t, hover(2, 2), "to greet name greeting=…")
	assert.Contains(t, hover(2, 2), "line 1")
	assert.Contains(t, hover(1, 10), "variable")
	assert.Equal(t, "", hover(1, 0))
}

func TestHandleMessageUnknownMethod(t *testing.T) {
	server := newTestLSPServer(nil)
	messages := server.handleMessage(lspInboundMessage{JSONRPC: "2.0", ID: rawID("7"), Method: "workspace/symbol"})
	require.Len(t, messages, 1)
	require.NotNil(t, messages[0].Error)
	assert.Equal(t, -32601, messages[0].Error.Code)

	assert.Nil(t, server.handleMessage(lspInboundMessage{Method: "$/cancelRequest"}))
}

func TestServeRoundTrip(t *testing.T) {
	var in bytes.Buffer
	writeFrame := func(msg map[string]any) {
		data, err := json.Marshal(msg)
		require.NoError(t, err)
		fmt.Fprintf(&in, "Content-Length: %d\r\n\r\n%s", len(data), data)
	}
	writeFrame(map[string]any{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": map[string]any{}})
	writeFrame(map[string]any{"jsonrpc": "2.0", "method": "textDocument/didOpen", "params": map[string]any{
		"textDocument": map[string]any{"uri": "file:///a.shl", "text": "say (\n"},
	}})
	writeFrame(map[string]any{"jsonrpc": "2.0", "id": 2, "method": "shutdown"})
	writeFrame(map[string]any{"jsonrpc": "2.0", "method": "exit"})

	var out bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	server := newLSPServer(&in, &out, lite.MustNewFrontend(lite.Config{}), logger)
	require.NoError(t, server.serve())

	reader := &lspServer{reader: bufio.NewReader(&out)}
	var methods []string
	for {
		payload, err := reader.readPayload()
		if err != nil {
			break
		}
		var msg map[string]any
		require.NoError(t, json.Unmarshal(payload, &msg))
		method, _ := msg["method"].(string)
		methods = append(methods, method)
	}
	assert.Equal(t, []string{"", "textDocument/publishDiagnostics", ""}, methods)
}

func TestRunCLIStartsLSPAndExitsOnEOF(t *testing.T) {
	ts := newTestState(t)
	require.NoError(t, ts.run("lsp"))
}

func TestReadPayloadRequiresContentLength(t *testing.T) {
	s := &lspServer{reader: bufio.NewReader(strings.NewReader("X-Other: 1\r\n\r\n{}"))}
	_, err := s.readPayload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Content-Length")
}

func TestWordAtPosition(t *testing.T) {
	source := "to greet name\n    say name_2\n"
	assert.Equal(t, "name_2", wordAtPosition(source, 1, 10))
	assert.Equal(t, "name_2", wordAtPosition(source, 1, 14))
	assert.Equal(t, "", wordAtPosition(source, 1, 2))
	assert.Equal(t, "", wordAtPosition(source, 5, 0))
}

func TestWordAtPositionUsesUTF16CharacterOffsets(t *testing.T) {
	source := "😀😀x y\n"
	assert.Equal(t, "x", wordAtPosition(source, 0, 4))
}

func rawID(value string) *json.RawMessage {
	raw := json.RawMessage(value)
	return &raw
}
