package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/shelllite/shelllite/lite"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	completionKindFunction = 3
	completionKindVariable = 6
	completionKindClass    = 7
	completionKindKeyword  = 14
)

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspDidCloseParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	} `json:"position"`
}

type lspServer struct {
	reader   *bufio.Reader
	writer   *bufio.Writer
	frontend *lite.Frontend
	logger   logrus.FieldLogger
	docs     map[string]string
}

func newLSPCommand(st *globalState) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run a language server over stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := st.frontend()
			if err != nil {
				return err
			}
			return newLSPServer(st.stdin, st.stdout, f, st.logger).serve()
		},
	}
}

func newLSPServer(in io.Reader, out io.Writer, f *lite.Frontend, logger logrus.FieldLogger) *lspServer {
	return &lspServer{
		reader:   bufio.NewReader(in),
		writer:   bufio.NewWriter(out),
		frontend: f,
		logger:   logger,
		docs:     make(map[string]string),
	}
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			s.logger.WithError(err).Warn("lsp: malformed message")
			continue
		}
		s.logger.WithField("method", incoming.Method).Debug("lsp: request")

		for _, msg := range s.handleMessage(incoming) {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"capabilities": map[string]any{
						"textDocumentSync": 1,
						"hoverProvider":    true,
						"completionProvider": map[string]any{
							"resolveProvider": false,
						},
					},
					"serverInfo": map[string]any{"name": "shelllite-lsp"},
				},
			},
		}
	case "initialized", "exit":
		return nil
	case "shutdown":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: nil}}
	case "textDocument/didOpen":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return []lspOutboundMessage{s.publishDiagnostics(params.TextDocument.URI, params.TextDocument.Text)}
	case "textDocument/didChange":
		var params lspDidChangeParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil || len(params.ContentChanges) == 0 {
			return nil
		}
		latest := params.ContentChanges[len(params.ContentChanges)-1].Text
		s.docs[params.TextDocument.URI] = latest
		return []lspOutboundMessage{s.publishDiagnostics(params.TextDocument.URI, latest)}
	case "textDocument/didClose":
		var params lspDidCloseParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		delete(s.docs, params.TextDocument.URI)
		return nil
	case "textDocument/completion":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		_ = json.Unmarshal(incoming.Params, &params)
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"isIncomplete": false,
					"items":        completionItems(s.frontend, s.docs[params.TextDocument.URI]),
				},
			},
		}
	case "textDocument/hover":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return []lspOutboundMessage{
				{
					JSONRPC: "2.0",
					ID:      incoming.ID,
					Error:   &lspResponseError{Code: -32602, Message: "invalid hover params"},
				},
			}
		}
		source := s.docs[params.TextDocument.URI]
		word := wordAtPosition(source, params.Position.Line, params.Position.Character)
		if word == "" {
			return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: nil}}
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"contents": map[string]any{
						"kind":  "markdown",
						"value": s.hoverText(source, word),
					},
				},
			},
		}
	default:
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Error:   &lspResponseError{Code: -32601, Message: "method not found"},
			},
		}
	}
}

func (s *lspServer) publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(s.frontend, source),
		},
	}
}

// diagnosticsForSource reports the first lexer or parser error, spanning the
// whole offending line.
func diagnosticsForSource(f *lite.Frontend, source string) []map[string]any {
	_, err := f.Parse(source)
	if err == nil {
		return []map[string]any{}
	}

	line := max(lite.ErrorLine(err)-1, 0)
	lines := strings.Split(source, "\n")
	start, end := 0, 1
	if line < len(lines) {
		text := strings.TrimRight(lines[line], "\r")
		trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
		start = len([]rune(text)) - len([]rune(trimmed))
		end = max(len([]rune(text)), start+1)
	}
	return []map[string]any{newDiagnostic(line, start, end, err.Error())}
}

func newDiagnostic(line, start, end int, message string) map[string]any {
	return map[string]any{
		"range": map[string]any{
			"start": map[string]any{"line": line, "character": start},
			"end":   map[string]any{"line": line, "character": end},
		},
		"severity": 1,
		"source":   "shelllite",
		"message":  message,
	}
}

// documentSymbols collects the functions, classes and variables a document
// defines. Documents that do not parse yield nothing.
type documentSymbols struct {
	functions map[string]*lite.FunctionStmt
	classes   map[string]*lite.ClassStmt
	variables map[string]struct{}
}

func collectSymbols(f *lite.Frontend, source string) documentSymbols {
	syms := documentSymbols{
		functions: make(map[string]*lite.FunctionStmt),
		classes:   make(map[string]*lite.ClassStmt),
		variables: make(map[string]struct{}),
	}
	program, err := f.Parse(source)
	if err != nil {
		return syms
	}
	for _, stmt := range program.Statements {
		lite.Walk(stmt, func(n lite.Node) bool {
			switch typed := n.(type) {
			case *lite.FunctionStmt:
				syms.functions[typed.Name] = typed
				for _, p := range typed.Params {
					syms.variables[p.Name] = struct{}{}
				}
			case *lite.ClassStmt:
				syms.classes[typed.Name] = typed
			case *lite.AssignStmt:
				syms.variables[typed.Name] = struct{}{}
			case *lite.ConstStmt:
				syms.variables[typed.Name] = struct{}{}
			case *lite.ForInStmt:
				syms.variables[typed.Var] = struct{}{}
			case *lite.InstantiateStmt:
				syms.variables[typed.Var] = struct{}{}
			}
			return true
		})
	}
	return syms
}

func completionItems(f *lite.Frontend, source string) []map[string]any {
	syms := collectSymbols(f, source)
	kinds := make(map[string]int)
	details := make(map[string]string)
	for name := range syms.variables {
		kinds[name], details[name] = completionKindVariable, "variable"
	}
	for name, fn := range syms.functions {
		kinds[name], details[name] = completionKindFunction, functionSignature(fn)
	}
	for name := range syms.classes {
		kinds[name], details[name] = completionKindClass, "class"
	}
	for _, keyword := range lite.Keywords() {
		kinds[keyword], details[keyword] = completionKindKeyword, "keyword"
	}

	labels := make([]string, 0, len(kinds))
	for label := range kinds {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	items := make([]map[string]any, 0, len(labels))
	for _, label := range labels {
		items = append(items, map[string]any{
			"label":  label,
			"kind":   kinds[label],
			"detail": details[label],
		})
	}
	return items
}

func (s *lspServer) hoverText(source, word string) string {
	if kind, ok := lite.LookupKeyword(word); ok {
		return fmt.Sprintf("`%s`\n\nShellLite keyword (%s)", word, kind)
	}
	syms := collectSymbols(s.frontend, source)
	if fn, ok := syms.functions[word]; ok {
		return fmt.Sprintf("```\n%s\n```\n\nfunction defined on line %d", functionSignature(fn), fn.Line())
	}
	if class, ok := syms.classes[word]; ok {
		detail := fmt.Sprintf("class defined on line %d", class.Line())
		if class.Parent != "" {
			detail += ", extends `" + class.Parent + "`"
		}
		return fmt.Sprintf("`%s`\n\n%s", word, detail)
	}
	if _, ok := syms.variables[word]; ok {
		return fmt.Sprintf("`%s`\n\nvariable", word)
	}
	return fmt.Sprintf("`%s`\n\nsymbol", word)
}

func functionSignature(fn *lite.FunctionStmt) string {
	parts := make([]string, 0, len(fn.Params)+2)
	parts = append(parts, "to", fn.Name)
	for _, p := range fn.Params {
		if p.Default != nil {
			parts = append(parts, p.Name+"=…")
			continue
		}
		parts = append(parts, p.Name)
	}
	return strings.Join(parts, " ")
}

func wordAtPosition(source string, line, character int) string {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}

	runes := []rune(lines[line])
	if len(runes) == 0 {
		return ""
	}

	cursor := runeIndex(runes, character)
	if cursor == len(runes) {
		cursor--
	}
	if !isWordRune(runes[cursor]) {
		if cursor > 0 && isWordRune(runes[cursor-1]) {
			cursor--
		} else {
			return ""
		}
	}

	start := cursor
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := cursor
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

// runeIndex converts an LSP character offset, counted in UTF-16 code units,
// into an index into runes.
func runeIndex(runes []rune, character int) int {
	units := 0
	for i, r := range runes {
		if units >= character {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(runes)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, errors.New("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}
