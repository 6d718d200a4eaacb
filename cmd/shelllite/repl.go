package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shelllite/shelllite/lite"
	"github.com/spf13/cobra"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

const (
	replPrompt             = "lite> "
	replContinuationPrompt = "...   "
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	newFrontend func(lite.ParserKind) (*lite.Frontend, error)
	frontend    *lite.Frontend
	parser      lite.ParserKind
	format      string
	showTokens  bool
	names       map[string]struct{}
	pending     []string
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlT key.Binding
	CtrlH key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous input"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next input"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "parse"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlT: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "toggle tokens"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLCommand(st *globalState) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively show the syntax tree of each entered line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := newREPLModel(st.frontendFor, st.parserKind(), st.config.Format)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(st.stdin), tea.WithOutput(st.stdout))
			_, err = p.Run()
			return err
		},
	}
}

func newREPLModel(newFrontend func(lite.ParserKind) (*lite.Frontend, error), parser lite.ParserKind, format string) (replModel, error) {
	f, err := newFrontend(parser)
	if err != nil {
		return replModel{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = replPrompt

	return replModel{
		textInput:   ti,
		newFrontend: newFrontend,
		frontend:    f,
		parser:      parser,
		format:      format,
		names:       make(map[string]struct{}),
		history:     make([]historyEntry, 0),
		cmdHistory:  make([]string, 0),
		historyIdx:  -1,
	}, nil
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlT):
			m.showTokens = !m.showTokens
			return m, nil

		case key.Matches(msg, keys.CtrlH):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			m = m.submit()
			return m, m.quitCmd()
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) quitCmd() tea.Cmd {
	if m.quitting {
		return tea.Quit
	}
	return nil
}

// submit handles one entered line. Block headers open a continuation that an
// empty line closes.
func (m replModel) submit() replModel {
	raw := m.textInput.Value()
	input := strings.TrimSpace(raw)
	m.textInput.SetValue("")
	m.historyIdx = -1

	if len(m.pending) > 0 {
		if input != "" {
			m.pending = append(m.pending, strings.TrimRight(raw, " \t"))
			return m
		}
		source := strings.Join(m.pending, "\n")
		m.pending = nil
		m.textInput.Prompt = replPrompt
		return m.record(source)
	}

	if input == "" {
		return m
	}
	if strings.HasPrefix(input, ":") {
		return m.handleCommand(input)
	}
	m.cmdHistory = append(m.cmdHistory, input)

	if opensBlock(m.frontend, input) {
		m.pending = []string{input}
		m.textInput.Prompt = replContinuationPrompt
		return m
	}
	return m.record(input)
}

func (m replModel) record(source string) replModel {
	output, isErr := m.evaluate(source)
	m.history = append(m.history, historyEntry{input: source, output: output, isErr: isErr})
	return m
}

// opensBlock reports whether source is a complete header still waiting for
// its indented body.
func opensBlock(f *lite.Frontend, source string) bool {
	_, err := f.Parse(source + "\n")
	var syntaxErr *lite.SyntaxError
	return errors.As(err, &syntaxErr) &&
		syntaxErr.Expected == lite.TokenIndent &&
		syntaxErr.Actual == lite.TokenEOF
}

func (m replModel) handleCommand(input string) replModel {
	parts := strings.Fields(input)
	cmd := parts[0]

	reply := func(output string, isErr bool) replModel {
		m.history = append(m.history, historyEntry{input: input, output: output, isErr: isErr})
		return m
	}

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":tokens", ":t":
		m.showTokens = !m.showTokens
		return reply(fmt.Sprintf("token view %s", onOff(m.showTokens)), false)
	case ":parser", ":p":
		if len(parts) < 2 {
			return reply(fmt.Sprintf("parser is %s", m.parser), false)
		}
		kind, err := lite.ParseParserKind(parts[1])
		if err != nil {
			return reply(err.Error(), true)
		}
		f, err := m.newFrontend(kind)
		if err != nil {
			return reply(err.Error(), true)
		}
		m.frontend, m.parser = f, kind
		return reply(fmt.Sprintf("parser set to %s", kind), false)
	case ":format", ":f":
		if len(parts) < 2 || (parts[1] != "yaml" && parts[1] != "json") {
			return reply("usage: :format yaml|json", true)
		}
		m.format = parts[1]
		return reply("format set to "+m.format, false)
	case ":quit", ":q":
		m.quitting = true
	default:
		return reply(fmt.Sprintf("Unknown command: %s", cmd), true)
	}
	return m
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	words := strings.Fields(input)
	if len(words) == 0 || strings.HasSuffix(input, " ") {
		return m
	}
	lastWord := words[len(words)-1]

	var completions []string
	for _, k := range lite.Keywords() {
		if strings.HasPrefix(k, lastWord) {
			completions = append(completions, k)
		}
	}
	for name := range m.names {
		if strings.HasPrefix(name, lastWord) {
			completions = append(completions, name)
		}
	}
	sort.Strings(completions)

	if len(completions) == 1 {
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}
	return m
}

// evaluate parses source and renders either its tokens or its tree.
func (m replModel) evaluate(source string) (string, bool) {
	tokens, err := m.frontend.Tokenize(source + "\n")
	if err != nil {
		return err.Error(), true
	}
	if m.showTokens {
		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(tok.String())
			b.WriteString(" ")
		}
		return strings.TrimSpace(b.String()), false
	}

	stmts, err := m.frontend.ParseTokens(tokens)
	if err != nil {
		return lite.FormatError(err, source), true
	}
	m.rememberNames(stmts)
	out, err := lite.MarshalProgram(stmts, m.format)
	if err != nil {
		return err.Error(), true
	}
	return strings.TrimRight(string(out), "\n"), false
}

func (m replModel) rememberNames(stmts []lite.Statement) {
	for _, stmt := range stmts {
		lite.Walk(stmt, func(n lite.Node) bool {
			switch typed := n.(type) {
			case *lite.AssignStmt:
				m.names[typed.Name] = struct{}{}
			case *lite.ConstStmt:
				m.names[typed.Name] = struct{}{}
			case *lite.FunctionStmt:
				m.names[typed.Name] = struct{}{}
			case *lite.ClassStmt:
				m.names[typed.Name] = struct{}{}
			}
			return true
		})
	}
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("ShellLite REPL")
	status := mutedStyle.Render(fmt.Sprintf("parser %s · %s", m.parser, m.format))
	b.WriteString(header + " " + status + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	var lines []string
	for _, entry := range m.history {
		if entry.input != "" {
			for i, line := range strings.Split(entry.input, "\n") {
				marker := "  › "
				if i > 0 {
					marker = "  · "
				}
				lines = append(lines, mutedStyle.Render(marker)+line)
			}
		}
		style, marker := resultStyle, "→ "
		if entry.isErr {
			style, marker = errorStyle, "✗ "
		}
		for i, line := range strings.Split(entry.output, "\n") {
			if i > 0 {
				marker = "  "
			}
			lines = append(lines, "  "+style.Render(marker+line))
		}
		lines = append(lines, "")
	}

	reservedLines := 8
	if m.showHelp {
		reservedLines += 12
	}
	if available := m.height - reservedLines; available > 0 && len(lines) > available {
		lines = lines[len(lines)-available:]
	}
	for _, line := range lines {
		b.WriteString(line + "\n")
	}

	for _, line := range m.pending {
		b.WriteString(mutedStyle.Render("  · ") + line + "\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+t") + helpDescStyle.Render(" tokens  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate input history"},
		{"Tab", "Autocomplete"},
		{"Enter", "Parse the line; an empty line ends a block"},
		{":help", "Toggle this help"},
		{":tokens", "Toggle token view"},
		{":parser", "Show or set the parser (rd, gbp)"},
		{":format", "Set tree format (yaml, json)"},
		{":clear", "Clear history"},
		{":quit", "Exit REPL"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}
