package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shelllite/shelllite/lite"
	"github.com/spf13/cobra"
)

func newTokensCommand(st *globalState) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := st.readSource(path)
			if err != nil {
				return err
			}
			f, err := st.frontend()
			if err != nil {
				return err
			}
			tokens, err := f.Tokenize(source)
			if err != nil {
				return &sourceError{Path: path, Source: source, Err: err}
			}
			writeTokenTable(st.stdout, tokens)
			return nil
		},
	}
}

type tokenStyles struct {
	line       lipgloss.Style
	keyword    lipgloss.Style
	structural lipgloss.Style
	literal    lipgloss.Style
	operator   lipgloss.Style
}

func newTokenStyles(w io.Writer) tokenStyles {
	r := lipgloss.NewRenderer(w)
	return tokenStyles{
		line:       r.NewStyle().Foreground(mutedColor).Width(5).Align(lipgloss.Right),
		keyword:    r.NewStyle().Foreground(accentColor).Bold(true).Width(12),
		structural: r.NewStyle().Foreground(mutedColor).Width(12),
		literal:    r.NewStyle().Foreground(successColor).Width(12),
		operator:   r.NewStyle().Foreground(highlightColor).Width(12),
	}
}

func (s tokenStyles) kind(tok lite.Token) lipgloss.Style {
	switch {
	case tok.Type.IsStructural():
		return s.structural
	case tok.Type == lite.TokenID || tok.Type == lite.TokenNumber || tok.Type == lite.TokenString:
		return s.literal
	}
	if kind, ok := lite.LookupKeyword(tok.Literal); ok && kind == tok.Type {
		return s.keyword
	}
	return s.operator
}

// writeTokenTable prints one token per row: line, kind, literal.
func writeTokenTable(w io.Writer, tokens []lite.Token) {
	styles := newTokenStyles(w)
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(styles.line.Render(fmt.Sprint(tok.Line)))
		b.WriteString("  ")
		b.WriteString(styles.kind(tok).Render(string(tok.Type)))
		if tok.Literal != "" {
			b.WriteString(" ")
			b.WriteString(fmt.Sprintf("%q", tok.Literal))
		}
		b.WriteString("\n")
	}
	io.WriteString(w, b.String())
}
