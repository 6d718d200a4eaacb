package lite

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	tokens  []Token
	indents []int
	line    int
}

// Tokenize converts source text into a flat token sequence. Block structure
// is encoded with INDENT and DEDENT tokens derived from leading whitespace.
// On failure no tokens are returned.
func Tokenize(source string) ([]Token, error) {
	l := &lexer{indents: []int{0}}
	if err := l.run(source); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) run(source string) error {
	source, err := stripBlockComments(source)
	if err != nil {
		return err
	}

	for i, line := range strings.Split(source, "\n") {
		l.line = i + 1
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}

		width := utf8.RuneCountInString(line) - utf8.RuneCountInString(strings.TrimLeftFunc(line, unicode.IsSpace))
		if err := l.indentTo(width); err != nil {
			return err
		}
		if err := l.tokenizeLine(stripped); err != nil {
			return err
		}
		l.emit(TokenNewline, "")
	}

	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(TokenDedent, "")
	}
	l.emit(TokenEOF, "")
	return nil
}

func (l *lexer) emit(tt TokenType, literal string) {
	l.tokens = append(l.tokens, Token{Type: tt, Literal: literal, Line: l.line})
}

func (l *lexer) indentTo(width int) error {
	top := l.indents[len(l.indents)-1]
	switch {
	case width > top:
		l.indents = append(l.indents, width)
		l.emit(TokenIndent, "")
	case width < top:
		for width < l.indents[len(l.indents)-1] {
			l.indents = l.indents[:len(l.indents)-1]
			l.emit(TokenDedent, "")
		}
		if l.indents[len(l.indents)-1] != width {
			return &LexError{Kind: LexIndentMismatch, Line: l.line}
		}
	}
	return nil
}

func (l *lexer) tokenizeLine(line string) error {
	pos := 0
	for pos < len(line) {
		r, width := utf8.DecodeRuneInString(line[pos:])
		if unicode.IsSpace(r) {
			pos += width
			continue
		}

		c := line[pos]
		switch {
		case isDigit(c):
			end := scanDigits(line, pos)
			if end+1 < len(line) && line[end] == '.' && isDigit(line[end+1]) {
				end = scanDigits(line, end+1)
			}
			l.emit(TokenNumber, line[pos:end])
			pos = end
			continue
		case c == '"' || c == '\'':
			closing := strings.IndexByte(line[pos+1:], c)
			if closing < 0 {
				return &LexError{Kind: LexUnterminatedString, Line: l.line}
			}
			l.emit(TokenString, line[pos+1:pos+1+closing])
			pos += closing + 2
			continue
		case strings.HasPrefix(line[pos:], "..."):
			l.emit(TokenEllipsis, "...")
			pos += 3
			continue
		}

		if pos+2 <= len(line) {
			if tt, ok := twoCharOperators[line[pos:pos+2]]; ok {
				l.emit(tt, line[pos:pos+2])
				pos += 2
				continue
			}
		}
		if tt, ok := singleCharOperators[c]; ok {
			l.emit(tt, line[pos:pos+1])
			pos++
			continue
		}

		if isIdentStart(c) {
			end := pos + 1
			for end < len(line) && isIdentPart(line[end]) {
				end++
			}
			word := line[pos:end]
			if tt, ok := keywords[word]; ok {
				l.emit(tt, word)
			} else {
				l.emit(TokenID, word)
			}
			pos = end
			continue
		}

		return &LexError{Kind: LexUnexpectedCharacter, Line: l.line, Char: r}
	}
	return nil
}

// stripBlockComments removes /* ... */ spans, keeping one newline per newline
// removed so later line numbers are unchanged.
func stripBlockComments(source string) (string, error) {
	if !strings.Contains(source, "/*") {
		return source, nil
	}

	var b strings.Builder
	b.Grow(len(source))
	line := 1
	for i := 0; i < len(source); {
		if strings.HasPrefix(source[i:], "/*") {
			end := strings.Index(source[i+2:], "*/")
			if end < 0 {
				return "", &LexError{Kind: LexUnterminatedComment, Line: line}
			}
			comment := source[i : i+2+end+2]
			newlines := strings.Count(comment, "\n")
			b.WriteString(strings.Repeat("\n", newlines))
			line += newlines
			i += len(comment)
			continue
		}
		if source[i] == '\n' {
			line++
		}
		b.WriteByte(source[i])
		i++
	}
	return b.String(), nil
}

func scanDigits(s string, pos int) int {
	for pos < len(s) && isDigit(s[pos]) {
		pos++
	}
	return pos
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
