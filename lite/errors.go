package lite

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNestingTooDeep is wrapped by a SyntaxError when the input nests deeper
// than the configured limit.
var ErrNestingTooDeep = errors.New("maximum nesting depth exceeded")

// LexErrorKind classifies lexer failures.
type LexErrorKind int

const (
	LexUnterminatedComment LexErrorKind = iota + 1
	LexUnterminatedString
	LexIndentMismatch
	LexUnexpectedCharacter
)

func (k LexErrorKind) String() string {
	switch k {
	case LexUnterminatedComment:
		return "unterminated multi-line comment"
	case LexUnterminatedString:
		return "unterminated string"
	case LexIndentMismatch:
		return "unindent does not match any outer indentation level"
	case LexUnexpectedCharacter:
		return "unexpected character"
	default:
		return "lex error"
	}
}

// LexError reports the first malformed input found by Tokenize.
type LexError struct {
	Kind LexErrorKind
	Line int
	// Char is set for LexUnexpectedCharacter.
	Char rune
}

func (e *LexError) Error() string {
	if e.Kind == LexUnexpectedCharacter {
		return fmt.Sprintf("lex error on line %d: %s %q", e.Line, e.Kind, e.Char)
	}
	return fmt.Sprintf("lex error on line %d: %s", e.Line, e.Kind)
}

// SyntaxError reports the first token a parser could not accept.
type SyntaxError struct {
	Expected TokenType
	Actual   TokenType
	Line     int
	Msg      string
	Err      error
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error on line %d: ", e.Line)
	switch {
	case e.Msg != "":
		b.WriteString(e.Msg)
	case e.Expected != "":
		fmt.Fprintf(&b, "expected %s, got %s", tokenLabel(e.Expected), tokenLabel(e.Actual))
	default:
		fmt.Fprintf(&b, "unexpected token %s", tokenLabel(e.Actual))
	}
	return b.String()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func errorExpected(expected TokenType, tok Token) *SyntaxError {
	return &SyntaxError{Expected: expected, Actual: tok.Type, Line: tok.Line}
}

func errorUnexpected(tok Token) *SyntaxError {
	return &SyntaxError{Actual: tok.Type, Line: tok.Line}
}

func errorTooDeep(tok Token) *SyntaxError {
	return &SyntaxError{Actual: tok.Type, Line: tok.Line, Msg: ErrNestingTooDeep.Error(), Err: ErrNestingTooDeep}
}

// ErrorLine returns the source line carried by a lexer or parser error, or 0.
func ErrorLine(err error) int {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr.Line
	}
	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		return synErr.Line
	}
	return 0
}

// FormatError renders err followed by a frame of the offending source line.
func FormatError(err error, source string) string {
	if err == nil {
		return ""
	}
	frame := formatCodeFrame(source, ErrorLine(err))
	if frame == "" {
		return err.Error()
	}
	return err.Error() + "\n" + frame
}

func formatCodeFrame(source string, line int) string {
	if source == "" || line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}

	lineText := strings.TrimRight(lines[line-1], "\r")
	trimmed := strings.TrimLeft(lineText, " \t")
	caretPad := strings.Repeat(" ", len([]rune(lineText))-len([]rune(trimmed)))

	lineLabel := strconv.Itoa(line)
	gutterPad := strings.Repeat(" ", len(lineLabel))

	return fmt.Sprintf(
		"  --> line %d\n %s | %s\n %s | %s^",
		line,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}

func errorRepeatCount(tok Token) *SyntaxError {
	return &SyntaxError{Actual: tok.Type, Line: tok.Line, Msg: "repeat requires a count"}
}
