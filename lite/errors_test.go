package lite

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSyntaxErrorMessages(t *testing.T) {
	tests := []struct {
		err  *SyntaxError
		want string
	}{
		{errorExpected(TokenRParen, Token{Type: TokenNewline, Line: 3}), `syntax error on line 3: expected ")", got end of line`},
		{errorUnexpected(Token{Type: TokenElse, Line: 1}), `syntax error on line 1: unexpected token 'else'`},
		{errorExpected(TokenIndent, Token{Type: TokenID, Line: 2}), `syntax error on line 2: expected indented block, got identifier`},
		{errorRepeatCount(Token{Type: TokenNewline, Line: 4}), `syntax error on line 4: repeat requires a count`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestErrorLine(t *testing.T) {
	if got := ErrorLine(&LexError{Kind: LexUnterminatedString, Line: 7}); got != 7 {
		t.Fatalf("expected lex line 7, got %d", got)
	}
	wrapped := fmt.Errorf("loading: %w", errorUnexpected(Token{Type: TokenPlus, Line: 5}))
	if got := ErrorLine(wrapped); got != 5 {
		t.Fatalf("expected wrapped syntax line 5, got %d", got)
	}
	if got := ErrorLine(errors.New("plain")); got != 0 {
		t.Fatalf("expected 0 for foreign errors, got %d", got)
	}
}

func TestFormatErrorCodeFrame(t *testing.T) {
	source := "x = 1\n    say (2\n"
	err := errorExpected(TokenRParen, Token{Type: TokenNewline, Line: 2})
	got := FormatError(err, source)
	want := strings.Join([]string{
		`syntax error on line 2: expected ")", got end of line`,
		"  --> line 2",
		" 2 |     say (2",
		"   |     ^",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected frame:\n%s\nwant:\n%s", got, want)
	}

	if FormatError(nil, source) != "" {
		t.Fatalf("expected empty output for nil error")
	}
	if got := FormatError(errors.New("plain"), source); got != "plain" {
		t.Fatalf("expected bare message without a line, got %q", got)
	}
}
