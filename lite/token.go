package lite

import (
	"fmt"
	"strings"
)

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	TokenID      TokenType = "ID"
	TokenNumber  TokenType = "NUMBER"
	TokenString  TokenType = "STRING"
	TokenIndent  TokenType = "INDENT"
	TokenDedent  TokenType = "DEDENT"
	TokenNewline TokenType = "NEWLINE"
	TokenEOF     TokenType = "EOF"

	TokenEllipsis TokenType = "DOTDOTDOT"

	TokenArrow   TokenType = "ARROW"
	TokenEQ      TokenType = "EQ"
	TokenNEQ     TokenType = "NEQ"
	TokenLE      TokenType = "LE"
	TokenGE      TokenType = "GE"
	TokenPlusEq  TokenType = "PLUSEQ"
	TokenMinusEq TokenType = "MINUSEQ"
	TokenMulEq   TokenType = "MULEQ"
	TokenDivEq   TokenType = "DIVEQ"
	TokenModEq   TokenType = "MODEQ"

	TokenPlus     TokenType = "PLUS"
	TokenMinus    TokenType = "MINUS"
	TokenMul      TokenType = "MUL"
	TokenDiv      TokenType = "DIV"
	TokenMod      TokenType = "MOD"
	TokenAssign   TokenType = "ASSIGN"
	TokenGT       TokenType = "GT"
	TokenLT       TokenType = "LT"
	TokenQuestion TokenType = "QUESTION"
	TokenLParen   TokenType = "LPAREN"
	TokenRParen   TokenType = "RPAREN"
	TokenLBracket TokenType = "LBRACKET"
	TokenRBracket TokenType = "RBRACKET"
	TokenColon    TokenType = "COLON"
	TokenLBrace   TokenType = "LBRACE"
	TokenRBrace   TokenType = "RBRACE"
	TokenComma    TokenType = "COMMA"
	TokenDot      TokenType = "DOT"

	// TokenPow has a precedence slot but no surface syntax yet.
	TokenPow TokenType = "POW"

	TokenIf        TokenType = "IF"
	TokenElse      TokenType = "ELSE"
	TokenElif      TokenType = "ELIF"
	TokenFor       TokenType = "FOR"
	TokenIn        TokenType = "IN"
	TokenRange     TokenType = "RANGE"
	TokenLoop      TokenType = "LOOP"
	TokenTimes     TokenType = "TIMES"
	TokenWhile     TokenType = "WHILE"
	TokenUntil     TokenType = "UNTIL"
	TokenRepeat    TokenType = "REPEAT"
	TokenForever   TokenType = "FOREVER"
	TokenStop      TokenType = "STOP"
	TokenSkip      TokenType = "SKIP"
	TokenExit      TokenType = "EXIT"
	TokenUnless    TokenType = "UNLESS"
	TokenWhen      TokenType = "WHEN"
	TokenOtherwise TokenType = "OTHERWISE"
	TokenThen      TokenType = "THEN"
	TokenDo        TokenType = "DO"
	TokenOutput    TokenType = "OUTPUT"
	TokenInput     TokenType = "INPUT"
	TokenTo        TokenType = "TO"
	TokenReturn    TokenType = "RETURN"
	TokenFn        TokenType = "FN"
	TokenStructure TokenType = "STRUCTURE"
	TokenHas       TokenType = "HAS"
	TokenWith      TokenType = "WITH"
	TokenIs        TokenType = "IS"
	TokenExtends   TokenType = "EXTENDS"
	TokenFrom      TokenType = "FROM"
	TokenMake      TokenType = "MAKE"
	TokenYes       TokenType = "YES"
	TokenNo        TokenType = "NO"
	TokenConst     TokenType = "CONST"
	TokenAnd       TokenType = "AND"
	TokenOr        TokenType = "OR"
	TokenNot       TokenType = "NOT"
	TokenTry       TokenType = "TRY"
	TokenCatch     TokenType = "CATCH"
	TokenAlways    TokenType = "ALWAYS"
	TokenError     TokenType = "ERROR"
	TokenUse       TokenType = "USE"
	TokenAs        TokenType = "AS"
	TokenShare     TokenType = "SHARE"
	TokenExecute   TokenType = "EXECUTE"
)

// Token captures lexical information for the parsers.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
}

func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("%s@%d", t.Type, t.Line)
	}
	return fmt.Sprintf("%s(%q)@%d", t.Type, t.Literal, t.Line)
}

// IsStructural reports whether the token only carries layout.
func (tt TokenType) IsStructural() bool {
	switch tt {
	case TokenIndent, TokenDedent, TokenNewline, TokenEOF:
		return true
	}
	return false
}

// endOfInput is the token a parser sees once it reads past the slice. A
// well-formed stream ends with EOF already; truncated streams get one on the
// last line.
func endOfInput(tokens []Token) Token {
	if len(tokens) == 0 {
		return Token{Type: TokenEOF, Line: 1}
	}
	last := tokens[len(tokens)-1]
	if last.Type == TokenEOF {
		return last
	}
	return Token{Type: TokenEOF, Line: last.Line}
}

func tokenLabel(tt TokenType) string {
	switch tt {
	case "":
		return "nothing"
	case TokenEOF:
		return "end of input"
	case TokenNewline:
		return "end of line"
	case TokenIndent:
		return "indented block"
	case TokenDedent:
		return "end of block"
	case TokenID:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	}
	if sym, ok := operatorSymbols[tt]; ok {
		return fmt.Sprintf("%q", sym)
	}
	return fmt.Sprintf("'%s'", strings.ToLower(string(tt)))
}
