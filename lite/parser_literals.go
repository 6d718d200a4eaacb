package lite

import (
	"regexp"
	"strconv"
	"strings"
)

func numberLiteral(tok Token) (*NumberLiteral, error) {
	if strings.Contains(tok.Literal, ".") {
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, &SyntaxError{Actual: tok.Type, Line: tok.Line, Msg: "invalid number " + tok.Literal, Err: err}
		}
		return &NumberLiteral{base: base{tok.Line}, Float: f, IsFloat: true}, nil
	}
	n, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, &SyntaxError{Actual: tok.Type, Line: tok.Line, Msg: "integer literal out of range: " + tok.Literal, Err: err}
	}
	return &NumberLiteral{base: base{tok.Line}, Int: n}, nil
}

var placeholderPattern = regexp.MustCompile(`\{([^}]+)\}`)

// interpolate expands `{name}` placeholders in a string argument into a
// left-folded concatenation of string pieces and variable reads. Every
// produced node carries the string token's line.
func interpolate(tok Token) Expression {
	text := tok.Literal
	if !strings.Contains(text, "{") || !strings.Contains(text, "}") {
		return &StringLiteral{base: base{tok.Line}, Value: text}
	}
	matches := placeholderPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return &StringLiteral{base: base{tok.Line}, Value: text}
	}

	var result Expression
	add := func(part Expression) {
		if result == nil {
			result = part
			return
		}
		result = &BinaryExpr{base: base{tok.Line}, Left: result, Op: "+", Right: part}
	}

	last := 0
	for _, m := range matches {
		if m[0] > last {
			add(&StringLiteral{base: base{tok.Line}, Value: text[last:m[0]]})
		}
		add(&Identifier{base: base{tok.Line}, Name: strings.TrimSpace(text[m[2]:m[3]])})
		last = m[1]
	}
	if last < len(text) {
		add(&StringLiteral{base: base{tok.Line}, Value: text[last:]})
	}
	if result == nil {
		return &StringLiteral{base: base{tok.Line}}
	}
	return result
}
