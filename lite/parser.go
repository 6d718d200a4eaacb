package lite

// DefaultMaxDepth bounds parser nesting when a Config leaves MaxDepth unset.
const DefaultMaxDepth = 512

type parser struct {
	tokens []Token
	pos    int

	depth    int
	maxDepth int
}

// ParseRecursiveDescent builds the statement list for a token sequence
// produced by Tokenize. It stops at the first syntax error.
func ParseRecursiveDescent(tokens []Token) ([]Statement, error) {
	return parseRecursiveDescent(tokens, DefaultMaxDepth)
}

func parseRecursiveDescent(tokens []Token, maxDepth int) ([]Statement, error) {
	p := newParser(tokens, maxDepth)
	return p.parseProgram()
}

func newParser(tokens []Token, maxDepth int) *parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &parser{tokens: tokens, maxDepth: maxDepth}
}

func (p *parser) parseProgram() ([]Statement, error) {
	statements := []Statement{}
	for !p.check(TokenEOF) {
		for p.check(TokenNewline) {
			p.advance()
		}
		if p.check(TokenEOF) {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

func (p *parser) peek(offset int) Token {
	if i := p.pos + offset; i < len(p.tokens) {
		return p.tokens[i]
	}
	return endOfInput(p.tokens)
}

func (p *parser) cur() Token { return p.peek(0) }

func (p *parser) check(tt TokenType) bool {
	return p.cur().Type == tt
}

func (p *parser) advance() Token {
	tok := p.cur()
	p.pos++
	return tok
}

func (p *parser) expect(tt TokenType) (Token, error) {
	tok := p.cur()
	if tok.Type != tt {
		return tok, errorExpected(tt, tok)
	}
	p.pos++
	return tok, nil
}

func (p *parser) endStatement() error {
	_, err := p.expect(TokenNewline)
	return err
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return errorTooDeep(p.cur())
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// parseBlock reads `NEWLINE INDENT statement* DEDENT` after a header line.
func (p *parser) parseBlock() ([]Statement, error) {
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenIndent); err != nil {
		return nil, err
	}
	body := []Statement{}
	for !p.check(TokenDedent) && !p.check(TokenEOF) {
		for p.check(TokenNewline) {
			p.advance()
		}
		if p.check(TokenDedent) {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(TokenDedent); err != nil {
		return nil, err
	}
	return body, nil
}

// parseElseBlock consumes an optional `else` clause and returns nil when it
// is absent.
func (p *parser) parseElseBlock() ([]Statement, error) {
	if !p.check(TokenElse) {
		return nil, nil
	}
	p.advance()
	return p.parseBlock()
}
