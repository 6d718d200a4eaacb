package lite

func (p *parser) parseIfStatement() (Statement, error) {
	return p.parseConditional()
}

// parseConditional handles both `if` and `elif` headers. An elif clause is
// nested as the only statement of the preceding else body.
func (p *parser) parseConditional() (*IfStmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.advance()
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{base: base{tok.Line}, Condition: condition, Body: body}

	switch p.cur().Type {
	case TokenElif:
		elif, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		stmt.Else = []Statement{elif}
	case TokenElse:
		p.advance()
		if stmt.Else, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *parser) parseUnlessStatement() (Statement, error) {
	tok := p.advance()
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	elseBody, err := p.parseElseBlock()
	if err != nil {
		return nil, err
	}
	return &UnlessStmt{base: base{tok.Line}, Condition: condition, Body: body, Else: elseBody}, nil
}

func (p *parser) parseWhileStatement() (Statement, error) {
	tok := p.advance()
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{base: base{tok.Line}, Condition: condition, Body: body}, nil
}

func (p *parser) parseUntilStatement() (Statement, error) {
	tok := p.advance()
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &UntilStmt{base: base{tok.Line}, Condition: condition, Body: body}, nil
}

func (p *parser) parseForeverStatement() (Statement, error) {
	tok := p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ForeverStmt{base: base{tok.Line}, Body: body}, nil
}

func (p *parser) parseRepeatStatement() (Statement, error) {
	tok := p.advance()
	if p.check(TokenNewline) {
		return nil, errorRepeatCount(p.cur())
	}
	count, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.check(TokenTimes) {
		p.advance()
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &RepeatStmt{base: base{tok.Line}, Count: count, Body: body}, nil
}

// parseForStatement covers `loop N times`, `for x in range a b`,
// `for x in iterable` and the count form `for N in range`.
func (p *parser) parseForStatement() (Statement, error) {
	tok := p.advance()

	if tok.Type == TokenLoop {
		count, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenTimes); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ForStmt{base: base{tok.Line}, Count: count, Body: body}, nil
	}

	if p.check(TokenID) && p.peek(1).Type == TokenIn {
		name := p.advance()
		p.advance()

		var iterable Expression
		if p.check(TokenRange) {
			p.advance()
			start, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			end, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			iterable = rangeCall(start, end)
		} else {
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			iterable = expr
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ForInStmt{base: base{tok.Line}, Var: name.Literal, Iterable: iterable, Body: body}, nil
	}

	count, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenIn); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRange); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ForStmt{base: base{tok.Line}, Count: count, Body: body}, nil
}

func (p *parser) parseTryStatement() (Statement, error) {
	tok := p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenCatch); err != nil {
		return nil, err
	}
	catchVar, err := p.expect(TokenID)
	if err != nil {
		return nil, err
	}
	catchBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var always []Statement
	if p.check(TokenAlways) {
		p.advance()
		if always, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	return tryStatement(tok, body, catchVar.Literal, catchBody, always), nil
}

// parseWhenStatement reads either a value switch (the block opens with an
// `is` case) or a plain conditional with an optional else.
func (p *parser) parseWhenStatement() (Statement, error) {
	tok := p.advance()
	subject, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenIndent); err != nil {
		return nil, err
	}

	if !p.check(TokenIs) {
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
		elseBody, err := p.parseElseBlock()
		if err != nil {
			return nil, err
		}
		return &IfStmt{base: base{tok.Line}, Condition: subject, Body: body, Else: elseBody}, nil
	}

	stmt := &WhenStmt{base: base{tok.Line}, Value: subject, Cases: []WhenCase{}}
loop:
	for !p.check(TokenDedent) && !p.check(TokenEOF) {
		switch p.cur().Type {
		case TokenIs:
			p.advance()
			match, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			stmt.Cases = append(stmt.Cases, WhenCase{Match: match, Body: body})
		case TokenOtherwise:
			p.advance()
			if stmt.Otherwise, err = p.parseBlock(); err != nil {
				return nil, err
			}
		case TokenNewline:
			p.advance()
		default:
			break loop
		}
	}
	if _, err := p.expect(TokenDedent); err != nil {
		return nil, err
	}
	return stmt, nil
}

// rangeCall builds the implicit `range start end` iterable of a counted for
// loop.
func rangeCall(start, end Expression) *CallExpr {
	return &CallExpr{Name: "range", Args: []Expression{start, end}}
}

// tryStatement returns a TryAlwaysStmt only when the always block has
// statements.
func tryStatement(tok Token, body []Statement, catchVar string, catchBody, always []Statement) Statement {
	if len(always) > 0 {
		return &TryAlwaysStmt{base: base{tok.Line}, Body: body, CatchVar: catchVar, Catch: catchBody, Always: always}
	}
	return &TryStmt{base: base{tok.Line}, Body: body, CatchVar: catchVar, Catch: catchBody}
}
