package lite

func (p *parser) parseExpression() (Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if p.check(TokenFn) {
		return p.parseLambda()
	}
	return p.parseTernary()
}

func (p *parser) parseLambda() (Expression, error) {
	tok := p.advance()
	params := []string{}
	for p.check(TokenID) {
		params = append(params, p.advance().Literal)
	}
	if _, err := p.expect(TokenArrow); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &LambdaExpr{base: base{tok.Line}, Params: params, Body: body}, nil
}

func (p *parser) parseTernary() (Expression, error) {
	condition, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.check(TokenQuestion) {
		return condition, nil
	}
	p.advance()
	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	otherwise, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &TernaryExpr{base: base{condition.Line()}, Condition: condition, Then: then, Else: otherwise}, nil
}

func (p *parser) parseOr() (Expression, error) {
	return p.parseLeftAssoc(p.parseAnd, TokenOr)
}

func (p *parser) parseAnd() (Expression, error) {
	return p.parseLeftAssoc(p.parseComparison, TokenAnd)
}

// parseComparison accepts at most one comparison operator; a chain such as
// `a < b < c` leaves the second operator for the caller to reject.
func (p *parser) parseComparison() (Expression, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if !isComparison(p.cur().Type) {
		return left, nil
	}
	op := p.advance()
	right, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	return binary(left, op, right), nil
}

func (p *parser) parseSum() (Expression, error) {
	return p.parseLeftAssoc(p.parseProduct, TokenPlus, TokenMinus)
}

func (p *parser) parseProduct() (Expression, error) {
	return p.parseLeftAssoc(p.parseFactor, TokenMul, TokenDiv, TokenMod)
}

func (p *parser) parseLeftAssoc(operand func() (Expression, error), ops ...TokenType) (Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.checkAny(ops...) {
		op := p.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = binary(left, op, right)
	}
	return left, nil
}

func (p *parser) checkAny(types ...TokenType) bool {
	cur := p.cur().Type
	for _, tt := range types {
		if cur == tt {
			return true
		}
	}
	return false
}

func (p *parser) parseFactor() (Expression, error) {
	tok := p.cur()
	switch tok.Type {
	case TokenNot:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{base: base{tok.Line}, Op: tok.Literal, Right: right}, nil
	case TokenString:
		p.advance()
		return &StringLiteral{base: base{tok.Line}, Value: tok.Literal}, nil
	case TokenID:
		return p.parseCallOrAccess()
	}
	return p.parseOperand()
}

// parseOperand parses the factors shared by expression and argument
// position. STRING and ID are handled by the callers because their meaning
// differs between the two.
func (p *parser) parseOperand() (Expression, error) {
	tok := p.cur()
	switch tok.Type {
	case TokenNumber:
		p.advance()
		return numberLiteral(tok)
	case TokenYes, TokenNo:
		p.advance()
		return &BoolLiteral{base: base{tok.Line}, Value: tok.Type == TokenYes}, nil
	case TokenLBracket:
		return p.parseListLiteral()
	case TokenLBrace:
		return p.parseDictLiteral()
	case TokenLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil
	case TokenInput:
		p.advance()
		input := &InputExpr{base: base{tok.Line}}
		if p.check(TokenString) {
			input.Prompt = p.advance().Literal
			input.HasPrompt = true
		}
		return input, nil
	}
	return nil, errorUnexpected(tok)
}

func binary(left Expression, op Token, right Expression) *BinaryExpr {
	return &BinaryExpr{base: base{op.Line}, Left: left, Op: operatorText(op), Right: right}
}
