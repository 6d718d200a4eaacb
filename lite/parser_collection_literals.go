package lite

func (p *parser) parseListLiteral() (Expression, error) {
	open := p.advance()
	elements := []Expression{}
	if p.check(TokenRBracket) {
		p.advance()
		return &ListLiteral{base: base{open.Line}, Elements: elements}, nil
	}

	for {
		if p.check(TokenEllipsis) {
			p.advance()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, &SpreadExpr{base: base{open.Line}, Value: value})
		} else {
			elem, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if len(elements) == 0 && p.check(TokenFor) {
				return p.parseListComprehension(open, elem)
			}
			elements = append(elements, elem)
		}

		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if p.check(TokenRBracket) {
			break
		}
	}

	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	return &ListLiteral{base: base{open.Line}, Elements: elements}, nil
}

// parseListComprehension continues `[expr` with `for name in iterable` and
// an optional `if condition`.
func (p *parser) parseListComprehension(open Token, expr Expression) (Expression, error) {
	p.advance()
	name, err := p.expect(TokenID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenIn); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	comp := &ListComprehension{base: base{open.Line}, Expr: expr, Var: name.Literal, Iterable: iterable}
	if p.check(TokenIf) {
		p.advance()
		if comp.Condition, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	return comp, nil
}

func (p *parser) parseDictLiteral() (Expression, error) {
	open := p.advance()
	pairs := []DictPair{}
	if !p.check(TokenRBrace) {
		for {
			key, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenColon); err != nil {
				return nil, err
			}
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, DictPair{Key: key, Value: value})
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return &DictLiteral{base: base{open.Line}, Pairs: pairs}, nil
}
