package lite

func (p *parser) parseUseStatement() (Statement, error) {
	tok := p.advance()
	path, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}
	if p.check(TokenAs) {
		p.advance()
		alias, err := p.expect(TokenID)
		if err != nil {
			return nil, err
		}
		if err := p.endStatement(); err != nil {
			return nil, err
		}
		return &ImportAsStmt{base: base{tok.Line}, Path: path.Literal, Alias: alias.Literal}, nil
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ImportStmt{base: base{tok.Line}, Path: path.Literal}, nil
}

// parseFunctionStatement reads `to name param param=default` followed by an
// indented body.
func (p *parser) parseFunctionStatement() (Statement, error) {
	return p.parseFunction()
}

func (p *parser) parseFunction() (*FunctionStmt, error) {
	tok := p.advance()
	name, err := p.expect(TokenID)
	if err != nil {
		return nil, err
	}

	params := []Param{}
	for p.check(TokenID) {
		param := Param{Name: p.advance().Literal}
		if p.check(TokenAssign) {
			p.advance()
			if param.Default, err = p.parseExpression(); err != nil {
				return nil, err
			}
		}
		params = append(params, param)
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{base: base{tok.Line}, Name: name.Literal, Params: params, Body: body}, nil
}

func (p *parser) parseClassStatement() (Statement, error) {
	tok := p.advance()
	name, err := p.expect(TokenID)
	if err != nil {
		return nil, err
	}
	stmt := &ClassStmt{base: base{tok.Line}, Name: name.Literal, Properties: []string{}, Methods: []*FunctionStmt{}}

	switch p.cur().Type {
	case TokenLParen:
		p.advance()
		parent, err := p.expect(TokenID)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		stmt.Parent = parent.Literal
	case TokenExtends:
		p.advance()
		parent, err := p.expect(TokenID)
		if err != nil {
			return nil, err
		}
		stmt.Parent = parent.Literal
	}

	if err := p.endStatement(); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenIndent); err != nil {
		return nil, err
	}

loop:
	for !p.check(TokenDedent) && !p.check(TokenEOF) {
		switch p.cur().Type {
		case TokenHas:
			p.advance()
			prop, err := p.expect(TokenID)
			if err != nil {
				return nil, err
			}
			if err := p.endStatement(); err != nil {
				return nil, err
			}
			stmt.Properties = append(stmt.Properties, prop.Literal)
		case TokenTo:
			method, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			stmt.Methods = append(stmt.Methods, method)
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
