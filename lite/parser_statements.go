package lite

func (p *parser) parseStatement() (Statement, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.cur().Type {
	case TokenUse:
		return p.parseUseStatement()
	case TokenConst:
		return p.parseConstStatement()
	case TokenOutput:
		return p.parsePrintStatement()
	case TokenIf:
		return p.parseIfStatement()
	case TokenUnless:
		return p.parseUnlessStatement()
	case TokenWhile:
		return p.parseWhileStatement()
	case TokenUntil:
		return p.parseUntilStatement()
	case TokenForever:
		return p.parseForeverStatement()
	case TokenTry:
		return p.parseTryStatement()
	case TokenFor, TokenLoop:
		return p.parseForStatement()
	case TokenRepeat:
		return p.parseRepeatStatement()
	case TokenWhen:
		return p.parseWhenStatement()
	case TokenTo:
		return p.parseFunctionStatement()
	case TokenStructure:
		return p.parseClassStatement()
	case TokenReturn:
		return p.parseReturnStatement()
	case TokenStop:
		tok := p.advance()
		return &StopStmt{base: base{tok.Line}}, p.endStatement()
	case TokenSkip:
		tok := p.advance()
		return &SkipStmt{base: base{tok.Line}}, p.endStatement()
	case TokenExit:
		return p.parseExitStatement()
	case TokenError:
		return p.parseThrowStatement()
	case TokenExecute:
		return p.parseExecuteStatement()
	case TokenMake:
		return p.parseMakeStatement()
	case TokenID:
		return p.parseIdentStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseConstStatement() (Statement, error) {
	tok := p.advance()
	name, err := p.expect(TokenID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ConstStmt{base: base{tok.Line}, Name: name.Literal, Value: value}, nil
}

func (p *parser) parsePrintStatement() (Statement, error) {
	tok := p.advance()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &PrintStmt{base: base{tok.Line}, Expr: expr}, nil
}

func (p *parser) parseReturnStatement() (Statement, error) {
	tok := p.advance()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ReturnStmt{base: base{tok.Line}, Value: value}, nil
}

func (p *parser) parseThrowStatement() (Statement, error) {
	tok := p.advance()
	msg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ThrowStmt{base: base{tok.Line}, Message: msg}, nil
}

func (p *parser) parseExecuteStatement() (Statement, error) {
	tok := p.advance()
	code, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ExecuteStmt{base: base{tok.Line}, Code: code}, nil
}

func (p *parser) parseExitStatement() (Statement, error) {
	tok := p.advance()
	stmt := &ExitStmt{base: base{tok.Line}}
	if !p.check(TokenNewline) {
		code, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Code = code
	}
	return stmt, p.endStatement()
}

func (p *parser) parseMakeStatement() (Statement, error) {
	tok := p.advance()
	class, err := p.expect(TokenID)
	if err != nil {
		return nil, err
	}
	args, err := p.parseStatementArgs(false)
	if err != nil {
		return nil, err
	}
	return &MakeStmt{base: base{tok.Line}, Class: class.Literal, Args: args}, nil
}

// parseStatementArgs reads full expressions up to the end of the line and
// consumes the NEWLINE. With stopAtIs it also stops before `is`.
func (p *parser) parseStatementArgs(stopAtIs bool) ([]Expression, error) {
	args := []Expression{}
	for !p.check(TokenNewline) && !p.check(TokenEOF) {
		if stopAtIs && p.check(TokenIs) {
			break
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, p.endStatement()
}

// parseIdentStatement disambiguates statements that start with a name:
// assignment, compound assignment, instantiation, member call or property
// assignment, juxtaposed call, or a bare variable reference.
func (p *parser) parseIdentStatement() (Statement, error) {
	name := p.advance()

	switch tok := p.cur(); tok.Type {
	case TokenAssign:
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.endStatement(); err != nil {
			return nil, err
		}
		return &AssignStmt{base: base{name.Line}, Name: name.Literal, Value: value}, nil

	case TokenPlusEq, TokenMinusEq, TokenMulEq, TokenDivEq, TokenModEq:
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.endStatement(); err != nil {
			return nil, err
		}
		return compoundAssign(name, tok.Type, value), nil

	case TokenIs:
		p.advance()
		class, err := p.expect(TokenID)
		if err != nil {
			return nil, err
		}
		args, err := p.parseStatementArgs(false)
		if err != nil {
			return nil, err
		}
		return &InstantiateStmt{base: base{name.Line}, Var: name.Literal, Class: class.Literal, Args: args}, nil

	case TokenDot:
		p.advance()
		member, err := p.expect(TokenID)
		if err != nil {
			return nil, err
		}
		if p.check(TokenAssign) {
			p.advance()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.endStatement(); err != nil {
				return nil, err
			}
			return &PropertyAssignStmt{base: base{name.Line}, Instance: name.Literal, Property: member.Literal, Value: value}, nil
		}
		args, err := p.parseStatementArgs(false)
		if err != nil {
			return nil, err
		}
		return &MethodCallExpr{base: base{name.Line}, Instance: name.Literal, Method: member.Literal, Args: args}, nil

	case TokenNewline, TokenEOF, TokenEQ:
	default:
		args, err := p.parseStatementArgs(true)
		if err != nil {
			return nil, err
		}
		return &CallExpr{base: base{name.Line}, Name: name.Literal, Args: args}, nil
	}

	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &Identifier{base: base{name.Line}, Name: name.Literal}, nil
}

// parseExpressionStatement prints the value of a bare expression.
func (p *parser) parseExpressionStatement() (Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &PrintStmt{base: base{expr.Line()}, Expr: expr}, nil
}

var compoundOperators = map[TokenType]string{
	TokenPlusEq:  "+",
	TokenMinusEq: "-",
	TokenMulEq:   "*",
	TokenDivEq:   "/",
	TokenModEq:   "%",
}

// compoundAssign rewrites `name op= value` into `name = name op value`. The
// synthesized operand and operator carry no source line.
func compoundAssign(name Token, op TokenType, value Expression) *AssignStmt {
	return &AssignStmt{
		base: base{name.Line},
		Name: name.Literal,
		Value: &BinaryExpr{
			Left:  &Identifier{Name: name.Literal},
			Op:    compoundOperators[op],
			Right: value,
		},
	}
}
