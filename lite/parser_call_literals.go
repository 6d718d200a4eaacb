package lite

// parseCallOrAccess parses `name`, `name.member` and their juxtaposed call
// forms. Arguments are simple factors, so `f g 1` passes g and 1 to f. An
// empty `()` forces a call with no arguments.
func (p *parser) parseCallOrAccess() (Expression, error) {
	name := p.advance()
	var member string
	hasMember := false
	if p.check(TokenDot) {
		p.advance()
		tok, err := p.expect(TokenID)
		if err != nil {
			return nil, err
		}
		member, hasMember = tok.Literal, true
	}

	args := []Expression{}
	forced := false
	for {
		if p.check(TokenLParen) && p.peek(1).Type == TokenRParen {
			p.advance()
			p.advance()
			forced = true
			continue
		}
		if !canStartArgument(p.cur().Type) {
			break
		}
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return callOrAccess(name, member, hasMember, args, forced), nil
}

// parseArgument parses a simple factor in argument position. Strings here
// get `{name}` interpolation.
func (p *parser) parseArgument() (Expression, error) {
	tok := p.cur()
	switch tok.Type {
	case TokenString:
		p.advance()
		return interpolate(tok), nil
	case TokenID:
		p.advance()
		if !p.check(TokenDot) {
			return &Identifier{base: base{tok.Line}, Name: tok.Literal}, nil
		}
		p.advance()
		prop, err := p.expect(TokenID)
		if err != nil {
			return nil, err
		}
		return &PropertyExpr{base: base{tok.Line}, Instance: tok.Literal, Property: prop.Literal}, nil
	}
	return p.parseOperand()
}

func callOrAccess(name Token, member string, hasMember bool, args []Expression, forced bool) Expression {
	called := forced || len(args) > 0
	switch {
	case hasMember && called:
		return &MethodCallExpr{base: base{name.Line}, Instance: name.Literal, Method: member, Args: args}
	case hasMember:
		return &PropertyExpr{base: base{name.Line}, Instance: name.Literal, Property: member}
	case called:
		return &CallExpr{base: base{name.Line}, Name: name.Literal, Args: args}
	default:
		return &Identifier{base: base{name.Line}, Name: name.Literal}
	}
}
