package lite

// binder turns the line tree into statements. A compound statement takes its
// body from the children of its header line and its trailing clauses (elif,
// else, catch, always) from the following siblings.
type binder struct {
	nodes    []geoNode
	depth    int
	maxDepth int
}

func (b *binder) enter(tok Token) error {
	b.depth++
	if b.depth > b.maxDepth {
		return errorTooDeep(tok)
	}
	return nil
}

func (b *binder) leave() { b.depth-- }

func (b *binder) bindBlock(ids []int) ([]Statement, error) {
	stmts := []Statement{}
	for i := 0; i < len(ids); {
		stmt, next, err := b.bindStatement(ids, i)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		i = next
	}
	return stmts, nil
}

// bindStatement binds the statement starting at sibling i and returns the
// index of the first sibling it did not consume.
func (b *binder) bindStatement(ids []int, i int) (Statement, int, error) {
	n := &b.nodes[ids[i]]
	if err := b.enter(n.head()); err != nil {
		return nil, 0, err
	}
	defer b.leave()

	switch n.head().Type {
	case TokenIf:
		stmt, next, err := b.bindConditional(ids, i)
		if err != nil {
			return nil, 0, err
		}
		return stmt, next, nil
	case TokenUnless:
		return b.bindUnless(ids, i)
	case TokenWhen:
		return b.bindWhen(ids, i)
	case TokenTry:
		return b.bindTry(ids, i)
	}

	stmt, err := b.bindLine(n)
	if err != nil {
		return nil, 0, err
	}
	return stmt, i + 1, nil
}

// bindLine binds statements that never look at their siblings.
func (b *binder) bindLine(n *geoNode) (Statement, error) {
	c := b.cursor(n)
	tok := c.cur()
	switch tok.Type {
	case TokenUse:
		return b.bindUse(c, n)
	case TokenConst:
		c.advance()
		name, err := c.expect(TokenID)
		if err != nil {
			return nil, err
		}
		if _, err := c.expect(TokenAssign); err != nil {
			return nil, err
		}
		value, err := c.expression()
		if err != nil {
			return nil, err
		}
		return b.leaf(c, n, &ConstStmt{base: base{tok.Line}, Name: name.Literal, Value: value})
	case TokenOutput:
		c.advance()
		expr, err := c.expression()
		if err != nil {
			return nil, err
		}
		return b.leaf(c, n, &PrintStmt{base: base{tok.Line}, Expr: expr})
	case TokenWhile, TokenUntil:
		c.advance()
		condition, err := c.expression()
		if err != nil {
			return nil, err
		}
		body, err := b.compound(c, n)
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenWhile {
			return &WhileStmt{base: base{tok.Line}, Condition: condition, Body: body}, nil
		}
		return &UntilStmt{base: base{tok.Line}, Condition: condition, Body: body}, nil
	case TokenForever:
		c.advance()
		body, err := b.compound(c, n)
		if err != nil {
			return nil, err
		}
		return &ForeverStmt{base: base{tok.Line}, Body: body}, nil
	case TokenFor, TokenLoop:
		return b.bindFor(c, n)
	case TokenRepeat:
		c.advance()
		if c.check(TokenNewline) {
			return nil, errorRepeatCount(c.cur())
		}
		count, err := c.expression()
		if err != nil {
			return nil, err
		}
		if c.check(TokenTimes) {
			c.advance()
		}
		body, err := b.compound(c, n)
		if err != nil {
			return nil, err
		}
		return &RepeatStmt{base: base{tok.Line}, Count: count, Body: body}, nil
	case TokenTo:
		return b.bindFunction(n)
	case TokenStructure:
		return b.bindClass(n)
	case TokenReturn, TokenError, TokenExecute:
		c.advance()
		expr, err := c.expression()
		if err != nil {
			return nil, err
		}
		var stmt Statement
		switch tok.Type {
		case TokenReturn:
			stmt = &ReturnStmt{base: base{tok.Line}, Value: expr}
		case TokenError:
			stmt = &ThrowStmt{base: base{tok.Line}, Message: expr}
		default:
			stmt = &ExecuteStmt{base: base{tok.Line}, Code: expr}
		}
		return b.leaf(c, n, stmt)
	case TokenStop:
		c.advance()
		return b.leaf(c, n, &StopStmt{base: base{tok.Line}})
	case TokenSkip:
		c.advance()
		return b.leaf(c, n, &SkipStmt{base: base{tok.Line}})
	case TokenExit:
		c.advance()
		stmt := &ExitStmt{base: base{tok.Line}}
		if !c.check(TokenNewline) {
			code, err := c.expression()
			if err != nil {
				return nil, err
			}
			stmt.Code = code
		}
		return b.leaf(c, n, stmt)
	case TokenMake:
		c.advance()
		class, err := c.expect(TokenID)
		if err != nil {
			return nil, err
		}
		args, err := c.arguments(false)
		if err != nil {
			return nil, err
		}
		return b.leaf(c, n, &MakeStmt{base: base{tok.Line}, Class: class.Literal, Args: args})
	case TokenID:
		return b.bindIdent(c, n)
	}

	expr, err := c.expression()
	if err != nil {
		return nil, err
	}
	return b.leaf(c, n, &PrintStmt{base: base{expr.Line()}, Expr: expr})
}

// leaf finishes a statement that owns no block.
func (b *binder) leaf(c *lineCursor, n *geoNode, stmt Statement) (Statement, error) {
	if err := c.end(); err != nil {
		return nil, err
	}
	if n.hasBlock {
		return nil, errorUnexpected(n.indent)
	}
	return stmt, nil
}

// compound finishes a header line and binds the block under it.
func (b *binder) compound(c *lineCursor, n *geoNode) ([]Statement, error) {
	if err := c.end(); err != nil {
		return nil, err
	}
	return b.body(n)
}

func (b *binder) body(n *geoNode) ([]Statement, error) {
	if !n.hasBlock {
		return nil, errorExpected(TokenIndent, n.follow)
	}
	return b.bindBlock(n.children)
}

// clause returns the sibling at i when it starts with tt.
func (b *binder) clause(ids []int, i int, tt TokenType) (*geoNode, bool) {
	if i >= len(ids) {
		return nil, false
	}
	n := &b.nodes[ids[i]]
	return n, n.head().Type == tt
}

// optionalElse binds an else clause at sibling i. It returns nil and i when
// there is none.
func (b *binder) optionalElse(ids []int, i int) ([]Statement, int, error) {
	n, ok := b.clause(ids, i, TokenElse)
	if !ok {
		return nil, i, nil
	}
	c := b.cursor(n)
	c.advance()
	body, err := b.compound(c, n)
	if err != nil {
		return nil, 0, err
	}
	return body, i + 1, nil
}

func (b *binder) bindConditional(ids []int, i int) (*IfStmt, int, error) {
	n := &b.nodes[ids[i]]
	if err := b.enter(n.head()); err != nil {
		return nil, 0, err
	}
	defer b.leave()

	c := b.cursor(n)
	tok := c.advance()
	condition, err := c.expression()
	if err != nil {
		return nil, 0, err
	}
	body, err := b.compound(c, n)
	if err != nil {
		return nil, 0, err
	}
	stmt := &IfStmt{base: base{tok.Line}, Condition: condition, Body: body}

	next := i + 1
	if _, ok := b.clause(ids, next, TokenElif); ok {
		elif, after, err := b.bindConditional(ids, next)
		if err != nil {
			return nil, 0, err
		}
		stmt.Else = []Statement{elif}
		return stmt, after, nil
	}
	if stmt.Else, next, err = b.optionalElse(ids, next); err != nil {
		return nil, 0, err
	}
	return stmt, next, nil
}

func (b *binder) bindUnless(ids []int, i int) (Statement, int, error) {
	n := &b.nodes[ids[i]]
	c := b.cursor(n)
	tok := c.advance()
	condition, err := c.expression()
	if err != nil {
		return nil, 0, err
	}
	body, err := b.compound(c, n)
	if err != nil {
		return nil, 0, err
	}
	elseBody, next, err := b.optionalElse(ids, i+1)
	if err != nil {
		return nil, 0, err
	}
	return &UnlessStmt{base: base{tok.Line}, Condition: condition, Body: body, Else: elseBody}, next, nil
}

func (b *binder) bindTry(ids []int, i int) (Statement, int, error) {
	n := &b.nodes[ids[i]]
	c := b.cursor(n)
	tok := c.advance()
	body, err := b.compound(c, n)
	if err != nil {
		return nil, 0, err
	}

	catch, ok := b.clause(ids, i+1, TokenCatch)
	if !ok {
		return nil, 0, errorExpected(TokenCatch, n.after)
	}
	cc := b.cursor(catch)
	cc.advance()
	catchVar, err := cc.expect(TokenID)
	if err != nil {
		return nil, 0, err
	}
	catchBody, err := b.compound(cc, catch)
	if err != nil {
		return nil, 0, err
	}

	next := i + 2
	var always []Statement
	if clause, ok := b.clause(ids, next, TokenAlways); ok {
		ac := b.cursor(clause)
		ac.advance()
		if always, err = b.compound(ac, clause); err != nil {
			return nil, 0, err
		}
		next++
	}
	return tryStatement(tok, body, catchVar.Literal, catchBody, always), next, nil
}

func (b *binder) bindWhen(ids []int, i int) (Statement, int, error) {
	n := &b.nodes[ids[i]]
	c := b.cursor(n)
	tok := c.advance()
	subject, err := c.expression()
	if err != nil {
		return nil, 0, err
	}
	if err := c.end(); err != nil {
		return nil, 0, err
	}
	if !n.hasBlock {
		return nil, 0, errorExpected(TokenIndent, n.follow)
	}

	if len(n.children) == 0 || b.nodes[n.children[0]].head().Type != TokenIs {
		body, err := b.bindBlock(n.children)
		if err != nil {
			return nil, 0, err
		}
		elseBody, next, err := b.optionalElse(ids, i+1)
		if err != nil {
			return nil, 0, err
		}
		return &IfStmt{base: base{tok.Line}, Condition: subject, Body: body, Else: elseBody}, next, nil
	}

	stmt := &WhenStmt{base: base{tok.Line}, Value: subject, Cases: []WhenCase{}}
	for _, id := range n.children {
		child := &b.nodes[id]
		cc := b.cursor(child)
		switch cc.cur().Type {
		case TokenIs:
			cc.advance()
			match, err := cc.expression()
			if err != nil {
				return nil, 0, err
			}
			body, err := b.compound(cc, child)
			if err != nil {
				return nil, 0, err
			}
			stmt.Cases = append(stmt.Cases, WhenCase{Match: match, Body: body})
		case TokenOtherwise:
			cc.advance()
			if stmt.Otherwise, err = b.compound(cc, child); err != nil {
				return nil, 0, err
			}
		default:
			return nil, 0, errorExpected(TokenDedent, cc.cur())
		}
	}
	return stmt, i + 1, nil
}

func (b *binder) bindFor(c *lineCursor, n *geoNode) (Statement, error) {
	tok := c.advance()

	if tok.Type == TokenLoop {
		count, err := c.expression()
		if err != nil {
			return nil, err
		}
		if _, err := c.expect(TokenTimes); err != nil {
			return nil, err
		}
		body, err := b.compound(c, n)
		if err != nil {
			return nil, err
		}
		return &ForStmt{base: base{tok.Line}, Count: count, Body: body}, nil
	}

	if c.check(TokenID) && c.peek(1).Type == TokenIn {
		name := c.advance()
		c.advance()

		var iterable Expression
		if c.check(TokenRange) {
			c.advance()
			start, err := c.expression()
			if err != nil {
				return nil, err
			}
			end, err := c.expression()
			if err != nil {
				return nil, err
			}
			iterable = rangeCall(start, end)
		} else {
			expr, err := c.expression()
			if err != nil {
				return nil, err
			}
			iterable = expr
		}
		body, err := b.compound(c, n)
		if err != nil {
			return nil, err
		}
		return &ForInStmt{base: base{tok.Line}, Var: name.Literal, Iterable: iterable, Body: body}, nil
	}

	count, err := c.expression()
	if err != nil {
		return nil, err
	}
	if _, err := c.expect(TokenIn); err != nil {
		return nil, err
	}
	if _, err := c.expect(TokenRange); err != nil {
		return nil, err
	}
	body, err := b.compound(c, n)
	if err != nil {
		return nil, err
	}
	return &ForStmt{base: base{tok.Line}, Count: count, Body: body}, nil
}

func (b *binder) bindUse(c *lineCursor, n *geoNode) (Statement, error) {
	tok := c.advance()
	path, err := c.expect(TokenString)
	if err != nil {
		return nil, err
	}
	if !c.check(TokenAs) {
		return b.leaf(c, n, &ImportStmt{base: base{tok.Line}, Path: path.Literal})
	}
	c.advance()
	alias, err := c.expect(TokenID)
	if err != nil {
		return nil, err
	}
	return b.leaf(c, n, &ImportAsStmt{base: base{tok.Line}, Path: path.Literal, Alias: alias.Literal})
}

func (b *binder) bindFunction(n *geoNode) (*FunctionStmt, error) {
	c := b.cursor(n)
	tok := c.advance()
	name, err := c.expect(TokenID)
	if err != nil {
		return nil, err
	}
	params := []Param{}
	for c.check(TokenID) {
		param := Param{Name: c.advance().Literal}
		if c.check(TokenAssign) {
			c.advance()
			if param.Default, err = c.expression(); err != nil {
				return nil, err
			}
		}
		params = append(params, param)
	}
	body, err := b.compound(c, n)
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{base: base{tok.Line}, Name: name.Literal, Params: params, Body: body}, nil
}

func (b *binder) bindClass(n *geoNode) (Statement, error) {
	c := b.cursor(n)
	tok := c.advance()
	name, err := c.expect(TokenID)
	if err != nil {
		return nil, err
	}
	stmt := &ClassStmt{base: base{tok.Line}, Name: name.Literal, Properties: []string{}, Methods: []*FunctionStmt{}}

	switch c.cur().Type {
	case TokenLParen:
		c.advance()
		parent, err := c.expect(TokenID)
		if err != nil {
			return nil, err
		}
		if _, err := c.expect(TokenRParen); err != nil {
			return nil, err
		}
		stmt.Parent = parent.Literal
	case TokenExtends:
		c.advance()
		parent, err := c.expect(TokenID)
		if err != nil {
			return nil, err
		}
		stmt.Parent = parent.Literal
	}

	if err := c.end(); err != nil {
		return nil, err
	}
	if !n.hasBlock {
		return nil, errorExpected(TokenIndent, n.follow)
	}

	for _, id := range n.children {
		member := &b.nodes[id]
		switch member.head().Type {
		case TokenHas:
			mc := b.cursor(member)
			mc.advance()
			prop, err := mc.expect(TokenID)
			if err != nil {
				return nil, err
			}
			if err := mc.end(); err != nil {
				return nil, err
			}
			if member.hasBlock {
				return nil, errorExpected(TokenDedent, member.indent)
			}
			stmt.Properties = append(stmt.Properties, prop.Literal)
		case TokenTo:
			method, err := b.bindFunction(member)
			if err != nil {
				return nil, err
			}
			stmt.Methods = append(stmt.Methods, method)
		default:
			return nil, errorExpected(TokenDedent, member.head())
		}
	}
	return stmt, nil
}

// bindIdent mirrors the name-led statement forms of the recursive-descent
// parser.
func (b *binder) bindIdent(c *lineCursor, n *geoNode) (Statement, error) {
	name := c.advance()

	switch tok := c.cur(); tok.Type {
	case TokenAssign:
		c.advance()
		value, err := c.expression()
		if err != nil {
			return nil, err
		}
		return b.leaf(c, n, &AssignStmt{base: base{name.Line}, Name: name.Literal, Value: value})

	case TokenPlusEq, TokenMinusEq, TokenMulEq, TokenDivEq, TokenModEq:
		c.advance()
		value, err := c.expression()
		if err != nil {
			return nil, err
		}
		return b.leaf(c, n, compoundAssign(name, tok.Type, value))

	case TokenIs:
		c.advance()
		class, err := c.expect(TokenID)
		if err != nil {
			return nil, err
		}
		args, err := c.arguments(false)
		if err != nil {
			return nil, err
		}
		return b.leaf(c, n, &InstantiateStmt{base: base{name.Line}, Var: name.Literal, Class: class.Literal, Args: args})

	case TokenDot:
		c.advance()
		member, err := c.expect(TokenID)
		if err != nil {
			return nil, err
		}
		if c.check(TokenAssign) {
			c.advance()
			value, err := c.expression()
			if err != nil {
				return nil, err
			}
			return b.leaf(c, n, &PropertyAssignStmt{base: base{name.Line}, Instance: name.Literal, Property: member.Literal, Value: value})
		}
		args, err := c.arguments(false)
		if err != nil {
			return nil, err
		}
		return b.leaf(c, n, &MethodCallExpr{base: base{name.Line}, Instance: name.Literal, Method: member.Literal, Args: args})

	case TokenNewline, TokenEOF, TokenEQ:
	default:
		args, err := c.arguments(true)
		if err != nil {
			return nil, err
		}
		return b.leaf(c, n, &CallExpr{base: base{name.Line}, Name: name.Literal, Args: args})
	}

	return b.leaf(c, n, &Identifier{base: base{name.Line}, Name: name.Literal})
}

// lineCursor reads the tokens of a single line. Reading past the end keeps
// returning the line terminator.
type lineCursor struct {
	tokens   []Token
	pos      int
	maxDepth int
}

func (b *binder) cursor(n *geoNode) *lineCursor {
	return &lineCursor{tokens: n.tokens, maxDepth: b.maxDepth}
}

func (c *lineCursor) peek(offset int) Token {
	if i := c.pos + offset; i < len(c.tokens) {
		return c.tokens[i]
	}
	return c.tokens[len(c.tokens)-1]
}

func (c *lineCursor) cur() Token { return c.peek(0) }

func (c *lineCursor) check(tt TokenType) bool { return c.cur().Type == tt }

func (c *lineCursor) advance() Token {
	tok := c.cur()
	if c.pos < len(c.tokens)-1 {
		c.pos++
	}
	return tok
}

func (c *lineCursor) expect(tt TokenType) (Token, error) {
	tok := c.cur()
	if tok.Type != tt {
		return tok, errorExpected(tt, tok)
	}
	c.advance()
	return tok, nil
}

// end requires the line terminator to be the next token.
func (c *lineCursor) end() error {
	_, err := c.expect(TokenNewline)
	return err
}

func (c *lineCursor) expression() (Expression, error) {
	expr, next, err := fold(c.tokens, c.pos, c.maxDepth)
	if err != nil {
		return nil, err
	}
	c.pos = next
	return expr, nil
}

// arguments folds expressions until the end of the line, or until `is` when
// stopAtIs is set.
func (c *lineCursor) arguments(stopAtIs bool) ([]Expression, error) {
	args := []Expression{}
	for !c.check(TokenNewline) && !c.check(TokenEOF) {
		if stopAtIs && c.check(TokenIs) {
			break
		}
		arg, err := c.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}
