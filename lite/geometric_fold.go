package lite

type frameKind int

const (
	frameTop frameKind = iota
	frameParen
	frameList
	frameDict
	frameCall
	frameTernary
	frameLambda
)

const (
	phaseElement = iota
	phaseIterable
	phaseCondition
)

const (
	phaseKey = iota
	phaseValue
)

const (
	phaseThen = iota
	phaseElse
)

// foldFrame is one open bracket, call, ternary or lambda. Every kind except
// frameCall is an expression context with its own operator stack; operands
// live on the folder's shared value stack above base.
type foldFrame struct {
	kind frameKind
	open Token

	ops     []Token
	base    int
	operand bool
	start   bool
	cmpSeen bool
	// done is set once a ternary or lambda has completed the expression, after
	// which nothing may extend it.
	done bool

	phase int

	// list
	elements []Expression
	spread   bool
	compExpr Expression
	compVar  string
	iterable Expression

	// dict
	pairs []DictPair
	key   Expression

	// ternary
	condition Expression
	then      Expression

	// lambda
	params []string

	// call
	member    string
	hasMember bool
	args      []Expression
	forced    bool
}

type folder struct {
	tokens   []Token
	pos      int
	frames   []*foldFrame
	values   []Expression
	maxDepth int
}

// fold parses one expression starting at tokens[pos] and returns it with the
// index of the first token after it. It consumes exactly the tokens the
// recursive-descent expression parser would, without recursion.
func fold(tokens []Token, pos, maxDepth int) (Expression, int, error) {
	f := &folder{tokens: tokens, pos: pos, maxDepth: maxDepth}
	f.frames = append(f.frames, &foldFrame{kind: frameTop, operand: true, start: true})
	for {
		result, finished, err := f.step()
		if err != nil {
			return nil, 0, err
		}
		if finished {
			return result, f.pos, nil
		}
	}
}

func (f *folder) peek(offset int) Token {
	if i := f.pos + offset; i < len(f.tokens) {
		return f.tokens[i]
	}
	return endOfInput(f.tokens)
}

func (f *folder) cur() Token { return f.peek(0) }

func (f *folder) check(tt TokenType) bool { return f.cur().Type == tt }

func (f *folder) advance() Token {
	tok := f.cur()
	f.pos++
	return tok
}

func (f *folder) expect(tt TokenType) (Token, error) {
	tok := f.cur()
	if tok.Type != tt {
		return tok, errorExpected(tt, tok)
	}
	f.pos++
	return tok, nil
}

func (f *folder) top() *foldFrame { return f.frames[len(f.frames)-1] }

func (f *folder) push(fr *foldFrame, tok Token) error {
	if len(f.frames) >= f.maxDepth {
		return errorTooDeep(tok)
	}
	fr.base = len(f.values)
	f.frames = append(f.frames, fr)
	return nil
}

func (f *folder) pop() { f.frames = f.frames[:len(f.frames)-1] }

func (f *folder) step() (Expression, bool, error) {
	fr := f.top()
	tok := f.cur()

	if fr.kind == frameCall {
		return nil, false, f.stepCall(fr, tok)
	}
	if fr.operand {
		return nil, false, f.stepOperand(fr, tok)
	}
	if !fr.done {
		if isBinaryOperator(tok.Type) && !(isComparison(tok.Type) && fr.cmpSeen) {
			f.pushOperator(fr, tok)
			return nil, false, nil
		}
		if tok.Type == TokenQuestion {
			condition := f.reduce(fr)
			f.pos++
			return nil, false, f.push(&foldFrame{kind: frameTernary, open: tok, condition: condition, operand: true, start: true}, tok)
		}
	}
	return f.finish(fr, f.reduce(fr), tok)
}

func (f *folder) stepOperand(fr *foldFrame, tok Token) error {
	switch tok.Type {
	case TokenNot:
		f.pos++
		fr.ops = append(fr.ops, tok)
		fr.start = false
		return nil
	case TokenFn:
		if !fr.start {
			return errorUnexpected(tok)
		}
		f.pos++
		params := []string{}
		for f.check(TokenID) {
			params = append(params, f.advance().Literal)
		}
		if _, err := f.expect(TokenArrow); err != nil {
			return err
		}
		fr.start = false
		return f.push(&foldFrame{kind: frameLambda, open: tok, params: params, operand: true, start: true}, tok)
	case TokenEllipsis:
		if fr.kind != frameList || fr.phase != phaseElement || !fr.start || fr.spread {
			return errorUnexpected(tok)
		}
		f.pos++
		fr.spread = true
		return nil
	case TokenString:
		f.pos++
		f.deliver(&StringLiteral{base: base{tok.Line}, Value: tok.Literal})
		return nil
	case TokenID:
		f.pos++
		call := &foldFrame{kind: frameCall, open: tok, args: []Expression{}}
		if f.check(TokenDot) {
			f.pos++
			member, err := f.expect(TokenID)
			if err != nil {
				return err
			}
			call.member, call.hasMember = member.Literal, true
		}
		return f.push(call, tok)
	}
	return f.stepFactor(tok)
}

// stepCall gathers juxtaposed arguments until a token that cannot start one.
func (f *folder) stepCall(fr *foldFrame, tok Token) error {
	if tok.Type == TokenLParen && f.peek(1).Type == TokenRParen {
		f.pos += 2
		fr.forced = true
		return nil
	}
	switch tok.Type {
	case TokenString:
		f.pos++
		fr.args = append(fr.args, interpolate(tok))
		return nil
	case TokenID:
		f.pos++
		if !f.check(TokenDot) {
			fr.args = append(fr.args, &Identifier{base: base{tok.Line}, Name: tok.Literal})
			return nil
		}
		f.pos++
		prop, err := f.expect(TokenID)
		if err != nil {
			return err
		}
		fr.args = append(fr.args, &PropertyExpr{base: base{tok.Line}, Instance: tok.Literal, Property: prop.Literal})
		return nil
	}
	if canStartArgument(tok.Type) {
		return f.stepFactor(tok)
	}

	f.pop()
	f.deliver(callOrAccess(fr.open, fr.member, fr.hasMember, fr.args, fr.forced))
	return nil
}

// stepFactor handles the factors that look the same in expression and
// argument position.
func (f *folder) stepFactor(tok Token) error {
	switch tok.Type {
	case TokenNumber:
		f.pos++
		num, err := numberLiteral(tok)
		if err != nil {
			return err
		}
		f.deliver(num)
	case TokenYes, TokenNo:
		f.pos++
		f.deliver(&BoolLiteral{base: base{tok.Line}, Value: tok.Type == TokenYes})
	case TokenInput:
		f.pos++
		input := &InputExpr{base: base{tok.Line}}
		if f.check(TokenString) {
			input.Prompt = f.advance().Literal
			input.HasPrompt = true
		}
		f.deliver(input)
	case TokenLParen:
		f.pos++
		return f.push(&foldFrame{kind: frameParen, open: tok, operand: true, start: true}, tok)
	case TokenLBracket:
		f.pos++
		if f.check(TokenRBracket) {
			f.pos++
			f.deliver(&ListLiteral{base: base{tok.Line}, Elements: []Expression{}})
			return nil
		}
		return f.push(&foldFrame{kind: frameList, open: tok, operand: true, start: true, elements: []Expression{}}, tok)
	case TokenLBrace:
		f.pos++
		if f.check(TokenRBrace) {
			f.pos++
			f.deliver(&DictLiteral{base: base{tok.Line}, Pairs: []DictPair{}})
			return nil
		}
		return f.push(&foldFrame{kind: frameDict, open: tok, operand: true, start: true, pairs: []DictPair{}}, tok)
	default:
		return errorUnexpected(tok)
	}
	return nil
}

// deliver hands a finished operand to the innermost frame. Pending `not`
// operators bind to it before anything else.
func (f *folder) deliver(value Expression) {
	fr := f.top()
	if fr.kind == frameCall {
		fr.args = append(fr.args, value)
		return
	}
	for len(fr.ops) > 0 && fr.ops[len(fr.ops)-1].Type == TokenNot {
		op := fr.ops[len(fr.ops)-1]
		fr.ops = fr.ops[:len(fr.ops)-1]
		value = &UnaryExpr{base: base{op.Line}, Op: op.Literal, Right: value}
	}
	f.values = append(f.values, value)
	fr.operand = false
	fr.start = false
}

// complete delivers a ternary or lambda, which always ends the expression of
// the frame receiving it.
func (f *folder) complete(value Expression) {
	f.deliver(value)
	f.top().done = true
}

func (f *folder) pushOperator(fr *foldFrame, tok Token) {
	for len(fr.ops) > 0 && Precedence(fr.ops[len(fr.ops)-1].Type) >= Precedence(tok.Type) {
		f.apply(fr.ops[len(fr.ops)-1])
		fr.ops = fr.ops[:len(fr.ops)-1]
	}
	fr.ops = append(fr.ops, tok)
	switch {
	case isComparison(tok.Type):
		fr.cmpSeen = true
	case tok.Type == TokenAnd || tok.Type == TokenOr:
		fr.cmpSeen = false
	}
	fr.operand = true
	f.pos++
}

func (f *folder) apply(op Token) {
	n := len(f.values)
	if op.Type == TokenNot {
		f.values[n-1] = &UnaryExpr{base: base{op.Line}, Op: op.Literal, Right: f.values[n-1]}
		return
	}
	left, right := f.values[n-2], f.values[n-1]
	f.values = append(f.values[:n-2], binary(left, op, right))
}

// reduce folds every pending operator of fr and pops the resulting operand.
func (f *folder) reduce(fr *foldFrame) Expression {
	for i := len(fr.ops) - 1; i >= 0; i-- {
		f.apply(fr.ops[i])
	}
	fr.ops = fr.ops[:0]
	value := f.values[len(f.values)-1]
	f.values = f.values[:fr.base]
	return value
}

// reset starts a fresh expression in fr, as after a comma or colon.
func (f *folder) reset(fr *foldFrame) {
	fr.ops = fr.ops[:0]
	fr.base = len(f.values)
	fr.operand = true
	fr.start = true
	fr.cmpSeen = false
	fr.done = false
}

// finish runs when the expression in fr cannot be extended by tok.
func (f *folder) finish(fr *foldFrame, value Expression, tok Token) (Expression, bool, error) {
	switch fr.kind {
	case frameTop:
		f.pop()
		return value, true, nil

	case frameParen:
		if _, err := f.expect(TokenRParen); err != nil {
			return nil, false, err
		}
		f.pop()
		f.deliver(value)

	case frameList:
		return nil, false, f.finishList(fr, value, tok)

	case frameDict:
		if fr.phase == phaseKey {
			if _, err := f.expect(TokenColon); err != nil {
				return nil, false, err
			}
			fr.key = value
			fr.phase = phaseValue
			f.reset(fr)
			return nil, false, nil
		}
		fr.pairs = append(fr.pairs, DictPair{Key: fr.key, Value: value})
		switch tok.Type {
		case TokenComma:
			f.pos++
			fr.phase = phaseKey
			f.reset(fr)
		case TokenRBrace:
			f.pos++
			f.pop()
			f.deliver(&DictLiteral{base: base{fr.open.Line}, Pairs: fr.pairs})
		default:
			return nil, false, errorExpected(TokenRBrace, tok)
		}

	case frameTernary:
		if fr.phase == phaseThen {
			if _, err := f.expect(TokenColon); err != nil {
				return nil, false, err
			}
			fr.then = value
			fr.phase = phaseElse
			f.reset(fr)
			return nil, false, nil
		}
		f.pop()
		f.complete(&TernaryExpr{base: base{fr.condition.Line()}, Condition: fr.condition, Then: fr.then, Else: value})

	case frameLambda:
		f.pop()
		f.complete(&LambdaExpr{base: base{fr.open.Line}, Params: fr.params, Body: value})
	}
	return nil, false, nil
}

func (f *folder) finishList(fr *foldFrame, value Expression, tok Token) error {
	switch fr.phase {
	case phaseElement:
		if fr.spread {
			value = &SpreadExpr{base: base{fr.open.Line}, Value: value}
			fr.spread = false
		} else if tok.Type == TokenFor && len(fr.elements) == 0 {
			f.pos++
			name, err := f.expect(TokenID)
			if err != nil {
				return err
			}
			if _, err := f.expect(TokenIn); err != nil {
				return err
			}
			fr.compExpr, fr.compVar = value, name.Literal
			fr.phase = phaseIterable
			f.reset(fr)
			return nil
		}
		fr.elements = append(fr.elements, value)
		switch tok.Type {
		case TokenComma:
			f.pos++
			if f.check(TokenRBracket) {
				f.pos++
				f.pop()
				f.deliver(&ListLiteral{base: base{fr.open.Line}, Elements: fr.elements})
				return nil
			}
			f.reset(fr)
			return nil
		case TokenRBracket:
			f.pos++
			f.pop()
			f.deliver(&ListLiteral{base: base{fr.open.Line}, Elements: fr.elements})
			return nil
		}
		return errorExpected(TokenRBracket, tok)

	case phaseIterable:
		fr.iterable = value
		if tok.Type == TokenIf {
			f.pos++
			fr.phase = phaseCondition
			f.reset(fr)
			return nil
		}
		if _, err := f.expect(TokenRBracket); err != nil {
			return err
		}
		f.pop()
		f.deliver(&ListComprehension{base: base{fr.open.Line}, Expr: fr.compExpr, Var: fr.compVar, Iterable: fr.iterable})
		return nil

	default:
		if _, err := f.expect(TokenRBracket); err != nil {
			return err
		}
		f.pop()
		f.deliver(&ListComprehension{base: base{fr.open.Line}, Expr: fr.compExpr, Var: fr.compVar, Iterable: fr.iterable, Condition: value})
		return nil
	}
}
