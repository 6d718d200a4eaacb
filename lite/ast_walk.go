package lite

// Children returns the direct child nodes of n in source order. Absent
// optional children are skipped.
func Children(n Node) []Node {
	c := &childCollector{}
	_ = n.Accept(c)
	return c.nodes
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the node just visited.
func Walk(n Node, fn func(Node) bool) {
	stack := []Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		children := Children(cur)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

type childCollector struct {
	nodes []Node
}

func (c *childCollector) add(exprs ...Expression) {
	for _, e := range exprs {
		if e != nil {
			c.nodes = append(c.nodes, e)
		}
	}
}

func (c *childCollector) addBody(body []Statement) {
	for _, s := range body {
		c.nodes = append(c.nodes, s)
	}
}

func (c *childCollector) VisitNumber(*NumberLiteral) error         { return nil }
func (c *childCollector) VisitString(*StringLiteral) error         { return nil }
func (c *childCollector) VisitBoolean(*BoolLiteral) error          { return nil }
func (c *childCollector) VisitVarAccess(*Identifier) error         { return nil }
func (c *childCollector) VisitInput(*InputExpr) error              { return nil }
func (c *childCollector) VisitPropertyAccess(*PropertyExpr) error { return nil }

func (c *childCollector) VisitUnaryOp(n *UnaryExpr) error {
	c.add(n.Right)
	return nil
}

func (c *childCollector) VisitBinOp(n *BinaryExpr) error {
	c.add(n.Left, n.Right)
	return nil
}

func (c *childCollector) VisitListVal(n *ListLiteral) error {
	c.add(n.Elements...)
	return nil
}

func (c *childCollector) VisitDictionary(n *DictLiteral) error {
	for _, pair := range n.Pairs {
		c.add(pair.Key, pair.Value)
	}
	return nil
}

func (c *childCollector) VisitCall(n *CallExpr) error {
	c.add(n.Args...)
	return nil
}

func (c *childCollector) VisitMethodCall(n *MethodCallExpr) error {
	c.add(n.Args...)
	return nil
}

func (c *childCollector) VisitLambda(n *LambdaExpr) error {
	c.add(n.Body)
	return nil
}

func (c *childCollector) VisitTernary(n *TernaryExpr) error {
	c.add(n.Condition, n.Then, n.Else)
	return nil
}

func (c *childCollector) VisitListComprehension(n *ListComprehension) error {
	c.add(n.Expr, n.Iterable, n.Condition)
	return nil
}

func (c *childCollector) VisitSpread(n *SpreadExpr) error {
	c.add(n.Value)
	return nil
}

func (c *childCollector) VisitAssign(n *AssignStmt) error {
	c.add(n.Value)
	return nil
}

func (c *childCollector) VisitConstAssign(n *ConstStmt) error {
	c.add(n.Value)
	return nil
}

func (c *childCollector) VisitPropertyAssign(n *PropertyAssignStmt) error {
	c.add(n.Value)
	return nil
}

func (c *childCollector) VisitPrint(n *PrintStmt) error {
	c.add(n.Expr)
	return nil
}

func (c *childCollector) VisitIf(n *IfStmt) error {
	c.add(n.Condition)
	c.addBody(n.Body)
	c.addBody(n.Else)
	return nil
}

func (c *childCollector) VisitUnless(n *UnlessStmt) error {
	c.add(n.Condition)
	c.addBody(n.Body)
	c.addBody(n.Else)
	return nil
}

func (c *childCollector) VisitWhile(n *WhileStmt) error {
	c.add(n.Condition)
	c.addBody(n.Body)
	return nil
}

func (c *childCollector) VisitUntil(n *UntilStmt) error {
	c.add(n.Condition)
	c.addBody(n.Body)
	return nil
}

func (c *childCollector) VisitForever(n *ForeverStmt) error {
	c.addBody(n.Body)
	return nil
}

func (c *childCollector) VisitFor(n *ForStmt) error {
	c.add(n.Count)
	c.addBody(n.Body)
	return nil
}

func (c *childCollector) VisitForIn(n *ForInStmt) error {
	c.add(n.Iterable)
	c.addBody(n.Body)
	return nil
}

func (c *childCollector) VisitRepeat(n *RepeatStmt) error {
	c.add(n.Count)
	c.addBody(n.Body)
	return nil
}

func (c *childCollector) VisitFunctionDef(n *FunctionStmt) error {
	for _, p := range n.Params {
		c.add(p.Default)
	}
	c.addBody(n.Body)
	return nil
}

func (c *childCollector) VisitReturn(n *ReturnStmt) error {
	c.add(n.Value)
	return nil
}

func (c *childCollector) VisitClassDef(n *ClassStmt) error {
	for _, m := range n.Methods {
		c.nodes = append(c.nodes, m)
	}
	return nil
}

func (c *childCollector) VisitInstantiation(n *InstantiateStmt) error {
	c.add(n.Args...)
	return nil
}

func (c *childCollector) VisitImport(*ImportStmt) error     { return nil }
func (c *childCollector) VisitImportAs(*ImportAsStmt) error { return nil }

func (c *childCollector) VisitTry(n *TryStmt) error {
	c.addBody(n.Body)
	c.addBody(n.Catch)
	return nil
}

func (c *childCollector) VisitTryAlways(n *TryAlwaysStmt) error {
	c.addBody(n.Body)
	c.addBody(n.Catch)
	c.addBody(n.Always)
	return nil
}

func (c *childCollector) VisitWhen(n *WhenStmt) error {
	c.add(n.Value)
	for _, wc := range n.Cases {
		c.add(wc.Match)
		c.addBody(wc.Body)
	}
	c.addBody(n.Otherwise)
	return nil
}

func (c *childCollector) VisitThrow(n *ThrowStmt) error {
	c.add(n.Message)
	return nil
}

func (c *childCollector) VisitExecute(n *ExecuteStmt) error {
	c.add(n.Code)
	return nil
}

func (c *childCollector) VisitExit(n *ExitStmt) error {
	c.add(n.Code)
	return nil
}

func (c *childCollector) VisitMake(n *MakeStmt) error {
	c.add(n.Args...)
	return nil
}

func (c *childCollector) VisitStop(*StopStmt) error { return nil }
func (c *childCollector) VisitSkip(*SkipStmt) error { return nil }
