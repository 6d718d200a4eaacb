package lite

// Visitor has one method per node kind. Adding a node kind adds a method here,
// so every implementation has to handle it before the package compiles again.
type Visitor interface {
	VisitNumber(n *NumberLiteral) error
	VisitString(n *StringLiteral) error
	VisitBoolean(n *BoolLiteral) error
	VisitVarAccess(n *Identifier) error
	VisitUnaryOp(n *UnaryExpr) error
	VisitBinOp(n *BinaryExpr) error
	VisitListVal(n *ListLiteral) error
	VisitDictionary(n *DictLiteral) error
	VisitInput(n *InputExpr) error
	VisitCall(n *CallExpr) error
	VisitMethodCall(n *MethodCallExpr) error
	VisitPropertyAccess(n *PropertyExpr) error
	VisitLambda(n *LambdaExpr) error
	VisitTernary(n *TernaryExpr) error
	VisitListComprehension(n *ListComprehension) error
	VisitSpread(n *SpreadExpr) error
	VisitAssign(n *AssignStmt) error
	VisitConstAssign(n *ConstStmt) error
	VisitPropertyAssign(n *PropertyAssignStmt) error
	VisitPrint(n *PrintStmt) error
	VisitIf(n *IfStmt) error
	VisitUnless(n *UnlessStmt) error
	VisitWhile(n *WhileStmt) error
	VisitUntil(n *UntilStmt) error
	VisitForever(n *ForeverStmt) error
	VisitFor(n *ForStmt) error
	VisitForIn(n *ForInStmt) error
	VisitRepeat(n *RepeatStmt) error
	VisitFunctionDef(n *FunctionStmt) error
	VisitReturn(n *ReturnStmt) error
	VisitClassDef(n *ClassStmt) error
	VisitInstantiation(n *InstantiateStmt) error
	VisitImport(n *ImportStmt) error
	VisitImportAs(n *ImportAsStmt) error
	VisitTry(n *TryStmt) error
	VisitTryAlways(n *TryAlwaysStmt) error
	VisitWhen(n *WhenStmt) error
	VisitThrow(n *ThrowStmt) error
	VisitExecute(n *ExecuteStmt) error
	VisitExit(n *ExitStmt) error
	VisitMake(n *MakeStmt) error
	VisitStop(n *StopStmt) error
	VisitSkip(n *SkipStmt) error
}

func (e *NumberLiteral) Accept(v Visitor) error { return v.VisitNumber(e) }
func (e *StringLiteral) Accept(v Visitor) error { return v.VisitString(e) }
func (e *BoolLiteral) Accept(v Visitor) error { return v.VisitBoolean(e) }
func (e *Identifier) Accept(v Visitor) error { return v.VisitVarAccess(e) }
func (e *UnaryExpr) Accept(v Visitor) error { return v.VisitUnaryOp(e) }
func (e *BinaryExpr) Accept(v Visitor) error { return v.VisitBinOp(e) }
func (e *ListLiteral) Accept(v Visitor) error { return v.VisitListVal(e) }
func (e *DictLiteral) Accept(v Visitor) error { return v.VisitDictionary(e) }
func (e *InputExpr) Accept(v Visitor) error { return v.VisitInput(e) }
func (e *CallExpr) Accept(v Visitor) error { return v.VisitCall(e) }
func (e *MethodCallExpr) Accept(v Visitor) error { return v.VisitMethodCall(e) }
func (e *PropertyExpr) Accept(v Visitor) error { return v.VisitPropertyAccess(e) }
func (e *LambdaExpr) Accept(v Visitor) error { return v.VisitLambda(e) }
func (e *TernaryExpr) Accept(v Visitor) error { return v.VisitTernary(e) }
func (e *ListComprehension) Accept(v Visitor) error { return v.VisitListComprehension(e) }
func (e *SpreadExpr) Accept(v Visitor) error { return v.VisitSpread(e) }
func (s *AssignStmt) Accept(v Visitor) error { return v.VisitAssign(s) }
func (s *ConstStmt) Accept(v Visitor) error { return v.VisitConstAssign(s) }
func (s *PropertyAssignStmt) Accept(v Visitor) error { return v.VisitPropertyAssign(s) }
func (s *PrintStmt) Accept(v Visitor) error { return v.VisitPrint(s) }
func (s *IfStmt) Accept(v Visitor) error { return v.VisitIf(s) }
func (s *UnlessStmt) Accept(v Visitor) error { return v.VisitUnless(s) }
func (s *WhileStmt) Accept(v Visitor) error { return v.VisitWhile(s) }
func (s *UntilStmt) Accept(v Visitor) error { return v.VisitUntil(s) }
func (s *ForeverStmt) Accept(v Visitor) error { return v.VisitForever(s) }
func (s *ForStmt) Accept(v Visitor) error { return v.VisitFor(s) }
func (s *ForInStmt) Accept(v Visitor) error { return v.VisitForIn(s) }
func (s *RepeatStmt) Accept(v Visitor) error { return v.VisitRepeat(s) }
func (s *FunctionStmt) Accept(v Visitor) error { return v.VisitFunctionDef(s) }
func (s *ReturnStmt) Accept(v Visitor) error { return v.VisitReturn(s) }
func (s *ClassStmt) Accept(v Visitor) error { return v.VisitClassDef(s) }
func (s *InstantiateStmt) Accept(v Visitor) error { return v.VisitInstantiation(s) }
func (s *ImportStmt) Accept(v Visitor) error { return v.VisitImport(s) }
func (s *ImportAsStmt) Accept(v Visitor) error { return v.VisitImportAs(s) }
func (s *TryStmt) Accept(v Visitor) error { return v.VisitTry(s) }
func (s *TryAlwaysStmt) Accept(v Visitor) error { return v.VisitTryAlways(s) }
func (s *WhenStmt) Accept(v Visitor) error { return v.VisitWhen(s) }
func (s *ThrowStmt) Accept(v Visitor) error { return v.VisitThrow(s) }
func (s *ExecuteStmt) Accept(v Visitor) error { return v.VisitExecute(s) }
func (s *ExitStmt) Accept(v Visitor) error { return v.VisitExit(s) }
func (s *MakeStmt) Accept(v Visitor) error { return v.VisitMake(s) }
func (s *StopStmt) Accept(v Visitor) error { return v.VisitStop(s) }
func (s *SkipStmt) Accept(v Visitor) error { return v.VisitSkip(s) }
