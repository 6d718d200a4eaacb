package lite

type AssignStmt struct {
	base
	Name  string
	Value Expression
}

func (s *AssignStmt) stmtNode()  {}
func (s *AssignStmt) Kind() Kind { return KindAssign }

type ConstStmt struct {
	base
	Name  string
	Value Expression
}

func (s *ConstStmt) stmtNode()  {}
func (s *ConstStmt) Kind() Kind { return KindConstAssign }

type PropertyAssignStmt struct {
	base
	Instance string
	Property string
	Value    Expression
}

func (s *PropertyAssignStmt) stmtNode()  {}
func (s *PropertyAssignStmt) Kind() Kind { return KindPropertyAssign }

type PrintStmt struct {
	base
	Expr Expression
}

func (s *PrintStmt) stmtNode()  {}
func (s *PrintStmt) Kind() Kind { return KindPrint }

// IfStmt holds an if/elif/else chain. An elif is an IfStmt that is the only
// element of Else; Else is nil when there is no else branch.
type IfStmt struct {
	base
	Condition Expression
	Body      []Statement
	Else      []Statement
}

func (s *IfStmt) stmtNode()  {}
func (s *IfStmt) Kind() Kind { return KindIf }

type UnlessStmt struct {
	base
	Condition Expression
	Body      []Statement
	Else      []Statement
}

func (s *UnlessStmt) stmtNode()  {}
func (s *UnlessStmt) Kind() Kind { return KindUnless }

type WhileStmt struct {
	base
	Condition Expression
	Body      []Statement
}

func (s *WhileStmt) stmtNode()  {}
func (s *WhileStmt) Kind() Kind { return KindWhile }

type UntilStmt struct {
	base
	Condition Expression
	Body      []Statement
}

func (s *UntilStmt) stmtNode()  {}
func (s *UntilStmt) Kind() Kind { return KindUntil }

type ForeverStmt struct {
	base
	Body []Statement
}

func (s *ForeverStmt) stmtNode()  {}
func (s *ForeverStmt) Kind() Kind { return KindForever }

// ForStmt repeats its body Count times (`loop 3 times`, `for 3 in range`).
type ForStmt struct {
	base
	Count Expression
	Body  []Statement
}

func (s *ForStmt) stmtNode()  {}
func (s *ForStmt) Kind() Kind { return KindFor }

type ForInStmt struct {
	base
	Var      string
	Iterable Expression
	Body     []Statement
}

func (s *ForInStmt) stmtNode()  {}
func (s *ForInStmt) Kind() Kind { return KindForIn }

type RepeatStmt struct {
	base
	Count Expression
	Body  []Statement
}

func (s *RepeatStmt) stmtNode()  {}
func (s *RepeatStmt) Kind() Kind { return KindRepeat }

type Param struct {
	Name string
	// Default is nil for required parameters.
	Default Expression
}

type FunctionStmt struct {
	base
	Name   string
	Params []Param
	Body   []Statement
}

func (s *FunctionStmt) stmtNode()  {}
func (s *FunctionStmt) Kind() Kind { return KindFunctionDef }

type ReturnStmt struct {
	base
	Value Expression
}

func (s *ReturnStmt) stmtNode()  {}
func (s *ReturnStmt) Kind() Kind { return KindReturn }

type ClassStmt struct {
	base
	Name       string
	Properties []string
	Methods    []*FunctionStmt
	// Parent is empty when the class has no parent.
	Parent string
}

func (s *ClassStmt) stmtNode()  {}
func (s *ClassStmt) Kind() Kind { return KindClassDef }

// InstantiateStmt is `name is Class args...`.
type InstantiateStmt struct {
	base
	Var   string
	Class string
	Args  []Expression
}

func (s *InstantiateStmt) stmtNode()  {}
func (s *InstantiateStmt) Kind() Kind { return KindInstantiation }

type ImportStmt struct {
	base
	Path string
}

func (s *ImportStmt) stmtNode()  {}
func (s *ImportStmt) Kind() Kind { return KindImport }

type ImportAsStmt struct {
	base
	Path  string
	Alias string
}

func (s *ImportAsStmt) stmtNode()  {}
func (s *ImportAsStmt) Kind() Kind { return KindImportAs }

type TryStmt struct {
	base
	Body     []Statement
	CatchVar string
	Catch    []Statement
}

func (s *TryStmt) stmtNode()  {}
func (s *TryStmt) Kind() Kind { return KindTry }

type TryAlwaysStmt struct {
	base
	Body     []Statement
	CatchVar string
	Catch    []Statement
	Always   []Statement
}

func (s *TryAlwaysStmt) stmtNode()  {}
func (s *TryAlwaysStmt) Kind() Kind { return KindTryAlways }

type WhenCase struct {
	Match Expression
	Body  []Statement
}

type WhenStmt struct {
	base
	Value     Expression
	Cases     []WhenCase
	Otherwise []Statement
}

func (s *WhenStmt) stmtNode()  {}
func (s *WhenStmt) Kind() Kind { return KindWhen }

type ThrowStmt struct {
	base
	Message Expression
}

func (s *ThrowStmt) stmtNode()  {}
func (s *ThrowStmt) Kind() Kind { return KindThrow }

type ExecuteStmt struct {
	base
	Code Expression
}

func (s *ExecuteStmt) stmtNode()  {}
func (s *ExecuteStmt) Kind() Kind { return KindExecute }

type ExitStmt struct {
	base
	// Code is nil for a bare `exit`.
	Code Expression
}

func (s *ExitStmt) stmtNode()  {}
func (s *ExitStmt) Kind() Kind { return KindExit }

type MakeStmt struct {
	base
	Class string
	Args  []Expression
}

func (s *MakeStmt) stmtNode()  {}
func (s *MakeStmt) Kind() Kind { return KindMake }

type StopStmt struct {
	base
}

func (s *StopStmt) stmtNode()  {}
func (s *StopStmt) Kind() Kind { return KindStop }

type SkipStmt struct {
	base
}

func (s *SkipStmt) stmtNode()  {}
func (s *SkipStmt) Kind() Kind { return KindSkip }
