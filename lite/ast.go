package lite

// Node is implemented by every AST node. Line is the 1-based source line the
// parser stamped on the node; 0 marks nodes the parser synthesized.
type Node interface {
	Line() int
	Kind() Kind
	Accept(v Visitor) error
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// Program is the result of a Frontend parse.
type Program struct {
	Statements []Statement
	Parser     ParserKind
}

func (p *Program) Line() int {
	if len(p.Statements) == 0 {
		return 0
	}
	return p.Statements[0].Line()
}

type base struct {
	line int
}

func (b *base) Line() int { return b.line }

// Kind enumerates the closed set of node kinds.
type Kind int

const (
	KindNumber Kind = iota + 1
	KindString
	KindBoolean
	KindVarAccess
	KindUnaryOp
	KindBinOp
	KindListVal
	KindDictionary
	KindInput
	KindCall
	KindMethodCall
	KindPropertyAccess
	KindLambda
	KindTernary
	KindListComprehension
	KindSpread

	KindAssign
	KindConstAssign
	KindPropertyAssign
	KindPrint
	KindIf
	KindUnless
	KindWhile
	KindUntil
	KindForever
	KindFor
	KindForIn
	KindRepeat
	KindFunctionDef
	KindReturn
	KindClassDef
	KindInstantiation
	KindImport
	KindImportAs
	KindTry
	KindTryAlways
	KindWhen
	KindThrow
	KindExecute
	KindExit
	KindMake
	KindStop
	KindSkip

	kindCount
)

var kindNames = [...]string{
	KindNumber:            "Number",
	KindString:            "String",
	KindBoolean:           "Boolean",
	KindVarAccess:         "VarAccess",
	KindUnaryOp:           "UnaryOp",
	KindBinOp:             "BinOp",
	KindListVal:           "ListVal",
	KindDictionary:        "Dictionary",
	KindInput:             "Input",
	KindCall:              "Call",
	KindMethodCall:        "MethodCall",
	KindPropertyAccess:    "PropertyAccess",
	KindLambda:            "Lambda",
	KindTernary:           "Ternary",
	KindListComprehension: "ListComprehension",
	KindSpread:            "Spread",
	KindAssign:            "Assign",
	KindConstAssign:       "ConstAssign",
	KindPropertyAssign:    "PropertyAssign",
	KindPrint:             "Print",
	KindIf:                "If",
	KindUnless:            "Unless",
	KindWhile:             "While",
	KindUntil:             "Until",
	KindForever:           "Forever",
	KindFor:               "For",
	KindForIn:             "ForIn",
	KindRepeat:            "Repeat",
	KindFunctionDef:       "FunctionDef",
	KindReturn:            "Return",
	KindClassDef:          "ClassDef",
	KindInstantiation:     "Instantiation",
	KindImport:            "Import",
	KindImportAs:          "ImportAs",
	KindTry:               "Try",
	KindTryAlways:         "TryAlways",
	KindWhen:              "When",
	KindThrow:             "Throw",
	KindExecute:           "Execute",
	KindExit:              "Exit",
	KindMake:              "Make",
	KindStop:              "Stop",
	KindSkip:              "Skip",
}

func (k Kind) String() string {
	if k <= 0 || k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// IsStatement reports whether k is statement-shaped. VarAccess, Call and
// MethodCall are expressions that may also stand alone as statements.
func (k Kind) IsStatement() bool {
	return k >= KindAssign && k < kindCount
}

type NumberLiteral struct {
	base
	Int     int64
	Float   float64
	IsFloat bool
}

func (e *NumberLiteral) exprNode()  {}
func (e *NumberLiteral) Kind() Kind { return KindNumber }

// Value returns the literal as a float regardless of its spelling.
func (e *NumberLiteral) Value() float64 {
	if e.IsFloat {
		return e.Float
	}
	return float64(e.Int)
}

type StringLiteral struct {
	base
	Value string
}

func (e *StringLiteral) exprNode()  {}
func (e *StringLiteral) Kind() Kind { return KindString }

type BoolLiteral struct {
	base
	Value bool
}

func (e *BoolLiteral) exprNode()  {}
func (e *BoolLiteral) Kind() Kind { return KindBoolean }

// Identifier reads a variable. As a statement it evaluates the name without
// printing the result.
type Identifier struct {
	base
	Name string
}

func (e *Identifier) exprNode()  {}
func (e *Identifier) stmtNode()  {}
func (e *Identifier) Kind() Kind { return KindVarAccess }

type UnaryExpr struct {
	base
	Op    string
	Right Expression
}

func (e *UnaryExpr) exprNode()  {}
func (e *UnaryExpr) Kind() Kind { return KindUnaryOp }

type BinaryExpr struct {
	base
	Left  Expression
	Op    string
	Right Expression
}

func (e *BinaryExpr) exprNode()  {}
func (e *BinaryExpr) Kind() Kind { return KindBinOp }

type ListLiteral struct {
	base
	Elements []Expression
}

func (e *ListLiteral) exprNode()  {}
func (e *ListLiteral) Kind() Kind { return KindListVal }

type DictPair struct {
	Key   Expression
	Value Expression
}

type DictLiteral struct {
	base
	Pairs []DictPair
}

func (e *DictLiteral) exprNode()  {}
func (e *DictLiteral) Kind() Kind { return KindDictionary }

type InputExpr struct {
	base
	Prompt    string
	HasPrompt bool
}

func (e *InputExpr) exprNode()  {}
func (e *InputExpr) Kind() Kind { return KindInput }

type CallExpr struct {
	base
	Name string
	Args []Expression
}

func (e *CallExpr) exprNode()  {}
func (e *CallExpr) stmtNode()  {}
func (e *CallExpr) Kind() Kind { return KindCall }

type MethodCallExpr struct {
	base
	Instance string
	Method   string
	Args     []Expression
}

func (e *MethodCallExpr) exprNode()  {}
func (e *MethodCallExpr) stmtNode()  {}
func (e *MethodCallExpr) Kind() Kind { return KindMethodCall }

type PropertyExpr struct {
	base
	Instance string
	Property string
}

func (e *PropertyExpr) exprNode()  {}
func (e *PropertyExpr) Kind() Kind { return KindPropertyAccess }

type LambdaExpr struct {
	base
	Params []string
	Body   Expression
}

func (e *LambdaExpr) exprNode()  {}
func (e *LambdaExpr) Kind() Kind { return KindLambda }

type TernaryExpr struct {
	base
	Condition Expression
	Then      Expression
	Else      Expression
}

func (e *TernaryExpr) exprNode()  {}
func (e *TernaryExpr) Kind() Kind { return KindTernary }

type ListComprehension struct {
	base
	Expr     Expression
	Var      string
	Iterable Expression
	// Condition is nil without an `if` filter.
	Condition Expression
}

func (e *ListComprehension) exprNode()  {}
func (e *ListComprehension) Kind() Kind { return KindListComprehension }

// SpreadExpr splices an iterable into the enclosing list literal.
type SpreadExpr struct {
	base
	Value Expression
}

func (e *SpreadExpr) exprNode()  {}
func (e *SpreadExpr) Kind() Kind { return KindSpread }
