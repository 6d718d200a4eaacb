package lite

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Field is one named value of an encoded node.
type Field struct {
	Name  string
	Value any
}

// Fields is an encoded node: `kind` and `line` first, then the node's own
// fields in declaration order. It marshals to YAML and JSON with that order
// preserved.
type Fields []Field

// Get returns the value of the named field.
func (f Fields) Get(name string) (any, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

func (f Fields) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, field := range f {
		value := &yaml.Node{}
		if err := value.Encode(field.Value); err != nil {
			return nil, fmt.Errorf("encode %s: %w", field.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field.Name},
			value,
		)
	}
	return node, nil
}

func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", field.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode converts a node and its subtree into Fields.
func Encode(n Node) Fields {
	if n == nil {
		return nil
	}
	e := &encoder{}
	_ = n.Accept(e)
	return e.out
}

// EncodeProgram encodes every statement of a program.
func EncodeProgram(stmts []Statement) []Fields {
	out := make([]Fields, 0, len(stmts))
	for _, stmt := range stmts {
		out = append(out, Encode(stmt))
	}
	return out
}

// MarshalProgram renders statements as "yaml" or "json".
func MarshalProgram(stmts []Statement, format string) ([]byte, error) {
	encoded := EncodeProgram(stmts)
	switch format {
	case "", "yaml", "yml":
		return yaml.Marshal(encoded)
	case "json":
		out, err := json.MarshalIndent(encoded, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	}
	return nil, fmt.Errorf("unknown output format %q (want yaml or json)", format)
}

type encoder struct {
	out Fields
}

func (e *encoder) emit(n Node, fields ...Field) error {
	e.out = append(Fields{{"kind", n.Kind().String()}, {"line", n.Line()}}, fields...)
	return nil
}

func expr(x Expression) any {
	if x == nil {
		return nil
	}
	return Encode(x)
}

func exprs(xs []Expression) []any {
	out := make([]any, 0, len(xs))
	for _, x := range xs {
		out = append(out, expr(x))
	}
	return out
}

func body(stmts []Statement) any {
	if stmts == nil {
		return nil
	}
	out := make([]any, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, Encode(s))
	}
	return out
}

func (e *encoder) VisitNumber(n *NumberLiteral) error {
	if n.IsFloat {
		return e.emit(n, Field{"value", n.Float})
	}
	return e.emit(n, Field{"value", n.Int})
}

func (e *encoder) VisitString(n *StringLiteral) error {
	return e.emit(n, Field{"value", n.Value})
}

func (e *encoder) VisitBoolean(n *BoolLiteral) error {
	return e.emit(n, Field{"value", n.Value})
}

func (e *encoder) VisitVarAccess(n *Identifier) error {
	return e.emit(n, Field{"name", n.Name})
}

func (e *encoder) VisitUnaryOp(n *UnaryExpr) error {
	return e.emit(n, Field{"op", n.Op}, Field{"right", expr(n.Right)})
}

func (e *encoder) VisitBinOp(n *BinaryExpr) error {
	return e.emit(n, Field{"left", expr(n.Left)}, Field{"op", n.Op}, Field{"right", expr(n.Right)})
}

func (e *encoder) VisitListVal(n *ListLiteral) error {
	return e.emit(n, Field{"elements", exprs(n.Elements)})
}

func (e *encoder) VisitDictionary(n *DictLiteral) error {
	pairs := make([]any, 0, len(n.Pairs))
	for _, p := range n.Pairs {
		pairs = append(pairs, Fields{{"key", expr(p.Key)}, {"value", expr(p.Value)}})
	}
	return e.emit(n, Field{"pairs", pairs})
}

func (e *encoder) VisitInput(n *InputExpr) error {
	var prompt any
	if n.HasPrompt {
		prompt = n.Prompt
	}
	return e.emit(n, Field{"prompt", prompt})
}

func (e *encoder) VisitCall(n *CallExpr) error {
	return e.emit(n, Field{"name", n.Name}, Field{"args", exprs(n.Args)})
}

func (e *encoder) VisitMethodCall(n *MethodCallExpr) error {
	return e.emit(n, Field{"instance", n.Instance}, Field{"method", n.Method}, Field{"args", exprs(n.Args)})
}

func (e *encoder) VisitPropertyAccess(n *PropertyExpr) error {
	return e.emit(n, Field{"instance", n.Instance}, Field{"property", n.Property})
}

func (e *encoder) VisitLambda(n *LambdaExpr) error {
	return e.emit(n, Field{"params", n.Params}, Field{"body", expr(n.Body)})
}

func (e *encoder) VisitTernary(n *TernaryExpr) error {
	return e.emit(n, Field{"condition", expr(n.Condition)}, Field{"then", expr(n.Then)}, Field{"else", expr(n.Else)})
}

func (e *encoder) VisitListComprehension(n *ListComprehension) error {
	return e.emit(n,
		Field{"expr", expr(n.Expr)},
		Field{"var", n.Var},
		Field{"iterable", expr(n.Iterable)},
		Field{"condition", expr(n.Condition)},
	)
}

func (e *encoder) VisitSpread(n *SpreadExpr) error {
	return e.emit(n, Field{"value", expr(n.Value)})
}

func (e *encoder) VisitAssign(n *AssignStmt) error {
	return e.emit(n, Field{"name", n.Name}, Field{"value", expr(n.Value)})
}

func (e *encoder) VisitConstAssign(n *ConstStmt) error {
	return e.emit(n, Field{"name", n.Name}, Field{"value", expr(n.Value)})
}

func (e *encoder) VisitPropertyAssign(n *PropertyAssignStmt) error {
	return e.emit(n, Field{"instance", n.Instance}, Field{"property", n.Property}, Field{"value", expr(n.Value)})
}

func (e *encoder) VisitPrint(n *PrintStmt) error {
	return e.emit(n, Field{"expr", expr(n.Expr)})
}

func (e *encoder) VisitIf(n *IfStmt) error {
	return e.emit(n, Field{"condition", expr(n.Condition)}, Field{"body", body(n.Body)}, Field{"else", body(n.Else)})
}

func (e *encoder) VisitUnless(n *UnlessStmt) error {
	return e.emit(n, Field{"condition", expr(n.Condition)}, Field{"body", body(n.Body)}, Field{"else", body(n.Else)})
}

func (e *encoder) VisitWhile(n *WhileStmt) error {
	return e.emit(n, Field{"condition", expr(n.Condition)}, Field{"body", body(n.Body)})
}

func (e *encoder) VisitUntil(n *UntilStmt) error {
	return e.emit(n, Field{"condition", expr(n.Condition)}, Field{"body", body(n.Body)})
}

func (e *encoder) VisitForever(n *ForeverStmt) error {
	return e.emit(n, Field{"body", body(n.Body)})
}

func (e *encoder) VisitFor(n *ForStmt) error {
	return e.emit(n, Field{"count", expr(n.Count)}, Field{"body", body(n.Body)})
}

func (e *encoder) VisitForIn(n *ForInStmt) error {
	return e.emit(n, Field{"var", n.Var}, Field{"iterable", expr(n.Iterable)}, Field{"body", body(n.Body)})
}

func (e *encoder) VisitRepeat(n *RepeatStmt) error {
	return e.emit(n, Field{"count", expr(n.Count)}, Field{"body", body(n.Body)})
}

func (e *encoder) VisitFunctionDef(n *FunctionStmt) error {
	params := make([]any, 0, len(n.Params))
	for _, p := range n.Params {
		params = append(params, Fields{{"name", p.Name}, {"default", expr(p.Default)}})
	}
	return e.emit(n, Field{"name", n.Name}, Field{"params", params}, Field{"body", body(n.Body)})
}

func (e *encoder) VisitReturn(n *ReturnStmt) error {
	return e.emit(n, Field{"value", expr(n.Value)})
}

func (e *encoder) VisitClassDef(n *ClassStmt) error {
	methods := make([]any, 0, len(n.Methods))
	for _, m := range n.Methods {
		methods = append(methods, Encode(m))
	}
	var parent any
	if n.Parent != "" {
		parent = n.Parent
	}
	return e.emit(n,
		Field{"name", n.Name},
		Field{"parent", parent},
		Field{"properties", n.Properties},
		Field{"methods", methods},
	)
}

func (e *encoder) VisitInstantiation(n *InstantiateStmt) error {
	return e.emit(n, Field{"var", n.Var}, Field{"class", n.Class}, Field{"args", exprs(n.Args)})
}

func (e *encoder) VisitImport(n *ImportStmt) error {
	return e.emit(n, Field{"path", n.Path})
}

func (e *encoder) VisitImportAs(n *ImportAsStmt) error {
	return e.emit(n, Field{"path", n.Path}, Field{"alias", n.Alias})
}

func (e *encoder) VisitTry(n *TryStmt) error {
	return e.emit(n, Field{"body", body(n.Body)}, Field{"catch_var", n.CatchVar}, Field{"catch", body(n.Catch)})
}

func (e *encoder) VisitTryAlways(n *TryAlwaysStmt) error {
	return e.emit(n,
		Field{"body", body(n.Body)},
		Field{"catch_var", n.CatchVar},
		Field{"catch", body(n.Catch)},
		Field{"always", body(n.Always)},
	)
}

func (e *encoder) VisitWhen(n *WhenStmt) error {
	cases := make([]any, 0, len(n.Cases))
	for _, c := range n.Cases {
		cases = append(cases, Fields{{"match", expr(c.Match)}, {"body", body(c.Body)}})
	}
	return e.emit(n, Field{"value", expr(n.Value)}, Field{"cases", cases}, Field{"otherwise", body(n.Otherwise)})
}

func (e *encoder) VisitThrow(n *ThrowStmt) error {
	return e.emit(n, Field{"message", expr(n.Message)})
}

func (e *encoder) VisitExecute(n *ExecuteStmt) error {
	return e.emit(n, Field{"code", expr(n.Code)})
}

func (e *encoder) VisitExit(n *ExitStmt) error {
	return e.emit(n, Field{"code", expr(n.Code)})
}

func (e *encoder) VisitMake(n *MakeStmt) error {
	return e.emit(n, Field{"class", n.Class}, Field{"args", exprs(n.Args)})
}

func (e *encoder) VisitStop(n *StopStmt) error { return e.emit(n) }
func (e *encoder) VisitSkip(n *SkipStmt) error { return e.emit(n) }
