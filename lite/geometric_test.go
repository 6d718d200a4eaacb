package lite

import (
	"errors"
	"strings"
	"testing"
)

func TestTopologySiblingFunctionsAndCalls(t *testing.T) {
	source := `to greet
    say "hi"
greet
to bye name
    say name
bye "Ann"
`
	tokens, err := Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	topo, err := scanTopology(tokens)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(topo.roots) != 4 {
		t.Fatalf("expected 4 root nodes, got %d", len(topo.roots))
	}
	wantHeads := []TokenType{TokenTo, TokenID, TokenTo, TokenID}
	wantLines := []int{1, 3, 4, 6}
	for i, id := range topo.roots {
		n := topo.nodes[id]
		if n.head().Type != wantHeads[i] || n.head().Line != wantLines[i] {
			t.Fatalf("root %d: expected %s on line %d, got %v", i, wantHeads[i], wantLines[i], n.head())
		}
		if n.parent != -1 {
			t.Fatalf("root %d has parent %d", i, n.parent)
		}
		if end := n.tokens[len(n.tokens)-1].Type; end != TokenNewline {
			t.Fatalf("root %d: expected line to end with NEWLINE, got %s", i, end)
		}
	}

	first := topo.nodes[topo.roots[0]]
	if !first.hasBlock || len(first.children) != 1 {
		t.Fatalf("expected function node to own one child line, got %+v", first)
	}
	if child := topo.nodes[first.children[0]]; child.parent != topo.roots[0] {
		t.Fatalf("expected child to point back at its header, got parent %d", child.parent)
	}

	rd, err := ParseRecursiveDescent(tokens)
	if err != nil {
		t.Fatalf("rd: %v", err)
	}
	gbp, err := ParseGeometric(tokens)
	if err != nil {
		t.Fatalf("gbp: %v", err)
	}
	assertTree(t, gbp, rd)
	if _, ok := gbp[0].(*FunctionStmt); !ok {
		t.Fatalf("expected function definition first, got %T", gbp[0])
	}
	if call, ok := gbp[3].(*CallExpr); !ok || call.Name != "bye" {
		t.Fatalf("expected call to bye last, got %#v", gbp[3])
	}
}

func TestTopologyNestedBlocks(t *testing.T) {
	source := `while yes
    if a
        say 1
    say 2
say 3
`
	tokens, err := Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	topo, err := scanTopology(tokens)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(topo.roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(topo.roots))
	}
	loop := topo.nodes[topo.roots[0]]
	if len(loop.children) != 2 {
		t.Fatalf("expected 2 lines under while, got %d", len(loop.children))
	}
	inner := topo.nodes[loop.children[0]]
	if !inner.hasBlock || len(inner.children) != 1 {
		t.Fatalf("expected if to own one line")
	}
	if loop.after.Type != TokenOutput || loop.after.Line != 5 {
		t.Fatalf("expected token after while block to be say on line 5, got %v", loop.after)
	}
	if inner.follow.Type != TokenIndent {
		t.Fatalf("expected INDENT after if header, got %v", inner.follow)
	}
}

func TestTopologyRejectsMalformedStreams(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		want   string
	}{
		{
			name: "leading indent",
			tokens: []Token{
				{Type: TokenIndent, Line: 1},
				{Type: TokenID, Literal: "x", Line: 1},
				{Type: TokenNewline, Line: 1},
				{Type: TokenDedent, Line: 1},
				{Type: TokenEOF, Line: 1},
			},
			want: "unexpected token indented block",
		},
		{
			name: "unbalanced dedent",
			tokens: []Token{
				{Type: TokenID, Literal: "x", Line: 1},
				{Type: TokenNewline, Line: 1},
				{Type: TokenDedent, Line: 2},
				{Type: TokenEOF, Line: 2},
			},
			want: "unexpected token end of block",
		},
		{
			name: "block left open",
			tokens: []Token{
				{Type: TokenID, Literal: "x", Line: 1},
				{Type: TokenNewline, Line: 1},
				{Type: TokenIndent, Line: 2},
				{Type: TokenID, Literal: "y", Line: 2},
				{Type: TokenNewline, Line: 2},
				{Type: TokenEOF, Line: 2},
			},
			want: "expected end of block",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGeometric(tt.tokens)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
		})
	}
}

func TestTopologyAddsMissingEOF(t *testing.T) {
	tokens := []Token{
		{Type: TokenOutput, Literal: "say", Line: 1},
		{Type: TokenNumber, Literal: "1", Line: 1},
		{Type: TokenNewline, Line: 1},
	}
	stmts, err := ParseGeometric(tokens)
	if err != nil {
		t.Fatalf("gbp: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	if len(tokens) != 3 {
		t.Fatalf("expected caller's slice to be left alone")
	}
}

func TestFoldStopsWhereExpressionEnds(t *testing.T) {
	tokens, err := Tokenize("1 + 2 name")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	expr, next, err := fold(tokens, 0, DefaultMaxDepth)
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	if tokens[next].Type != TokenID {
		t.Fatalf("expected fold to stop before name, stopped at %v", tokens[next])
	}
	if bin, ok := expr.(*BinaryExpr); !ok || bin.Op != "+" {
		t.Fatalf("expected sum, got %#v", expr)
	}
}

func TestFoldNotBindsTighterThanOperators(t *testing.T) {
	tokens, err := Tokenize("not a == b")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	expr, _, err := fold(tokens, 0, DefaultMaxDepth)
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	bin, ok := expr.(*BinaryExpr)
	if !ok || bin.Op != "==" {
		t.Fatalf("expected comparison at the root, got %#v", expr)
	}
	if unary, ok := bin.Left.(*UnaryExpr); !ok || unary.Op != "not" {
		t.Fatalf("expected not to apply to the left operand, got %#v", bin.Left)
	}
}

func TestGeometricNestingTooDeep(t *testing.T) {
	tokens, err := Tokenize("say " + strings.Repeat("[", 40) + strings.Repeat("]", 40))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if _, err := parseGeometric(tokens, 16); !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("expected ErrNestingTooDeep, got %v", err)
	}

	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString(strings.Repeat("    ", i))
		b.WriteString("if yes\n")
	}
	b.WriteString(strings.Repeat("    ", 20))
	b.WriteString("say 1\n")
	tokens, err = Tokenize(b.String())
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if _, err := parseGeometric(tokens, 16); !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("expected deep blocks to hit the limit, got %v", err)
	}
}
