package lite

// ParseGeometric parses a token sequence in three passes. The topology scan
// groups tokens into logical lines arranged in a tree by indentation, the
// binder turns each line and its children into a statement, and expressions
// are folded iteratively on explicit stacks. The result is identical to
// ParseRecursiveDescent for the same tokens, line numbers included.
func ParseGeometric(tokens []Token) ([]Statement, error) {
	return parseGeometric(tokens, DefaultMaxDepth)
}

func parseGeometric(tokens []Token, maxDepth int) ([]Statement, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	topo, err := scanTopology(tokens)
	if err != nil {
		return nil, err
	}
	b := &binder{nodes: topo.nodes, maxDepth: maxDepth}
	return b.bindBlock(topo.roots)
}

// geoNode is one logical line. tokens always ends with the NEWLINE or EOF
// that terminated the line.
type geoNode struct {
	tokens   []Token
	parent   int
	children []int

	// hasBlock is set when an INDENT opened a block under this line; indent
	// is that INDENT token.
	hasBlock bool
	indent   Token

	// follow is the token after the line terminator and after is the token
	// after the whole subtree. Errors about missing blocks or clauses report
	// them, as a single-pass parser would.
	follow Token
	after  Token
}

func (n *geoNode) head() Token { return n.tokens[0] }

type topology struct {
	nodes []geoNode
	roots []int
}

// scanTopology makes a single pass over the tokens. Nodes live in one arena
// and refer to each other by index.
func scanTopology(tokens []Token) (*topology, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		tokens = append(tokens[:len(tokens):len(tokens)], endOfInput(tokens))
	}
	at := func(i int) Token {
		if i < len(tokens) {
			return tokens[i]
		}
		return endOfInput(tokens)
	}

	t := &topology{roots: []int{}}
	var blocks []int
	current, lastClosed := -1, -1

	for i, tok := range tokens {
		switch tok.Type {
		case TokenNewline, TokenEOF:
			if current >= 0 {
				n := &t.nodes[current]
				n.tokens = append(n.tokens, tok)
				n.follow = at(i + 1)
				n.after = n.follow
				lastClosed, current = current, -1
			}
			if tok.Type == TokenEOF {
				if len(blocks) > 0 {
					return nil, errorExpected(TokenDedent, tok)
				}
				return t, nil
			}

		case TokenIndent:
			if current >= 0 || lastClosed < 0 || t.nodes[lastClosed].hasBlock {
				return nil, errorUnexpected(tok)
			}
			n := &t.nodes[lastClosed]
			n.hasBlock = true
			n.indent = tok
			blocks = append(blocks, lastClosed)
			lastClosed = -1

		case TokenDedent:
			if current >= 0 || len(blocks) == 0 {
				return nil, errorUnexpected(tok)
			}
			parent := blocks[len(blocks)-1]
			blocks = blocks[:len(blocks)-1]
			t.nodes[parent].after = at(i + 1)
			lastClosed = -1

		default:
			if current < 0 {
				current = len(t.nodes)
				parent := -1
				if len(blocks) > 0 {
					parent = blocks[len(blocks)-1]
				}
				t.nodes = append(t.nodes, geoNode{parent: parent, children: []int{}})
				if parent >= 0 {
					t.nodes[parent].children = append(t.nodes[parent].children, current)
				} else {
					t.roots = append(t.roots, current)
				}
			}
			t.nodes[current].tokens = append(t.nodes[current].tokens, tok)
		}
	}
	return t, nil
}
