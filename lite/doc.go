// Package lite implements the ShellLite language front end. Source text is
// turned into a flat token stream and then into a tree of statements by one of
// two interchangeable parsers:
//   - A recursive-descent parser that follows the grammar rule by rule.
//   - A geometric-binding parser that first groups lines into an indentation
//     tree, then binds statement shapes per line, and finally folds each
//     expression with an explicit operator stack instead of recursion.
//
// Both parsers accept the same token streams and build deeply equal trees, or
// fail with the same SyntaxError. ShellLite is indentation-sensitive: blocks
// are introduced by a deeper indent and closed by a shallower one, and the
// lexer reports this structure as INDENT and DEDENT tokens.
//
// Comments beginning with `#` are ignored. Nesting beyond the configured
// depth limit is rejected with ErrNestingTooDeep rather than exhausting the
// goroutine stack.
package lite
