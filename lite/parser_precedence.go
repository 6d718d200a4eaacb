package lite

const (
	precNone = iota
	precOr
	precAnd
	precNot
	precEquality
	precComparison
	precSum
	precProduct
	precPow
	precDot
	precCall
)

var precedences = map[TokenType]int{
	TokenOr:       precOr,
	TokenAnd:      precAnd,
	TokenNot:      precNot,
	TokenEQ:       precEquality,
	TokenNEQ:      precEquality,
	TokenLT:       precComparison,
	TokenGT:       precComparison,
	TokenLE:       precComparison,
	TokenGE:       precComparison,
	TokenIs:       precComparison,
	TokenPlus:     precSum,
	TokenMinus:    precSum,
	TokenMul:      precProduct,
	TokenDiv:      precProduct,
	TokenMod:      precProduct,
	TokenPow:      precPow,
	TokenDot:      precDot,
	TokenLParen:   precCall,
	TokenLBracket: precCall,
}

// Precedence returns the binding power of an operator token, or 0 when the
// token is not an operator.
func Precedence(tt TokenType) int {
	return precedences[tt]
}

func isComparison(tt TokenType) bool {
	switch tt {
	case TokenEQ, TokenNEQ, TokenLT, TokenGT, TokenLE, TokenGE, TokenIs:
		return true
	}
	return false
}

func isBinaryOperator(tt TokenType) bool {
	switch tt {
	case TokenOr, TokenAnd, TokenPlus, TokenMinus, TokenMul, TokenDiv, TokenMod:
		return true
	}
	return isComparison(tt)
}

// operatorText is the operator spelling stored in BinaryExpr.Op. `is` is an
// alias for equality.
func operatorText(tok Token) string {
	if tok.Type == TokenIs {
		return "=="
	}
	return tok.Literal
}

// canStartArgument reports whether tt may begin a juxtaposed call argument.
func canStartArgument(tt TokenType) bool {
	switch tt {
	case TokenNumber, TokenString, TokenID, TokenLParen, TokenInput,
		TokenYes, TokenNo, TokenLBracket, TokenLBrace:
		return true
	}
	return false
}
