package lite

import "sort"

// keywords maps every reserved surface word to its token kind. Several words
// share a kind ("say", "print" and "show" all produce TokenOutput).
var keywords = map[string]TokenType{
	"if":        TokenIf,
	"else":      TokenElse,
	"elif":      TokenElif,
	"for":       TokenFor,
	"each":      TokenFor,
	"in":        TokenIn,
	"range":     TokenRange,
	"loop":      TokenLoop,
	"times":     TokenTimes,
	"while":     TokenWhile,
	"until":     TokenUntil,
	"repeat":    TokenRepeat,
	"forever":   TokenForever,
	"stop":      TokenStop,
	"skip":      TokenSkip,
	"exit":      TokenExit,
	"unless":    TokenUnless,
	"when":      TokenWhen,
	"otherwise": TokenOtherwise,
	"then":      TokenThen,
	"do":        TokenDo,
	"print":     TokenOutput,
	"say":       TokenOutput,
	"show":      TokenOutput,
	"input":     TokenInput,
	"ask":       TokenInput,
	"to":        TokenTo,
	"can":       TokenTo,
	"return":    TokenReturn,
	"give":      TokenReturn,
	"fn":        TokenFn,
	"structure": TokenStructure,
	"thing":     TokenStructure,
	"class":     TokenStructure,
	"has":       TokenHas,
	"with":      TokenWith,
	"is":        TokenIs,
	"extends":   TokenExtends,
	"from":      TokenFrom,
	"make":      TokenMake,
	"new":       TokenMake,
	"yes":       TokenYes,
	"no":        TokenNo,
	"true":      TokenYes,
	"false":     TokenNo,
	"const":     TokenConst,
	"and":       TokenAnd,
	"or":        TokenOr,
	"not":       TokenNot,
	"try":       TokenTry,
	"catch":     TokenCatch,
	"always":    TokenAlways,
	"error":     TokenError,
	"use":       TokenUse,
	"as":        TokenAs,
	"share":     TokenShare,
	"execute":   TokenExecute,
	"run":       TokenExecute,
}

var twoCharOperators = map[string]TokenType{
	"=>": TokenArrow,
	"==": TokenEQ,
	"!=": TokenNEQ,
	"<=": TokenLE,
	">=": TokenGE,
	"+=": TokenPlusEq,
	"-=": TokenMinusEq,
	"*=": TokenMulEq,
	"/=": TokenDivEq,
	"%=": TokenModEq,
}

var singleCharOperators = map[byte]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMul,
	'/': TokenDiv,
	'%': TokenMod,
	'=': TokenAssign,
	'>': TokenGT,
	'<': TokenLT,
	'?': TokenQuestion,
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	':': TokenColon,
	'{': TokenLBrace,
	'}': TokenRBrace,
	',': TokenComma,
	'.': TokenDot,
}

// operatorSymbols is the reverse of the operator tables, used for messages.
var operatorSymbols = map[TokenType]string{
	TokenEllipsis: "...",
	TokenArrow:    "=>",
	TokenEQ:       "==",
	TokenNEQ:      "!=",
	TokenLE:       "<=",
	TokenGE:       ">=",
	TokenPlusEq:   "+=",
	TokenMinusEq:  "-=",
	TokenMulEq:    "*=",
	TokenDivEq:    "/=",
	TokenModEq:    "%=",
	TokenPlus:     "+",
	TokenMinus:    "-",
	TokenMul:      "*",
	TokenDiv:      "/",
	TokenMod:      "%",
	TokenAssign:   "=",
	TokenGT:       ">",
	TokenLT:       "<",
	TokenQuestion: "?",
	TokenLParen:   "(",
	TokenRParen:   ")",
	TokenLBracket: "[",
	TokenRBracket: "]",
	TokenColon:    ":",
	TokenLBrace:   "{",
	TokenRBrace:   "}",
	TokenComma:    ",",
	TokenDot:      ".",
}

// LookupKeyword returns the token kind for a reserved word.
func LookupKeyword(word string) (TokenType, bool) {
	tt, ok := keywords[word]
	return tt, ok
}

// Keywords returns every reserved word in sorted order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}
