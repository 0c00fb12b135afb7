// Package lexer implements the Pythia lexical analyzer: an
// indentation-sensitive tokenizer for Python-family source code.
package lexer

import "fmt"

// TokenType represents the type of a token.
type TokenType int

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types.
const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError
	TokenNewline
	TokenIndent
	TokenDedent

	// Literals
	TokenIdentifier
	TokenInteger
	TokenFloat
	TokenImaginary
	TokenString
	TokenRawString
	TokenBytes
	TokenRawBytes
	TokenFStringStart
	TokenFStringMiddle
	TokenFStringEnd

	// Keywords
	TokenAnd
	TokenAs
	TokenAssert
	TokenAsync
	TokenAwait
	TokenBreak
	TokenClass
	TokenContinue
	TokenDef
	TokenDel
	TokenElif
	TokenElse
	TokenExcept
	TokenFalse
	TokenFinally
	TokenFor
	TokenFrom
	TokenGlobal
	TokenIf
	TokenImport
	TokenIn
	TokenIs
	TokenLambda
	TokenNone
	TokenNonlocal
	TokenNot
	TokenOr
	TokenPass
	TokenRaise
	TokenReturn
	TokenTrue
	TokenTry
	TokenWhile
	TokenWith
	TokenYield

	// Operators
	TokenPlus
	TokenMinus
	TokenMul
	TokenPow
	TokenDiv
	TokenFloorDiv
	TokenMod
	TokenMatMul
	TokenShl
	TokenShr
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenLt
	TokenGt
	TokenLe
	TokenGe
	TokenEq
	TokenNe
	TokenWalrus

	// Delimiters
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenColon
	TokenDot
	TokenSemicolon
	TokenArrow
	TokenAssign

	// Augmented assignment
	TokenPlusAssign
	TokenMinusAssign
	TokenMulAssign
	TokenDivAssign
	TokenFloorDivAssign
	TokenModAssign
	TokenMatMulAssign
	TokenPowAssign
	TokenShlAssign
	TokenShrAssign
	TokenBitAndAssign
	TokenBitOrAssign
	TokenBitXorAssign
)

// Token represents a lexical token. Start and End form a half-open
// byte-offset range [Start, End) into the source buffer.
type Token struct {
	Type    TokenType
	Literal string
	Start   int
	End     int
}

// String returns a string representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Span: [%d, %d)}", t.Type, t.Literal, t.Start, t.End)
}

// tokenNames provides string representations for token types.
var tokenNames = map[TokenType]string{
	TokenEOF:     "EOF",
	TokenError:   "ERROR",
	TokenNewline: "NEWLINE",
	TokenIndent:  "INDENT",
	TokenDedent:  "DEDENT",

	TokenIdentifier:    "IDENTIFIER",
	TokenInteger:       "INTEGER",
	TokenFloat:         "FLOAT",
	TokenImaginary:     "IMAGINARY",
	TokenString:        "STRING",
	TokenRawString:     "RAW_STRING",
	TokenBytes:         "BYTES",
	TokenRawBytes:      "RAW_BYTES",
	TokenFStringStart:  "FSTRING_START",
	TokenFStringMiddle: "FSTRING_MIDDLE",
	TokenFStringEnd:    "FSTRING_END",

	TokenAnd:      "and",
	TokenAs:       "as",
	TokenAssert:   "assert",
	TokenAsync:    "async",
	TokenAwait:    "await",
	TokenBreak:    "break",
	TokenClass:    "class",
	TokenContinue: "continue",
	TokenDef:      "def",
	TokenDel:      "del",
	TokenElif:     "elif",
	TokenElse:     "else",
	TokenExcept:   "except",
	TokenFalse:    "False",
	TokenFinally:  "finally",
	TokenFor:      "for",
	TokenFrom:     "from",
	TokenGlobal:   "global",
	TokenIf:       "if",
	TokenImport:   "import",
	TokenIn:       "in",
	TokenIs:       "is",
	TokenLambda:   "lambda",
	TokenNone:     "None",
	TokenNonlocal: "nonlocal",
	TokenNot:      "not",
	TokenOr:       "or",
	TokenPass:     "pass",
	TokenRaise:    "raise",
	TokenReturn:   "return",
	TokenTrue:     "True",
	TokenTry:      "try",
	TokenWhile:    "while",
	TokenWith:     "with",
	TokenYield:    "yield",

	TokenPlus:     "+",
	TokenMinus:    "-",
	TokenMul:      "*",
	TokenPow:      "**",
	TokenDiv:      "/",
	TokenFloorDiv: "//",
	TokenMod:      "%",
	TokenMatMul:   "@",
	TokenShl:      "<<",
	TokenShr:      ">>",
	TokenBitAnd:   "&",
	TokenBitOr:    "|",
	TokenBitXor:   "^",
	TokenBitNot:   "~",
	TokenLt:       "<",
	TokenGt:       ">",
	TokenLe:       "<=",
	TokenGe:       ">=",
	TokenEq:       "==",
	TokenNe:       "!=",
	TokenWalrus:   ":=",

	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBracket:  "[",
	TokenRBracket:  "]",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenComma:     ",",
	TokenColon:     ":",
	TokenDot:       ".",
	TokenSemicolon: ";",
	TokenArrow:     "->",
	TokenAssign:    "=",

	TokenPlusAssign:     "+=",
	TokenMinusAssign:    "-=",
	TokenMulAssign:      "*=",
	TokenDivAssign:      "/=",
	TokenFloorDivAssign: "//=",
	TokenModAssign:      "%=",
	TokenMatMulAssign:   "@=",
	TokenPowAssign:      "**=",
	TokenShlAssign:      "<<=",
	TokenShrAssign:      ">>=",
	TokenBitAndAssign:   "&=",
	TokenBitOrAssign:    "|=",
	TokenBitXorAssign:   "^=",
}

// keywords maps identifier text to keyword token types.
var keywords = map[string]TokenType{
	"and":      TokenAnd,
	"as":       TokenAs,
	"assert":   TokenAssert,
	"async":    TokenAsync,
	"await":    TokenAwait,
	"break":    TokenBreak,
	"class":    TokenClass,
	"continue": TokenContinue,
	"def":      TokenDef,
	"del":      TokenDel,
	"elif":     TokenElif,
	"else":     TokenElse,
	"except":   TokenExcept,
	"False":    TokenFalse,
	"finally":  TokenFinally,
	"for":      TokenFor,
	"from":     TokenFrom,
	"global":   TokenGlobal,
	"if":       TokenIf,
	"import":   TokenImport,
	"in":       TokenIn,
	"is":       TokenIs,
	"lambda":   TokenLambda,
	"None":     TokenNone,
	"nonlocal": TokenNonlocal,
	"not":      TokenNot,
	"or":       TokenOr,
	"pass":     TokenPass,
	"raise":    TokenRaise,
	"return":   TokenReturn,
	"True":     TokenTrue,
	"try":      TokenTry,
	"while":    TokenWhile,
	"with":     TokenWith,
	"yield":    TokenYield,
}

// IsStringType reports whether the token type is a plain or raw string
// or bytes literal (the kinds subject to implicit concatenation).
func IsStringType(tt TokenType) bool {
	switch tt {
	case TokenString, TokenRawString, TokenBytes, TokenRawBytes, TokenFStringStart:
		return true
	}
	return false
}

// IsBytesType reports whether the token type is a bytes literal variant.
func IsBytesType(tt TokenType) bool {
	return tt == TokenBytes || tt == TokenRawBytes
}
