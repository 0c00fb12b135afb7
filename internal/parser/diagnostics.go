// Package parser implements the Pythia recursive descent parser: a
// hand-written, precedence-climbing parser producing the positioned
// AST defined in internal/ast.
package parser

import (
	"fmt"

	"github.com/pythia-lang/pythia/internal/ast"
)

// Code names a distinct parse-error condition so user interfaces can
// give targeted messages instead of a generic syntax error.
type Code string

const (
	// CodeLexical is a tokenizer failure passed through the parser.
	CodeLexical Code = "lexical"
	// CodeUnexpectedToken means the current token starts no valid construct.
	CodeUnexpectedToken Code = "unexpected-token"
	// CodeExpectedToken means a specific token was required and absent.
	CodeExpectedToken Code = "expected-token"
	// CodeDefaultOrdering is a non-default parameter after a default one.
	CodeDefaultOrdering Code = "non-default-after-default"
	// CodeVarArgDefault is a default value on a *args parameter.
	CodeVarArgDefault Code = "vararg-default"
	// CodeKwArgDefault is a default value on a **kwargs parameter.
	CodeKwArgDefault Code = "kwarg-default"
	// CodeParamAfterKwArg is any parameter following **kwargs.
	CodeParamAfterKwArg Code = "param-after-kwarg"
	// CodePositionalAfterKeyword is a bare positional call argument
	// following a keyword or ** argument.
	CodePositionalAfterKeyword Code = "positional-after-keyword"
	// CodeInvalidTarget is an assignment target of invalid shape.
	CodeInvalidTarget Code = "invalid-target"
	// CodeInvalidSyntax covers remaining structural violations.
	CodeInvalidSyntax Code = "invalid-syntax"
)

// Diagnostic is a structured, position-carrying parse error. Wanted and
// Found are filled for expected-token mismatches.
type Diagnostic struct {
	Code    Code
	Message string
	Wanted  string
	Found   string
	Span    ast.Node
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Code == CodeExpectedToken {
		return fmt.Sprintf("expected %s, found %s at %s", d.Wanted, d.Found, d.Span)
	}
	return fmt.Sprintf("%s at %s", d.Message, d.Span)
}

func expectedToken(wanted, found string, span ast.Node) *Diagnostic {
	return &Diagnostic{
		Code:    CodeExpectedToken,
		Message: fmt.Sprintf("expected %s, found %s", wanted, found),
		Wanted:  wanted,
		Found:   found,
		Span:    span,
	}
}

func unexpectedToken(found string, span ast.Node) *Diagnostic {
	return &Diagnostic{
		Code:    CodeUnexpectedToken,
		Message: fmt.Sprintf("unexpected token %s", found),
		Found:   found,
		Span:    span,
	}
}

func structural(code Code, message string, span ast.Node) *Diagnostic {
	return &Diagnostic{Code: code, Message: message, Span: span}
}
