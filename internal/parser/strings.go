package parser

import (
	"strings"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
)

// parseStringAtom parses a run of adjacent string-family literals and
// concatenates them into one node. Plain and raw strings merge into a
// single Constant; any f-string in the run makes the result a
// JoinedStr whose literal neighbors fold into its parts; bytes
// literals merge likewise but may not mix with text strings.
func (p *Parser) parseStringAtom() (ast.Expression, error) {
	node := p.startNode()

	var pieces []ast.Expression
	var pending strings.Builder
	pendingStart, pendingEnd := -1, -1
	var bytesBuf []byte
	seenStr, seenBytes, seenFString := false, false, false

	addText := func(text string, start, end int) {
		if pendingStart < 0 {
			pendingStart = start
		}
		pendingEnd = end
		pending.WriteString(text)
	}
	flushText := func() {
		if pendingStart < 0 {
			return
		}
		pieces = append(pieces, &ast.Constant{
			Node:  ast.Node{Start: pendingStart, End: pendingEnd},
			Value: ast.StrValue{Value: pending.String()},
		})
		pending.Reset()
		pendingStart = -1
	}

	for lexer.IsStringType(p.current.Type) {
		tok := p.current
		switch tok.Type {
		case lexer.TokenString, lexer.TokenRawString:
			seenStr = true
			body, raw := stripStringQuotes(tok.Literal)
			if !raw {
				body = lexer.DecodeEscapes(body)
			}
			addText(body, tok.Start, tok.End)
			p.bumpAny()

		case lexer.TokenBytes, lexer.TokenRawBytes:
			seenBytes = true
			body, raw := stripStringQuotes(tok.Literal)
			if !raw {
				body = lexer.DecodeEscapes(body)
			}
			bytesBuf = append(bytesBuf, body...)
			p.bumpAny()

		case lexer.TokenFStringStart:
			seenStr = true
			seenFString = true
			p.bumpAny()
			for !p.at(lexer.TokenFStringEnd) && !p.at(lexer.TokenEOF) {
				if p.at(lexer.TokenFStringMiddle) {
					addText(p.current.Literal, p.current.Start, p.current.End)
					p.bumpAny()
					continue
				}
				if err := p.expect(lexer.TokenLBrace); err != nil {
					return nil, err
				}
				flushText()
				expr, err := p.parseExpressionList()
				if err != nil {
					return nil, err
				}
				if err := p.expect(lexer.TokenRBrace); err != nil {
					return nil, err
				}
				pieces = append(pieces, expr)
			}
			p.bump(lexer.TokenFStringEnd)
		}

		p.skipLineBreaks()
	}

	span := p.finishNode(node)
	if seenStr && seenBytes {
		return nil, structural(CodeInvalidSyntax,
			"cannot mix bytes and string literals in concatenation", span)
	}
	if seenBytes {
		return &ast.Constant{Node: span, Value: ast.BytesValue{Value: bytesBuf}}, nil
	}
	if seenFString {
		flushText()
		return &ast.JoinedStr{Node: span, Values: pieces}, nil
	}
	return &ast.Constant{Node: span, Value: ast.StrValue{Value: pending.String()}}, nil
}

// stripStringQuotes removes the prefix letters and quote characters
// from a raw string-literal token, reporting whether an r prefix was
// present.
func stripStringQuotes(text string) (body string, raw bool) {
	i := 0
	for i < len(text) && text[i] != '\'' && text[i] != '"' {
		if text[i] == 'r' || text[i] == 'R' {
			raw = true
		}
		i++
	}
	quote := text[i]
	if len(text) >= i+6 && text[i+1] == quote && text[i+2] == quote {
		return text[i+3 : len(text)-3], raw
	}
	return text[i+1 : len(text)-1], raw
}
