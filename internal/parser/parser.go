package parser

import (
	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
)

// Parser holds the cursor state of one parse: the current token, one
// token of lookahead, the end offset of the previously consumed token
// (used to finish node spans without including trailing tokens), and
// the bracket-nesting counter that makes line breaks insignificant
// inside aggregates. A Parser is single-use and not safe for
// concurrent use; independent instances share nothing.
type Parser struct {
	source   string
	filename string
	lex      *lexer.Lexer

	current      lexer.Token
	peek         lexer.Token
	prevTokenEnd int

	bracketDepth int

	diagnostics []Diagnostic
}

// New creates a parser over the given source buffer.
func New(source, filename string) *Parser {
	p := &Parser{
		source:   source,
		filename: filename,
		lex:      lexer.New(source),
	}
	// Prime current and peek.
	p.current = p.pull()
	p.peek = p.pull()
	return p
}

// Parse parses statements until end of stream. A failed statement is
// reported and exactly one token is skipped before retrying, so the
// driver always terminates; a single bad statement never aborts the
// whole parse.
func (p *Parser) Parse() (*ast.Module, []Diagnostic) {
	node := p.startNode()
	var body []ast.Statement

	for !p.at(lexer.TokenEOF) {
		if p.atStatementSeparator() {
			p.bumpAny()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			p.report(err)
			p.bumpAny()
			continue
		}
		body = append(body, stmt)
	}

	span := p.finishNode(node)
	if span.End < span.Start {
		// Token-free input (blank or comment-only): no token was
		// consumed, so close the span where it opened.
		span.End = span.Start
	}
	return &ast.Module{Node: span, Body: body}, p.diagnostics
}

// Diagnostics returns the diagnostics collected so far.
func (p *Parser) Diagnostics() []Diagnostic { return p.diagnostics }

// ===== Cursor operations =====

// pull reads the next token from the lexer. Lexical failures are
// reported and skipped here so they never corrupt position tracking.
func (p *Parser) pull() lexer.Token {
	for {
		tok := p.lex.NextToken()
		if tok.Type == lexer.TokenError {
			p.diagnostics = append(p.diagnostics, Diagnostic{
				Code:    CodeLexical,
				Message: tok.Literal,
				Span:    ast.Node{Start: tok.Start, End: tok.End},
			})
			continue
		}
		return tok
	}
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.prevTokenEnd = p.current.End
	p.current = p.peek
	p.peek = p.pull()
}

// at checks the current token without side effects.
func (p *Parser) at(tt lexer.TokenType) bool { return p.current.Type == tt }

// peekIs checks the lookahead token without side effects.
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peek.Type == tt }

// eat advances past the current token if it matches, reporting whether
// it did.
func (p *Parser) eat(tt lexer.TokenType) bool {
	if p.at(tt) {
		p.advance()
		return true
	}
	return false
}

// bump advances past the current token if it matches.
func (p *Parser) bump(tt lexer.TokenType) {
	if p.at(tt) {
		p.advance()
	}
}

// bumpAny advances unconditionally.
func (p *Parser) bumpAny() { p.advance() }

// expect consumes the current token if it matches; otherwise it fails
// without advancing, leaving recovery to the caller.
func (p *Parser) expect(tt lexer.TokenType) error {
	if !p.at(tt) {
		return expectedToken(tt.String(), p.current.Type.String(), p.currentSpan())
	}
	p.advance()
	return nil
}

func (p *Parser) report(err error) {
	if d, ok := err.(*Diagnostic); ok {
		p.diagnostics = append(p.diagnostics, *d)
		return
	}
	p.diagnostics = append(p.diagnostics, Diagnostic{
		Code:    CodeInvalidSyntax,
		Message: err.Error(),
		Span:    p.currentSpan(),
	})
}

// ===== Span protocol =====

// startNode captures the start offset of a construct before any of its
// tokens are consumed.
func (p *Parser) startNode() ast.Node {
	return ast.Node{Start: p.current.Start}
}

// finishNode closes a node at the end offset of the previously consumed
// token, excluding the current lookahead token.
func (p *Parser) finishNode(node ast.Node) ast.Node {
	node.End = p.prevTokenEnd
	return node
}

// currentSpan is the span of the current token, for diagnostics.
func (p *Parser) currentSpan() ast.Node {
	return ast.Node{Start: p.current.Start, End: p.current.End}
}

// atStatementSeparator reports whether the current token only separates
// statements (and carries no syntax of its own at statement level).
func (p *Parser) atStatementSeparator() bool {
	switch p.current.Type {
	case lexer.TokenNewline, lexer.TokenIndent, lexer.TokenDedent, lexer.TokenSemicolon:
		return true
	}
	return false
}

// skipLineBreaks consumes line-structure tokens inside a bracketed
// aggregate, where line breaks and indentation are insignificant. It is
// called wherever the grammar allows a comma or a closing bracket.
func (p *Parser) skipLineBreaks() {
	if p.bracketDepth == 0 {
		return
	}
	for {
		switch p.current.Type {
		case lexer.TokenNewline, lexer.TokenIndent, lexer.TokenDedent:
			p.bumpAny()
			continue
		}
		return
	}
}

// ===== Statements =====

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current.Type {
	case lexer.TokenImport:
		return p.parseImport()
	case lexer.TokenFrom:
		return p.parseImportFrom()
	}

	node := p.startNode()
	expr, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}

	if p.at(lexer.TokenAssign) {
		return p.parseAssignRest(node, expr)
	}

	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Node: p.finishNode(node), Expr: expr}, nil
}

// parseAssignRest parses the remainder of an assignment once the first
// `=` has been seen. Every expression followed by another `=` is a
// target of the chain; the last one is the assigned value.
func (p *Parser) parseAssignRest(node ast.Node, first ast.Expression) (ast.Statement, error) {
	if err := p.validateTarget(first); err != nil {
		return nil, err
	}
	targets := []ast.Expression{first}

	var value ast.Expression
	for p.eat(lexer.TokenAssign) {
		rhs, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		if p.at(lexer.TokenAssign) {
			if err := p.validateTarget(rhs); err != nil {
				return nil, err
			}
			targets = append(targets, rhs)
			continue
		}
		value = rhs
	}

	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.AssignStatement{Node: p.finishNode(node), Targets: targets, Value: value}, nil
}

// expectStatementEnd requires a statement boundary after a simple
// statement: newline, semicolon, dedent, or end of stream.
func (p *Parser) expectStatementEnd() error {
	switch p.current.Type {
	case lexer.TokenNewline, lexer.TokenSemicolon, lexer.TokenDedent, lexer.TokenEOF:
		return nil
	}
	return unexpectedToken(p.current.Type.String(), p.currentSpan())
}

// validateTarget checks the shape of an assignment target: a name,
// attribute reference, subscription, starred target, or a tuple/list of
// valid targets.
func (p *Parser) validateTarget(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.Name, *ast.Attribute, *ast.Subscript:
		return nil
	case *ast.Starred:
		return p.validateTarget(e.Value)
	case *ast.Tuple:
		for _, el := range e.Elements {
			if err := p.validateTarget(el); err != nil {
				return err
			}
		}
		return nil
	case *ast.List:
		for _, el := range e.Elements {
			if err := p.validateTarget(el); err != nil {
				return err
			}
		}
		return nil
	}
	return structural(CodeInvalidTarget, "cannot assign to this expression", expr.GetNode())
}

// ===== Import statements =====

// parseImport parses `import a.b [as c], ...`, producing the node shape
// consumed by the external import resolver.
func (p *Parser) parseImport() (ast.Statement, error) {
	node := p.startNode()
	p.bump(lexer.TokenImport)

	var names []*ast.Alias
	for {
		alias, err := p.parseDottedAlias()
		if err != nil {
			return nil, err
		}
		names = append(names, alias)
		if !p.eat(lexer.TokenComma) {
			break
		}
	}

	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.ImportStatement{Node: p.finishNode(node), Names: names}, nil
}

// parseImportFrom parses `from [.]*module import names`, including star
// imports and parenthesized name lists.
func (p *Parser) parseImportFrom() (ast.Statement, error) {
	node := p.startNode()
	p.bump(lexer.TokenFrom)

	level := 0
	for p.eat(lexer.TokenDot) {
		level++
	}

	module := ""
	if p.at(lexer.TokenIdentifier) {
		dotted, err := p.parseDottedName()
		if err != nil {
			return nil, err
		}
		module = dotted
	} else if level == 0 {
		return nil, expectedToken(lexer.TokenIdentifier.String(), p.current.Type.String(), p.currentSpan())
	}

	if err := p.expect(lexer.TokenImport); err != nil {
		return nil, err
	}

	var names []*ast.Alias
	switch {
	case p.at(lexer.TokenMul):
		starNode := p.startNode()
		p.bumpAny()
		names = append(names, &ast.Alias{Node: p.finishNode(starNode), Name: "*"})
	case p.at(lexer.TokenLParen):
		p.bumpAny()
		p.bracketDepth++
		for {
			p.skipLineBreaks()
			if p.at(lexer.TokenRParen) || p.at(lexer.TokenEOF) {
				break
			}
			alias, err := p.parsePlainAlias()
			if err != nil {
				p.bracketDepth--
				return nil, err
			}
			names = append(names, alias)
			p.skipLineBreaks()
			if !p.eat(lexer.TokenComma) {
				break
			}
		}
		p.skipLineBreaks()
		p.bracketDepth--
		if err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
	default:
		for {
			alias, err := p.parsePlainAlias()
			if err != nil {
				return nil, err
			}
			names = append(names, alias)
			if !p.eat(lexer.TokenComma) {
				break
			}
		}
	}

	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.ImportFromStatement{
		Node:   p.finishNode(node),
		Module: module,
		Names:  names,
		Level:  level,
	}, nil
}

func (p *Parser) parseDottedName() (string, error) {
	name := p.current.Literal
	if err := p.expect(lexer.TokenIdentifier); err != nil {
		return "", err
	}
	for p.at(lexer.TokenDot) && p.peekIs(lexer.TokenIdentifier) {
		p.bumpAny()
		name += "." + p.current.Literal
		p.bumpAny()
	}
	return name, nil
}

func (p *Parser) parseDottedAlias() (*ast.Alias, error) {
	node := p.startNode()
	name, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}
	alias := &ast.Alias{Name: name}
	if p.eat(lexer.TokenAs) {
		alias.AsName = p.current.Literal
		if err := p.expect(lexer.TokenIdentifier); err != nil {
			return nil, err
		}
	}
	alias.Node = p.finishNode(node)
	return alias, nil
}

func (p *Parser) parsePlainAlias() (*ast.Alias, error) {
	node := p.startNode()
	name := p.current.Literal
	if err := p.expect(lexer.TokenIdentifier); err != nil {
		return nil, err
	}
	alias := &ast.Alias{Name: name}
	if p.eat(lexer.TokenAs) {
		alias.AsName = p.current.Literal
		if err := p.expect(lexer.TokenIdentifier); err != nil {
			return nil, err
		}
	}
	alias.Node = p.finishNode(node)
	return alias, nil
}
