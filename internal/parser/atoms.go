package parser

import (
	"strings"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
)

// parseAtom parses the leaves of the expression grammar: identifiers,
// literals, and the three bracketed display forms. An unrecognized
// token is reported without being consumed; the statement driver skips
// it.
func (p *Parser) parseAtom() (ast.Expression, error) {
	switch p.current.Type {
	case lexer.TokenIdentifier:
		tok := p.current
		p.bumpAny()
		return &ast.Name{Node: ast.Node{Start: tok.Start, End: tok.End}, ID: tok.Literal}, nil

	case lexer.TokenInteger:
		return p.constantAtom(ast.IntValue{Text: p.current.Literal}), nil
	case lexer.TokenFloat:
		return p.constantAtom(ast.FloatValue{Text: p.current.Literal}), nil
	case lexer.TokenImaginary:
		text := strings.TrimRight(p.current.Literal, "jJ")
		return p.constantAtom(ast.ComplexValue{Real: "0", Imaginary: text}), nil
	case lexer.TokenTrue:
		return p.constantAtom(ast.BoolValue{Value: true}), nil
	case lexer.TokenFalse:
		return p.constantAtom(ast.BoolValue{Value: false}), nil
	case lexer.TokenNone:
		return p.constantAtom(ast.NoneValue{}), nil

	case lexer.TokenString, lexer.TokenRawString, lexer.TokenBytes,
		lexer.TokenRawBytes, lexer.TokenFStringStart:
		return p.parseStringAtom()

	case lexer.TokenLParen:
		return p.parseParenForm()
	case lexer.TokenLBracket:
		return p.parseList()
	case lexer.TokenLBrace:
		return p.parseDictOrSet()
	}

	return nil, unexpectedToken(p.current.Type.String(), p.currentSpan())
}

// constantAtom wraps the current token as a constant and consumes it.
func (p *Parser) constantAtom(value ast.ConstantValue) *ast.Constant {
	tok := p.current
	p.bumpAny()
	return &ast.Constant{Node: ast.Node{Start: tok.Start, End: tok.End}, Value: value}
}

// parseStarredItem parses `*expr` or a plain expression. The starred
// operand sits at the bitwise-or level, below comparison.
func (p *Parser) parseStarredItem() (ast.Expression, error) {
	if !p.at(lexer.TokenMul) {
		return p.parseExpression()
	}
	node := p.startNode()
	p.bumpAny()
	value, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	return &ast.Starred{Node: p.finishNode(node), Value: value}, nil
}

// parseStarredOrNamed is the element form inside display brackets,
// where walrus assignments are also permitted.
func (p *Parser) parseStarredOrNamed() (ast.Expression, error) {
	if p.at(lexer.TokenMul) {
		return p.parseStarredItem()
	}
	return p.parseNamedOrExpression()
}

// ===== Parenthesized forms =====

// parseParenForm disambiguates everything that begins with `(`:
// the empty tuple, a parenthesized expression (parens collapse, no
// node), a tuple (at least one comma, including the one-element
// `(a,)` form), and a generator expression (`for` after the first
// element).
func (p *Parser) parseParenForm() (ast.Expression, error) {
	node := p.startNode()
	p.bump(lexer.TokenLParen)
	p.bracketDepth++
	p.skipLineBreaks()

	if p.at(lexer.TokenRParen) {
		p.bumpAny()
		p.bracketDepth--
		return &ast.Tuple{Node: p.finishNode(node)}, nil
	}

	first, err := p.parseStarredOrNamed()
	if err != nil {
		p.bracketDepth--
		return nil, err
	}
	p.skipLineBreaks()

	if p.atCompFor() {
		generators, err := p.parseCompClauses()
		if err != nil {
			p.bracketDepth--
			return nil, err
		}
		p.skipLineBreaks()
		p.bracketDepth--
		if err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return &ast.Generator{Node: p.finishNode(node), Element: first, Generators: generators}, nil
	}

	seenComma := false
	elements := []ast.Expression{first}
	for p.eat(lexer.TokenComma) {
		seenComma = true
		p.skipLineBreaks()
		if p.at(lexer.TokenRParen) {
			break
		}
		next, err := p.parseStarredOrNamed()
		if err != nil {
			p.bracketDepth--
			return nil, err
		}
		elements = append(elements, next)
		p.skipLineBreaks()
	}

	p.bracketDepth--
	if err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	if !seenComma {
		// Grouping parens produce no node of their own.
		return first, nil
	}
	return &ast.Tuple{Node: p.finishNode(node), Elements: elements}, nil
}

// ===== List display =====

func (p *Parser) parseList() (ast.Expression, error) {
	node := p.startNode()
	p.bump(lexer.TokenLBracket)
	p.bracketDepth++

	var elements []ast.Expression
	for {
		p.skipLineBreaks()
		if p.at(lexer.TokenRBracket) || p.at(lexer.TokenEOF) {
			break
		}
		el, err := p.parseStarredOrNamed()
		if err != nil {
			p.bracketDepth--
			return nil, err
		}
		elements = append(elements, el)
		p.skipLineBreaks()
		if !p.eat(lexer.TokenComma) {
			break
		}
	}

	p.bracketDepth--
	if err := p.expect(lexer.TokenRBracket); err != nil {
		return nil, err
	}
	return &ast.List{Node: p.finishNode(node), Elements: elements}, nil
}

// ===== Set and dict displays =====

// parseDictOrSet disambiguates `{...}` after its first element: a `:`
// makes it a dict, anything else a set. The empty display `{}` is an
// empty dict.
func (p *Parser) parseDictOrSet() (ast.Expression, error) {
	node := p.startNode()
	p.bump(lexer.TokenLBrace)
	p.bracketDepth++
	p.skipLineBreaks()

	if p.at(lexer.TokenRBrace) {
		p.bumpAny()
		p.bracketDepth--
		return &ast.Dict{Node: p.finishNode(node)}, nil
	}

	// `**mapping` can only open a dict.
	if p.at(lexer.TokenPow) {
		return p.parseDictRest(node, nil, nil)
	}

	first, err := p.parseStarredOrNamed()
	if err != nil {
		p.bracketDepth--
		return nil, err
	}
	p.skipLineBreaks()

	if p.eat(lexer.TokenColon) {
		value, err := p.parseExpression()
		if err != nil {
			p.bracketDepth--
			return nil, err
		}
		return p.parseDictRest(node, []ast.Expression{first}, []ast.Expression{value})
	}

	elements := []ast.Expression{first}
	for {
		p.skipLineBreaks()
		if !p.eat(lexer.TokenComma) {
			break
		}
		p.skipLineBreaks()
		if p.at(lexer.TokenRBrace) || p.at(lexer.TokenEOF) {
			break
		}
		el, err := p.parseStarredOrNamed()
		if err != nil {
			p.bracketDepth--
			return nil, err
		}
		elements = append(elements, el)
	}

	p.bracketDepth--
	if err := p.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}
	return &ast.Set{Node: p.finishNode(node), Elements: elements}, nil
}

// parseDictRest parses the remaining `key: value` and `**mapping`
// entries of a dict display. A nil key records an unpacking entry.
func (p *Parser) parseDictRest(node ast.Node, keys, values []ast.Expression) (ast.Expression, error) {
	for {
		p.skipLineBreaks()
		if p.at(lexer.TokenRBrace) || p.at(lexer.TokenEOF) {
			break
		}
		if len(keys) > 0 && !p.eat(lexer.TokenComma) {
			break
		}
		p.skipLineBreaks()
		if p.at(lexer.TokenRBrace) {
			break
		}

		if p.eat(lexer.TokenPow) {
			mapping, err := p.parseBitOr()
			if err != nil {
				p.bracketDepth--
				return nil, err
			}
			keys = append(keys, nil)
			values = append(values, mapping)
			continue
		}

		key, err := p.parseExpression()
		if err != nil {
			p.bracketDepth--
			return nil, err
		}
		if err := p.expect(lexer.TokenColon); err != nil {
			p.bracketDepth--
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			p.bracketDepth--
			return nil, err
		}
		keys = append(keys, key)
		values = append(values, value)
	}

	p.bracketDepth--
	if err := p.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}
	return &ast.Dict{Node: p.finishNode(node), Keys: keys, Values: values}, nil
}

// ===== Comprehension clauses =====

// atCompFor reports whether a comprehension clause starts here.
func (p *Parser) atCompFor() bool {
	return p.at(lexer.TokenFor) || (p.at(lexer.TokenAsync) && p.peekIs(lexer.TokenFor))
}

// parseCompClauses parses one or more `[async] for target in iter
// [if cond]*` clauses.
func (p *Parser) parseCompClauses() ([]*ast.Comprehension, error) {
	var clauses []*ast.Comprehension
	for p.atCompFor() {
		node := p.startNode()
		isAsync := p.eat(lexer.TokenAsync)
		p.bump(lexer.TokenFor)

		target, err := p.parseTargetList()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.TokenIn); err != nil {
			return nil, err
		}
		iter, err := p.parseOrTest()
		if err != nil {
			return nil, err
		}

		var ifs []ast.Expression
		for p.eat(lexer.TokenIf) {
			cond, err := p.parseOrTest()
			if err != nil {
				return nil, err
			}
			ifs = append(ifs, cond)
		}

		clauses = append(clauses, &ast.Comprehension{
			Node:    p.finishNode(node),
			Target:  target,
			Iter:    iter,
			Ifs:     ifs,
			IsAsync: isAsync,
		})
		p.skipLineBreaks()
	}
	return clauses, nil
}

// ===== Targets =====

// parseTargetList parses a comma-separated loop target; a comma makes
// a tuple target.
func (p *Parser) parseTargetList() (ast.Expression, error) {
	node := p.startNode()
	first, err := p.parseTarget()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.TokenComma) {
		return first, nil
	}

	elements := []ast.Expression{first}
	for p.eat(lexer.TokenComma) {
		if p.at(lexer.TokenIn) || !p.atExpressionStart() {
			break
		}
		next, err := p.parseTarget()
		if err != nil {
			return nil, err
		}
		elements = append(elements, next)
	}
	return &ast.Tuple{Node: p.finishNode(node), Elements: elements}, nil
}

// parseTarget parses a single assignment target: a starred target, a
// parenthesized or bracketed target list, or a primary that must have
// target shape. A malformed target is a diagnostic, never a crash.
func (p *Parser) parseTarget() (ast.Expression, error) {
	switch p.current.Type {
	case lexer.TokenMul:
		node := p.startNode()
		p.bumpAny()
		value, err := p.parseTarget()
		if err != nil {
			return nil, err
		}
		return &ast.Starred{Node: p.finishNode(node), Value: value}, nil

	case lexer.TokenLParen:
		p.bumpAny()
		p.bracketDepth++
		p.skipLineBreaks()
		inner, err := p.parseTargetList()
		if err != nil {
			p.bracketDepth--
			return nil, err
		}
		p.skipLineBreaks()
		p.bracketDepth--
		if err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil

	case lexer.TokenLBracket:
		node := p.startNode()
		p.bumpAny()
		p.bracketDepth++
		var elements []ast.Expression
		for {
			p.skipLineBreaks()
			if p.at(lexer.TokenRBracket) || p.at(lexer.TokenEOF) {
				break
			}
			el, err := p.parseTarget()
			if err != nil {
				p.bracketDepth--
				return nil, err
			}
			elements = append(elements, el)
			p.skipLineBreaks()
			if !p.eat(lexer.TokenComma) {
				break
			}
		}
		p.bracketDepth--
		if err := p.expect(lexer.TokenRBracket); err != nil {
			return nil, err
		}
		return &ast.List{Node: p.finishNode(node), Elements: elements}, nil
	}

	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if err := p.validateTarget(expr); err != nil {
		return nil, err
	}
	return expr, nil
}

// ===== Yield =====

// parseYield parses `yield`, `yield expr_list`, and `yield from expr`.
// A bare yield does not consume the statement terminator.
func (p *Parser) parseYield() (ast.Expression, error) {
	node := p.startNode()
	p.bump(lexer.TokenYield)

	if p.eat(lexer.TokenFrom) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.YieldFrom{Node: p.finishNode(node), Value: value}, nil
	}

	if !p.atExpressionStart() {
		return &ast.Yield{Node: p.finishNode(node)}, nil
	}
	value, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	return &ast.Yield{Node: p.finishNode(node), Value: value}, nil
}
