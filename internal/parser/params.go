package parser

import (
	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
)

// ===== Call arguments =====

// parseCallSuffix parses `(args)` after a primary. Positional
// arguments must precede keyword and `**` arguments; a lone generator
// expression may stand as the whole argument list without its own
// parentheses.
func (p *Parser) parseCallSuffix(node ast.Node, fn ast.Expression) (ast.Expression, error) {
	p.bump(lexer.TokenLParen)
	p.bracketDepth++

	var args []ast.Expression
	var keywords []*ast.Keyword
	seenKeyword := false

	for {
		p.skipLineBreaks()
		if p.at(lexer.TokenRParen) || p.at(lexer.TokenEOF) {
			break
		}

		switch {
		case p.at(lexer.TokenPow):
			kwNode := p.startNode()
			p.bumpAny()
			value, err := p.parseExpression()
			if err != nil {
				p.bracketDepth--
				return nil, err
			}
			keywords = append(keywords, &ast.Keyword{Node: p.finishNode(kwNode), Value: value})
			seenKeyword = true

		case p.at(lexer.TokenMul):
			// Iterable unpacking stays positional and may follow
			// keyword arguments.
			starred, err := p.parseStarredItem()
			if err != nil {
				p.bracketDepth--
				return nil, err
			}
			args = append(args, starred)

		case p.at(lexer.TokenIdentifier) && p.peekIs(lexer.TokenAssign):
			kwNode := p.startNode()
			name := p.current.Literal
			p.bumpAny()
			p.bump(lexer.TokenAssign)
			value, err := p.parseExpression()
			if err != nil {
				p.bracketDepth--
				return nil, err
			}
			keywords = append(keywords, &ast.Keyword{Node: p.finishNode(kwNode), Arg: &name, Value: value})
			seenKeyword = true

		default:
			argNode := p.startNode()
			expr, err := p.parseNamedOrExpression()
			if err != nil {
				p.bracketDepth--
				return nil, err
			}
			if len(args) == 0 && len(keywords) == 0 && p.atCompFor() {
				generators, err := p.parseCompClauses()
				if err != nil {
					p.bracketDepth--
					return nil, err
				}
				expr = &ast.Generator{Node: p.finishNode(argNode), Element: expr, Generators: generators}
			} else if seenKeyword {
				p.bracketDepth--
				return nil, structural(CodePositionalAfterKeyword,
					"positional argument follows keyword argument", expr.GetNode())
			}
			args = append(args, expr)
		}

		p.skipLineBreaks()
		if !p.eat(lexer.TokenComma) {
			break
		}
	}

	p.bracketDepth--
	if err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return &ast.Call{Node: p.finishNode(node), Func: fn, Args: args, Keywords: keywords}, nil
}

// ===== Subscripts and slices =====

// parseSubscriptSuffix parses `[slice]` after a primary. The bracket
// content is either a plain index expression, a proper slice, or a
// comma-separated tuple of those.
func (p *Parser) parseSubscriptSuffix(node ast.Node, value ast.Expression) (ast.Expression, error) {
	p.bump(lexer.TokenLBracket)
	p.bracketDepth++

	slice, err := p.parseSliceList()
	if err != nil {
		p.bracketDepth--
		return nil, err
	}

	p.bracketDepth--
	if err := p.expect(lexer.TokenRBracket); err != nil {
		return nil, err
	}
	return &ast.Subscript{Node: p.finishNode(node), Value: value, Slice: slice}, nil
}

func (p *Parser) parseSliceList() (ast.Expression, error) {
	node := p.startNode()
	first, err := p.parseProperSlice()
	if err != nil {
		return nil, err
	}
	p.skipLineBreaks()
	if !p.at(lexer.TokenComma) {
		return first, nil
	}

	elements := []ast.Expression{first}
	for p.eat(lexer.TokenComma) {
		p.skipLineBreaks()
		if p.at(lexer.TokenRBracket) {
			break
		}
		next, err := p.parseProperSlice()
		if err != nil {
			return nil, err
		}
		elements = append(elements, next)
		p.skipLineBreaks()
	}
	return &ast.Tuple{Node: p.finishNode(node), Elements: elements}, nil
}

// parseProperSlice parses one subscript item. A colon anywhere makes
// it a Slice with optional lower, upper, and step; otherwise the item
// is the index expression itself.
func (p *Parser) parseProperSlice() (ast.Expression, error) {
	node := p.startNode()

	var lower ast.Expression
	if !p.at(lexer.TokenColon) {
		expr, err := p.parseNamedOrExpression()
		if err != nil {
			return nil, err
		}
		if !p.at(lexer.TokenColon) {
			return expr, nil
		}
		lower = expr
	}
	p.bump(lexer.TokenColon)

	slice := &ast.Slice{Lower: lower}
	if p.atExpressionStart() {
		upper, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		slice.Upper = upper
	}
	if p.eat(lexer.TokenColon) && p.atExpressionStart() {
		step, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		slice.Step = step
	}

	slice.Node = p.finishNode(node)
	return slice, nil
}

// ===== Parameter lists =====

// parseParameters parses a formal parameter list, for lambdas up to
// the `:` and for function definitions up to the `)`. Ordering is
// validated as it parses: defaults may not be followed by plain
// non-default parameters, `*args` and `**kwargs` take no default, a
// `/` marker reclassifies everything before it as positional-only,
// and nothing may follow `**kwargs`.
func (p *Parser) parseParameters(isLambda bool) (*ast.Arguments, error) {
	node := p.startNode()
	args := &ast.Arguments{}
	seenDefault := false
	seenStar := false

	for {
		p.skipLineBreaks()
		if p.atParameterListEnd(isLambda) {
			break
		}

		if args.KwArg != nil {
			return nil, structural(CodeParamAfterKwArg,
				"parameter follows ** parameter", p.currentSpan())
		}

		switch {
		case p.at(lexer.TokenDiv):
			if len(args.PosOnlyArgs) > 0 || seenStar || len(args.Args) == 0 {
				return nil, structural(CodeInvalidSyntax,
					"unexpected / in parameter list", p.currentSpan())
			}
			args.PosOnlyArgs = args.Args
			args.Args = nil
			p.bumpAny()

		case p.at(lexer.TokenMul):
			if seenStar {
				return nil, structural(CodeInvalidSyntax,
					"duplicate * in parameter list", p.currentSpan())
			}
			seenStar = true
			p.bumpAny()
			if !p.at(lexer.TokenIdentifier) {
				break // bare *, keyword-only section follows
			}
			param, err := p.parseParameter(isLambda)
			if err != nil {
				return nil, err
			}
			if p.at(lexer.TokenAssign) {
				return nil, structural(CodeVarArgDefault,
					"* parameter cannot have a default value", p.currentSpan())
			}
			args.VarArg = param

		case p.at(lexer.TokenPow):
			p.bumpAny()
			param, err := p.parseParameter(isLambda)
			if err != nil {
				return nil, err
			}
			if p.at(lexer.TokenAssign) {
				return nil, structural(CodeKwArgDefault,
					"** parameter cannot have a default value", p.currentSpan())
			}
			args.KwArg = param

		default:
			param, err := p.parseParameter(isLambda)
			if err != nil {
				return nil, err
			}
			var def ast.Expression
			if p.eat(lexer.TokenAssign) {
				value, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				def = value
				seenDefault = true
			}
			if seenStar {
				args.KwOnlyArgs = append(args.KwOnlyArgs, param)
				args.KwDefaults = append(args.KwDefaults, def)
				break
			}
			if def == nil && seenDefault {
				return nil, structural(CodeDefaultOrdering,
					"parameter without a default follows parameter with a default", param.GetNode())
			}
			args.Args = append(args.Args, param)
			if def != nil {
				args.Defaults = append(args.Defaults, def)
			}
		}

		p.skipLineBreaks()
		if !p.eat(lexer.TokenComma) {
			break
		}
	}

	args.Node = p.finishNode(node)
	return args, nil
}

func (p *Parser) atParameterListEnd(isLambda bool) bool {
	if isLambda {
		return p.at(lexer.TokenColon) || p.at(lexer.TokenEOF)
	}
	return p.at(lexer.TokenRParen) || p.at(lexer.TokenEOF)
}

// parseParameter parses one `name [: annotation]` entry. Annotations
// are rejected in lambda parameter lists, which have no colon to spare.
func (p *Parser) parseParameter(isLambda bool) (*ast.Arg, error) {
	node := p.startNode()
	name := p.current.Literal
	if err := p.expect(lexer.TokenIdentifier); err != nil {
		return nil, err
	}

	arg := &ast.Arg{Name: name}
	if !isLambda && p.eat(lexer.TokenColon) {
		annotation, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		arg.Annotation = annotation
	}
	arg.Node = p.finishNode(node)
	return arg, nil
}
