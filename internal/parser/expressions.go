package parser

import (
	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
)

// The expression grammar is a strictly descending precedence chain;
// each level delegates to the next and wraps the result only when its
// operator is present. Binary levels fold left-associatively.

// parseExpressionList parses `expr (, expr)* [,]`. A comma makes the
// whole form a tuple, even with a single element. Starred items are
// accepted so unpacking targets like `a, *b = c` parse.
func (p *Parser) parseExpressionList() (ast.Expression, error) {
	node := p.startNode()
	first, err := p.parseStarredItem()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.TokenComma) {
		return first, nil
	}

	elements := []ast.Expression{first}
	for p.eat(lexer.TokenComma) {
		if !p.atExpressionStart() {
			break
		}
		next, err := p.parseStarredItem()
		if err != nil {
			return nil, err
		}
		elements = append(elements, next)
	}
	return &ast.Tuple{Node: p.finishNode(node), Elements: elements}, nil
}

// parseExpression parses a single (comma-free) expression: a lambda, a
// yield form, or a conditional expression.
func (p *Parser) parseExpression() (ast.Expression, error) {
	switch p.current.Type {
	case lexer.TokenLambda:
		return p.parseLambda()
	case lexer.TokenYield:
		return p.parseYield()
	}
	return p.parseConditional()
}

func (p *Parser) parseLambda() (ast.Expression, error) {
	node := p.startNode()
	p.bump(lexer.TokenLambda)
	args, err := p.parseParameters(true)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Node: p.finishNode(node), Args: args, Body: body}, nil
}

// parseConditional parses `X if COND else Y`; the else branch
// right-nests.
func (p *Parser) parseConditional() (ast.Expression, error) {
	node := p.startNode()
	body, err := p.parseOrTest()
	if err != nil {
		return nil, err
	}
	if !p.eat(lexer.TokenIf) {
		return body, nil
	}

	test, err := p.parseOrTest()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenElse); err != nil {
		return nil, err
	}
	orElse, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.IfExp{
		Node:   p.finishNode(node),
		Test:   test,
		Body:   body,
		OrElse: orElse,
	}, nil
}

// parseOrTest parses `X (or X)*`; a run of `or` collapses into one
// n-ary BoolOp.
func (p *Parser) parseOrTest() (ast.Expression, error) {
	node := p.startNode()
	first, err := p.parseAndTest()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.TokenOr) {
		return first, nil
	}

	values := []ast.Expression{first}
	for p.eat(lexer.TokenOr) {
		next, err := p.parseAndTest()
		if err != nil {
			return nil, err
		}
		values = append(values, next)
	}
	return &ast.BoolOp{Node: p.finishNode(node), Op: ast.BoolOpOr, Values: values}, nil
}

// parseAndTest parses `X (and X)*` into one n-ary BoolOp.
func (p *Parser) parseAndTest() (ast.Expression, error) {
	node := p.startNode()
	first, err := p.parseNotTest()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.TokenAnd) {
		return first, nil
	}

	values := []ast.Expression{first}
	for p.eat(lexer.TokenAnd) {
		next, err := p.parseNotTest()
		if err != nil {
			return nil, err
		}
		values = append(values, next)
	}
	return &ast.BoolOp{Node: p.finishNode(node), Op: ast.BoolOpAnd, Values: values}, nil
}

// parseNotTest parses right-recursive logical negation.
func (p *Parser) parseNotTest() (ast.Expression, error) {
	node := p.startNode()
	if p.eat(lexer.TokenNot) {
		operand, err := p.parseNotTest()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Node: p.finishNode(node), Op: ast.UnaryOpNot, Operand: operand}, nil
	}
	return p.parseComparison()
}

// parseComparison collects all consecutive comparison operators and
// operands into a single chained Compare node: `a < b < c` holds the
// operand sequence [a b c] and operator sequence [< <], never a nest of
// binary pairs.
func (p *Parser) parseComparison() (ast.Expression, error) {
	node := p.startNode()
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	if !p.atComparisonOperator() {
		return left, nil
	}

	var ops []ast.ComparisonOperator
	var comparators []ast.Expression
	for p.atComparisonOperator() {
		op, err := p.parseComparisonOperator()
		if err != nil {
			return nil, err
		}
		right, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		comparators = append(comparators, right)
	}

	return &ast.Compare{
		Node:        p.finishNode(node),
		Left:        left,
		Ops:         ops,
		Comparators: comparators,
	}, nil
}

// atComparisonOperator reports whether the current token begins a
// comparison operator. The two-word forms need one token of lookahead:
// `not` only starts one when followed by `in`.
func (p *Parser) atComparisonOperator() bool {
	switch p.current.Type {
	case lexer.TokenLt, lexer.TokenGt, lexer.TokenLe, lexer.TokenGe,
		lexer.TokenEq, lexer.TokenNe, lexer.TokenIn, lexer.TokenIs:
		return true
	case lexer.TokenNot:
		return p.peekIs(lexer.TokenIn)
	}
	return false
}

// parseComparisonOperator consumes one comparison operator, merging the
// two-word forms `is not` and `not in`.
func (p *Parser) parseComparisonOperator() (ast.ComparisonOperator, error) {
	var op ast.ComparisonOperator
	switch p.current.Type {
	case lexer.TokenLt:
		op = ast.CompOpLt
	case lexer.TokenGt:
		op = ast.CompOpGt
	case lexer.TokenLe:
		op = ast.CompOpLtE
	case lexer.TokenGe:
		op = ast.CompOpGtE
	case lexer.TokenEq:
		op = ast.CompOpEq
	case lexer.TokenNe:
		op = ast.CompOpNotEq
	case lexer.TokenIn:
		op = ast.CompOpIn
	case lexer.TokenIs:
		op = ast.CompOpIs
		if p.peekIs(lexer.TokenNot) {
			p.bumpAny()
			op = ast.CompOpIsNot
		}
	case lexer.TokenNot:
		if !p.peekIs(lexer.TokenIn) {
			return 0, unexpectedToken(p.current.Type.String(), p.currentSpan())
		}
		p.bumpAny()
		op = ast.CompOpNotIn
	default:
		return 0, unexpectedToken(p.current.Type.String(), p.currentSpan())
	}
	p.bumpAny()
	return op, nil
}

// binaryLevel folds a left-associative run of same-precedence operators:
// `a*b*c` becomes `(a*b)*c`.
func (p *Parser) binaryLevel(next func() (ast.Expression, error), ops map[lexer.TokenType]ast.BinaryOperator) (ast.Expression, error) {
	node := p.startNode()
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.current.Type]
		if !ok {
			return left, nil
		}
		p.bumpAny()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Node: p.finishNode(node), Op: op, Left: left, Right: right}
	}
}

var (
	bitOrOps  = map[lexer.TokenType]ast.BinaryOperator{lexer.TokenBitOr: ast.BinOpBitOr}
	bitXorOps = map[lexer.TokenType]ast.BinaryOperator{lexer.TokenBitXor: ast.BinOpBitXor}
	bitAndOps = map[lexer.TokenType]ast.BinaryOperator{lexer.TokenBitAnd: ast.BinOpBitAnd}
	shiftOps  = map[lexer.TokenType]ast.BinaryOperator{
		lexer.TokenShl: ast.BinOpLShift,
		lexer.TokenShr: ast.BinOpRShift,
	}
	additiveOps = map[lexer.TokenType]ast.BinaryOperator{
		lexer.TokenPlus:  ast.BinOpAdd,
		lexer.TokenMinus: ast.BinOpSub,
	}
	multiplicativeOps = map[lexer.TokenType]ast.BinaryOperator{
		lexer.TokenMul:      ast.BinOpMult,
		lexer.TokenDiv:      ast.BinOpDiv,
		lexer.TokenFloorDiv: ast.BinOpFloorDiv,
		lexer.TokenMod:      ast.BinOpMod,
		lexer.TokenMatMul:   ast.BinOpMatMult,
	}
)

func (p *Parser) parseBitOr() (ast.Expression, error) {
	return p.binaryLevel(p.parseBitXor, bitOrOps)
}

func (p *Parser) parseBitXor() (ast.Expression, error) {
	return p.binaryLevel(p.parseBitAnd, bitXorOps)
}

func (p *Parser) parseBitAnd() (ast.Expression, error) {
	return p.binaryLevel(p.parseShift, bitAndOps)
}

func (p *Parser) parseShift() (ast.Expression, error) {
	return p.binaryLevel(p.parseAdditive, shiftOps)
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.binaryLevel(p.parseMultiplicative, additiveOps)
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.binaryLevel(p.parseUnary, multiplicativeOps)
}

// parseUnary parses right-recursive arithmetic negation and inversion.
func (p *Parser) parseUnary() (ast.Expression, error) {
	node := p.startNode()
	var op ast.UnaryOperator
	switch p.current.Type {
	case lexer.TokenPlus:
		op = ast.UnaryOpUAdd
	case lexer.TokenMinus:
		op = ast.UnaryOpUSub
	case lexer.TokenBitNot:
		op = ast.UnaryOpInvert
	default:
		return p.parsePower()
	}
	p.bumpAny()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Node: p.finishNode(node), Op: op, Operand: operand}, nil
}

// parsePower parses `base ** exponent`. The power operator binds
// tighter than unary on its left, but its exponent re-enters the unary
// level so a signed exponent parses, and it right-associates through
// that re-entry. `await` is accepted only immediately before the base.
func (p *Parser) parsePower() (ast.Expression, error) {
	node := p.startNode()

	var base ast.Expression
	if p.at(lexer.TokenAwait) {
		p.bumpAny()
		value, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		base = &ast.Await{Node: p.finishNode(node), Value: value}
	} else {
		var err error
		base, err = p.parsePrimary()
		if err != nil {
			return nil, err
		}
	}

	if !p.eat(lexer.TokenPow) {
		return base, nil
	}
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.BinOp{
		Node:  p.finishNode(node),
		Op:    ast.BinOpPow,
		Left:  base,
		Right: exponent,
	}, nil
}

// parsePrimary parses an atom followed by any chain of attribute
// accesses, subscriptions, and calls, left to right.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	node := p.startNode()
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.Type {
		case lexer.TokenDot:
			p.bumpAny()
			attr := p.current.Literal
			if err := p.expect(lexer.TokenIdentifier); err != nil {
				return nil, err
			}
			expr = &ast.Attribute{Node: p.finishNode(node), Value: expr, Attr: attr}
		case lexer.TokenLBracket:
			expr, err = p.parseSubscriptSuffix(node, expr)
			if err != nil {
				return nil, err
			}
		case lexer.TokenLParen:
			expr, err = p.parseCallSuffix(node, expr)
			if err != nil {
				return nil, err
			}
		default:
			return expr, nil
		}
	}
}

// parseNamedOrExpression parses a walrus assignment expression when the
// lookahead shows `IDENT :=`, otherwise a plain expression.
func (p *Parser) parseNamedOrExpression() (ast.Expression, error) {
	if !p.at(lexer.TokenIdentifier) || !p.peekIs(lexer.TokenWalrus) {
		return p.parseExpression()
	}

	node := p.startNode()
	nameNode := p.currentSpan()
	id := p.current.Literal
	p.bumpAny()
	p.bump(lexer.TokenWalrus)

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.NamedExpr{
		Node:   p.finishNode(node),
		Target: &ast.Name{Node: nameNode, ID: id},
		Value:  value,
	}, nil
}

// atExpressionStart reports whether the current token can begin an
// expression.
func (p *Parser) atExpressionStart() bool {
	switch p.current.Type {
	case lexer.TokenIdentifier, lexer.TokenInteger, lexer.TokenFloat, lexer.TokenImaginary,
		lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNone,
		lexer.TokenString, lexer.TokenRawString, lexer.TokenBytes, lexer.TokenRawBytes,
		lexer.TokenFStringStart,
		lexer.TokenLParen, lexer.TokenLBracket, lexer.TokenLBrace,
		lexer.TokenPlus, lexer.TokenMinus, lexer.TokenBitNot, lexer.TokenMul,
		lexer.TokenNot, lexer.TokenLambda, lexer.TokenAwait, lexer.TokenYield:
		return true
	}
	return false
}
