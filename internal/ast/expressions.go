package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ===== Atoms =====

// Name represents an identifier reference.
type Name struct {
	Node
	ID string
}

func (n *Name) String() string  { return n.ID }
func (n *Name) expressionNode() {}

// ConstantValue is the closed union of literal constant values.
// Numeric values keep their source text; semantic passes decide how to
// interpret them.
type ConstantValue interface {
	constantValue()
	String() string
}

// IntValue is an integer literal, kept as source text.
type IntValue struct{ Text string }

func (v IntValue) constantValue() {}
func (v IntValue) String() string { return v.Text }

// FloatValue is a floating-point literal, kept as source text.
type FloatValue struct{ Text string }

func (v FloatValue) constantValue() {}
func (v FloatValue) String() string { return v.Text }

// BoolValue is True or False.
type BoolValue struct{ Value bool }

func (v BoolValue) constantValue() {}
func (v BoolValue) String() string {
	if v.Value {
		return "True"
	}
	return "False"
}

// NoneValue is the None literal.
type NoneValue struct{}

func (v NoneValue) constantValue() {}
func (v NoneValue) String() string { return "None" }

// StrValue is a decoded string literal.
type StrValue struct{ Value string }

func (v StrValue) constantValue() {}
func (v StrValue) String() string { return strconv.Quote(v.Value) }

// BytesValue is a decoded bytes literal.
type BytesValue struct{ Value []byte }

func (v BytesValue) constantValue() {}
func (v BytesValue) String() string { return "b" + strconv.Quote(string(v.Value)) }

// ComplexValue is an imaginary literal, real and imaginary parts as text.
type ComplexValue struct {
	Real      string
	Imaginary string
}

func (v ComplexValue) constantValue() {}
func (v ComplexValue) String() string { return v.Real + "+" + v.Imaginary + "j" }

// Constant represents a literal constant expression.
type Constant struct {
	Node
	Value ConstantValue
}

func (c *Constant) String() string  { return c.Value.String() }
func (c *Constant) expressionNode() {}

// ===== Displays =====

// Tuple represents a tuple display.
type Tuple struct {
	Node
	Elements []Expression
}

func (t *Tuple) String() string  { return "(" + joinExprs(t.Elements) + ")" }
func (t *Tuple) expressionNode() {}

// List represents a list display.
type List struct {
	Node
	Elements []Expression
}

func (l *List) String() string  { return "[" + joinExprs(l.Elements) + "]" }
func (l *List) expressionNode() {}

// Set represents a set display.
type Set struct {
	Node
	Elements []Expression
}

func (s *Set) String() string  { return "{" + joinExprs(s.Elements) + "}" }
func (s *Set) expressionNode() {}

// Dict represents a dictionary display. Keys and Values are parallel;
// a nil key marks a `**mapping` unpacking entry.
type Dict struct {
	Node
	Keys   []Expression
	Values []Expression
}

func (d *Dict) String() string {
	parts := make([]string, 0, len(d.Keys))
	for i, k := range d.Keys {
		if k == nil {
			parts = append(parts, "**"+d.Values[i].String())
			continue
		}
		parts = append(parts, k.String()+": "+d.Values[i].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (d *Dict) expressionNode() {}

// ===== Operators =====

// BoolOp represents an n-ary boolean operation (and/or).
type BoolOp struct {
	Node
	Op     BooleanOperator
	Values []Expression
}

func (b *BoolOp) String() string {
	parts := make([]string, len(b.Values))
	for i, v := range b.Values {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, " "+b.Op.String()+" ") + ")"
}
func (b *BoolOp) expressionNode() {}

// UnaryOp represents a unary operation.
type UnaryOp struct {
	Node
	Op      UnaryOperator
	Operand Expression
}

func (u *UnaryOp) String() string  { return "(" + u.Op.String() + u.Operand.String() + ")" }
func (u *UnaryOp) expressionNode() {}

// BinOp represents a binary operation.
type BinOp struct {
	Node
	Op    BinaryOperator
	Left  Expression
	Right Expression
}

func (b *BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}
func (b *BinOp) expressionNode() {}

// Compare represents a chained comparison: Left followed by pairs of
// operator and comparand. len(Ops) == len(Comparators).
type Compare struct {
	Node
	Left        Expression
	Ops         []ComparisonOperator
	Comparators []Expression
}

func (c *Compare) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(c.Left.String())
	for i, op := range c.Ops {
		b.WriteString(" " + op.String() + " ")
		b.WriteString(c.Comparators[i].String())
	}
	b.WriteString(")")
	return b.String()
}
func (c *Compare) expressionNode() {}

// ===== Primaries =====

// Call represents a function call.
type Call struct {
	Node
	Func     Expression
	Args     []Expression
	Keywords []*Keyword
}

func (c *Call) String() string {
	parts := make([]string, 0, len(c.Args)+len(c.Keywords))
	for _, a := range c.Args {
		parts = append(parts, a.String())
	}
	for _, k := range c.Keywords {
		parts = append(parts, k.String())
	}
	return c.Func.String() + "(" + strings.Join(parts, ", ") + ")"
}
func (c *Call) expressionNode() {}

// Keyword represents a keyword argument. A nil Arg marks a `**mapping`
// unpacking argument.
type Keyword struct {
	Node
	Arg   *string
	Value Expression
}

func (k *Keyword) String() string {
	if k.Arg == nil {
		return "**" + k.Value.String()
	}
	return *k.Arg + "=" + k.Value.String()
}

// Attribute represents attribute access (value.attr).
type Attribute struct {
	Node
	Value Expression
	Attr  string
}

func (a *Attribute) String() string  { return a.Value.String() + "." + a.Attr }
func (a *Attribute) expressionNode() {}

// Subscript represents a subscription (value[slice]).
type Subscript struct {
	Node
	Value Expression
	Slice Expression
}

func (s *Subscript) String() string  { return s.Value.String() + "[" + s.Slice.String() + "]" }
func (s *Subscript) expressionNode() {}

// Slice represents a proper slice lower:upper:step; any part may be nil.
type Slice struct {
	Node
	Lower Expression
	Upper Expression
	Step  Expression
}

func (s *Slice) String() string {
	str := func(e Expression) string {
		if e == nil {
			return ""
		}
		return e.String()
	}
	out := str(s.Lower) + ":" + str(s.Upper)
	if s.Step != nil {
		out += ":" + s.Step.String()
	}
	return out
}
func (s *Slice) expressionNode() {}

// Starred represents an unpacking expression (*value).
type Starred struct {
	Node
	Value Expression
}

func (s *Starred) String() string  { return "*" + s.Value.String() }
func (s *Starred) expressionNode() {}

// ===== Compound expressions =====

// Lambda represents a lambda expression.
type Lambda struct {
	Node
	Args *Arguments
	Body Expression
}

func (l *Lambda) String() string {
	params := l.Args.String()
	if params == "" {
		return "lambda: " + l.Body.String()
	}
	return "lambda " + params + ": " + l.Body.String()
}
func (l *Lambda) expressionNode() {}

// IfExp represents a conditional expression (body if test else orelse).
type IfExp struct {
	Node
	Test   Expression
	Body   Expression
	OrElse Expression
}

func (i *IfExp) String() string {
	return fmt.Sprintf("(%s if %s else %s)", i.Body, i.Test, i.OrElse)
}
func (i *IfExp) expressionNode() {}

// NamedExpr represents an assignment expression (target := value).
type NamedExpr struct {
	Node
	Target Expression
	Value  Expression
}

func (n *NamedExpr) String() string  { return fmt.Sprintf("(%s := %s)", n.Target, n.Value) }
func (n *NamedExpr) expressionNode() {}

// Yield represents a yield expression; Value may be nil.
type Yield struct {
	Node
	Value Expression
}

func (y *Yield) String() string {
	if y.Value == nil {
		return "yield"
	}
	return "yield " + y.Value.String()
}
func (y *Yield) expressionNode() {}

// YieldFrom represents a yield-from expression.
type YieldFrom struct {
	Node
	Value Expression
}

func (y *YieldFrom) String() string  { return "yield from " + y.Value.String() }
func (y *YieldFrom) expressionNode() {}

// Await represents an await expression.
type Await struct {
	Node
	Value Expression
}

func (a *Await) String() string  { return "await " + a.Value.String() }
func (a *Await) expressionNode() {}

// Comprehension is one `for target in iter [if cond]*` clause of a
// generator expression.
type Comprehension struct {
	Node
	Target  Expression
	Iter    Expression
	Ifs     []Expression
	IsAsync bool
}

func (c *Comprehension) String() string {
	var b strings.Builder
	if c.IsAsync {
		b.WriteString("async ")
	}
	b.WriteString("for " + c.Target.String() + " in " + c.Iter.String())
	for _, cond := range c.Ifs {
		b.WriteString(" if " + cond.String())
	}
	return b.String()
}

// Generator represents a generator expression with one element and an
// ordered sequence of comprehension clauses.
type Generator struct {
	Node
	Element    Expression
	Generators []*Comprehension
}

func (g *Generator) String() string {
	var b strings.Builder
	b.WriteString("(" + g.Element.String())
	for _, c := range g.Generators {
		b.WriteString(" " + c.String())
	}
	b.WriteString(")")
	return b.String()
}
func (g *Generator) expressionNode() {}

// JoinedStr represents an interpolated (f-) string: an ordered mix of
// Constant literal parts and embedded expressions.
type JoinedStr struct {
	Node
	Values []Expression
}

func (j *JoinedStr) String() string {
	var b strings.Builder
	b.WriteString("f'")
	for _, v := range j.Values {
		if c, ok := v.(*Constant); ok {
			if s, ok := c.Value.(StrValue); ok {
				b.WriteString(s.Value)
				continue
			}
		}
		b.WriteString("{" + v.String() + "}")
	}
	b.WriteString("'")
	return b.String()
}
func (j *JoinedStr) expressionNode() {}

func joinExprs(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
