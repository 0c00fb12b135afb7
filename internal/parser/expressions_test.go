package parser

import (
	"testing"

	"github.com/pythia-lang/pythia/internal/ast"
)

// exprString parses one expression and returns its precedence-revealing
// string form.
func exprString(t *testing.T, source string) string {
	t.Helper()
	return exprOf(t, source).String()
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"1 + 2 - 3", "((1 + 2) - 3)"},
		{"a * b / c % d", "(((a * b) / c) % d)"},
		{"a // b @ c", "((a // b) @ c)"},
		{"a << b + c", "(a << (b + c))"},
		{"a | b ^ c & d", "(a | (b ^ (c & d)))"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"-2 ** 2", "(-(2 ** 2))"},
		{"2 ** -3", "(2 ** (-3))"},
		{"~x * -y", "((~x) * (-y))"},
		{"not a or b and c", "((not a) or (b and c))"},
		{"a or b or c", "(a or b or c)"},
		{"a and b and c", "(a and b and c)"},
		{"not not a", "(not (not a))"},
		{"a < b + 1", "(a < (b + 1))"},
		{"a if b else c if d else e", "(a if b else (c if d else e))"},
		{"lambda: 1", "lambda: 1"},
		{"lambda x, y=1: x + y", "lambda x, y=1: (x + y)"},
		{"await f(x)", "await f(x)"},
		{"a.b.c(d)[e]", "a.b.c(d)[e]"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := exprString(t, tt.source); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBoolOpCollapsesRuns(t *testing.T) {
	expr := exprOf(t, "a or b or c or d")
	op, ok := expr.(*ast.BoolOp)
	if !ok {
		t.Fatalf("got %T, want *ast.BoolOp", expr)
	}
	if len(op.Values) != 4 {
		t.Errorf("got %d values, want 4", len(op.Values))
	}

	// A mixed chain keeps one node per operator kind.
	expr = exprOf(t, "a or b and c or d")
	outer := expr.(*ast.BoolOp)
	if outer.Op != ast.BoolOpOr || len(outer.Values) != 3 {
		t.Fatalf("outer = %s", outer)
	}
	inner, ok := outer.Values[1].(*ast.BoolOp)
	if !ok || inner.Op != ast.BoolOpAnd {
		t.Errorf("middle value = %s, want an and-chain", outer.Values[1])
	}
}

func TestChainedComparisonIsOneNode(t *testing.T) {
	expr := exprOf(t, "a < b <= c == d")
	cmp, ok := expr.(*ast.Compare)
	if !ok {
		t.Fatalf("got %T, want *ast.Compare", expr)
	}
	if len(cmp.Ops) != 3 || len(cmp.Comparators) != 3 {
		t.Fatalf("got %d ops / %d comparators, want 3 / 3", len(cmp.Ops), len(cmp.Comparators))
	}
	wantOps := []ast.ComparisonOperator{ast.CompOpLt, ast.CompOpLtE, ast.CompOpEq}
	for i, op := range wantOps {
		if cmp.Ops[i] != op {
			t.Errorf("op %d = %s, want %s", i, cmp.Ops[i], op)
		}
	}
}

func TestTwoWordComparisonOperators(t *testing.T) {
	tests := []struct {
		source string
		op     ast.ComparisonOperator
	}{
		{"a is b", ast.CompOpIs},
		{"a is not b", ast.CompOpIsNot},
		{"a in b", ast.CompOpIn},
		{"a not in b", ast.CompOpNotIn},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			cmp := exprOf(t, tt.source).(*ast.Compare)
			if cmp.Ops[0] != tt.op {
				t.Errorf("got %s, want %s", cmp.Ops[0], tt.op)
			}
		})
	}
}

func TestNotBeforeInIsNegatedMembership(t *testing.T) {
	// `not a in b` negates the whole membership test.
	expr := exprOf(t, "not a in b")
	not, ok := expr.(*ast.UnaryOp)
	if !ok || not.Op != ast.UnaryOpNot {
		t.Fatalf("got %s, want a not-node", expr)
	}
	if _, ok := not.Operand.(*ast.Compare); !ok {
		t.Errorf("operand = %T, want *ast.Compare", not.Operand)
	}
}

func TestConditionalExpression(t *testing.T) {
	expr := exprOf(t, "a if b else c")
	ifexp, ok := expr.(*ast.IfExp)
	if !ok {
		t.Fatalf("got %T, want *ast.IfExp", expr)
	}
	if ifexp.Body.String() != "a" || ifexp.Test.String() != "b" || ifexp.OrElse.String() != "c" {
		t.Errorf("got %s", ifexp)
	}
}

func TestNamedExpression(t *testing.T) {
	expr := exprOf(t, "(x := f(1))")
	named, ok := expr.(*ast.NamedExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.NamedExpr", expr)
	}
	if named.Target.String() != "x" {
		t.Errorf("target = %s, want x", named.Target)
	}
}

func TestYieldForms(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"yield", "yield"},
		{"yield 1", "yield 1"},
		{"yield 1, 2", "yield (1, 2)"},
		{"yield from gen()", "yield from gen()"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := exprString(t, tt.source); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrimarySuffixChain(t *testing.T) {
	expr := exprOf(t, "a.b(c).d[e]")
	sub, ok := expr.(*ast.Subscript)
	if !ok {
		t.Fatalf("got %T, want *ast.Subscript", expr)
	}
	attr, ok := sub.Value.(*ast.Attribute)
	if !ok || attr.Attr != "d" {
		t.Fatalf("got %s", sub.Value)
	}
	if _, ok := attr.Value.(*ast.Call); !ok {
		t.Errorf("got %T, want *ast.Call", attr.Value)
	}
}

func TestConstants(t *testing.T) {
	tests := []struct {
		source string
		want   ast.ConstantValue
	}{
		{"42", ast.IntValue{Text: "42"}},
		{"3.14", ast.FloatValue{Text: "3.14"}},
		{"2j", ast.ComplexValue{Real: "0", Imaginary: "2"}},
		{"True", ast.BoolValue{Value: true}},
		{"False", ast.BoolValue{Value: false}},
		{"None", ast.NoneValue{}},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			c, ok := exprOf(t, tt.source).(*ast.Constant)
			if !ok {
				t.Fatalf("got %T, want *ast.Constant", exprOf(t, tt.source))
			}
			if c.Value != tt.want {
				t.Errorf("got %#v, want %#v", c.Value, tt.want)
			}
		})
	}
}
