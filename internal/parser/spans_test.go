package parser

import (
	"testing"

	"github.com/pythia-lang/pythia/internal/ast"
)

// childExprs enumerates the direct expression children of a node.
func childExprs(expr ast.Expression) []ast.Expression {
	switch e := expr.(type) {
	case *ast.Tuple:
		return e.Elements
	case *ast.List:
		return e.Elements
	case *ast.Set:
		return e.Elements
	case *ast.Dict:
		var out []ast.Expression
		for i := range e.Keys {
			if e.Keys[i] != nil {
				out = append(out, e.Keys[i])
			}
			out = append(out, e.Values[i])
		}
		return out
	case *ast.BoolOp:
		return e.Values
	case *ast.UnaryOp:
		return []ast.Expression{e.Operand}
	case *ast.BinOp:
		return []ast.Expression{e.Left, e.Right}
	case *ast.Compare:
		return append([]ast.Expression{e.Left}, e.Comparators...)
	case *ast.Call:
		out := append([]ast.Expression{e.Func}, e.Args...)
		for _, k := range e.Keywords {
			out = append(out, k.Value)
		}
		return out
	case *ast.Attribute:
		return []ast.Expression{e.Value}
	case *ast.Subscript:
		return []ast.Expression{e.Value, e.Slice}
	case *ast.Slice:
		var out []ast.Expression
		for _, part := range []ast.Expression{e.Lower, e.Upper, e.Step} {
			if part != nil {
				out = append(out, part)
			}
		}
		return out
	case *ast.Starred:
		return []ast.Expression{e.Value}
	case *ast.Lambda:
		return []ast.Expression{e.Body}
	case *ast.IfExp:
		return []ast.Expression{e.Test, e.Body, e.OrElse}
	case *ast.NamedExpr:
		return []ast.Expression{e.Target, e.Value}
	case *ast.Yield:
		if e.Value != nil {
			return []ast.Expression{e.Value}
		}
	case *ast.YieldFrom:
		return []ast.Expression{e.Value}
	case *ast.Await:
		return []ast.Expression{e.Value}
	case *ast.Generator:
		out := []ast.Expression{e.Element}
		for _, c := range e.Generators {
			out = append(out, c.Target, c.Iter)
			out = append(out, c.Ifs...)
		}
		return out
	case *ast.JoinedStr:
		return e.Values
	}
	return nil
}

func checkContainment(t *testing.T, source string, parent ast.Node, expr ast.Expression) {
	t.Helper()
	n := expr.GetNode()
	if n.Start > n.End {
		t.Errorf("%q: node %s has inverted span %v", source, expr, n)
	}
	if !parent.Contains(n) {
		t.Errorf("%q: child %s span %v escapes parent span %v", source, expr, n, parent)
	}
	for _, child := range childExprs(expr) {
		checkContainment(t, source, n, child)
	}
}

func TestSpanContainment(t *testing.T) {
	sources := []string{
		"a + b * c - d",
		"f(x, y=1, *rest, **kw)",
		"x[a:b:c].attr(1)[:, 2]",
		"{k: v, **m, x: [y]}",
		"(x for x in range(10) if x % 2)",
		"lambda a, b=c + 1: (a, b)",
		"a if b < c <= d else [e, {f}]",
		"not a or -b ** 2 and c",
		"(x := f(1)) + x",
		"yield from (a for a in b)",
		`f"head {x + 1} tail" 'more'`,
		"a, *b = c = (d,)",
		"from pkg.mod import name as alias",
	}
	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			module, diags := parseModule(t, source)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			for _, stmt := range module.Body {
				if !module.Contains(stmt.GetNode()) {
					t.Errorf("statement %s escapes module span", stmt)
				}
				switch s := stmt.(type) {
				case *ast.ExpressionStatement:
					checkContainment(t, source, s.GetNode(), s.Expr)
				case *ast.AssignStatement:
					for _, target := range s.Targets {
						checkContainment(t, source, s.GetNode(), target)
					}
					checkContainment(t, source, s.GetNode(), s.Value)
				}
			}
		})
	}
}

func TestExpressionSpansCoverSource(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"a + b", "a + b"},
		{"  a + b  ", "a + b"},
		{"f(x)", "f(x)"},
		{"(a)", "a"},
		{"(a,)", "(a,)"},
		{"x[1:2]", "x[1:2]"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			expr := exprOf(t, tt.source)
			n := expr.GetNode()
			if got := tt.source[n.Start:n.End]; got != tt.want {
				t.Errorf("span covers %q, want %q", got, tt.want)
			}
		})
	}
}
