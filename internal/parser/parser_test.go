package parser

import (
	"testing"

	"github.com/pythia-lang/pythia/internal/ast"
)

func parseModule(t *testing.T, source string) (*ast.Module, []Diagnostic) {
	t.Helper()
	return New(source, "test.py").Parse()
}

// parseClean parses source and fails the test on any diagnostic.
func parseClean(t *testing.T, source string) *ast.Module {
	t.Helper()
	module, diags := parseModule(t, source)
	if len(diags) != 0 {
		t.Fatalf("parse(%q): unexpected diagnostics: %v", source, diags)
	}
	return module
}

// exprOf parses a single expression statement and returns its expression.
func exprOf(t *testing.T, source string) ast.Expression {
	t.Helper()
	module := parseClean(t, source)
	if len(module.Body) != 1 {
		t.Fatalf("parse(%q): got %d statements, want 1", source, len(module.Body))
	}
	stmt, ok := module.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("parse(%q): got %T, want *ast.ExpressionStatement", source, module.Body[0])
	}
	return stmt.Expr
}

// firstCode returns the code of the first diagnostic for source.
func firstCode(t *testing.T, source string) Code {
	t.Helper()
	_, diags := parseModule(t, source)
	if len(diags) == 0 {
		t.Fatalf("parse(%q): expected diagnostics, got none", source)
	}
	return diags[0].Code
}

func TestAssignment(t *testing.T) {
	tests := []struct {
		source  string
		targets int
		want    string
	}{
		{"a = 1", 1, "a = 1"},
		{"a = b = 1", 2, "a = b = 1"},
		{"a = 1, 2", 1, "a = (1, 2)"},
		{"a, b = b, a", 1, "(a, b) = (b, a)"},
		{"a.b = 1", 1, "a.b = 1"},
		{"a[0] = 1", 1, "a[0] = 1"},
		{"a, *b = c", 1, "(a, *b) = c"},
		{"[a, b] = c", 1, "[a, b] = c"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			module := parseClean(t, tt.source)
			stmt, ok := module.Body[0].(*ast.AssignStatement)
			if !ok {
				t.Fatalf("got %T, want *ast.AssignStatement", module.Body[0])
			}
			if len(stmt.Targets) != tt.targets {
				t.Errorf("got %d targets, want %d", len(stmt.Targets), tt.targets)
			}
			if stmt.String() != tt.want {
				t.Errorf("String() = %q, want %q", stmt.String(), tt.want)
			}
		})
	}
}

func TestInvalidAssignmentTargets(t *testing.T) {
	for _, source := range []string{
		"1 = x",
		"a + b = c",
		"f() = x",
		"a, 1 = c",
	} {
		t.Run(source, func(t *testing.T) {
			if code := firstCode(t, source); code != CodeInvalidTarget {
				t.Errorf("got code %q, want %q", code, CodeInvalidTarget)
			}
		})
	}
}

func TestSemicolonSeparation(t *testing.T) {
	module := parseClean(t, "a = 1; b = 2")
	if len(module.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(module.Body))
	}
}

func TestImportStatements(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"import a", "import a"},
		{"import a.b.c", "import a.b.c"},
		{"import a.b as c, d", "import a.b as c, d"},
		{"from mod import x", "from mod import x"},
		{"from mod import x as y, z", "from mod import x as y, z"},
		{"from ..pkg.mod import x", "from ..pkg.mod import x"},
		{"from . import x", "from . import x"},
		{"from mod import *", "from mod import *"},
		{"from mod import (a,\n    b,\n)", "from mod import a, b"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			module := parseClean(t, tt.source)
			if got := module.Body[0].String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImportFromLevel(t *testing.T) {
	module := parseClean(t, "from ..pkg import x")
	stmt := module.Body[0].(*ast.ImportFromStatement)
	if stmt.Level != 2 {
		t.Errorf("Level = %d, want 2", stmt.Level)
	}
	if stmt.Module != "pkg" {
		t.Errorf("Module = %q, want pkg", stmt.Module)
	}
}

func TestRecoveryAroundMalformedStatement(t *testing.T) {
	source := "a = 1\nb = = 2\nc = 3\n"
	module, diags := parseModule(t, source)

	if len(diags) == 0 {
		t.Fatal("expected diagnostics for the malformed statement")
	}
	if len(module.Body) < 2 {
		t.Fatalf("got %d statements, want at least 2", len(module.Body))
	}
	if got := module.Body[0].String(); got != "a = 1" {
		t.Errorf("first statement = %q, want %q", got, "a = 1")
	}
	if got := module.Body[len(module.Body)-1].String(); got != "c = 3" {
		t.Errorf("last statement = %q, want %q", got, "c = 3")
	}
}

func TestRecoveryTerminatesOnGarbage(t *testing.T) {
	_, diags := parseModule(t, ") ) ] } , : )")
	if len(diags) == 0 {
		t.Fatal("expected diagnostics")
	}
}

func TestLexicalErrorsPassThrough(t *testing.T) {
	_, diags := parseModule(t, "a = 'unterminated\n")
	found := false
	for _, d := range diags {
		if d.Code == CodeLexical {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a lexical diagnostic, got %v", diags)
	}
}

func TestDeterminism(t *testing.T) {
	source := "a = 1 + 2 * 3\nb = (x for x in y)\nc = f(1, k=2)\n"

	first, diags1 := parseModule(t, source)
	second, diags2 := parseModule(t, source)

	if len(diags1) != len(diags2) {
		t.Fatalf("diagnostic counts differ: %d vs %d", len(diags1), len(diags2))
	}
	if len(first.Body) != len(second.Body) {
		t.Fatalf("statement counts differ: %d vs %d", len(first.Body), len(second.Body))
	}
	for i := range first.Body {
		if first.Body[i].String() != second.Body[i].String() {
			t.Errorf("statement %d differs: %q vs %q", i, first.Body[i], second.Body[i])
		}
		if first.Body[i].GetNode() != second.Body[i].GetNode() {
			t.Errorf("statement %d spans differ", i)
		}
	}
}

func TestStatementSpanRoundTrip(t *testing.T) {
	source := "a = 1\nb = 2 + 3\nimport os\nf(x, y)\n"
	want := []string{"a = 1", "b = 2 + 3", "import os", "f(x, y)"}

	module := parseClean(t, source)
	if len(module.Body) != len(want) {
		t.Fatalf("got %d statements, want %d", len(module.Body), len(want))
	}
	for i, stmt := range module.Body {
		n := stmt.GetNode()
		if got := source[n.Start:n.End]; got != want[i] {
			t.Errorf("statement %d covers %q, want %q", i, got, want[i])
		}
	}
}

func TestModuleSpanCoversBody(t *testing.T) {
	source := "a = 1\nb = 2\n"
	module := parseClean(t, source)
	for i, stmt := range module.Body {
		if !module.Contains(stmt.GetNode()) {
			t.Errorf("statement %d %v outside module %v", i, stmt.GetNode(), module.Node)
		}
	}
}

func TestModuleSpanOnTokenFreeInput(t *testing.T) {
	// Blank and comment-only sources parse to an empty module whose
	// span must still be well-formed and sliceable.
	sources := []string{"", "   ", "# just a comment", "\n\n", "# c\n"}
	for _, source := range sources {
		module := parseClean(t, source)
		if len(module.Body) != 0 {
			t.Errorf("parse(%q): got %d statements, want 0", source, len(module.Body))
		}
		if module.Start > module.End {
			t.Errorf("parse(%q): reversed module span %v", source, module.Node)
		}
		if module.End > len(source) {
			t.Errorf("parse(%q): module span %v exceeds source", source, module.Node)
		}
		_ = source[module.Start:module.End]
	}
}
