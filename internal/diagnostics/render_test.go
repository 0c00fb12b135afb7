package diagnostics

import (
	"strings"
	"testing"

	"github.com/pythia-lang/pythia/internal/parser"
	"github.com/pythia-lang/pythia/internal/position"
)

func TestRender(t *testing.T) {
	SetColor(false)
	source := "a = = 1\n"
	_, diags := parser.New(source, "bad.py").Parse()
	if len(diags) == 0 {
		t.Fatal("expected diagnostics")
	}

	out := Render(position.NewSourceFile("bad.py", source), diags[0])
	for _, want := range []string{"bad.py:1:", "error[", "a = = 1", "^"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestRenderAll(t *testing.T) {
	SetColor(false)
	source := ") = 1\n} junk\n"
	_, diags := parser.New(source, "bad.py").Parse()
	if len(diags) < 2 {
		t.Fatalf("expected at least 2 diagnostics, got %d", len(diags))
	}

	out := RenderAll(position.NewSourceFile("bad.py", source), diags)
	if strings.Count(out, "error[") != len(diags) {
		t.Errorf("output renders %d headers, want %d", strings.Count(out, "error["), len(diags))
	}
}

func TestSummary(t *testing.T) {
	SetColor(false)
	if got := Summary(0); got != "no syntax errors" {
		t.Errorf("Summary(0) = %q", got)
	}
	if got := Summary(3); !strings.Contains(got, "3") {
		t.Errorf("Summary(3) = %q", got)
	}
}
