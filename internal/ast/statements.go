package ast

import "strings"

// ExpressionStatement represents an expression used as a statement.
type ExpressionStatement struct {
	Node
	Expr Expression
}

func (e *ExpressionStatement) String() string { return e.Expr.String() }
func (e *ExpressionStatement) statementNode() {}

// AssignStatement represents an assignment. Targets holds every target
// of a chain (a = b = value); single-target assignment has one entry.
type AssignStatement struct {
	Node
	Targets []Expression
	Value   Expression
}

func (a *AssignStatement) String() string {
	parts := make([]string, 0, len(a.Targets)+1)
	for _, t := range a.Targets {
		parts = append(parts, t.String())
	}
	parts = append(parts, a.Value.String())
	return strings.Join(parts, " = ")
}
func (a *AssignStatement) statementNode() {}

// Alias is one `name [as asname]` entry of an import statement.
type Alias struct {
	Node
	Name   string
	AsName string // empty when no `as` clause
}

func (a *Alias) String() string {
	if a.AsName != "" {
		return a.Name + " as " + a.AsName
	}
	return a.Name
}

// ImportStatement represents `import a.b [as c], ...`. The dotted names
// are handed unresolved to the external import resolver.
type ImportStatement struct {
	Node
	Names []*Alias
}

func (i *ImportStatement) String() string {
	parts := make([]string, len(i.Names))
	for j, a := range i.Names {
		parts[j] = a.String()
	}
	return "import " + strings.Join(parts, ", ")
}
func (i *ImportStatement) statementNode() {}

// ImportFromStatement represents `from [.]*module import name [as n], ...`.
// Level counts leading dots (relative import depth); a single Alias
// named "*" marks a star import.
type ImportFromStatement struct {
	Node
	Module string
	Names  []*Alias
	Level  int
}

func (i *ImportFromStatement) String() string {
	parts := make([]string, len(i.Names))
	for j, a := range i.Names {
		parts[j] = a.String()
	}
	return "from " + strings.Repeat(".", i.Level) + i.Module + " import " + strings.Join(parts, ", ")
}
func (i *ImportFromStatement) statementNode() {}

// Arg is a single formal parameter with optional annotation.
type Arg struct {
	Node
	Name       string
	Annotation Expression
}

func (a *Arg) String() string {
	if a.Annotation != nil {
		return a.Name + ": " + a.Annotation.String()
	}
	return a.Name
}

// Arguments is the full parameter list of a function or lambda,
// mirroring the grammar's positional-only / positional / vararg /
// keyword-only / kwarg structure. Defaults aligns right-justified with
// the positional groups; KwDefaults aligns with KwOnlyArgs.
type Arguments struct {
	Node
	PosOnlyArgs []*Arg
	Args        []*Arg
	VarArg      *Arg
	KwOnlyArgs  []*Arg
	KwDefaults  []Expression
	KwArg       *Arg
	Defaults    []Expression
}

func (a *Arguments) String() string {
	var parts []string
	positional := make([]*Arg, 0, len(a.PosOnlyArgs)+len(a.Args))
	positional = append(positional, a.PosOnlyArgs...)
	positional = append(positional, a.Args...)
	firstDefault := len(positional) - len(a.Defaults)
	for i, p := range positional {
		s := p.String()
		if i >= firstDefault {
			s += "=" + a.Defaults[i-firstDefault].String()
		}
		parts = append(parts, s)
		if len(a.PosOnlyArgs) > 0 && i == len(a.PosOnlyArgs)-1 {
			parts = append(parts, "/")
		}
	}
	switch {
	case a.VarArg != nil:
		parts = append(parts, "*"+a.VarArg.String())
	case len(a.KwOnlyArgs) > 0:
		parts = append(parts, "*")
	}
	for i, p := range a.KwOnlyArgs {
		s := p.String()
		if a.KwDefaults[i] != nil {
			s += "=" + a.KwDefaults[i].String()
		}
		parts = append(parts, s)
	}
	if a.KwArg != nil {
		parts = append(parts, "**"+a.KwArg.String())
	}
	return strings.Join(parts, ", ")
}
