// Package resolver defines the boundary contract between the parser
// and the import resolution subsystem. The parser produces import
// nodes; this package gives them the descriptor and result shapes the
// resolver consumes and returns. No lookup is performed here.
package resolver

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/pythia-lang/pythia/internal/ast"
)

// ImportType classifies where a resolved module came from.
type ImportType int

const (
	ImportTypeBuiltIn ImportType = iota
	ImportTypeThirdParty
	ImportTypeLocal
)

func (t ImportType) String() string {
	switch t {
	case ImportTypeBuiltIn:
		return "builtin"
	case ImportTypeThirdParty:
		return "third-party"
	case ImportTypeLocal:
		return "local"
	}
	return "unknown"
}

// ImportResult is the outcome of resolving one module descriptor.
// A descriptor resolves to one path per name part; PartlyResolved
// marks a prefix-only hit (package found, trailing submodule missing).
type ImportResult struct {
	IsRelative         bool
	IsImportFound      bool
	IsPartlyResolved   bool
	IsNamespacePackage bool
	IsInitFilePresent  bool
	IsStubPackage      bool
	IsStubFile         bool
	IsNativeLib        bool
	ImportType         ImportType
	ResolvedPaths      []string
	SearchPath         string
	ImplicitImports    map[string]string
	PackageDirectory   string
}

// NotFound returns the canonical failed resolution.
func NotFound() *ImportResult {
	return &ImportResult{
		ImportType:      ImportTypeLocal,
		ImplicitImports: map[string]string{},
	}
}

// ModuleDescriptor names one module reference extracted from an import
// statement: the dotted name split into parts plus the relative-import
// level (count of leading dots; zero for absolute imports).
type ModuleDescriptor struct {
	Name  string
	Parts []string
	Level int
}

// DescriptorsFromImport extracts one descriptor per alias of an
// `import a.b, c` statement.
func DescriptorsFromImport(stmt *ast.ImportStatement) []ModuleDescriptor {
	descriptors := make([]ModuleDescriptor, 0, len(stmt.Names))
	for _, alias := range stmt.Names {
		descriptors = append(descriptors, ModuleDescriptor{
			Name:  alias.Name,
			Parts: strings.Split(alias.Name, "."),
		})
	}
	return descriptors
}

// DescriptorFromImportFrom extracts the single module descriptor of a
// `from [.]*mod import ...` statement. A relative import with no module
// (`from . import x`) has an empty name and no parts.
func DescriptorFromImportFrom(stmt *ast.ImportFromStatement) ModuleDescriptor {
	d := ModuleDescriptor{Name: stmt.Module, Level: stmt.Level}
	if stmt.Module != "" {
		d.Parts = strings.Split(stmt.Module, ".")
	}
	return d
}

// StubEntry describes one stub package directory with the interpreter
// version range it applies to. An empty constraint applies always.
type StubEntry struct {
	Path       string
	Constraint string
}

// Environment carries the resolution inputs that are fixed for a whole
// build: the target interpreter version and the module search paths.
type Environment struct {
	PythonVersion *semver.Version
	SearchPaths   []string
	Stubs         []StubEntry
}

// NewEnvironment parses the version string (e.g. "3.11") and builds an
// environment over the given search paths.
func NewEnvironment(version string, searchPaths []string) (*Environment, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, err
	}
	return &Environment{PythonVersion: v, SearchPaths: searchPaths}, nil
}

// StubApplies reports whether a stub entry's version constraint admits
// this environment's interpreter version. A malformed constraint never
// applies.
func (e *Environment) StubApplies(entry StubEntry) bool {
	if entry.Constraint == "" {
		return true
	}
	c, err := semver.NewConstraint(entry.Constraint)
	if err != nil {
		return false
	}
	return c.Check(e.PythonVersion)
}

// ApplicableStubs filters the environment's stub entries down to those
// admitted for the interpreter version, in declaration order.
func (e *Environment) ApplicableStubs() []StubEntry {
	var out []StubEntry
	for _, s := range e.Stubs {
		if e.StubApplies(s) {
			out = append(out, s)
		}
	}
	return out
}
