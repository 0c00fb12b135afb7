package build

import (
	"context"
	"sync"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/parser"
	"github.com/pythia-lang/pythia/internal/position"
	"github.com/pythia-lang/pythia/internal/resolver"
)

// Result is the outcome of parsing one source.
type Result struct {
	Source      *Source
	File        *position.SourceFile
	Module      *ast.Module
	Diagnostics []parser.Diagnostic
}

// HasErrors reports whether the parse produced any diagnostics.
func (r *Result) HasErrors() bool { return len(r.Diagnostics) > 0 }

// Manager parses a batch of sources. Parsers share nothing, so the
// batch fans out over a bounded set of workers.
type Manager struct {
	opts *Options
	env  *resolver.Environment

	mu      sync.Mutex
	sources []*Source
	files   *position.SourceMap
}

// NewManager builds a manager, deriving the resolution environment
// from the configured interpreter version and search paths.
func NewManager(opts *Options) (*Manager, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	env, err := resolver.NewEnvironment(opts.PythonVersion, opts.SearchPaths)
	if err != nil {
		return nil, err
	}
	return &Manager{opts: opts, env: env, files: position.NewSourceMap()}, nil
}

// Environment exposes the resolution environment shared by the batch.
func (m *Manager) Environment() *resolver.Environment { return m.env }

// File returns the source file registered for path by a previous
// ParseAll, or nil.
func (m *Manager) File(path string) *position.SourceFile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files.GetFile(path)
}

// AddFile reads a file and queues it for parsing.
func (m *Manager) AddFile(path string) error {
	src, err := NewSource(path)
	if err != nil {
		return err
	}
	m.AddSource(src)
	return nil
}

// AddSource queues an in-memory source for parsing.
func (m *Manager) AddSource(src *Source) {
	m.mu.Lock()
	m.sources = append(m.sources, src)
	m.mu.Unlock()
}

// ParseAll parses every queued source and returns results in queue
// order. Each source gets an independent parser instance; the context
// cancels sources not yet started.
func (m *Manager) ParseAll(ctx context.Context) []*Result {
	m.mu.Lock()
	sources := make([]*Source, len(m.sources))
	copy(sources, m.sources)
	m.mu.Unlock()

	results := make([]*Result, len(sources))
	sem := make(chan struct{}, m.workers())
	var wg sync.WaitGroup

	for i, src := range sources {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, src *Source) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = m.parseOne(src)
		}(i, src)
	}
	wg.Wait()

	out := results[:0]
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m *Manager) workers() int {
	if m.opts.Workers > 0 {
		return m.opts.Workers
	}
	return 1
}

func (m *Manager) parseOne(src *Source) *Result {
	p := parser.New(src.Content, src.Path)
	module, diags := p.Parse()

	m.mu.Lock()
	file := m.files.AddFile(src.Path, src.Content)
	m.mu.Unlock()

	return &Result{
		Source:      src,
		File:        file,
		Module:      module,
		Diagnostics: diags,
	}
}

// Imports extracts the module descriptors of every import statement in
// a parsed module, in source order, ready to hand to the resolver.
func Imports(module *ast.Module) []resolver.ModuleDescriptor {
	var descriptors []resolver.ModuleDescriptor
	for _, stmt := range module.Body {
		switch s := stmt.(type) {
		case *ast.ImportStatement:
			descriptors = append(descriptors, resolver.DescriptorsFromImport(s)...)
		case *ast.ImportFromStatement:
			descriptors = append(descriptors, resolver.DescriptorFromImportFrom(s))
		}
	}
	return descriptors
}
