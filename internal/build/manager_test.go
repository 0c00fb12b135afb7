package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"pkg/mod.py", "mod"},
		{"mod.pyi", "mod"},
		{"pkg/__init__.py", "pkg"},
		{"deep/nested/thing.py", "thing"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ModuleName(tt.path), "path %q", tt.path)
	}
}

func TestIsSourceFile(t *testing.T) {
	assert.True(t, IsSourceFile("a.py"))
	assert.True(t, IsSourceFile("a.pyi"))
	assert.False(t, IsSourceFile("a.txt"))
}

func TestParseAll(t *testing.T) {
	manager, err := NewManager(DefaultOptions())
	require.NoError(t, err)

	manager.AddSource(&Source{Path: "good.py", Module: "good", Content: "a = 1\nb = a + 2\n"})
	manager.AddSource(&Source{Path: "bad.py", Module: "bad", Content: "a = = 1\n"})
	manager.AddSource(&Source{Path: "imports.py", Module: "imports", Content: "import os\nfrom sys import argv\n"})

	results := manager.ParseAll(context.Background())
	require.Len(t, results, 3)

	assert.False(t, results[0].HasErrors())
	assert.Len(t, results[0].Module.Body, 2)

	assert.True(t, results[1].HasErrors())

	descriptors := Imports(results[2].Module)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "os", descriptors[0].Name)
	assert.Equal(t, "sys", descriptors[1].Name)
}

func TestFileLookupAfterParseAll(t *testing.T) {
	manager, err := NewManager(DefaultOptions())
	require.NoError(t, err)
	manager.AddSource(&Source{Path: "good.py", Module: "good", Content: "a = 1\n"})

	assert.Nil(t, manager.File("good.py"))

	results := manager.ParseAll(context.Background())
	require.Len(t, results, 1)

	file := manager.File("good.py")
	require.NotNil(t, file)
	assert.Same(t, results[0].File, file)
	assert.Equal(t, "a = 1", file.GetLine(1))
	assert.Nil(t, manager.File("missing.py"))
}

func TestParseAllHonorsCancelledContext(t *testing.T) {
	manager, err := NewManager(DefaultOptions())
	require.NoError(t, err)
	manager.AddSource(&Source{Path: "a.py", Content: "a = 1\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := manager.ParseAll(ctx)
	assert.Empty(t, results)
}

func TestAddFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))

	manager, err := NewManager(nil)
	require.NoError(t, err)
	require.NoError(t, manager.AddFile(path))

	results := manager.ParseAll(context.Background())
	require.Len(t, results, 1)
	assert.Equal(t, "sample", results[0].Source.Module)
	assert.False(t, results[0].HasErrors())

	assert.Error(t, manager.AddFile(filepath.Join(dir, "missing.py")))
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pythia.yaml")
	content := "python_version: \"3.9\"\nsearch_paths:\n  - /src\ncolor: false\nworkers: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "3.9", opts.PythonVersion)
	assert.Equal(t, []string{"/src"}, opts.SearchPaths)
	assert.False(t, opts.Color)
	assert.Equal(t, 2, opts.Workers)

	_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentFromOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.PythonVersion = "3.12"
	manager, err := NewManager(opts)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), manager.Environment().PythonVersion.Minor())
}
