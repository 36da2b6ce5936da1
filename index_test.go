package frond

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile writes src under dir and returns the path.
func writeFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestIndexFiles_SkipsUnsupportedExtensions(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "hello")

	require.NoError(t, e.IndexFiles(context.Background(), []string{path}))
	files, err := e.Query().Files()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestIndexFiles_SkipsFilteredLanguages(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, WithLanguages("python"))
	dir := t.TempDir()
	py := writeFile(t, dir, "a.py", "x = 1\n")
	js := writeFile(t, dir, "b.js", "let x = 1;\n")

	require.NoError(t, e.IndexFiles(context.Background(), []string{py, js}))
	files, err := e.Query().Files()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "python", files[0].Language)
}

func TestIndexFiles_StoresScopesAndBindings(t *testing.T) {
	t.Parallel()

	for _, parallel := range []bool{true, false} {
		e := newTestEngine(t, WithParallel(parallel))
		path := writeFile(t, t.TempDir(), "shapes.py", shapes+"if c:\n    s = Square(1)\n")

		require.NoError(t, e.IndexFiles(context.Background(), []string{path}))

		f, err := e.Store().FileByPath(path)
		require.NoError(t, err)
		require.NotNil(t, f)
		assert.Equal(t, "python", f.Language)
		assert.Equal(t, 15, f.LineCount)

		scopes, err := e.Query().ScopesInFile(path)
		require.NoError(t, err)
		var kinds []string
		for _, s := range scopes {
			kinds = append(kinds, s.Kind+":"+s.Name)
		}
		assert.Equal(t, []string{
			"module:", "class:Base", "function:area",
			"class:Square", "function:__init__", "class:Circle", "function:__init__",
		}, kinds, "parallel=%v", parallel)
		assert.Equal(t, []string{"Base"}, scopes[3].Bases)

		bindings, err := e.Store().BindingsByScope(scopes[0].ID)
		require.NoError(t, err)
		var s *Binding
		for _, b := range bindings {
			if b.Name == "s" {
				s = b
			}
		}
		require.NotNil(t, s)
		assert.Equal(t, "var", s.Kind)
		assert.Equal(t, []string{"Square"}, s.Types)
		assert.Equal(t, "0.0", s.Branch)
	}
}

func TestIndexFiles_SkipsUnchangedFiles(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	path := writeFile(t, t.TempDir(), "a.py", "x = 1\n")

	require.NoError(t, e.IndexFiles(context.Background(), []string{path}))
	first, err := e.Store().FileByPath(path)
	require.NoError(t, err)

	require.NoError(t, e.IndexFiles(context.Background(), []string{path}))
	second, err := e.Store().FileByPath(path)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "unchanged file keeps its record")
}

func TestIndexFiles_ReindexesChangedFiles(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, WithParallel(false))
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "old = 1\n")
	require.NoError(t, e.IndexFiles(context.Background(), []string{path}))

	writeFile(t, dir, "a.py", "new = 1\n")
	require.NoError(t, e.IndexFiles(context.Background(), []string{path}))

	f, err := e.Store().FileByPath(path)
	require.NoError(t, err)
	bindings, err := e.Store().BindingsByFile(f.ID)
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, "new", bindings[0].Name)
}

func TestIndexFiles_MissingFileReportsError(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, WithParallel(false))
	dir := t.TempDir()
	good := writeFile(t, dir, "a.py", "x = 1\n")

	err := e.IndexFiles(context.Background(), []string{filepath.Join(dir, "gone.py"), good})
	require.Error(t, err)
	files, ferr := e.Query().Files()
	require.NoError(t, ferr)
	assert.Len(t, files, 1, "other files are still indexed")
}

func TestIndexFiles_RecordsLastIndexed(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	before, err := e.LastIndexed()
	require.NoError(t, err)
	assert.True(t, before.IsZero())

	require.NoError(t, e.IndexFiles(context.Background(), nil))
	after, err := e.LastIndexed()
	require.NoError(t, err)
	assert.False(t, after.IsZero())
}

func TestIndexDirectory_WalksAndSkipsExcludedDirs(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	root := t.TempDir()
	writeFile(t, root, "app.py", "x = 1\n")
	writeFile(t, root, "web/main.js", "let y = 2;\n")
	writeFile(t, root, ".hidden/secret.py", "z = 3\n")
	writeFile(t, root, "node_modules/dep/index.js", "var q;\n")
	writeFile(t, root, "__pycache__/m.py", "w = 4\n")

	require.NoError(t, e.IndexDirectory(context.Background(), root))

	files, err := e.Query().Files()
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f.Path)
		require.NoError(t, err)
		names = append(names, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{"app.py", "web/main.js"}, names)
}
