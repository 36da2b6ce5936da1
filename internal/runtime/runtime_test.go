package runtime

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"unicode/utf8"

	"github.com/risor-io/risor/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/frond/internal/ast"
	"github.com/jward/frond/internal/complete"
	"github.com/jward/frond/internal/parse"
	"github.com/jward/frond/internal/scope"
	"github.com/jward/frond/scripts"
)

const shapeSource = `class Shape:
    def __init__(self):
        self._cache = 1

    def _hidden(self):
        pass

    def area(self):
        pass

s = Shape()
`

// proposals resolves the completion set at the "|" marker in src.
func proposals(t *testing.T, src string) *complete.Set {
	t.Helper()
	i := strings.Index(src, "|")
	require.GreaterOrEqual(t, i, 0)
	before := src[:i]
	pos := ast.Pos{
		Line: strings.Count(before, "\n") + 1,
		Col:  utf8.RuneCountInString(before[strings.LastIndex(before, "\n")+1:]) + 1,
	}
	text := []byte(before + src[i+1:])
	prog, err := parse.Source(context.Background(), "python", complete.Prepare(text, pos), "test.py")
	require.NoError(t, err)
	return complete.Resolve(scope.Build(prog), text, pos, complete.Options{})
}

func TestRunSource_ReturnsLastExpression(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")

	got, err := rt.RunSource(context.Background(), "x := 1 + 2\nx", nil)
	require.NoError(t, err)
	assert.Equal(t, object.NewInt(3), got)
}

func TestRunSource_ExtraGlobals(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")

	got, err := rt.RunSource(context.Background(), `greeting + " world"`, map[string]any{"greeting": "hello"})
	require.NoError(t, err)
	assert.Equal(t, object.NewString("hello world"), got)
}

func TestRunSource_ScriptError(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")

	_, err := rt.RunSource(context.Background(), `assert(false, "boom")`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "<inline>")
}

func TestLoadScript_FromDisk(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "filter"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "filter", "mine.risor"), []byte("proposals"), 0o644))

	rt := NewRuntime(dir)
	src, err := rt.LoadScript(FilterScriptPath("mine"))
	require.NoError(t, err)
	assert.Equal(t, "proposals", src)

	_, err = rt.LoadScript(FilterScriptPath("missing"))
	require.Error(t, err)
}

func TestLoadScript_FromFS(t *testing.T) {
	t.Parallel()
	mapFS := fstest.MapFS{
		"filter/mine.risor": &fstest.MapFile{Data: []byte("proposals")},
	}
	rt := NewRuntime("/nonexistent", WithRuntimeFS(mapFS))

	src, err := rt.LoadScript("/filter/mine.risor")
	require.NoError(t, err)
	assert.Equal(t, "proposals", src)
}

func TestEmbeddedScriptsLoad(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("", WithRuntimeFS(scripts.FS))

	for _, name := range []string{"identity", "public", "types"} {
		_, err := rt.LoadScript(FilterScriptPath(name))
		assert.NoError(t, err, name)
	}
}

func TestFilter_Identity(t *testing.T) {
	t.Parallel()
	set := proposals(t, shapeSource+"s.|")
	rt := NewRuntime("", WithRuntimeFS(scripts.FS))

	got, err := rt.Filter(context.Background(), FilterScriptPath("identity"), set, "python")
	require.NoError(t, err)
	assert.Equal(t, set.Names(), got.Names())
	assert.Equal(t, complete.ContextMember, got.Context)
}

func TestFilter_PublicHidesPrivateMethods(t *testing.T) {
	t.Parallel()
	set := proposals(t, shapeSource+"s.|")
	require.Equal(t, []string{"__init__", "_cache", "_hidden", "area"}, set.Names())
	rt := NewRuntime("", WithRuntimeFS(scripts.FS))

	got, err := rt.Filter(context.Background(), FilterScriptPath("public"), set, "python")
	require.NoError(t, err)
	assert.Equal(t, []string{"__init__", "_cache", "area"}, got.Names())

	p, ok := got.Get("_cache")
	require.True(t, ok)
	assert.Equal(t, scope.BindMember, p.Binding.Kind, "bindings survive filtering")
}

func TestFilter_TypesKeepsClassesAndTypedNames(t *testing.T) {
	t.Parallel()
	set := proposals(t, shapeSource+"n = 1\n|")
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rt := NewRuntime("", WithRuntimeFS(scripts.FS), WithRuntimeLogger(logger))

	got, err := rt.Filter(context.Background(), FilterScriptPath("types"), set, "python")
	require.NoError(t, err)
	assert.Equal(t, []string{"Shape", "s"}, got.Names())
	assert.Contains(t, buf.String(), "types filter kept 2")
	assert.Contains(t, buf.String(), "source=script")
}

func TestFilter_CannotWiden(t *testing.T) {
	t.Parallel()
	set := proposals(t, shapeSource+"s.|")
	mapFS := fstest.MapFS{
		"widen.risor": &fstest.MapFile{Data: []byte(`["area", "invented"]`)},
	}
	rt := NewRuntime("", WithRuntimeFS(mapFS))

	got, err := rt.Filter(context.Background(), "widen.risor", set, "python")
	require.NoError(t, err)
	assert.Equal(t, []string{"area"}, got.Names())
}

func TestFilter_SeesContextAndLanguage(t *testing.T) {
	t.Parallel()
	set := proposals(t, shapeSource+"s.|")
	mapFS := fstest.MapFS{
		"check.risor": &fstest.MapFile{Data: []byte(`
assert(context == "member", 'context was {context}')
assert(language == "python", 'language was {language}')
assert(binding_kind("area") == "func")
assert(binding_kind("nope") == "")
assert(len(binding_types("area")) == 0)
proposals
`)},
	}
	rt := NewRuntime("", WithRuntimeFS(mapFS))

	got, err := rt.Filter(context.Background(), "check.risor", set, "python")
	require.NoError(t, err)
	assert.Equal(t, set.Len(), got.Len())
}

func TestFilter_BadResults(t *testing.T) {
	t.Parallel()
	set := proposals(t, shapeSource+"s.|")

	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"not a list", `"area"`, "want list"},
		{"non-string item", `[1, 2]`, "want string"},
		{"runtime error", `binding_kind()`, "binding_kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mapFS := fstest.MapFS{"f.risor": &fstest.MapFile{Data: []byte(tt.script)}}
			rt := NewRuntime("", WithRuntimeFS(mapFS))
			_, err := rt.Filter(context.Background(), "f.risor", set, "python")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestImport_GlobalsAvailableInImportedModules(t *testing.T) {
	t.Parallel()
	// Imported modules can reference host-provided globals such as log.
	mapFS := fstest.MapFS{
		"helper.risor": &fstest.MapFile{Data: []byte(`
func keep_all(names) {
	log.Info("keeping all")
	return names
}
`)},
		"main.risor": &fstest.MapFile{Data: []byte(`
import helper
helper.keep_all(proposals)
`)},
	}
	set := proposals(t, shapeSource+"s.|")
	rt := NewRuntime("", WithRuntimeFS(mapFS))

	got, err := rt.Filter(context.Background(), "main.risor", set, "python")
	require.NoError(t, err)
	assert.Equal(t, set.Names(), got.Names())
}

func TestNewRuntime_Defaults(t *testing.T) {
	t.Parallel()

	rt := NewRuntime("/some/dir", WithRuntimeLogger(nil))
	require.NotNil(t, rt)
	assert.Nil(t, rt.fsys)
	assert.NotNil(t, rt.logger)
	assert.Equal(t, "/some/dir", rt.scriptsDir)
}
