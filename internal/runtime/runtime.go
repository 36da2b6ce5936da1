// Package runtime embeds a Risor VM that runs proposal filter scripts.
//
// A filter script sees the proposals as a list of names and evaluates to
// the list of names to keep. Scripts can only narrow the set; names they
// return that were not proposed are ignored.
package runtime

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/importer"
	"github.com/risor-io/risor/object"

	"github.com/jward/frond/internal/complete"
)

// Runtime loads and evaluates Risor scripts.
type Runtime struct {
	scriptsDir string
	fsys       fs.FS
	logger     *slog.Logger
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithRuntimeFS configures the Runtime to load scripts from an fs.FS
// instead of from disk. Also configures the Risor importer to use
// FSImporter for import statement resolution.
func WithRuntimeFS(fsys fs.FS) RuntimeOption {
	return func(r *Runtime) {
		r.fsys = fsys
	}
}

// WithRuntimeLogger routes the scripts' log object to l.
func WithRuntimeLogger(l *slog.Logger) RuntimeOption {
	return func(r *Runtime) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRuntime creates a Runtime reading scripts from scriptsDir.
func NewRuntime(scriptsDir string, opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		scriptsDir: scriptsDir,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunScript loads and executes a Risor script with the standard globals
// plus extraGlobals, returning the value of its last expression.
func (r *Runtime) RunScript(ctx context.Context, scriptPath string, extraGlobals map[string]any) (object.Object, error) {
	src, err := r.LoadScript(scriptPath)
	if err != nil {
		return nil, err
	}
	return r.eval(ctx, src, scriptPath, extraGlobals)
}

// RunSource executes Risor source code directly. Useful for testing
// without script files.
func (r *Runtime) RunSource(ctx context.Context, source string, extraGlobals map[string]any) (object.Object, error) {
	return r.eval(ctx, source, "<inline>", extraGlobals)
}

func (r *Runtime) eval(ctx context.Context, source, label string, extraGlobals map[string]any) (object.Object, error) {
	globals := r.buildGlobals(extraGlobals)

	var opts []risor.Option
	for name, val := range globals {
		opts = append(opts, risor.WithGlobal(name, val))
	}
	if imp := r.buildImporter(globals); imp != nil {
		opts = append(opts, risor.WithImporter(imp))
	}

	result, err := risor.Eval(ctx, source, opts...)
	if err != nil {
		return nil, fmt.Errorf("runtime: script %s: %w", label, err)
	}
	return result, nil
}

// buildImporter returns a Risor importer configured for the Runtime's
// script source, or nil if neither fs.FS nor scriptsDir is set.
func (r *Runtime) buildImporter(globals map[string]any) importer.Importer {
	globalNames := make([]string, 0, len(globals))
	for name := range globals {
		globalNames = append(globalNames, name)
	}

	if r.fsys != nil {
		return importer.NewFSImporter(importer.FSImporterOptions{
			GlobalNames: globalNames,
			SourceFS:    r.fsys,
			Extensions:  []string{".risor"},
		})
	}
	if r.scriptsDir != "" {
		return importer.NewLocalImporter(importer.LocalImporterOptions{
			GlobalNames: globalNames,
			SourceDir:   r.scriptsDir,
			Extensions:  []string{".risor"},
		})
	}
	return nil
}

// LoadScript reads a .risor file and returns its source code. With an
// fs.FS configured the path is relative to the FS root; otherwise a
// relative path is joined to scriptsDir.
func (r *Runtime) LoadScript(path string) (string, error) {
	if r.fsys != nil {
		fsPath := strings.TrimPrefix(filepath.ToSlash(path), "/")
		data, err := fs.ReadFile(r.fsys, fsPath)
		if err != nil {
			return "", fmt.Errorf("runtime: loading script %s from fs: %w", fsPath, err)
		}
		return string(data), nil
	}

	fullPath := path
	if !filepath.IsAbs(path) {
		fullPath = filepath.Join(r.scriptsDir, path)
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("runtime: loading script %s: %w", fullPath, err)
	}
	return string(data), nil
}

// FilterScriptPath returns the path of a named filter script.
func FilterScriptPath(name string) string {
	return filepath.Join("filter", name+".risor")
}

// Filter runs the filter script at scriptPath over set. The script sees
// the globals proposals, context and language plus the binding host
// functions. The result is set narrowed to the names the script returned.
func (r *Runtime) Filter(ctx context.Context, scriptPath string, set *complete.Set, language string) (*complete.Set, error) {
	names := set.Names()
	items := make([]object.Object, len(names))
	for i, n := range names {
		items[i] = object.NewString(n)
	}
	var ctxName string
	if set != nil {
		ctxName = set.Context.String()
	}
	globals := map[string]any{
		"proposals":     object.NewList(items),
		"context":       object.NewString(ctxName),
		"language":      object.NewString(language),
		"binding_kind":  makeBindingKindFn(set),
		"binding_types": makeBindingTypesFn(set),
	}

	result, err := r.RunScript(ctx, scriptPath, globals)
	if err != nil {
		return nil, err
	}
	keep, err := stringList(result)
	if err != nil {
		return nil, fmt.Errorf("runtime: filter %s: %w", scriptPath, err)
	}
	return set.Retain(keep), nil
}

// stringList converts a script result into names.
func stringList(obj object.Object) ([]string, error) {
	list, ok := obj.(*object.List)
	if !ok {
		if obj == nil {
			return nil, fmt.Errorf("result is empty, want list")
		}
		return nil, fmt.Errorf("result is %s, want list", obj.Type())
	}
	out := make([]string, 0, len(list.Value()))
	for _, item := range list.Value() {
		s, ok := item.(*object.String)
		if !ok {
			return nil, fmt.Errorf("list item is %s, want string", item.Type())
		}
		out = append(out, s.Value())
	}
	return out, nil
}

// buildGlobals constructs the globals exposed to every script.
func (r *Runtime) buildGlobals(extra map[string]any) map[string]any {
	globals := map[string]any{
		"log": mustProxy(&logObject{logger: r.logger}),
	}
	for k, v := range extra {
		globals[k] = v
	}
	return globals
}

func mustProxy(v any) object.Object {
	p, err := object.NewProxy(v)
	if err != nil {
		panic(fmt.Sprintf("runtime: proxy error: %v", err))
	}
	return p
}
