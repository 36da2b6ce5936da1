package frond

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/jward/frond/internal/ast"
	"github.com/jward/frond/internal/complete"
	"github.com/jward/frond/internal/parse"
	"github.com/jward/frond/internal/runtime"
	"github.com/jward/frond/internal/scope"
	"github.com/jward/frond/internal/store"
	"github.com/jward/frond/scripts"
)

// Engine answers completion requests and maintains the optional index.
type Engine struct {
	store      *store.Store // nil without a database
	runtime    *runtime.Runtime
	scriptsDir string
	scriptsFS  fs.FS
	languages  map[string]bool // nil means all languages
	policy     scope.MergePolicy
	filter     string
	logger     *slog.Logger
	snapshots  *snapshotCache

	// useParallel enables the parallel indexing pipeline.
	useParallel bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLanguages restricts which languages the Engine will process.
func WithLanguages(languages ...string) Option {
	return func(e *Engine) {
		e.languages = make(map[string]bool, len(languages))
		for _, lang := range languages {
			e.languages[strings.ToLower(lang)] = true
		}
	}
}

// WithMergePolicy sets how disagreeing candidate types are combined. The
// default is MergeUnion.
func WithMergePolicy(p MergePolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithLogger sets the structured logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithFilterScript runs the named filter over every completion set. name
// is a built-in filter such as "public", or a path ending in .risor
// relative to the scripts source.
func WithFilterScript(name string) Option {
	return func(e *Engine) {
		e.filter = name
	}
}

// WithScriptsDir loads filter scripts from dir on disk.
func WithScriptsDir(dir string) Option {
	return func(e *Engine) {
		e.scriptsDir = dir
	}
}

// WithScriptsFS loads filter scripts from fsys. It takes precedence over
// WithScriptsDir.
func WithScriptsFS(fsys fs.FS) Option {
	return func(e *Engine) {
		e.scriptsFS = fsys
	}
}

// WithParallel controls parallel indexing. When true (default), IndexFiles
// parses on a worker pool and a single goroutine commits batches to
// SQLite. Set to false for serial mode.
func WithParallel(parallel bool) Option {
	return func(e *Engine) {
		e.useParallel = parallel
	}
}

// New creates an Engine. With a non-empty dbPath the index is opened (and
// created if needed) at that path; an empty dbPath gives an Engine that
// only completes.
//
// Script loading priority:
//  1. WithScriptsFS
//  2. WithScriptsDir
//  3. the built-in scripts
func New(dbPath string, opts ...Option) (*Engine, error) {
	e := &Engine{
		logger:      slog.New(slog.DiscardHandler),
		snapshots:   newSnapshotCache(defaultSnapshotLimit),
		useParallel: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	var rtOpts []runtime.RuntimeOption
	switch {
	case e.scriptsFS != nil:
		rtOpts = append(rtOpts, runtime.WithRuntimeFS(e.scriptsFS))
	case e.scriptsDir == "":
		e.scriptsFS = scripts.FS
		rtOpts = append(rtOpts, runtime.WithRuntimeFS(scripts.FS))
	}
	rtOpts = append(rtOpts, runtime.WithRuntimeLogger(e.logger))
	e.runtime = runtime.NewRuntime(e.scriptsDir, rtOpts...)

	if e.filter != "" {
		if _, err := e.runtime.LoadScript(e.filterPath()); err != nil {
			return nil, fmt.Errorf("frond: filter script: %w", err)
		}
	}

	if dbPath == "" {
		return e, nil
	}
	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("frond: create store: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("frond: migrate: %w", err)
	}
	e.store = s
	return e, nil
}

// Close releases the Engine's database resources.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Store returns the underlying index store, nil without a database.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Query returns a new QueryBuilder over the index.
func (e *Engine) Query() *QueryBuilder {
	return &QueryBuilder{store: e.store}
}

// Languages returns the language tags the Engine accepts.
func (e *Engine) Languages() []string {
	var out []string
	for _, l := range parse.Languages() {
		if e.enabled(l) {
			out = append(out, l)
		}
	}
	return out
}

func (e *Engine) enabled(lang string) bool {
	return e.languages == nil || e.languages[strings.ToLower(lang)]
}

func (e *Engine) checkLanguage(lang string) error {
	if !e.enabled(lang) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	_, err := parse.ForLanguage(lang)
	return err
}

func (e *Engine) filterPath() string {
	if strings.HasSuffix(e.filter, ".risor") {
		return e.filter
	}
	return runtime.FilterScriptPath(e.filter)
}

// Complete returns the completion proposals at the request position.
//
// The only error is ErrUnsupportedLanguage. Anything else that goes wrong,
// from unparseable input to a failing filter script, yields an empty or
// unfiltered set and a log record.
func (e *Engine) Complete(ctx context.Context, req Request) (set *Set, err error) {
	if err := e.checkLanguage(req.Language); err != nil {
		return nil, err
	}
	pos := ast.Pos{Line: req.Line, Col: req.Col}
	log := e.logger.With("path", req.Path, "line", req.Line, "col", req.Col)

	defer func() {
		if ast.DebugAssertions {
			return
		}
		if r := recover(); r != nil {
			log.Error("completion panicked", "panic", r)
			set, err = complete.NewSet(complete.ContextName), nil
		}
	}()

	start := time.Now()
	snap, err := e.Snapshot(ctx, req.Language, req.Path, complete.Prepare(req.Source, pos))
	if err != nil {
		log.Warn("parse failed", "err", err)
		return complete.NewSet(complete.ContextName), nil
	}
	set = complete.Resolve(snap.Scopes, req.Source, pos, complete.Options{Policy: e.policy})
	set = e.applyFilter(ctx, set, req.Language, log)
	log.Debug("completed", "context", set.Context.String(), "proposals", set.Len(), "elapsed", time.Since(start))
	return set, nil
}

// CompleteNames is Complete returning the proposal names sorted.
func (e *Engine) CompleteNames(ctx context.Context, req Request) ([]string, error) {
	set, err := e.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	return set.Names(), nil
}

func (e *Engine) applyFilter(ctx context.Context, set *complete.Set, lang string, log *slog.Logger) *complete.Set {
	if e.filter == "" || set.Len() == 0 {
		return set
	}
	filtered, err := e.runtime.Filter(ctx, e.filterPath(), set, lang)
	if err != nil {
		log.Warn("filter script failed, returning unfiltered proposals", "script", e.filter, "err", err)
		return set
	}
	return filtered
}

// Snapshot returns the parsed program and scope tree for src. Results are
// cached per path and content hash; concurrent callers for the same unit
// share one build.
func (e *Engine) Snapshot(ctx context.Context, lang, path string, src []byte) (*Snapshot, error) {
	if err := e.checkLanguage(lang); err != nil {
		return nil, err
	}
	return e.snapshots.get(ctx, lang, path, src, func(ctx context.Context, hash string) (*Snapshot, error) {
		prog, err := parse.Source(ctx, lang, src, path)
		if err != nil {
			return nil, err
		}
		e.logger.Debug("built snapshot", "path", path, "language", lang, "hash", hash[:12])
		return &Snapshot{
			Path:     path,
			Language: lang,
			Hash:     hash,
			Program:  prog,
			Scopes:   scope.Build(prog),
		}, nil
	})
}

// LastIndexed returns when the index was last updated, the zero time if
// never.
func (e *Engine) LastIndexed() (time.Time, error) {
	if e.store == nil {
		return time.Time{}, ErrNoIndex
	}
	v, err := e.store.GetMetadata(metaLastIndexed)
	if err != nil || v == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("frond: last indexed: %w", err)
	}
	return t, nil
}
