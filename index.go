package frond

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/jward/frond/internal/parse"
	"github.com/jward/frond/internal/scope"
	"github.com/jward/frond/internal/store"
)

const metaLastIndexed = "last_indexed"

// IndexFiles indexes the given file paths. When WithParallel is enabled,
// uses a worker pool for parsing with batched SQLite writes. Otherwise
// falls back to the serial path.
//
// For each file:
// 1. Detect language from extension
// 2. Skip unsupported or filtered-out languages
// 3. Skip unchanged files (same content hash)
// 4. Delete stale data, insert the file record
// 5. Parse, build scopes, store scopes and bindings
//
// Errors on individual files are collected; processing continues.
func (e *Engine) IndexFiles(ctx context.Context, paths []string) error {
	if e.store == nil {
		return ErrNoIndex
	}
	var err error
	if e.useParallel {
		err = e.IndexFilesParallel(ctx, paths)
	} else {
		err = e.indexFilesSerial(ctx, paths)
	}
	if serr := e.store.SetMetadata(metaLastIndexed, time.Now().UTC().Format(time.RFC3339)); serr != nil && err == nil {
		err = serr
	}
	return err
}

func (e *Engine) indexFilesSerial(ctx context.Context, paths []string) error {
	var errs []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.indexFile(ctx, path); err != nil {
			errs = append(errs, fmt.Errorf("index %s: %w", path, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("indexing had %d error(s): %w", len(errs), errs[0])
	}
	return nil
}

func (e *Engine) indexFile(ctx context.Context, path string) error {
	item, skip, err := e.prepareFile(path)
	if err != nil || skip {
		return err
	}
	if err := e.extractFile(ctx, item, e.store); err != nil {
		// Drop the file record so the next run retries it.
		_ = e.store.DeleteFileData(item.fileID)
		return err
	}
	return nil
}

// prepareFile does the serial work for a single file: hash check, cleanup
// and the file record. skip is true when the file is unchanged or
// unsupported.
func (e *Engine) prepareFile(path string) (workItem, bool, error) {
	lang, ok := parse.LanguageForFile(path)
	if !ok || !e.enabled(lang) {
		return workItem{}, true, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return workItem{}, false, fmt.Errorf("read file: %w", err)
	}
	hash := store.ContentHash(content)

	existing, err := e.store.FileByPath(path)
	if err != nil {
		return workItem{}, false, fmt.Errorf("lookup file: %w", err)
	}
	if existing != nil && existing.Hash == hash {
		e.logger.Debug("unchanged", "path", path)
		return workItem{}, true, nil
	}
	if existing != nil {
		if err := e.store.DeleteFileData(existing.ID); err != nil {
			return workItem{}, false, fmt.Errorf("delete old data: %w", err)
		}
	}

	fileID, err := e.store.InsertFile(&store.File{
		Path:        path,
		Language:    lang,
		Hash:        hash,
		LineCount:   bytes.Count(content, []byte{'\n'}) + 1,
		LastIndexed: time.Now(),
	})
	if err != nil {
		return workItem{}, false, fmt.Errorf("insert file: %w", err)
	}
	return workItem{path: path, lang: lang, fileID: fileID, content: content}, false, nil
}

// extractFile parses one file and writes its scopes and bindings to ds.
func (e *Engine) extractFile(ctx context.Context, item workItem, ds store.DataStore) error {
	prog, err := parse.Source(ctx, item.lang, item.content, item.path)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return writeScopes(ds, item.fileID, scope.Build(prog))
}

// writeScopes stores every scope of tree, parents first, then every
// binding.
func writeScopes(ds store.DataStore, fileID int64, tree *scope.Tree) error {
	ids := make(map[*scope.Scope]int64, len(tree.Scopes()))
	for _, s := range tree.Scopes() {
		row := &store.Scope{
			FileID:    fileID,
			Kind:      s.Kind.String(),
			Name:      s.Name(),
			StartLine: s.Span.Start.Line,
			StartCol:  s.Span.Start.Col,
			EndLine:   s.Span.End.Line,
			EndCol:    s.Span.End.Col,
		}
		if s.Kind == scope.KindClass && s.Class != nil {
			row.Bases = s.Class.BaseNames()
		}
		if s.Parent != nil {
			pid, ok := ids[s.Parent]
			if !ok {
				return fmt.Errorf("scope %q stored before its parent", row.Name)
			}
			row.ParentScopeID = &pid
		}
		id, err := ds.InsertScope(row)
		if err != nil {
			return err
		}
		ids[s] = id
	}

	for _, b := range tree.Bindings() {
		sid, ok := ids[b.Scope]
		if !ok {
			continue
		}
		types := make([]string, 0, len(b.Types))
		for _, t := range b.Types {
			types = append(types, t.String())
		}
		_, err := ds.InsertBinding(&store.Binding{
			FileID:   fileID,
			ScopeID:  sid,
			Name:     b.Name,
			Kind:     b.Kind.String(),
			Types:    types,
			DeclLine: b.Loc.Start.Line,
			DeclCol:  b.Loc.Start.Col,
			Branch:   b.Branch.String(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// skipDirs lists directories excluded from indexing.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	"venv":         true,
}

// IndexDirectory walks root and indexes all files with supported
// extensions. Inside a git repository it uses git ls-files to respect
// .gitignore, falling back to a filesystem walk (skipping hidden dirs,
// node_modules, vendor, __pycache__ and venv) when git is unavailable.
func (e *Engine) IndexDirectory(ctx context.Context, root string) error {
	if e.store == nil {
		return ErrNoIndex
	}
	paths, err := e.gitListFiles(ctx, root)
	if err != nil {
		e.logger.Debug("git ls-files unavailable, walking", "root", root, "err", err)
		paths, err = e.walkListFiles(root)
		if err != nil {
			return err
		}
	}
	e.logger.Info("indexing", "root", root, "files", len(paths))
	return e.IndexFiles(ctx, paths)
}

// gitListFiles uses git ls-files to discover tracked and untracked (but
// not ignored) files under root, filtered to supported languages.
func (e *Engine) gitListFiles(ctx context.Context, root string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		absPath := filepath.Join(root, line)
		if lang, ok := parse.LanguageForFile(absPath); ok && e.enabled(lang) {
			paths = append(paths, absPath)
		}
	}
	return paths, nil
}

// walkListFiles discovers files by walking the filesystem.
func (e *Engine) walkListFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if lang, ok := parse.LanguageForFile(path); ok && e.enabled(lang) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return paths, nil
}
