package frond

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/jward/frond/internal/store"
)

// QueryBuilder reads the persisted index.
//
// Index queries work from stored scopes and bindings without re-parsing,
// so they are not flow-sensitive: a name counts as visible once it is
// declared, whatever branch it sits on. Use Engine.Complete for exact
// answers on live source.
type QueryBuilder struct {
	store *store.Store
}

// Files returns every indexed file ordered by path.
func (q *QueryBuilder) Files() ([]*File, error) {
	if q.store == nil {
		return nil, ErrNoIndex
	}
	return q.store.Files()
}

// ScopesInFile returns the scopes of file in the order they open.
func (q *QueryBuilder) ScopesInFile(file string) ([]*Scope, error) {
	f, err := q.file(file)
	if err != nil {
		return nil, err
	}
	return q.store.ScopesByFile(f.ID)
}

// NamesAt returns the bindings visible at a position: those of the
// innermost scope declared before it, then those of every enclosing
// module or function scope. Inner bindings shadow outer ones; the result
// holds one binding per name, sorted by name.
func (q *QueryBuilder) NamesAt(file string, line, col int) ([]*Binding, error) {
	f, err := q.file(file)
	if err != nil {
		return nil, err
	}
	scopes, err := q.store.ScopesByFile(f.ID)
	if err != nil {
		return nil, fmt.Errorf("names at: %w", err)
	}

	byID := make(map[int64]*Scope, len(scopes))
	var inner *Scope
	for _, s := range scopes {
		byID[s.ID] = s
		// Children are stored after their parents, so the last match is
		// the innermost.
		if scopeContains(s, line, col) {
			inner = s
		}
	}
	if inner == nil {
		return nil, nil
	}

	seen := make(map[string]bool)
	var out []*Binding
	for s := inner; s != nil; s = parentOf(s, byID) {
		if s != inner && s.Kind == "class" {
			continue
		}
		bindings, err := q.store.BindingsByScope(s.ID)
		if err != nil {
			return nil, fmt.Errorf("names at: %w", err)
		}
		for _, b := range bindings {
			if b.Kind == "member" || seen[b.Name] {
				continue
			}
			if s == inner && !before(b.DeclLine, b.DeclCol, line, col) {
				continue
			}
			seen[b.Name] = true
			out = append(out, b)
		}
	}
	sortBindings(out)
	return out, nil
}

// MembersOf returns the members of the class named class declared in
// file, including receiver attributes and members inherited from base
// classes declared in the same file. When the class is declared more than
// once the last declaration wins.
func (q *QueryBuilder) MembersOf(file, class string) ([]*Binding, error) {
	f, err := q.file(file)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	visited := make(map[int64]bool)
	var out []*Binding
	queue := []string{class}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		cls, err := q.lastClass(f.ID, name)
		if err != nil {
			return nil, err
		}
		if cls == nil || visited[cls.ID] {
			continue
		}
		visited[cls.ID] = true
		bindings, err := q.store.BindingsByScope(cls.ID)
		if err != nil {
			return nil, fmt.Errorf("members of: %w", err)
		}
		for _, b := range bindings {
			if !seen[b.Name] {
				seen[b.Name] = true
				out = append(out, b)
			}
		}
		queue = append(queue, cls.Bases...)
	}
	sortBindings(out)
	return out, nil
}

func (q *QueryBuilder) lastClass(fileID int64, name string) (*Scope, error) {
	scopes, err := q.store.ClassScopes(fileID, name)
	if err != nil {
		return nil, fmt.Errorf("members of: %w", err)
	}
	if len(scopes) == 0 {
		return nil, nil
	}
	return scopes[len(scopes)-1], nil
}

// file looks up an indexed file by path, trying the absolute path when
// the path as given is unknown.
func (q *QueryBuilder) file(path string) (*File, error) {
	if q.store == nil {
		return nil, ErrNoIndex
	}
	f, err := q.store.FileByPath(path)
	if err != nil {
		return nil, err
	}
	if f == nil {
		if abs, aerr := filepath.Abs(path); aerr == nil && abs != path {
			if f, err = q.store.FileByPath(abs); err != nil {
				return nil, err
			}
		}
	}
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotIndexed, path)
	}
	return f, nil
}

func parentOf(s *Scope, byID map[int64]*Scope) *Scope {
	if s.ParentScopeID == nil {
		return nil
	}
	return byID[*s.ParentScopeID]
}

func scopeContains(s *Scope, line, col int) bool {
	return !before(line, col, s.StartLine, s.StartCol) && !before(s.EndLine, s.EndCol, line, col)
}

// before reports whether (l1, c1) precedes (l2, c2).
func before(l1, c1, l2, c2 int) bool {
	if l1 != l2 {
		return l1 < l2
	}
	return c1 < c2
}

func sortBindings(bs []*Binding) {
	sort.SliceStable(bs, func(i, j int) bool { return bs[i].Name < bs[j].Name })
}
