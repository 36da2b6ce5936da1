// Package complete resolves completion proposals at a cursor position
// against a scope tree.
//
// Resolution never fails. Malformed input, a cursor outside the source
// and expressions it cannot type all produce an empty Set.
package complete

import (
	"sort"

	"github.com/jward/frond/internal/ast"
	"github.com/jward/frond/internal/scope"
)

// Options tunes resolution.
type Options struct {
	// Policy merges disagreeing candidate types. The zero value is
	// scope.MergeUnion.
	Policy scope.MergePolicy
}

// Proposal is one completion result. Binding is the binding the name was
// found through, nil when unknown.
type Proposal struct {
	Name    string
	Binding *scope.Binding
}

// Set is a deduplicated set of proposals. The zero value and nil are
// empty sets.
type Set struct {
	Context Context
	items   map[string]Proposal
}

// NewSet returns an empty set for ctx.
func NewSet(ctx Context) *Set {
	return &Set{Context: ctx, items: make(map[string]Proposal)}
}

// Add inserts p unless a proposal with the same name is present.
func (s *Set) Add(p Proposal) {
	if p.Name == "" {
		return
	}
	if s.items == nil {
		s.items = make(map[string]Proposal)
	}
	if _, ok := s.items[p.Name]; !ok {
		s.items[p.Name] = p
	}
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *Set) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.items[name]
	return ok
}

// Get returns the proposal for name.
func (s *Set) Get(name string) (Proposal, bool) {
	if s == nil {
		return Proposal{}, false
	}
	p, ok := s.items[name]
	return p, ok
}

// Names returns the proposal names sorted for display.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.items))
	for n := range s.items {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Proposals returns the proposals sorted by name.
func (s *Set) Proposals() []Proposal {
	names := s.Names()
	out := make([]Proposal, len(names))
	for i, n := range names {
		out[i] = s.items[n]
	}
	return out
}

// Retain returns a new set holding the proposals of s whose names are in
// keep. It can only narrow s.
func (s *Set) Retain(keep []string) *Set {
	out := NewSet(ContextName)
	if s == nil {
		return out
	}
	out.Context = s.Context
	for _, n := range keep {
		if p, ok := s.items[n]; ok {
			out.items[n] = p
		}
	}
	return out
}

// Resolve returns the proposals at pos. src is the text the cursor refers
// to, trigger dot included; tree may have been built from Prepare(src, pos).
func Resolve(tree *scope.Tree, src []byte, pos ast.Pos, opts Options) *Set {
	ctx, chain, ok := Classify(src, pos)
	set := NewSet(ctx)
	if !ok || tree == nil {
		return set
	}
	if tree.Program != nil && !tree.Program.Loc().Contains(pos) {
		return set
	}
	s := Locate(tree, pos)
	if ctx == ContextName {
		for _, b := range tree.Visible(s, pos) {
			set.Add(Proposal{Name: b.Name, Binding: b})
		}
		return set
	}
	if len(chain) == 0 {
		return set
	}
	types := tree.TypesOf(s, chain[0], pos, opts.Policy)
	for _, seg := range chain[1:] {
		types = tree.MemberTypes(types, seg, opts.Policy)
	}
	for _, t := range types {
		if t.Class == nil {
			continue
		}
		for _, b := range t.Class.Members() {
			set.Add(Proposal{Name: b.Name, Binding: b})
		}
	}
	return set
}

// Locate returns the innermost scope holding pos. It descends the tree
// through the nodes whose spans contain pos and enters a scope only when
// pos is inside that scope's body.
func Locate(tree *scope.Tree, pos ast.Pos) *scope.Scope {
	s := tree.Root
	var n ast.Node
	if tree.Program != nil {
		n = tree.Program
	}
	for n != nil {
		if sc := tree.ScopeFor(n); sc != nil && sc.Span.Contains(pos) {
			s = sc
		}
		var next ast.Node
		for _, ch := range ast.Children(n) {
			if ch.Loc().Contains(pos) {
				next = ch
			}
		}
		n = next
	}
	return s
}
