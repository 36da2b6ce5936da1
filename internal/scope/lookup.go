package scope

import "github.com/jward/frond/internal/ast"

// Lookup returns the bindings of name visible from s at pos.
//
// A name declared anywhere in s is resolved in s alone, using the
// bindings that reach pos; the result may be empty when every binding
// comes later. Otherwise enclosing scopes are searched outward, each
// contributing the bindings live at its end. Class scopes are skipped
// there: class attributes are not in scope inside method bodies.
func (t *Tree) Lookup(s *Scope, name string, pos ast.Pos) []*Binding {
	if s == nil || name == "" {
		return nil
	}
	if s.Has(name) {
		return s.Reaching(name, pos)
	}
	for p := s.Parent; p != nil; p = p.Parent {
		if p.Kind == KindClass {
			continue
		}
		if p.Has(name) {
			return p.ReachingAtEnd(name)
		}
	}
	return nil
}

// TypesOf merges the candidate types of name as seen from s at pos.
func (t *Tree) TypesOf(s *Scope, name string, pos ast.Pos, p MergePolicy) []Type {
	return Merge(t.Lookup(s, name, pos), p)
}

// MemberTypes returns the candidate types of member name across types.
func (t *Tree) MemberTypes(types []Type, name string, p MergePolicy) []Type {
	var bs []*Binding
	for _, ty := range types {
		if ty.Class == nil {
			continue
		}
		bs = unionBindings(bs, ty.Class.Member(name))
	}
	return Merge(bs, p)
}

// Visible returns one binding per name visible from s at pos. Names from
// inner scopes shadow the same name further out, even when the inner
// binding does not reach pos.
func (t *Tree) Visible(s *Scope, pos ast.Pos) []*Binding {
	if s == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []*Binding
	collect := func(sc *Scope, reaching func(string) []*Binding) {
		for _, name := range sc.order {
			if seen[name] {
				continue
			}
			seen[name] = true
			if bs := reaching(name); len(bs) > 0 {
				out = append(out, bs[len(bs)-1])
			}
		}
	}
	collect(s, func(n string) []*Binding { return s.Reaching(n, pos) })
	for p := s.Parent; p != nil; p = p.Parent {
		if p.Kind == KindClass {
			continue
		}
		collect(p, p.ReachingAtEnd)
	}
	return out
}
