package scope

import "github.com/jward/frond/internal/ast"

// block is a straight-line run of flow items: bindings in the order they
// take effect, and the conditional constructs between them.
type block struct {
	items []item
}

type item struct {
	binding *Binding
	branch  *branch
}

// branch is one conditional construct. When exhaustive, exactly one arm
// always runs; otherwise control may skip every arm.
type branch struct {
	id         int
	loc        ast.SourceLoc
	arms       []*arm
	exhaustive bool
}

type arm struct {
	loc  ast.SourceLoc
	body *block
}

// reach returns the bindings of name live after running blk from the
// state in. With a cursor, the walk stops at the first item at or after
// it and only the arm holding the cursor is followed.
func reach(blk *block, name string, in []*Binding, cur *ast.Pos) (state []*Binding, stopped bool) {
	state = in
	for _, it := range blk.items {
		if b := it.binding; b != nil {
			if b.Name != name {
				continue
			}
			if cur != nil && !b.At.Before(*cur) {
				return state, true
			}
			state = []*Binding{b}
			continue
		}
		br := it.branch
		if cur != nil {
			if !br.loc.Start.Before(*cur) {
				return state, true
			}
			for _, a := range br.arms {
				if a.loc.Contains(*cur) {
					out, _ := reach(a.body, name, state, cur)
					return out, true
				}
			}
			if br.loc.Contains(*cur) {
				return state, true
			}
		}
		var merged []*Binding
		for _, a := range br.arms {
			out, _ := reach(a.body, name, state, nil)
			merged = unionBindings(merged, out)
		}
		if !br.exhaustive {
			merged = unionBindings(merged, state)
		}
		state = merged
	}
	return state, false
}

func unionBindings(dst, src []*Binding) []*Binding {
	for _, b := range src {
		dup := false
		for _, d := range dst {
			if d == b {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, b)
		}
	}
	return dst
}

// Reaching returns the bindings of name declared in s that may be live at
// pos. Later definite assignments hide earlier ones; a binding made inside
// a branch that can be skipped merges with whatever was live before it.
func (s *Scope) Reaching(name string, pos ast.Pos) []*Binding {
	if !s.Has(name) {
		return nil
	}
	out, _ := reach(s.flow, name, nil, &pos)
	return out
}

// ReachingAtEnd returns the bindings of name live once the whole scope
// body has run.
func (s *Scope) ReachingAtEnd(name string) []*Binding {
	if !s.Has(name) {
		return nil
	}
	out, _ := reach(s.flow, name, nil, nil)
	return out
}
