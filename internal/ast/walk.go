package ast

// Children returns the direct children of n in source order. Empty slots
// are skipped.
func Children(n Node) []Node {
	if IsNil(n) {
		return nil
	}
	var out []Node
	for _, f := range n.fields() {
		switch {
		case f.one != nil:
			if !IsNil(*f.one) {
				out = append(out, *f.one)
			}
		case f.many != nil:
			out = append(out, (*f.many).Items()...)
		}
	}
	return out
}

// Inspect traverses the tree rooted at n depth-first. If fn returns false
// the children of that node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if IsNil(n) || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

// Get returns the child held in the single slot s of n, or nil.
func Get(n Node, s Slot) Node {
	if IsNil(n) {
		return nil
	}
	f := lookup(n, s)
	if f == nil || f.one == nil {
		return nil
	}
	return *f.one
}

// GetList returns the list held in slot s of n, or nil.
func GetList(n Node, s Slot) *List {
	if IsNil(n) {
		return nil
	}
	f := lookup(n, s)
	if f == nil || f.many == nil {
		return nil
	}
	return *f.many
}
