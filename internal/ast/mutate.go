package ast

import "fmt"

// Result reports whether a mutation took effect.
type Result bool

const (
	Unsupported Result = false
	Applied     Result = true
)

func (r Result) String() string {
	if r {
		return "applied"
	}
	return "unsupported"
}

// Supports reports whether n carries slot s.
func Supports(n Node, s Slot) bool {
	if IsNil(n) {
		return false
	}
	return lookup(n, s) != nil
}

// Set places child in the single slot s of n, transferring ownership and
// releasing the previous occupant. A nil child clears the slot. The call is
// a no-op returning Unsupported when n has no such slot, the slot does not
// admit child's kind, child already has an owner, or attaching child would
// create a cycle.
func Set(n Node, s Slot, child Node) Result {
	if IsNil(n) {
		return Unsupported
	}
	f := lookup(n, s)
	if f == nil || f.one == nil {
		return Unsupported
	}
	if IsNil(child) {
		release(*f.one)
		*f.one = nil
		return Applied
	}
	ch := child.base()
	if ch.owned || !f.accept.admits(ch.kind) || child == n {
		return Unsupported
	}
	if n.base().owned && contains(child, n) {
		return Unsupported
	}
	release(*f.one)
	ch.owned = true
	*f.one = child
	return Applied
}

// Add appends item to the list slot s of n, creating the list on first use.
func Add(n Node, s Slot, item Node) Result {
	if IsNil(n) || IsNil(item) {
		return Unsupported
	}
	f := lookup(n, s)
	if f == nil || f.many == nil {
		return Unsupported
	}
	if item == n || item.base().owned || !f.accept.admits(item.Kind()) {
		return Unsupported
	}
	if n.base().owned && contains(item, n) {
		return Unsupported
	}
	if *f.many == nil {
		*f.many = &List{elem: f.accept, owned: true}
	}
	return (*f.many).Append(item)
}

// Merge moves the elements of other onto the list slot s of n and consumes
// other.
func Merge(n Node, s Slot, other *List) Result {
	if IsNil(n) || other == nil {
		return Unsupported
	}
	f := lookup(n, s)
	if f == nil || f.many == nil || other.elem != f.accept {
		return Unsupported
	}
	if n.base().owned {
		for _, it := range other.items {
			if it == n || contains(it, n) {
				return Unsupported
			}
		}
	}
	if *f.many == nil {
		if other.owned || other.consumed {
			return Unsupported
		}
		*f.many = &List{elem: f.accept, owned: true}
	}
	return (*f.many).Merge(other)
}

// SetList replaces the list slot s of n with l, discarding the previous
// list. A nil l clears the slot.
func SetList(n Node, s Slot, l *List) Result {
	if IsNil(n) {
		return Unsupported
	}
	f := lookup(n, s)
	if f == nil || f.many == nil {
		return Unsupported
	}
	if l == nil {
		releaseList(*f.many)
		*f.many = nil
		return Applied
	}
	if l.owned || l.consumed || l.elem != f.accept || l == *f.many {
		return Unsupported
	}
	if n.base().owned {
		for _, it := range l.items {
			if it == n || contains(it, n) {
				return Unsupported
			}
		}
	}
	releaseList(*f.many)
	l.owned = true
	*f.many = l
	return Applied
}

// release detaches a discarded child so it could be attached elsewhere.
func release(n Node) {
	if !IsNil(n) {
		n.base().owned = false
	}
}

func releaseList(l *List) {
	if l != nil {
		l.owned = false
	}
}

// contains reports whether target occurs in the subtree rooted at root.
func contains(root, target Node) bool {
	found := false
	Inspect(root, func(n Node) bool {
		if found {
			return false
		}
		if n == target {
			found = true
			return false
		}
		return true
	})
	return found
}

// UnsupportedError records a mutation a node did not accept.
type UnsupportedError struct {
	Op   string
	Kind Kind
	Slot Slot
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("ast: %s %s on %s: unsupported", e.Op, e.Slot, e.Kind)
}

// Builder chains mutations on one node, left to right. The first mutation
// that does not apply is recorded and the rest still run.
type Builder[T Node] struct {
	n   T
	err *UnsupportedError
}

// Build starts a chain of mutations on n.
func Build[T Node](n T) *Builder[T] {
	return &Builder[T]{n: n}
}

func (b *Builder[T]) record(op string, s Slot, r Result) *Builder[T] {
	if r == Unsupported && b.err == nil {
		b.err = &UnsupportedError{Op: op, Kind: b.n.Kind(), Slot: s}
	}
	return b
}

func (b *Builder[T]) Set(s Slot, child Node) *Builder[T] {
	return b.record("set", s, Set(b.n, s, child))
}

// Opt sets child only when it is present, leaving the slot empty otherwise.
func (b *Builder[T]) Opt(s Slot, child Node) *Builder[T] {
	if IsNil(child) {
		return b
	}
	return b.Set(s, child)
}

func (b *Builder[T]) Add(s Slot, items ...Node) *Builder[T] {
	for _, it := range items {
		if IsNil(it) {
			continue
		}
		b.record("add", s, Add(b.n, s, it))
	}
	return b
}

func (b *Builder[T]) Merge(s Slot, other *List) *Builder[T] {
	return b.record("merge", s, Merge(b.n, s, other))
}

func (b *Builder[T]) SetList(s Slot, l *List) *Builder[T] {
	return b.record("setlist", s, SetList(b.n, s, l))
}

// At sets the node's source span.
func (b *Builder[T]) At(loc SourceLoc) *Builder[T] {
	b.n.base().loc = loc
	return b
}

// Variety sets the node's sub-form discriminant.
func (b *Builder[T]) Variety(v Variety) *Builder[T] {
	b.n.base().variety = v
	return b
}

// Node returns the node under construction.
func (b *Builder[T]) Node() T { return b.n }

// Err returns the first unsupported mutation, if any.
func (b *Builder[T]) Err() error {
	if b.err == nil {
		return nil
	}
	return b.err
}
