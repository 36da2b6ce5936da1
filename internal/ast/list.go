package ast

// List is an ordered, homogeneous sequence of nodes. Its element type is a
// category (or, for the top-level kinds, one exact kind) fixed at creation.
//
// A List is not a Node: it has no Kind of its own and is reached only
// through the list slot of the node that owns it. Walks, parent links and
// the kind table therefore deal in real syntax nodes only, and a slot's
// element category stands in for the single kind a standalone list node
// would carry. It is owned by at most one node slot, and once merged into
// another list it is consumed and rejects further use.
type List struct {
	elem     accept
	items    []Node
	owned    bool
	consumed bool
}

// NewList returns an empty list admitting nodes of the given category.
func NewList(c Category) *List {
	Assert(c != CategoryNone, "list of category none")
	return &List{elem: cats(c)}
}

// NewKindList returns an empty list admitting only nodes of kind k.
func NewKindList(k Kind) *List {
	Assert(k.Valid(), "list of kind %d", uint16(k))
	return &List{elem: exact(k)}
}

// Append adds n to the end of the list and takes ownership of it. It fails
// when the list is consumed, n is nil or already owned, or n's kind is not
// admitted.
func (l *List) Append(n Node) Result {
	if l == nil || l.consumed || IsNil(n) {
		return Unsupported
	}
	h := n.base()
	if h.owned || !l.elem.admits(h.kind) {
		return Unsupported
	}
	h.owned = true
	l.items = append(l.items, n)
	return Applied
}

// Merge moves every element of other onto the end of l, preserving order.
// other is left empty and consumed. An owned list cannot be merged away from
// its node, and lists with different element types do not mix.
func (l *List) Merge(other *List) Result {
	if l == nil || other == nil || l == other || l.consumed || other.consumed || other.owned {
		return Unsupported
	}
	if l.elem != other.elem {
		return Unsupported
	}
	l.items = append(l.items, other.items...)
	other.items = nil
	other.consumed = true
	return Applied
}

// Len returns the number of elements. A nil list is empty.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the i'th element, or nil when i is out of range.
func (l *List) At(i int) Node {
	if l == nil || i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Items returns the elements. The slice must not be modified.
func (l *List) Items() []Node {
	if l == nil {
		return nil
	}
	return l.items
}

// Consumed reports whether the list was merged into another one.
func (l *List) Consumed() bool { return l != nil && l.consumed }

// Loc spans the first to the last element.
func (l *List) Loc() SourceLoc {
	var loc SourceLoc
	for _, n := range l.Items() {
		loc = loc.Join(n.Loc())
	}
	return loc
}
