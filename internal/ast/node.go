// Package ast defines the syntax tree shared by every language front end.
//
// A tree is built bottom-up: children are constructed first and handed to
// their parent through Set, Add, Merge or SetList, which transfer ownership.
// A node has at most one owner and a tree never contains a cycle. Once a
// Program is handed to the scope builder it is treated as immutable.
//
// Every node reports one Kind from a closed enumeration. Kinds are
// partitioned into six categories (Name, Spec, Attr, Decl, Expr, Stmt);
// Program, Generator and Filter belong to none of them.
package ast

import "reflect"

// Pos is a 1-based line and column. Columns count characters, not bytes.
type Pos struct {
	Line int
	Col  int
}

// IsValid reports whether p is a real position.
func (p Pos) IsValid() bool { return p.Line > 0 && p.Col > 0 }

// Before reports whether p precedes q.
func (p Pos) Before(q Pos) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// SourceLoc is a span of source text. End is exclusive.
type SourceLoc struct {
	Start Pos
	End   Pos
}

func (l SourceLoc) IsValid() bool { return l.Start.IsValid() && l.End.IsValid() }

// Contains reports whether p lies within l. The end position is included so
// that a cursor placed right after the last character of a construct still
// counts as inside it.
func (l SourceLoc) Contains(p Pos) bool {
	if !l.IsValid() || !p.IsValid() {
		return false
	}
	return !p.Before(l.Start) && !l.End.Before(p)
}

// Join returns the smallest span covering l and o. Invalid spans are ignored.
func (l SourceLoc) Join(o SourceLoc) SourceLoc {
	switch {
	case !l.IsValid():
		return o
	case !o.IsValid():
		return l
	}
	if o.Start.Before(l.Start) {
		l.Start = o.Start
	}
	if l.End.Before(o.End) {
		l.End = o.End
	}
	return l
}

// Variety distinguishes structural sub-forms that share one Kind.
type Variety uint8

const (
	VarietyNone Variety = iota
	VarietyClass
	VarietyStruct
	VarietyInterface
	VarietyFunction
	VarietyMethod
	VarietyConstructor
	VarietyVar
	VarietyLet
	VarietyConst
	VarietyCall
	VarietyNew
	VarietyPlain
	VarietyAugmented
	VarietyImplicit
	VarietyVariadic
	VarietyList
	VarietyTuple
	VarietySet
)

var varietyNames = [...]string{
	VarietyNone:        "",
	VarietyClass:       "class",
	VarietyStruct:      "struct",
	VarietyInterface:   "interface",
	VarietyFunction:    "function",
	VarietyMethod:      "method",
	VarietyConstructor: "constructor",
	VarietyVar:         "var",
	VarietyLet:         "let",
	VarietyConst:       "const",
	VarietyCall:        "call",
	VarietyNew:         "new",
	VarietyPlain:       "plain",
	VarietyAugmented:   "augmented",
	VarietyImplicit:    "implicit",
	VarietyVariadic:    "variadic",
	VarietyList:        "list",
	VarietyTuple:       "tuple",
	VarietySet:         "set",
}

func (v Variety) String() string {
	if int(v) >= len(varietyNames) {
		return ""
	}
	return varietyNames[v]
}

// Alloc tags how a node was allocated. Only heap allocation exists today.
type Alloc uint8

const AllocHeap Alloc = 0

// Node is implemented by every tree element.
type Node interface {
	Kind() Kind
	Variety() Variety
	Alloc() Alloc
	Loc() SourceLoc

	IsName() bool
	IsSpec() bool
	IsAttr() bool
	IsDecl() bool
	IsExpr() bool
	IsStmt() bool

	base() *header
	fields() []field
}

// header is embedded by every concrete node.
type header struct {
	kind    Kind
	variety Variety
	loc     SourceLoc
	owned   bool
}

func newHeader(k Kind) header {
	Assert(k.Valid(), "constructing node of kind %d", uint16(k))
	return header{kind: k}
}

func (h *header) Kind() Kind         { return h.kind }
func (h *header) Variety() Variety   { return h.variety }
func (h *header) Alloc() Alloc       { return AllocHeap }
func (h *header) Loc() SourceLoc     { return h.loc }
func (h *header) SetLoc(l SourceLoc) { h.loc = l }

// SetVariety replaces the node's sub-form discriminant.
func (h *header) SetVariety(v Variety) { h.variety = v }

// Owned reports whether the node has been attached to a parent.
func (h *header) Owned() bool { return h.owned }

func (h *header) IsName() bool { return h.kind.Category() == CategoryName }
func (h *header) IsSpec() bool { return h.kind.Category() == CategorySpec }
func (h *header) IsAttr() bool { return h.kind.Category() == CategoryAttr }
func (h *header) IsDecl() bool { return h.kind.Category() == CategoryDecl }
func (h *header) IsExpr() bool { return h.kind.Category() == CategoryExpr }
func (h *header) IsStmt() bool { return h.kind.Category() == CategoryStmt }

func (h *header) base() *header { return h }

// fields is overridden by every node that carries child slots.
func (h *header) fields() []field { return nil }

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
