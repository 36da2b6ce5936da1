package ast

// Slot names a child position on a node. Single slots hold one node, list
// slots hold a *List.
type Slot uint8

const (
	SlotInvalid Slot = iota

	// Single slots
	SlotName
	SlotAlias
	SlotModule
	SlotSpec
	SlotBase
	SlotInit
	SlotBody
	SlotCond
	SlotThen
	SlotElse
	SlotExpr
	SlotLeft
	SlotRight
	SlotIndex
	SlotTarget
	SlotRange
	SlotPost
	SlotFinally
	SlotDecl
	SlotParams
	SlotKey
	SlotValue

	// List slots
	SlotNames
	SlotArgs
	SlotDecls
	SlotStmts
	SlotBases
	SlotAttrs
	SlotInits
	SlotCatches
	SlotGenerators
	SlotFilters

	slotCount
)

var slotNames = [slotCount]string{
	SlotName:       "Name",
	SlotAlias:      "Alias",
	SlotModule:     "Module",
	SlotSpec:       "Spec",
	SlotBase:       "Base",
	SlotInit:       "Init",
	SlotBody:       "Body",
	SlotCond:       "Cond",
	SlotThen:       "Then",
	SlotElse:       "Else",
	SlotExpr:       "Expr",
	SlotLeft:       "Left",
	SlotRight:      "Right",
	SlotIndex:      "Index",
	SlotTarget:     "Target",
	SlotRange:      "Range",
	SlotPost:       "Post",
	SlotFinally:    "Finally",
	SlotDecl:       "Decl",
	SlotParams:     "Params",
	SlotKey:        "Key",
	SlotValue:      "Value",
	SlotNames:      "Names",
	SlotArgs:       "Args",
	SlotDecls:      "Decls",
	SlotStmts:      "Stmts",
	SlotBases:      "Bases",
	SlotAttrs:      "Attrs",
	SlotInits:      "Inits",
	SlotCatches:    "Catches",
	SlotGenerators: "Generators",
	SlotFilters:    "Filters",
}

func (s Slot) String() string {
	if s == SlotInvalid || s >= slotCount {
		return ""
	}
	return slotNames[s]
}

// IsList reports whether s names a list slot.
func (s Slot) IsList() bool { return s >= SlotNames && s < slotCount }

// accept describes which nodes a slot or list admits: either any kind from
// a set of categories, or one exact kind.
type accept struct {
	cats uint8
	kind Kind
}

func cats(cs ...Category) accept {
	var a accept
	for _, c := range cs {
		a.cats |= 1 << c
	}
	return a
}

func exact(k Kind) accept { return accept{kind: k} }

func (a accept) admits(k Kind) bool {
	if !k.Valid() {
		return false
	}
	if a.kind != KindInvalid {
		return k == a.kind
	}
	return a.cats&(1<<k.Category()) != 0
}

// field binds a slot to the storage inside a concrete node. Exactly one of
// one and many is set.
type field struct {
	slot   Slot
	accept accept
	one    *Node
	many   **List
}

func single(s Slot, a accept, p *Node) field { return field{slot: s, accept: a, one: p} }
func list(s Slot, a accept, p **List) field  { return field{slot: s, accept: a, many: p} }

func lookup(n Node, s Slot) *field {
	for _, f := range n.fields() {
		if f.slot == s {
			return &f
		}
	}
	return nil
}
