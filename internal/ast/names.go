package ast

// Name is a single identifier. It serves SimpleName, SpecialName (keywords
// used as names, such as "self" or "__init__" in some front ends),
// CompletionName (the placeholder at a completion point) and ErrorName.
type Name struct {
	header
	Text string
}

func NewName(k Kind, text string) *Name {
	Assert(k == KindSimpleName || k == KindSpecialName || k == KindCompletionName || k == KindErrorName,
		"%s is not a leaf name", k)
	return &Name{header: newHeader(k), Text: text}
}

// NestedName is a qualified name such as a.b.c.
type NestedName struct {
	header
	Names *List
}

func NewNestedName() *NestedName { return &NestedName{header: newHeader(KindNestedName)} }

func (n *NestedName) fields() []field {
	return []field{list(SlotNames, cats(CategoryName), &n.Names)}
}

// GenName is a name applied to type arguments.
type GenName struct {
	header
	Name Node
	Args *List
}

func NewGenName() *GenName { return &GenName{header: newHeader(KindGenName)} }

func (n *GenName) fields() []field {
	return []field{
		single(SlotName, cats(CategoryName), &n.Name),
		list(SlotArgs, cats(CategorySpec), &n.Args),
	}
}

// NamedSpec refers to a type by name.
type NamedSpec struct {
	header
	Name Node
}

func NewNamedSpec() *NamedSpec { return &NamedSpec{header: newHeader(KindNamedSpec)} }

func (n *NamedSpec) fields() []field {
	return []field{single(SlotName, cats(CategoryName), &n.Name)}
}

// ElemSpec wraps an element type: ArraySpec and PtrSpec.
type ElemSpec struct {
	header
	Base Node
}

func NewElemSpec(k Kind) *ElemSpec {
	Assert(k == KindArraySpec || k == KindPtrSpec, "%s is not an element spec", k)
	return &ElemSpec{header: newHeader(k)}
}

func (n *ElemSpec) fields() []field {
	return []field{single(SlotBase, cats(CategorySpec), &n.Base)}
}

type FuncSpec struct {
	header
	Params Node
	Result Node
}

func NewFuncSpec() *FuncSpec { return &FuncSpec{header: newHeader(KindFuncSpec)} }

func (n *FuncSpec) fields() []field {
	return []field{
		single(SlotParams, exact(KindParamGroupDecl), &n.Params),
		single(SlotSpec, cats(CategorySpec), &n.Result),
	}
}

// LeafSpec carries no children: InferredSpec, OpaqueSpec, ErrorSpec.
type LeafSpec struct {
	header
}

func NewLeafSpec(k Kind) *LeafSpec {
	Assert(k == KindInferredSpec || k == KindOpaqueSpec || k == KindErrorSpec, "%s is not a leaf spec", k)
	return &LeafSpec{header: newHeader(k)}
}

// DeclAttr is a modifier keyword on a declaration, such as "static" or
// "async".
type DeclAttr struct {
	header
	Text string
}

func NewDeclAttr(text string) *DeclAttr {
	return &DeclAttr{header: newHeader(KindDeclAttr), Text: text}
}

type DecoratorAttr struct {
	header
	Expr Node
}

func NewDecoratorAttr() *DecoratorAttr { return &DecoratorAttr{header: newHeader(KindDecoratorAttr)} }

func (n *DecoratorAttr) fields() []field {
	return []field{single(SlotExpr, cats(CategoryExpr), &n.Expr)}
}

// NameText returns the text of a leaf name, or the dotted text of a nested
// one. Other nodes yield "".
func NameText(n Node) string {
	switch x := n.(type) {
	case *Name:
		if x != nil {
			return x.Text
		}
	case *NestedName:
		if x == nil {
			return ""
		}
		var s string
		for i, it := range x.Names.Items() {
			if i > 0 {
				s += "."
			}
			s += NameText(it)
		}
		return s
	case *GenName:
		if x != nil {
			return NameText(x.Name)
		}
	}
	return ""
}
