package ast

// ImportGroupDecl is one import statement. Module names the source module
// for "from m import a, b" forms and is empty for plain imports.
type ImportGroupDecl struct {
	header
	Module Node
	Decls  *List
}

func NewImportGroupDecl() *ImportGroupDecl {
	return &ImportGroupDecl{header: newHeader(KindImportGroupDecl)}
}

func (n *ImportGroupDecl) fields() []field {
	return []field{
		single(SlotModule, cats(CategoryName), &n.Module),
		list(SlotDecls, cats(CategoryDecl), &n.Decls),
	}
}

// ImportDecl binds Alias if present, else the first component of Name.
type ImportDecl struct {
	header
	Name  Node
	Alias Node
}

func NewImportDecl() *ImportDecl { return &ImportDecl{header: newHeader(KindImportDecl)} }

func (n *ImportDecl) fields() []field {
	return []field{
		single(SlotName, cats(CategoryName), &n.Name),
		single(SlotAlias, cats(CategoryName), &n.Alias),
	}
}

// VarGroupDecl declares several variables sharing one specifier and
// storage variety (var, let, const).
type VarGroupDecl struct {
	header
	Spec  Node
	Decls *List
}

func NewVarGroupDecl(v Variety) *VarGroupDecl {
	n := &VarGroupDecl{header: newHeader(KindVarGroupDecl)}
	n.variety = v
	return n
}

func (n *VarGroupDecl) fields() []field {
	return []field{
		single(SlotSpec, cats(CategorySpec), &n.Spec),
		list(SlotDecls, cats(CategoryDecl), &n.Decls),
	}
}

type VarDecl struct {
	header
	Name Node
	Spec Node
	Init Node
}

func NewVarDecl() *VarDecl { return &VarDecl{header: newHeader(KindVarDecl)} }

func (n *VarDecl) fields() []field {
	return []field{
		single(SlotName, cats(CategoryName), &n.Name),
		single(SlotSpec, cats(CategorySpec), &n.Spec),
		single(SlotInit, cats(CategoryExpr), &n.Init),
	}
}

type ParamGroupDecl struct {
	header
	Decls *List
}

func NewParamGroupDecl() *ParamGroupDecl {
	return &ParamGroupDecl{header: newHeader(KindParamGroupDecl)}
}

func (n *ParamGroupDecl) fields() []field {
	return []field{list(SlotDecls, cats(CategoryDecl), &n.Decls)}
}

// ParamDecl is one parameter. VarietyImplicit marks a receiver the
// language does not spell out (JavaScript's this), VarietyVariadic a rest
// parameter.
type ParamDecl struct {
	header
	Name Node
	Spec Node
	Init Node
}

func NewParamDecl() *ParamDecl { return &ParamDecl{header: newHeader(KindParamDecl)} }

func (n *ParamDecl) fields() []field {
	return []field{
		single(SlotName, cats(CategoryName), &n.Name),
		single(SlotSpec, cats(CategorySpec), &n.Spec),
		single(SlotInit, cats(CategoryExpr), &n.Init),
	}
}

// FuncDecl is a function, method or constructor, told apart by Variety.
type FuncDecl struct {
	header
	Attrs  *List
	Name   Node
	Params Node
	Spec   Node
	Body   Node
}

func NewFuncDecl(v Variety) *FuncDecl {
	n := &FuncDecl{header: newHeader(KindFuncDecl)}
	n.variety = v
	return n
}

func (n *FuncDecl) fields() []field {
	return []field{
		list(SlotAttrs, cats(CategoryAttr), &n.Attrs),
		single(SlotName, cats(CategoryName), &n.Name),
		single(SlotParams, exact(KindParamGroupDecl), &n.Params),
		single(SlotSpec, cats(CategorySpec), &n.Spec),
		single(SlotBody, cats(CategoryStmt), &n.Body),
	}
}

// HasAttr reports whether the declaration carries a DeclAttr with text.
func (n *FuncDecl) HasAttr(text string) bool { return hasAttr(n.Attrs, text) }

// RecordDecl is a class, struct or interface.
type RecordDecl struct {
	header
	Attrs *List
	Name  Node
	Bases *List
	Body  Node
}

func NewRecordDecl(v Variety) *RecordDecl {
	n := &RecordDecl{header: newHeader(KindRecordDecl)}
	n.variety = v
	return n
}

func (n *RecordDecl) fields() []field {
	return []field{
		list(SlotAttrs, cats(CategoryAttr), &n.Attrs),
		single(SlotName, cats(CategoryName), &n.Name),
		list(SlotBases, exact(KindBaseDecl), &n.Bases),
		single(SlotBody, cats(CategoryStmt), &n.Body),
	}
}

type BaseDecl struct {
	header
	Name Node
}

func NewBaseDecl() *BaseDecl { return &BaseDecl{header: newHeader(KindBaseDecl)} }

func (n *BaseDecl) fields() []field {
	return []field{single(SlotName, cats(CategoryName), &n.Name)}
}

// LeafDecl carries no children: ErrorDecl.
type LeafDecl struct {
	header
}

func NewLeafDecl(k Kind) *LeafDecl {
	Assert(k == KindErrorDecl, "%s is not a leaf decl", k)
	return &LeafDecl{header: newHeader(k)}
}

func hasAttr(attrs *List, text string) bool {
	for _, it := range attrs.Items() {
		if a, ok := it.(*DeclAttr); ok && a.Text == text {
			return true
		}
	}
	return false
}
