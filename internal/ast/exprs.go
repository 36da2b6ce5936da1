package ast

type IdentExpr struct {
	header
	Name Node
}

func NewIdentExpr() *IdentExpr { return &IdentExpr{header: newHeader(KindIdentExpr)} }

func (n *IdentExpr) fields() []field {
	return []field{single(SlotName, cats(CategoryName), &n.Name)}
}

// LitExpr is a literal: NumLitExpr, StrLitExpr, BoolLitExpr, NullLitExpr.
// Text is the literal as written.
type LitExpr struct {
	header
	Text string
}

func NewLitExpr(k Kind, text string) *LitExpr {
	Assert(k == KindNumLitExpr || k == KindStrLitExpr || k == KindBoolLitExpr || k == KindNullLitExpr,
		"%s is not a literal", k)
	return &LitExpr{header: newHeader(k), Text: text}
}

// LeafExpr carries no children: ThisExpr, SuperExpr, ErrorExpr.
type LeafExpr struct {
	header
}

func NewLeafExpr(k Kind) *LeafExpr {
	Assert(k == KindThisExpr || k == KindSuperExpr || k == KindErrorExpr, "%s is not a leaf expr", k)
	return &LeafExpr{header: newHeader(k)}
}

// CallExpr is a call; VarietyNew marks a constructor call spelled with new.
type CallExpr struct {
	header
	Base Node
	Args *List
}

func NewCallExpr(v Variety) *CallExpr {
	n := &CallExpr{header: newHeader(KindCallExpr)}
	n.variety = v
	return n
}

func (n *CallExpr) fields() []field {
	return []field{
		single(SlotBase, cats(CategoryExpr), &n.Base),
		list(SlotArgs, cats(CategoryExpr), &n.Args),
	}
}

type MemberAccessExpr struct {
	header
	Base   Node
	Name   Node
	DotLoc SourceLoc
}

func NewMemberAccessExpr() *MemberAccessExpr {
	return &MemberAccessExpr{header: newHeader(KindMemberAccessExpr)}
}

func (n *MemberAccessExpr) fields() []field {
	return []field{
		single(SlotBase, cats(CategoryExpr), &n.Base),
		single(SlotName, cats(CategoryName), &n.Name),
	}
}

type SubscriptExpr struct {
	header
	Base  Node
	Index Node
}

func NewSubscriptExpr() *SubscriptExpr { return &SubscriptExpr{header: newHeader(KindSubscriptExpr)} }

func (n *SubscriptExpr) fields() []field {
	return []field{
		single(SlotBase, cats(CategoryExpr), &n.Base),
		single(SlotIndex, cats(CategoryExpr), &n.Index),
	}
}

// AssignExpr is "Left = Right". Chained assignments nest to the right.
// VarietyAugmented marks compound operators such as +=; Op holds the
// operator text. Right may be absent in incomplete source.
type AssignExpr struct {
	header
	Left  Node
	Right Node
	Op    string
}

func NewAssignExpr(v Variety, op string) *AssignExpr {
	n := &AssignExpr{header: newHeader(KindAssignExpr), Op: op}
	n.variety = v
	return n
}

func (n *AssignExpr) fields() []field {
	return []field{
		single(SlotLeft, cats(CategoryExpr), &n.Left),
		single(SlotRight, cats(CategoryExpr), &n.Right),
	}
}

type BinaryExpr struct {
	header
	Left  Node
	Right Node
	Op    string
}

func NewBinaryExpr(op string) *BinaryExpr {
	return &BinaryExpr{header: newHeader(KindBinaryExpr), Op: op}
}

func (n *BinaryExpr) fields() []field {
	return []field{
		single(SlotLeft, cats(CategoryExpr), &n.Left),
		single(SlotRight, cats(CategoryExpr), &n.Right),
	}
}

type UnaryExpr struct {
	header
	Expr Node
	Op   string
}

func NewUnaryExpr(op string) *UnaryExpr {
	return &UnaryExpr{header: newHeader(KindUnaryExpr), Op: op}
}

func (n *UnaryExpr) fields() []field {
	return []field{single(SlotExpr, cats(CategoryExpr), &n.Expr)}
}

type CondExpr struct {
	header
	Cond Node
	Then Node
	Else Node
}

func NewCondExpr() *CondExpr { return &CondExpr{header: newHeader(KindCondExpr)} }

func (n *CondExpr) fields() []field {
	return []field{
		single(SlotCond, cats(CategoryExpr), &n.Cond),
		single(SlotThen, cats(CategoryExpr), &n.Then),
		single(SlotElse, cats(CategoryExpr), &n.Else),
	}
}

// CompositeExpr is ArrayLitExpr (list, tuple or set by Variety) or
// RecordLitExpr, whose Inits are DesignateExprs.
type CompositeExpr struct {
	header
	Inits *List
}

func NewCompositeExpr(k Kind, v Variety) *CompositeExpr {
	Assert(k == KindArrayLitExpr || k == KindRecordLitExpr, "%s is not a composite literal", k)
	n := &CompositeExpr{header: newHeader(k)}
	n.variety = v
	return n
}

func (n *CompositeExpr) fields() []field {
	return []field{list(SlotInits, cats(CategoryExpr), &n.Inits)}
}

// DesignateExpr is "Key: Value" inside a record literal.
type DesignateExpr struct {
	header
	Key   Node
	Value Node
}

func NewDesignateExpr() *DesignateExpr { return &DesignateExpr{header: newHeader(KindDesignateExpr)} }

func (n *DesignateExpr) fields() []field {
	return []field{
		single(SlotKey, cats(CategoryExpr, CategoryName), &n.Key),
		single(SlotValue, cats(CategoryExpr), &n.Value),
	}
}

// FuncLitExpr is an anonymous function. Body is a statement for block
// bodies and an expression for lambdas and concise arrows.
type FuncLitExpr struct {
	header
	Params Node
	Body   Node
}

func NewFuncLitExpr() *FuncLitExpr { return &FuncLitExpr{header: newHeader(KindFuncLitExpr)} }

func (n *FuncLitExpr) fields() []field {
	return []field{
		single(SlotParams, exact(KindParamGroupDecl), &n.Params),
		single(SlotBody, cats(CategoryStmt, CategoryExpr), &n.Body),
	}
}

type ListCompExpr struct {
	header
	Expr       Node
	Generators *List
	Filters    *List
}

func NewListCompExpr(v Variety) *ListCompExpr {
	n := &ListCompExpr{header: newHeader(KindListCompExpr)}
	n.variety = v
	return n
}

func (n *ListCompExpr) fields() []field {
	return []field{
		single(SlotExpr, cats(CategoryExpr), &n.Expr),
		list(SlotGenerators, exact(KindGenerator), &n.Generators),
		list(SlotFilters, exact(KindFilter), &n.Filters),
	}
}
