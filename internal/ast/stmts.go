package ast

type BlockStmt struct {
	header
	Stmts *List
}

func NewBlockStmt() *BlockStmt { return &BlockStmt{header: newHeader(KindBlockStmt)} }

func (n *BlockStmt) fields() []field {
	return []field{list(SlotStmts, cats(CategoryStmt), &n.Stmts)}
}

type ExprStmt struct {
	header
	Expr Node
}

func NewExprStmt() *ExprStmt { return &ExprStmt{header: newHeader(KindExprStmt)} }

func (n *ExprStmt) fields() []field {
	return []field{single(SlotExpr, cats(CategoryExpr), &n.Expr)}
}

type DeclStmt struct {
	header
	Decl Node
}

func NewDeclStmt() *DeclStmt { return &DeclStmt{header: newHeader(KindDeclStmt)} }

func (n *DeclStmt) fields() []field {
	return []field{single(SlotDecl, cats(CategoryDecl), &n.Decl)}
}

// IfStmt chains elif/else if as a nested IfStmt in Else.
type IfStmt struct {
	header
	Cond    Node
	Then    Node
	Else    Node
	ElseLoc SourceLoc
}

func NewIfStmt() *IfStmt { return &IfStmt{header: newHeader(KindIfStmt)} }

func (n *IfStmt) fields() []field {
	return []field{
		single(SlotCond, cats(CategoryExpr), &n.Cond),
		single(SlotThen, cats(CategoryStmt), &n.Then),
		single(SlotElse, cats(CategoryStmt), &n.Else),
	}
}

// WhileStmt covers while and do-while loops. Else holds Python's loop else
// clause.
type WhileStmt struct {
	header
	Cond Node
	Body Node
	Else Node
}

func NewWhileStmt() *WhileStmt { return &WhileStmt{header: newHeader(KindWhileStmt)} }

func (n *WhileStmt) fields() []field {
	return []field{
		single(SlotCond, cats(CategoryExpr), &n.Cond),
		single(SlotBody, cats(CategoryStmt), &n.Body),
		single(SlotElse, cats(CategoryStmt), &n.Else),
	}
}

type ForStmt struct {
	header
	Init Node
	Cond Node
	Post Node
	Body Node
}

func NewForStmt() *ForStmt { return &ForStmt{header: newHeader(KindForStmt)} }

func (n *ForStmt) fields() []field {
	return []field{
		single(SlotInit, cats(CategoryStmt), &n.Init),
		single(SlotCond, cats(CategoryExpr), &n.Cond),
		single(SlotPost, cats(CategoryExpr), &n.Post),
		single(SlotBody, cats(CategoryStmt), &n.Body),
	}
}

// ForeachStmt iterates Range binding Target, which is an expression or a
// declaration.
type ForeachStmt struct {
	header
	Target Node
	Range  Node
	Body   Node
	Else   Node
}

func NewForeachStmt() *ForeachStmt { return &ForeachStmt{header: newHeader(KindForeachStmt)} }

func (n *ForeachStmt) fields() []field {
	return []field{
		single(SlotTarget, cats(CategoryExpr, CategoryDecl), &n.Target),
		single(SlotRange, cats(CategoryExpr), &n.Range),
		single(SlotBody, cats(CategoryStmt), &n.Body),
		single(SlotElse, cats(CategoryStmt), &n.Else),
	}
}

// JumpStmt is ReturnStmt, ThrowStmt, BreakStmt or ContinueStmt. Only
// return and throw carry an expression.
type JumpStmt struct {
	header
	Expr Node
}

func NewJumpStmt(k Kind) *JumpStmt {
	Assert(k == KindReturnStmt || k == KindThrowStmt || k == KindBreakStmt || k == KindContinueStmt,
		"%s is not a jump", k)
	return &JumpStmt{header: newHeader(k)}
}

func (n *JumpStmt) fields() []field {
	if n.kind == KindBreakStmt || n.kind == KindContinueStmt {
		return nil
	}
	return []field{single(SlotExpr, cats(CategoryExpr), &n.Expr)}
}

type TryStmt struct {
	header
	Body    Node
	Catches *List
	Else    Node
	Finally Node
}

func NewTryStmt() *TryStmt { return &TryStmt{header: newHeader(KindTryStmt)} }

func (n *TryStmt) fields() []field {
	return []field{
		single(SlotBody, cats(CategoryStmt), &n.Body),
		list(SlotCatches, exact(KindCatchClauseStmt), &n.Catches),
		single(SlotElse, cats(CategoryStmt), &n.Else),
		single(SlotFinally, cats(CategoryStmt), &n.Finally),
	}
}

// CatchClauseStmt binds the caught value through Decl, usually a
// ParamDecl whose Spec names the exception type.
type CatchClauseStmt struct {
	header
	Decl Node
	Body Node
}

func NewCatchClauseStmt() *CatchClauseStmt {
	return &CatchClauseStmt{header: newHeader(KindCatchClauseStmt)}
}

func (n *CatchClauseStmt) fields() []field {
	return []field{
		single(SlotDecl, cats(CategoryDecl), &n.Decl),
		single(SlotBody, cats(CategoryStmt), &n.Body),
	}
}

type WithStmt struct {
	header
	Expr   Node
	Target Node
	Body   Node
}

func NewWithStmt() *WithStmt { return &WithStmt{header: newHeader(KindWithStmt)} }

func (n *WithStmt) fields() []field {
	return []field{
		single(SlotExpr, cats(CategoryExpr), &n.Expr),
		single(SlotTarget, cats(CategoryExpr, CategoryDecl), &n.Target),
		single(SlotBody, cats(CategoryStmt), &n.Body),
	}
}

// LeafStmt carries no children: EmptyStmt, ErrorStmt.
type LeafStmt struct {
	header
}

func NewLeafStmt(k Kind) *LeafStmt {
	Assert(k == KindEmptyStmt || k == KindErrorStmt, "%s is not a leaf stmt", k)
	return &LeafStmt{header: newHeader(k)}
}
