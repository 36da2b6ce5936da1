package ast

// Program is the root of one parsed source unit.
type Program struct {
	header
	Stmts *List

	// Lang is the language tag of the front end that built the tree.
	Lang string
	// Offside is set for languages whose blocks end by dedent. Their block
	// spans extend to the end of the last line for cursor containment.
	Offside bool
	// Path is the virtual path of the source unit.
	Path string
}

func NewProgram(lang string) *Program {
	return &Program{header: newHeader(KindProgram), Lang: lang}
}

func (n *Program) fields() []field {
	return []field{list(SlotStmts, cats(CategoryStmt), &n.Stmts)}
}

// Generator is one "for Target in Range" clause of a comprehension.
type Generator struct {
	header
	Target Node
	Range  Node
}

func NewGenerator() *Generator { return &Generator{header: newHeader(KindGenerator)} }

func (n *Generator) fields() []field {
	return []field{
		single(SlotTarget, cats(CategoryExpr), &n.Target),
		single(SlotRange, cats(CategoryExpr), &n.Range),
	}
}

// Filter is one "if Cond" clause of a comprehension.
type Filter struct {
	header
	Cond Node
}

func NewFilter() *Filter { return &Filter{header: newHeader(KindFilter)} }

func (n *Filter) fields() []field {
	return []field{single(SlotCond, cats(CategoryExpr), &n.Cond)}
}

// New constructs an empty node of kind k, or returns nil for an invalid
// kind.
func New(k Kind) Node {
	switch k {
	case KindSimpleName, KindSpecialName, KindCompletionName, KindErrorName:
		return NewName(k, "")
	case KindNestedName:
		return NewNestedName()
	case KindGenName:
		return NewGenName()
	case KindNamedSpec:
		return NewNamedSpec()
	case KindArraySpec, KindPtrSpec:
		return NewElemSpec(k)
	case KindFuncSpec:
		return NewFuncSpec()
	case KindInferredSpec, KindOpaqueSpec, KindErrorSpec:
		return NewLeafSpec(k)
	case KindDeclAttr:
		return NewDeclAttr("")
	case KindDecoratorAttr:
		return NewDecoratorAttr()
	case KindImportGroupDecl:
		return NewImportGroupDecl()
	case KindImportDecl:
		return NewImportDecl()
	case KindVarGroupDecl:
		return NewVarGroupDecl(VarietyNone)
	case KindVarDecl:
		return NewVarDecl()
	case KindParamGroupDecl:
		return NewParamGroupDecl()
	case KindParamDecl:
		return NewParamDecl()
	case KindFuncDecl:
		return NewFuncDecl(VarietyFunction)
	case KindRecordDecl:
		return NewRecordDecl(VarietyClass)
	case KindBaseDecl:
		return NewBaseDecl()
	case KindErrorDecl:
		return NewLeafDecl(k)
	case KindIdentExpr:
		return NewIdentExpr()
	case KindNumLitExpr, KindStrLitExpr, KindBoolLitExpr, KindNullLitExpr:
		return NewLitExpr(k, "")
	case KindThisExpr, KindSuperExpr, KindErrorExpr:
		return NewLeafExpr(k)
	case KindCallExpr:
		return NewCallExpr(VarietyCall)
	case KindMemberAccessExpr:
		return NewMemberAccessExpr()
	case KindSubscriptExpr:
		return NewSubscriptExpr()
	case KindAssignExpr:
		return NewAssignExpr(VarietyPlain, "=")
	case KindBinaryExpr:
		return NewBinaryExpr("")
	case KindUnaryExpr:
		return NewUnaryExpr("")
	case KindCondExpr:
		return NewCondExpr()
	case KindArrayLitExpr:
		return NewCompositeExpr(k, VarietyList)
	case KindRecordLitExpr:
		return NewCompositeExpr(k, VarietyNone)
	case KindDesignateExpr:
		return NewDesignateExpr()
	case KindFuncLitExpr:
		return NewFuncLitExpr()
	case KindListCompExpr:
		return NewListCompExpr(VarietyList)
	case KindBlockStmt:
		return NewBlockStmt()
	case KindExprStmt:
		return NewExprStmt()
	case KindDeclStmt:
		return NewDeclStmt()
	case KindIfStmt:
		return NewIfStmt()
	case KindWhileStmt:
		return NewWhileStmt()
	case KindForStmt:
		return NewForStmt()
	case KindForeachStmt:
		return NewForeachStmt()
	case KindReturnStmt, KindThrowStmt, KindBreakStmt, KindContinueStmt:
		return NewJumpStmt(k)
	case KindTryStmt:
		return NewTryStmt()
	case KindCatchClauseStmt:
		return NewCatchClauseStmt()
	case KindWithStmt:
		return NewWithStmt()
	case KindEmptyStmt, KindErrorStmt:
		return NewLeafStmt(k)
	case KindProgram:
		return NewProgram("")
	case KindGenerator:
		return NewGenerator()
	case KindFilter:
		return NewFilter()
	}
	Assert(false, "no constructor for kind %d", uint16(k))
	return nil
}
