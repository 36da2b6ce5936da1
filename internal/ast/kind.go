package ast

// Kind identifies the grammatical role of a node. The enumeration is closed:
// every constructible node reports exactly one of the constants below.
type Kind uint16

const (
	KindInvalid Kind = iota

	// Names
	KindSimpleName
	KindSpecialName
	KindNestedName
	KindGenName
	KindCompletionName
	KindErrorName

	// Specifiers
	KindNamedSpec
	KindArraySpec
	KindPtrSpec
	KindFuncSpec
	KindInferredSpec
	KindOpaqueSpec
	KindErrorSpec

	// Attributes
	KindDeclAttr
	KindDecoratorAttr

	// Declarations
	KindImportGroupDecl
	KindImportDecl
	KindVarGroupDecl
	KindVarDecl
	KindParamGroupDecl
	KindParamDecl
	KindFuncDecl
	KindRecordDecl
	KindBaseDecl
	KindErrorDecl

	// Expressions
	KindIdentExpr
	KindNumLitExpr
	KindStrLitExpr
	KindBoolLitExpr
	KindNullLitExpr
	KindThisExpr
	KindSuperExpr
	KindCallExpr
	KindMemberAccessExpr
	KindSubscriptExpr
	KindAssignExpr
	KindBinaryExpr
	KindUnaryExpr
	KindCondExpr
	KindArrayLitExpr
	KindRecordLitExpr
	KindDesignateExpr
	KindFuncLitExpr
	KindListCompExpr
	KindErrorExpr

	// Statements
	KindBlockStmt
	KindExprStmt
	KindDeclStmt
	KindIfStmt
	KindWhileStmt
	KindForStmt
	KindForeachStmt
	KindReturnStmt
	KindThrowStmt
	KindBreakStmt
	KindContinueStmt
	KindTryStmt
	KindCatchClauseStmt
	KindWithStmt
	KindEmptyStmt
	KindErrorStmt

	// Top level, outside every category.
	KindProgram
	KindGenerator
	KindFilter

	kindCount
)

// Category partitions the Kind space.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryName
	CategorySpec
	CategoryAttr
	CategoryDecl
	CategoryExpr
	CategoryStmt
)

var categoryNames = [...]string{
	CategoryNone: "none",
	CategoryName: "name",
	CategorySpec: "spec",
	CategoryAttr: "attr",
	CategoryDecl: "decl",
	CategoryExpr: "expr",
	CategoryStmt: "stmt",
}

func (c Category) String() string {
	if int(c) >= len(categoryNames) {
		return ""
	}
	return categoryNames[c]
}

type kindInfo struct {
	name string
	cat  Category
}

// kindTable maps every Kind to its debug name and category. Category
// membership is a table lookup so reordering the constants cannot silently
// move a kind into a neighbouring category.
var kindTable = [kindCount]kindInfo{
	KindSimpleName:     {"SimpleName", CategoryName},
	KindSpecialName:    {"SpecialName", CategoryName},
	KindNestedName:     {"NestedName", CategoryName},
	KindGenName:        {"GenName", CategoryName},
	KindCompletionName: {"CompletionName", CategoryName},
	KindErrorName:      {"ErrorName", CategoryName},

	KindNamedSpec:    {"NamedSpec", CategorySpec},
	KindArraySpec:    {"ArraySpec", CategorySpec},
	KindPtrSpec:      {"PtrSpec", CategorySpec},
	KindFuncSpec:     {"FuncSpec", CategorySpec},
	KindInferredSpec: {"InferredSpec", CategorySpec},
	KindOpaqueSpec:   {"OpaqueSpec", CategorySpec},
	KindErrorSpec:    {"ErrorSpec", CategorySpec},

	KindDeclAttr:      {"DeclAttr", CategoryAttr},
	KindDecoratorAttr: {"DecoratorAttr", CategoryAttr},

	KindImportGroupDecl: {"ImportGroupDecl", CategoryDecl},
	KindImportDecl:      {"ImportDecl", CategoryDecl},
	KindVarGroupDecl:    {"VarGroupDecl", CategoryDecl},
	KindVarDecl:         {"VarDecl", CategoryDecl},
	KindParamGroupDecl:  {"ParamGroupDecl", CategoryDecl},
	KindParamDecl:       {"ParamDecl", CategoryDecl},
	KindFuncDecl:        {"FuncDecl", CategoryDecl},
	KindRecordDecl:      {"RecordDecl", CategoryDecl},
	KindBaseDecl:        {"BaseDecl", CategoryDecl},
	KindErrorDecl:       {"ErrorDecl", CategoryDecl},

	KindIdentExpr:        {"IdentExpr", CategoryExpr},
	KindNumLitExpr:       {"NumLitExpr", CategoryExpr},
	KindStrLitExpr:       {"StrLitExpr", CategoryExpr},
	KindBoolLitExpr:      {"BoolLitExpr", CategoryExpr},
	KindNullLitExpr:      {"NullLitExpr", CategoryExpr},
	KindThisExpr:         {"ThisExpr", CategoryExpr},
	KindSuperExpr:        {"SuperExpr", CategoryExpr},
	KindCallExpr:         {"CallExpr", CategoryExpr},
	KindMemberAccessExpr: {"MemberAccessExpr", CategoryExpr},
	KindSubscriptExpr:    {"SubscriptExpr", CategoryExpr},
	KindAssignExpr:       {"AssignExpr", CategoryExpr},
	KindBinaryExpr:       {"BinaryExpr", CategoryExpr},
	KindUnaryExpr:        {"UnaryExpr", CategoryExpr},
	KindCondExpr:         {"CondExpr", CategoryExpr},
	KindArrayLitExpr:     {"ArrayLitExpr", CategoryExpr},
	KindRecordLitExpr:    {"RecordLitExpr", CategoryExpr},
	KindDesignateExpr:    {"DesignateExpr", CategoryExpr},
	KindFuncLitExpr:      {"FuncLitExpr", CategoryExpr},
	KindListCompExpr:     {"ListCompExpr", CategoryExpr},
	KindErrorExpr:        {"ErrorExpr", CategoryExpr},

	KindBlockStmt:       {"BlockStmt", CategoryStmt},
	KindExprStmt:        {"ExprStmt", CategoryStmt},
	KindDeclStmt:        {"DeclStmt", CategoryStmt},
	KindIfStmt:          {"IfStmt", CategoryStmt},
	KindWhileStmt:       {"WhileStmt", CategoryStmt},
	KindForStmt:         {"ForStmt", CategoryStmt},
	KindForeachStmt:     {"ForeachStmt", CategoryStmt},
	KindReturnStmt:      {"ReturnStmt", CategoryStmt},
	KindThrowStmt:       {"ThrowStmt", CategoryStmt},
	KindBreakStmt:       {"BreakStmt", CategoryStmt},
	KindContinueStmt:    {"ContinueStmt", CategoryStmt},
	KindTryStmt:         {"TryStmt", CategoryStmt},
	KindCatchClauseStmt: {"CatchClauseStmt", CategoryStmt},
	KindWithStmt:        {"WithStmt", CategoryStmt},
	KindEmptyStmt:       {"EmptyStmt", CategoryStmt},
	KindErrorStmt:       {"ErrorStmt", CategoryStmt},

	KindProgram:   {"Program", CategoryNone},
	KindGenerator: {"Generator", CategoryNone},
	KindFilter:    {"Filter", CategoryNone},
}

// Valid reports whether k is a constructible kind.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// String returns the debug name of k. KindInvalid and out-of-range values
// are internal errors: they assert, and yield "" when assertions are off.
func (k Kind) String() string {
	if !k.Valid() {
		Assert(false, "kind %d has no name", uint16(k))
		return ""
	}
	return kindTable[k].name
}

// Category returns the category k belongs to. Program, Generator and Filter
// belong to none.
func (k Kind) Category() Category {
	if !k.Valid() {
		Assert(false, "kind %d has no category", uint16(k))
		return CategoryNone
	}
	return kindTable[k].cat
}

// Kinds returns every constructible kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
