package parse

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/frond/internal/ast"
)

func convertPython(c *converter, root *sitter.Node) {
	p := &pyConv{converter: c}
	for _, s := range p.stmts(root) {
		ast.Add(c.prog, ast.SlotStmts, s)
	}
}

type pyConv struct {
	*converter
}

func (p *pyConv) stmts(n *sitter.Node) []ast.Node {
	var out []ast.Node
	for _, ch := range named(n) {
		if ch.Type() == "ERROR" {
			out = append(out, p.recover(ch)...)
			continue
		}
		if s := p.stmt(ch); !ast.IsNil(s) {
			out = append(out, s)
		}
	}
	return out
}

// recover salvages statements from an ERROR region. The common case while
// typing is "name =" with the right side not yet written.
func (p *pyConv) recover(n *sitter.Node) []ast.Node {
	var out []ast.Node
	kids := children(n)
	for i := 0; i < len(kids); i++ {
		ch := kids[i]
		switch {
		case ch.Type() == "identifier" && i+1 < len(kids) && kids[i+1].Type() == "=":
			if i+2 < len(kids) && kids[i+2].IsNamed() && kids[i+2].Type() != "ERROR" {
				if rhs := p.expr(kids[i+2]); !ast.IsNil(rhs) {
					loc := p.loc(ch).Join(p.loc(kids[i+2]))
					a := ast.Build(ast.NewAssignExpr(ast.VarietyPlain, "=")).
						Set(ast.SlotLeft, p.ident(ch)).
						Set(ast.SlotRight, rhs).
						At(loc)
					out = append(out, p.exprStmt(done(a), loc))
					i += 2
					continue
				}
			}
			out = append(out, p.incompleteAssign(ch, kids[i+1]))
			i++
		case ch.Type() == "ERROR":
			out = append(out, p.recover(ch)...)
		case ch.Type() == "block":
			out = append(out, p.stmts(ch)...)
		case ch.IsNamed():
			if s := p.stmt(ch); !ast.IsNil(s) {
				out = append(out, s)
			}
		}
	}
	return out
}

func (p *pyConv) stmt(n *sitter.Node) ast.Node {
	switch n.Type() {
	case "expression_statement":
		kids := named(n)
		if len(kids) == 1 {
			return p.exprStmt(p.expr(kids[0]), p.loc(n))
		}
		return p.exprStmt(p.composite(n, ast.KindArrayLitExpr, ast.VarietyTuple), p.loc(n))
	case "class_definition":
		return p.classDef(n, nil)
	case "function_definition":
		return p.funcDef(n, nil)
	case "decorated_definition":
		return p.decorated(n)
	case "if_statement":
		return p.ifStmt(n)
	case "while_statement":
		w := ast.Build(ast.NewWhileStmt()).At(p.offsideLoc(n)).
			Opt(ast.SlotCond, p.expr(n.ChildByFieldName("condition"))).
			Opt(ast.SlotBody, p.body(n.ChildByFieldName("body"))).
			Opt(ast.SlotElse, p.elseBody(n.ChildByFieldName("alternative")))
		return done(w)
	case "for_statement":
		f := ast.Build(ast.NewForeachStmt()).At(p.offsideLoc(n)).
			Opt(ast.SlotTarget, p.expr(n.ChildByFieldName("left"))).
			Opt(ast.SlotRange, p.expr(n.ChildByFieldName("right"))).
			Opt(ast.SlotBody, p.body(n.ChildByFieldName("body"))).
			Opt(ast.SlotElse, p.elseBody(n.ChildByFieldName("alternative")))
		return done(f)
	case "try_statement":
		return p.tryStmt(n)
	case "with_statement":
		return p.withStmt(n)
	case "return_statement":
		return p.jump(ast.KindReturnStmt, n)
	case "raise_statement":
		return p.jump(ast.KindThrowStmt, n)
	case "break_statement":
		return p.jump(ast.KindBreakStmt, n)
	case "continue_statement":
		return p.jump(ast.KindContinueStmt, n)
	case "pass_statement":
		s := ast.NewLeafStmt(ast.KindEmptyStmt)
		s.SetLoc(p.loc(n))
		return s
	case "import_statement":
		return p.importStmt(n, nil)
	case "import_from_statement":
		return p.importStmt(n, n.ChildByFieldName("module_name"))
	}
	return nil
}

// body converts a block, extending it to the end of its last line.
func (p *pyConv) body(n *sitter.Node) ast.Node {
	if !present(n) {
		return nil
	}
	return p.block(p.stmts(n), p.offsideLoc(n))
}

// elseBody returns the block of an else_clause.
func (p *pyConv) elseBody(n *sitter.Node) ast.Node {
	if !present(n) {
		return nil
	}
	return p.body(blockOf(n))
}

func blockOf(n *sitter.Node) *sitter.Node {
	if b := n.ChildByFieldName("body"); b != nil {
		return b
	}
	for _, ch := range named(n) {
		if ch.Type() == "block" {
			return ch
		}
	}
	return nil
}

func (p *pyConv) classDef(n *sitter.Node, attrs []ast.Node) ast.Node {
	b := ast.Build(ast.NewRecordDecl(ast.VarietyClass)).At(p.offsideLoc(n))
	b.Add(ast.SlotAttrs, attrs...)
	b.Opt(ast.SlotName, p.name(n.ChildByFieldName("name")))
	if sup := n.ChildByFieldName("superclasses"); sup != nil {
		for _, a := range named(sup) {
			nm := p.exprName(a)
			if ast.IsNil(nm) {
				continue
			}
			b.Add(ast.SlotBases, done(ast.Build(ast.NewBaseDecl()).Set(ast.SlotName, nm).At(p.loc(a))))
		}
	}
	saved := p.inClass
	p.inClass = true
	b.Opt(ast.SlotBody, p.body(n.ChildByFieldName("body")))
	p.inClass = saved
	return p.declStmt(done(b))
}

func (p *pyConv) funcDef(n *sitter.Node, attrs []ast.Node) ast.Node {
	nameNode := n.ChildByFieldName("name")
	v := ast.VarietyFunction
	if p.inClass {
		v = ast.VarietyMethod
		if present(nameNode) && p.text(nameNode) == "__init__" {
			v = ast.VarietyConstructor
		}
	}
	b := ast.Build(ast.NewFuncDecl(v)).At(p.offsideLoc(n))
	if first := n.Child(0); first != nil && first.Type() == "async" {
		b.Add(ast.SlotAttrs, p.declAttr("async", first))
	}
	b.Add(ast.SlotAttrs, attrs...)
	b.Opt(ast.SlotName, p.name(nameNode))
	b.Opt(ast.SlotParams, p.params(n.ChildByFieldName("parameters")))
	if rt := n.ChildByFieldName("return_type"); present(rt) {
		b.Set(ast.SlotSpec, p.spec(rt))
	}
	saved := p.inClass
	p.inClass = false
	b.Opt(ast.SlotBody, p.body(n.ChildByFieldName("body")))
	p.inClass = saved
	return p.declStmt(done(b))
}

func (p *pyConv) declAttr(text string, at *sitter.Node) ast.Node {
	a := ast.NewDeclAttr(text)
	a.SetLoc(p.loc(at))
	return a
}

// decorated attaches decorators to the wrapped definition. staticmethod
// and classmethod also mark the declaration so receivers bind correctly.
func (p *pyConv) decorated(n *sitter.Node) ast.Node {
	var attrs []ast.Node
	for _, ch := range named(n) {
		if ch.Type() != "decorator" {
			continue
		}
		kids := named(ch)
		if len(kids) == 0 {
			continue
		}
		attrs = append(attrs, done(ast.Build(ast.NewDecoratorAttr()).Opt(ast.SlotExpr, p.expr(kids[0])).At(p.loc(ch))))
		switch p.text(kids[0]) {
		case "staticmethod":
			attrs = append(attrs, p.declAttr("static", kids[0]))
		case "classmethod":
			attrs = append(attrs, p.declAttr("classmethod", kids[0]))
		}
	}
	def := n.ChildByFieldName("definition")
	if !present(def) {
		return nil
	}
	switch def.Type() {
	case "function_definition":
		return p.funcDef(def, attrs)
	case "class_definition":
		return p.classDef(def, attrs)
	}
	return nil
}

func (p *pyConv) params(n *sitter.Node) ast.Node {
	g := ast.Build(ast.NewParamGroupDecl())
	if !present(n) {
		return done(g)
	}
	g.At(p.loc(n))
	for _, ch := range named(n) {
		g.Add(ast.SlotDecls, p.param(ch))
	}
	return done(g)
}

func (p *pyConv) param(n *sitter.Node) ast.Node {
	var nameNode, typ, val *sitter.Node
	variadic := false
	switch n.Type() {
	case "identifier":
		nameNode = n
	case "typed_parameter":
		if kids := named(n); len(kids) > 0 {
			nameNode = kids[0]
		}
		typ = n.ChildByFieldName("type")
	case "default_parameter":
		nameNode, val = n.ChildByFieldName("name"), n.ChildByFieldName("value")
	case "typed_default_parameter":
		nameNode, typ, val = n.ChildByFieldName("name"), n.ChildByFieldName("type"), n.ChildByFieldName("value")
	case "list_splat_pattern", "dictionary_splat_pattern":
		nameNode = n
	default:
		return nil
	}
	if nameNode != nil && (nameNode.Type() == "list_splat_pattern" || nameNode.Type() == "dictionary_splat_pattern") {
		variadic = true
		kids := named(nameNode)
		if len(kids) == 0 {
			return nil
		}
		nameNode = kids[0]
	}
	if !present(nameNode) || nameNode.Type() != "identifier" {
		return nil
	}
	b := ast.Build(ast.NewParamDecl()).At(p.loc(n)).Set(ast.SlotName, p.name(nameNode))
	if variadic {
		b.Variety(ast.VarietyVariadic)
	}
	if present(typ) {
		b.Set(ast.SlotSpec, p.spec(typ))
	}
	if present(val) {
		b.Opt(ast.SlotInit, p.expr(val))
	}
	return done(b)
}

func (p *pyConv) spec(n *sitter.Node) ast.Node {
	inner := n
	if n.Type() == "type" {
		if kids := named(n); len(kids) > 0 {
			inner = kids[0]
		}
	}
	return p.namedSpec(n, p.exprName(inner))
}

// exprName returns the name an identifier or dotted attribute chain
// spells, or nil for any other expression.
func (p *pyConv) exprName(n *sitter.Node) ast.Node {
	parts := flattenChain(n, "attribute", "object", "attribute")
	if parts == nil {
		return nil
	}
	return p.dotted(n, parts)
}

// flattenChain returns the identifiers of a.b.c, or nil when the chain is
// rooted at anything but an identifier.
func flattenChain(n *sitter.Node, kind, objField, propField string) []*sitter.Node {
	if !present(n) {
		return nil
	}
	switch n.Type() {
	case "identifier":
		return []*sitter.Node{n}
	case kind:
		head := flattenChain(n.ChildByFieldName(objField), kind, objField, propField)
		prop := n.ChildByFieldName(propField)
		if head == nil || !present(prop) {
			return nil
		}
		return append(head, prop)
	}
	return nil
}

func (p *pyConv) ifStmt(n *sitter.Node) ast.Node {
	var alts []*sitter.Node
	for _, ch := range named(n) {
		if t := ch.Type(); t == "elif_clause" || t == "else_clause" {
			alts = append(alts, ch)
		}
	}
	var tail ast.Node
	var tailLoc ast.SourceLoc
	for i := len(alts) - 1; i >= 0; i-- {
		a := alts[i]
		if a.Type() == "else_clause" {
			tail = p.elseBody(a)
			tailLoc = p.offsideLoc(a)
			continue
		}
		loc := p.offsideLoc(a)
		if !ast.IsNil(tail) {
			loc = loc.Join(tail.Loc())
		}
		tail = p.ifNode(a, loc, tail, tailLoc)
		tailLoc = p.offsideLoc(a)
	}
	return p.ifNode(n, p.offsideLoc(n), tail, tailLoc)
}

func (p *pyConv) ifNode(n *sitter.Node, loc ast.SourceLoc, els ast.Node, elseLoc ast.SourceLoc) ast.Node {
	ifs := ast.NewIfStmt()
	if !ast.IsNil(els) {
		ifs.ElseLoc = elseLoc
	}
	b := ast.Build(ifs).At(loc).
		Opt(ast.SlotCond, p.expr(n.ChildByFieldName("condition"))).
		Opt(ast.SlotThen, p.body(n.ChildByFieldName("consequence"))).
		Opt(ast.SlotElse, els)
	return done(b)
}

func (p *pyConv) tryStmt(n *sitter.Node) ast.Node {
	b := ast.Build(ast.NewTryStmt()).At(p.offsideLoc(n)).
		Opt(ast.SlotBody, p.body(n.ChildByFieldName("body")))
	for _, ch := range named(n) {
		switch ch.Type() {
		case "except_clause", "except_group_clause":
			b.Add(ast.SlotCatches, p.except(ch))
		case "else_clause":
			b.Opt(ast.SlotElse, p.elseBody(ch))
		case "finally_clause":
			b.Opt(ast.SlotFinally, p.elseBody(ch))
		}
	}
	return done(b)
}

func (p *pyConv) except(n *sitter.Node) ast.Node {
	var typ, alias, blk *sitter.Node
	for _, k := range named(n) {
		switch k.Type() {
		case "block":
			blk = k
		case "as_pattern":
			ks := named(k)
			if len(ks) > 0 {
				typ = ks[0]
			}
			if a := k.ChildByFieldName("alias"); a != nil {
				alias = a
			} else if len(ks) > 1 {
				alias = ks[1]
			}
		default:
			if typ == nil {
				typ = k
			} else if alias == nil {
				alias = k
			}
		}
	}
	if alias != nil && alias.Type() == "as_pattern_target" {
		if ks := named(alias); len(ks) > 0 {
			alias = ks[0]
		}
	}
	c := ast.Build(ast.NewCatchClauseStmt()).At(p.offsideLoc(n))
	if present(alias) && alias.Type() == "identifier" {
		d := ast.Build(ast.NewParamDecl()).At(p.loc(alias)).Set(ast.SlotName, p.name(alias))
		if present(typ) {
			d.Set(ast.SlotSpec, p.namedSpec(typ, p.exprName(typ)))
		}
		c.Set(ast.SlotDecl, done(d))
	}
	c.Opt(ast.SlotBody, p.body(blk))
	return done(c)
}

// withStmt nests one WithStmt per item so each carries a single target.
func (p *pyConv) withStmt(n *sitter.Node) ast.Node {
	var items []*sitter.Node
	for _, ch := range named(n) {
		switch ch.Type() {
		case "with_item":
			items = append(items, ch)
		case "with_clause":
			for _, it := range named(ch) {
				if it.Type() == "with_item" {
					items = append(items, it)
				}
			}
		}
	}
	cur := p.body(n.ChildByFieldName("body"))
	loc := p.offsideLoc(n)
	for i := len(items) - 1; i >= 0; i-- {
		val, target := p.withItem(items[i])
		w := ast.Build(ast.NewWithStmt()).At(loc).
			Opt(ast.SlotExpr, p.expr(val)).
			Opt(ast.SlotTarget, p.expr(target)).
			Opt(ast.SlotBody, cur)
		cur = done(w)
	}
	return cur
}

func (p *pyConv) withItem(n *sitter.Node) (val, target *sitter.Node) {
	val = n.ChildByFieldName("value")
	if val == nil {
		if ks := named(n); len(ks) > 0 {
			val = ks[0]
		}
	}
	target = n.ChildByFieldName("alias")
	if val != nil && val.Type() == "as_pattern" {
		ks := named(val)
		target = val.ChildByFieldName("alias")
		if target == nil && len(ks) > 1 {
			target = ks[1]
		}
		if len(ks) > 0 {
			val = ks[0]
		}
	}
	if target != nil && target.Type() == "as_pattern_target" {
		if ks := named(target); len(ks) > 0 {
			target = ks[0]
		}
	}
	return val, target
}

func (p *pyConv) jump(k ast.Kind, n *sitter.Node) ast.Node {
	b := ast.Build(ast.NewJumpStmt(k)).At(p.loc(n))
	if k == ast.KindReturnStmt || k == ast.KindThrowStmt {
		if kids := named(n); len(kids) > 0 {
			b.Opt(ast.SlotExpr, p.expr(kids[0]))
		}
	}
	return done(b)
}

func (p *pyConv) importStmt(n, module *sitter.Node) ast.Node {
	g := ast.Build(ast.NewImportGroupDecl()).At(p.loc(n))
	if present(module) {
		if module.Type() == "dotted_name" {
			g.Set(ast.SlotModule, p.dotted(module, named(module)))
		} else {
			g.Set(ast.SlotModule, p.name(module))
		}
	}
	for _, ch := range named(n) {
		if module != nil && ch.StartByte() == module.StartByte() && ch.EndByte() == module.EndByte() {
			continue
		}
		g.Add(ast.SlotDecls, p.importDecl(ch))
	}
	return p.declStmt(done(g))
}

func (p *pyConv) importDecl(n *sitter.Node) ast.Node {
	var nameNode, alias *sitter.Node
	switch n.Type() {
	case "dotted_name":
		nameNode = n
	case "aliased_import":
		nameNode, alias = n.ChildByFieldName("name"), n.ChildByFieldName("alias")
	default:
		return nil
	}
	if !present(nameNode) {
		return nil
	}
	d := ast.Build(ast.NewImportDecl()).At(p.loc(n)).
		Set(ast.SlotName, p.dotted(nameNode, named(nameNode))).
		Opt(ast.SlotAlias, p.name(alias))
	return done(d)
}

func (p *pyConv) expr(n *sitter.Node) ast.Node {
	if !present(n) {
		return nil
	}
	switch n.Type() {
	case "identifier":
		return p.ident(n)
	case "attribute":
		return p.member(n)
	case "call":
		return p.call(n)
	case "subscript":
		s := ast.Build(ast.NewSubscriptExpr()).At(p.loc(n)).
			Opt(ast.SlotBase, p.expr(n.ChildByFieldName("value"))).
			Opt(ast.SlotIndex, p.expr(n.ChildByFieldName("subscript")))
		return done(s)
	case "assignment":
		a := ast.Build(ast.NewAssignExpr(ast.VarietyPlain, "=")).At(p.loc(n)).
			Opt(ast.SlotLeft, p.expr(n.ChildByFieldName("left"))).
			Opt(ast.SlotRight, p.expr(n.ChildByFieldName("right")))
		return done(a)
	case "augmented_assignment":
		op := ""
		if o := n.ChildByFieldName("operator"); o != nil {
			op = p.text(o)
		}
		a := ast.Build(ast.NewAssignExpr(ast.VarietyAugmented, op)).At(p.loc(n)).
			Opt(ast.SlotLeft, p.expr(n.ChildByFieldName("left"))).
			Opt(ast.SlotRight, p.expr(n.ChildByFieldName("right")))
		return done(a)
	case "named_expression":
		a := ast.Build(ast.NewAssignExpr(ast.VarietyPlain, ":=")).At(p.loc(n)).
			Opt(ast.SlotLeft, p.expr(n.ChildByFieldName("name"))).
			Opt(ast.SlotRight, p.expr(n.ChildByFieldName("value")))
		return done(a)
	case "integer", "float":
		return p.lit(ast.KindNumLitExpr, n)
	case "string", "concatenated_string":
		return p.lit(ast.KindStrLitExpr, n)
	case "true", "false":
		return p.lit(ast.KindBoolLitExpr, n)
	case "none":
		return p.lit(ast.KindNullLitExpr, n)
	case "list", "list_pattern":
		return p.composite(n, ast.KindArrayLitExpr, ast.VarietyList)
	case "tuple", "tuple_pattern", "pattern_list", "expression_list":
		return p.composite(n, ast.KindArrayLitExpr, ast.VarietyTuple)
	case "set":
		return p.composite(n, ast.KindArrayLitExpr, ast.VarietySet)
	case "dictionary":
		return p.composite(n, ast.KindRecordLitExpr, ast.VarietyNone)
	case "pair":
		d := ast.Build(ast.NewDesignateExpr()).At(p.loc(n)).
			Opt(ast.SlotKey, p.expr(n.ChildByFieldName("key"))).
			Opt(ast.SlotValue, p.expr(n.ChildByFieldName("value")))
		return done(d)
	case "keyword_argument":
		d := ast.Build(ast.NewDesignateExpr()).At(p.loc(n)).
			Opt(ast.SlotKey, p.name(n.ChildByFieldName("name"))).
			Opt(ast.SlotValue, p.expr(n.ChildByFieldName("value")))
		return done(d)
	case "list_comprehension":
		return p.comprehension(n, ast.VarietyList)
	case "set_comprehension":
		return p.comprehension(n, ast.VarietySet)
	case "generator_expression", "dictionary_comprehension":
		return p.comprehension(n, ast.VarietyNone)
	case "lambda":
		params := n.ChildByFieldName("parameters")
		f := ast.Build(ast.NewFuncLitExpr()).At(p.loc(n)).
			Set(ast.SlotParams, p.params(params)).
			Opt(ast.SlotBody, p.expr(n.ChildByFieldName("body")))
		return done(f)
	case "binary_operator", "boolean_operator":
		return p.binary(n, n.ChildByFieldName("left"), n.ChildByFieldName("operator"), n.ChildByFieldName("right"))
	case "comparison_operator":
		kids := named(n)
		if len(kids) < 2 {
			return p.errorExpr(n)
		}
		return p.binary(n, kids[0], n.Child(1), kids[1])
	case "unary_operator":
		return p.unary(n, p.text(n.ChildByFieldName("operator")), n.ChildByFieldName("argument"))
	case "not_operator":
		return p.unary(n, "not", n.ChildByFieldName("argument"))
	case "await":
		return p.unary(n, "await", firstNamed(n))
	case "list_splat", "list_splat_pattern":
		return p.unary(n, "*", firstNamed(n))
	case "dictionary_splat", "dictionary_splat_pattern":
		return p.unary(n, "**", firstNamed(n))
	case "conditional_expression":
		kids := named(n)
		if len(kids) < 3 {
			return p.errorExpr(n)
		}
		c := ast.Build(ast.NewCondExpr()).At(p.loc(n)).
			Opt(ast.SlotThen, p.expr(kids[0])).
			Opt(ast.SlotCond, p.expr(kids[1])).
			Opt(ast.SlotElse, p.expr(kids[2]))
		return done(c)
	case "parenthesized_expression":
		return p.expr(firstNamed(n))
	}
	return p.errorExpr(n)
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if kids := named(n); len(kids) > 0 {
		return kids[0]
	}
	return nil
}

func (p *pyConv) member(n *sitter.Node) ast.Node {
	m := ast.NewMemberAccessExpr()
	for _, ch := range children(n) {
		if ch.Type() == "." {
			m.DotLoc = p.loc(ch)
			break
		}
	}
	b := ast.Build(m).At(p.loc(n)).
		Opt(ast.SlotBase, p.expr(n.ChildByFieldName("object"))).
		Opt(ast.SlotName, p.name(n.ChildByFieldName("attribute")))
	return done(b)
}

func (p *pyConv) call(n *sitter.Node) ast.Node {
	b := ast.Build(ast.NewCallExpr(ast.VarietyCall)).At(p.loc(n)).
		Opt(ast.SlotBase, p.expr(n.ChildByFieldName("function")))
	args := n.ChildByFieldName("arguments")
	if present(args) {
		if args.Type() == "generator_expression" {
			b.Add(ast.SlotArgs, p.expr(args))
		} else {
			for _, a := range named(args) {
				b.Add(ast.SlotArgs, p.expr(a))
			}
		}
	}
	return done(b)
}

func (p *pyConv) composite(n *sitter.Node, k ast.Kind, v ast.Variety) ast.Node {
	b := ast.Build(ast.NewCompositeExpr(k, v)).At(p.loc(n))
	for _, ch := range named(n) {
		b.Add(ast.SlotInits, p.expr(ch))
	}
	return done(b)
}

func (p *pyConv) comprehension(n *sitter.Node, v ast.Variety) ast.Node {
	b := ast.Build(ast.NewListCompExpr(v)).At(p.loc(n)).
		Opt(ast.SlotExpr, p.expr(n.ChildByFieldName("body")))
	for _, ch := range named(n) {
		switch ch.Type() {
		case "for_in_clause":
			g := ast.Build(ast.NewGenerator()).At(p.loc(ch)).
				Opt(ast.SlotTarget, p.expr(ch.ChildByFieldName("left"))).
				Opt(ast.SlotRange, p.expr(ch.ChildByFieldName("right")))
			b.Add(ast.SlotGenerators, done(g))
		case "if_clause":
			f := ast.Build(ast.NewFilter()).At(p.loc(ch)).Opt(ast.SlotCond, p.expr(firstNamed(ch)))
			b.Add(ast.SlotFilters, done(f))
		}
	}
	return done(b)
}

func (p *pyConv) binary(n, left, op, right *sitter.Node) ast.Node {
	text := ""
	if op != nil {
		text = p.text(op)
	}
	b := ast.Build(ast.NewBinaryExpr(text)).At(p.loc(n)).
		Opt(ast.SlotLeft, p.expr(left)).
		Opt(ast.SlotRight, p.expr(right))
	return done(b)
}

func (p *pyConv) unary(n *sitter.Node, op string, arg *sitter.Node) ast.Node {
	return done(ast.Build(ast.NewUnaryExpr(op)).At(p.loc(n)).Opt(ast.SlotExpr, p.expr(arg)))
}
