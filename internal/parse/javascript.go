package parse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/frond/internal/ast"
)

func convertJavaScript(c *converter, root *sitter.Node) {
	j := &jsConv{converter: c, broken: root.HasError()}
	for _, s := range j.stmts(root) {
		ast.Add(c.prog, ast.SlotStmts, s)
	}
}

type jsConv struct {
	*converter

	// broken is set when the tree contains error recovery nodes.
	broken bool
}

// loc is the span of n. A node that ends in a MISSING "}" runs on to the
// next real token after it, or to the end of the source, so an unclosed
// body still holds the text typed into it.
func (j *jsConv) loc(n *sitter.Node) ast.SourceLoc {
	loc := j.converter.loc(n)
	if j.broken && unclosed(n) {
		if end := j.resume(n); loc.End.Before(end) {
			loc.End = end
		}
	}
	return loc
}

// unclosed reports whether the last token of n is a MISSING "}". Other
// MISSING tokens, such as an inserted ";", are skipped.
func unclosed(n *sitter.Node) bool {
	for n != nil {
		i := int(n.ChildCount()) - 1
		for ; i >= 0; i-- {
			ch := n.Child(i)
			if ch == nil || !ch.IsMissing() {
				break
			}
			if ch.Type() == "}" {
				return true
			}
		}
		if i < 0 {
			return false
		}
		n = n.Child(i)
	}
	return false
}

// resume is where the source picks up again after n: the start of the
// first following sibling of n or an ancestor that is not an ERROR, a
// comment or MISSING, else the end of the source.
func (j *jsConv) resume(n *sitter.Node) ast.Pos {
	for p := n; p != nil; p = p.Parent() {
		for s := p.NextSibling(); s != nil; s = s.NextSibling() {
			if t := s.Type(); t != "ERROR" && t != "comment" && !s.IsMissing() {
				return j.lines.pos(s.StartPoint())
			}
		}
	}
	return j.lines.span().End
}

func (j *jsConv) stmts(n *sitter.Node) []ast.Node {
	var out []ast.Node
	for _, ch := range named(n) {
		if ch.Type() == "ERROR" {
			out = append(out, j.recover(ch)...)
			continue
		}
		if s := j.stmt(ch); !ast.IsNil(s) {
			out = append(out, s)
		}
	}
	return out
}

// recover salvages statements from an ERROR region.
func (j *jsConv) recover(n *sitter.Node) []ast.Node {
	var out []ast.Node
	kids := children(n)
	for i := 0; i < len(kids); i++ {
		ch := kids[i]
		switch {
		case ch.Type() == "identifier" && i+1 < len(kids) && kids[i+1].Type() == "=":
			out = append(out, j.incompleteAssign(ch, kids[i+1]))
			i++
		case ch.Type() == "ERROR":
			out = append(out, j.recover(ch)...)
		case ch.Type() == "statement_block":
			out = append(out, j.stmts(ch)...)
		case ch.IsNamed():
			if s := j.stmt(ch); !ast.IsNil(s) {
				out = append(out, s)
			}
		}
	}
	return out
}

func (j *jsConv) stmt(n *sitter.Node) ast.Node {
	if !present(n) {
		return nil
	}
	switch n.Type() {
	case "expression_statement":
		return j.exprStmt(j.expr(firstNamed(n)), j.loc(n))
	case "lexical_declaration", "variable_declaration":
		return j.declStmt(j.varGroup(n))
	case "function_declaration", "generator_function_declaration":
		return j.declStmt(j.funcDecl(n, ast.VarietyFunction, nil))
	case "class_declaration":
		return j.declStmt(j.classDecl(n))
	case "statement_block":
		return j.block(j.stmts(n), j.loc(n))
	case "if_statement":
		ifs := ast.NewIfStmt()
		var els ast.Node
		if alt := n.ChildByFieldName("alternative"); present(alt) {
			ifs.ElseLoc = j.loc(alt)
			els = j.stmt(firstNamed(alt))
		}
		b := ast.Build(ifs).At(j.loc(n)).
			Opt(ast.SlotCond, j.expr(n.ChildByFieldName("condition"))).
			Opt(ast.SlotThen, j.stmt(n.ChildByFieldName("consequence"))).
			Opt(ast.SlotElse, els)
		return done(b)
	case "while_statement":
		w := ast.Build(ast.NewWhileStmt()).At(j.loc(n)).
			Opt(ast.SlotCond, j.expr(n.ChildByFieldName("condition"))).
			Opt(ast.SlotBody, j.stmt(n.ChildByFieldName("body")))
		return done(w)
	case "do_statement":
		w := ast.Build(ast.NewWhileStmt()).At(j.loc(n)).
			Opt(ast.SlotBody, j.stmt(n.ChildByFieldName("body"))).
			Opt(ast.SlotCond, j.expr(n.ChildByFieldName("condition")))
		return done(w)
	case "for_statement":
		return j.forStmt(n)
	case "for_in_statement":
		return j.forIn(n)
	case "try_statement":
		return j.tryStmt(n)
	case "return_statement":
		return j.jump(ast.KindReturnStmt, n)
	case "throw_statement":
		return j.jump(ast.KindThrowStmt, n)
	case "break_statement":
		return j.jump(ast.KindBreakStmt, n)
	case "continue_statement":
		return j.jump(ast.KindContinueStmt, n)
	case "empty_statement":
		s := ast.NewLeafStmt(ast.KindEmptyStmt)
		s.SetLoc(j.loc(n))
		return s
	case "import_statement":
		return j.importStmt(n)
	case "export_statement":
		if d := n.ChildByFieldName("declaration"); present(d) {
			return j.stmt(d)
		}
		if v := n.ChildByFieldName("value"); present(v) {
			return j.exprStmt(j.expr(v), j.loc(n))
		}
	}
	return nil
}

func (j *jsConv) varGroup(n *sitter.Node) ast.Node {
	v := ast.VarietyVar
	if kw := n.Child(0); kw != nil {
		switch kw.Type() {
		case "let":
			v = ast.VarietyLet
		case "const":
			v = ast.VarietyConst
		}
	}
	g := ast.Build(ast.NewVarGroupDecl(v)).At(j.loc(n))
	for _, d := range named(n) {
		if d.Type() != "variable_declarator" {
			continue
		}
		nameNode := d.ChildByFieldName("name")
		if !present(nameNode) {
			continue
		}
		if nameNode.Type() != "identifier" {
			// Destructuring declares every identifier in the pattern.
			for _, id := range patternIdents(nameNode) {
				g.Add(ast.SlotDecls, done(ast.Build(ast.NewVarDecl()).At(j.loc(id)).Set(ast.SlotName, j.name(id))))
			}
			continue
		}
		vd := ast.Build(ast.NewVarDecl()).At(j.loc(d)).
			Set(ast.SlotName, j.name(nameNode)).
			Opt(ast.SlotInit, j.expr(d.ChildByFieldName("value")))
		g.Add(ast.SlotDecls, done(vd))
	}
	return done(g)
}

// patternIdents collects the identifiers bound by a destructuring pattern.
func patternIdents(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if !present(n) {
			return
		}
		switch n.Type() {
		case "identifier", "shorthand_property_identifier_pattern":
			out = append(out, n)
			return
		case "pair_pattern":
			walk(n.ChildByFieldName("value"))
			return
		case "assignment_pattern", "object_assignment_pattern":
			walk(n.ChildByFieldName("left"))
			return
		}
		for _, ch := range named(n) {
			walk(ch)
		}
	}
	walk(n)
	return out
}

// funcDecl converts a function or method. Methods get an implicit leading
// this parameter unless static, so receivers look the same in every
// language.
func (j *jsConv) funcDecl(n *sitter.Node, v ast.Variety, attrs []ast.Node) ast.Node {
	b := ast.Build(ast.NewFuncDecl(v)).At(j.loc(n))
	static := false
	for _, ch := range children(n) {
		switch ch.Type() {
		case "async", "static", "get", "set":
			b.Add(ast.SlotAttrs, j.declAttr(ch.Type(), ch))
			static = static || ch.Type() == "static"
		}
	}
	b.Add(ast.SlotAttrs, attrs...)
	b.Opt(ast.SlotName, j.name(n.ChildByFieldName("name")))

	var receiver ast.Node
	if v == ast.VarietyMethod || v == ast.VarietyConstructor {
		if !static {
			this := ast.Build(ast.NewParamDecl()).At(j.loc(n)).Variety(ast.VarietyImplicit)
			nm := ast.NewName(ast.KindSpecialName, "this")
			nm.SetLoc(j.loc(n))
			this.Set(ast.SlotName, nm)
			receiver = done(this)
		}
	}
	b.Set(ast.SlotParams, j.params(n.ChildByFieldName("parameters"), receiver))
	b.Opt(ast.SlotBody, j.stmt(n.ChildByFieldName("body")))
	return done(b)
}

func (j *jsConv) declAttr(text string, at *sitter.Node) ast.Node {
	a := ast.NewDeclAttr(text)
	a.SetLoc(j.loc(at))
	return a
}

func (j *jsConv) params(n *sitter.Node, receiver ast.Node) ast.Node {
	g := ast.Build(ast.NewParamGroupDecl())
	if present(n) {
		g.At(j.loc(n))
	}
	g.Add(ast.SlotDecls, receiver)
	for _, ch := range named(n) {
		g.Add(ast.SlotDecls, j.param(ch)...)
	}
	return done(g)
}

func (j *jsConv) param(n *sitter.Node) []ast.Node {
	switch n.Type() {
	case "identifier":
		return []ast.Node{done(ast.Build(ast.NewParamDecl()).At(j.loc(n)).Set(ast.SlotName, j.name(n)))}
	case "assignment_pattern":
		left := n.ChildByFieldName("left")
		if present(left) && left.Type() == "identifier" {
			p := ast.Build(ast.NewParamDecl()).At(j.loc(n)).
				Set(ast.SlotName, j.name(left)).
				Opt(ast.SlotInit, j.expr(n.ChildByFieldName("right")))
			return []ast.Node{done(p)}
		}
	case "rest_pattern":
		if id := firstNamed(n); present(id) && id.Type() == "identifier" {
			p := ast.Build(ast.NewParamDecl()).At(j.loc(n)).Variety(ast.VarietyVariadic).Set(ast.SlotName, j.name(id))
			return []ast.Node{done(p)}
		}
		return nil
	}
	var out []ast.Node
	for _, id := range patternIdents(n) {
		out = append(out, done(ast.Build(ast.NewParamDecl()).At(j.loc(id)).Set(ast.SlotName, j.name(id))))
	}
	return out
}

func (j *jsConv) classDecl(n *sitter.Node) ast.Node {
	b := ast.Build(ast.NewRecordDecl(ast.VarietyClass)).At(j.loc(n)).
		Opt(ast.SlotName, j.name(n.ChildByFieldName("name")))
	for _, ch := range named(n) {
		if ch.Type() != "class_heritage" {
			continue
		}
		// extends clause: class_heritage wraps the base expression.
		base := firstNamed(ch)
		if present(base) && base.Type() == "extends_clause" {
			base = base.ChildByFieldName("value")
		}
		if nm := j.exprName(base); !ast.IsNil(nm) {
			b.Add(ast.SlotBases, done(ast.Build(ast.NewBaseDecl()).At(j.loc(base)).Set(ast.SlotName, nm)))
		}
	}
	if body := n.ChildByFieldName("body"); present(body) {
		var members []ast.Node
		for _, m := range named(body) {
			switch m.Type() {
			case "method_definition":
				v := ast.VarietyMethod
				if nm := m.ChildByFieldName("name"); nm != nil && j.text(nm) == "constructor" {
					v = ast.VarietyConstructor
				}
				members = append(members, j.declStmt(j.funcDecl(m, v, nil)))
			case "field_definition", "public_field_definition":
				members = append(members, j.declStmt(j.field(m)))
			}
		}
		b.Set(ast.SlotBody, j.block(members, j.loc(body)))
	}
	return done(b)
}

// field is a class field declaration such as "x = 1;".
func (j *jsConv) field(n *sitter.Node) ast.Node {
	prop := n.ChildByFieldName("property")
	if prop == nil {
		prop = n.ChildByFieldName("name")
	}
	if !present(prop) {
		return nil
	}
	vd := ast.Build(ast.NewVarDecl()).At(j.loc(n)).
		Set(ast.SlotName, j.name(prop)).
		Opt(ast.SlotInit, j.expr(n.ChildByFieldName("value")))
	g := ast.Build(ast.NewVarGroupDecl(ast.VarietyNone)).At(j.loc(n))
	for _, ch := range children(n) {
		if ch.Type() == "static" {
			g.Variety(ast.VarietyConst)
		}
	}
	return done(g.Add(ast.SlotDecls, done(vd)))
}

func (j *jsConv) exprName(n *sitter.Node) ast.Node {
	parts := flattenChain(n, "member_expression", "object", "property")
	if parts == nil {
		return nil
	}
	return j.dotted(n, parts)
}

func (j *jsConv) forStmt(n *sitter.Node) ast.Node {
	b := ast.Build(ast.NewForStmt()).At(j.loc(n)).
		Opt(ast.SlotInit, j.stmt(n.ChildByFieldName("initializer")))
	if c := n.ChildByFieldName("condition"); present(c) {
		switch c.Type() {
		case "expression_statement":
			b.Opt(ast.SlotCond, j.expr(firstNamed(c)))
		case "empty_statement":
		default:
			b.Opt(ast.SlotCond, j.expr(c))
		}
	}
	b.Opt(ast.SlotPost, j.expr(n.ChildByFieldName("increment")))
	b.Opt(ast.SlotBody, j.stmt(n.ChildByFieldName("body")))
	return done(b)
}

func (j *jsConv) forIn(n *sitter.Node) ast.Node {
	left := n.ChildByFieldName("left")
	var target ast.Node
	if kw := n.ChildByFieldName("kind"); present(kw) && present(left) {
		v := ast.VarietyVar
		switch j.text(kw) {
		case "let":
			v = ast.VarietyLet
		case "const":
			v = ast.VarietyConst
		}
		g := ast.Build(ast.NewVarGroupDecl(v)).At(j.loc(left))
		for _, id := range patternIdents(left) {
			g.Add(ast.SlotDecls, done(ast.Build(ast.NewVarDecl()).At(j.loc(id)).Set(ast.SlotName, j.name(id))))
		}
		target = done(g)
	} else {
		target = j.expr(left)
	}
	b := ast.Build(ast.NewForeachStmt()).At(j.loc(n)).
		Opt(ast.SlotTarget, target).
		Opt(ast.SlotRange, j.expr(n.ChildByFieldName("right"))).
		Opt(ast.SlotBody, j.stmt(n.ChildByFieldName("body")))
	return done(b)
}

func (j *jsConv) tryStmt(n *sitter.Node) ast.Node {
	b := ast.Build(ast.NewTryStmt()).At(j.loc(n)).
		Opt(ast.SlotBody, j.stmt(n.ChildByFieldName("body")))
	if h := n.ChildByFieldName("handler"); present(h) {
		c := ast.Build(ast.NewCatchClauseStmt()).At(j.loc(h))
		if param := h.ChildByFieldName("parameter"); present(param) && param.Type() == "identifier" {
			c.Set(ast.SlotDecl, done(ast.Build(ast.NewParamDecl()).At(j.loc(param)).Set(ast.SlotName, j.name(param))))
		}
		c.Opt(ast.SlotBody, j.stmt(h.ChildByFieldName("body")))
		b.Add(ast.SlotCatches, done(c))
	}
	if f := n.ChildByFieldName("finalizer"); present(f) {
		b.Opt(ast.SlotFinally, j.stmt(f.ChildByFieldName("body")))
	}
	return done(b)
}

func (j *jsConv) jump(k ast.Kind, n *sitter.Node) ast.Node {
	b := ast.Build(ast.NewJumpStmt(k)).At(j.loc(n))
	if k == ast.KindReturnStmt || k == ast.KindThrowStmt {
		b.Opt(ast.SlotExpr, j.expr(firstNamed(n)))
	}
	return done(b)
}

func (j *jsConv) importStmt(n *sitter.Node) ast.Node {
	g := ast.Build(ast.NewImportGroupDecl()).At(j.loc(n))
	if src := n.ChildByFieldName("source"); present(src) {
		nm := ast.NewName(ast.KindSimpleName, strings.Trim(j.text(src), "'\"`"))
		nm.SetLoc(j.loc(src))
		g.Set(ast.SlotModule, nm)
	}
	for _, ch := range named(n) {
		if ch.Type() != "import_clause" {
			continue
		}
		for _, k := range named(ch) {
			switch k.Type() {
			case "identifier":
				g.Add(ast.SlotDecls, j.importDecl(k, k, nil))
			case "namespace_import":
				if id := firstNamed(k); present(id) {
					g.Add(ast.SlotDecls, j.importDecl(k, id, nil))
				}
			case "named_imports":
				for _, spec := range named(k) {
					if spec.Type() != "import_specifier" {
						continue
					}
					g.Add(ast.SlotDecls, j.importDecl(spec, spec.ChildByFieldName("name"), spec.ChildByFieldName("alias")))
				}
			}
		}
	}
	return j.declStmt(done(g))
}

func (j *jsConv) importDecl(at, nameNode, alias *sitter.Node) ast.Node {
	if !present(nameNode) {
		return nil
	}
	d := ast.Build(ast.NewImportDecl()).At(j.loc(at)).
		Set(ast.SlotName, j.name(nameNode)).
		Opt(ast.SlotAlias, j.name(alias))
	return done(d)
}

func (j *jsConv) expr(n *sitter.Node) ast.Node {
	if !present(n) {
		return nil
	}
	switch n.Type() {
	case "identifier", "property_identifier", "shorthand_property_identifier":
		if j.text(n) == "undefined" {
			return j.lit(ast.KindNullLitExpr, n)
		}
		return j.ident(n)
	case "this":
		e := ast.NewLeafExpr(ast.KindThisExpr)
		e.SetLoc(j.loc(n))
		return e
	case "super":
		e := ast.NewLeafExpr(ast.KindSuperExpr)
		e.SetLoc(j.loc(n))
		return e
	case "member_expression":
		m := ast.NewMemberAccessExpr()
		for _, ch := range children(n) {
			if ch.Type() == "." || ch.Type() == "?." || ch.Type() == "optional_chain" {
				m.DotLoc = j.loc(ch)
				break
			}
		}
		b := ast.Build(m).At(j.loc(n)).
			Opt(ast.SlotBase, j.expr(n.ChildByFieldName("object"))).
			Opt(ast.SlotName, j.name(n.ChildByFieldName("property")))
		return done(b)
	case "subscript_expression":
		b := ast.Build(ast.NewSubscriptExpr()).At(j.loc(n)).
			Opt(ast.SlotBase, j.expr(n.ChildByFieldName("object"))).
			Opt(ast.SlotIndex, j.expr(n.ChildByFieldName("index")))
		return done(b)
	case "call_expression":
		return j.call(n, ast.VarietyCall, n.ChildByFieldName("function"))
	case "new_expression":
		return j.call(n, ast.VarietyNew, n.ChildByFieldName("constructor"))
	case "assignment_expression":
		a := ast.Build(ast.NewAssignExpr(ast.VarietyPlain, "=")).At(j.loc(n)).
			Opt(ast.SlotLeft, j.expr(n.ChildByFieldName("left"))).
			Opt(ast.SlotRight, j.expr(n.ChildByFieldName("right")))
		return done(a)
	case "augmented_assignment_expression":
		a := ast.Build(ast.NewAssignExpr(ast.VarietyAugmented, j.text(n.ChildByFieldName("operator")))).At(j.loc(n)).
			Opt(ast.SlotLeft, j.expr(n.ChildByFieldName("left"))).
			Opt(ast.SlotRight, j.expr(n.ChildByFieldName("right")))
		return done(a)
	case "binary_expression":
		b := ast.Build(ast.NewBinaryExpr(j.text(n.ChildByFieldName("operator")))).At(j.loc(n)).
			Opt(ast.SlotLeft, j.expr(n.ChildByFieldName("left"))).
			Opt(ast.SlotRight, j.expr(n.ChildByFieldName("right")))
		return done(b)
	case "sequence_expression":
		kids := named(n)
		if len(kids) < 2 {
			return j.expr(firstNamed(n))
		}
		b := ast.Build(ast.NewBinaryExpr(",")).At(j.loc(n)).
			Opt(ast.SlotLeft, j.expr(kids[0])).
			Opt(ast.SlotRight, j.expr(kids[len(kids)-1]))
		return done(b)
	case "unary_expression", "update_expression":
		return j.unary(n, j.text(n.ChildByFieldName("operator")), n.ChildByFieldName("argument"))
	case "await_expression":
		return j.unary(n, "await", firstNamed(n))
	case "spread_element":
		return j.unary(n, "...", firstNamed(n))
	case "ternary_expression":
		c := ast.Build(ast.NewCondExpr()).At(j.loc(n)).
			Opt(ast.SlotCond, j.expr(n.ChildByFieldName("condition"))).
			Opt(ast.SlotThen, j.expr(n.ChildByFieldName("consequence"))).
			Opt(ast.SlotElse, j.expr(n.ChildByFieldName("alternative")))
		return done(c)
	case "parenthesized_expression":
		return j.expr(firstNamed(n))
	case "number":
		return j.lit(ast.KindNumLitExpr, n)
	case "string", "template_string", "regex":
		return j.lit(ast.KindStrLitExpr, n)
	case "true", "false":
		return j.lit(ast.KindBoolLitExpr, n)
	case "null", "undefined":
		return j.lit(ast.KindNullLitExpr, n)
	case "array":
		b := ast.Build(ast.NewCompositeExpr(ast.KindArrayLitExpr, ast.VarietyList)).At(j.loc(n))
		for _, ch := range named(n) {
			b.Add(ast.SlotInits, j.expr(ch))
		}
		return done(b)
	case "object":
		return j.object(n)
	case "function_expression", "function", "generator_function", "arrow_function":
		return j.funcLit(n)
	}
	return j.errorExpr(n)
}

func (j *jsConv) call(n *sitter.Node, v ast.Variety, fn *sitter.Node) ast.Node {
	b := ast.Build(ast.NewCallExpr(v)).At(j.loc(n)).Opt(ast.SlotBase, j.expr(fn))
	if args := n.ChildByFieldName("arguments"); present(args) && args.Type() == "arguments" {
		for _, a := range named(args) {
			b.Add(ast.SlotArgs, j.expr(a))
		}
	}
	return done(b)
}

func (j *jsConv) unary(n *sitter.Node, op string, arg *sitter.Node) ast.Node {
	return done(ast.Build(ast.NewUnaryExpr(op)).At(j.loc(n)).Opt(ast.SlotExpr, j.expr(arg)))
}

func (j *jsConv) object(n *sitter.Node) ast.Node {
	b := ast.Build(ast.NewCompositeExpr(ast.KindRecordLitExpr, ast.VarietyNone)).At(j.loc(n))
	for _, ch := range named(n) {
		switch ch.Type() {
		case "pair":
			d := ast.Build(ast.NewDesignateExpr()).At(j.loc(ch)).
				Opt(ast.SlotKey, j.name(ch.ChildByFieldName("key"))).
				Opt(ast.SlotValue, j.expr(ch.ChildByFieldName("value")))
			b.Add(ast.SlotInits, done(d))
		case "shorthand_property_identifier":
			d := ast.Build(ast.NewDesignateExpr()).At(j.loc(ch)).
				Set(ast.SlotKey, j.name(ch)).
				Set(ast.SlotValue, j.ident(ch))
			b.Add(ast.SlotInits, done(d))
		case "method_definition":
			d := ast.Build(ast.NewDesignateExpr()).At(j.loc(ch)).
				Opt(ast.SlotKey, j.name(ch.ChildByFieldName("name"))).
				Set(ast.SlotValue, j.funcLit(ch))
			b.Add(ast.SlotInits, done(d))
		case "spread_element":
			b.Add(ast.SlotInits, j.expr(ch))
		}
	}
	return done(b)
}

// funcLit converts function expressions and arrows. A concise arrow body
// stays an expression.
func (j *jsConv) funcLit(n *sitter.Node) ast.Node {
	b := ast.Build(ast.NewFuncLitExpr()).At(j.loc(n))
	if single := n.ChildByFieldName("parameter"); present(single) {
		g := ast.Build(ast.NewParamGroupDecl()).At(j.loc(single))
		g.Add(ast.SlotDecls, j.param(single)...)
		b.Set(ast.SlotParams, done(g))
	} else {
		b.Set(ast.SlotParams, j.params(n.ChildByFieldName("parameters"), nil))
	}
	if body := n.ChildByFieldName("body"); present(body) {
		if body.Type() == "statement_block" {
			b.Set(ast.SlotBody, j.stmt(body))
		} else {
			b.Opt(ast.SlotBody, j.expr(body))
		}
	}
	return done(b)
}
