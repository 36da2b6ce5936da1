package scope

import (
	"github.com/jward/frond/internal/ast"
)

// Tree is the scope tree of one Program.
type Tree struct {
	Root    *Scope
	Program *ast.Program

	scopes   map[ast.Node]*Scope
	all      []*Scope
	bindings []*Binding
	classes  []*Class
	branches int
}

// Build walks prog and returns its scope tree. Candidate types are
// resolved before Build returns, so the tree is read-only afterwards.
func Build(prog *ast.Program) *Tree {
	t := &Tree{Program: prog, scopes: make(map[ast.Node]*Scope)}
	var span ast.SourceLoc
	if prog != nil {
		span = prog.Loc()
	}
	t.Root = newScope(KindModule, nil, prog, span)
	t.add(t.Root)
	if prog != nil {
		b := &builder{tree: t, scope: t.Root, cur: t.Root.flow}
		b.stmts(prog.Stmts)
	}
	t.finalize()
	return t
}

func (t *Tree) add(s *Scope) {
	t.all = append(t.all, s)
	if !ast.IsNil(s.Node) {
		t.scopes[s.Node] = s
	}
}

// ScopeFor returns the scope opened by n, or nil when n opens none.
func (t *Tree) ScopeFor(n ast.Node) *Scope { return t.scopes[n] }

// Scopes returns every scope in the order the walk opened them.
func (t *Tree) Scopes() []*Scope { return t.all }

// Classes returns every class declared in the program.
func (t *Tree) Classes() []*Class { return t.classes }

// Bindings returns every binding in walk order, receiver members
// included.
func (t *Tree) Bindings() []*Binding { return t.bindings }

type shape uint8

const (
	// shapeCall is C(...) or new C(...): an instance of C.
	shapeCall shape = iota
	// shapeIdent is a bare C: the class object itself.
	shapeIdent
	// shapeSpec is an annotation naming C: an instance of C.
	shapeSpec
)

// pending records how to derive a binding's types once every class in the
// program is known.
type pending struct {
	shape shape
	name  string
	scope *Scope
	at    ast.Pos
}

type builder struct {
	tree  *Tree
	scope *Scope
	cur   *block
	path  BranchPath
}

type frame struct {
	scope *Scope
	cur   *block
	path  BranchPath
}

func (b *builder) push(k Kind, node ast.Node, span ast.SourceLoc) (*Scope, frame) {
	f := frame{scope: b.scope, cur: b.cur, path: b.path}
	s := newScope(k, b.scope, node, span)
	b.tree.add(s)
	b.scope, b.cur, b.path = s, s.flow, nil
	return s, f
}

func (b *builder) pop(f frame) {
	b.scope, b.cur, b.path = f.scope, f.cur, f.path
}

func (b *builder) bind(name string, kind BindingKind, decl, at ast.Node, pos ast.Pos, p *pending) *Binding {
	if name == "" {
		return nil
	}
	bd := b.newBinding(name, kind, decl, at, pos, p)
	bd.Scope = b.scope
	b.scope.declare(bd)
	b.cur.items = append(b.cur.items, item{binding: bd})
	return bd
}

func (b *builder) newBinding(name string, kind BindingKind, decl, at ast.Node, pos ast.Pos, p *pending) *Binding {
	bd := &Binding{
		Name:   name,
		Kind:   kind,
		Decl:   decl,
		Branch: append(BranchPath(nil), b.path...),
		At:     pos,
	}
	if !ast.IsNil(at) {
		bd.Loc = at.Loc()
	}
	if p != nil {
		bd.pending = p
		bd.state = statePending
	}
	b.tree.bindings = append(b.tree.bindings, bd)
	return bd
}

type armSpec struct {
	loc  ast.SourceLoc
	walk func()
}

func (b *builder) stmtArm(n ast.Node) armSpec {
	return armSpec{loc: n.Loc(), walk: func() { b.stmt(n) }}
}

// branch records a conditional construct starting at start and walks its
// arms, each into its own block.
func (b *builder) branch(start ast.Pos, exhaustive bool, arms ...armSpec) {
	if len(arms) == 0 {
		return
	}
	br := &branch{id: b.tree.branches, exhaustive: exhaustive}
	b.tree.branches++
	br.loc = ast.SourceLoc{Start: start, End: arms[len(arms)-1].loc.End}
	b.cur.items = append(b.cur.items, item{branch: br})
	saved := b.cur
	for i, a := range arms {
		blk := &block{}
		br.arms = append(br.arms, &arm{loc: a.loc, body: blk})
		b.cur = blk
		b.path = append(b.path, BranchStep{Branch: br.id, Arm: i})
		a.walk()
		b.path = b.path[:len(b.path)-1]
	}
	b.cur = saved
}

func (b *builder) stmts(l *ast.List) {
	for _, s := range l.Items() {
		b.stmt(s)
	}
}

func (b *builder) stmt(n ast.Node) {
	if ast.IsNil(n) {
		return
	}
	switch s := n.(type) {
	case *ast.BlockStmt:
		b.stmts(s.Stmts)
	case *ast.ExprStmt:
		b.expr(s.Expr)
	case *ast.DeclStmt:
		b.decl(s.Decl)
	case *ast.IfStmt:
		b.expr(s.Cond)
		var arms []armSpec
		if !ast.IsNil(s.Then) {
			arms = append(arms, b.stmtArm(s.Then))
		}
		if !ast.IsNil(s.Else) {
			arms = append(arms, b.stmtArm(s.Else))
		}
		b.branch(s.Loc().Start, !ast.IsNil(s.Then) && !ast.IsNil(s.Else), arms...)
	case *ast.WhileStmt:
		b.expr(s.Cond)
		if !ast.IsNil(s.Body) {
			b.branch(s.Loc().Start, false, b.stmtArm(s.Body))
		}
		if !ast.IsNil(s.Else) {
			b.branch(s.Else.Loc().Start, false, b.stmtArm(s.Else))
		}
	case *ast.ForStmt:
		b.stmt(s.Init)
		b.expr(s.Cond)
		if !ast.IsNil(s.Body) {
			b.branch(s.Loc().Start, false, armSpec{loc: s.Body.Loc(), walk: func() {
				b.stmt(s.Body)
				b.expr(s.Post)
			}})
		}
	case *ast.ForeachStmt:
		b.expr(s.Range)
		loc := s.Loc()
		if !ast.IsNil(s.Body) {
			loc = s.Body.Loc()
		}
		b.branch(s.Loc().Start, false, armSpec{loc: loc, walk: func() {
			b.target(s.Target, s, nil, endOf(s.Target))
			b.stmt(s.Body)
		}})
		if !ast.IsNil(s.Else) {
			b.branch(s.Else.Loc().Start, false, b.stmtArm(s.Else))
		}
	case *ast.TryStmt:
		b.try(s)
	case *ast.WithStmt:
		b.expr(s.Expr)
		b.target(s.Target, s, nil, endOf(s.Target))
		b.stmt(s.Body)
	case *ast.JumpStmt:
		b.expr(s.Expr)
	}
}

// try treats the protected body and each handler as arms. Without
// handlers the body always completes before the code that follows, so the
// construct is exhaustive. A finally block runs unconditionally.
func (b *builder) try(s *ast.TryStmt) {
	var arms []armSpec
	if !ast.IsNil(s.Body) {
		loc := s.Body.Loc()
		if !ast.IsNil(s.Else) {
			loc = loc.Join(s.Else.Loc())
		}
		arms = append(arms, armSpec{loc: loc, walk: func() {
			b.stmt(s.Body)
			b.stmt(s.Else)
		}})
	}
	for _, c := range s.Catches.Items() {
		cc := c.(*ast.CatchClauseStmt)
		arms = append(arms, armSpec{loc: cc.Loc(), walk: func() {
			b.decl(cc.Decl)
			b.stmt(cc.Body)
		}})
	}
	b.branch(s.Loc().Start, s.Catches.Len() == 0, arms...)
	b.stmt(s.Finally)
}

func (b *builder) decl(n ast.Node) {
	if ast.IsNil(n) {
		return
	}
	switch d := n.(type) {
	case *ast.RecordDecl:
		b.class(d)
	case *ast.FuncDecl:
		b.funcDecl(d)
	case *ast.VarGroupDecl:
		for _, v := range d.Decls.Items() {
			b.decl(v)
		}
	case *ast.VarDecl:
		b.expr(d.Init)
		pos := endOf(d.Name)
		if !ast.IsNil(d.Init) {
			pos = endOf(d.Init)
		}
		p := b.pendingFor(d.Init, pos)
		if p == nil {
			p = b.pendingSpec(d.Spec, pos)
		}
		b.bind(ast.NameText(d.Name), BindVar, d, d.Name, pos, p)
	case *ast.ImportGroupDecl:
		for _, i := range d.Decls.Items() {
			b.decl(i)
		}
	case *ast.ImportDecl:
		nm := d.Alias
		if ast.IsNil(nm) {
			nm = d.Name
			if nn, ok := nm.(*ast.NestedName); ok && nn.Names.Len() > 0 {
				nm = nn.Names.At(0)
			}
		}
		b.bind(ast.NameText(nm), BindImport, d, nm, d.Loc().End, nil)
	case *ast.ParamDecl:
		b.expr(d.Init)
		b.bind(ast.NameText(d.Name), BindParam, d, d.Name, d.Loc().End, b.pendingSpec(d.Spec, d.Loc().Start))
	}
}

func (b *builder) decorators(attrs *ast.List) {
	for _, a := range attrs.Items() {
		if d, ok := a.(*ast.DecoratorAttr); ok {
			b.expr(d.Expr)
		}
	}
}

func (b *builder) class(d *ast.RecordDecl) {
	b.decorators(d.Attrs)
	cls := &Class{Name: ast.NameText(d.Name), Decl: d}
	for _, base := range d.Bases.Items() {
		if bd, ok := base.(*ast.BaseDecl); ok {
			cls.baseNames = append(cls.baseNames, ast.NameText(bd.Name))
		}
	}
	if bd := b.bind(cls.Name, BindClass, d, d.Name, startOf(d.Name), nil); bd != nil {
		bd.Types = []Type{{Class: cls}}
	}
	s, f := b.push(KindClass, d, spanOf(d.Body, d))
	s.Class = cls
	cls.Scope = s
	b.tree.classes = append(b.tree.classes, cls)
	b.stmt(d.Body)
	b.pop(f)
}

func (b *builder) funcDecl(d *ast.FuncDecl) {
	b.decorators(d.Attrs)
	owner := b.scope
	b.defaults(d.Params)
	b.bind(ast.NameText(d.Name), BindFunc, d, d.Name, startOf(d.Name), nil)
	s, f := b.push(KindFunction, d, spanOf(d.Body, d))
	if owner.Kind == KindClass && !d.HasAttr("static") {
		s.Class = owner.Class
		s.static = d.HasAttr("classmethod")
	}
	b.params(d.Params)
	b.stmt(d.Body)
	b.pop(f)
}

func (b *builder) funcLit(e *ast.FuncLitExpr) {
	b.defaults(e.Params)
	_, f := b.push(KindFunction, e, spanOf(e.Body, e))
	b.params(e.Params)
	if ast.IsNil(e.Body) || e.Body.IsStmt() {
		b.stmt(e.Body)
	} else {
		b.expr(e.Body)
	}
	b.pop(f)
}

// defaults walks parameter default values, which belong to the enclosing
// scope.
func (b *builder) defaults(params ast.Node) {
	g, ok := params.(*ast.ParamGroupDecl)
	if !ok {
		return
	}
	for _, p := range g.Decls.Items() {
		if pd, ok := p.(*ast.ParamDecl); ok {
			b.expr(pd.Init)
		}
	}
}

// params binds the parameters of the current function scope. In a method
// the first one is the receiver and is typed by the enclosing class.
func (b *builder) params(params ast.Node) {
	g, ok := params.(*ast.ParamGroupDecl)
	if !ok {
		return
	}
	s := b.scope
	for i, p := range g.Decls.Items() {
		pd, ok := p.(*ast.ParamDecl)
		if !ok {
			continue
		}
		name := ast.NameText(pd.Name)
		if i == 0 && s.Class != nil {
			if bd := b.bind(name, BindParam, pd, pd.Name, pd.Loc().Start, nil); bd != nil {
				s.receiver = name
				bd.Types = []Type{{Class: s.Class, Instance: !s.static}}
			}
			continue
		}
		b.bind(name, BindParam, pd, pd.Name, pd.Loc().Start, b.pendingSpec(pd.Spec, pd.Loc().Start))
	}
}

func (b *builder) expr(n ast.Node) {
	if ast.IsNil(n) {
		return
	}
	switch e := n.(type) {
	case *ast.AssignExpr:
		b.assign(e)
		return
	case *ast.FuncLitExpr:
		b.funcLit(e)
		return
	}
	for _, ch := range ast.Children(n) {
		b.expr(ch)
	}
}

func (b *builder) assign(e *ast.AssignExpr) {
	b.expr(e.Right)
	if e.Variety() == ast.VarietyAugmented {
		b.expr(e.Left)
		return
	}
	pos := endOf(e.Left)
	if !ast.IsNil(e.Right) {
		pos = endOf(e.Right)
	}
	value := e.Right
	for {
		inner, ok := value.(*ast.AssignExpr)
		if !ok {
			break
		}
		value = inner.Right
	}
	b.target(e.Left, e, value, pos)
}

// target binds the names an assignment, loop or with statement writes.
func (b *builder) target(n ast.Node, decl ast.Node, value ast.Node, pos ast.Pos) {
	if ast.IsNil(n) {
		return
	}
	switch t := n.(type) {
	case *ast.IdentExpr:
		b.bind(ast.NameText(t.Name), BindVar, decl, t.Name, pos, b.pendingFor(value, pos))
	case *ast.CompositeExpr:
		for _, it := range t.Inits.Items() {
			b.target(it, decl, nil, pos)
		}
	case *ast.UnaryExpr:
		b.target(t.Expr, decl, nil, pos)
	case *ast.MemberAccessExpr:
		b.expr(t.Base)
		b.member(t, decl, value, pos)
	case *ast.SubscriptExpr:
		b.expr(t)
	default:
		if n.IsDecl() {
			b.decl(n)
		}
	}
}

// member records receiver.name = value as a member of the receiver's
// class.
func (b *builder) member(m *ast.MemberAccessExpr, decl, value ast.Node, pos ast.Pos) {
	var recv string
	switch base := m.Base.(type) {
	case *ast.IdentExpr:
		recv = ast.NameText(base.Name)
	case *ast.LeafExpr:
		if base.Kind() == ast.KindThisExpr {
			recv = "this"
		}
	}
	cls := b.receiverClass(recv)
	name := ast.NameText(m.Name)
	if cls == nil || name == "" {
		return
	}
	bd := b.newBinding(name, BindMember, decl, m.Name, pos, b.pendingFor(value, pos))
	bd.Scope = cls.Scope
	cls.addAttr(bd)
}

// receiverClass returns the class an instance receiver named name refers
// to from the current scope, looking through nested functions.
func (b *builder) receiverClass(name string) *Class {
	if name == "" {
		return nil
	}
	for s := b.scope; s != nil && s.Kind == KindFunction; s = s.Parent {
		if s.receiver == name {
			if s.static {
				return nil
			}
			return s.Class
		}
		if s.Has(name) {
			return nil
		}
	}
	return nil
}

func (b *builder) pendingFor(value ast.Node, pos ast.Pos) *pending {
	switch v := value.(type) {
	case *ast.CallExpr:
		if id, ok := v.Base.(*ast.IdentExpr); ok {
			return &pending{shape: shapeCall, name: ast.NameText(id.Name), scope: b.scope, at: pos}
		}
	case *ast.IdentExpr:
		return &pending{shape: shapeIdent, name: ast.NameText(v.Name), scope: b.scope, at: pos}
	}
	return nil
}

func (b *builder) pendingSpec(spec ast.Node, pos ast.Pos) *pending {
	ns, ok := spec.(*ast.NamedSpec)
	if !ok {
		return nil
	}
	nm, ok := ns.Name.(*ast.Name)
	if !ok {
		return nil
	}
	return &pending{shape: shapeSpec, name: nm.Text, scope: b.scope, at: pos}
}

// finalize resolves class bases and then every pending binding type.
func (t *Tree) finalize() {
	for _, c := range t.classes {
		parent := c.Scope.Parent
		for _, name := range c.baseNames {
			for _, bd := range t.Lookup(parent, name, startOf(c.Decl)) {
				for _, ty := range bd.Types {
					if !ty.Instance && ty.Class != c {
						c.Bases = appendClass(c.Bases, ty.Class)
					}
				}
			}
		}
	}
	for _, bd := range t.bindings {
		t.resolve(bd)
	}
}

func (t *Tree) resolve(bd *Binding) {
	if bd.state != statePending {
		return
	}
	bd.state = stateResolving
	p := bd.pending
	var out []Type
	for _, src := range t.Lookup(p.scope, p.name, p.at) {
		t.resolve(src)
		for _, ty := range src.Types {
			if ty.Class == nil || ty.Instance {
				continue
			}
			if p.shape == shapeIdent {
				out = addTypes(out, ty)
			} else {
				out = addTypes(out, Type{Class: ty.Class, Instance: true})
			}
		}
	}
	bd.Types = out
	bd.pending = nil
	bd.state = stateDone
}

func appendClass(cs []*Class, c *Class) []*Class {
	for _, x := range cs {
		if x == c {
			return cs
		}
	}
	return append(cs, c)
}

func startOf(n ast.Node) ast.Pos {
	if ast.IsNil(n) {
		return ast.Pos{}
	}
	return n.Loc().Start
}

func endOf(n ast.Node) ast.Pos {
	if ast.IsNil(n) {
		return ast.Pos{}
	}
	return n.Loc().End
}

// spanOf is the body span of a scope-opening node, or the node's own span
// when it has no body.
func spanOf(body, owner ast.Node) ast.SourceLoc {
	if !ast.IsNil(body) {
		return body.Loc()
	}
	return owner.Loc()
}
