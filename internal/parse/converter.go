package parse

import (
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/frond/internal/ast"
)

// lineIndex converts tree-sitter byte points into 1-based character
// positions.
type lineIndex struct {
	src    []byte
	starts []int
}

func newLineIndex(src []byte) *lineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts}
}

// line returns the bytes of row (0-based) without its terminator.
func (li *lineIndex) line(row int) []byte {
	if row < 0 || row >= len(li.starts) {
		return nil
	}
	start := li.starts[row]
	end := len(li.src)
	if row+1 < len(li.starts) {
		end = li.starts[row+1] - 1
	}
	if end > start && li.src[end-1] == '\r' {
		end--
	}
	return li.src[start:end]
}

func (li *lineIndex) pos(p sitter.Point) ast.Pos {
	row := int(p.Row)
	line := li.line(row)
	col := int(p.Column)
	if col > len(line) {
		col = len(line)
	}
	return ast.Pos{Line: row + 1, Col: utf8.RuneCount(line[:col]) + 1}
}

// lineEnd is the position just past the last character of row.
func (li *lineIndex) lineEnd(row int) ast.Pos {
	return ast.Pos{Line: row + 1, Col: utf8.RuneCount(li.line(row)) + 1}
}

// span covers the whole source.
func (li *lineIndex) span() ast.SourceLoc {
	return ast.SourceLoc{Start: ast.Pos{Line: 1, Col: 1}, End: li.lineEnd(len(li.starts) - 1)}
}

// converter holds state shared by the language-specific conversions.
type converter struct {
	src   []byte
	lines *lineIndex
	prog  *ast.Program

	// inClass is set while converting the direct body of a class.
	inClass bool
}

func newConverter(src []byte, prog *ast.Program) *converter {
	return &converter{src: src, lines: newLineIndex(src), prog: prog}
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(c.src)
}

func (c *converter) loc(n *sitter.Node) ast.SourceLoc {
	return ast.SourceLoc{Start: c.lines.pos(n.StartPoint()), End: c.lines.pos(n.EndPoint())}
}

// offsideLoc extends n's span to the end of its last line. Indentation
// scoped blocks have no closing token, so a cursor after the last statement
// on that line still belongs to the block.
func (c *converter) offsideLoc(n *sitter.Node) ast.SourceLoc {
	loc := c.loc(n)
	if c.prog.Offside {
		if end := c.lines.lineEnd(int(n.EndPoint().Row)); loc.End.Before(end) {
			loc.End = end
		}
	}
	return loc
}

// present reports whether n exists in the source. MISSING nodes are
// inserted by error recovery and carry no text.
func present(n *sitter.Node) bool {
	return n != nil && !n.IsMissing()
}

func named(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if ch := n.NamedChild(i); ch != nil && ch.Type() != "comment" {
			out = append(out, ch)
		}
	}
	return out
}

func children(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.ChildCount())
	for i := 0; i < int(n.ChildCount()); i++ {
		if ch := n.Child(i); ch != nil {
			out = append(out, ch)
		}
	}
	return out
}

func (c *converter) name(n *sitter.Node) ast.Node {
	if !present(n) {
		return nil
	}
	nm := ast.NewName(ast.KindSimpleName, c.text(n))
	nm.SetLoc(c.loc(n))
	return nm
}

// dotted builds a NestedName from the identifier children of n, or a
// SimpleName when there is just one.
func (c *converter) dotted(n *sitter.Node, parts []*sitter.Node) ast.Node {
	if len(parts) == 0 {
		return c.name(n)
	}
	if len(parts) == 1 {
		return c.name(parts[0])
	}
	nn := ast.Build(ast.NewNestedName()).At(c.loc(n))
	for _, p := range parts {
		nn.Add(ast.SlotNames, c.name(p))
	}
	return done(nn)
}

func (c *converter) ident(n *sitter.Node) ast.Node {
	if !present(n) {
		return nil
	}
	return done(ast.Build(ast.NewIdentExpr()).Set(ast.SlotName, c.name(n)).At(c.loc(n)))
}

func (c *converter) errorExpr(n *sitter.Node) ast.Node {
	e := ast.NewLeafExpr(ast.KindErrorExpr)
	e.SetLoc(c.loc(n))
	return e
}

func (c *converter) lit(k ast.Kind, n *sitter.Node) ast.Node {
	l := ast.NewLitExpr(k, c.text(n))
	l.SetLoc(c.loc(n))
	return l
}

// namedSpec wraps a type expression as a NamedSpec when it is a plain or
// dotted identifier, and an OpaqueSpec otherwise.
func (c *converter) namedSpec(n *sitter.Node, nm ast.Node) ast.Node {
	if ast.IsNil(nm) {
		s := ast.NewLeafSpec(ast.KindOpaqueSpec)
		s.SetLoc(c.loc(n))
		return s
	}
	return done(ast.Build(ast.NewNamedSpec()).Set(ast.SlotName, nm).At(c.loc(n)))
}

func (c *converter) exprStmt(e ast.Node, loc ast.SourceLoc) ast.Node {
	if ast.IsNil(e) {
		return nil
	}
	return done(ast.Build(ast.NewExprStmt()).Set(ast.SlotExpr, e).At(loc))
}

func (c *converter) declStmt(d ast.Node) ast.Node {
	if ast.IsNil(d) {
		return nil
	}
	return done(ast.Build(ast.NewDeclStmt()).Set(ast.SlotDecl, d).At(d.Loc()))
}

func (c *converter) block(stmts []ast.Node, loc ast.SourceLoc) *ast.BlockStmt {
	b := ast.Build(ast.NewBlockStmt()).At(loc)
	b.Add(ast.SlotStmts, stmts...)
	return done(b)
}

// incompleteAssign is "name =" with nothing after it.
func (c *converter) incompleteAssign(lhs *sitter.Node, eq *sitter.Node) ast.Node {
	loc := c.loc(lhs).Join(c.loc(eq))
	a := ast.Build(ast.NewAssignExpr(ast.VarietyPlain, "=")).Set(ast.SlotLeft, c.ident(lhs)).At(loc)
	return c.exprStmt(done(a), loc)
}

// done finishes a builder chain. Converters only issue mutations their
// nodes support, so a failure is an internal error.
func done[T ast.Node](b *ast.Builder[T]) T {
	if err := b.Err(); err != nil {
		ast.Assert(false, "%v", err)
	}
	return b.Node()
}
