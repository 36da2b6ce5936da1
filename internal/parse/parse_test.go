package parse

import (
	"context"
	"errors"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/frond/internal/ast"
)

func parseSource(t *testing.T, lang, src string) *ast.Program {
	t.Helper()
	prog, err := Source(context.Background(), lang, []byte(src), "test")
	require.NoError(t, err)
	require.NotNil(t, prog)
	return prog
}

// collect returns every node of kind k in source order.
func collect(root ast.Node, k ast.Kind) []ast.Node {
	var out []ast.Node
	ast.Inspect(root, func(n ast.Node) bool {
		if n.Kind() == k {
			out = append(out, n)
		}
		return true
	})
	return out
}

func TestLanguageForFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"main.py", "python", true},
		{"lib/app.JS", "javascript", true},
		{"mod.mjs", "javascript", true},
		{"main.go", "", false},
		{"README", "", false},
	}
	for _, tt := range tests {
		got, ok := LanguageForFile(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestForLanguageUnknown(t *testing.T) {
	t.Parallel()

	_, err := ForLanguage("cobol")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
	assert.Equal(t, []string{"javascript", "python"}, Languages())

	fe, err := ForLanguage("Python")
	require.NoError(t, err)
	assert.Equal(t, "python", fe.Language())
}

func TestLineIndexRuneColumns(t *testing.T) {
	t.Parallel()

	li := newLineIndex([]byte("héllo = 1\nx\r\n"))
	assert.Equal(t, []byte("héllo = 1"), li.line(0))
	assert.Equal(t, []byte("x"), li.line(1))
	// "é" is two bytes; byte column 7 is the "=".
	assert.Equal(t, ast.Pos{Line: 1, Col: 7}, li.pos(sitter.Point{Row: 0, Column: 7}))
	assert.Equal(t, ast.Pos{Line: 1, Col: 10}, li.lineEnd(0))
	assert.Equal(t, ast.Pos{Line: 3, Col: 1}, li.span().End)
}

func TestPythonClassAndMethods(t *testing.T) {
	t.Parallel()

	src := `class Point(Base):
    def __init__(self, x, y=0):
        self.x = x
        self.y = y

    @staticmethod
    def origin():
        return Point(0, 0)

    def show(self):
        pass
`
	prog := parseSource(t, "python", src)
	assert.True(t, prog.Offside)
	assert.Equal(t, "python", prog.Lang)
	require.Equal(t, 1, prog.Stmts.Len())

	recs := collect(prog, ast.KindRecordDecl)
	require.Len(t, recs, 1)
	rec := recs[0].(*ast.RecordDecl)
	assert.Equal(t, "Point", ast.NameText(rec.Name))
	require.Equal(t, 1, rec.Bases.Len())
	assert.Equal(t, "Base", ast.NameText(rec.Bases.At(0).(*ast.BaseDecl).Name))
	assert.Equal(t, 1, rec.Loc().Start.Line)

	funcs := collect(prog, ast.KindFuncDecl)
	require.Len(t, funcs, 3)
	init := funcs[0].(*ast.FuncDecl)
	assert.Equal(t, ast.VarietyConstructor, init.Variety())
	params := init.Params.(*ast.ParamGroupDecl)
	require.Equal(t, 3, params.Decls.Len())
	assert.Equal(t, "self", ast.NameText(params.Decls.At(0).(*ast.ParamDecl).Name))
	assert.NotNil(t, params.Decls.At(2).(*ast.ParamDecl).Init)

	origin := funcs[1].(*ast.FuncDecl)
	assert.Equal(t, ast.VarietyMethod, origin.Variety())
	assert.True(t, origin.HasAttr("static"))

	show := funcs[2].(*ast.FuncDecl)
	assert.Equal(t, "show", ast.NameText(show.Name))
	assert.False(t, show.HasAttr("static"))

	assigns := collect(prog, ast.KindAssignExpr)
	require.Len(t, assigns, 2)
	left := assigns[0].(*ast.AssignExpr).Left
	require.Equal(t, ast.KindMemberAccessExpr, left.Kind())
	assert.Equal(t, "x", ast.NameText(left.(*ast.MemberAccessExpr).Name))

	calls := collect(prog, ast.KindCallExpr)
	require.Len(t, calls, 1)
	assert.Equal(t, 2, calls[0].(*ast.CallExpr).Args.Len())
}

func TestPythonIfElifElseChain(t *testing.T) {
	t.Parallel()

	src := `if a:
    p = A()
elif b:
    p = B()
else:
    p = C()
`
	prog := parseSource(t, "python", src)
	require.Equal(t, 1, prog.Stmts.Len())
	top, ok := prog.Stmts.At(0).(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, top.Then)
	elif, ok := top.Else.(*ast.IfStmt)
	require.True(t, ok, "elif nests as IfStmt")
	require.NotNil(t, elif.Else)
	assert.Equal(t, ast.KindBlockStmt, elif.Else.Kind())
	assert.Equal(t, 3, top.ElseLoc.Start.Line)
	assert.Equal(t, 5, elif.ElseLoc.Start.Line)
	assert.Len(t, collect(prog, ast.KindAssignExpr), 3)
}

func TestPythonOffsideBlockSpan(t *testing.T) {
	t.Parallel()

	src := "def f():\n    p = 1\n    p\n"
	prog := parseSource(t, "python", src)
	fn := collect(prog, ast.KindFuncDecl)[0].(*ast.FuncDecl)
	// Body extends at least to the end of its last line.
	assert.False(t, fn.Body.Loc().End.Before(ast.Pos{Line: 3, Col: 6}))
	assert.True(t, fn.Loc().Contains(ast.Pos{Line: 3, Col: 6}))
}

func TestJavaScriptUnclosedBodySpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		end  ast.Pos
	}{
		{"function", "function f() {\n  let p = 1;\n  ", ast.Pos{Line: 3, Col: 3}},
		{"method", "class A {\n  m() {\n    ", ast.Pos{Line: 3, Col: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			prog := parseSource(t, "javascript", tt.src)
			fns := collect(prog, ast.KindFuncDecl)
			fns = append(fns, collect(prog, ast.KindFuncLitExpr)...)
			require.NotEmpty(t, fns)
			for _, fn := range fns {
				assert.True(t, fn.Loc().Contains(tt.end), "%s %+v", fn.Kind(), fn.Loc())
			}
		})
	}
}

func TestJavaScriptClosedBodySpan(t *testing.T) {
	t.Parallel()

	prog := parseSource(t, "javascript", "function f() {\n  p\n}\nlet q = 1;\n")
	fn := collect(prog, ast.KindFuncDecl)[0].(*ast.FuncDecl)
	assert.Equal(t, ast.Pos{Line: 3, Col: 2}, fn.Body.Loc().End)
}

func TestPythonImportsAndLoops(t *testing.T) {
	t.Parallel()

	src := `import os.path as osp, sys
from collections import OrderedDict as OD, deque
for i, v in enumerate(xs):
    total += v
while x:
    break
try:
    pass
except ValueError as err:
    pass
finally:
    pass
with open(f) as fh:
    pass
squares = [n * n for n in range(10) if n % 2]
`
	prog := parseSource(t, "python", src)

	groups := collect(prog, ast.KindImportGroupDecl)
	require.Len(t, groups, 2)
	first := groups[0].(*ast.ImportGroupDecl)
	require.Equal(t, 2, first.Decls.Len())
	d0 := first.Decls.At(0).(*ast.ImportDecl)
	assert.Equal(t, "os.path", ast.NameText(d0.Name))
	assert.Equal(t, "osp", ast.NameText(d0.Alias))
	second := groups[1].(*ast.ImportGroupDecl)
	assert.Equal(t, "collections", ast.NameText(second.Module))
	assert.Equal(t, 2, second.Decls.Len())

	fe := collect(prog, ast.KindForeachStmt)
	require.Len(t, fe, 1)
	assert.Equal(t, ast.KindArrayLitExpr, fe[0].(*ast.ForeachStmt).Target.Kind())

	aug := collect(prog, ast.KindAssignExpr)
	require.NotEmpty(t, aug)
	assert.Equal(t, ast.VarietyAugmented, aug[0].Variety())

	assert.Len(t, collect(prog, ast.KindWhileStmt), 1)
	assert.Len(t, collect(prog, ast.KindBreakStmt), 1)

	catches := collect(prog, ast.KindCatchClauseStmt)
	require.Len(t, catches, 1)
	decl := catches[0].(*ast.CatchClauseStmt).Decl.(*ast.ParamDecl)
	assert.Equal(t, "err", ast.NameText(decl.Name))
	assert.Equal(t, "ValueError", ast.NameText(decl.Spec.(*ast.NamedSpec).Name))
	try := collect(prog, ast.KindTryStmt)[0].(*ast.TryStmt)
	assert.NotNil(t, try.Finally)

	with := collect(prog, ast.KindWithStmt)
	require.Len(t, with, 1)
	assert.Equal(t, "fh", ast.NameText(with[0].(*ast.WithStmt).Target.(*ast.IdentExpr).Name))

	comps := collect(prog, ast.KindListCompExpr)
	require.Len(t, comps, 1)
	lc := comps[0].(*ast.ListCompExpr)
	assert.Equal(t, 1, lc.Generators.Len())
	assert.Equal(t, 1, lc.Filters.Len())
}

func TestPythonIncompleteAssignment(t *testing.T) {
	t.Parallel()

	src := "class Point:\n    pass\np = "
	prog := parseSource(t, "python", src)
	assert.Len(t, collect(prog, ast.KindRecordDecl), 1)

	// Whatever shape the recovery takes, p is still assigned.
	var found bool
	for _, a := range collect(prog, ast.KindAssignExpr) {
		if id, ok := a.(*ast.AssignExpr).Left.(*ast.IdentExpr); ok && ast.NameText(id.Name) == "p" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMalformedInputNeverFails(t *testing.T) {
	t.Parallel()

	inputs := map[string][]string{
		"python":     {"", "def (:", "class :\n  ))", "x = [1, 2", "@\n", "if:\nelse"},
		"javascript": {"", "function (", "class { x(", "let = ;", "a.b.", "}}}"},
	}
	for lang, srcs := range inputs {
		for _, src := range srcs {
			prog := parseSource(t, lang, src)
			assert.Equal(t, ast.KindProgram, prog.Kind())
			ast.Inspect(prog, func(n ast.Node) bool {
				assert.True(t, n.Kind().Valid())
				return true
			})
		}
	}
}

func TestJavaScriptClassesAndThis(t *testing.T) {
	t.Parallel()

	src := `import Foo, { bar as baz } from './foo.js';
class Point extends Shape {
  x = 0;
  constructor(x, y) {
    this.x = x;
    this.y = y;
  }
  static origin() { return new Point(0, 0); }
  show() {}
}
const p = new Point(1, 2), q = 3;
let { a, b: [c] } = obj;
const f = (z) => z + 1;
`
	prog := parseSource(t, "javascript", src)
	assert.False(t, prog.Offside)

	imports := collect(prog, ast.KindImportDecl)
	require.Len(t, imports, 2)
	assert.Equal(t, "Foo", ast.NameText(imports[0].(*ast.ImportDecl).Name))
	assert.Equal(t, "baz", ast.NameText(imports[1].(*ast.ImportDecl).Alias))
	group := collect(prog, ast.KindImportGroupDecl)[0].(*ast.ImportGroupDecl)
	assert.Equal(t, "./foo.js", ast.NameText(group.Module))

	rec := collect(prog, ast.KindRecordDecl)[0].(*ast.RecordDecl)
	assert.Equal(t, "Point", ast.NameText(rec.Name))
	require.Equal(t, 1, rec.Bases.Len())
	assert.Equal(t, "Shape", ast.NameText(rec.Bases.At(0).(*ast.BaseDecl).Name))

	funcs := collect(rec, ast.KindFuncDecl)
	require.Len(t, funcs, 3)
	ctor := funcs[0].(*ast.FuncDecl)
	assert.Equal(t, ast.VarietyConstructor, ctor.Variety())
	ctorParams := ctor.Params.(*ast.ParamGroupDecl)
	require.Equal(t, 3, ctorParams.Decls.Len())
	this := ctorParams.Decls.At(0).(*ast.ParamDecl)
	assert.Equal(t, ast.VarietyImplicit, this.Variety())
	assert.Equal(t, "this", ast.NameText(this.Name))

	origin := funcs[1].(*ast.FuncDecl)
	assert.True(t, origin.HasAttr("static"))
	assert.Equal(t, 0, origin.Params.(*ast.ParamGroupDecl).Decls.Len())

	assert.NotEmpty(t, collect(rec, ast.KindThisExpr))

	news := collect(prog, ast.KindCallExpr)
	var newCount int
	for _, c := range news {
		if c.Variety() == ast.VarietyNew {
			newCount++
		}
	}
	assert.Equal(t, 2, newCount)

	var names []string
	for _, v := range collect(prog, ast.KindVarDecl) {
		names = append(names, ast.NameText(v.(*ast.VarDecl).Name))
	}
	assert.Equal(t, []string{"x", "p", "q", "a", "c", "f"}, names)

	assert.Len(t, collect(prog, ast.KindFuncLitExpr), 1)
}

func TestJavaScriptControlFlow(t *testing.T) {
	t.Parallel()

	src := `if (a) { p = new A(); } else if (b) { p = new B(); } else { p = null; }
for (let i = 0; i < n; i++) { }
for (const k of ks) { }
while (x) { break; }
do { continue; } while (y);
try { f(); } catch (e) { g(e); } finally { h(); }
`
	prog := parseSource(t, "javascript", src)
	ifs := collect(prog, ast.KindIfStmt)
	require.Len(t, ifs, 2)
	assert.Same(t, ifs[1], ifs[0].(*ast.IfStmt).Else)

	fs := collect(prog, ast.KindForStmt)
	require.Len(t, fs, 1)
	assert.NotNil(t, fs[0].(*ast.ForStmt).Init)
	assert.NotNil(t, fs[0].(*ast.ForStmt).Cond)

	fe := collect(prog, ast.KindForeachStmt)
	require.Len(t, fe, 1)
	assert.Equal(t, ast.KindVarGroupDecl, fe[0].(*ast.ForeachStmt).Target.Kind())

	assert.Len(t, collect(prog, ast.KindWhileStmt), 2)
	catch := collect(prog, ast.KindCatchClauseStmt)
	require.Len(t, catch, 1)
	assert.Equal(t, "e", ast.NameText(catch[0].(*ast.CatchClauseStmt).Decl.(*ast.ParamDecl).Name))
	assert.NotNil(t, collect(prog, ast.KindTryStmt)[0].(*ast.TryStmt).Finally)
}
