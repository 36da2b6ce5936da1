// Package scope builds the lexical scope tree of a parsed program and
// answers name and member queries against it.
//
// Build walks a Program once. Module, class and function bodies (lambdas
// and arrow functions included) get their own Scope. Conditional
// constructs do not: bindings made inside them carry a BranchPath and the
// scope keeps a flow tree, so the bindings reaching a given use point are
// computed lazily when a query asks for them.
//
// A Tree is immutable once Build returns and is safe for concurrent reads.
package scope

import (
	"fmt"
	"strings"

	"github.com/jward/frond/internal/ast"
)

// Kind classifies a scope.
type Kind uint8

const (
	KindModule Kind = iota
	KindClass
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	}
	return ""
}

// BindingKind says what introduced a binding.
type BindingKind uint8

const (
	BindVar BindingKind = iota
	BindParam
	BindFunc
	BindClass
	BindImport
	// BindMember is an attribute assigned through a method receiver, such
	// as self.x = ... or this.x = ...
	BindMember
)

var bindingKindNames = [...]string{
	BindVar:    "var",
	BindParam:  "param",
	BindFunc:   "func",
	BindClass:  "class",
	BindImport: "import",
	BindMember: "member",
}

func (k BindingKind) String() string {
	if int(k) >= len(bindingKindNames) {
		return ""
	}
	return bindingKindNames[k]
}

// Class is a class declared in the program.
type Class struct {
	Name  string
	Decl  *ast.RecordDecl
	Scope *Scope
	Bases []*Class

	// attrs holds members assigned through a receiver inside methods.
	attrs     map[string][]*Binding
	attrOrder []string
	baseNames []string
}

// Type is a candidate static type: an instance of a class, or the class
// object itself.
type Type struct {
	Class    *Class
	Instance bool
}

func (t Type) String() string {
	if t.Class == nil {
		return ""
	}
	if t.Instance {
		return t.Class.Name
	}
	return "class " + t.Class.Name
}

// BranchStep locates a binding inside one conditional construct: which
// branch, and which arm of it.
type BranchStep struct {
	Branch int
	Arm    int
}

// BranchPath lists the branch arms enclosing a binding, outermost first.
// It is empty for unconditional bindings.
type BranchPath []BranchStep

func (p BranchPath) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = fmt.Sprintf("%d.%d", s.Branch, s.Arm)
	}
	return strings.Join(parts, "/")
}

// Binding associates a name with its declaring node and candidate types.
type Binding struct {
	Name   string
	Kind   BindingKind
	Decl   ast.Node
	Loc    ast.SourceLoc
	Types  []Type
	Branch BranchPath
	Scope  *Scope

	// At is where the binding takes effect: after the assigned value for
	// assignments, at the name for declarations.
	At ast.Pos

	pending *pending
	state   resolveState
}

type resolveState uint8

const (
	stateDone resolveState = iota
	statePending
	stateResolving
)

// Scope is one lexical binding environment.
type Scope struct {
	Kind     Kind
	Parent   *Scope
	Children []*Scope
	// Node is the Program, RecordDecl, FuncDecl or FuncLitExpr that opened
	// the scope.
	Node ast.Node
	// Span is the body region; a cursor inside it is inside the scope.
	Span ast.SourceLoc
	// Class is set for class scopes and for methods, where it names the
	// receiver's class.
	Class *Class

	names    map[string][]*Binding
	order    []string
	flow     *block
	receiver string
	// static is set for the receiver of a classmethod, which is the class
	// object rather than an instance.
	static bool
}

// Name is the name of the class or function that opened s, empty for the
// module scope and anonymous functions.
func (s *Scope) Name() string {
	switch n := s.Node.(type) {
	case *ast.RecordDecl:
		return ast.NameText(n.Name)
	case *ast.FuncDecl:
		return ast.NameText(n.Name)
	}
	return ""
}

func newScope(k Kind, parent *Scope, node ast.Node, span ast.SourceLoc) *Scope {
	s := &Scope{
		Kind:   k,
		Parent: parent,
		Node:   node,
		Span:   span,
		names:  make(map[string][]*Binding),
		flow:   &block{},
	}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Names returns the names declared directly in s, in first-declaration
// order.
func (s *Scope) Names() []string { return s.order }

// Bindings returns every binding of name declared directly in s, in
// declaration order.
func (s *Scope) Bindings(name string) []*Binding { return s.names[name] }

// Has reports whether name is declared directly in s.
func (s *Scope) Has(name string) bool { return len(s.names[name]) > 0 }

func (s *Scope) declare(b *Binding) {
	if _, ok := s.names[b.Name]; !ok {
		s.order = append(s.order, b.Name)
	}
	s.names[b.Name] = append(s.names[b.Name], b)
}

// BaseNames returns the base class names as written, resolved or not.
func (c *Class) BaseNames() []string { return c.baseNames }

// Member returns the bindings of name on c: declared in its body, assigned
// through a receiver, or inherited. The nearest class that has the name
// wins.
func (c *Class) Member(name string) []*Binding {
	var out []*Binding
	c.walkMRO(func(k *Class) bool {
		bs := append(append([]*Binding(nil), k.Scope.names[name]...), k.attrs[name]...)
		if len(bs) > 0 {
			out = bs
			return false
		}
		return true
	})
	return out
}

// Members returns one binding per member name visible on c, own members
// first, then inherited ones.
func (c *Class) Members() []*Binding {
	seen := make(map[string]bool)
	var out []*Binding
	c.walkMRO(func(k *Class) bool {
		for _, n := range k.Scope.order {
			if !seen[n] {
				seen[n] = true
				out = append(out, k.Scope.names[n][0])
			}
		}
		for _, n := range k.attrOrder {
			if !seen[n] {
				seen[n] = true
				out = append(out, k.attrs[n][0])
			}
		}
		return true
	})
	return out
}

// walkMRO visits c and its bases depth-first, each class once.
func (c *Class) walkMRO(fn func(*Class) bool) {
	seen := make(map[*Class]bool)
	var visit func(*Class) bool
	visit = func(k *Class) bool {
		if k == nil || seen[k] {
			return true
		}
		seen[k] = true
		if !fn(k) {
			return false
		}
		for _, b := range k.Bases {
			if !visit(b) {
				return false
			}
		}
		return true
	}
	visit(c)
}

// ancestors returns c followed by every class it inherits from.
func (c *Class) ancestors() []*Class {
	var out []*Class
	c.walkMRO(func(k *Class) bool {
		out = append(out, k)
		return true
	})
	return out
}

func (c *Class) addAttr(b *Binding) {
	if c.attrs == nil {
		c.attrs = make(map[string][]*Binding)
	}
	if _, ok := c.attrs[b.Name]; !ok {
		c.attrOrder = append(c.attrOrder, b.Name)
	}
	c.attrs[b.Name] = append(c.attrs[b.Name], b)
}
