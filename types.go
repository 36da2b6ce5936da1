package frond

import (
	"github.com/jward/frond/internal/complete"
	"github.com/jward/frond/internal/scope"
	"github.com/jward/frond/internal/store"
)

// Public type aliases for internal types used in the Engine and
// QueryBuilder APIs.

type File = store.File
type Scope = store.Scope
type Binding = store.Binding

type Set = complete.Set
type Proposal = complete.Proposal
type Context = complete.Context

type MergePolicy = scope.MergePolicy

const (
	MergeUnion      = scope.MergeUnion
	MergeCommonBase = scope.MergeCommonBase
	MergeUnresolved = scope.MergeUnresolved
)

const (
	ContextName   = complete.ContextName
	ContextMember = complete.ContextMember
)

// Request is one completion request. Line and Col are 1-based; Col counts
// characters.
type Request struct {
	Language string
	Path     string
	Source   []byte
	Line     int
	Col      int
}

// ParseMergePolicy maps "union", "common-base" or "unresolved" to its
// policy. The empty string selects MergeUnion.
func ParseMergePolicy(s string) (MergePolicy, error) {
	return scope.ParsePolicy(s)
}
