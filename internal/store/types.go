package store

import "time"

// Index domain types

type File struct {
	ID          int64
	Path        string
	Language    string
	Hash        string
	LineCount   int
	LastIndexed time.Time
}

// Scope is a persisted lexical scope. Name is the class or function name
// that opened it, empty for the module scope. Bases lists the base class
// names of a class scope as written in the source.
type Scope struct {
	ID            int64
	FileID        int64
	Kind          string
	Name          string
	Bases         []string
	StartLine     int
	StartCol      int
	EndLine       int
	EndCol        int
	ParentScopeID *int64
}

// Binding is a persisted name binding. Types holds the display names of
// the candidate types; Branch is the branch path the binding sits on.
type Binding struct {
	ID       int64
	FileID   int64
	ScopeID  int64
	Name     string
	Kind     string
	Types    []string
	DeclLine int
	DeclCol  int
	Branch   string
}
