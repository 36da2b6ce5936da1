// Package frond provides flow-sensitive code completion for dynamically
// typed languages, built on tree-sitter. Python and JavaScript are
// supported.
//
// # Pipeline
//
// A completion request goes through three stages:
//
//  1. Parse: a language front end converts the tree-sitter syntax tree into
//     a language-neutral node model. Malformed input still produces a tree.
//
//  2. Scope: the scope builder opens a scope per module, class and function
//     body and records every name binding with the conditional branch it
//     sits on, so a lookup knows which assignments can reach a position.
//
//  3. Resolve: the completion engine classifies the cursor. After a dot it
//     types the expression before it from the reaching bindings and lists
//     the members of those classes; otherwise it lists every visible name.
//
// # Usage
//
//	e, err := frond.New("", frond.WithMergePolicy(frond.MergeUnion))
//	if err != nil { ... }
//	defer e.Close()
//
//	set, err := e.Complete(ctx, frond.Request{
//		Language: "python",
//		Path:     "app.py",
//		Source:   src,
//		Line:     12,
//		Col:      7,
//	})
//
// When candidate types disagree, for example a variable assigned a
// different class in each arm of an if, the [MergePolicy] decides: union
// lists the members of every candidate, common-base the members of the
// nearest shared base class, and unresolved nothing.
//
// # Index
//
// With a database path, [Engine.IndexDirectory] persists the scopes and
// bindings of a source tree to SQLite. Unchanged files are skipped by
// content hash. [Engine.Query] reads the index back.
//
// # Filter scripts
//
// [WithFilterScript] runs a Risor script over every result set. The built-in
// scripts live in the scripts package; a script can only narrow a set.
package frond
