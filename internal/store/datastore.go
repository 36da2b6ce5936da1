package store

// DataStore is the interface the indexer writes through. Both Store
// (direct SQLite) and BatchedStore (in-memory buffering for parallel
// indexing) implement it.
type DataStore interface {
	InsertScope(scope *Scope) (int64, error)
	InsertBinding(b *Binding) (int64, error)

	ScopesByFile(fileID int64) ([]*Scope, error)
}

// Compile-time check: *Store satisfies DataStore.
var _ DataStore = (*Store)(nil)
