package store

import "sync"

// BatchedStore buffers index inserts in memory using fake (negative) IDs
// so parse workers never contend on SQLite. CommitBatch writes the buffer
// in one transaction.
//
// The mutex protects fake ID allocation and slice appends. ScopesByFile
// reads through to the underlying Store, which is safe for concurrent
// reads.
type BatchedStore struct {
	store *Store
	mu    sync.Mutex

	Scopes   []Scope
	Bindings []Binding

	nextFakeID int64 // starts at -1, decrements
}

// Compile-time check: *BatchedStore satisfies DataStore.
var _ DataStore = (*BatchedStore)(nil)

// NewBatchedStore creates a BatchedStore backed by s for reads.
func NewBatchedStore(s *Store) *BatchedStore {
	return &BatchedStore{
		store:      s,
		nextFakeID: -1,
	}
}

func (b *BatchedStore) allocFakeID() int64 {
	id := b.nextFakeID
	b.nextFakeID--
	return id
}

func (b *BatchedStore) InsertScope(scope *Scope) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fakeID := b.allocFakeID()
	scope.ID = fakeID
	b.Scopes = append(b.Scopes, *scope)
	return fakeID, nil
}

func (b *BatchedStore) InsertBinding(bd *Binding) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fakeID := b.allocFakeID()
	bd.ID = fakeID
	b.Bindings = append(b.Bindings, *bd)
	return fakeID, nil
}

// ScopesByFile returns the committed scopes of a file followed by any
// buffered ones.
func (b *BatchedStore) ScopesByFile(fileID int64) ([]*Scope, error) {
	scopes, err := b.store.ScopesByFile(fileID)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Scopes {
		if b.Scopes[i].FileID == fileID {
			sc := b.Scopes[i]
			scopes = append(scopes, &sc)
		}
	}
	return scopes, nil
}

// Len reports the number of buffered rows.
func (b *BatchedStore) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Scopes) + len(b.Bindings)
}
