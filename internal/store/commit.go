package store

import (
	"database/sql"
	"fmt"
)

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// CommitBatch inserts all buffered rows from a BatchedStore into SQLite
// within a single transaction. Fake (negative) IDs are remapped to real
// IDs and every reference inside the batch is rewritten through the
// fakeToReal mapping.
//
// Scopes go first, parents before children, since they are buffered in
// the order they open. Bindings follow.
func (s *Store) CommitBatch(batch *BatchedStore) error {
	batch.mu.Lock()
	defer batch.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("commit batch: begin: %w", err)
	}
	defer tx.Rollback()

	fakeToReal := make(map[int64]int64, len(batch.Scopes))

	for _, sc := range batch.Scopes {
		if sc.ParentScopeID != nil && *sc.ParentScopeID < 0 {
			realID, ok := fakeToReal[*sc.ParentScopeID]
			if !ok {
				return fmt.Errorf("commit batch: scope %q has parent %d not in batch", sc.Name, *sc.ParentScopeID)
			}
			sc.ParentScopeID = &realID
		}
		realID, err := insertScopeTx(tx, &sc)
		if err != nil {
			return fmt.Errorf("commit batch: scope: %w", err)
		}
		fakeToReal[sc.ID] = realID
	}

	for _, b := range batch.Bindings {
		if b.ScopeID < 0 {
			realID, ok := fakeToReal[b.ScopeID]
			if !ok {
				return fmt.Errorf("commit batch: binding %q has scope_id=%d not in batch", b.Name, b.ScopeID)
			}
			b.ScopeID = realID
		}
		if _, err := insertBindingTx(tx, &b); err != nil {
			return fmt.Errorf("commit batch: binding %q: %w", b.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	batch.Scopes = nil
	batch.Bindings = nil
	return nil
}

func insertScopeTx(ex execer, sc *Scope) (int64, error) {
	res, err := ex.Exec(
		`INSERT INTO scopes (file_id, kind, name, bases, start_line, start_col, end_line, end_col, parent_scope_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sc.FileID, sc.Kind, sc.Name, marshalList(sc.Bases),
		sc.StartLine, sc.StartCol, sc.EndLine, sc.EndCol, sc.ParentScopeID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert scope: %w", err)
	}
	return res.LastInsertId()
}

func insertBindingTx(ex execer, b *Binding) (int64, error) {
	res, err := ex.Exec(
		`INSERT INTO bindings (file_id, scope_id, name, kind, types, decl_line, decl_col, branch)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.FileID, b.ScopeID, b.Name, b.Kind, marshalList(b.Types), b.DeclLine, b.DeclCol, b.Branch,
	)
	if err != nil {
		return 0, fmt.Errorf("insert binding: %w", err)
	}
	return res.LastInsertId()
}
