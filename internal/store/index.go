package store

import (
	"database/sql"
	"fmt"
)

// --- File operations ---

func (s *Store) InsertFile(f *File) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO files (path, language, hash, line_count, last_indexed) VALUES (?, ?, ?, ?, ?)",
		f.Path, f.Language, f.Hash, f.LineCount, f.LastIndexed,
	)
	if err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	f.ID = id
	return id, nil
}

const fileCols = "id, path, language, hash, line_count, last_indexed"

func scanFile(scanner interface{ Scan(...any) error }) (*File, error) {
	f := &File{}
	var hash sql.NullString
	var indexed sql.NullTime
	if err := scanner.Scan(&f.ID, &f.Path, &f.Language, &hash, &f.LineCount, &indexed); err != nil {
		return nil, err
	}
	f.Hash = hash.String
	f.LastIndexed = indexed.Time
	return f, nil
}

// FileByPath returns nil, nil when path is not indexed.
func (s *Store) FileByPath(path string) (*File, error) {
	f, err := scanFile(s.db.QueryRow("SELECT "+fileCols+" FROM files WHERE path = ?", path))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by path: %w", err)
	}
	return f, nil
}

// Files returns every indexed file ordered by path.
func (s *Store) Files() ([]*File, error) {
	return s.queryFiles("SELECT " + fileCols + " FROM files ORDER BY path")
}

func (s *Store) FilesByLanguage(language string) ([]*File, error) {
	return s.queryFiles("SELECT "+fileCols+" FROM files WHERE language = ? ORDER BY path", language)
}

func (s *Store) queryFiles(query string, args ...any) ([]*File, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()
	var files []*File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// --- Scope operations ---

func (s *Store) InsertScope(scope *Scope) (int64, error) {
	id, err := insertScopeTx(s.db, scope)
	if err != nil {
		return 0, err
	}
	scope.ID = id
	return id, nil
}

const scopeCols = `id, file_id, kind, name, bases, start_line, start_col, end_line, end_col, parent_scope_id`

func scanScope(scanner interface{ Scan(...any) error }) (*Scope, error) {
	sc := &Scope{}
	var bases string
	err := scanner.Scan(
		&sc.ID, &sc.FileID, &sc.Kind, &sc.Name, &bases,
		&sc.StartLine, &sc.StartCol, &sc.EndLine, &sc.EndCol, &sc.ParentScopeID,
	)
	if err != nil {
		return nil, err
	}
	sc.Bases = unmarshalList(bases)
	return sc, nil
}

func (s *Store) queryScopes(query string, args ...any) ([]*Scope, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scopes: %w", err)
	}
	defer rows.Close()
	var scopes []*Scope
	for rows.Next() {
		sc, err := scanScope(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scope: %w", err)
		}
		scopes = append(scopes, sc)
	}
	return scopes, rows.Err()
}

// ScopesByFile returns the scopes of a file in insertion order, which is
// the order they open in the source.
func (s *Store) ScopesByFile(fileID int64) ([]*Scope, error) {
	return s.queryScopes("SELECT "+scopeCols+" FROM scopes WHERE file_id = ? ORDER BY id", fileID)
}

// ClassScopes returns the class scopes named name in a file.
func (s *Store) ClassScopes(fileID int64, name string) ([]*Scope, error) {
	return s.queryScopes(
		"SELECT "+scopeCols+" FROM scopes WHERE file_id = ? AND kind = 'class' AND name = ? ORDER BY id",
		fileID, name,
	)
}

// ScopeChain returns the scope and its ancestors, innermost first.
func (s *Store) ScopeChain(scopeID int64) ([]*Scope, error) {
	var chain []*Scope
	seen := make(map[int64]bool)
	id := &scopeID
	for id != nil && !seen[*id] {
		seen[*id] = true
		sc, err := scanScope(s.db.QueryRow("SELECT "+scopeCols+" FROM scopes WHERE id = ?", *id))
		if err == sql.ErrNoRows {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scope chain: %w", err)
		}
		chain = append(chain, sc)
		id = sc.ParentScopeID
	}
	return chain, nil
}

// --- Binding operations ---

func (s *Store) InsertBinding(b *Binding) (int64, error) {
	id, err := insertBindingTx(s.db, b)
	if err != nil {
		return 0, err
	}
	b.ID = id
	return id, nil
}

const bindingCols = `id, file_id, scope_id, name, kind, types, decl_line, decl_col, branch`

func scanBinding(scanner interface{ Scan(...any) error }) (*Binding, error) {
	b := &Binding{}
	var types string
	err := scanner.Scan(
		&b.ID, &b.FileID, &b.ScopeID, &b.Name, &b.Kind, &types,
		&b.DeclLine, &b.DeclCol, &b.Branch,
	)
	if err != nil {
		return nil, err
	}
	b.Types = unmarshalList(types)
	return b, nil
}

func (s *Store) queryBindings(query string, args ...any) ([]*Binding, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bindings: %w", err)
	}
	defer rows.Close()
	var bindings []*Binding
	for rows.Next() {
		b, err := scanBinding(rows)
		if err != nil {
			return nil, fmt.Errorf("scan binding: %w", err)
		}
		bindings = append(bindings, b)
	}
	return bindings, rows.Err()
}

// BindingsByScope returns the bindings of a scope in source order.
func (s *Store) BindingsByScope(scopeID int64) ([]*Binding, error) {
	return s.queryBindings(
		"SELECT "+bindingCols+" FROM bindings WHERE scope_id = ? ORDER BY decl_line, decl_col, id", scopeID,
	)
}

// BindingsByScopes returns the bindings of several scopes in one query.
func (s *Store) BindingsByScopes(scopeIDs []int64) ([]*Binding, error) {
	if len(scopeIDs) == 0 {
		return nil, nil
	}
	return s.queryBindings(
		"SELECT "+bindingCols+" FROM bindings WHERE scope_id IN ("+placeholderList(len(scopeIDs))+
			") ORDER BY decl_line, decl_col, id",
		int64sToArgs(scopeIDs)...,
	)
}

func (s *Store) BindingsByFile(fileID int64) ([]*Binding, error) {
	return s.queryBindings("SELECT "+bindingCols+" FROM bindings WHERE file_id = ? ORDER BY id", fileID)
}

func (s *Store) BindingsByName(name string) ([]*Binding, error) {
	return s.queryBindings("SELECT "+bindingCols+" FROM bindings WHERE name = ? ORDER BY id", name)
}
