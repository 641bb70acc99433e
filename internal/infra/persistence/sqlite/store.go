// Package sqlite persists the project registry in an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"projectdash/internal/infra/persistence/memory"
	"projectdash/pkg/domain"
)

var _ domain.ProjectStore = (*Store)(nil)

const defaultPath = "projectdash.db"

// Store writes every project as a JSON payload keyed by name and serves reads
// from an in-memory copy hydrated on open.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (creating if needed) the database at path.
func NewStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS projects (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create projects table: %w", err)
	}
	s := &Store{Store: memory.NewStore(), db: db, path: path}
	if err := s.load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT name, payload FROM projects ORDER BY name`)
	if err != nil {
		return fmt.Errorf("select projects: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var projects []domain.Project
	for rows.Next() {
		var (
			name    string
			payload []byte
		)
		if err := rows.Scan(&name, &payload); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		var p domain.Project
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("decode project %s: %w", name, err)
		}
		p.Name = name
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate projects: %w", err)
	}
	s.Import(projects)
	return nil
}

// SaveProject upserts the project row before updating the in-memory copy.
func (s *Store) SaveProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	if err := p.Validate(); err != nil {
		return domain.Project{}, err
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return domain.Project{}, fmt.Errorf("encode project: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (name, payload) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`,
		p.Name, payload); err != nil {
		return domain.Project{}, fmt.Errorf("upsert project %s: %w", p.Name, err)
	}
	return s.Store.SaveProject(ctx, p)
}

// DeleteProject removes the project row and reports whether it existed.
func (s *Store) DeleteProject(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE name = ?`, name); err != nil {
		return false, fmt.Errorf("delete project %s: %w", name, err)
	}
	return s.Store.DeleteProject(ctx, name)
}

// DB exposes the underlying handle for tests.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }
