// Package postgres persists the project registry in PostgreSQL through the
// pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"projectdash/internal/infra/persistence/memory"
	"projectdash/pkg/domain"
)

var _ domain.ProjectStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/projectdash?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// OverrideSQLOpen swaps the sql.Open hook and returns a restore func.
func OverrideSQLOpen(fn func(driverName, dsn string) (*sql.DB, error)) func() {
	openMu.Lock()
	prev := sqlOpen
	sqlOpen = fn
	openMu.Unlock()
	return func() {
		openMu.Lock()
		sqlOpen = prev
		openMu.Unlock()
	}
}

// Store writes projects as JSONB rows and serves reads from memory.
type Store struct {
	*memory.Store
	db *sql.DB
	mu sync.Mutex
}

// NewStore connects using dsn (falling back to a localhost default), ensures
// the projects table exists and hydrates the in-memory copy.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureProjectsTable(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	projects, err := loadProjects(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	mem := memory.NewStore()
	mem.Import(projects)
	return &Store{Store: mem, db: db}, nil
}

func ensureProjectsTable(ctx context.Context, db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS projects (
		name TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure projects table: %w", err)
	}
	return nil
}

func loadProjects(ctx context.Context, db *sql.DB) ([]domain.Project, error) {
	rows, err := db.QueryContext(ctx, `SELECT name, payload FROM projects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select projects: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []domain.Project
	for rows.Next() {
		var (
			name    string
			payload []byte
		)
		if err := rows.Scan(&name, &payload); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		var p domain.Project
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode project %s: %w", name, err)
		}
		p.Name = name
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
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
		`INSERT INTO projects (name, payload) VALUES ($1, $2) ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload`,
		p.Name, string(payload)); err != nil {
		return domain.Project{}, fmt.Errorf("upsert project %s: %w", p.Name, err)
	}
	return s.Store.SaveProject(ctx, p)
}

// DeleteProject removes the project row and reports whether it existed.
func (s *Store) DeleteProject(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE name = $1`, name); err != nil {
		return false, fmt.Errorf("delete project %s: %w", name, err)
	}
	return s.Store.DeleteProject(ctx, name)
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the connection pool.
func (s *Store) Close() error { return s.db.Close() }
