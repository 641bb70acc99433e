// Package memory provides an in-memory project registry used for tests and
// ephemeral environments. The SQL backends embed it as their read model.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"projectdash/pkg/domain"
)

var _ domain.ProjectStore = (*Store)(nil)

// Project aliases domain.Project.
type Project = domain.Project

// Store keeps projects in a map guarded by a RWMutex.
type Store struct {
	mu       sync.RWMutex
	projects map[string]Project
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{projects: make(map[string]Project)}
}

// SaveProject inserts or replaces a project keyed by name.
func (s *Store) SaveProject(_ context.Context, p Project) (Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Project{}, fmt.Errorf("project name required")
	}
	p = cloneProject(p)
	s.mu.Lock()
	s.projects[p.Name] = p
	s.mu.Unlock()
	return cloneProject(p), nil
}

// GetProject returns the named project or an error matching
// domain.ErrProjectNotFound.
func (s *Store) GetProject(_ context.Context, name string) (Project, error) {
	s.mu.RLock()
	p, ok := s.projects[name]
	s.mu.RUnlock()
	if !ok {
		return Project{}, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, name)
	}
	return cloneProject(p), nil
}

// ListProjects returns every project ordered by name.
func (s *Store) ListProjects(context.Context) ([]Project, error) {
	return s.Export(), nil
}

// DeleteProject removes a project and reports whether it existed.
func (s *Store) DeleteProject(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[name]; !ok {
		return false, nil
	}
	delete(s.projects, name)
	return true, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// Export returns a copy of every project ordered by name.
func (s *Store) Export() []Project {
	s.mu.RLock()
	out := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, cloneProject(p))
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Import replaces the store contents with projects.
func (s *Store) Import(projects []Project) {
	next := make(map[string]Project, len(projects))
	for _, p := range projects {
		next[p.Name] = cloneProject(p)
	}
	s.mu.Lock()
	s.projects = next
	s.mu.Unlock()
}

func cloneProject(p Project) Project {
	if p.Views != nil {
		p.Views = append([]domain.View(nil), p.Views...)
	}
	return p
}
