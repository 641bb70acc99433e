package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// View is a dashboard tab enabled for a project.
type View string

const (
	ViewHomePage       View = "Home Page"
	ViewArchitecture   View = "Architecture"
	ViewRequirements   View = "Requirements"
	ViewTestFacilities View = "Test Facilities"
	ViewTestStrategy   View = "Test Strategy"
	ViewTestResults    View = "Test Results"
	ViewIssues         View = "Warnings/Issues"
)

// Views returns every known view in tab order.
func Views() []View {
	return []View{ViewHomePage, ViewArchitecture, ViewRequirements, ViewTestFacilities, ViewTestStrategy, ViewTestResults, ViewIssues}
}

// Project is a named dashboard pointing at a folder of tables.
type Project struct {
	Name      string    `json:"name"`
	Folder    string    `json:"folder,omitempty"`
	Views     []View    `json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the project name and views.
func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name required")
	}
	known := make(map[View]struct{}, len(Views()))
	for _, v := range Views() {
		known[v] = struct{}{}
	}
	for _, v := range p.Views {
		if _, ok := known[v]; !ok {
			return fmt.Errorf("project %s: unknown view %q", p.Name, v)
		}
	}
	return nil
}

// Location returns the table location of the project. The folder defaults to
// the project name.
func (p Project) Location() TableLocation {
	prefix := strings.Trim(p.Folder, "/")
	if prefix == "" {
		prefix = p.Name
	}
	return TableLocation{Prefix: prefix}
}

// TableLocation addresses the folder holding a project's tables.
type TableLocation struct {
	Prefix string
}

// Key returns the storage key of a named dataset inside the location.
func (l TableLocation) Key(dataset string) string {
	name := dataset + ".csv"
	prefix := strings.Trim(l.Prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// ProjectStore persists the project registry.
type ProjectStore interface {
	SaveProject(ctx context.Context, p Project) (Project, error)
	GetProject(ctx context.Context, name string) (Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	DeleteProject(ctx context.Context, name string) (bool, error)
	Close() error
}
