package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"projectdash/internal/blob"
	"projectdash/internal/tables"
	"projectdash/pkg/domain"
)

// Service ties the project registry, the table source and the checker
// together. The checker only ever sees loaded tables; project selection
// happens here.
type Service struct {
	projects ProjectStore
	loader   *tables.Loader
	checker  *Checker
	logger   *zap.Logger
	metrics  MetricsRecorder
	now      func() time.Time
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger; it is shared with the loader and checker.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the time source used for project timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a service over a project registry and table store.
func NewService(projects ProjectStore, store blob.Store, policy Policy, opts ...ServiceOption) *Service {
	s := &Service{
		projects: projects,
		logger:   zap.NewNop(),
		metrics:  NoopMetrics{},
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.loader = tables.NewLoader(store, s.logger.Named("tables"))
	s.checker = NewChecker(policy, WithCheckerLogger(s.logger.Named("checker")), WithCheckerMetrics(s.metrics))
	return s
}

// Checker returns the checker used by the service.
func (s *Service) Checker() *Checker { return s.checker }

// CheckProject loads the tables of a registered project and checks them.
func (s *Service) CheckProject(ctx context.Context, name string) (Report, error) {
	p, err := s.projects.GetProject(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.CheckLocation(ctx, p.Location())
}

// CheckLocation checks the tables stored at loc. Missing tables yield the
// empty report.
func (s *Service) CheckLocation(ctx context.Context, loc TableLocation) (Report, error) {
	start := time.Now()
	t, err := s.loader.Load(ctx, loc)
	if errors.Is(err, domain.ErrMissingData) {
		s.metrics.Observe(ctx, "load", true, time.Since(start))
		s.logger.Info("tables unavailable, nothing to check", zap.String("location", loc.Prefix), zap.Error(err))
		return domain.NewReport(), nil
	}
	s.metrics.Observe(ctx, "load", err == nil, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("load tables %s: %w", loc.Prefix, err)
	}
	report, err := s.checker.Check(ctx, &t)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", loc.Prefix, err)
	}
	return report, nil
}

// Facilities returns the equipment inventory of a project.
func (s *Service) Facilities(ctx context.Context, name string) ([]FacilityEquipment, error) {
	p, err := s.projects.GetProject(ctx, name)
	if err != nil {
		return nil, err
	}
	recs, err := s.loader.LoadFacilities(ctx, p.Location())
	if err != nil {
		return nil, err
	}
	return FacilityInventory(recs), nil
}

// UploadTable replaces one dataset of a project.
func (s *Service) UploadTable(ctx context.Context, name, dataset string, r io.Reader) (blob.Info, error) {
	p, err := s.projects.GetProject(ctx, name)
	if err != nil {
		return blob.Info{}, err
	}
	return s.loader.Replace(ctx, p.Location(), dataset, r)
}

// SaveProject validates and stores a project, stamping timestamps. A project
// without views gets every view.
func (s *Service) SaveProject(ctx context.Context, p Project) (Project, error) {
	if len(p.Views) == 0 {
		p.Views = domain.Views()
	}
	if err := p.Validate(); err != nil {
		return Project{}, err
	}
	now := s.now()
	if existing, err := s.projects.GetProject(ctx, p.Name); err == nil {
		p.CreatedAt = existing.CreatedAt
	} else if errors.Is(err, domain.ErrProjectNotFound) {
		p.CreatedAt = now
	} else {
		return Project{}, err
	}
	p.UpdatedAt = now
	saved, err := s.projects.SaveProject(ctx, p)
	if err != nil {
		return Project{}, err
	}
	s.logger.Info("project saved", zap.String("project", saved.Name), zap.String("folder", saved.Location().Prefix))
	return saved, nil
}

// GetProject returns a registered project.
func (s *Service) GetProject(ctx context.Context, name string) (Project, error) {
	return s.projects.GetProject(ctx, name)
}

// ListProjects returns all projects ordered by name.
func (s *Service) ListProjects(ctx context.Context) ([]Project, error) {
	return s.projects.ListProjects(ctx)
}

// DeleteProject removes a project from the registry. Its tables are kept.
func (s *Service) DeleteProject(ctx context.Context, name string) (bool, error) {
	return s.projects.DeleteProject(ctx, name)
}
