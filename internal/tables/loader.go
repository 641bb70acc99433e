package tables

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"projectdash/internal/blob"
	"projectdash/pkg/domain"
)

// Dataset names addressed inside a table location.
const (
	DatasetTestStrategy   = "TestStrategy"
	DatasetTestFacilities = "TestFacilities"
)

var (
	// ErrUnknownDataset is returned for uploads to a dataset the loader does not read.
	ErrUnknownDataset = errors.New("unknown dataset")
	// ErrInvalidTable wraps CSV and header problems found in an upload.
	ErrInvalidTable = errors.New("invalid table")
)

// Datasets returns the datasets a Loader understands.
func Datasets() []string {
	return []string{DatasetTestStrategy, DatasetTestFacilities}
}

func knownDataset(name string) bool {
	for _, d := range Datasets() {
		if d == name {
			return true
		}
	}
	return false
}

// Loader reads project tables from a blob store.
type Loader struct {
	store  blob.Store
	logger *zap.Logger
}

// NewLoader constructs a loader. A nil logger discards output.
func NewLoader(store blob.Store, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{store: store, logger: logger}
}

// Load reads both source tables. When either is absent the returned error
// matches domain.ErrMissingData and no tables are returned.
func (l *Loader) Load(ctx context.Context, loc domain.TableLocation) (domain.Tables, error) {
	strategy, err := l.read(ctx, loc, DatasetTestStrategy)
	if err != nil {
		return domain.Tables{}, err
	}
	facilities, err := l.read(ctx, loc, DatasetTestFacilities)
	if err != nil {
		return domain.Tables{}, err
	}
	strat, err := DecodeTestStrategy(strategy)
	if err != nil {
		return domain.Tables{}, err
	}
	fac, err := DecodeTestFacilities(facilities)
	if err != nil {
		return domain.Tables{}, err
	}
	l.logger.Debug("tables loaded",
		zap.String("location", loc.Prefix),
		zap.Int("strategy_rows", len(strat)),
		zap.Int("facility_rows", len(fac)),
	)
	return domain.Tables{Strategy: strat, Facilities: fac}, nil
}

// LoadFacilities reads only the TestFacilities table.
func (l *Loader) LoadFacilities(ctx context.Context, loc domain.TableLocation) ([]domain.TestFacilityRecord, error) {
	t, err := l.read(ctx, loc, DatasetTestFacilities)
	if err != nil {
		return nil, err
	}
	return DecodeTestFacilities(t)
}

// Replace validates a dataset upload and stores it, replacing any previous
// version.
func (l *Loader) Replace(ctx context.Context, loc domain.TableLocation, dataset string, r io.Reader) (blob.Info, error) {
	if !knownDataset(dataset) {
		return blob.Info{}, fmt.Errorf("%w %q", ErrUnknownDataset, dataset)
	}
	payload, err := io.ReadAll(r)
	if err != nil {
		return blob.Info{}, fmt.Errorf("read upload: %w", err)
	}
	t, err := ParseCSV(bytes.NewReader(payload))
	if err == nil {
		if dataset == DatasetTestStrategy {
			_, err = DecodeTestStrategy(t)
		} else {
			_, err = DecodeTestFacilities(t)
		}
	}
	if err != nil {
		return blob.Info{}, fmt.Errorf("%w: %s: %w", ErrInvalidTable, dataset, err)
	}
	info, err := l.store.Put(ctx, loc.Key(dataset), bytes.NewReader(payload), blob.PutOptions{
		ContentType: "text/csv",
		Metadata:    map[string]string{"dataset": dataset},
		Overwrite:   true,
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("store %s: %w", dataset, err)
	}
	l.logger.Info("table replaced", zap.String("key", info.Key), zap.Int64("size_bytes", info.Size))
	return info, nil
}

func (l *Loader) read(ctx context.Context, loc domain.TableLocation, dataset string) (Table, error) {
	key := loc.Key(dataset)
	_, rc, err := l.store.Get(ctx, key)
	if errors.Is(err, blob.ErrNotFound) {
		l.logger.Debug("table missing", zap.String("key", key))
		return Table{}, fmt.Errorf("%w: %s", domain.ErrMissingData, key)
	}
	if err != nil {
		return Table{}, fmt.Errorf("open %s: %w", key, err)
	}
	defer func() { _ = rc.Close() }()
	t, err := ParseCSV(rc)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", key, err)
	}
	return t, nil
}
