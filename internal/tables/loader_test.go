package tables

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"projectdash/internal/blob"
	"projectdash/pkg/domain"
)

const facilitiesCSV = "TestFacility,Equipment\nSITE_A,SITE_EQ1\nSOUTH_C,SOUTH_EQ\n"

func seed(t *testing.T, store blob.Store, key, body string) {
	t.Helper()
	if _, err := store.Put(context.Background(), key, strings.NewReader(body), blob.PutOptions{}); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

func TestLoaderLoad(t *testing.T) {
	store := blob.NewMemory()
	seed(t, store, "sat/TestStrategy.csv", strategyCSV)
	seed(t, store, "sat/TestFacilities.csv", facilitiesCSV)
	tables, err := NewLoader(store, nil).Load(context.Background(), domain.TableLocation{Prefix: "sat"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tables.Strategy) != 3 || len(tables.Facilities) != 2 {
		t.Fatalf("unexpected tables %+v", tables)
	}
}

func TestLoaderMissingData(t *testing.T) {
	cases := map[string][]string{
		"none":            nil,
		"only strategy":   {"sat/TestStrategy.csv"},
		"only facilities": {"sat/TestFacilities.csv"},
	}
	for name, keys := range cases {
		t.Run(name, func(t *testing.T) {
			store := blob.NewMemory()
			for _, k := range keys {
				body := strategyCSV
				if strings.HasSuffix(k, "TestFacilities.csv") {
					body = facilitiesCSV
				}
				seed(t, store, k, body)
			}
			_, err := NewLoader(store, nil).Load(context.Background(), domain.TableLocation{Prefix: "sat"})
			if !errors.Is(err, domain.ErrMissingData) {
				t.Fatalf("expected ErrMissingData, got %v", err)
			}
		})
	}
}

func TestLoaderBadTableIsNotMissingData(t *testing.T) {
	store := blob.NewMemory()
	seed(t, store, "sat/TestStrategy.csv", "TestCase\nTC1\n")
	seed(t, store, "sat/TestFacilities.csv", facilitiesCSV)
	_, err := NewLoader(store, nil).Load(context.Background(), domain.TableLocation{Prefix: "sat"})
	var mc *MissingColumnError
	if !errors.As(err, &mc) || errors.Is(err, domain.ErrMissingData) {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestLoaderReplace(t *testing.T) {
	store := blob.NewMemory()
	loader := NewLoader(store, nil)
	loc := domain.TableLocation{Prefix: "sat"}
	ctx := context.Background()
	if _, err := loader.Replace(ctx, loc, DatasetTestFacilities, strings.NewReader(facilitiesCSV)); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := loader.Replace(ctx, loc, DatasetTestFacilities, strings.NewReader("TestFacility\nLAB_9\n")); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	recs, err := loader.LoadFacilities(ctx, loc)
	if err != nil || len(recs) != 1 || recs[0].Facility != "LAB_9" {
		t.Fatalf("load facilities: %v %+v", err, recs)
	}
	_, rc, err := store.Get(ctx, "sat/TestFacilities.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	if !bytes.Equal(b, []byte("TestFacility\nLAB_9\n")) {
		t.Fatalf("stored payload %q", b)
	}
	if _, err := loader.Replace(ctx, loc, "Architecture", strings.NewReader(facilitiesCSV)); !errors.Is(err, ErrUnknownDataset) {
		t.Fatalf("expected unknown dataset error, got %v", err)
	}
	_, err = loader.Replace(ctx, loc, DatasetTestStrategy, strings.NewReader("TestCase\nTC1\n"))
	var mc *MissingColumnError
	if !errors.Is(err, ErrInvalidTable) || !errors.As(err, &mc) {
		t.Fatalf("expected invalid strategy upload error, got %v", err)
	}
	if _, err := loader.Replace(ctx, loc, DatasetTestFacilities, strings.NewReader("")); !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("expected empty upload to be rejected, got %v", err)
	}
	if _, err := loader.LoadFacilities(ctx, domain.TableLocation{Prefix: "nope"}); !errors.Is(err, domain.ErrMissingData) {
		t.Fatalf("expected missing data, got %v", err)
	}
}
