package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"projectdash/internal/blob/core"
)

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Driver() != core.DriverFilesystem {
		t.Fatalf("unexpected driver %s", s.Driver())
	}
	info, err := s.Put(ctx, "sat/TestStrategy.csv", bytes.NewReader([]byte("Test Case\nA\n")), core.PutOptions{ContentType: "text/csv", Metadata: map[string]string{"by": "ops"}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 12 || info.ETag == "" {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := s.Put(ctx, "sat/TestStrategy.csv", bytes.NewReader([]byte("x")), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected exists error, got %v", err)
	}
	if _, err := s.Put(ctx, "sat/TestStrategy.csv", bytes.NewReader([]byte("Test Case\nB\n")), core.PutOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, rc, err := s.Get(ctx, "sat/TestStrategy.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(b) != "Test Case\nB\n" || got.ContentType != "" {
		t.Fatalf("unexpected get %q %+v", b, got)
	}
	list, err := s.List(ctx, "sat/")
	if err != nil || len(list) != 1 || list[0].Key != "sat/TestStrategy.csv" {
		t.Fatalf("list: %v %+v", err, list)
	}
	if ok, err := s.Delete(ctx, "sat/TestStrategy.csv"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, err := s.Delete(ctx, "sat/TestStrategy.csv"); err != nil || ok {
		t.Fatalf("second delete: %v %v", ok, err)
	}
	if _, _, err := s.Get(ctx, "sat/TestStrategy.csv"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStoreServesHandPlacedFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sat"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "sat", "TestFacilities.csv"), []byte("Test Facility\nLAB_1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := New(root)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	info, err := s.Head(context.Background(), "sat/TestFacilities.csv")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if info.Size != 20 {
		t.Fatalf("unexpected size %d", info.Size)
	}
	list, err := s.List(context.Background(), "")
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %+v", err, list)
	}
}

func TestSanitizeKey(t *testing.T) {
	for _, key := range []string{"", "  ", "../x", "/abs", "a/b.meta"} {
		if _, err := sanitizeKey(key); err == nil {
			t.Fatalf("expected error for %q", key)
		}
	}
	if k, err := sanitizeKey("a//b.csv"); err != nil || k != "a/b.csv" {
		t.Fatalf("clean key = %q, %v", k, err)
	}
}
