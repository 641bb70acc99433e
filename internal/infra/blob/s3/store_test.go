package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"projectdash/internal/blob/core"
)

func TestMockStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMockForTests()
	if s.Driver() != core.DriverS3 {
		t.Fatalf("unexpected driver %s", s.Driver())
	}
	if _, _, err := s.Get(ctx, "sat/TestStrategy.csv"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := s.Put(ctx, "sat/TestStrategy.csv", bytes.NewReader([]byte("Test Case\n")), core.PutOptions{ContentType: "text/csv"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "sat/TestStrategy.csv", bytes.NewReader([]byte("x")), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected exists, got %v", err)
	}
	if _, err := s.Put(ctx, "sat/TestStrategy.csv", bytes.NewReader([]byte("Test Case\nA\n")), core.PutOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	info, rc, err := s.Get(ctx, "sat/TestStrategy.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(b) != "Test Case\nA\n" || info.ETag != "etag" {
		t.Fatalf("unexpected object %q %+v", b, info)
	}
	if _, err := s.Put(ctx, "other/TestFacilities.csv", bytes.NewReader([]byte("y")), core.PutOptions{}); err != nil {
		t.Fatalf("put other: %v", err)
	}
	list, err := s.List(ctx, "sat/")
	if err != nil || len(list) != 1 || list[0].Key != "sat/TestStrategy.csv" {
		t.Fatalf("list: %v %+v", err, list)
	}
	if ok, err := s.Delete(ctx, "sat/TestStrategy.csv"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, err := s.Delete(ctx, "sat/TestStrategy.csv"); err != nil || ok {
		t.Fatalf("delete missing: %v %v", ok, err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
}

func TestDecodeChunked(t *testing.T) {
	body, ok := decodeChunked([]byte("5;chunk-signature=abc\r\nhello\r\n0\r\n\r\n"))
	if !ok || string(body) != "hello" {
		t.Fatalf("decode = %q %v", body, ok)
	}
	if _, ok := decodeChunked([]byte("plain")); ok {
		t.Fatalf("expected plain body to pass through")
	}
}
