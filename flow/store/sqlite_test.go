package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestSqliteRoundTrip exercises the shared sqlStore path (table creation,
// insert-or-update Put, msgpack-encoded Get) against an in-memory sqlite
// database — modernc.org/sqlite is pure Go, so this needs no external
// service or cgo toolchain.
func TestSqliteRoundTrip(t *testing.T) {
	s, err := NewSqlite(":memory:")
	if err != nil {
		t.Fatalf("unexpected error opening sqlite store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	want := Entry{
		URL:         "git+https://example.com/repo.git//flow.yaml",
		ResolvedURL: "git+https://example.com/repo.git//flow.yaml#HEAD",
		MIME:        "application/yaml",
		Content:     []byte("name: root"),
		FetchedAt:   time.Unix(1700000000, 0).UTC(),
	}

	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("unexpected error on Put: %v", err)
	}
	got, err := s.Get(ctx, want.URL)
	if err != nil {
		t.Fatalf("unexpected error on Get: %v", err)
	}
	if got.MIME != want.MIME || string(got.Content) != string(want.Content) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}

	// Put again for the same URL must update, not duplicate.
	want.Content = []byte("name: replaced")
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("unexpected error on update Put: %v", err)
	}
	got, err = s.Get(ctx, want.URL)
	if err != nil {
		t.Fatalf("unexpected error on Get after update: %v", err)
	}
	if string(got.Content) != "name: replaced" {
		t.Fatalf("expected updated content, got %q", got.Content)
	}
}

func TestSqliteGetMissReturnsErrNotFound(t *testing.T) {
	s, err := NewSqlite(":memory:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	_, err = s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
