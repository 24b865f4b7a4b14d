package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileResolveReadsDirectPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flow.yaml")
	if err := os.WriteFile(path, []byte("name: root\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resolved, mimeType, content, err := File{}.Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "name: root\n" {
		t.Fatalf("unexpected content: %q", content)
	}
	if resolved != "file://"+path {
		t.Fatalf("expected resolved URL %q, got %q", "file://"+path, resolved)
	}
	_ = mimeType
}

func TestFileResolveStripsFileScheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flow.json")
	if err := os.WriteFile(path, []byte(`{"name":"root"}`), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, mimeType, content, err := File{}.Resolve(context.Background(), "file://"+path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != `{"name":"root"}` {
		t.Fatalf("unexpected content: %q", content)
	}
	if mimeType != "application/json" {
		t.Fatalf("expected application/json mime type, got %q", mimeType)
	}
}

func TestFileResolveDirectoryFindsDefaultFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "context.yaml")
	if err := os.WriteFile(path, []byte("name: root\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resolved, _, content, err := File{}.Resolve(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "name: root\n" {
		t.Fatalf("unexpected content: %q", content)
	}
	if resolved != "file://"+path {
		t.Fatalf("expected resolved URL to point at the discovered file, got %q", resolved)
	}
}

func TestFileResolveDirectoryWithNoDefaultFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, _, err := (File{}).Resolve(context.Background(), dir); err == nil {
		t.Fatal("expected an error when no context.* or flow.* file exists")
	}
}

func TestFileResolveMissingPathErrors(t *testing.T) {
	if _, _, _, err := (File{}).Resolve(context.Background(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a nonexistent path")
	}
}
