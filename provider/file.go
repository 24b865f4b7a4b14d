package provider

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// File resolves library URLs that name a path on the local filesystem,
// either a bare path or a "file://" URL. If the path is a directory it
// looks for the first "context.*" or "flow.*" file inside it rather than
// erroring, mirroring how a flow can be pointed at a package directory
// instead of its root definition file.
type File struct{}

// NewFile constructs a File provider.
func NewFile() *File { return &File{} }

func (File) Resolve(_ context.Context, url string) (string, string, []byte, error) {
	path := strings.TrimPrefix(url, "file://")

	info, err := os.Stat(path)
	if err != nil {
		return "", "", nil, fmt.Errorf("provider: stat %q: %w", path, err)
	}
	if info.IsDir() {
		found, err := findDefaultFile(path)
		if err != nil {
			return "", "", nil, err
		}
		path = found
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", nil, fmt.Errorf("provider: read %q: %w", path, err)
	}

	resolved := "file://" + path
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return resolved, mimeType, content, nil
}

func findDefaultFile(dir string) (string, error) {
	for _, pattern := range []string{"context.*", "flow.*"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return "", fmt.Errorf("provider: glob %q: %w", pattern, err)
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", fmt.Errorf("provider: no default flow file found in directory %q", dir)
}
