package provider

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Git resolves library URLs of the form
// "git+https://host/repo.git//path/within/repo#ref", cloning the repo into
// memory at ref (default the remote's HEAD) and reading the named path out
// of the resulting worktree. Used for flow libraries published straight
// from a version-controlled source tree rather than a built artifact.
type Git struct{}

// NewGit constructs a Git provider.
func NewGit() *Git { return &Git{} }

func (Git) Resolve(ctx context.Context, url string) (string, string, []byte, error) {
	repoURL, path, ref, err := parseGitURL(url)
	if err != nil {
		return "", "", nil, err
	}

	opts := &git.CloneOptions{URL: repoURL, Depth: 1}
	if ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(ref)
	}

	wt := memfs.New()
	_, err = git.CloneContext(ctx, memory.NewStorage(), wt, opts)
	if err != nil {
		return "", "", nil, fmt.Errorf("provider: clone %q: %w", repoURL, err)
	}

	f, err := wt.Open(path)
	if err != nil {
		return "", "", nil, fmt.Errorf("provider: open %q in %q: %w", path, repoURL, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", "", nil, fmt.Errorf("provider: read %q in %q: %w", path, repoURL, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return url, mimeType, content, nil
}

// parseGitURL splits "git+https://host/repo.git//path/within/repo#ref"
// into its repo URL, in-repo path, and optional ref.
func parseGitURL(url string) (repoURL, path, ref string, err error) {
	rest, ok := strings.CutPrefix(url, "git+")
	if !ok {
		return "", "", "", fmt.Errorf("provider: not a git url: %q", url)
	}

	if hash := strings.LastIndex(rest, "#"); hash != -1 {
		ref = rest[hash+1:]
		rest = rest[:hash]
	}

	scheme := strings.Index(rest, "://")
	if scheme == -1 {
		return "", "", "", fmt.Errorf("provider: malformed git url: %q", url)
	}
	pathSep := strings.Index(rest[scheme+3:], "//")
	if pathSep == -1 {
		return "", "", "", fmt.Errorf("provider: git url missing //path separator: %q", url)
	}
	pathSep += scheme + 3

	repoURL = rest[:pathSep]
	path = rest[pathSep+2:]
	if repoURL == "" || path == "" {
		return "", "", "", fmt.Errorf("provider: malformed git url: %q", url)
	}
	return repoURL, path, ref, nil
}
