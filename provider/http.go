package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTP resolves library URLs served over HTTP(S). It does not attempt
// directory-listing discovery the way File does for local paths — an HTTP
// URL must name a concrete resource.
type HTTP struct {
	client *http.Client
}

// NewHTTP constructs an HTTP provider using client, or http.DefaultClient
// if client is nil.
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{client: client}
}

func (p *HTTP) Resolve(ctx context.Context, url string) (string, string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", nil, fmt.Errorf("provider: build request for %q: %w", url, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", "", nil, fmt.Errorf("provider: fetch %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", nil, fmt.Errorf("provider: fetch %q: status %s", url, resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", nil, fmt.Errorf("provider: read body of %q: %w", url, err)
	}

	resolved := resp.Request.URL.String()
	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return resolved, mimeType, content, nil
}
