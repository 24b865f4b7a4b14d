package provider

import (
	"context"
	"errors"
	"time"

	"github.com/flowforge/flowrun/flow/store"
)

// Cached wraps a Provider with a store.Store so that repeated resolution of
// the same URL, within a run or (for a durable store) across runs, is a
// cache hit instead of a re-fetch.
type Cached struct {
	inner Provider
	store store.Store
}

// NewCached constructs a Cached provider. inner is the provider to fall
// back to on a cache miss; backing is the store consulted first.
func NewCached(inner Provider, backing store.Store) *Cached {
	return &Cached{inner: inner, store: backing}
}

func (c *Cached) Resolve(ctx context.Context, url string) (string, string, []byte, error) {
	if entry, err := c.store.Get(ctx, url); err == nil {
		return entry.ResolvedURL, entry.MIME, entry.Content, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", "", nil, err
	}

	resolvedURL, mimeType, content, err := c.inner.Resolve(ctx, url)
	if err != nil {
		return "", "", nil, err
	}

	_ = c.store.Put(ctx, store.Entry{
		URL:         url,
		ResolvedURL: resolvedURL,
		MIME:        mimeType,
		Content:     content,
		FetchedAt:   time.Now(),
	})

	return resolvedURL, mimeType, content, nil
}
