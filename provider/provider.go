// Package provider implements the content-provider collaborator (spec §6):
// given a library URL, resolve it to its canonical form, MIME type, and
// content bytes. The core never imports this package directly — it only
// consumes whatever implementation loaded the flow definition wired in, and
// statically linked primitives bypass it entirely.
package provider

import "context"

// Provider resolves url to its resolved form and content.
type Provider interface {
	Resolve(ctx context.Context, url string) (resolvedURL string, mime string, content []byte, err error)
}
