// Package emit is the observability sink for the scheduler: every
// non-fatal runtime condition (dropped overflow, skipped route, dispatch,
// process death) is reported through an Emitter rather than written
// directly to stdout, so a caller can swap in structured logging, tracing,
// or silence.
package emit

import "context"

// Emitter receives scheduler events. Implementations must be safe for
// concurrent use: the scheduler goroutine and, for OtelEmitter, executor
// goroutines reporting span-worthy events may call Emit concurrently.
type Emitter interface {
	// Emit reports a single event. Must not block the scheduler for long;
	// slow sinks should buffer internally and flush asynchronously.
	Emit(Event)

	// EmitBatch reports several events at once, letting a sink amortize
	// per-call overhead (a single log write, one batch span export).
	EmitBatch(ctx context.Context, events []Event) error

	// Flush forces any buffered events out. Called on scheduler shutdown.
	Flush(ctx context.Context) error
}
