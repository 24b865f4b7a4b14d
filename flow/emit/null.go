package emit

import "context"

// NullEmitter discards every event. Useful for tests and for benchmarking
// the scheduler without logging overhead.
type NullEmitter struct{}

// NewNullEmitter constructs a NullEmitter.
func NewNullEmitter() *NullEmitter { return &NullEmitter{} }

func (*NullEmitter) Emit(Event) {}

func (*NullEmitter) EmitBatch(context.Context, []Event) error { return nil }

func (*NullEmitter) Flush(context.Context) error { return nil }
