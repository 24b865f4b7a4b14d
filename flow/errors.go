package flow

import "fmt"

// SchemaError is a compile-time failure from the gatherer: a negative
// depth, a value whose initial value cannot be encoded as JSON, or a cycle
// with no buffering anywhere in it. Compile aborts on the first one found.
type SchemaError struct {
	Message string
}

func (e *SchemaError) Error() string { return "schema error: " + e.Message }

// ResolutionError is a compile-time failure distinct from SchemaError: a
// connection names a destination process or input that does not exist.
// Kept separate from SchemaError so callers can tell "the graph shape is
// wrong" from "a reference doesn't resolve".
type ResolutionError struct {
	From string
	To   string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolution error: connection from %q references unresolved destination %q", e.From, e.To)
}

// InputOverflow records a dropped write to a full, non-static input. It is
// never returned to a caller; the scheduler logs it and continues (see
// Implementation contract, failure semantics).
type InputOverflow struct {
	ProcessID ProcessID
	InputIdx  int
}

func (e *InputOverflow) Error() string {
	return fmt.Sprintf("input overflow: process %d input %d is full, value dropped", e.ProcessID, e.InputIdx)
}

// RoutingError records an output route whose sub-pointer did not resolve
// against the produced value. Logged; the route is skipped, others continue.
type RoutingError struct {
	ProcessID ProcessID
	Pointer   string
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("routing error: process %d output pointer %q did not resolve", e.ProcessID, e.Pointer)
}

// ImplementationPanic records a recovered panic from an Implementation's
// run. The owning process transitions to Dead; the rest of the graph
// continues.
type ImplementationPanic struct {
	ProcessID ProcessID
	Recovered any
	Stack     []byte
}

func (e *ImplementationPanic) Error() string {
	return fmt.Sprintf("implementation panic in process %d: %v", e.ProcessID, e.Recovered)
}

// ErrChannelClosed is not a propagated error in the Go sense — it names the
// orderly-shutdown path (the work channel was closed) so log lines and
// tests can refer to it by name.
type ErrChannelClosed struct{}

func (ErrChannelClosed) Error() string { return "work channel closed: orderly shutdown" }
