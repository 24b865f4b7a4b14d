package flow

import "encoding/json"

// ProcessID is a dense, non-negative, run-stable index into the flat
// process table produced by the gatherer.
type ProcessID int

// State is one of the six run-list states a Process moves through.
type State int

const (
	StateInit State = iota
	StateReady
	StateWaiting
	StateBlocked
	StateRunning
	StateDead
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateReady:
		return "Ready"
	case StateWaiting:
		return "Waiting"
	case StateBlocked:
		return "Blocked"
	case StateRunning:
		return "Running"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// OverflowPolicy governs what happens when a non-static input is full and a
// new value arrives. Drop (the spec's default) favors liveness: the value
// is discarded, logged as InputOverflow, and the writer's outputs_sent
// counter is unaffected by the drop. Overwrite replaces the head even for
// non-static inputs, trading at-least-once delivery for never blocking.
type OverflowPolicy int

const (
	OverflowDrop OverflowPolicy = iota
	OverflowOverwrite
)

// Input is a bounded FIFO of JSON values belonging to one declared input
// slot of a Process. Depth is fixed at construction and never changes.
type Input struct {
	Depth    int
	received []json.RawMessage
	isStatic bool
}

// NewInput constructs an Input with the given fixed depth. isStatic marks
// the owning process's static-ness (depth is still enforced; only the
// drain/overwrite semantics differ).
func NewInput(depth int, isStatic bool) *Input {
	return &Input{Depth: depth, isStatic: isStatic}
}

// Full reports whether the queue holds Depth values already.
func (in *Input) Full() bool { return len(in.received) >= in.Depth }

// Len returns the current occupancy, always in [0, Depth] (invariant I2).
func (in *Input) Len() int { return len(in.received) }

// Push appends v. For a non-static input that is already full this is an
// overflow: by OverflowDrop policy the value is dropped and an
// InputOverflow error returned (the caller logs and continues); by
// OverflowOverwrite the head is replaced instead, same as a static input.
// A static input always overwrites its single slot and never errors.
func (in *Input) Push(v json.RawMessage, policy OverflowPolicy) error {
	if in.isStatic {
		in.overwrite(v)
		return nil
	}
	if !in.Full() {
		in.received = append(in.received, v)
		return nil
	}
	if policy == OverflowOverwrite {
		in.overwrite(v)
		return nil
	}
	return errOverflow
}

// sentinel so Push doesn't need to know the owning ProcessID; the output
// processor wraps it into a *InputOverflow with that context.
var errOverflow = &InputOverflow{}

func (in *Input) overwrite(v json.RawMessage) {
	if in.Depth <= 0 {
		return
	}
	if len(in.received) == 0 {
		in.received = append(in.received, v)
		return
	}
	in.received[0] = v
}

// Take drains and returns the full queue contents (non-static inputs).
func (in *Input) Take() []json.RawMessage {
	out := in.received
	in.received = nil
	return out
}

// Read returns a clone of the current contents without draining (static
// inputs; invariant I4).
func (in *Input) Read() []json.RawMessage {
	out := make([]json.RawMessage, len(in.received))
	copy(out, in.received)
	return out
}

// OutputRoute is one (sub-pointer, destination) triple from a Process's
// output_routes. SubPointer is a JSON Pointer string, empty meaning "the
// whole produced value".
type OutputRoute struct {
	SubPointer   string
	DestID       ProcessID
	DestInputIdx int
}

// Process is one row of the flat run-list table: metadata, its input
// queues, its output routing, the resolved implementation handle, and its
// current scheduling state. Only the scheduler goroutine ever mutates a
// Process (single-owner invariant from §5); executors see only a RunSet.
type Process struct {
	ID           ProcessID
	Name         string
	IsStatic     bool
	InitialValue json.RawMessage

	Inputs       []*Input
	OutputRoutes []OutputRoute

	Implementation Implementation

	State State
}

// InputsFull reports whether every declared input currently holds a value,
// the precondition for Ready (invariant I5, partially — blocking status is
// checked separately by the caller).
func (p *Process) InputsFull() bool {
	for _, in := range p.Inputs {
		if !in.Full() {
			return false
		}
	}
	return true
}

// TakeInputs snapshots this process's inputs for dispatch: Take() (drain)
// for non-static inputs, Read() (clone) for static ones, per §4.4 step 2.
func (p *Process) TakeInputs() [][]json.RawMessage {
	out := make([][]json.RawMessage, len(p.Inputs))
	for i, in := range p.Inputs {
		if in.isStatic {
			out[i] = in.Read()
		} else {
			out[i] = in.Take()
		}
	}
	return out
}

// identityImplementation backs every Value process (data model §3): a
// degenerate process whose single input forwards unchanged to its output.
// Marking the owning process static turns this into constant-like
// semantics (the input is read, never drained, so the same value forwards
// every dispatch — P5).
type identityImplementation struct{}

func (identityImplementation) Run(id ProcessID, inputs [][]json.RawMessage, sender ResultSender) {
	out := json.RawMessage("null")
	if len(inputs) > 0 && len(inputs[0]) > 0 {
		out = inputs[0][0]
	}
	sender.Send(OutputSet{From: id, Output: out, Done: true, RunAgain: true})
}
