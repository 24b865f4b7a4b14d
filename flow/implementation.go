package flow

import "encoding/json"

// RunSet is one dispatch's worth of work handed to an executor: the
// process id, its resolved implementation handle, and the drained (or, for
// static inputs, cloned) contents of every declared input.
type RunSet struct {
	ID             ProcessID
	Implementation Implementation
	Inputs         [][]json.RawMessage
}

// OutputSet is one message returned from an executor. An implementation may
// send any number with Done=false; exactly the last it sends must carry
// Done=true, with RunAgain piggybacked on it.
type OutputSet struct {
	From     ProcessID
	Output   json.RawMessage
	Done     bool
	RunAgain bool
}

// ResultSender is the one-way channel an Implementation uses to report
// OutputSets back to the scheduler. It must not be retained past the
// return of Run.
type ResultSender interface {
	Send(OutputSet)
}

// resultSenderFunc adapts a plain func to ResultSender, letting the executor
// hand each RunSet a closure that forwards every OutputSet to the shared
// results channel. The Implementation sets OutputSet.From itself.
type resultSenderFunc func(OutputSet)

func (f resultSenderFunc) Send(o OutputSet) { f(o) }

// Implementation is a schedulable unit of work: a pure-ish callable that
// receives its id and drained inputs, does whatever it does, and reports
// results exclusively through the sender (§4.2).
//
// Implementations must be panic-safe in spirit — a panic during Run is
// caught by the executor, not by the Implementation itself — but must still
// never retain sender after Run returns, and must send at least one
// Done=true OutputSet before returning (the executor synthesizes one on
// panic, but a well-behaved Implementation always sends its own).
type Implementation interface {
	Run(id ProcessID, inputs [][]json.RawMessage, sender ResultSender)
}

// ImplementationFunc adapts a plain function to Implementation, mirroring
// the func-adapter convention used throughout this module for single-method
// interfaces.
type ImplementationFunc func(id ProcessID, inputs [][]json.RawMessage, sender ResultSender)

func (f ImplementationFunc) Run(id ProcessID, inputs [][]json.RawMessage, sender ResultSender) {
	f(id, inputs, sender)
}
