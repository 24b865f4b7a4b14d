// Package flowstd is the standard library of leaf Implementations used by
// the end-to-end scenarios and tests (SPEC_FULL.md §1.1, §3.1), grounded in
// original_source/flowstdlib. Each type here is a flow.Implementation:
// stateless except where the original is (flowstd.Args), and always sends
// exactly one terminal OutputSet per Run.
package flowstd

import (
	"encoding/json"

	"github.com/flowforge/flowrun/flow"
)

func done(sender flow.ResultSender, id flow.ProcessID, output json.RawMessage, runAgain bool) {
	sender.Send(flow.OutputSet{From: id, Output: output, Done: true, RunAgain: runAgain})
}

// silent reports a dispatch that produced no output to route — the data
// input's gate stayed shut, there was no FLOW_ARGS to parse, and so on.
func silent(sender flow.ResultSender, id flow.ProcessID, runAgain bool) {
	sender.Send(flow.OutputSet{From: id, Done: true, RunAgain: runAgain})
}

func firstValue(values []json.RawMessage) (json.RawMessage, bool) {
	if len(values) == 0 {
		return nil, false
	}
	return values[0], true
}
