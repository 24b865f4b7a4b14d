package flowstd

import (
	"encoding/json"

	"github.com/flowforge/flowrun/flow"
)

// Tap passes its "data" input (input 0) through unchanged when its
// "control" input (input 1) is true, and produces no output otherwise —
// grounded in original_source/flowstdlib/src/control/tap.rs and spec.md
// end-to-end scenario 2 ("tap gate closed").
type Tap struct{}

func (Tap) Run(id flow.ProcessID, inputs [][]json.RawMessage, sender flow.ResultSender) {
	data, ok := firstValue(inputs[0])
	if !ok {
		silent(sender, id, true)
		return
	}
	controlRaw, ok := firstValue(inputs[1])
	if !ok {
		silent(sender, id, true)
		return
	}

	var control bool
	if err := json.Unmarshal(controlRaw, &control); err != nil || !control {
		silent(sender, id, true)
		return
	}

	done(sender, id, data, true)
}
