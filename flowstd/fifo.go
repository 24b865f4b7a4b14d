package flowstd

import (
	"encoding/json"

	"github.com/flowforge/flowrun/flow"
)

// Fifo is the identity implementation used as an explicit buffering
// process in a flow definition (distinct from flow's internal
// identity-implementation that backs Value processes): it passes its one
// input straight through, grounded in
// original_source/flowstdlib/src/zero_fifo.rs.
type Fifo struct{}

func (Fifo) Run(id flow.ProcessID, inputs [][]json.RawMessage, sender flow.ResultSender) {
	value, ok := firstValue(inputs[0])
	if !ok {
		silent(sender, id, true)
		return
	}
	done(sender, id, value, true)
}
