package flowstd

import (
	"encoding/json"

	"github.com/flowforge/flowrun/flow"
)

// Add sums its two numeric inputs (input 0 + input 1), grounded in
// original_source/flowstdlib/src/math/add.rs. Mixed non-numeric inputs
// produce no output rather than panicking — malformed flow data is a
// RoutingError/SchemaError concern upstream, not this implementation's.
type Add struct{}

func (Add) Run(id flow.ProcessID, inputs [][]json.RawMessage, sender flow.ResultSender) {
	a, ok := firstValue(inputs[0])
	if !ok {
		silent(sender, id, true)
		return
	}
	b, ok := firstValue(inputs[1])
	if !ok {
		silent(sender, id, true)
		return
	}

	var na, nb float64
	if err := json.Unmarshal(a, &na); err != nil {
		silent(sender, id, true)
		return
	}
	if err := json.Unmarshal(b, &nb); err != nil {
		silent(sender, id, true)
		return
	}

	sum := na + nb
	out, _ := json.Marshal(sum)
	done(sender, id, out, true)
}
