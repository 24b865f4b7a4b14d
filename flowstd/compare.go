package flowstd

import (
	"encoding/json"

	"github.com/flowforge/flowrun/flow"
)

// Compare takes two numbers and outputs the five comparisons between them,
// grounded in original_source/flowstdlib/src/control/compare.rs.
type Compare struct{}

type compareResult struct {
	Equal bool `json:"equal"`
	LT    bool `json:"lt"`
	GT    bool `json:"gt"`
	LTE   bool `json:"lte"`
	GTE   bool `json:"gte"`
}

func (Compare) Run(id flow.ProcessID, inputs [][]json.RawMessage, sender flow.ResultSender) {
	left, ok := firstValue(inputs[0])
	if !ok {
		silent(sender, id, true)
		return
	}
	right, ok := firstValue(inputs[1])
	if !ok {
		silent(sender, id, true)
		return
	}

	var l, r float64
	if err := json.Unmarshal(left, &l); err != nil {
		silent(sender, id, true)
		return
	}
	if err := json.Unmarshal(right, &r); err != nil {
		silent(sender, id, true)
		return
	}

	out, _ := json.Marshal(compareResult{
		Equal: l == r,
		LT:    l < r,
		GT:    l > r,
		LTE:   l <= r,
		GTE:   l >= r,
	})
	done(sender, id, out, true)
}
