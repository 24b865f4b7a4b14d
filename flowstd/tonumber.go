package flowstd

import (
	"encoding/json"
	"strconv"

	"github.com/flowforge/flowrun/flow"
)

// ToNumber parses its string input as an integer, producing no output if it
// doesn't parse, grounded in original_source/flowstdlib/src/fmt/to_number.rs.
type ToNumber struct{}

func (ToNumber) Run(id flow.ProcessID, inputs [][]json.RawMessage, sender flow.ResultSender) {
	value, ok := firstValue(inputs[0])
	if !ok {
		silent(sender, id, true)
		return
	}

	var text string
	if err := json.Unmarshal(value, &text); err != nil {
		silent(sender, id, true)
		return
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		silent(sender, id, true)
		return
	}

	out, _ := json.Marshal(n)
	done(sender, id, out, true)
}
