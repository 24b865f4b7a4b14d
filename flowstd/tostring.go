package flowstd

import (
	"encoding/json"
	"strconv"

	"github.com/flowforge/flowrun/flow"
)

// ToString converts its input to its string representation, grounded in
// original_source/flowstdlib/src/fmt/to_string.rs. A string input passes
// through unchanged; bool and number inputs are formatted; any other
// decoded shape (array, object, null) is unsupported and produces no
// output at all — it falls through to silent, the same as a decode
// failure.
type ToString struct{}

func (ToString) Run(id flow.ProcessID, inputs [][]json.RawMessage, sender flow.ResultSender) {
	value, ok := firstValue(inputs[0])
	if !ok {
		silent(sender, id, true)
		return
	}

	var decoded any
	if err := json.Unmarshal(value, &decoded); err != nil {
		silent(sender, id, true)
		return
	}

	var text string
	switch v := decoded.(type) {
	case string:
		text = v
	case bool:
		text = strconv.FormatBool(v)
	case float64:
		text = strconv.FormatFloat(v, 'g', -1, 64)
	default:
		silent(sender, id, true)
		return
	}

	out, _ := json.Marshal(text)
	done(sender, id, out, true)
}
