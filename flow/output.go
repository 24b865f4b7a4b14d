package flow

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/flowforge/flowrun/flow/emit"
)

// pointerToGJSONPath translates an RFC 6901 JSON Pointer into a gjson path
// expression. "" (whole document) is handled by the caller before this is
// invoked. Pointer escape sequences (~1 → "/", ~0 → "~") are undone first;
// gjson's own special characters (".", "*", "?", "|", "#", "\") are then
// backslash-escaped so a literal field name like "a.b" or "gt*" round-trips.
func pointerToGJSONPath(ptr string) string {
	segs := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	out := make([]string, len(segs))
	for i, s := range segs {
		s = strings.ReplaceAll(s, "~1", "/")
		s = strings.ReplaceAll(s, "~0", "~")
		var b strings.Builder
		for _, r := range s {
			switch r {
			case '.', '*', '?', '|', '#', '\\':
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		out[i] = b.String()
	}
	return strings.Join(out, ".")
}

// resolvePointer selects subPointer out of output. An empty subPointer
// returns output unchanged (the "whole value" route). ok is false if the
// pointer did not resolve against the produced JSON (RoutingError).
func resolvePointer(output json.RawMessage, subPointer string) (value json.RawMessage, ok bool) {
	if subPointer == "" {
		return output, true
	}
	res := gjson.GetBytes(output, pointerToGJSONPath(subPointer))
	if !res.Exists() {
		return nil, false
	}
	return []byte(res.Raw), true
}

// cloneJSON returns an independent copy of v, so two destinations fed from
// the same route never share a backing array.
func cloneJSON(v json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(v))
	copy(out, v)
	return out
}

// outputProcessor consumes OutputSets from the executor pool and applies
// §4.5: route values to destinations, enforce overflow policy, update the
// blocking set and readiness, then transition the source process per its
// done/run_again flags.
type outputProcessor struct {
	rl      *RunList
	emitter emit.Emitter
	metrics *Metrics
	prom    *PrometheusMetrics
	runID   string
}

func newOutputProcessor(rl *RunList, emitter emit.Emitter, metrics *Metrics, prom *PrometheusMetrics, runID string) *outputProcessor {
	return &outputProcessor{rl: rl, emitter: emitter, metrics: metrics, prom: prom, runID: runID}
}

func (op *outputProcessor) process(os OutputSet) {
	from := op.rl.process(os.From)

	routingErr, overflow := false, false

	// An empty Output means the implementation produced nothing this
	// dispatch (e.g. a closed gate) — route nothing, but still account for
	// the OutputSet and run the done/run_again bookkeeping below.
	if len(os.Output) > 0 {
		for _, route := range from.OutputRoutes {
			if op.rl.process(route.DestID).State == StateDead {
				continue // a Dead process is never written to again
			}
			value, ok := resolvePointer(os.Output, route.SubPointer)
			if !ok {
				routingErr = true
				op.metrics.routingErrors++
				op.emitter.Emit(emit.Event{
					RunID: op.runID, ProcessID: int(os.From), Msg: "routing_error",
					Meta: map[string]any{"pointer": route.SubPointer, "dest": int(route.DestID)},
				})
				continue
			}

			dest := op.rl.process(route.DestID)
			input := dest.Inputs[route.DestInputIdx]
			if err := input.Push(cloneJSON(value), op.rl.overflow); err != nil {
				overflow = true
				op.metrics.inputOverflows++
				op.emitter.Emit(emit.Event{
					RunID: op.runID, ProcessID: int(os.From), Msg: "input_overflow",
					Meta: map[string]any{"dest": int(route.DestID), "input": route.DestInputIdx},
				})
				continue
			}

			if input.Full() {
				op.rl.addBlocking(route.DestID, os.From)
			}
			op.rl.arrivedAt(route.DestID)
		}
	}

	op.metrics.outputsSent++
	op.emitter.Emit(emit.Event{RunID: op.runID, ProcessID: int(os.From), Msg: "output_sent"})
	if op.prom != nil {
		op.prom.recordOutput(routingErr, overflow)
	}

	if os.Done {
		op.rl.Done(os.From, os.RunAgain)
		if from.State == StateDead {
			op.emitter.Emit(emit.Event{RunID: op.runID, ProcessID: int(os.From), Msg: "process_dead"})
		}
	}
}
