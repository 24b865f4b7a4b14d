package flow

import "github.com/flowforge/flowrun/flow/emit"

// dispatcher is the single scheduler goroutine: it owns the RunList and is
// the only thing that ever mutates it (§5's single-owner invariant).
// Executors see only the RunSets it sends and the result sender it hands
// them; they never touch rl.
type dispatcher struct {
	rl      *RunList
	work    *unboundedQueue[RunSet]
	results *unboundedQueue[OutputSet]
	out     *outputProcessor
	metrics *Metrics
	pool    *executorPool
	prom    *PrometheusMetrics
}

// run drives the loop described in §4.4, generalized for multi-executor
// concurrency (§5): rather than strictly alternating one dispatch with one
// receive, each iteration first drains every currently-Ready process onto
// the (unbounded) work queue — maximizing how much the executor pool has
// to chew on — then blocks for exactly one OutputSet. Processing that
// OutputSet may ready more processes, which the next iteration's drain
// picks up. Termination: the drain finds nothing Ready and no process is
// Running.
func (d *dispatcher) run() {
	for {
		for {
			id, ok := d.rl.PopReady()
			if !ok {
				break
			}
			d.dispatchOne(id)
		}

		if d.rl.RunningCount() == 0 {
			break
		}

		os, ok := d.results.Recv()
		if !ok {
			break // ErrChannelClosed: orderly shutdown
		}
		d.out.process(os)
	}
	d.work.Close()
}

func (d *dispatcher) dispatchOne(id ProcessID) {
	p := d.rl.process(id)
	inputs := p.TakeInputs()
	d.rl.Dispatch(id)

	d.metrics.dispatches++
	d.out.emitter.Emit(emit.Event{RunID: d.out.runID, ProcessID: int(id), Msg: "dispatch"})
	if d.prom != nil {
		d.prom.recordDispatch(d.pool.ActiveCount(), len(d.rl.ready))
	}
	d.work.Send(RunSet{ID: id, Implementation: p.Implementation, Inputs: inputs})
}
