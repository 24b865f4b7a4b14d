package flow

import (
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/flowforge/flowrun/flow/emit"
)

// executorPool is the N ≥ 1 worker goroutines that drain the work queue,
// run implementations, and push OutputSets onto the results queue (§4.6,
// §5). Workers never touch the RunList; the only state they share with the
// scheduler is the two queues.
type executorPool struct {
	n       int
	work    *unboundedQueue[RunSet]
	results *unboundedQueue[OutputSet]
	emitter emit.Emitter
	runID   string

	active int64
}

func newExecutorPool(n int, work *unboundedQueue[RunSet], results *unboundedQueue[OutputSet], emitter emit.Emitter, runID string) *executorPool {
	return &executorPool{n: n, work: work, results: results, emitter: emitter, runID: runID}
}

// start launches the pool's workers, each registered on wg so the caller
// can wait for them to drain and exit after the work queue is closed.
func (ep *executorPool) start(wg *sync.WaitGroup) {
	for i := 0; i < ep.n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ep.loop()
		}()
	}
}

func (ep *executorPool) loop() {
	for {
		rs, ok := ep.work.Recv()
		if !ok {
			return
		}
		atomic.AddInt64(&ep.active, 1)
		ep.runOne(rs)
		atomic.AddInt64(&ep.active, -1)
	}
}

// ActiveCount reports how many workers are currently inside runOne, for the
// Prometheus active_executors/peak_active_executors gauges.
func (ep *executorPool) ActiveCount() int { return int(atomic.LoadInt64(&ep.active)) }

func (ep *executorPool) runOne(rs RunSet) {
	defer func() {
		if r := recover(); r != nil {
			ep.emitter.Emit(emit.Event{
				RunID: ep.runID, ProcessID: int(rs.ID), Msg: "implementation_panic",
				Meta: map[string]any{"recovered": r, "stack": string(debug.Stack())},
			})
			ep.results.Send(OutputSet{From: rs.ID, Done: true, RunAgain: false})
		}
	}()

	sender := resultSenderFunc(func(os OutputSet) { ep.results.Send(os) })
	rs.Implementation.Run(rs.ID, rs.Inputs, sender)
}
