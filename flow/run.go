package flow

import (
	"context"
	"sync"

	"github.com/flowforge/flowrun/flowdef"
)

// Compile gathers root into a flat, runnable CodeGenTables using locator to
// resolve every function process's implementation handle. This is the
// core's "compile(flow) -> CodeGenTables" entry point (§6).
func Compile(root *flowdef.FlowDef, locator Locator) (*CodeGenTables, error) {
	return Gather(root, locator)
}

// Execute runs a compiled CodeGenTables to completion and returns the final
// Metrics. This is the core's "execute(tables, executor_count) -> Metrics"
// entry point (§6); executorCount and the rest of the scheduling behavior
// are configured via Option.
func Execute(tables *CodeGenTables, executorCount int, opts ...Option) (*Metrics, error) {
	cfg := defaultConfig()
	if executorCount > 0 {
		cfg.executors = executorCount
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	rl := newRunList(tables.Processes, cfg.overflow)
	metrics := newMetrics(len(tables.Processes))

	work := newUnboundedQueue[RunSet]()
	results := newUnboundedQueue[OutputSet]()

	runID := newRunID()
	pool := newExecutorPool(cfg.executors, work, results, cfg.emitter, runID)
	out := newOutputProcessor(rl, cfg.emitter, metrics, cfg.prom, runID)

	d := &dispatcher{rl: rl, work: work, results: results, out: out, metrics: metrics, pool: pool, prom: cfg.prom}

	var wg sync.WaitGroup
	pool.start(&wg)

	rl.Init()
	d.run()

	wg.Wait()
	metrics.stop()

	if cfg.emitter != nil {
		_ = cfg.emitter.Flush(context.Background())
	}
	return metrics, nil
}
