package flow

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics exposes live scheduler counters for a running process,
// namespaced "flowrun", alongside the plain Metrics struct's stable
// end-of-run report. Where Metrics is a snapshot written once at
// termination, PrometheusMetrics is updated throughout the run so an
// operator can watch dispatch rate and executor saturation live.
//
// Metrics exposed:
//
//  1. active_executors (gauge): executors currently running an
//     implementation. Compare against the configured executor count to
//     see saturation.
//  2. ready_depth (gauge): size of the LIFO ready stack at the moment of
//     the last sample.
//  3. dispatches_total (counter): RunSets sent to the executor pool.
//  4. outputs_sent_total (counter): OutputSets processed.
//  5. routing_errors_total (counter): sub-pointer resolution failures.
//  6. overflow_events_total (counter): dropped writes to a full,
//     non-static input.
//  7. peak_active_executors (gauge): high-water mark of active_executors,
//     the operational signal for the zero-input-always-ready hazard noted
//     in the design notes (an unbounded-readiness process will pin one
//     executor at 1 forever; watching the peak across the pool surfaces
//     that even when the average looks healthy).
type PrometheusMetrics struct {
	activeExecutors prometheus.Gauge
	readyDepth      prometheus.Gauge
	dispatches      prometheus.Counter
	outputsSent     prometheus.Counter
	routingErrors   prometheus.Counter
	overflowEvents  prometheus.Counter
	peakActive      prometheus.Gauge

	peak int64
}

// NewPrometheusMetrics registers the flowrun_* metric family with registry
// (pass prometheus.DefaultRegisterer for the global registry, or a fresh
// prometheus.NewRegistry() for test isolation).
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	f := promauto.With(registry)

	return &PrometheusMetrics{
		activeExecutors: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "flowrun", Name: "active_executors",
			Help: "Executors currently running an implementation",
		}),
		readyDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "flowrun", Name: "ready_depth",
			Help: "Size of the LIFO ready stack at last sample",
		}),
		dispatches: f.NewCounter(prometheus.CounterOpts{
			Namespace: "flowrun", Name: "dispatches_total",
			Help: "RunSets sent to the executor pool",
		}),
		outputsSent: f.NewCounter(prometheus.CounterOpts{
			Namespace: "flowrun", Name: "outputs_sent_total",
			Help: "OutputSets processed by the output processor",
		}),
		routingErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: "flowrun", Name: "routing_errors_total",
			Help: "Output sub-pointers that failed to resolve",
		}),
		overflowEvents: f.NewCounter(prometheus.CounterOpts{
			Namespace: "flowrun", Name: "overflow_events_total",
			Help: "Writes dropped because a non-static input was full",
		}),
		peakActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "flowrun", Name: "peak_active_executors",
			Help: "High-water mark of active_executors this run",
		}),
	}
}

func (pm *PrometheusMetrics) recordDispatch(activeExecutors, readyDepth int) {
	pm.dispatches.Inc()
	pm.activeExecutors.Set(float64(activeExecutors))
	pm.readyDepth.Set(float64(readyDepth))
	if peak := atomic.AddInt64(&pm.peak, 0); int64(activeExecutors) > peak {
		atomic.StoreInt64(&pm.peak, int64(activeExecutors))
		pm.peakActive.Set(float64(activeExecutors))
	}
}

func (pm *PrometheusMetrics) recordOutput(routingErr, overflow bool) {
	pm.outputsSent.Inc()
	if routingErr {
		pm.routingErrors.Inc()
	}
	if overflow {
		pm.overflowEvents.Inc()
	}
}
