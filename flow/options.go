package flow

import (
	"fmt"

	"github.com/flowforge/flowrun/flow/emit"
)

// Option configures a run via Execute. Options are applied in order; a
// later option overrides an earlier conflicting one except where noted.
type Option func(*config) error

type config struct {
	executors int
	emitter   emit.Emitter
	overflow  OverflowPolicy
	prom      *PrometheusMetrics
}

func defaultConfig() *config {
	return &config{
		executors: 1,
		emitter:   emit.NewNullEmitter(),
		overflow:  OverflowDrop,
	}
}

// WithExecutors sets the size of the executor pool (§5's N ≥ 1 worker
// threads). Default: 1.
//
// A single-process workload with no inherent parallelism gains nothing
// from more than 1; a graph with several independent long-running
// Implementations (e.g. multiple Stdin-style blocking sources) benefits
// from one executor per such source so none of them blocks the others.
func WithExecutors(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("flow: WithExecutors: n must be >= 1, got %d", n)
		}
		c.executors = n
		return nil
	}
}

// WithEmitter sets the observability sink. Default: emit.NewNullEmitter().
func WithEmitter(e emit.Emitter) Option {
	return func(c *config) error {
		if e == nil {
			return fmt.Errorf("flow: WithEmitter: emitter must not be nil")
		}
		c.emitter = e
		return nil
	}
}

// WithOverflowPolicy sets the behavior when a non-static input is full and
// a further write arrives. Default: OverflowDrop, matching spec's chosen
// default of liveness over strict delivery; OverflowOverwrite is the
// configuration knob the design notes anticipate an implementer exposing.
func WithOverflowPolicy(p OverflowPolicy) Option {
	return func(c *config) error {
		c.overflow = p
		return nil
	}
}

// WithPrometheusMetrics attaches a live metrics collector in addition to
// the plain Metrics snapshot Execute always returns.
func WithPrometheusMetrics(pm *PrometheusMetrics) Option {
	return func(c *config) error {
		c.prom = pm
		return nil
	}
}
