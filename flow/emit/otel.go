package emit

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OtelEmitter reports each event as a point-in-time OpenTelemetry span: a
// span is started and immediately ended, carrying the event as its name
// and RunID/ProcessID/Meta as attributes. This lets a trace backend
// visualize scheduler fairness and executor saturation without the
// scheduler itself needing any notion of spans.
type OtelEmitter struct {
	tracer trace.Tracer
}

// NewOtelEmitter wraps a tracer obtained from otel.Tracer("flowrun").
func NewOtelEmitter(tracer trace.Tracer) *OtelEmitter {
	return &OtelEmitter{tracer: tracer}
}

func (o *OtelEmitter) Emit(ev Event) {
	_, span := o.tracer.Start(context.Background(), ev.Msg)
	o.annotate(span, ev)
	span.End()
}

func (o *OtelEmitter) EmitBatch(_ context.Context, events []Event) error {
	for _, ev := range events {
		o.Emit(ev)
	}
	return nil
}

// Flush force-exports pending spans via the registered TracerProvider, if
// it supports ForceFlush (the SDK provider does; the no-op provider does
// not, and there is nothing to flush in that case).
func (o *OtelEmitter) Flush(ctx context.Context) error {
	type flusher interface {
		ForceFlush(context.Context) error
	}
	if f, ok := otel.GetTracerProvider().(flusher); ok {
		return f.ForceFlush(ctx)
	}
	return nil
}

func (o *OtelEmitter) annotate(span trace.Span, ev Event) {
	span.SetAttributes(
		attribute.String("flowrun.run_id", ev.RunID),
		attribute.Int("flowrun.process_id", ev.ProcessID),
	)
	for k, v := range ev.Meta {
		switch val := v.(type) {
		case string:
			span.SetAttributes(attribute.String(k, val))
		case int:
			span.SetAttributes(attribute.Int(k, val))
		case int64:
			span.SetAttributes(attribute.Int64(k, val))
		case float64:
			span.SetAttributes(attribute.Float64(k, val))
		case bool:
			span.SetAttributes(attribute.Bool(k, val))
		default:
			span.SetAttributes(attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
	if errMsg, ok := ev.Meta["error"].(string); ok {
		span.SetStatus(codes.Error, errMsg)
	}
}
