package emit

import (
	"context"
	"testing"
)

func TestNullEmitterNeverErrors(t *testing.T) {
	e := NewNullEmitter()
	e.Emit(Event{Msg: "anything"})
	if err := e.EmitBatch(context.Background(), []Event{{Msg: "a"}, {Msg: "b"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
