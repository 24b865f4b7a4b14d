package flow

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/flowforge/flowrun/flow/emit"
)

func TestExecutorPoolRunsImplementationAndDeliversResult(t *testing.T) {
	work := newUnboundedQueue[RunSet]()
	results := newUnboundedQueue[OutputSet]()
	ep := newExecutorPool(1, work, results, emit.NewNullEmitter(), "run-1")

	var wg sync.WaitGroup
	ep.start(&wg)

	work.Send(RunSet{ID: 5, Implementation: ImplementationFunc(func(id ProcessID, inputs [][]json.RawMessage, sender ResultSender) {
		sender.Send(OutputSet{From: id, Output: json.RawMessage("1"), Done: true, RunAgain: false})
	})})

	os, ok := results.Recv()
	if !ok {
		t.Fatal("expected a delivered OutputSet")
	}
	if os.From != 5 || !os.Done || os.RunAgain {
		t.Fatalf("unexpected OutputSet: %+v", os)
	}

	work.Close()
	waitDone(t, &wg)
}

func TestExecutorPoolRecoversPanicIntoTerminalOutputSet(t *testing.T) {
	work := newUnboundedQueue[RunSet]()
	results := newUnboundedQueue[OutputSet]()
	ep := newExecutorPool(1, work, results, emit.NewNullEmitter(), "run-1")

	var wg sync.WaitGroup
	ep.start(&wg)

	work.Send(RunSet{ID: 7, Implementation: ImplementationFunc(func(id ProcessID, inputs [][]json.RawMessage, sender ResultSender) {
		panic("boom")
	})})

	os, ok := results.Recv()
	if !ok {
		t.Fatal("expected a delivered OutputSet despite the panic")
	}
	if os.From != 7 || !os.Done || os.RunAgain {
		t.Fatalf("expected a terminal, non-repeating OutputSet after a panic, got %+v", os)
	}
	if len(os.Output) != 0 {
		t.Fatalf("expected an empty Output after a panic, got %q", os.Output)
	}

	work.Close()
	waitDone(t, &wg)
}

func TestExecutorPoolActiveCountTracksInFlightWork(t *testing.T) {
	work := newUnboundedQueue[RunSet]()
	results := newUnboundedQueue[OutputSet]()
	ep := newExecutorPool(1, work, results, emit.NewNullEmitter(), "run-1")

	var wg sync.WaitGroup
	ep.start(&wg)

	entered := make(chan struct{})
	release := make(chan struct{})
	work.Send(RunSet{ID: 1, Implementation: ImplementationFunc(func(id ProcessID, inputs [][]json.RawMessage, sender ResultSender) {
		close(entered)
		<-release
		sender.Send(OutputSet{From: id, Done: true})
	})})

	<-entered
	if ep.ActiveCount() != 1 {
		t.Fatalf("expected ActiveCount=1 while the worker is inside Run, got %d", ep.ActiveCount())
	}
	close(release)
	results.Recv()

	deadline := time.Now().Add(time.Second)
	for ep.ActiveCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ep.ActiveCount() != 0 {
		t.Fatalf("expected ActiveCount=0 after Run returns, got %d", ep.ActiveCount())
	}

	work.Close()
	waitDone(t, &wg)
}

func waitDone(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for executor pool workers to exit")
	}
}
