package flow

import (
	"encoding/json"
	"testing"
)

func newTestProcess(id ProcessID, depth int, static bool) *Process {
	return &Process{
		ID:     id,
		Inputs: []*Input{NewInput(depth, static)},
		State:  StateInit,
	}
}

// TestRunListLIFOTieBreak verifies §4.3's explicit LIFO dispatch order.
func TestRunListLIFOTieBreak(t *testing.T) {
	rl := newRunList(nil, OverflowDrop)
	rl.pushReady(1)
	rl.pushReady(2)
	rl.pushReady(3)

	var order []ProcessID
	for {
		id, ok := rl.PopReady()
		if !ok {
			break
		}
		order = append(order, id)
	}

	want := []ProcessID{3, 2, 1}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected LIFO order %v, got %v", want, order)
		}
	}
}

// TestBlockingSetIsMultiset verifies a static destination can accumulate
// more than one blocking pair for the same (blocking, blocked) before a
// Dispatched bulk-release, and that release removes every duplicate.
func TestBlockingSetIsMultiset(t *testing.T) {
	rl := newRunList(nil, OverflowDrop)
	rl.addBlocking(10, 20)
	rl.addBlocking(10, 20)
	rl.addBlocking(10, 30)

	if len(rl.blocking) != 3 {
		t.Fatalf("expected 3 raw entries before release, got %d", len(rl.blocking))
	}

	released := rl.releaseBlockedBy(10)
	if len(released) != 2 {
		t.Fatalf("expected 2 distinct released ids, got %v", released)
	}
	if len(rl.blocking) != 0 {
		t.Fatalf("expected blocking set empty after release, got %v", rl.blocking)
	}
}

// TestNoSelfBlocking verifies P3: addBlocking never records a (x, x) pair.
func TestNoSelfBlocking(t *testing.T) {
	rl := newRunList(nil, OverflowDrop)
	rl.addBlocking(5, 5)
	if len(rl.blocking) != 0 {
		t.Fatalf("P3 violated: self-blocking pair recorded: %v", rl.blocking)
	}
}

// TestBlockedImpliesPair verifies P2: a process observed in the Blocked
// state always has a witnessing pair in the blocking set.
func TestBlockedImpliesPair(t *testing.T) {
	upstream := newTestProcess(0, 1, false)
	downstream := newTestProcess(1, 1, false)
	rl := newRunList([]*Process{upstream, downstream}, OverflowDrop)

	rl.addBlocking(1, 0)
	upstream.State = StateBlocked

	if !rl.IsBlocked(0) {
		t.Fatal("P2 violated: process in Blocked state has no witnessing pair")
	}
}

// TestReadyImpliesInputsFullAndNotBlocked verifies P1: Init only promotes a
// process to Ready when its inputs are already full, never while blocked.
func TestReadyImpliesInputsFullAndNotBlocked(t *testing.T) {
	p := newTestProcess(0, 1, false)
	_ = p.Inputs[0].Push(json.RawMessage("1"), OverflowDrop)

	rl := newRunList([]*Process{p}, OverflowDrop)
	rl.Init()

	if p.State != StateReady {
		t.Fatalf("expected Ready after Init with full inputs, got %v", p.State)
	}
	if !p.InputsFull() {
		t.Fatal("P1 violated: Ready process does not have full inputs")
	}
	if rl.IsBlocked(p.ID) {
		t.Fatal("P1 violated: Ready process is recorded as blocked")
	}
}

// TestInitWaitingWhenInputsIncomplete verifies InitNeedsInput.
func TestInitWaitingWhenInputsIncomplete(t *testing.T) {
	p := newTestProcess(0, 1, false)
	rl := newRunList([]*Process{p}, OverflowDrop)
	rl.Init()

	if p.State != StateWaiting {
		t.Fatalf("expected Waiting when inputs incomplete, got %v", p.State)
	}
}

// TestDispatchReleasesUpstreamBlocking verifies the "Dispatched releases
// all blocking pairs with blocking_id==id" rule and that a released
// upstream with full, unblocked inputs transitions to Ready.
func TestDispatchReleasesUpstreamBlocking(t *testing.T) {
	downstream := newTestProcess(1, 1, false)
	_ = downstream.Inputs[0].Push(json.RawMessage("1"), OverflowDrop)
	downstream.State = StateReady

	upstream := newTestProcess(0, 1, false)
	_ = upstream.Inputs[0].Push(json.RawMessage("1"), OverflowDrop)
	upstream.State = StateBlocked

	rl := newRunList([]*Process{upstream, downstream}, OverflowDrop)
	rl.addBlocking(1, 0) // downstream blocks upstream

	rl.Dispatch(1)

	if downstream.State != StateRunning {
		t.Fatalf("expected downstream Running after Dispatch, got %v", downstream.State)
	}
	if rl.IsBlocked(0) {
		t.Fatal("expected upstream's blocking pair released by Dispatch")
	}
	if upstream.State != StateReady {
		t.Fatalf("expected upstream Ready after being unblocked, got %v", upstream.State)
	}
}

// TestArrivedAtOnlyFiresFromWaiting verifies InputArrivedFull/NotBlocked are
// only meaningful transitions out of Waiting (the table's only row naming
// them); a process in any other state is left untouched by arrivedAt.
func TestArrivedAtOnlyFiresFromWaiting(t *testing.T) {
	p := newTestProcess(0, 1, false)
	_ = p.Inputs[0].Push(json.RawMessage("1"), OverflowDrop)
	p.State = StateRunning

	rl := newRunList([]*Process{p}, OverflowDrop)
	rl.arrivedAt(0)

	if p.State != StateRunning {
		t.Fatalf("arrivedAt must not transition a non-Waiting process, got %v", p.State)
	}
}

// TestArrivedAtBlockedVsReady verifies arrivedAt picks Blocked when the
// destination already appears in the blocking set, Ready otherwise.
func TestArrivedAtBlockedVsReady(t *testing.T) {
	p := newTestProcess(0, 1, false)
	p.State = StateWaiting
	rl := newRunList([]*Process{p}, OverflowDrop)
	_ = p.Inputs[0].Push(json.RawMessage("1"), OverflowDrop)

	rl.addBlocking(0, 99) // p is itself blocking some downstream... irrelevant
	rl.addBlocking(1, 0)  // p appears as blocked_id: process 1 is blocking p
	rl.arrivedAt(0)

	if p.State != StateBlocked {
		t.Fatalf("expected Blocked when destination is itself blocked, got %v", p.State)
	}
}

// TestDoneTransitions walks every runAgain/input/blocked combination named
// in §4.3's Running row.
func TestDoneTransitions(t *testing.T) {
	cases := []struct {
		name     string
		runAgain bool
		full     bool
		blocked  bool
		want     State
	}{
		{"DoneDead", false, true, false, StateDead},
		{"DoneReady", true, true, false, StateReady},
		{"DoneBlocked", true, true, true, StateBlocked},
		{"DoneWaiting", true, false, false, StateWaiting},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestProcess(0, 1, false)
			if tc.full {
				_ = p.Inputs[0].Push(json.RawMessage("1"), OverflowDrop)
			}
			p.State = StateRunning

			rl := newRunList([]*Process{p}, OverflowDrop)
			rl.running = 1
			if tc.blocked {
				rl.addBlocking(1, 0)
			}

			rl.Done(0, tc.runAgain)

			if p.State != tc.want {
				t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, p.State)
			}
		})
	}
}
