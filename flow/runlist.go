package flow

// blockPair is one entry of the blocking multiset: blockedID currently has
// output destined for blockingID whose relevant input is full. Kept as a
// multiset (duplicates allowed) rather than a set because a static
// destination can accumulate several insertions between two dispatches of
// the blocking process; Dispatched releases them all in one bulk removal
// (§4.3), so duplicate-tolerant insertion is simpler than idempotent
// insertion plus reference counting.
type blockPair struct {
	blockingID ProcessID
	blockedID  ProcessID
}

// RunList owns every Process and the scheduling state around it: the
// blocking multiset and the LIFO ready stack. Only the scheduler goroutine
// ever touches a RunList — no field needs a mutex (§5's single-owner
// invariant).
type RunList struct {
	processes []*Process
	ready     []ProcessID // LIFO: append/pop from the tail
	blocking  []blockPair
	running   int

	overflow OverflowPolicy
}

// newRunList builds an empty RunList over the given processes, indexed by
// their ID (the gatherer guarantees dense 0..N-1 assignment).
func newRunList(processes []*Process, overflow OverflowPolicy) *RunList {
	return &RunList{processes: processes, overflow: overflow}
}

func (rl *RunList) process(id ProcessID) *Process { return rl.processes[int(id)] }

// Len reports the number of processes in the table.
func (rl *RunList) Len() int { return len(rl.processes) }

// RunningCount is the number of processes currently dispatched to an
// executor and not yet returned a terminal OutputSet.
func (rl *RunList) RunningCount() int { return rl.running }

// pushReady appends id to the ready stack (LIFO tie-break, §4.3).
func (rl *RunList) pushReady(id ProcessID) { rl.ready = append(rl.ready, id) }

// PopReady pops the most recently readied process, LIFO order.
func (rl *RunList) PopReady() (ProcessID, bool) {
	n := len(rl.ready)
	if n == 0 {
		return 0, false
	}
	id := rl.ready[n-1]
	rl.ready = rl.ready[:n-1]
	return id, true
}

// IsBlocked reports whether id currently appears as a blocked_id in the
// blocking multiset (invariant I6's witness).
func (rl *RunList) IsBlocked(id ProcessID) bool {
	for _, p := range rl.blocking {
		if p.blockedID == id {
			return true
		}
	}
	return false
}

// addBlocking records that blockedID has output destined for blockingID
// whose relevant input is now full. Self-edges are never recorded
// (invariant I7).
func (rl *RunList) addBlocking(blockingID, blockedID ProcessID) {
	if blockingID == blockedID {
		return
	}
	rl.blocking = append(rl.blocking, blockPair{blockingID: blockingID, blockedID: blockedID})
}

// releaseBlockedBy removes every pair with the given blockingID (the
// process is about to run and will re-read its inputs) and returns the
// distinct blockedIDs that were released, so the caller can re-evaluate
// each for Unblocked (§4.3's "Dispatched" rule).
func (rl *RunList) releaseBlockedBy(blockingID ProcessID) []ProcessID {
	var released []ProcessID
	seen := make(map[ProcessID]bool)
	kept := rl.blocking[:0]
	for _, p := range rl.blocking {
		if p.blockingID == blockingID {
			if !seen[p.blockedID] {
				seen[p.blockedID] = true
				released = append(released, p.blockedID)
			}
			continue
		}
		kept = append(kept, p)
	}
	rl.blocking = kept
	return released
}

// Init runs the Init-state transitions for every process: a Value process's
// initial value (if any) is pushed into its sole input, then each process
// moves to Ready (InitReady, pushed onto the ready stack) if its inputs are
// already full, or Waiting (InitNeedsInput) otherwise.
func (rl *RunList) Init() {
	for _, p := range rl.processes {
		if p.State != StateInit {
			continue
		}
		if p.InitialValue != nil && len(p.Inputs) > 0 {
			_ = p.Inputs[0].Push(p.InitialValue, rl.overflow)
		}
		if p.InputsFull() {
			p.State = StateReady
			rl.pushReady(p.ID)
		} else {
			p.State = StateWaiting
		}
	}
}

// Dispatch transitions id from Ready to Running, applies the Dispatched
// event (releasing every blocking pair where id is the blocking_id), and
// re-evaluates each released upstream process for Unblocked → Ready/Waiting.
// Returns the Process.
func (rl *RunList) Dispatch(id ProcessID) *Process {
	p := rl.process(id)
	p.State = StateRunning
	rl.running++

	for _, upstreamID := range rl.releaseBlockedBy(id) {
		up := rl.process(upstreamID)
		if up.State != StateBlocked {
			continue
		}
		if up.InputsFull() && !rl.IsBlocked(upstreamID) {
			up.State = StateReady
			rl.pushReady(upstreamID)
		} else {
			up.State = StateWaiting
		}
	}
	return p
}

// arrivedAt fires InputArrivedFull or InputArrivedNotBlocked for destID,
// two events the table defines only in the Waiting row, per §4.5
// step 1d: once all of destID's inputs are full for the first time (it was
// Waiting), it becomes Ready unless it is itself already recorded as a
// blocked_id, in which case it becomes Blocked instead.
func (rl *RunList) arrivedAt(destID ProcessID) {
	dest := rl.process(destID)
	if dest.State != StateWaiting || !dest.InputsFull() {
		return
	}
	if rl.IsBlocked(destID) {
		dest.State = StateBlocked
	} else {
		dest.State = StateReady
		rl.pushReady(destID)
	}
}

// Done applies OutputSent's terminal variant (the OutputSet carried
// done=true) to a Running process: DoneDead if runAgain is false, otherwise
// DoneReady / DoneBlocked / DoneWaiting depending on current input and
// blocking status.
func (rl *RunList) Done(id ProcessID, runAgain bool) {
	p := rl.process(id)
	rl.running--

	if !runAgain {
		p.State = StateDead
		return
	}
	switch {
	case rl.IsBlocked(id):
		p.State = StateBlocked
	case p.InputsFull():
		p.State = StateReady
		rl.pushReady(id)
	default:
		p.State = StateWaiting
	}
}
