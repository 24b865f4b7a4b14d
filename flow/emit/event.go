package emit

// Event is one reportable occurrence from the scheduler or an executor.
// Msg names the kind ("dispatch", "output_sent", "input_overflow",
// "routing_error", "implementation_panic", "process_dead", ...); Meta
// carries kind-specific detail.
type Event struct {
	RunID     string
	ProcessID int
	Msg       string
	Meta      map[string]any
}
