package harness

// TraceEvent is one attempted action in a scenario run.
type TraceEvent struct {
	// Seq is the engine sequence the attempt consumed. Zero means the
	// arguments were rejected before the engine saw the action.
	Seq    int64          `json:"seq"`
	Action string         `json:"action"`
	Args   map[string]any `json:"args,omitempty"`
	OK     bool           `json:"ok"`
	Code   string         `json:"code,omitempty"` // error code when !OK
	Result any            `json:"result,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every step expectation and assertion matched.
	Pass bool `json:"pass"`

	// Trace contains setup and step attempts in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State is the final game state as a generic tree: numbers are
	// json.Number and timestamps are time.Time.
	State map[string]any `json:"state,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		State:  make(map[string]any),
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an attempt to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
