package metrics

import "time"

// Operation names a dispatch manager operation.
type Operation string

const (
	OpCreate          Operation = "create"
	OpRead            Operation = "read"
	OpUpdate          Operation = "update"
	OpDelete          Operation = "delete"
	OpAddResponseTime Operation = "add_response_time"
)

// Outcome describes how an operation ended.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeMiss      Outcome = "miss"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeDuplicate Outcome = "duplicate"
)

// Scope tells whether a response time belongs to a dispatch or to the
// free-standing tracker.
type Scope string

const (
	ScopeDispatch Scope = "dispatch"
	ScopeTracker  Scope = "tracker"
)

// OperationEvent is emitted once per manager call.
type OperationEvent struct {
	Operation  Operation
	DispatchID int
	Outcome    Outcome
	Time       time.Time
}

// ResponseTimeEvent is emitted for every accepted response time sample.
type ResponseTimeEvent struct {
	Scope      Scope
	DispatchID int
	Value      float64
	Time       time.Time
}

// Sink records dispatch activity for observability purposes.
type Sink interface {
	RecordOperation(ev OperationEvent) error
	RecordResponseTime(ev ResponseTimeEvent) error
}

// RecordCountRecorder is implemented by sinks that track how many records
// the manager currently holds.
type RecordCountRecorder interface {
	RecordCount(n int) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordOperation(OperationEvent) error       { return nil }
func (NopSink) RecordResponseTime(ResponseTimeEvent) error { return nil }
func (NopSink) RecordCount(int) error                      { return nil }
