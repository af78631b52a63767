package dispatch

import "github.com/kilianp07/dispatchrec/core/responsetime"

// ID identifies a dispatch. It is chosen by the caller.
type ID int

// Record is a single dispatch owned by a Manager.
type Record struct {
	id          ID
	description string
	samples     responsetime.Samples
}

func newRecord(id ID, description string) *Record {
	return &Record{id: id, description: description}
}

// ID returns the identifier the record was created with.
func (r *Record) ID() ID { return r.id }

// Description returns the current description.
func (r *Record) Description() string { return r.description }

// AddResponseTime appends a response time sample to the record.
func (r *Record) AddResponseTime(v float64) { r.samples.Add(v) }

// AverageResponseTime returns the mean response time, 0 when no sample was
// recorded.
func (r *Record) AverageResponseTime() float64 { return r.samples.Average() }

// ResponseTimes returns a copy of the samples in insertion order.
func (r *Record) ResponseTimes() []float64 { return r.samples.Values() }

// RecordView is a detached copy of a Record, safe to hand out across
// goroutines and to encode.
type RecordView struct {
	ID                  ID        `json:"id"`
	Description         string    `json:"description"`
	ResponseTimes       []float64 `json:"response_times"`
	AverageResponseTime float64   `json:"average_response_time"`
}

// Snapshot copies the record state.
func (r *Record) Snapshot() RecordView {
	return RecordView{
		ID:                  r.id,
		Description:         r.description,
		ResponseTimes:       r.samples.Values(),
		AverageResponseTime: r.samples.Average(),
	}
}
