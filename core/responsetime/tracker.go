package responsetime

// Tracker collects response times that are not tied to a dispatch record.
type Tracker struct {
	samples Samples
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker { return &Tracker{} }

// AddResponseTime appends a sample.
func (t *Tracker) AddResponseTime(v float64) { t.samples.Add(v) }

// AverageResponseTime returns the mean of all samples, 0 when none were added.
func (t *Tracker) AverageResponseTime() float64 { return t.samples.Average() }

// Count returns the number of samples.
func (t *Tracker) Count() int { return t.samples.Len() }

// Samples returns a copy of the recorded samples.
func (t *Tracker) Samples() []float64 { return t.samples.Values() }
