package responsetime

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Samples is an append-only sequence of response time values. The zero value
// is ready to use.
type Samples struct {
	values []float64
}

// Add appends v. No validation is performed on sign or magnitude.
func (s *Samples) Add(v float64) {
	s.values = append(s.values, v)
}

// Average returns the arithmetic mean of the samples, or 0 when empty. The
// mean of finite samples is finite even when their sum overflows.
func (s *Samples) Average() float64 {
	if len(s.values) == 0 {
		return 0
	}
	mean := stat.Mean(s.values, nil)
	if math.IsInf(mean, 0) {
		mean = scaledMean(s.values)
	}
	return mean
}

// scaledMean divides before summing so large samples do not overflow.
func scaledMean(values []float64) float64 {
	n := float64(len(values))
	var mean float64
	for _, v := range values {
		mean += v / n
	}
	return mean
}

// Len returns the number of samples recorded.
func (s *Samples) Len() int { return len(s.values) }

// Values returns a copy of the samples in insertion order.
func (s *Samples) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}
