package responsetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_Average(t *testing.T) {
	rt := NewTracker()
	assert.Equal(t, 0.0, rt.AverageResponseTime())

	rt.AddResponseTime(300)
	rt.AddResponseTime(450)
	assert.Equal(t, 375.0, rt.AverageResponseTime())
	assert.Equal(t, 2, rt.Count())
	assert.Equal(t, []float64{300, 450}, rt.Samples())
}
