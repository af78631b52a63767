package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dispatchrec/core/factory"
	"github.com/kilianp07/dispatchrec/core/metrics"
	_ "github.com/kilianp07/dispatchrec/infra/metrics"
)

func TestNewSink_Builtins(t *testing.T) {
	s, err := metrics.NewSink([]factory.ModuleConfig{{Type: "nop"}})
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = metrics.NewSink([]factory.ModuleConfig{{Type: "missing"}})
	assert.ErrorContains(t, err, `metrics sink 0 (missing)`)
	assert.Subset(t, metrics.SinkTypes(), []string{"nop", "prometheus", "influx"})
}

type closingSink struct {
	metrics.NopSink
	closed bool
}

func (c *closingSink) Close() error {
	c.closed = true
	return nil
}

func TestNewSink_ClosesBuiltSinksOnError(t *testing.T) {
	built := &closingSink{}
	require.NoError(t, metrics.RegisterSink("closing-test", func(map[string]any) (metrics.Sink, error) {
		return built, nil
	}))

	_, err := metrics.NewSink([]factory.ModuleConfig{{Type: "closing-test"}, {Type: "missing"}})
	assert.ErrorContains(t, err, "metrics sink 1 (missing)")
	assert.True(t, built.closed)
}

func TestNewSink_Multi(t *testing.T) {
	s, err := metrics.NewSink(nil)
	require.NoError(t, err)
	assert.IsType(t, metrics.NopSink{}, s)

	s, err = metrics.NewSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "nop"}})
	require.NoError(t, err)
	m, ok := s.(*metrics.MultiSink)
	require.True(t, ok, "expected MultiSink, got %T", s)
	assert.Len(t, m.Sinks, 2)
}

func TestConfig_ValidateMissingType(t *testing.T) {
	cfg := metrics.Config{Sinks: []factory.ModuleConfig{{Type: "nop"}, {}}}
	assert.EqualError(t, cfg.Validate(), "metrics: sink 1 has no type")
}
