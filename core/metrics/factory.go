package metrics

import (
	"fmt"

	"github.com/kilianp07/dispatchrec/core/factory"
)

var sinkRegistry = factory.NewRegistry[Sink]()

// RegisterSink makes a sink type available to the metrics.sinks config
// section under name.
func RegisterSink(name string, f factory.Factory[Sink]) error {
	return sinkRegistry.Register(name, f)
}

// SinkTypes lists the registered sink types.
func SinkTypes() []string { return sinkRegistry.Names() }

// NewSink builds the sink receiving dispatch operations and response time
// samples. An empty list disables metrics, one entry is returned as is and
// several are combined in a MultiSink. If an entry fails, the sinks built so
// far are closed.
func NewSink(cfgs []factory.ModuleConfig) (Sink, error) {
	built := make([]Sink, 0, len(cfgs))
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			_ = NewMultiSink(built...).Close()
			return nil, fmt.Errorf("metrics sink %d (%s): %w", i, c.Type, err)
		}
		built = append(built, s)
	}
	switch len(built) {
	case 0:
		return NopSink{}, nil
	case 1:
		return built[0], nil
	default:
		return NewMultiSink(built...), nil
	}
}
