package metrics

import (
	"io"

	"go.uber.org/multierr"
)

// MultiSink fans events out to several sinks. Every sink sees every event;
// failures are combined rather than stopping at the first one.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

func (m *MultiSink) RecordOperation(ev OperationEvent) error {
	var err error
	for _, s := range m.Sinks {
		err = multierr.Append(err, s.RecordOperation(ev))
	}
	return err
}

func (m *MultiSink) RecordResponseTime(ev ResponseTimeEvent) error {
	var err error
	for _, s := range m.Sinks {
		err = multierr.Append(err, s.RecordResponseTime(ev))
	}
	return err
}

// RecordCount forwards to the sinks implementing RecordCountRecorder.
func (m *MultiSink) RecordCount(n int) error {
	var err error
	for _, s := range m.Sinks {
		if rc, ok := s.(RecordCountRecorder); ok {
			err = multierr.Append(err, rc.RecordCount(n))
		}
	}
	return err
}

// Close closes every sink implementing io.Closer.
func (m *MultiSink) Close() error {
	var err error
	for _, s := range m.Sinks {
		if c, ok := s.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}
