package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/dispatchrec/core/metrics"
)

// ResponseTimeBuckets covers response times expressed in seconds, from a few
// seconds up to an hour.
var ResponseTimeBuckets = []float64{5, 15, 30, 60, 120, 300, 600, 900, 1800, 3600}

// PromSink records dispatch activity in Prometheus metrics.
type PromSink struct {
	operations   *prometheus.CounterVec
	responseTime *prometheus.HistogramVec
	records      prometheus.Gauge
}

// NewPromSink registers the metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on reg. A nil registerer defaults
// to the global one. Collectors already registered by a previous sink are
// reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_operations_total",
		Help: "Total number of dispatch manager operations",
	}, []string{"operation", "outcome"})
	responseTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dispatch_response_time",
		Help:    "Recorded response time samples",
		Buckets: ResponseTimeBuckets,
	}, []string{"scope"})
	records := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dispatch_records",
		Help: "Number of dispatch records currently held",
	})

	var err error
	if operations, err = register(reg, operations); err != nil {
		return nil, err
	}
	if responseTime, err = register(reg, responseTime); err != nil {
		return nil, err
	}
	if records, err = register(reg, records); err != nil {
		return nil, err
	}
	return &PromSink{operations: operations, responseTime: responseTime, records: records}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordOperation increments the operation counter.
func (s *PromSink) RecordOperation(ev coremetrics.OperationEvent) error {
	s.operations.WithLabelValues(string(ev.Operation), string(ev.Outcome)).Inc()
	return nil
}

// RecordResponseTime observes the sample in the response time histogram.
func (s *PromSink) RecordResponseTime(ev coremetrics.ResponseTimeEvent) error {
	s.responseTime.WithLabelValues(string(ev.Scope)).Observe(ev.Value)
	return nil
}

// RecordCount sets the record gauge.
func (s *PromSink) RecordCount(n int) error {
	s.records.Set(float64(n))
	return nil
}
