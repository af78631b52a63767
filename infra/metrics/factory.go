package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/dispatchrec/core/factory"
	coremetrics "github.com/kilianp07/dispatchrec/core/metrics"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterSink("nop", func(map[string]any) (coremetrics.Sink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterSink("prometheus", func(map[string]any) (coremetrics.Sink, error) {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterSink("influx", func(conf map[string]any) (coremetrics.Sink, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c), nil
	})
}

// HasPrometheus reports whether one of the configured sinks is Prometheus,
// in which case the HTTP server should expose /metrics.
func HasPrometheus(cfgs []factory.ModuleConfig) bool {
	for _, c := range cfgs {
		if c.Type == "prometheus" {
			return true
		}
	}
	return false
}
