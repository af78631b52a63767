package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/dispatchrec/core/metrics"
	"github.com/kilianp07/dispatchrec/infra/logger"
)

const writeTimeout = 5 * time.Second

// InfluxConfig holds the InfluxDB connection settings.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes dispatch activity to InfluxDB using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given endpoint. A trailing
// /api/v2/write on the URL is tolerated.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: writeTimeout}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the instance and returns a NopSink when the
// health check fails, so an unreachable InfluxDB does not prevent start up.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordOperation writes a dispatch_operation point. Series are keyed by
// operation and outcome only; the dispatch id is a field.
func (s *InfluxSink) RecordOperation(ev coremetrics.OperationEvent) error {
	p := write.NewPointWithMeasurement("dispatch_operation").
		AddTag("operation", string(ev.Operation)).
		AddTag("outcome", string(ev.Outcome)).
		AddField("count", 1).
		AddField("dispatch_id", ev.DispatchID).
		SetTime(ev.Time)
	return s.write(p)
}

// RecordResponseTime writes a dispatch_response_time point. Tracker samples
// carry no dispatch_id field.
func (s *InfluxSink) RecordResponseTime(ev coremetrics.ResponseTimeEvent) error {
	p := write.NewPointWithMeasurement("dispatch_response_time").
		AddTag("scope", string(ev.Scope))
	if ev.Scope == coremetrics.ScopeDispatch {
		p = p.AddField("dispatch_id", ev.DispatchID)
	}
	p = p.AddField("value", ev.Value).SetTime(ev.Time)
	return s.write(p)
}

// Close flushes and releases the client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func (s *InfluxSink) write(p *write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, p)
}
