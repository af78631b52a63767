package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/kilianp07/dispatchrec/api/dispatches"
	"github.com/kilianp07/dispatchrec/config"
	"github.com/kilianp07/dispatchrec/core/dispatch"
	coremetrics "github.com/kilianp07/dispatchrec/core/metrics"
	"github.com/kilianp07/dispatchrec/core/responsetime"
	"github.com/kilianp07/dispatchrec/infra/logger"
	"github.com/kilianp07/dispatchrec/infra/metrics"
	"github.com/kilianp07/dispatchrec/infra/mqtt"
	"github.com/kilianp07/dispatchrec/internal/eventbus"
)

// Service wires the dispatch manager, its observers and the HTTP API.
type Service struct {
	Manager *dispatch.SyncManager
	Tracker *responsetime.Tracker

	handler   http.Handler
	addr      string
	shutdown  time.Duration
	sink      coremetrics.Sink
	bus       *eventbus.TypedBus[dispatch.Event]
	forwarder *mqtt.EventPublisher
	log       logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	logg := logger.New("service")

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	mgr := dispatch.NewManager(logger.New("dispatch"))
	mgr.SetMetrics(sink)

	svc := &Service{
		Tracker:  responsetime.NewTracker(),
		addr:     cfg.HTTP.Address,
		shutdown: cfg.HTTP.ShutdownTimeout(),
		sink:     sink,
		log:      logg,
	}
	if cfg.Dispatch.PublishEvents || cfg.MQTT.Enabled {
		svc.bus = eventbus.NewTypedWithBuffer[dispatch.Event](cfg.Dispatch.EventBuffer)
		mgr.SetEventPublisher(svc.bus)
	}
	if cfg.MQTT.Enabled {
		fwd, err := mqtt.NewEventPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt events: %w", err)
		}
		svc.forwarder = fwd
	}
	svc.Manager = dispatch.NewSyncManager(mgr)

	opts := dispatches.Options{
		Manager: svc.Manager,
		Tracker: svc.Tracker,
		Metrics: sink,
		Logger:  logger.New("http"),
		Token:   cfg.HTTP.Token,
	}
	if metrics.HasPrometheus(cfg.Metrics.Sinks) {
		opts.MetricsHandler = promhttp.Handler()
	}
	svc.handler = dispatches.NewRouter(opts)
	return svc, nil
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler { return s.handler }

// Events subscribes to dispatch lifecycle events. It returns nil when event
// publishing is disabled.
func (s *Service) Events() <-chan dispatch.Event {
	if s.bus == nil {
		return nil
	}
	return s.bus.Subscribe()
}

// Run serves the API and forwards events until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.forwarder != nil {
		events := s.bus.Subscribe()
		go s.forwarder.Forward(ctx, events)
	}

	srv := &http.Server{Addr: s.addr, Handler: s.handler, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()
	s.log.Infof("listening on %s", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	var err error
	if s.bus != nil {
		s.bus.Close()
		if d := s.bus.Dropped(); d > 0 {
			s.log.Warnf("%d dispatch events were dropped", d)
		}
	}
	if s.forwarder != nil {
		err = multierr.Append(err, s.forwarder.Close())
	}
	if c, ok := s.sink.(io.Closer); ok {
		err = multierr.Append(err, c.Close())
	}
	return err
}
