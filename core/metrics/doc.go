// Package metrics defines the sinks that observe dispatch record activity.
// A Sink receives one event per manager operation and one per response time
// sample. Implementations live in infra/metrics and register themselves by
// name; NewSink builds the configured set and wraps several sinks in a
// MultiSink.
package metrics
