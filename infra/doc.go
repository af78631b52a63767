// Package infra holds the technical adapters of the service: the zerolog
// logger, the Prometheus and InfluxDB metrics sinks and the MQTT event
// forwarder. They depend only on the interfaces declared under core.
package infra
